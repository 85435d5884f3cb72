package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	domaininv "github.com/dvillegas/multierp-api/internal/domain/inventory"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

// LotUseCase lotes de variantes. La validación de campos corre en el validador
// puro de dominio y devuelve todos los errores juntos para la respuesta HTTP.
type LotUseCase struct {
	lotRepo     repository.LotRepository
	variantRepo repository.VariantRepository
	itemRepo    repository.ItemRepository
	familyRepo  repository.FamilyRepository
}

// NewLotUseCase construye el caso de uso de lotes.
func NewLotUseCase(
	lotRepo repository.LotRepository,
	variantRepo repository.VariantRepository,
	itemRepo repository.ItemRepository,
	familyRepo repository.FamilyRepository,
) *LotUseCase {
	return &LotUseCase{
		lotRepo:     lotRepo,
		variantRepo: variantRepo,
		itemRepo:    itemRepo,
		familyRepo:  familyRepo,
	}
}

// Create alta de lote. Si la validación de campos falla, devuelve el resultado
// con los errores acumulados y no toca la base.
func (uc *LotUseCase) Create(companyID string, req dto.CreateLotRequest) (*entity.InventoryLot, *domaininv.ValidationResult, error) {
	result := domaininv.ValidateLot(domaininv.LotInput{
		VariantID:       req.VariantID,
		LotNumber:       req.LotNumber,
		LotOrigin:       req.LotOrigin,
		ManufactureDate: req.ManufactureDate,
		ExpirationDate:  req.ExpirationDate,
		UnitCost:        req.UnitCost,
		RefUnitCost:     req.RefUnitCost,
	})
	if !result.IsValid {
		return nil, &result, nil
	}

	if err := uc.checkVariantCompany(companyID, req.VariantID); err != nil {
		return nil, nil, err
	}
	existing, err := uc.lotRepo.GetByNumber(req.VariantID, req.LotNumber)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, domain.ErrDuplicate
	}

	now := time.Now()
	lot := &entity.InventoryLot{
		ID:              uuid.New().String(),
		VariantID:       req.VariantID,
		LotNumber:       req.LotNumber,
		LotOrigin:       req.LotOrigin,
		ManufactureDate: req.ManufactureDate,
		ExpirationDate:  req.ExpirationDate,
		UnitCost:        req.UnitCost,
		RefUnitCost:     req.RefUnitCost,
		CurrencyID:      req.CurrencyID,
		RefCurrencyID:   req.RefCurrencyID,
		Status:          entity.StatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.lotRepo.Create(lot); err != nil {
		return nil, nil, err
	}
	return lot, nil, nil
}

// GetByID devuelve un lote validando empresa vía variante → ítem → familia.
func (uc *LotUseCase) GetByID(companyID, id string) (*entity.InventoryLot, error) {
	lot, err := uc.lotRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkVariantCompany(companyID, lot.VariantID); err != nil {
		return nil, err
	}
	return lot, nil
}

// Update actualización parcial. LotNumber es inmutable; las fechas resultantes
// se re-validan con el validador de dominio.
func (uc *LotUseCase) Update(companyID, id string, req dto.UpdateLotRequest) (*entity.InventoryLot, *domaininv.ValidationResult, error) {
	lot, err := uc.GetByID(companyID, id)
	if err != nil {
		return nil, nil, err
	}
	if req.LotOrigin != nil {
		lot.LotOrigin = *req.LotOrigin
	}
	if req.ManufactureDate != nil {
		lot.ManufactureDate = req.ManufactureDate
	}
	if req.ExpirationDate != nil {
		lot.ExpirationDate = req.ExpirationDate
	}
	if req.UnitCost != nil {
		lot.UnitCost = *req.UnitCost
	}
	if req.RefUnitCost != nil {
		lot.RefUnitCost = *req.RefUnitCost
	}
	if req.Status != nil {
		lot.Status = *req.Status
	}

	result := domaininv.ValidateLot(domaininv.LotInput{
		VariantID:       lot.VariantID,
		LotNumber:       lot.LotNumber,
		LotOrigin:       lot.LotOrigin,
		ManufactureDate: lot.ManufactureDate,
		ExpirationDate:  lot.ExpirationDate,
		UnitCost:        lot.UnitCost,
		RefUnitCost:     lot.RefUnitCost,
	})
	if !result.IsValid {
		return nil, &result, nil
	}

	lot.UpdatedAt = time.Now()
	if err := uc.lotRepo.Update(lot); err != nil {
		return nil, nil, err
	}
	return lot, nil, nil
}

// Delete borrado físico del lote (única entidad del inventario que lo permite).
func (uc *LotUseCase) Delete(companyID, id string) error {
	if _, err := uc.GetByID(companyID, id); err != nil {
		return err
	}
	return uc.lotRepo.Delete(id)
}

// ListByVariant lotes de una variante de la empresa.
func (uc *LotUseCase) ListByVariant(companyID, variantID string, limit, offset int) ([]*entity.InventoryLot, error) {
	if err := uc.checkVariantCompany(companyID, variantID); err != nil {
		return nil, err
	}
	return uc.lotRepo.ListByVariant(variantID, limit, offset)
}

func (uc *LotUseCase) checkVariantCompany(companyID, variantID string) error {
	variant, err := uc.variantRepo.GetByID(variantID)
	if err != nil {
		return err
	}
	if variant == nil {
		return domain.ErrNotFound
	}
	item, err := uc.itemRepo.GetByID(variant.ItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	family, err := uc.familyRepo.GetByID(item.FamilyID)
	if err != nil {
		return err
	}
	if family == nil {
		return domain.ErrNotFound
	}
	if family.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}
