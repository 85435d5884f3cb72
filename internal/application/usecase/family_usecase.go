package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

// FamilyUseCase familias de inventario. Las banderas de stock/lote de la
// familia son el valor por defecto que heredan sus ítems.
type FamilyUseCase struct {
	familyRepo repository.FamilyRepository
	taxRepo    repository.TaxRepository
}

// NewFamilyUseCase construye el caso de uso de familias.
func NewFamilyUseCase(familyRepo repository.FamilyRepository, taxRepo repository.TaxRepository) *FamilyUseCase {
	return &FamilyUseCase{familyRepo: familyRepo, taxRepo: taxRepo}
}

// Create alta de familia. Code único por empresa.
func (uc *FamilyUseCase) Create(companyID string, req dto.CreateFamilyRequest) (*entity.InventoryFamily, error) {
	existing, err := uc.familyRepo.GetByCode(companyID, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if req.DefaultTaxID != "" {
		if err := uc.checkTax(companyID, req.DefaultTaxID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	family := &entity.InventoryFamily{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Code:         req.Code,
		Name:         req.Name,
		DefaultTaxID: req.DefaultTaxID,
		IsStockable:  req.IsStockable,
		IsLotManaged: req.IsLotManaged,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.familyRepo.Create(family); err != nil {
		return nil, err
	}
	return family, nil
}

// GetByID devuelve una familia validando pertenencia a la empresa.
func (uc *FamilyUseCase) GetByID(companyID, id string) (*entity.InventoryFamily, error) {
	family, err := uc.familyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if family == nil {
		return nil, domain.ErrNotFound
	}
	if family.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return family, nil
}

// Update actualización parcial. Code es inmutable.
func (uc *FamilyUseCase) Update(companyID, id string, req dto.UpdateFamilyRequest) (*entity.InventoryFamily, error) {
	family, err := uc.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		family.Name = *req.Name
	}
	if req.DefaultTaxID != nil {
		if *req.DefaultTaxID != "" {
			if err := uc.checkTax(companyID, *req.DefaultTaxID); err != nil {
				return nil, err
			}
		}
		family.DefaultTaxID = *req.DefaultTaxID
	}
	if req.IsStockable != nil {
		family.IsStockable = *req.IsStockable
	}
	if req.IsLotManaged != nil {
		family.IsLotManaged = *req.IsLotManaged
	}
	if req.Status != nil {
		family.Status = *req.Status
	}
	family.UpdatedAt = time.Now()
	if err := uc.familyRepo.Update(family); err != nil {
		return nil, err
	}
	return family, nil
}

// ListByCompany familias de la empresa.
func (uc *FamilyUseCase) ListByCompany(companyID string, limit, offset int) ([]*entity.InventoryFamily, error) {
	return uc.familyRepo.ListByCompany(companyID, limit, offset)
}

func (uc *FamilyUseCase) checkTax(companyID, taxID string) error {
	tax, err := uc.taxRepo.GetByID(taxID)
	if err != nil {
		return err
	}
	if tax == nil || tax.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return nil
}
