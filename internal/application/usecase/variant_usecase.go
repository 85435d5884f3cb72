package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

// VariantUseCase variantes vendibles y su asociación con valores de atributo.
type VariantUseCase struct {
	variantRepo repository.VariantRepository
	itemRepo    repository.ItemRepository
	familyRepo  repository.FamilyRepository
	attrRepo    repository.AttrRepository
}

// NewVariantUseCase construye el caso de uso de variantes.
func NewVariantUseCase(
	variantRepo repository.VariantRepository,
	itemRepo repository.ItemRepository,
	familyRepo repository.FamilyRepository,
	attrRepo repository.AttrRepository,
) *VariantUseCase {
	return &VariantUseCase{
		variantRepo: variantRepo,
		itemRepo:    itemRepo,
		familyRepo:  familyRepo,
		attrRepo:    attrRepo,
	}
}

// Create alta de variante. SKU único por ítem; los valores de atributo se
// validan todo-o-nada y se asocian en la misma transacción del alta.
func (uc *VariantUseCase) Create(companyID string, req dto.CreateVariantRequest) (*entity.InventoryVariant, error) {
	item, err := uc.itemRepo.GetByID(req.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.Status != entity.StatusActive {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkFamilyCompany(companyID, item.FamilyID); err != nil {
		return nil, err
	}
	existing, err := uc.variantRepo.GetBySKU(req.ItemID, req.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if len(req.AttrValues) > 0 {
		ok, err := uc.attrRepo.ExistAllValues(companyID, req.AttrValues)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	variant := &entity.InventoryVariant{
		ID:        uuid.New().String(),
		ItemID:    req.ItemID,
		SKU:       req.SKU,
		Name:      req.Name,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.variantRepo.Create(variant, req.AttrValues); err != nil {
		return nil, err
	}
	return variant, nil
}

// GetByID devuelve una variante validando empresa vía ítem → familia.
func (uc *VariantUseCase) GetByID(companyID, id string) (*entity.InventoryVariant, error) {
	variant, err := uc.variantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	item, err := uc.itemRepo.GetByID(variant.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkFamilyCompany(companyID, item.FamilyID); err != nil {
		return nil, err
	}
	return variant, nil
}

// Update actualización parcial. SKU es inmutable; AttrValues no-nil reemplaza
// la asociación completa.
func (uc *VariantUseCase) Update(companyID, id string, req dto.UpdateVariantRequest) (*entity.InventoryVariant, error) {
	variant, err := uc.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		variant.Name = *req.Name
	}
	if req.Status != nil {
		variant.Status = *req.Status
	}
	variant.UpdatedAt = time.Now()
	if err := uc.variantRepo.Update(variant); err != nil {
		return nil, err
	}
	if req.AttrValues != nil {
		ok, err := uc.attrRepo.ExistAllValues(companyID, req.AttrValues)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrNotFound
		}
		if err := uc.variantRepo.SetAttrValues(variant.ID, req.AttrValues); err != nil {
			return nil, err
		}
	}
	return variant, nil
}

// ListByItem variantes de un ítem de la empresa.
func (uc *VariantUseCase) ListByItem(companyID, itemID string, limit, offset int) ([]*entity.InventoryVariant, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkFamilyCompany(companyID, item.FamilyID); err != nil {
		return nil, err
	}
	return uc.variantRepo.ListByItem(itemID, limit, offset)
}

// ListAttrValueIDs valores de atributo asociados a la variante.
func (uc *VariantUseCase) ListAttrValueIDs(companyID, variantID string) ([]string, error) {
	if _, err := uc.GetByID(companyID, variantID); err != nil {
		return nil, err
	}
	return uc.variantRepo.ListAttrValueIDs(variantID)
}

func (uc *VariantUseCase) checkFamilyCompany(companyID, familyID string) error {
	family, err := uc.familyRepo.GetByID(familyID)
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
