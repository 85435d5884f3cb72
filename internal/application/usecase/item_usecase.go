package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

// ItemUseCase ítems de inventario y su asociación con impuestos.
type ItemUseCase struct {
	itemRepo   repository.ItemRepository
	familyRepo repository.FamilyRepository
	taxRepo    repository.TaxRepository
}

// NewItemUseCase construye el caso de uso de ítems.
func NewItemUseCase(
	itemRepo repository.ItemRepository,
	familyRepo repository.FamilyRepository,
	taxRepo repository.TaxRepository,
) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, familyRepo: familyRepo, taxRepo: taxRepo}
}

// Create alta de ítem. Code único por familia; los impuestos se validan
// todo-o-nada y se asocian en la misma transacción del alta.
func (uc *ItemUseCase) Create(companyID string, req dto.CreateItemRequest) (*entity.InventoryItem, error) {
	family, err := uc.familyRepo.GetByID(req.FamilyID)
	if err != nil {
		return nil, err
	}
	if family == nil || family.Status != entity.StatusActive {
		return nil, domain.ErrNotFound
	}
	if family.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	existing, err := uc.itemRepo.GetByCode(req.FamilyID, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if len(req.Taxes) > 0 {
		ok, err := uc.taxRepo.ExistAll(companyID, req.Taxes)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		FamilyID:     req.FamilyID,
		Code:         req.Code,
		Name:         req.Name,
		Description:  req.Description,
		Type:         req.Type,
		HasVariants:  req.HasVariants,
		IsExempt:     req.IsExempt,
		IsStockable:  req.IsStockable,
		IsLotManaged: req.IsLotManaged,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// los servicios nunca llevan stock ni lotes
	if item.Type == entity.ItemTypeService {
		item.IsStockable = false
		item.IsLotManaged = false
	}
	if err := uc.itemRepo.Create(item, req.Taxes); err != nil {
		return nil, err
	}
	return item, nil
}

// GetByID devuelve un ítem validando empresa vía su familia.
func (uc *ItemUseCase) GetByID(companyID, id string) (*entity.InventoryItem, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkFamilyCompany(companyID, item.FamilyID); err != nil {
		return nil, err
	}
	return item, nil
}

// Update actualización parcial. Taxes no-nil reemplaza la asociación completa.
func (uc *ItemUseCase) Update(companyID, id string, req dto.UpdateItemRequest) (*entity.InventoryItem, error) {
	item, err := uc.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.IsExempt != nil {
		item.IsExempt = *req.IsExempt
	}
	if req.Status != nil {
		item.Status = *req.Status
	}
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}
	if req.Taxes != nil {
		ok, err := uc.taxRepo.ExistAll(companyID, req.Taxes)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrNotFound
		}
		if err := uc.itemRepo.SetTaxes(item.ID, req.Taxes); err != nil {
			return nil, err
		}
	}
	return item, nil
}

// ListByFamily ítems de una familia de la empresa.
func (uc *ItemUseCase) ListByFamily(companyID, familyID string, limit, offset int) ([]*entity.InventoryItem, error) {
	if err := uc.checkFamilyCompany(companyID, familyID); err != nil {
		return nil, err
	}
	return uc.itemRepo.ListByFamily(familyID, limit, offset)
}

// ListTaxIDs impuestos asociados al ítem.
func (uc *ItemUseCase) ListTaxIDs(companyID, itemID string) ([]string, error) {
	if _, err := uc.GetByID(companyID, itemID); err != nil {
		return nil, err
	}
	return uc.itemRepo.ListTaxIDs(itemID)
}

func (uc *ItemUseCase) checkFamilyCompany(companyID, familyID string) error {
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
