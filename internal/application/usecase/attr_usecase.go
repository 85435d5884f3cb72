package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

// AttrUseCase atributos de variantes (ej. Color) y sus valores permitidos.
type AttrUseCase struct {
	attrRepo repository.AttrRepository
}

// NewAttrUseCase construye el caso de uso de atributos.
func NewAttrUseCase(attrRepo repository.AttrRepository) *AttrUseCase {
	return &AttrUseCase{attrRepo: attrRepo}
}

// CreateAttr alta de atributo. Nombre único por empresa.
func (uc *AttrUseCase) CreateAttr(companyID string, req dto.CreateAttrRequest) (*entity.InventoryAttr, error) {
	existing, err := uc.attrRepo.GetAttrByName(companyID, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	attr := &entity.InventoryAttr{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      req.Name,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.attrRepo.CreateAttr(attr); err != nil {
		return nil, err
	}
	return attr, nil
}

// GetAttr devuelve un atributo validando pertenencia a la empresa.
func (uc *AttrUseCase) GetAttr(companyID, id string) (*entity.InventoryAttr, error) {
	attr, err := uc.attrRepo.GetAttrByID(id)
	if err != nil {
		return nil, err
	}
	if attr == nil {
		return nil, domain.ErrNotFound
	}
	if attr.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return attr, nil
}

// ListAttrs atributos de la empresa.
func (uc *AttrUseCase) ListAttrs(companyID string, limit, offset int) ([]*entity.InventoryAttr, error) {
	return uc.attrRepo.ListAttrsByCompany(companyID, limit, offset)
}

// CreateValue alta de valor de atributo. Valor único por atributo.
func (uc *AttrUseCase) CreateValue(companyID string, req dto.CreateAttrValueRequest) (*entity.InventoryAttrValue, error) {
	if _, err := uc.GetAttr(companyID, req.AttrID); err != nil {
		return nil, err
	}
	existing, err := uc.attrRepo.GetValue(req.AttrID, req.Value)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	value := &entity.InventoryAttrValue{
		ID:        uuid.New().String(),
		AttrID:    req.AttrID,
		Value:     req.Value,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.attrRepo.CreateValue(value); err != nil {
		return nil, err
	}
	return value, nil
}

// ListValues valores permitidos de un atributo de la empresa.
func (uc *AttrUseCase) ListValues(companyID, attrID string) ([]*entity.InventoryAttrValue, error) {
	if _, err := uc.GetAttr(companyID, attrID); err != nil {
		return nil, err
	}
	return uc.attrRepo.ListValuesByAttr(attrID)
}
