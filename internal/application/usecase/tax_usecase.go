package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

// TaxUseCase administración de impuestos por empresa.
type TaxUseCase struct {
	taxRepo repository.TaxRepository
}

// NewTaxUseCase construye el caso de uso de impuestos.
func NewTaxUseCase(taxRepo repository.TaxRepository) *TaxUseCase {
	return &TaxUseCase{taxRepo: taxRepo}
}

// Create alta de impuesto. Code único por empresa; los exentos llevan porcentaje cero.
func (uc *TaxUseCase) Create(companyID string, req dto.CreateTaxRequest) (*entity.Tax, error) {
	if req.Percentage.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if req.Type == entity.TaxTypeExempt && !req.Percentage.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.taxRepo.GetByCode(companyID, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	tax := &entity.Tax{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Code:       req.Code,
		Name:       req.Name,
		Percentage: req.Percentage,
		Type:       req.Type,
		Status:     entity.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.taxRepo.Create(tax); err != nil {
		return nil, err
	}
	return tax, nil
}

// GetByID devuelve un impuesto validando pertenencia a la empresa.
func (uc *TaxUseCase) GetByID(companyID, id string) (*entity.Tax, error) {
	tax, err := uc.taxRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tax == nil {
		return nil, domain.ErrNotFound
	}
	if tax.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return tax, nil
}

// Update actualización parcial. Code es inmutable.
func (uc *TaxUseCase) Update(companyID, id string, req dto.UpdateTaxRequest) (*entity.Tax, error) {
	tax, err := uc.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		tax.Name = *req.Name
	}
	if req.Percentage != nil {
		if req.Percentage.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		tax.Percentage = *req.Percentage
	}
	if req.Type != nil {
		tax.Type = *req.Type
	}
	if tax.Type == entity.TaxTypeExempt {
		tax.Percentage = decimal.Zero
	}
	if req.Status != nil {
		tax.Status = *req.Status
	}
	tax.UpdatedAt = time.Now()
	if err := uc.taxRepo.Update(tax); err != nil {
		return nil, err
	}
	return tax, nil
}

// ListByCompany impuestos de la empresa.
func (uc *TaxUseCase) ListByCompany(companyID string, limit, offset int) ([]*entity.Tax, error) {
	return uc.taxRepo.ListByCompany(companyID, limit, offset)
}
