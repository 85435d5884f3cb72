package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

// SucursalUseCase administración de sucursales y sus impuestos asociados.
type SucursalUseCase struct {
	sucursalRepo repository.SucursalRepository
	companyRepo  repository.CompanyRepository
	taxRepo      repository.TaxRepository
}

// NewSucursalUseCase construye el caso de uso de sucursales.
func NewSucursalUseCase(
	sucursalRepo repository.SucursalRepository,
	companyRepo repository.CompanyRepository,
	taxRepo repository.TaxRepository,
) *SucursalUseCase {
	return &SucursalUseCase{
		sucursalRepo: sucursalRepo,
		companyRepo:  companyRepo,
		taxRepo:      taxRepo,
	}
}

// Create alta de sucursal. Code único por empresa.
func (uc *SucursalUseCase) Create(companyID string, req dto.CreateSucursalRequest) (*entity.Sucursal, error) {
	if req.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil || company.Status != entity.StatusActive {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.sucursalRepo.GetByCode(companyID, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	sucursal := &entity.Sucursal{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Code:      req.Code,
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.sucursalRepo.Create(sucursal); err != nil {
		return nil, err
	}
	return sucursal, nil
}

// GetByID devuelve una sucursal validando pertenencia a la empresa.
func (uc *SucursalUseCase) GetByID(companyID, id string) (*entity.Sucursal, error) {
	sucursal, err := uc.sucursalRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sucursal == nil {
		return nil, domain.ErrNotFound
	}
	if sucursal.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return sucursal, nil
}

// Update actualización parcial de sucursal. Code es inmutable.
func (uc *SucursalUseCase) Update(companyID, id string, req dto.UpdateSucursalRequest) (*entity.Sucursal, error) {
	sucursal, err := uc.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		sucursal.Name = *req.Name
	}
	if req.Address != nil {
		sucursal.Address = *req.Address
	}
	if req.Phone != nil {
		sucursal.Phone = *req.Phone
	}
	if req.Status != nil {
		sucursal.Status = *req.Status
	}
	sucursal.UpdatedAt = time.Now()
	if err := uc.sucursalRepo.Update(sucursal); err != nil {
		return nil, err
	}
	return sucursal, nil
}

// ListByCompany sucursales de la empresa.
func (uc *SucursalUseCase) ListByCompany(companyID string, limit, offset int) ([]*entity.Sucursal, error) {
	return uc.sucursalRepo.ListByCompany(companyID, limit, offset)
}

// ReplaceTaxes reemplazo idempotente de impuestos de la sucursal.
// Todos los ids deben existir y ser de la empresa; si falta alguno no se toca nada.
func (uc *SucursalUseCase) ReplaceTaxes(companyID, sucursalID string, taxIDs []string) error {
	if _, err := uc.GetByID(companyID, sucursalID); err != nil {
		return err
	}
	ok, err := uc.taxRepo.ExistAll(companyID, taxIDs)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return uc.sucursalRepo.ReplaceTaxes(sucursalID, taxIDs)
}

// ListTaxIDs impuestos asociados a la sucursal.
func (uc *SucursalUseCase) ListTaxIDs(companyID, sucursalID string) ([]string, error) {
	if _, err := uc.GetByID(companyID, sucursalID); err != nil {
		return nil, err
	}
	return uc.sucursalRepo.ListTaxIDs(sucursalID)
}
