package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

// CompanyUseCase administración de grupos y empresas (solo admin global).
type CompanyUseCase struct {
	companyRepo  repository.CompanyRepository
	groupRepo    repository.CompanyGroupRepository
	currencyRepo repository.CurrencyRepository
}

// NewCompanyUseCase construye el caso de uso de empresas.
func NewCompanyUseCase(
	companyRepo repository.CompanyRepository,
	groupRepo repository.CompanyGroupRepository,
	currencyRepo repository.CurrencyRepository,
) *CompanyUseCase {
	return &CompanyUseCase{
		companyRepo:  companyRepo,
		groupRepo:    groupRepo,
		currencyRepo: currencyRepo,
	}
}

// CreateGroup alta de un grupo de empresas.
func (uc *CompanyUseCase) CreateGroup(req dto.CreateCompanyGroupRequest) (*entity.CompanyGroup, error) {
	now := time.Now()
	group := &entity.CompanyGroup{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.groupRepo.Create(group); err != nil {
		return nil, err
	}
	return group, nil
}

// GetGroup devuelve un grupo por id.
func (uc *CompanyUseCase) GetGroup(id string) (*entity.CompanyGroup, error) {
	group, err := uc.groupRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, domain.ErrNotFound
	}
	return group, nil
}

// ListGroups lista de grupos.
func (uc *CompanyUseCase) ListGroups(limit, offset int) ([]*entity.CompanyGroup, error) {
	return uc.groupRepo.List(limit, offset)
}

// Create alta de empresa. FiscalID es único global: duplicado → ErrDuplicate.
func (uc *CompanyUseCase) Create(req dto.CreateCompanyRequest) (*entity.Company, error) {
	existing, err := uc.companyRepo.GetByFiscalID(req.FiscalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if req.GroupID != "" {
		group, err := uc.groupRepo.GetByID(req.GroupID)
		if err != nil {
			return nil, err
		}
		if group == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		GroupID:   req.GroupID,
		Name:      req.Name,
		FiscalID:  req.FiscalID,
		Country:   req.Country,
		Address:   req.Address,
		Phone:     req.Phone,
		Email:     req.Email,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.companyRepo.Create(company); err != nil {
		return nil, err
	}
	return company, nil
}

// GetByID devuelve una empresa por id.
func (uc *CompanyUseCase) GetByID(id string) (*entity.Company, error) {
	company, err := uc.companyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return company, nil
}

// Update actualización parcial de empresa. FiscalID es inmutable.
func (uc *CompanyUseCase) Update(id string, req dto.UpdateCompanyRequest) (*entity.Company, error) {
	company, err := uc.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Country != nil {
		company.Country = *req.Country
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Email != nil {
		company.Email = *req.Email
	}
	if req.Status != nil {
		company.Status = *req.Status
	}
	company.UpdatedAt = time.Now()
	if err := uc.companyRepo.Update(company); err != nil {
		return nil, err
	}
	return company, nil
}

// List lista de empresas.
func (uc *CompanyUseCase) List(limit, offset int) ([]*entity.Company, error) {
	return uc.companyRepo.List(limit, offset)
}

// ReplaceCurrencies reemplazo idempotente de monedas asociadas: se validan
// todos los ids antes de tocar nada (todo-o-nada).
func (uc *CompanyUseCase) ReplaceCurrencies(companyID string, currencyIDs []string) error {
	if _, err := uc.GetByID(companyID); err != nil {
		return err
	}
	for _, id := range currencyIDs {
		currency, err := uc.currencyRepo.GetByID(id)
		if err != nil {
			return err
		}
		if currency == nil {
			return domain.ErrNotFound
		}
	}
	return uc.companyRepo.ReplaceCurrencies(companyID, currencyIDs)
}

// ListCurrencyIDs monedas asociadas a la empresa.
func (uc *CompanyUseCase) ListCurrencyIDs(companyID string) ([]string, error) {
	if _, err := uc.GetByID(companyID); err != nil {
		return nil, err
	}
	return uc.companyRepo.ListCurrencyIDs(companyID)
}
