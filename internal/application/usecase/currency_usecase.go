package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

// CurrencyUseCase monedas de referencia globales (solo admin global escribe).
type CurrencyUseCase struct {
	currencyRepo repository.CurrencyRepository
}

// NewCurrencyUseCase construye el caso de uso de monedas.
func NewCurrencyUseCase(currencyRepo repository.CurrencyRepository) *CurrencyUseCase {
	return &CurrencyUseCase{currencyRepo: currencyRepo}
}

// Create alta de moneda. ISOCode único global, se normaliza a mayúsculas.
func (uc *CurrencyUseCase) Create(req dto.CreateCurrencyRequest) (*entity.Currency, error) {
	code := strings.ToUpper(req.ISOCode)
	existing, err := uc.currencyRepo.GetByISOCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	currency := &entity.Currency{
		ID:        uuid.New().String(),
		ISOCode:   code,
		Name:      req.Name,
		Symbol:    req.Symbol,
		Status:    entity.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.currencyRepo.Create(currency); err != nil {
		return nil, err
	}
	return currency, nil
}

// GetByID devuelve una moneda por id.
func (uc *CurrencyUseCase) GetByID(id string) (*entity.Currency, error) {
	currency, err := uc.currencyRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if currency == nil {
		return nil, domain.ErrNotFound
	}
	return currency, nil
}

// List monedas registradas.
func (uc *CurrencyUseCase) List(limit, offset int) ([]*entity.Currency, error) {
	return uc.currencyRepo.List(limit, offset)
}
