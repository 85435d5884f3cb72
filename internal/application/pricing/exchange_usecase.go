package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	domainpricing "github.com/dvillegas/multierp-api/internal/domain/pricing"
	"github.com/dvillegas/multierp-api/internal/domain/repository"
)

// ExchangeUseCase administra las configuraciones cambiarias de una empresa.
// Invariante: a lo sumo una configuración activa por (empresa, moneda, tipo);
// cada cambio de tasa deja la tasa anterior en el historial inmutable.
type ExchangeUseCase struct {
	txRunner     ExchangeTxRunner
	exchangeRepo repository.ExchangeRepository
	historyRepo  repository.ExchangeHistoryRepository
	currencyRepo repository.CurrencyRepository
}

// NewExchangeUseCase construye el caso de uso de tasas de cambio.
func NewExchangeUseCase(
	txRunner ExchangeTxRunner,
	exchangeRepo repository.ExchangeRepository,
	historyRepo repository.ExchangeHistoryRepository,
	currencyRepo repository.CurrencyRepository,
) *ExchangeUseCase {
	return &ExchangeUseCase{
		txRunner:     txRunner,
		exchangeRepo: exchangeRepo,
		historyRepo:  historyRepo,
		currencyRepo: currencyRepo,
	}
}

// Create da de alta una configuración cambiaria para la empresa activa.
// Rechaza con ErrDuplicate si ya existe una activa para el mismo triple.
func (uc *ExchangeUseCase) Create(ctx context.Context, companyID string, req dto.CreateExchangeRequest) (*entity.CurrencyExchange, error) {
	if !req.Rate.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	currency, err := uc.currencyRepo.GetByID(req.CurrencyID)
	if err != nil {
		return nil, err
	}
	if currency == nil || currency.Status != entity.StatusActive {
		return nil, domain.ErrNotFound
	}

	existing, err := uc.exchangeRepo.GetActive(companyID, req.CurrencyID, req.Type)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	exc := &entity.CurrencyExchange{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		CurrencyID: req.CurrencyID,
		Type:       req.Type,
		Rate:       req.Rate.Round(domainpricing.RateScale),
		Method:     req.Method,
		Status:     entity.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.exchangeRepo.Create(exc); err != nil {
		return nil, err
	}
	return exc, nil
}

// Update cambia tasa y/o método. La tasa anterior se asienta en el historial
// dentro de la misma transacción que el update.
func (uc *ExchangeUseCase) Update(ctx context.Context, exchangeID, companyID, userID string, req dto.UpdateExchangeRequest) (*entity.CurrencyExchange, error) {
	if !req.Rate.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	exc, err := uc.exchangeRepo.GetByID(exchangeID)
	if err != nil {
		return nil, err
	}
	if exc == nil {
		return nil, domain.ErrNotFound
	}
	if exc.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	oldRate, oldMethod := exc.Rate, exc.Method
	exc.Rate = req.Rate.Round(domainpricing.RateScale)
	exc.Method = req.Method
	exc.UpdatedAt = time.Now()

	err = uc.txRunner.Run(ctx, func(
		excRepo repository.ExchangeRepository,
		histRepo repository.ExchangeHistoryRepository,
	) error {
		if err := histRepo.Append(&entity.CurrencyExchangeHistory{
			ID:         uuid.New().String(),
			ExchangeID: exc.ID,
			OldRate:    oldRate,
			OldMethod:  oldMethod,
			UserID:     userID,
			RecordedAt: exc.UpdatedAt,
		}); err != nil {
			return err
		}
		return excRepo.Update(exc)
	})
	if err != nil {
		return nil, err
	}
	return exc, nil
}

// GetByID devuelve una configuración validando pertenencia a la empresa.
func (uc *ExchangeUseCase) GetByID(exchangeID, companyID string) (*entity.CurrencyExchange, error) {
	exc, err := uc.exchangeRepo.GetByID(exchangeID)
	if err != nil {
		return nil, err
	}
	if exc == nil {
		return nil, domain.ErrNotFound
	}
	if exc.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return exc, nil
}

// ListByCompany configuraciones cambiarias de la empresa.
func (uc *ExchangeUseCase) ListByCompany(companyID string, limit, offset int) ([]*entity.CurrencyExchange, error) {
	return uc.exchangeRepo.ListByCompany(companyID, limit, offset)
}

// ListHistory historial de tasas de una configuración (solo lectura).
func (uc *ExchangeUseCase) ListHistory(exchangeID, companyID string, limit, offset int) ([]*entity.CurrencyExchangeHistory, error) {
	if _, err := uc.GetByID(exchangeID, companyID); err != nil {
		return nil, err
	}
	return uc.historyRepo.ListByExchange(exchangeID, limit, offset)
}
