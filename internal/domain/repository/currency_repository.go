package repository

import "github.com/dvillegas/multierp-api/internal/domain/entity"

// CurrencyRepository puerto para monedas de referencia (datos globales).
type CurrencyRepository interface {
	Create(currency *entity.Currency) error
	GetByID(id string) (*entity.Currency, error)
	GetByISOCode(code string) (*entity.Currency, error)
	Update(currency *entity.Currency) error
	List(limit, offset int) ([]*entity.Currency, error)
}

// ExchangeRepository puerto para configuraciones de tasa de cambio por empresa.
type ExchangeRepository interface {
	Create(exc *entity.CurrencyExchange) error
	GetByID(id string) (*entity.CurrencyExchange, error)
	// GetActive devuelve la única fila activa del triple (empresa, moneda, tipo), o nil.
	GetActive(companyID, currencyID string, excType int16) (*entity.CurrencyExchange, error)
	// GetActiveByType devuelve la fila activa de un tipo para la empresa, sin fijar moneda.
	GetActiveByType(companyID string, excType int16) (*entity.CurrencyExchange, error)
	Update(exc *entity.CurrencyExchange) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.CurrencyExchange, error)
}

// ExchangeHistoryRepository historial de tasas: solo inserción, nunca update ni delete.
type ExchangeHistoryRepository interface {
	Append(h *entity.CurrencyExchangeHistory) error
	ListByExchange(exchangeID string, limit, offset int) ([]*entity.CurrencyExchangeHistory, error)
}
