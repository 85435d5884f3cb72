package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCurrencyRequest alta de moneda de referencia (solo admin global).
type CreateCurrencyRequest struct {
	ISOCode string `json:"currency_iso_code" validate:"required,min=3,max=3"`
	Name    string `json:"currency_name" validate:"required,min=1,max=100"`
	Symbol  string `json:"currency_symbol" validate:"required,min=1,max=10"`
}

// CurrencyResponse salida de una moneda.
type CurrencyResponse struct {
	ID        string    `json:"currency_id"`
	ISOCode   string    `json:"currency_iso_code"`
	Name      string    `json:"currency_name"`
	Symbol    string    `json:"currency_symbol"`
	Status    int16     `json:"currency_status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateExchangeRequest alta de configuración cambiaria para la empresa activa.
type CreateExchangeRequest struct {
	CurrencyID string          `json:"currency_id" validate:"required"`
	Type       int16           `json:"currency_exc_type" validate:"required,oneof=1 2 3"`
	Rate       decimal.Decimal `json:"currency_exc_rate" validate:"required"`
	Method     string          `json:"currency_exc_method" validate:"required,oneof=DIVIDE MULTIPLY"`
}

// UpdateExchangeRequest cambio de tasa/método; la tasa anterior queda en el historial.
type UpdateExchangeRequest struct {
	Rate   decimal.Decimal `json:"currency_exc_rate" validate:"required"`
	Method string          `json:"currency_exc_method" validate:"required,oneof=DIVIDE MULTIPLY"`
}

// ExchangeResponse salida de una configuración cambiaria.
type ExchangeResponse struct {
	ID         string          `json:"currency_exc_id"`
	CompanyID  string          `json:"company_id"`
	CurrencyID string          `json:"currency_id"`
	Type       int16           `json:"currency_exc_type"`
	Rate       decimal.Decimal `json:"currency_exc_rate"`
	Method     string          `json:"currency_exc_method"`
	Status     int16           `json:"currency_exc_status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ExchangeHistoryResponse fila del historial de tasas (solo lectura).
type ExchangeHistoryResponse struct {
	ID         string          `json:"currency_exc_history_id"`
	ExchangeID string          `json:"currency_exc_id"`
	OldRate    decimal.Decimal `json:"old_rate"`
	OldMethod  string          `json:"old_method"`
	UserID     string          `json:"user_id"`
	RecordedAt time.Time       `json:"recorded_at"`
}
