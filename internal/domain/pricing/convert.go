package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
)

// Escalas de punto fijo: montos/precios a 3 decimales, tasas a 8.
const (
	AmountScale = 3
	RateScale   = 8
)

// Convert convierte un monto con la tasa y el método configurados.
// MULTIPLY: monto × tasa; DIVIDE: monto ÷ tasa (ErrExchangeRateZero si la tasa es 0).
// Siempre aritmética decimal, nunca flotante binario; el resultado se redondea a 3 decimales.
func Convert(amount, rate decimal.Decimal, method string) (decimal.Decimal, error) {
	switch method {
	case entity.ExchangeMethodMultiply:
		return amount.Mul(rate).Round(AmountScale), nil
	case entity.ExchangeMethodDivide:
		if rate.IsZero() {
			return decimal.Zero, domain.ErrExchangeRateZero
		}
		return amount.DivRound(rate, AmountScale), nil
	default:
		return decimal.Zero, domain.ErrInvalidInput
	}
}

// ConvertWith convierte usando la configuración cambiaria activa.
func ConvertWith(amount decimal.Decimal, exc *entity.CurrencyExchange) (decimal.Decimal, error) {
	if exc == nil || exc.Status != entity.StatusActive {
		return decimal.Zero, domain.ErrExchangeNotConfigured
	}
	return Convert(amount, exc.Rate, exc.Method)
}
