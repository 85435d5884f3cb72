package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/internal/domain/pricing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestConvert_Multiply(t *testing.T) {
	out, err := pricing.Convert(dec("100.000"), dec("36.12345678"), entity.ExchangeMethodMultiply)
	require.NoError(t, err)
	assert.True(t, out.Equal(dec("3612.346")), "esperado 3612.346, obtenido %s", out)
}

func TestConvert_Divide(t *testing.T) {
	out, err := pricing.Convert(dec("3612.346"), dec("36.12345678"), entity.ExchangeMethodDivide)
	require.NoError(t, err)
	assert.True(t, out.Equal(dec("100.000")), "esperado 100.000, obtenido %s", out)
}

// Ida y vuelta MULTIPLY∘DIVIDE dentro de la tolerancia de 3 decimales.
func TestConvert_RoundTrip(t *testing.T) {
	rates := []string{"1.00000000", "36.12345678", "100.12345678", "0.00012345"}
	amounts := []string{"1.000", "19.990", "1234567.891"}
	tolerance := dec("0.001")

	for _, r := range rates {
		for _, a := range amounts {
			mul, err := pricing.Convert(dec(a), dec(r), entity.ExchangeMethodMultiply)
			require.NoError(t, err)
			back, err := pricing.Convert(mul, dec(r), entity.ExchangeMethodDivide)
			require.NoError(t, err)

			diff := back.Sub(dec(a)).Abs()
			// Con tasas muy pequeñas el redondeo intermedio a 3 decimales amplifica el error;
			// se admite tolerancia proporcional a 1/tasa.
			allowed := tolerance.Add(tolerance.DivRound(dec(r), pricing.AmountScale))
			assert.True(t, diff.LessThanOrEqual(allowed),
				"round-trip monto=%s tasa=%s: diff=%s > %s", a, r, diff, allowed)
		}
	}
}

func TestConvert_DivideByZero(t *testing.T) {
	_, err := pricing.Convert(dec("10.000"), decimal.Zero, entity.ExchangeMethodDivide)
	assert.ErrorIs(t, err, domain.ErrExchangeRateZero)
}

func TestConvert_MultiplyByZeroIsValid(t *testing.T) {
	out, err := pricing.Convert(dec("10.000"), decimal.Zero, entity.ExchangeMethodMultiply)
	require.NoError(t, err)
	assert.True(t, out.IsZero())
}

func TestConvert_UnknownMethod(t *testing.T) {
	_, err := pricing.Convert(dec("10.000"), dec("2.00000000"), "POWER")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConvertWith_InactiveExchange(t *testing.T) {
	exc := &entity.CurrencyExchange{
		Rate:   dec("36.00000000"),
		Method: entity.ExchangeMethodMultiply,
		Status: entity.StatusInactive,
	}
	_, err := pricing.ConvertWith(dec("1.000"), exc)
	assert.ErrorIs(t, err, domain.ErrExchangeNotConfigured)

	_, err = pricing.ConvertWith(dec("1.000"), nil)
	assert.ErrorIs(t, err, domain.ErrExchangeNotConfigured)
}
