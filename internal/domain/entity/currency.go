package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cambio que una empresa puede configurar en paralelo.
const (
	ExchangeTypeLocal  int16 = 1 // moneda local
	ExchangeTypeStable int16 = 2 // moneda estable (USD, EUR...)
	ExchangeTypeRef    int16 = 3 // moneda de referencia
)

// Métodos de conversión de la tasa.
const (
	ExchangeMethodDivide   = "DIVIDE"
	ExchangeMethodMultiply = "MULTIPLY"
)

// Currency moneda de referencia global (inmutable, compartida entre empresas).
type Currency struct {
	ID        string
	ISOCode   string // único (USD, VES, COP...)
	Name      string
	Symbol    string
	Status    int16
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CurrencyExchange configuración de tasa por (empresa, moneda, tipo).
// Invariante: a lo sumo una fila activa por ese triple.
// Rate lleva 8 decimales de precisión.
type CurrencyExchange struct {
	ID         string
	CompanyID  string
	CurrencyID string
	Type       int16 // ExchangeTypeLocal/Stable/Ref
	Rate       decimal.Decimal
	Method     string // DIVIDE | MULTIPLY
	Status     int16
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CurrencyExchangeHistory registro inmutable de cada cambio de tasa.
// Solo se inserta, nunca se actualiza ni se borra.
type CurrencyExchangeHistory struct {
	ID         string
	ExchangeID string
	OldRate    decimal.Decimal
	OldMethod  string
	UserID     string
	RecordedAt time.Time
}
