package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de impuesto.
const (
	TaxTypePercent int16 = 1
	TaxTypeFixed   int16 = 2
	TaxTypeExempt  int16 = 3
)

// Tax impuesto configurado por empresa. Code es único por empresa.
type Tax struct {
	ID         string
	CompanyID  string
	Code       string
	Name       string
	Percentage decimal.Decimal // 0 para exentos; monto fijo si Type es fixed
	Type       int16
	Status     int16
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
