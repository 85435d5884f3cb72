package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryLot lote de una variante almacenable.
// Invariante: ExpirationDate estrictamente posterior a ManufactureDate cuando ambas existen.
// A diferencia del resto de entidades, los lotes sí admiten borrado físico.
type InventoryLot struct {
	ID              string
	VariantID       string
	LotNumber       string // requerido, máx 100
	LotOrigin       string // máx 100
	ManufactureDate *time.Time
	ExpirationDate  *time.Time
	UnitCost        decimal.Decimal // costo en moneda local, >= 0
	RefUnitCost     decimal.Decimal // costo en moneda de referencia, >= 0
	CurrencyID      string
	RefCurrencyID   string
	Status          int16
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
