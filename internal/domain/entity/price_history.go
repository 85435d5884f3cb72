package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceTypeGeneral tipo de precio por defecto del catálogo; el reporte de
// existencias valoriza el stock con el costo vigente de este tipo.
const PriceTypeGeneral int16 = 1

// InventoryPriceHistory snapshot de precios/costos de una variante por tipo de precio,
// en las tres vistas de moneda (local, estable, referencia).
// Invariante: a lo sumo una fila con IsCurrent por (variante, tipo de precio).
// Las filas históricas nunca se editan; corregir implica insertar un snapshot nuevo.
type InventoryPriceHistory struct {
	ID               string
	VariantID        string
	PriceType        int16
	PriceLocal       decimal.Decimal
	PriceStable      decimal.Decimal
	PriceRef         decimal.Decimal
	TaxAmountLocal   decimal.Decimal
	CostLocal        decimal.Decimal
	CostStable       decimal.Decimal
	CostRef          decimal.Decimal
	ProfitLocal      decimal.Decimal
	ProfitStable     decimal.Decimal
	ProfitRef        decimal.Decimal
	LocalCurrencyID  string
	StableCurrencyID string
	RefCurrencyID    string
	IsCurrent        bool
	ValidFrom        time.Time
	UserID           string
	CreatedAt        time.Time
}
