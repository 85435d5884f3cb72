package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SnapshotPriceRequest body para POST /api/v1/inventory/prices.
// Los montos llegan en moneda local; estable y referencia se derivan de las
// tasas configuradas de la empresa.
type SnapshotPriceRequest struct {
	VariantID      string          `json:"inv_var_id" validate:"required"`
	PriceType      int16           `json:"price_type_id" validate:"required,min=1"`
	PriceLocal     decimal.Decimal `json:"price_local" validate:"required"`
	TaxAmountLocal decimal.Decimal `json:"tax_amount_local"`
	CostLocal      decimal.Decimal `json:"cost_local"`
}

// PriceHistoryResponse snapshot de precios en las tres monedas.
type PriceHistoryResponse struct {
	ID               string          `json:"price_history_id"`
	VariantID        string          `json:"inv_var_id"`
	PriceType        int16           `json:"price_type_id"`
	PriceLocal       decimal.Decimal `json:"price_local"`
	PriceStable      decimal.Decimal `json:"price_stable"`
	PriceRef         decimal.Decimal `json:"price_ref"`
	TaxAmountLocal   decimal.Decimal `json:"tax_amount_local"`
	CostLocal        decimal.Decimal `json:"cost_local"`
	CostStable       decimal.Decimal `json:"cost_stable"`
	CostRef          decimal.Decimal `json:"cost_ref"`
	ProfitLocal      decimal.Decimal `json:"profit_local"`
	ProfitStable     decimal.Decimal `json:"profit_stable"`
	ProfitRef        decimal.Decimal `json:"profit_ref"`
	LocalCurrencyID  string          `json:"local_currency_id"`
	StableCurrencyID string          `json:"stable_currency_id"`
	RefCurrencyID    string          `json:"ref_currency_id"`
	IsCurrent        bool            `json:"is_current"`
	ValidFrom        time.Time       `json:"valid_from"`
	CreatedAt        time.Time       `json:"created_at"`
}
