package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLotRequest alta de lote. La validación de negocio (fechas, costos,
// longitudes) corre en el validador puro de dominio y acumula errores por campo.
type CreateLotRequest struct {
	VariantID       string          `json:"inv_var_id"`
	LotNumber       string          `json:"inv_lot_number"`
	LotOrigin       string          `json:"inv_lot_origin"`
	ManufactureDate *time.Time      `json:"inv_lot_manufacture_date"`
	ExpirationDate  *time.Time      `json:"inv_lot_expiration_date"`
	UnitCost        decimal.Decimal `json:"inv_lot_unit_cost"`
	RefUnitCost     decimal.Decimal `json:"inv_lot_ref_unit_cost"`
	CurrencyID      string          `json:"currency_id"`
	RefCurrencyID   string          `json:"ref_currency_id"`
}

// UpdateLotRequest actualización de lote.
type UpdateLotRequest struct {
	LotOrigin       *string          `json:"inv_lot_origin"`
	ManufactureDate *time.Time       `json:"inv_lot_manufacture_date"`
	ExpirationDate  *time.Time       `json:"inv_lot_expiration_date"`
	UnitCost        *decimal.Decimal `json:"inv_lot_unit_cost"`
	RefUnitCost     *decimal.Decimal `json:"inv_lot_ref_unit_cost"`
	Status          *int16           `json:"inv_lot_status" validate:"omitempty,oneof=0 1"`
}

// LotResponse salida de un lote.
type LotResponse struct {
	ID              string          `json:"inv_lot_id"`
	VariantID       string          `json:"inv_var_id"`
	LotNumber       string          `json:"inv_lot_number"`
	LotOrigin       string          `json:"inv_lot_origin"`
	ManufactureDate *time.Time      `json:"inv_lot_manufacture_date,omitempty"`
	ExpirationDate  *time.Time      `json:"inv_lot_expiration_date,omitempty"`
	UnitCost        decimal.Decimal `json:"inv_lot_unit_cost"`
	RefUnitCost     decimal.Decimal `json:"inv_lot_ref_unit_cost"`
	CurrencyID      string          `json:"currency_id,omitempty"`
	RefCurrencyID   string          `json:"ref_currency_id,omitempty"`
	Status          int16           `json:"inv_lot_status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
