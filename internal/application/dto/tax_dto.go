package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTaxRequest alta de impuesto para la empresa activa.
type CreateTaxRequest struct {
	Code       string          `json:"tax_code" validate:"required,min=1,max=20"`
	Name       string          `json:"tax_name" validate:"required,min=1,max=100"`
	Percentage decimal.Decimal `json:"tax_percentage"`
	Type       int16           `json:"tax_type" validate:"required,oneof=1 2 3"`
}

// UpdateTaxRequest actualización de impuesto.
type UpdateTaxRequest struct {
	Name       *string          `json:"tax_name" validate:"omitempty,min=1,max=100"`
	Percentage *decimal.Decimal `json:"tax_percentage"`
	Type       *int16           `json:"tax_type" validate:"omitempty,oneof=1 2 3"`
	Status     *int16           `json:"tax_status" validate:"omitempty,oneof=0 1"`
}

// TaxResponse salida de un impuesto.
type TaxResponse struct {
	ID         string          `json:"tax_id"`
	CompanyID  string          `json:"company_id"`
	Code       string          `json:"tax_code"`
	Name       string          `json:"tax_name"`
	Percentage decimal.Decimal `json:"tax_percentage"`
	Type       int16           `json:"tax_type"`
	Status     int16           `json:"tax_status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
