package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// FieldError error de validación a nivel de campo.
type FieldError struct {
	Path string `json:"path"`
	Msg  string `json:"msg"`
}

// ValidationResult resultado agregado de una validación pura.
// No lanza errores: el caller decide cómo responder con la lista completa.
type ValidationResult struct {
	IsValid bool
	Errors  []FieldError
}

func (r *ValidationResult) add(path, msg string) {
	r.IsValid = false
	r.Errors = append(r.Errors, FieldError{Path: path, Msg: msg})
}

// LotInput campos de un lote a validar (creación o actualización).
type LotInput struct {
	VariantID       string
	LotNumber       string
	LotOrigin       string
	ManufactureDate *time.Time
	ExpirationDate  *time.Time
	UnitCost        decimal.Decimal
	RefUnitCost     decimal.Decimal
}

const maxLotFieldLen = 100

// ValidateLot valida un lote sin efectos secundarios y acumula todos los errores
// de campo para que la respuesta HTTP los reporte juntos.
// Reglas: inv_var_id y lot_number requeridos; lot_number/lot_origin ≤ 100;
// costos ≥ 0; vencimiento estrictamente posterior a fabricación cuando ambos existen.
func ValidateLot(in LotInput) ValidationResult {
	res := ValidationResult{IsValid: true}

	if in.VariantID == "" {
		res.add("inv_var_id", "inv_var_id is required")
	}
	if in.LotNumber == "" {
		res.add("inv_lot_number", "inv_lot_number is required")
	} else if len(in.LotNumber) > maxLotFieldLen {
		res.add("inv_lot_number", "inv_lot_number must be at most 100 characters")
	}
	if len(in.LotOrigin) > maxLotFieldLen {
		res.add("inv_lot_origin", "inv_lot_origin must be at most 100 characters")
	}
	if in.UnitCost.IsNegative() {
		res.add("inv_lot_unit_cost", "inv_lot_unit_cost must be >= 0")
	}
	if in.RefUnitCost.IsNegative() {
		res.add("inv_lot_ref_unit_cost", "inv_lot_ref_unit_cost must be >= 0")
	}
	if in.ManufactureDate != nil && in.ExpirationDate != nil {
		if !in.ExpirationDate.After(*in.ManufactureDate) {
			res.add("inv_lot_expiration_date", "inv_lot_expiration_date must be after inv_lot_manufacture_date")
		}
	}
	return res
}
