package dto

import "github.com/dvillegas/multierp-api/pkg/validation"

// Response sobre estándar de la API: { success, message, data, errors? }.
type Response struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Data    interface{}             `json:"data,omitempty"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

// PageRequest paginación para listados. Acepta page/limit u offset/limit.
type PageRequest struct {
	Page   int `query:"page"`
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// Normalize aplica valores por defecto y deriva offset desde page cuando viene page.
func (p *PageRequest) Normalize() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Page > 0 {
		p.Offset = (p.Page - 1) * p.Limit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
