package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/application/usecase"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/pkg/validation"
)

// CurrencyHandler catálogo global de monedas (alta solo admin global).
type CurrencyHandler struct {
	uc *usecase.CurrencyUseCase
}

// NewCurrencyHandler construye el handler.
func NewCurrencyHandler(uc *usecase.CurrencyUseCase) *CurrencyHandler {
	return &CurrencyHandler{uc: uc}
}

func toCurrencyResponse(cur *entity.Currency) dto.CurrencyResponse {
	return dto.CurrencyResponse{
		ID:        cur.ID,
		ISOCode:   cur.ISOCode,
		Name:      cur.Name,
		Symbol:    cur.Symbol,
		Status:    cur.Status,
		CreatedAt: cur.CreatedAt,
		UpdatedAt: cur.UpdatedAt,
	}
}

// Create alta de moneda (ISO único global).
func (h *CurrencyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCurrencyRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	currency, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "moneda creada", toCurrencyResponse(currency))
}

// GetByID obtiene una moneda.
func (h *CurrencyHandler) GetByID(c *fiber.Ctx) error {
	currency, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "moneda", toCurrencyResponse(currency))
}

// List lista el catálogo de monedas.
func (h *CurrencyHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.Normalize()

	currencies, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CurrencyResponse, 0, len(currencies))
	for _, cur := range currencies {
		out = append(out, toCurrencyResponse(cur))
	}
	return respondOK(c, "monedas", out)
}
