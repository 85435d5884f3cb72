package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/application/pricing"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/pkg/validation"
)

// ExchangeHandler configuración cambiaria de la empresa activa.
type ExchangeHandler struct {
	uc *pricing.ExchangeUseCase
}

// NewExchangeHandler construye el handler.
func NewExchangeHandler(uc *pricing.ExchangeUseCase) *ExchangeHandler {
	return &ExchangeHandler{uc: uc}
}

func toExchangeResponse(e *entity.CurrencyExchange) dto.ExchangeResponse {
	return dto.ExchangeResponse{
		ID:         e.ID,
		CompanyID:  e.CompanyID,
		CurrencyID: e.CurrencyID,
		Type:       e.Type,
		Rate:       e.Rate,
		Method:     e.Method,
		Status:     e.Status,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// Create godoc
// @Summary      Configurar tasa de cambio
// @Tags         exchanges
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExchangeRequest  true  "Tasa por (moneda, tipo)"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Router       /api/v1/exchanges [post]
func (h *ExchangeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateExchangeRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	exchange, err := h.uc.Create(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "tasa configurada", toExchangeResponse(exchange))
}

// Update cambia tasa/método; la tasa anterior queda en el historial.
func (h *ExchangeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateExchangeRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	exchange, err := h.uc.Update(c.Context(), c.Params("id"), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "tasa actualizada", toExchangeResponse(exchange))
}

// GetByID obtiene una configuración cambiaria de la empresa activa.
func (h *ExchangeHandler) GetByID(c *fiber.Ctx) error {
	exchange, err := h.uc.GetByID(c.Params("id"), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "tasa", toExchangeResponse(exchange))
}

// List configuraciones cambiarias de la empresa activa.
func (h *ExchangeHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.Normalize()

	exchanges, err := h.uc.ListByCompany(GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ExchangeResponse, 0, len(exchanges))
	for _, e := range exchanges {
		out = append(out, toExchangeResponse(e))
	}
	return respondOK(c, "tasas", out)
}

// ListHistory historial inmutable de tasas anteriores, más reciente primero.
func (h *ExchangeHandler) ListHistory(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.Normalize()

	rows, err := h.uc.ListHistory(c.Params("id"), GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ExchangeHistoryResponse, 0, len(rows))
	for _, hrow := range rows {
		out = append(out, dto.ExchangeHistoryResponse{
			ID:         hrow.ID,
			ExchangeID: hrow.ExchangeID,
			OldRate:    hrow.OldRate,
			OldMethod:  hrow.OldMethod,
			UserID:     hrow.UserID,
			RecordedAt: hrow.RecordedAt,
		})
	}
	return respondOK(c, "historial de tasas", out)
}
