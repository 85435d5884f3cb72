package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/application/pricing"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/pkg/validation"
)

// PriceHandler snapshots de precios y cotización puntual.
type PriceHandler struct {
	uc *pricing.PriceUseCase
}

// NewPriceHandler construye el handler.
func NewPriceHandler(uc *pricing.PriceUseCase) *PriceHandler {
	return &PriceHandler{uc: uc}
}

func toPriceResponse(p *entity.InventoryPriceHistory) dto.PriceHistoryResponse {
	return dto.PriceHistoryResponse{
		ID:               p.ID,
		VariantID:        p.VariantID,
		PriceType:        p.PriceType,
		PriceLocal:       p.PriceLocal,
		PriceStable:      p.PriceStable,
		PriceRef:         p.PriceRef,
		TaxAmountLocal:   p.TaxAmountLocal,
		CostLocal:        p.CostLocal,
		CostStable:       p.CostStable,
		CostRef:          p.CostRef,
		ProfitLocal:      p.ProfitLocal,
		ProfitStable:     p.ProfitStable,
		ProfitRef:        p.ProfitRef,
		LocalCurrencyID:  p.LocalCurrencyID,
		StableCurrencyID: p.StableCurrencyID,
		RefCurrencyID:    p.RefCurrencyID,
		IsCurrent:        p.IsCurrent,
		ValidFrom:        p.ValidFrom,
		CreatedAt:        p.CreatedAt,
	}
}

// Snapshot godoc
// @Summary      Registrar snapshot de precios
// @Tags         prices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SnapshotPriceRequest  true  "Precio/costo en moneda local"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Router       /api/v1/inventory/prices [post]
func (h *PriceHandler) Snapshot(c *fiber.Ctx) error {
	var in dto.SnapshotPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	snapshot, err := h.uc.SnapshotPrice(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "snapshot registrado", toPriceResponse(snapshot))
}

// GetCurrent snapshot vigente de la variante para un tipo de precio.
func (h *PriceHandler) GetCurrent(c *fiber.Ctx) error {
	priceType := int16(c.QueryInt("price_type", int(entity.PriceTypeGeneral)))
	snapshot, err := h.uc.GetCurrent(GetCompanyID(c), c.Params("variantId"), priceType)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "precio vigente", toPriceResponse(snapshot))
}

// ListByVariant historial completo de snapshots de la variante.
func (h *PriceHandler) ListByVariant(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.Normalize()

	rows, err := h.uc.ListByVariant(GetCompanyID(c), c.Params("variantId"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PriceHistoryResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, toPriceResponse(p))
	}
	return respondOK(c, "historial de precios", out)
}

// Quote convierte un monto local con la tasa activa del tipo indicado.
func (h *PriceHandler) Quote(c *fiber.Ctx) error {
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		return respondFieldErrors(c, []validation.FieldError{{Path: "amount", Msg: "amount must be a decimal"}})
	}
	excType := int16(c.QueryInt("exc_type", int(entity.ExchangeTypeStable)))

	converted, err := h.uc.Quote(GetCompanyID(c), amount, excType)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "cotización", fiber.Map{
		"amount":    amount,
		"exc_type":  excType,
		"converted": converted,
	})
}
