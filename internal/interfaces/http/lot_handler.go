package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/application/usecase"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	domaininv "github.com/dvillegas/multierp-api/internal/domain/inventory"
	"github.com/dvillegas/multierp-api/pkg/validation"
)

// LotHandler lotes de las variantes de la empresa activa.
type LotHandler struct {
	uc *usecase.LotUseCase
}

// NewLotHandler construye el handler.
func NewLotHandler(uc *usecase.LotUseCase) *LotHandler {
	return &LotHandler{uc: uc}
}

func toLotResponse(l *entity.InventoryLot) dto.LotResponse {
	return dto.LotResponse{
		ID:              l.ID,
		VariantID:       l.VariantID,
		LotNumber:       l.LotNumber,
		LotOrigin:       l.LotOrigin,
		ManufactureDate: l.ManufactureDate,
		ExpirationDate:  l.ExpirationDate,
		UnitCost:        l.UnitCost,
		RefUnitCost:     l.RefUnitCost,
		CurrencyID:      l.CurrencyID,
		RefCurrencyID:   l.RefCurrencyID,
		Status:          l.Status,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

// toFieldErrors adapta los errores acumulados del validador de dominio
// al formato de error por campo de la API.
func toFieldErrors(result *domaininv.ValidationResult) []validation.FieldError {
	out := make([]validation.FieldError, 0, len(result.Errors))
	for _, fe := range result.Errors {
		out = append(out, validation.FieldError{Path: fe.Path, Msg: fe.Msg})
	}
	return out
}

// Create godoc
// @Summary      Crear lote
// @Tags         lots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLotRequest  true  "Datos del lote"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Router       /api/v1/inventory/lots [post]
func (h *LotHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	lot, result, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	if result != nil && !result.IsValid {
		return respondFieldErrors(c, toFieldErrors(result))
	}
	return respondCreated(c, "lote creado", toLotResponse(lot))
}

// GetByID obtiene un lote de la empresa activa.
func (h *LotHandler) GetByID(c *fiber.Ctx) error {
	lot, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "lote", toLotResponse(lot))
}

// Update actualiza un lote (lot_number inmutable); el estado resultante
// se revalida completo.
func (h *LotHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	lot, result, err := h.uc.Update(GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	if result != nil && !result.IsValid {
		return respondFieldErrors(c, toFieldErrors(result))
	}
	return respondOK(c, "lote actualizado", toLotResponse(lot))
}

// Delete borrado físico del lote.
func (h *LotHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "lote eliminado", nil)
}

// ListByVariant lotes de una variante.
func (h *LotHandler) ListByVariant(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.Normalize()

	lots, err := h.uc.ListByVariant(GetCompanyID(c), c.Params("variantId"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, toLotResponse(l))
	}
	return respondOK(c, "lotes", out)
}
