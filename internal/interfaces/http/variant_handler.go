package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/application/usecase"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/pkg/validation"
)

// VariantHandler variantes vendibles de los ítems de la empresa activa.
type VariantHandler struct {
	uc *usecase.VariantUseCase
}

// NewVariantHandler construye el handler.
func NewVariantHandler(uc *usecase.VariantUseCase) *VariantHandler {
	return &VariantHandler{uc: uc}
}

func toVariantResponse(v *entity.InventoryVariant, attrValues []string) dto.VariantResponse {
	return dto.VariantResponse{
		ID:         v.ID,
		ItemID:     v.ItemID,
		SKU:        v.SKU,
		Name:       v.Name,
		Status:     v.Status,
		AttrValues: attrValues,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

// Create godoc
// @Summary      Crear variante
// @Tags         variants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVariantRequest  true  "Datos de la variante"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Router       /api/v1/inventory/variants [post]
func (h *VariantHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVariantRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	variant, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "variante creada", toVariantResponse(variant, in.AttrValues))
}

// GetByID obtiene una variante con sus valores de atributo.
func (h *VariantHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	variant, err := h.uc.GetByID(companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	attrValues, err := h.uc.ListAttrValueIDs(companyID, variant.ID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "variante", toVariantResponse(variant, attrValues))
}

// Update actualiza una variante (sku inmutable); AttrValues no nulo
// reemplaza la asociación completa.
func (h *VariantHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateVariantRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	companyID := GetCompanyID(c)
	variant, err := h.uc.Update(companyID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	attrValues, err := h.uc.ListAttrValueIDs(companyID, variant.ID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "variante actualizada", toVariantResponse(variant, attrValues))
}

// ListByItem variantes de un ítem.
func (h *VariantHandler) ListByItem(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.Normalize()

	variants, err := h.uc.ListByItem(GetCompanyID(c), c.Params("itemId"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.VariantResponse, 0, len(variants))
	for _, v := range variants {
		out = append(out, toVariantResponse(v, nil))
	}
	return respondOK(c, "variantes", out)
}
