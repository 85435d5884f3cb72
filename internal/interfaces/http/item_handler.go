package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/application/usecase"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/pkg/validation"
)

// ItemHandler ítems (productos y servicios) de la empresa activa.
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

func toItemResponse(i *entity.InventoryItem, taxes []string) dto.ItemResponse {
	return dto.ItemResponse{
		ID:           i.ID,
		FamilyID:     i.FamilyID,
		Code:         i.Code,
		Name:         i.Name,
		Description:  i.Description,
		Type:         i.Type,
		HasVariants:  i.HasVariants,
		IsExempt:     i.IsExempt,
		IsStockable:  i.IsStockable,
		IsLotManaged: i.IsLotManaged,
		Status:       i.Status,
		Taxes:        taxes,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// Create godoc
// @Summary      Crear ítem
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del ítem"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Router       /api/v1/inventory/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	item, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "ítem creado", toItemResponse(item, in.Taxes))
}

// GetByID obtiene un ítem con sus impuestos asociados.
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	item, err := h.uc.GetByID(companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	taxes, err := h.uc.ListTaxIDs(companyID, item.ID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "ítem", toItemResponse(item, taxes))
}

// Update actualiza un ítem; Taxes no nulo reemplaza la asociación completa.
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	companyID := GetCompanyID(c)
	item, err := h.uc.Update(companyID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	taxes, err := h.uc.ListTaxIDs(companyID, item.ID)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "ítem actualizado", toItemResponse(item, taxes))
}

// ListByFamily ítems de una familia de la empresa activa.
func (h *ItemHandler) ListByFamily(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.Normalize()

	items, err := h.uc.ListByFamily(GetCompanyID(c), c.Params("familyId"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, toItemResponse(i, nil))
	}
	return respondOK(c, "ítems", out)
}
