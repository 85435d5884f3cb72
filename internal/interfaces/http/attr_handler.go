package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/application/usecase"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/pkg/validation"
)

// AttrHandler atributos de variante y sus valores permitidos.
type AttrHandler struct {
	uc *usecase.AttrUseCase
}

// NewAttrHandler construye el handler.
func NewAttrHandler(uc *usecase.AttrUseCase) *AttrHandler {
	return &AttrHandler{uc: uc}
}

func toAttrResponse(a *entity.InventoryAttr) dto.AttrResponse {
	return dto.AttrResponse{
		ID:        a.ID,
		CompanyID: a.CompanyID,
		Name:      a.Name,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toAttrValueResponse(v *entity.InventoryAttrValue) dto.AttrValueResponse {
	return dto.AttrValueResponse{
		ID:        v.ID,
		AttrID:    v.AttrID,
		Value:     v.Value,
		Status:    v.Status,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// CreateAttr alta de atributo (nombre único por empresa).
func (h *AttrHandler) CreateAttr(c *fiber.Ctx) error {
	var in dto.CreateAttrRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	attr, err := h.uc.CreateAttr(GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "atributo creado", toAttrResponse(attr))
}

// GetAttr obtiene un atributo de la empresa activa.
func (h *AttrHandler) GetAttr(c *fiber.Ctx) error {
	attr, err := h.uc.GetAttr(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "atributo", toAttrResponse(attr))
}

// ListAttrs atributos de la empresa activa.
func (h *AttrHandler) ListAttrs(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.Normalize()

	attrs, err := h.uc.ListAttrs(GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AttrResponse, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, toAttrResponse(a))
	}
	return respondOK(c, "atributos", out)
}

// CreateValue alta de valor permitido (único por atributo).
func (h *AttrHandler) CreateValue(c *fiber.Ctx) error {
	var in dto.CreateAttrValueRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	value, err := h.uc.CreateValue(GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "valor creado", toAttrValueResponse(value))
}

// ListValues valores permitidos de un atributo.
func (h *AttrHandler) ListValues(c *fiber.Ctx) error {
	values, err := h.uc.ListValues(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AttrValueResponse, 0, len(values))
	for _, v := range values {
		out = append(out, toAttrValueResponse(v))
	}
	return respondOK(c, "valores del atributo", out)
}
