package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/application/usecase"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/pkg/validation"
)

// TaxHandler impuestos de la empresa activa.
type TaxHandler struct {
	uc *usecase.TaxUseCase
}

// NewTaxHandler construye el handler.
func NewTaxHandler(uc *usecase.TaxUseCase) *TaxHandler {
	return &TaxHandler{uc: uc}
}

func toTaxResponse(t *entity.Tax) dto.TaxResponse {
	return dto.TaxResponse{
		ID:         t.ID,
		CompanyID:  t.CompanyID,
		Code:       t.Code,
		Name:       t.Name,
		Percentage: t.Percentage,
		Type:       t.Type,
		Status:     t.Status,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// Create godoc
// @Summary      Crear impuesto
// @Tags         taxes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTaxRequest  true  "Datos del impuesto"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Router       /api/v1/taxes [post]
func (h *TaxHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTaxRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	tax, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "impuesto creado", toTaxResponse(tax))
}

// GetByID obtiene un impuesto de la empresa activa.
func (h *TaxHandler) GetByID(c *fiber.Ctx) error {
	tax, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "impuesto", toTaxResponse(tax))
}

// Update actualiza un impuesto (code inmutable; exento fuerza porcentaje 0).
func (h *TaxHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTaxRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	tax, err := h.uc.Update(GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "impuesto actualizado", toTaxResponse(tax))
}

// List impuestos de la empresa activa.
func (h *TaxHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.Normalize()

	taxes, err := h.uc.ListByCompany(GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TaxResponse, 0, len(taxes))
	for _, t := range taxes {
		out = append(out, toTaxResponse(t))
	}
	return respondOK(c, "impuestos", out)
}
