package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/application/usecase"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/pkg/validation"
)

// FamilyHandler familias de inventario de la empresa activa.
type FamilyHandler struct {
	uc *usecase.FamilyUseCase
}

// NewFamilyHandler construye el handler.
func NewFamilyHandler(uc *usecase.FamilyUseCase) *FamilyHandler {
	return &FamilyHandler{uc: uc}
}

func toFamilyResponse(f *entity.InventoryFamily) dto.FamilyResponse {
	return dto.FamilyResponse{
		ID:           f.ID,
		CompanyID:    f.CompanyID,
		Code:         f.Code,
		Name:         f.Name,
		DefaultTaxID: f.DefaultTaxID,
		IsStockable:  f.IsStockable,
		IsLotManaged: f.IsLotManaged,
		Status:       f.Status,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// Create godoc
// @Summary      Crear familia de inventario
// @Tags         families
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFamilyRequest  true  "Datos de la familia"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Router       /api/v1/inventory/families [post]
func (h *FamilyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFamilyRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	family, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "familia creada", toFamilyResponse(family))
}

// GetByID obtiene una familia de la empresa activa.
func (h *FamilyHandler) GetByID(c *fiber.Ctx) error {
	family, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "familia", toFamilyResponse(family))
}

// Update actualiza una familia (code inmutable).
func (h *FamilyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFamilyRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	family, err := h.uc.Update(GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "familia actualizada", toFamilyResponse(family))
}

// List familias de la empresa activa.
func (h *FamilyHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.Normalize()

	families, err := h.uc.ListByCompany(GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.FamilyResponse, 0, len(families))
	for _, f := range families {
		out = append(out, toFamilyResponse(f))
	}
	return respondOK(c, "familias", out)
}
