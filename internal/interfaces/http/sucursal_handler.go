package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/application/usecase"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/pkg/validation"
)

// SucursalHandler sucursales de la empresa activa.
type SucursalHandler struct {
	uc *usecase.SucursalUseCase
}

// NewSucursalHandler construye el handler.
func NewSucursalHandler(uc *usecase.SucursalUseCase) *SucursalHandler {
	return &SucursalHandler{uc: uc}
}

func toSucursalResponse(s *entity.Sucursal) dto.SucursalResponse {
	return dto.SucursalResponse{
		ID:        s.ID,
		CompanyID: s.CompanyID,
		Code:      s.Code,
		Name:      s.Name,
		Address:   s.Address,
		Phone:     s.Phone,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// Create alta de sucursal en la empresa activa.
func (h *SucursalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSucursalRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	sucursal, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "sucursal creada", toSucursalResponse(sucursal))
}

// GetByID obtiene una sucursal de la empresa activa.
func (h *SucursalHandler) GetByID(c *fiber.Ctx) error {
	sucursal, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "sucursal", toSucursalResponse(sucursal))
}

// Update actualiza una sucursal (code inmutable).
func (h *SucursalHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSucursalRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	sucursal, err := h.uc.Update(GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "sucursal actualizada", toSucursalResponse(sucursal))
}

// List sucursales de la empresa activa.
func (h *SucursalHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.Normalize()

	sucursales, err := h.uc.ListByCompany(GetCompanyID(c), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SucursalResponse, 0, len(sucursales))
	for _, s := range sucursales {
		out = append(out, toSucursalResponse(s))
	}
	return respondOK(c, "sucursales", out)
}

// ReplaceTaxes reemplazo idempotente de impuestos de la sucursal (todo-o-nada).
func (h *SucursalHandler) ReplaceTaxes(c *fiber.Ctx) error {
	var in dto.ReplaceAssociationsRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	if err := h.uc.ReplaceTaxes(GetCompanyID(c), c.Params("id"), in.IDs); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "impuestos actualizados", nil)
}

// ListTaxes impuestos asociados a la sucursal.
func (h *SucursalHandler) ListTaxes(c *fiber.Ctx) error {
	ids, err := h.uc.ListTaxIDs(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "impuestos de la sucursal", ids)
}
