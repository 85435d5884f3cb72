package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/application/usecase"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/pkg/validation"
)

// CompanyHandler empresas y grupos de empresas (rutas de admin global).
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

func toCompanyResponse(co *entity.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:        co.ID,
		GroupID:   co.GroupID,
		Name:      co.Name,
		FiscalID:  co.FiscalID,
		Country:   co.Country,
		Address:   co.Address,
		Phone:     co.Phone,
		Email:     co.Email,
		Status:    co.Status,
		CreatedAt: co.CreatedAt,
		UpdatedAt: co.UpdatedAt,
	}
}

func toGroupResponse(g *entity.CompanyGroup) dto.CompanyGroupResponse {
	return dto.CompanyGroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		Status:    g.Status,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

// CreateGroup alta de grupo de empresas.
func (h *CompanyHandler) CreateGroup(c *fiber.Ctx) error {
	var in dto.CreateCompanyGroupRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	group, err := h.uc.CreateGroup(in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "grupo creado", toGroupResponse(group))
}

// GetGroup obtiene un grupo.
func (h *CompanyHandler) GetGroup(c *fiber.Ctx) error {
	group, err := h.uc.GetGroup(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "grupo", toGroupResponse(group))
}

// ListGroups lista grupos paginados.
func (h *CompanyHandler) ListGroups(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.Normalize()

	groups, err := h.uc.ListGroups(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CompanyGroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, toGroupResponse(g))
	}
	return respondOK(c, "grupos", out)
}

// Create godoc
// @Summary      Crear empresa
// @Tags         companies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Router       /api/v1/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	company, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "empresa creada", toCompanyResponse(company))
}

// GetByID obtiene una empresa.
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	company, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "empresa", toCompanyResponse(company))
}

// Update actualiza una empresa (fiscal_id inmutable).
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	company, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "empresa actualizada", toCompanyResponse(company))
}

// List lista empresas paginadas.
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.Normalize()

	companies, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CompanyResponse, 0, len(companies))
	for _, co := range companies {
		out = append(out, toCompanyResponse(co))
	}
	return respondOK(c, "empresas", out)
}

// ReplaceCurrencies reemplazo idempotente de monedas habilitadas de la empresa.
func (h *CompanyHandler) ReplaceCurrencies(c *fiber.Ctx) error {
	var in dto.ReplaceAssociationsRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	if err := h.uc.ReplaceCurrencies(c.Params("id"), in.IDs); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "monedas actualizadas", nil)
}

// ListCurrencies monedas habilitadas de la empresa.
func (h *CompanyHandler) ListCurrencies(c *fiber.Ctx) error {
	ids, err := h.uc.ListCurrencyIDs(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "monedas de la empresa", ids)
}
