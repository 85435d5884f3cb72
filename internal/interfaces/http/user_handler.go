package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/application/usecase"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/pkg/validation"
)

// UserHandler administración de usuarios (rutas de admin global, salvo
// el cambio de contraseña propio).
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		IsAdmin:   u.IsAdmin,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.Response
// @Router       /api/v1/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	user, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "usuario creado", toUserResponse(user))
}

// GetByID obtiene un usuario.
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	user, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "usuario", toUserResponse(user))
}

// List lista usuarios paginados.
func (h *UserHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.Normalize()

	users, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return respondOK(c, "usuarios", out)
}

// Update actualiza datos del usuario (el diff queda en la bitácora).
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	user, err := h.uc.Update(GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "usuario actualizado", toUserResponse(user))
}

// ChangePassword cambio de contraseña del propio usuario autenticado.
func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	if err := h.uc.ChangePassword(GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "contraseña actualizada", nil)
}

// Deactivate desactiva un usuario (nunca se borra físicamente).
func (h *UserHandler) Deactivate(c *fiber.Ctx) error {
	user, err := h.uc.Deactivate(GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "usuario desactivado", toUserResponse(user))
}

// Activate reactiva un usuario desactivado.
func (h *UserHandler) Activate(c *fiber.Ctx) error {
	user, err := h.uc.Activate(GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "usuario activado", toUserResponse(user))
}

// AssignCompany asigna el usuario a una empresa.
func (h *UserHandler) AssignCompany(c *fiber.Ctx) error {
	var in dto.AssignCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	if err := h.uc.AssignCompany(c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return respondCreated(c, "empresa asignada", nil)
}

// RemoveCompany quita la membresía usuario↔empresa.
func (h *UserHandler) RemoveCompany(c *fiber.Ctx) error {
	if err := h.uc.RemoveCompany(c.Params("id"), c.Params("companyId")); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "empresa removida", nil)
}

// ListCompanies empresas a las que pertenece el usuario.
func (h *UserHandler) ListCompanies(c *fiber.Ctx) error {
	memberships, err := h.uc.ListCompanies(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	type membership struct {
		CompanyID      string `json:"company_id"`
		IsCompanyAdmin bool   `json:"is_company_admin"`
	}
	out := make([]membership, 0, len(memberships))
	for _, m := range memberships {
		out = append(out, membership{CompanyID: m.CompanyID, IsCompanyAdmin: m.IsCompanyAdmin})
	}
	return respondOK(c, "empresas del usuario", out)
}

// ListAudit bitácora inmutable del usuario, más reciente primero.
func (h *UserHandler) ListAudit(c *fiber.Ctx) error {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.Normalize()

	rows, err := h.uc.ListAudit(c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.UserAuditResponse, 0, len(rows))
	for _, a := range rows {
		resp := dto.UserAuditResponse{
			ID:        a.ID,
			UserID:    a.UserID,
			Action:    a.Action,
			ActorID:   a.ActorID,
			CreatedAt: a.CreatedAt,
		}
		if len(a.Before) > 0 {
			var before map[string]any
			if err := json.Unmarshal(a.Before, &before); err == nil {
				resp.Before = before
			}
		}
		if len(a.After) > 0 {
			var after map[string]any
			if err := json.Unmarshal(a.After, &after); err == nil {
				resp.After = after
			}
		}
		out = append(out, resp)
	}
	return respondOK(c, "bitácora del usuario", out)
}
