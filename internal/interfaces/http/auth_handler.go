package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dvillegas/multierp-api/internal/application/auth"
	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/pkg/validation"
)

// AuthHandler maneja login, refresh, logout y reset de contraseña.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales (company_id opcional)"
// @Success      200   {object}  dto.Response
// @Failure      401   {object}  dto.Response
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "sesión iniciada", out)
}

// Refresh godoc
// @Summary      Rotar refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  true  "Refresh token vigente"
// @Success      200   {object}  dto.Response
// @Failure      401   {object}  dto.Response
// @Router       /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	out, err := h.uc.Refresh(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "tokens renovados", out)
}

// Logout invalida el refresh token. Idempotente: un token ya consumido
// o desconocido también responde 200.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if err := h.uc.Logout(c.Context(), in.RefreshToken); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "sesión cerrada", nil)
}

// RequestPasswordReset godoc
// @Summary      Solicitar reset de contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PasswordResetRequest  true  "Email de la cuenta"
// @Success      200   {object}  dto.Response
// @Router       /api/v1/auth/password-reset [post]
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var in dto.PasswordResetRequest
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	if err := h.uc.RequestPasswordReset(c.Context(), in.Email); err != nil {
		return respondError(c, err)
	}
	// Siempre 200: no se revela si el email existe.
	return respondOK(c, "si la cuenta existe, se envió un correo con instrucciones", nil)
}

// ConfirmPasswordReset consume el token de un solo uso y fija la contraseña nueva.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var in dto.PasswordResetConfirm
	if err := c.BodyParser(&in); err != nil {
		return respondBadBody(c)
	}
	if errs := validation.ValidateStruct(in); errs != nil {
		return respondFieldErrors(c, errs)
	}
	if err := h.uc.ConfirmPasswordReset(c.Context(), in); err != nil {
		return respondError(c, err)
	}
	return respondOK(c, "contraseña actualizada", nil)
}
