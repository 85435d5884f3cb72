package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/pkg/jwt"
)

// Locals keys cargadas por AuthMiddleware.
const (
	LocalUserID         = "user_id"
	LocalCompanyID      = "company_id"
	LocalIsAdmin        = "is_admin"
	LocalIsCompanyAdmin = "is_company_admin"
)

// AuthMiddleware valida el Bearer Token JWT y carga la identidad en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{Success: false, Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{Success: false, Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{Success: false, Message: "token vacío"})
		}
		identity, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Response{Success: false, Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, identity.UserID)
		c.Locals(LocalCompanyID, identity.CompanyID)
		c.Locals(LocalIsAdmin, identity.IsAdmin)
		c.Locals(LocalIsCompanyAdmin, identity.IsCompanyAdmin)
		return c.Next()
	}
}

// RequireAdmin exige la bandera de administrador global.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsAdmin(c) {
			return c.Status(fiber.StatusForbidden).JSON(dto.Response{Success: false, Message: "requiere administrador global"})
		}
		return c.Next()
	}
}

// RequireCompanyAdmin exige admin de la empresa activa (o admin global).
func RequireCompanyAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsAdmin(c) && !IsCompanyAdmin(c) {
			return c.Status(fiber.StatusForbidden).JSON(dto.Response{Success: false, Message: "requiere administrador de empresa"})
		}
		return c.Next()
	}
}

// RequireCompany exige que la sesión tenga empresa activa (elegida en el login).
func RequireCompany() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetCompanyID(c) == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.Response{Success: false, Message: "la sesión no tiene empresa activa"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetCompanyID devuelve la empresa activa de la sesión.
func GetCompanyID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalCompanyID).(string)
	return s
}

// IsAdmin devuelve la bandera de admin global del token.
func IsAdmin(c *fiber.Ctx) bool {
	b, _ := c.Locals(LocalIsAdmin).(bool)
	return b
}

// IsCompanyAdmin devuelve la bandera de admin de la empresa activa.
func IsCompanyAdmin(c *fiber.Ctx) bool {
	b, _ := c.Locals(LocalIsCompanyAdmin).(bool)
	return b
}
