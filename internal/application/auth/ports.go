package auth

import (
	"context"
	"time"
)

// RefreshSession datos de sesión asociados a un refresh token. Se guarda la
// empresa activa elegida en el login para que el access token renovado
// conserve el mismo contexto.
type RefreshSession struct {
	UserID         string `json:"user_id"`
	CompanyID      string `json:"company_id,omitempty"`
	IsCompanyAdmin bool   `json:"is_company_admin"`
}

// TokenStore almacén de tokens opacos con TTL (refresh y reset de contraseña).
// Consume* es atómico y de un solo uso: devuelve nil/"" si el token no existe
// o ya fue consumido.
type TokenStore interface {
	SaveRefresh(ctx context.Context, token string, session RefreshSession, ttl time.Duration) error
	ConsumeRefresh(ctx context.Context, token string) (*RefreshSession, error)
	SaveReset(ctx context.Context, token, userID string, ttl time.Duration) error
	ConsumeReset(ctx context.Context, token string) (string, error)
}

// Mailer envío de correos transaccionales (reset de contraseña).
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
