package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dvillegas/multierp-api/internal/application/auth"
)

const (
	refreshPrefix = "refresh:"
	resetPrefix   = "reset:"
)

var _ auth.TokenStore = (*TokenStore)(nil)

// TokenStore almacén de tokens opacos sobre Redis. El consumo usa GETDEL,
// así el token queda invalidado en la misma operación que lo lee.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore construye el almacén de tokens.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// SaveRefresh guarda la sesión asociada al refresh token con TTL.
func (s *TokenStore) SaveRefresh(ctx context.Context, token string, session auth.RefreshSession, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal refresh session: %w", err)
	}
	if err := s.client.Set(ctx, refreshPrefix+token, payload, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// ConsumeRefresh lee y borra el refresh token. Devuelve nil si no existe.
func (s *TokenStore) ConsumeRefresh(ctx context.Context, token string) (*auth.RefreshSession, error) {
	payload, err := s.client.GetDel(ctx, refreshPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("consume refresh token: %w", err)
	}
	var session auth.RefreshSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("unmarshal refresh session: %w", err)
	}
	return &session, nil
}

// SaveReset guarda el token de reset de contraseña con TTL.
func (s *TokenStore) SaveReset(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, resetPrefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}
	return nil
}

// ConsumeReset lee y borra el token de reset. Devuelve "" si no existe.
func (s *TokenStore) ConsumeReset(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, resetPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("consume reset token: %w", err)
	}
	return userID, nil
}
