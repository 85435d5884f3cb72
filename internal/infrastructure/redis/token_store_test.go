package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvillegas/multierp-api/internal/application/auth"
)

func newTestStore(t *testing.T) (*TokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenStore(client), mr
}

func TestTokenStore_RefreshEsDeUnSoloUso(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	session := auth.RefreshSession{UserID: "usr-1", CompanyID: "co-1", IsCompanyAdmin: true}
	require.NoError(t, store.SaveRefresh(ctx, "tok-abc", session, time.Hour))

	got, err := store.ConsumeRefresh(ctx, "tok-abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "usr-1", got.UserID)
	assert.Equal(t, "co-1", got.CompanyID)
	assert.True(t, got.IsCompanyAdmin)

	// Segundo consumo: el token ya no existe.
	got, err = store.ConsumeRefresh(ctx, "tok-abc")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTokenStore_RefreshDesconocido(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.ConsumeRefresh(context.Background(), "no-existe")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTokenStore_RefreshExpirado(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRefresh(ctx, "tok-ttl", auth.RefreshSession{UserID: "usr-1"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	got, err := store.ConsumeRefresh(ctx, "tok-ttl")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTokenStore_ResetDeUnSoloUso(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveReset(ctx, "reset-1", "usr-9", 30*time.Minute))

	userID, err := store.ConsumeReset(ctx, "reset-1")
	require.NoError(t, err)
	assert.Equal(t, "usr-9", userID)

	userID, err = store.ConsumeReset(ctx, "reset-1")
	require.NoError(t, err)
	assert.Empty(t, userID)
}

func TestTokenStore_LosPrefijosNoColisionan(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRefresh(ctx, "mismo", auth.RefreshSession{UserID: "usr-1"}, time.Hour))
	require.NoError(t, store.SaveReset(ctx, "mismo", "usr-2", time.Hour))

	userID, err := store.ConsumeReset(ctx, "mismo")
	require.NoError(t, err)
	assert.Equal(t, "usr-2", userID)

	got, err := store.ConsumeRefresh(ctx, "mismo")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "usr-1", got.UserID)
}
