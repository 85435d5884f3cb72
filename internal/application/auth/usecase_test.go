package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dvillegas/multierp-api/internal/application/auth"
	"github.com/dvillegas/multierp-api/internal/application/dto"
	"github.com/dvillegas/multierp-api/internal/domain"
	"github.com/dvillegas/multierp-api/internal/domain/entity"
	"github.com/dvillegas/multierp-api/pkg/config"
	"github.com/dvillegas/multierp-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeTokenStore struct {
	refresh map[string]auth.RefreshSession
	reset   map[string]string
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{
		refresh: map[string]auth.RefreshSession{},
		reset:   map[string]string{},
	}
}

func (s *fakeTokenStore) SaveRefresh(_ context.Context, token string, session auth.RefreshSession, _ time.Duration) error {
	s.refresh[token] = session
	return nil
}

func (s *fakeTokenStore) ConsumeRefresh(_ context.Context, token string) (*auth.RefreshSession, error) {
	session, ok := s.refresh[token]
	if !ok {
		return nil, nil
	}
	delete(s.refresh, token)
	return &session, nil
}

func (s *fakeTokenStore) SaveReset(_ context.Context, token, userID string, _ time.Duration) error {
	s.reset[token] = userID
	return nil
}

func (s *fakeTokenStore) ConsumeReset(_ context.Context, token string) (string, error) {
	userID, ok := s.reset[token]
	if !ok {
		return "", nil
	}
	delete(s.reset, token)
	return userID, nil
}

// lastToken devuelve el único token de reset pendiente.
func (s *fakeTokenStore) lastResetToken() string {
	for token := range s.reset {
		return token
	}
	return ""
}

type fakeMailer struct {
	to   []string
	body []string
}

func (m *fakeMailer) Send(_ context.Context, to, _, body string) error {
	m.to = append(m.to, to)
	m.body = append(m.body, body)
	return nil
}

type fakeUserRepo struct{ users map[string]*entity.User }

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.users[u.ID] = u
	return nil
}
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) { return r.users[id], nil }
func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) Update(u *entity.User) error {
	r.users[u.ID] = u
	return nil
}
func (r *fakeUserRepo) List(int, int) ([]*entity.User, error) { return nil, nil }

type fakeUserCompanyRepo struct{ rows []*entity.UserCompany }

func (r *fakeUserCompanyRepo) Assign(m *entity.UserCompany) error {
	r.rows = append(r.rows, m)
	return nil
}
func (r *fakeUserCompanyRepo) Remove(string, string) error { return nil }
func (r *fakeUserCompanyRepo) Get(userID, companyID string) (*entity.UserCompany, error) {
	for _, m := range r.rows {
		if m.UserID == userID && m.CompanyID == companyID {
			return m, nil
		}
	}
	return nil, nil
}
func (r *fakeUserCompanyRepo) ListByUser(userID string) ([]*entity.UserCompany, error) {
	var out []*entity.UserCompany
	for _, m := range r.rows {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeAuditRepo struct{ rows []*entity.UserAudit }

func (r *fakeAuditRepo) Append(a *entity.UserAudit) error {
	r.rows = append(r.rows, a)
	return nil
}
func (r *fakeAuditRepo) ListByUser(string, int, int) ([]*entity.UserAudit, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const testSecret = "clave-de-prueba-supersecreta"

type fixture struct {
	uc     *auth.UseCase
	users  *fakeUserRepo
	member *fakeUserCompanyRepo
	tokens *fakeTokenStore
	mailer *fakeMailer
	audit  *fakeAuditRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreta123"), bcrypt.MinCost)
	require.NoError(t, err)

	f := &fixture{
		users: &fakeUserRepo{users: map[string]*entity.User{
			"user-1": {
				ID: "user-1", Username: "jperez", Email: "jperez@acme.com",
				PasswordHash: string(hash), Status: entity.StatusActive,
			},
			"user-2": {
				ID: "user-2", Username: "inactivo", Email: "inactivo@acme.com",
				PasswordHash: string(hash), Status: entity.StatusInactive,
			},
		}},
		member: &fakeUserCompanyRepo{rows: []*entity.UserCompany{
			{UserID: "user-1", CompanyID: "co-1", IsCompanyAdmin: true},
		}},
		tokens: newFakeTokenStore(),
		mailer: &fakeMailer{},
		audit:  &fakeAuditRepo{},
	}
	f.uc = auth.NewUseCase(f.users, f.member, f.audit, f.tokens, f.mailer, config.JWTConfig{
		Secret:            testSecret,
		ExpMinutes:        30,
		RefreshExpMinutes: 60,
		Issuer:            "multierp-api",
	})
	return f
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_ConUsernameYConEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, login := range []string{"jperez", "jperez@acme.com"} {
		resp, err := f.uc.Login(ctx, dto.LoginRequest{Username: login, Password: "secreta123"})
		require.NoError(t, err, "login con %q", login)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "jperez", resp.User.Username)

		// única empresa del usuario queda como empresa activa del token
		identity, err := jwt.Parse(testSecret, resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "user-1", identity.UserID)
		assert.Equal(t, "co-1", identity.CompanyID)
		assert.True(t, identity.IsCompanyAdmin)
	}
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []dto.LoginRequest{
		{Username: "jperez", Password: "incorrecta"},
		{Username: "noexiste", Password: "secreta123"},
		{Username: "inactivo", Password: "secreta123"},
	}
	for _, req := range cases {
		_, err := f.uc.Login(ctx, req)
		assert.ErrorIs(t, err, domain.ErrUnauthorized, "login %q", req.Username)
	}
}

func TestLogin_EmpresaSinMembresiaProhibida(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Login(context.Background(), dto.LoginRequest{
		Username: "jperez", Password: "secreta123", CompanyID: "co-ajena",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRefresh_RotaYEsDeUnSoloUso(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.uc.Login(ctx, dto.LoginRequest{Username: "jperez", Password: "secreta123"})
	require.NoError(t, err)

	renewed, err := f.uc.Refresh(ctx, dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, renewed.RefreshToken)

	// el contexto de empresa sobrevive a la rotación
	identity, err := jwt.Parse(testSecret, renewed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "co-1", identity.CompanyID)

	// el token consumido no sirve una segunda vez
	_, err = f.uc.Refresh(ctx, dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh_UsuarioDesactivadoNoRenueva(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.uc.Login(ctx, dto.LoginRequest{Username: "jperez", Password: "secreta123"})
	require.NoError(t, err)

	f.users.users["user-1"].Status = entity.StatusInactive
	_, err = f.uc.Refresh(ctx, dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestPasswordReset_FlujoCompleto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.uc.RequestPasswordReset(ctx, "jperez@acme.com"))
	require.Len(t, f.mailer.to, 1)
	assert.Equal(t, "jperez@acme.com", f.mailer.to[0])

	token := f.tokens.lastResetToken()
	require.NotEmpty(t, token)
	assert.Contains(t, f.mailer.body[0], token)

	err := f.uc.ConfirmPasswordReset(ctx, dto.PasswordResetConfirm{
		Token: token, NewPassword: "nueva-clave-123",
	})
	require.NoError(t, err)

	// la contraseña nueva funciona y la vieja no
	_, err = f.uc.Login(ctx, dto.LoginRequest{Username: "jperez", Password: "nueva-clave-123"})
	assert.NoError(t, err)
	_, err = f.uc.Login(ctx, dto.LoginRequest{Username: "jperez", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// el cambio queda en la bitácora
	require.Len(t, f.audit.rows, 1)
	assert.Equal(t, entity.AuditActionPasswordChange, f.audit.rows[0].Action)

	// el token es de un solo uso
	err = f.uc.ConfirmPasswordReset(ctx, dto.PasswordResetConfirm{
		Token: token, NewPassword: "otra-clave-123",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestPasswordReset_EmailDesconocidoNoFiltraInformacion(t *testing.T) {
	f := newFixture(t)

	err := f.uc.RequestPasswordReset(context.Background(), "nadie@acme.com")
	assert.NoError(t, err)
	assert.Empty(t, f.mailer.to)
}
