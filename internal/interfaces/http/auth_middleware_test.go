package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/dvillegas/multierp-api/internal/interfaces/http"
	pkgjwt "github.com/dvillegas/multierp-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "multierp-test"
	testExpMin    = 60
)

func tokenFor(t *testing.T, id pkgjwt.Identity) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, id, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// buildTestApp arma una app mínima con tres rutas: una solo autenticada,
// una de admin global y una de admin de empresa.
func buildTestApp() *fiber.App {
	app := fiber.New()
	ok := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
		})
	}
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), ok)
	app.Get("/admin", apphttp.AuthMiddleware(testJWTSecret), apphttp.RequireAdmin(), ok)
	app.Get("/company-admin", apphttp.AuthMiddleware(testJWTSecret), apphttp.RequireCompanyAdmin(), ok)
	return app
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := buildTestApp()
	header := tokenFor(t, pkgjwt.Identity{UserID: testUserID, CompanyID: testCompanyID})

	resp := doRequest(t, app, "/me", header)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
}

func TestAuthMiddleware_SinHeaderRetorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/me", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalidoRetorna401(t *testing.T) {
	app := buildTestApp()
	resp := doRequest(t, app, "/me", "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpiradoRetorna401(t *testing.T) {
	app := buildTestApp()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{UserID: testUserID}, testIssuer, -1)
	require.NoError(t, err)

	resp := doRequest(t, app, "/me", "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAdmin_AdminGlobalAccede(t *testing.T) {
	app := buildTestApp()
	header := tokenFor(t, pkgjwt.Identity{UserID: testUserID, IsAdmin: true})

	resp := doRequest(t, app, "/admin", header)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAdmin_UsuarioComunBloqueado(t *testing.T) {
	app := buildTestApp()
	header := tokenFor(t, pkgjwt.Identity{UserID: testUserID, CompanyID: testCompanyID, IsCompanyAdmin: true})

	resp := doRequest(t, app, "/admin", header)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"admin de empresa no alcanza para rutas de admin global")
}

func TestRequireCompanyAdmin_AdminDeEmpresaAccede(t *testing.T) {
	app := buildTestApp()
	header := tokenFor(t, pkgjwt.Identity{UserID: testUserID, CompanyID: testCompanyID, IsCompanyAdmin: true})

	resp := doRequest(t, app, "/company-admin", header)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireCompanyAdmin_AdminGlobalTambienAccede(t *testing.T) {
	app := buildTestApp()
	header := tokenFor(t, pkgjwt.Identity{UserID: testUserID, IsAdmin: true})

	resp := doRequest(t, app, "/company-admin", header)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireCompanyAdmin_MiembroComunBloqueado(t *testing.T) {
	app := buildTestApp()
	header := tokenFor(t, pkgjwt.Identity{UserID: testUserID, CompanyID: testCompanyID})

	resp := doRequest(t, app, "/company-admin", header)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestJWT_GenerateAndParse(t *testing.T) {
	id := pkgjwt.Identity{UserID: testUserID, CompanyID: testCompanyID, IsCompanyAdmin: true}
	tok, err := pkgjwt.Generate(testJWTSecret, id, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestJWT_SecretIncorrectoRetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{UserID: testUserID}, testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
