package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// CompanyID es la empresa activa de la sesión (elegida en el login cuando el
// usuario pertenece a varias); IsAdmin/IsCompanyAdmin permiten decisiones RBAC
// sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID         string `json:"user_id"`
	CompanyID      string `json:"company_id,omitempty"`
	IsAdmin        bool   `json:"is_admin"`
	IsCompanyAdmin bool   `json:"is_company_admin"`
}

// Identity datos de identidad extraídos o incluidos en el token de acceso.
type Identity struct {
	UserID         string
	CompanyID      string
	IsAdmin        bool
	IsCompanyAdmin bool
}

// Generate genera el access token firmado (HS256).
func Generate(secret string, id Identity, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:         id.UserID,
		CompanyID:      id.CompanyID,
		IsAdmin:        id.IsAdmin,
		IsCompanyAdmin: id.IsCompanyAdmin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve la identidad.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("claims inválidos")
	}
	return Identity{
		UserID:         claims.UserID,
		CompanyID:      claims.CompanyID,
		IsAdmin:        claims.IsAdmin,
		IsCompanyAdmin: claims.IsCompanyAdmin,
	}, nil
}
