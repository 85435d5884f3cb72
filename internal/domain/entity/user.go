package entity

import (
	"encoding/json"
	"time"
)

// Acciones auditables sobre usuarios.
const (
	AuditActionCreate         = "CREATE"
	AuditActionUpdate         = "UPDATE"
	AuditActionDeactivate     = "DEACTIVATE"
	AuditActionActivate       = "ACTIVATE"
	AuditActionPasswordChange = "PASSWORD_CHANGE"
)

// User usuario del sistema. Username y Email únicos a nivel global.
// Los usuarios nunca se borran físicamente; se desactivan por Status.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt, nunca en plano después de persistir
	FullName     string
	IsAdmin      bool // administrador global
	Status       int16
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserCompany membresía de un usuario en una empresa, con bandera de admin por empresa.
type UserCompany struct {
	UserID         string
	CompanyID      string
	IsCompanyAdmin bool
	CreatedAt      time.Time
}

// UserAudit registro inmutable de cambios sobre usuarios (solo inserción).
// Before/After guardan el diff en JSON para reconstrucción del historial.
type UserAudit struct {
	ID        string
	UserID    string
	Action    string
	ActorID   string
	Before    json.RawMessage
	After     json.RawMessage
	CreatedAt time.Time
}
