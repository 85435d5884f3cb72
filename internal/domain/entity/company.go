package entity

import "time"

// Estados genéricos de registro (soft delete por bandera, no se borran filas).
const (
	StatusInactive int16 = 0
	StatusActive   int16 = 1
)

// CompanyGroup agrupa empresas relacionadas (holding).
type CompanyGroup struct {
	ID        string
	Name      string
	Status    int16
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Company representa una empresa/tenant del sistema.
// FiscalID es único a nivel global (NIT/RIF según país).
type Company struct {
	ID        string
	GroupID   string // opcional, "" = sin grupo
	Name      string
	FiscalID  string
	Country   string
	Address   string
	Phone     string
	Email     string
	Status    int16
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sucursal representa una sede/sucursal de una empresa.
// Code es único por empresa.
type Sucursal struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
	Address   string
	Phone     string
	Status    int16
	CreatedAt time.Time
	UpdatedAt time.Time
}
