package dto

import "time"

// CreateCompanyGroupRequest entrada para crear un grupo de empresas.
type CreateCompanyGroupRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

// CompanyGroupResponse salida de un grupo.
type CompanyGroupResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    int16     `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	FiscalID string `json:"fiscal_id" validate:"required,min=1,max=20"`
	GroupID  string `json:"group_id"`
	Country  string `json:"country" validate:"omitempty,max=100"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
type UpdateCompanyRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Country *string `json:"country"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Status  *int16  `json:"status" validate:"omitempty,oneof=0 1"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id,omitempty"`
	Name      string    `json:"name"`
	FiscalID  string    `json:"fiscal_id"`
	Country   string    `json:"country"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Status    int16     `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReplaceAssociationsRequest ids a dejar asociados (reemplazo idempotente:
// se insertan los faltantes y se eliminan los omitidos).
type ReplaceAssociationsRequest struct {
	IDs []string `json:"ids" validate:"required"`
}

// CreateSucursalRequest entrada para crear una sucursal.
type CreateSucursalRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
	Code      string `json:"code" validate:"required,min=1,max=20"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

// UpdateSucursalRequest entrada para actualizar una sucursal.
type UpdateSucursalRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Status  *int16  `json:"status" validate:"omitempty,oneof=0 1"`
}

// SucursalResponse salida de una sucursal.
type SucursalResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Status    int16     `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
