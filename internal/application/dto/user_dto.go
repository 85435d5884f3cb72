package dto

import "time"

// CreateUserRequest alta de usuario (solo admin global).
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"omitempty,max=200"`
	IsAdmin  bool   `json:"is_admin"`
}

// UpdateUserRequest actualización de datos de usuario.
type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	FullName *string `json:"full_name" validate:"omitempty,max=200"`
	IsAdmin  *bool   `json:"is_admin"`
}

// ChangePasswordRequest cambio de contraseña autenticado.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// AssignCompanyRequest asigna el usuario a una empresa con bandera de admin.
type AssignCompanyRequest struct {
	CompanyID      string `json:"company_id" validate:"required"`
	IsCompanyAdmin bool   `json:"is_company_admin"`
}

// UserResponse salida de un usuario (sin hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsAdmin   bool      `json:"is_admin"`
	Status    int16     `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserAuditResponse fila de la bitácora de un usuario.
type UserAuditResponse struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Action    string      `json:"action"`
	ActorID   string      `json:"actor_id"`
	Before    interface{} `json:"before,omitempty"`
	After     interface{} `json:"after,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
