package dto

// LoginRequest credenciales de acceso. Username acepta username o email.
// CompanyID es opcional: fija la empresa activa de la sesión cuando el
// usuario pertenece a varias.
type LoginRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	CompanyID string `json:"company_id"`
}

// LoginResponse tokens emitidos tras autenticación correcta.
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// RefreshRequest rota el refresh token y emite un access token nuevo.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse tokens renovados.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// PasswordResetRequest solicita un token de reset por correo.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetConfirm consume el token de un solo uso y fija la contraseña.
type PasswordResetConfirm struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
