package dto

import "time"

// LoginRequest entrada para login por nombre de usuario.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse resultado del login. Token es la sesión explícita que el cliente
// debe enviar como Bearer en las rutas protegidas.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	IsAdmin bool   `json:"is_admin"`
	Token   string `json:"token,omitempty"`
}

// VerifyAdminRequest entrada para validar una clave de administrador.
type VerifyAdminRequest struct {
	Password string `json:"password" validate:"required"`
}

// RegisterUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	IsAdmin  bool   `json:"is_admin"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}
