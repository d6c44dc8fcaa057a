package dto

import "github.com/folhaponto/ponto-backend/internal/models"

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Nome     string `json:"nome" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=funcionario gestao estagiario"`
	Cargo    string `json:"cargo"`
	// When Code is present the signup also creates the linked Colaborador.
	Code string `json:"code" validate:"omitempty,len=6,numeric"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	TokenType    string       `json:"token_type"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID       uint        `json:"id"`
	Email    string      `json:"email"`
	Nome     string      `json:"nome"`
	Role     models.Role `json:"role"`
	Cargo    string      `json:"cargo"`
	IsActive bool        `json:"is_active"`
	Locked   bool        `json:"locked"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Nome:     u.Nome,
		Role:     u.Role,
		Cargo:    u.Cargo,
		IsActive: u.IsActive,
		Locked:   u.Locked,
	}
}
