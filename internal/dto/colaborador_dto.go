package dto

import "github.com/folhaponto/ponto-backend/internal/models"

type ColaboradorCreateRequest struct {
	Code         string `json:"code" validate:"required,len=6,numeric"`
	Nome         string `json:"nome"`
	EmailUsuario string `json:"email_usuario" validate:"omitempty,email"`
	Cargo        string `json:"cargo"`
}

type ColaboradorUpsertRequest struct {
	Code  *string `json:"code" validate:"omitempty,len=6,numeric"`
	Nome  *string `json:"nome"`
	Cargo *string `json:"cargo"`
}

type ColaboradorResponse struct {
	ID   uint   `json:"id"`
	Nome string `json:"nome"`
	Code string `json:"code"`
}

type ColaboradorComRoleResponse struct {
	ID    uint        `json:"id"`
	Nome  string      `json:"nome"`
	Code  string      `json:"code"`
	Role  models.Role `json:"role"`
	Cargo string      `json:"cargo,omitempty"`
}

type MeColaboradorResponse struct {
	ID     uint        `json:"id"`
	UserID uint        `json:"user_id"`
	Code   string      `json:"code"`
	Cargo  string      `json:"cargo"`
	Nome   string      `json:"nome"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
}
