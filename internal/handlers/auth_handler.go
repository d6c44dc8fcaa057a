package handlers

import (
	"strings"

	"github.com/folhaponto/ponto-backend/internal/dto"
	"github.com/folhaponto/ponto-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup requires a valid token once any user exists; the very first signup
// bootstraps the system without one.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	hasUsers, err := h.authService.HasAnyUser()
	if err != nil {
		return respondServiceError(c, err)
	}
	if hasUsers {
		if _, err := h.authService.UserFromToken(bearerToken(c)); err != nil {
			return fail(c, fiber.StatusUnauthorized, "Token inválido ou ausente")
		}
	}

	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if err := validateStruct(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Signup(&req)
	if err != nil {
		return respondServiceError(c, err)
	}

	resp := dto.NewUserResponse(user)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if err := validateStruct(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if err := validateStruct(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	resp, err := h.authService.Refresh(&req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}

	if err := h.authService.Logout(&req); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Sessão encerrada com sucesso"})
}

func bearerToken(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return auth[7:]
	}
	return ""
}
