package handlers

import (
	"errors"
	"strconv"

	"github.com/folhaponto/ponto-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var errNoSession = errors.New("no authenticated session")

// currentUserID extracts the user id from the validated JWT in the context.
func currentUserID(c *fiber.Ctx) (uint, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return 0, errNoSession
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errNoSession
	}
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil {
		return 0, errNoSession
	}
	return uint(id), nil
}

// currentUser returns the DB-loaded user placed by GestaoRequired.
func currentUser(c *fiber.Ctx) (*models.User, bool) {
	u, ok := c.Locals("current_user").(*models.User)
	return u, ok
}
