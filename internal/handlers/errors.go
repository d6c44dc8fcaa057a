package handlers

import (
	"errors"
	"log/slog"

	"github.com/folhaponto/ponto-backend/internal/dto"
	"github.com/folhaponto/ponto-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// respondServiceError translates the service error taxonomy into HTTP once,
// so every endpoint reports the same status for the same failure.
func respondServiceError(c *fiber.Ctx, err error) error {
	var dia *services.DiaBloqueadoError
	if errors.As(err, &dia) {
		return fail(c, fiber.StatusForbidden, dia.Reason)
	}

	switch {
	case errors.Is(err, services.ErrColaboradorNotFound),
		errors.Is(err, services.ErrRegistroNotFound),
		errors.Is(err, services.ErrUsuarioNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrJustificativaNotFound),
		errors.Is(err, services.ErrArquivoNotFound),
		errors.Is(err, services.ErrColaboradorNaoVinculado):
		return fail(c, fiber.StatusNotFound, err.Error())

	case errors.Is(err, services.ErrCodeTaken),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrRegistroExistente),
		errors.Is(err, services.ErrJaAvaliada):
		return fail(c, fiber.StatusConflict, err.Error())

	case errors.Is(err, services.ErrCicloCompleto):
		return fail(c, fiber.StatusForbidden, err.Error())

	case errors.Is(err, services.ErrContaBloqueada):
		return fail(c, fiber.StatusLocked, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		return fail(c, fiber.StatusUnauthorized, err.Error())

	case errors.Is(err, services.ErrOrdemBatidas),
		errors.Is(err, services.ErrNenhumHorario),
		errors.Is(err, services.ErrNenhumaData),
		errors.Is(err, services.ErrPeriodoInvalido),
		errors.Is(err, services.ErrEstagiarioAlmoco),
		errors.Is(err, services.ErrStatusInvalido),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrRegistroJustificado):
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	slog.Error("unhandled service error", "method", c.Method(), "path", c.Path(), "error", err)
	return fail(c, fiber.StatusInternalServerError, "Erro interno do servidor")
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}
