package handlers

import (
	"github.com/folhaponto/ponto-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AuditoriaHandler struct {
	auditService *services.AuditService
}

func NewAuditoriaHandler(auditService *services.AuditService) *AuditoriaHandler {
	return &AuditoriaHandler{auditService: auditService}
}

func (h *AuditoriaHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)

	logs, total, err := h.auditService.List(limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"total": total,
		"logs":  logs,
	})
}
