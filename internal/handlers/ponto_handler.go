package handlers

import (
	"fmt"
	"strconv"

	"github.com/folhaponto/ponto-backend/internal/calendar"
	"github.com/folhaponto/ponto-backend/internal/dto"
	"github.com/folhaponto/ponto-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PontoHandler struct {
	pontoService       *services.PontoService
	colaboradorService *services.ColaboradorService
}

func NewPontoHandler(pontoService *services.PontoService, colaboradorService *services.ColaboradorService) *PontoHandler {
	return &PontoHandler{pontoService: pontoService, colaboradorService: colaboradorService}
}

// BaterPonto applies the next legal punch of the caller's day. The body may
// name a collaborator code; otherwise the caller's own link is used.
func (h *PontoHandler) BaterPonto(c *fiber.Ctx) error {
	var req dto.BaterPontoRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
		}
		if err := validateStruct(&req); err != nil {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
	}

	code, err := h.resolveCode(c, req.Code)
	if err != nil {
		return respondServiceError(c, err)
	}

	reg, field, err := h.pontoService.RegistrarPonto(code, calendar.Now())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(dto.PontoRegistradoResponse{
		Mensagem: fmt.Sprintf("Ponto registrado no campo: %s", field),
		Registro: reg,
	})
}

func (h *PontoHandler) Status(c *fiber.Ctx) error {
	code, err := h.resolveCode(c, c.Query("code"))
	if err != nil {
		return respondServiceError(c, err)
	}

	resp, err := h.pontoService.Status(code, calendar.Now())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}

func (h *PontoHandler) Manual(c *fiber.Ctx) error {
	actor, ok := currentUser(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Não autenticado")
	}

	var req dto.RegistroPontoManualRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if err := validateStruct(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	reg, err := h.pontoService.ManualUpsert(actor.ID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reg)
}

func (h *PontoHandler) Periodo(c *fiber.Ctx) error {
	actor, ok := currentUser(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Não autenticado")
	}

	var req dto.PontoPeriodoRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if err := validateStruct(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	resp, err := h.pontoService.BulkUpsertRange(actor.ID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(resp)
}

func (h *PontoHandler) List(c *fiber.Ctx) error {
	regs, err := h.pontoService.ListPontos()
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(regs)
}

func (h *PontoHandler) GetPorDia(c *fiber.Ctx) error {
	code := c.Params("code")
	data := c.Query("data")
	if data == "" {
		return fail(c, fiber.StatusBadRequest, "Parâmetro 'data' é obrigatório (YYYY-MM-DD)")
	}

	reg, err := h.pontoService.GetRegistroPorDia(code, data)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(reg)
}

func (h *PontoHandler) Update(c *fiber.Ctx) error {
	actor, ok := currentUser(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Não autenticado")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID inválido")
	}

	var req dto.RegistroPontoUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}

	reg, err := h.pontoService.UpdatePonto(uint(id), actor.ID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(reg)
}

func (h *PontoHandler) Delete(c *fiber.Ctx) error {
	actor, ok := currentUser(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Não autenticado")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID inválido")
	}

	if err := h.pontoService.DeletePonto(uint(id), actor.ID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Registro de ponto excluído com sucesso"})
}

func (h *PontoHandler) resolveCode(c *fiber.Ctx, code string) (string, error) {
	if code != "" {
		return code, nil
	}
	userID, err := currentUserID(c)
	if err != nil {
		return "", services.ErrColaboradorNaoVinculado
	}
	colab, err := h.colaboradorService.GetByUser(userID)
	if err != nil {
		return "", services.ErrColaboradorNaoVinculado
	}
	return colab.Code, nil
}
