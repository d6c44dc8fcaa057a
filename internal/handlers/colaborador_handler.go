package handlers

import (
	"strconv"

	"github.com/folhaponto/ponto-backend/internal/dto"
	"github.com/folhaponto/ponto-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ColaboradorHandler struct {
	colaboradorService *services.ColaboradorService
}

func NewColaboradorHandler(colaboradorService *services.ColaboradorService) *ColaboradorHandler {
	return &ColaboradorHandler{colaboradorService: colaboradorService}
}

// Me returns the collaborator linked to the authenticated user.
func (h *ColaboradorHandler) Me(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Não autenticado")
	}

	colab, err := h.colaboradorService.GetByUser(userID)
	if err != nil {
		return respondServiceError(c, services.ErrColaboradorNaoVinculado)
	}

	resp := dto.MeColaboradorResponse{
		ID:     colab.ID,
		UserID: userID,
		Code:   colab.Code,
		Nome:   colab.Nome,
		Role:   colab.RoleOrDefault(),
	}
	if colab.User != nil {
		resp.Cargo = colab.User.Cargo
		resp.Email = colab.User.Email
	}
	return c.JSON(resp)
}

func (h *ColaboradorHandler) List(c *fiber.Ctx) error {
	cols, err := h.colaboradorService.List()
	if err != nil {
		return respondServiceError(c, err)
	}

	resp := make([]dto.ColaboradorResponse, 0, len(cols))
	for _, col := range cols {
		resp = append(resp, dto.ColaboradorResponse{ID: col.ID, Nome: col.Nome, Code: col.Code})
	}
	return c.JSON(resp)
}

func (h *ColaboradorHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID inválido")
	}

	colab, err := h.colaboradorService.Get(uint(id))
	if err != nil {
		return respondServiceError(c, err)
	}

	resp := dto.ColaboradorComRoleResponse{
		ID:   colab.ID,
		Nome: colab.Nome,
		Code: colab.Code,
		Role: colab.RoleOrDefault(),
	}
	if colab.User != nil {
		resp.Cargo = colab.User.Cargo
	}
	return c.JSON(resp)
}

func (h *ColaboradorHandler) GetByUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("user_id"), 10, 64)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID inválido")
	}

	colab, err := h.colaboradorService.GetByUser(uint(userID))
	if err != nil {
		return respondServiceError(c, err)
	}

	resp := dto.MeColaboradorResponse{
		ID:     colab.ID,
		UserID: uint(userID),
		Code:   colab.Code,
		Nome:   colab.Nome,
		Role:   colab.RoleOrDefault(),
	}
	if colab.User != nil {
		resp.Cargo = colab.User.Cargo
		resp.Email = colab.User.Email
	}
	return c.JSON(resp)
}

func (h *ColaboradorHandler) UpsertByUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("user_id"), 10, 64)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID inválido")
	}

	var req dto.ColaboradorUpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if err := validateStruct(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	colab, err := h.colaboradorService.UpsertByUser(uint(userID), &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(colab)
}

func (h *ColaboradorHandler) Create(c *fiber.Ctx) error {
	var req dto.ColaboradorCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if err := validateStruct(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	colab, err := h.colaboradorService.Create(&req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(colab)
}

func (h *ColaboradorHandler) Delete(c *fiber.Ctx) error {
	actor, ok := currentUser(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Não autenticado")
	}

	if err := h.colaboradorService.DeleteByCode(c.Params("code"), actor.ID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Colaborador excluído com sucesso"})
}
