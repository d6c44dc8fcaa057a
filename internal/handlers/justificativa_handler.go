package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/folhaponto/ponto-backend/internal/dto"
	"github.com/folhaponto/ponto-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type JustificativaHandler struct {
	justificativaService *services.JustificativaService
}

func NewJustificativaHandler(justificativaService *services.JustificativaService) *JustificativaHandler {
	return &JustificativaHandler{justificativaService: justificativaService}
}

// Submit receives a multipart form: one justification text, a comma-separated
// list of referenced dates and one attachment shared by all of them.
func (h *JustificativaHandler) Submit(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "Não autenticado")
	}

	texto := strings.TrimSpace(c.FormValue("justificativa"))
	if texto == "" {
		return fail(c, fiber.StatusBadRequest, "Justificativa é obrigatória")
	}

	var datas []string
	for _, d := range strings.Split(c.FormValue("datas"), ",") {
		if d = strings.TrimSpace(d); d != "" {
			datas = append(datas, d)
		}
	}

	fileHeader, err := c.FormFile("arquivo")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Arquivo é obrigatório")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Não foi possível ler o arquivo")
	}
	defer file.Close()

	ids, _, err := h.justificativaService.Submit(userID, texto, datas, fileHeader.Filename, file)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.JustificativaSubmitResponse{
		Mensagem: fmt.Sprintf("%d justificativas salvas com sucesso.", len(ids)),
		IDs:      ids,
	})
}

func (h *JustificativaHandler) ListByCode(c *fiber.Ctx) error {
	justs, err := h.justificativaService.ListByCode(c.Params("code"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(justs)
}

func (h *JustificativaHandler) Download(c *fiber.Ctx) error {
	path, err := h.justificativaService.AttachmentPath(c.Params("nome"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Download(path)
}

func (h *JustificativaHandler) Avaliar(c *fiber.Ctx) error {
	avaliador, ok := currentUser(c)
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "Não autenticado")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "ID inválido")
	}

	var req dto.AvaliacaoJustificativaRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Corpo da requisição inválido")
	}
	if err := validateStruct(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	just, err := h.justificativaService.Evaluate(uint(id), avaliador, req.Status, req.Comentario)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(just)
}
