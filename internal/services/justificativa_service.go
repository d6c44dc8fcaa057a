package services

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/folhaponto/ponto-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrJustificativaNotFound   = errors.New("justificativa não encontrada")
	ErrJaAvaliada              = errors.New("justificativa já avaliada")
	ErrColaboradorNaoVinculado = errors.New("usuário não está vinculado a um colaborador")
	ErrNenhumaData             = errors.New("nenhuma data válida fornecida")
	ErrStatusInvalido          = errors.New("status deve ser aprovada ou rejeitada")
	ErrArquivoNotFound         = errors.New("arquivo não encontrado")
)

type JustificativaService struct {
	db        *gorm.DB
	uploadDir string
	audit     *AuditService
}

func NewJustificativaService(db *gorm.DB, uploadDir string, audit *AuditService) *JustificativaService {
	return &JustificativaService{db: db, uploadDir: uploadDir, audit: audit}
}

// Submit creates one pending justification per referenced date, all sharing a
// single stored attachment.
func (s *JustificativaService) Submit(userID uint, texto string, datas []string, filename string, file io.Reader) ([]uint, string, error) {
	var colab models.Colaborador
	if err := s.db.Where("user_id = ?", userID).First(&colab).Error; err != nil {
		return nil, "", ErrColaboradorNaoVinculado
	}

	if len(datas) == 0 {
		return nil, "", ErrNenhumaData
	}
	for _, d := range datas {
		if _, err := time.Parse(models.DateLayout, d); err != nil {
			return nil, "", fmt.Errorf("data inválida: %s", d)
		}
	}

	stored, err := s.storeAttachment(filename, file)
	if err != nil {
		return nil, "", err
	}

	ids := make([]uint, 0, len(datas))
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, d := range datas {
			just := models.Justificativa{
				ColaboradorID: colab.ID,
				Justificativa: texto,
				Arquivo:       &stored,
				DataReferente: d,
				Status:        models.JustificativaPendente,
			}
			if err := tx.Create(&just).Error; err != nil {
				return err
			}
			ids = append(ids, just.ID)
		}
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to save justificativas: %w", err)
	}

	s.audit.Record(&userID, "justificativa_enviada", "/justificativas",
		fmt.Sprintf("code=%s datas=%d", colab.Code, len(datas)))
	return ids, stored, nil
}

func (s *JustificativaService) storeAttachment(filename string, file io.Reader) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	stored := uuid.New().String() + "_" + filepath.Base(filename)
	dst, err := os.Create(filepath.Join(s.uploadDir, stored))
	if err != nil {
		return "", fmt.Errorf("failed to store attachment: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to write attachment: %w", err)
	}
	return stored, nil
}

func (s *JustificativaService) ListByCode(code string) ([]models.Justificativa, error) {
	var colab models.Colaborador
	if err := s.db.Where("code = ?", code).First(&colab).Error; err != nil {
		return nil, ErrColaboradorNotFound
	}

	var justs []models.Justificativa
	err := s.db.Where("colaborador_id = ?", colab.ID).
		Order("data_envio DESC").Find(&justs).Error
	return justs, err
}

// Evaluate resolves a pending justification. Evaluation is terminal: a second
// call on the same row is a conflict, never a silent no-op.
func (s *JustificativaService) Evaluate(id uint, avaliador *models.User, status string, comentario *string) (*models.Justificativa, error) {
	if status != models.JustificativaAprovada && status != models.JustificativaRejeitada {
		return nil, ErrStatusInvalido
	}

	var just models.Justificativa
	if err := s.db.First(&just, id).Error; err != nil {
		return nil, ErrJustificativaNotFound
	}
	if just.Status != models.JustificativaPendente {
		return nil, ErrJaAvaliada
	}

	now := time.Now().UTC()
	just.Status = status
	just.AvaliadorID = &avaliador.ID
	just.AvaliadoEm = &now
	just.Comentario = comentario

	if err := s.db.Save(&just).Error; err != nil {
		return nil, err
	}

	detail := "-"
	if comentario != nil {
		detail = *comentario
	}
	s.audit.Record(&avaliador.ID, status, fmt.Sprintf("/justificativas/%d/avaliar", id),
		"Comentário: "+detail)
	return &just, nil
}

// AttachmentPath resolves a stored attachment name to its path on disk.
func (s *JustificativaService) AttachmentPath(nome string) (string, error) {
	path := filepath.Join(s.uploadDir, filepath.Base(nome))
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return "", ErrArquivoNotFound
	}
	return path, nil
}
