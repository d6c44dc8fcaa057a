package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/folhaponto/ponto-backend/internal/dto"
	"github.com/folhaponto/ponto-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrColaboradorNotFound = errors.New("colaborador não encontrado")
	ErrCodeTaken           = errors.New("código de colaborador já existe")
	ErrUsuarioNotFound     = errors.New("usuário não encontrado")
)

// CargoPlaceholder keeps users.cargo NOT NULL friendly: blank or "undefined"
// variants are normalized to it.
const CargoPlaceholder = "Não Definido"

func NormalizeCargo(value string) string {
	v := strings.TrimSpace(value)
	switch strings.ToLower(v) {
	case "", "não definido", "nao definido", "não-definido", "nao-definido":
		return CargoPlaceholder
	}
	return v
}

type ColaboradorService struct {
	db    *gorm.DB
	audit *AuditService
}

func NewColaboradorService(db *gorm.DB, audit *AuditService) *ColaboradorService {
	return &ColaboradorService{db: db, audit: audit}
}

func (s *ColaboradorService) Create(req *dto.ColaboradorCreateRequest) (*models.Colaborador, error) {
	var user *models.User
	if req.EmailUsuario != "" {
		var u models.User
		if err := s.db.Where("email = ?", req.EmailUsuario).First(&u).Error; err != nil {
			return nil, ErrUsuarioNotFound
		}
		user = &u
	}

	nome := strings.TrimSpace(req.Nome)
	if nome == "" && user != nil {
		nome = user.Nome
	}

	colab := models.Colaborador{
		Code: req.Code,
		Nome: nome,
	}
	if user != nil {
		colab.UserID = &user.ID
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&colab).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrCodeTaken
			}
			return fmt.Errorf("failed to create colaborador: %w", err)
		}
		if user != nil && req.Cargo != "" {
			if err := tx.Model(user).Update("cargo", NormalizeCargo(req.Cargo)).Error; err != nil {
				return fmt.Errorf("failed to sync cargo: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &colab, nil
}

func (s *ColaboradorService) List() ([]models.Colaborador, error) {
	var cols []models.Colaborador
	err := s.db.Order("nome").Find(&cols).Error
	return cols, err
}

func (s *ColaboradorService) Get(id uint) (*models.Colaborador, error) {
	var colab models.Colaborador
	if err := s.db.Preload("User").First(&colab, id).Error; err != nil {
		return nil, ErrColaboradorNotFound
	}
	return &colab, nil
}

func (s *ColaboradorService) GetByCode(code string) (*models.Colaborador, error) {
	var colab models.Colaborador
	if err := s.db.Preload("User").Where("code = ?", code).First(&colab).Error; err != nil {
		return nil, ErrColaboradorNotFound
	}
	return &colab, nil
}

func (s *ColaboradorService) GetByUser(userID uint) (*models.Colaborador, error) {
	var colab models.Colaborador
	if err := s.db.Preload("User").Where("user_id = ?", userID).First(&colab).Error; err != nil {
		return nil, ErrColaboradorNotFound
	}
	return &colab, nil
}

// UpsertByUser creates or updates the collaborator linked to an existing user.
// Creating requires the 6-digit code; updates only touch the fields supplied.
func (s *ColaboradorService) UpsertByUser(userID uint, req *dto.ColaboradorUpsertRequest) (*models.Colaborador, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrUsuarioNotFound
	}

	var colab models.Colaborador
	err := s.db.Where("user_id = ?", userID).First(&colab).Error
	creating := errors.Is(err, gorm.ErrRecordNotFound)

	if creating {
		if req.Code == nil || *req.Code == "" {
			return nil, errors.New("para criar o vínculo informe 'code' (6 dígitos)")
		}
		colab = models.Colaborador{
			Code:   *req.Code,
			Nome:   user.Nome,
			UserID: &user.ID,
		}
	} else if err != nil {
		return nil, err
	}

	if !creating && req.Code != nil && *req.Code != "" {
		colab.Code = *req.Code
	}
	if req.Nome != nil && strings.TrimSpace(*req.Nome) != "" {
		colab.Nome = strings.TrimSpace(*req.Nome)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&colab).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrCodeTaken
			}
			return err
		}
		if req.Cargo != nil {
			if err := tx.Model(&user).Update("cargo", NormalizeCargo(*req.Cargo)).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &colab, nil
}

// DeleteByCode removes the collaborator and, by cascade at the application
// level, its attendance rows and justifications. This is an explicit admin
// action, never part of the normal flow.
func (s *ColaboradorService) DeleteByCode(code string, actorID uint) error {
	colab, err := s.GetByCode(code)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("colaborador_id = ?", colab.ID).Delete(&models.RegistroPonto{}).Error; err != nil {
			return err
		}
		if err := tx.Where("colaborador_id = ?", colab.ID).Delete(&models.Justificativa{}).Error; err != nil {
			return err
		}
		return tx.Delete(colab).Error
	})
	if err != nil {
		return err
	}

	s.audit.Record(&actorID, "colaborador_excluido", "/colaboradores/"+code, "code="+code)
	return nil
}
