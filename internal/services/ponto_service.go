package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/folhaponto/ponto-backend/internal/calendar"
	"github.com/folhaponto/ponto-backend/internal/dto"
	"github.com/folhaponto/ponto-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrRegistroNotFound    = errors.New("registro de ponto não encontrado")
	ErrRegistroExistente   = errors.New("registro de ponto já existe para este dia")
	ErrEstagiarioAlmoco    = errors.New("estagiário não registra pausa de almoço: apenas entrada e saída")
	ErrNenhumHorario       = errors.New("informe pelo menos um horário (entrada, saída almoço, volta almoço ou saída)")
	ErrRegistroJustificado = errors.New("registros com justificativa não podem ser alterados")
	ErrPeriodoInvalido     = errors.New("data inicial não pode ser maior que a final")
)

// DiaBloqueadoError carries the calendar gate's refusal reason.
type DiaBloqueadoError struct {
	Reason string
}

func (e *DiaBloqueadoError) Error() string { return e.Reason }

type PontoService struct {
	db    *gorm.DB
	gate  *calendar.Gate
	audit *AuditService
}

func NewPontoService(db *gorm.DB, gate *calendar.Gate, audit *AuditService) *PontoService {
	return &PontoService{db: db, gate: gate, audit: audit}
}

// RegistrarPonto applies the next legal punch of the collaborator's cycle at
// instant. The first punch of the day creates the row; the unique index on
// (colaborador_id, data) is the backstop against a concurrent double submit.
func (s *PontoService) RegistrarPonto(code string, instant time.Time) (*models.RegistroPonto, models.PunchField, error) {
	colab, err := s.colaboradorByCode(code)
	if err != nil {
		return nil, "", err
	}

	if ok, reason := s.gate.IsDayEligible(instant); !ok {
		return nil, "", &DiaBloqueadoError{Reason: reason}
	}

	role := colab.RoleOrDefault()
	local := instant.In(calendar.Zone)
	dia := local.Format(models.DateLayout)

	var reg models.RegistroPonto
	err = s.db.Where("colaborador_id = ? AND data = ?", colab.ID, dia).First(&reg).Error
	isNew := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !isNew {
		return nil, "", err
	}
	if isNew {
		reg = models.RegistroPonto{ColaboradorID: colab.ID, Data: dia}
	}

	field, err := applyPunch(role, &reg, local)
	if err != nil {
		return nil, "", err
	}

	if isNew {
		if err := s.db.Create(&reg).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, "", ErrRegistroExistente
			}
			return nil, "", err
		}
	} else if err := s.db.Save(&reg).Error; err != nil {
		return nil, "", err
	}

	s.audit.Record(colab.UserID, "ponto_registrado", "/ponto/bater",
		fmt.Sprintf("code=%s campo=%s", code, field))
	return &reg, field, nil
}

// Status reports whether the collaborator's day admits a punch and which field
// would be filled next.
func (s *PontoService) Status(code string, at time.Time) (*dto.PontoStatusResponse, error) {
	colab, err := s.colaboradorByCode(code)
	if err != nil {
		return nil, err
	}

	resp := &dto.PontoStatusResponse{}
	if ok, reason := s.gate.IsDayEligible(at); !ok {
		resp.Reason = reason
		return resp, nil
	}

	local := at.In(calendar.Zone)
	var reg models.RegistroPonto
	var regPtr *models.RegistroPonto
	err = s.db.Where("colaborador_id = ? AND data = ?", colab.ID, local.Format(models.DateLayout)).First(&reg).Error
	if err == nil {
		regPtr = &reg
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if field, ok := NextField(colab.RoleOrDefault(), regPtr); ok {
		resp.Allowed = true
		resp.NextAction = string(field)
	} else {
		resp.Reason = ErrCicloCompleto.Error()
	}
	return resp, nil
}

// ManualUpsert is the administrative correction path: it bypasses the
// sequential gate but keeps the role and ordering invariants, and stamps the
// acting admin on the row.
func (s *PontoService) ManualUpsert(actorID uint, req *dto.RegistroPontoManualRequest) (*models.RegistroPonto, error) {
	reg, err := s.manualUpsert(actorID, req)
	if err != nil {
		return nil, err
	}
	s.audit.Record(&actorID, "ponto_manual", "/ponto/manual",
		fmt.Sprintf("code=%s data=%s", req.Code, req.Data))
	return reg, nil
}

func (s *PontoService) manualUpsert(actorID uint, req *dto.RegistroPontoManualRequest) (*models.RegistroPonto, error) {
	if req.Entrada == nil && req.SaidaAlmoco == nil && req.VoltaAlmoco == nil && req.Saida == nil {
		return nil, ErrNenhumHorario
	}

	colab, err := s.colaboradorByCode(req.Code)
	if err != nil {
		return nil, err
	}

	role := colab.RoleOrDefault()
	if !role.AllowsLunch() && (req.SaidaAlmoco != nil || req.VoltaAlmoco != nil) {
		return nil, ErrEstagiarioAlmoco
	}

	var reg models.RegistroPonto
	err = s.db.Where("colaborador_id = ? AND data = ?", colab.ID, req.Data).First(&reg).Error
	isNew := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !isNew {
		return nil, err
	}
	if isNew {
		reg = models.RegistroPonto{ColaboradorID: colab.ID, Data: req.Data}
	}

	if req.Entrada != nil {
		reg.Entrada = req.Entrada
	}
	if req.SaidaAlmoco != nil {
		reg.SaidaAlmoco = req.SaidaAlmoco
	}
	if req.VoltaAlmoco != nil {
		reg.VoltaAlmoco = req.VoltaAlmoco
	}
	if req.Saida != nil {
		reg.Saida = req.Saida
	}
	if err := validateOrdering(&reg); err != nil {
		return nil, err
	}

	if req.Justificativa != nil {
		reg.Justificativa = req.Justificativa
	}
	reg.AlteradoPorID = &actorID

	if isNew {
		if err := s.db.Create(&reg).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrRegistroExistente
			}
			return nil, err
		}
	} else if err := s.db.Save(&reg).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

// BulkUpsertRange walks every day of the inclusive range, skipping weekends
// and holidays per the request flags, and upserts the rest. Each day's outcome
// is independent: one failed day never aborts the batch.
func (s *PontoService) BulkUpsertRange(actorID uint, req *dto.PontoPeriodoRequest) (*dto.BulkInsertResponse, error) {
	inicio, err := time.ParseInLocation(models.DateLayout, req.Inicio, calendar.Zone)
	if err != nil {
		return nil, fmt.Errorf("data inicial inválida: %w", err)
	}
	fim, err := time.ParseInLocation(models.DateLayout, req.Fim, calendar.Zone)
	if err != nil {
		return nil, fmt.Errorf("data final inválida: %w", err)
	}
	if inicio.After(fim) {
		return nil, ErrPeriodoInvalido
	}
	if req.Entrada == nil && req.SaidaAlmoco == nil && req.VoltaAlmoco == nil && req.Saida == nil {
		return nil, ErrNenhumHorario
	}
	if err := validateFixedTimes(req); err != nil {
		return nil, err
	}

	resp := &dto.BulkInsertResponse{}
	for d := inicio; !d.After(fim); d = d.AddDate(0, 0, 1) {
		item := dto.BulkInsertItem{Data: d.Format(models.DateLayout)}
		resp.Total++

		if reason := s.skipReason(d, req); reason != "" {
			item.Reason = reason
			resp.Pulados++
			resp.Itens = append(resp.Itens, item)
			continue
		}

		manual := &dto.RegistroPontoManualRequest{
			Code:          req.Code,
			Data:          item.Data,
			Entrada:       punchInstant(d, req.Entrada),
			SaidaAlmoco:   punchInstant(d, req.SaidaAlmoco),
			VoltaAlmoco:   punchInstant(d, req.VoltaAlmoco),
			Saida:         punchInstant(d, req.Saida),
			Justificativa: req.Justificativa,
		}
		if _, err := s.manualUpsert(actorID, manual); err != nil {
			item.Reason = err.Error()
			resp.Pulados++
		} else {
			item.Inserted = true
			resp.Sucesso++
		}
		resp.Itens = append(resp.Itens, item)
	}

	s.audit.Record(&actorID, "ponto_periodo", "/ponto/periodo",
		fmt.Sprintf("code=%s inicio=%s fim=%s inseridos=%d pulados=%d",
			req.Code, req.Inicio, req.Fim, resp.Sucesso, resp.Pulados))
	return resp, nil
}

func (s *PontoService) skipReason(d time.Time, req *dto.PontoPeriodoRequest) string {
	switch d.Weekday() {
	case time.Saturday:
		if !req.IncluirSabado {
			return "sábado não incluído"
		}
	case time.Sunday:
		if !req.IncluirDomingo {
			return "domingo não incluído"
		}
	}
	if req.SkipHolidays() && s.gate.IsHoliday(d) {
		return "feriado"
	}
	return ""
}

func validateFixedTimes(req *dto.PontoPeriodoRequest) error {
	toMin := func(hhmm *string) int {
		if hhmm == nil {
			return -1
		}
		t, err := time.Parse("15:04", *hhmm)
		if err != nil {
			return -1
		}
		return t.Hour()*60 + t.Minute()
	}

	// The last set time carries across absent fields, so a sparse request
	// like entrada+saida is still compared end to end.
	prev := -1
	for _, hhmm := range []*string{req.Entrada, req.SaidaAlmoco, req.VoltaAlmoco, req.Saida} {
		cur := toMin(hhmm)
		if cur < 0 {
			continue
		}
		if prev >= 0 && cur < prev {
			return ErrOrdemBatidas
		}
		prev = cur
	}
	return nil
}

func punchInstant(day time.Time, hhmm *string) *time.Time {
	if hhmm == nil {
		return nil
	}
	t, err := time.Parse("15:04", *hhmm)
	if err != nil {
		return nil
	}
	instant := time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, calendar.Zone)
	return &instant
}

// UpdatePonto is the authenticated edit path. Rows already annotated with a
// justification are locked against it; the manual upsert path remains the
// explicit administrative override.
func (s *PontoService) UpdatePonto(id, actorID uint, req *dto.RegistroPontoUpdateRequest) (*models.RegistroPonto, error) {
	var reg models.RegistroPonto
	if err := s.db.Preload("Colaborador.User").First(&reg, id).Error; err != nil {
		return nil, ErrRegistroNotFound
	}
	if reg.Justificativa != nil {
		return nil, ErrRegistroJustificado
	}

	role := reg.Colaborador.RoleOrDefault()
	if !role.AllowsLunch() && (req.SaidaAlmoco != nil || req.VoltaAlmoco != nil) {
		return nil, ErrEstagiarioAlmoco
	}

	if req.Entrada != nil {
		reg.Entrada = req.Entrada
	}
	if req.SaidaAlmoco != nil {
		reg.SaidaAlmoco = req.SaidaAlmoco
	}
	if req.VoltaAlmoco != nil {
		reg.VoltaAlmoco = req.VoltaAlmoco
	}
	if req.Saida != nil {
		reg.Saida = req.Saida
	}
	if err := validateOrdering(&reg); err != nil {
		return nil, err
	}

	reg.AlteradoPorID = &actorID
	if err := s.db.Save(&reg).Error; err != nil {
		return nil, err
	}

	s.audit.Record(&actorID, "ponto_alterado", fmt.Sprintf("/pontos/%d", id), "data="+reg.Data)
	return &reg, nil
}

func (s *PontoService) DeletePonto(id, actorID uint) error {
	var reg models.RegistroPonto
	if err := s.db.First(&reg, id).Error; err != nil {
		return ErrRegistroNotFound
	}
	if err := s.db.Delete(&reg).Error; err != nil {
		return err
	}
	s.audit.Record(&actorID, "ponto_excluido", fmt.Sprintf("/pontos/%d", id), "data="+reg.Data)
	return nil
}

func (s *PontoService) ListPontos() ([]models.RegistroPonto, error) {
	var regs []models.RegistroPonto
	err := s.db.Preload("Colaborador").Preload("AlteradoPor").
		Order("data DESC").Find(&regs).Error
	return regs, err
}

func (s *PontoService) GetRegistroPorDia(code, data string) (*models.RegistroPonto, error) {
	colab, err := s.colaboradorByCode(code)
	if err != nil {
		return nil, err
	}
	var reg models.RegistroPonto
	if err := s.db.Where("colaborador_id = ? AND data = ?", colab.ID, data).First(&reg).Error; err != nil {
		return nil, ErrRegistroNotFound
	}
	return &reg, nil
}

func (s *PontoService) colaboradorByCode(code string) (*models.Colaborador, error) {
	var colab models.Colaborador
	if err := s.db.Preload("User").Where("code = ?", code).First(&colab).Error; err != nil {
		return nil, ErrColaboradorNotFound
	}
	return &colab, nil
}
