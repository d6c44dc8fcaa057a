package dto

import (
	"time"

	"github.com/folhaponto/ponto-backend/internal/models"
)

type BaterPontoRequest struct {
	// Optional 6-digit code; when empty the collaborator is resolved from the
	// authenticated session.
	Code string `json:"code" validate:"omitempty,len=6,numeric"`
}

type PontoRegistradoResponse struct {
	Mensagem string                `json:"mensagem"`
	Registro *models.RegistroPonto `json:"registro"`
}

type PontoStatusResponse struct {
	Allowed    bool   `json:"allowed"`
	Reason     string `json:"reason,omitempty"`
	NextAction string `json:"next_action,omitempty"`
}

type RegistroPontoManualRequest struct {
	Code          string     `json:"code" validate:"required,len=6,numeric"`
	Data          string     `json:"data" validate:"required,datetime=2006-01-02"`
	Entrada       *time.Time `json:"entrada"`
	SaidaAlmoco   *time.Time `json:"saida_almoco"`
	VoltaAlmoco   *time.Time `json:"volta_almoco"`
	Saida         *time.Time `json:"saida"`
	Justificativa *string    `json:"justificativa"`
}

type RegistroPontoUpdateRequest struct {
	Entrada     *time.Time `json:"entrada"`
	SaidaAlmoco *time.Time `json:"saida_almoco"`
	VoltaAlmoco *time.Time `json:"volta_almoco"`
	Saida       *time.Time `json:"saida"`
}

type PontoPeriodoRequest struct {
	Code   string `json:"code" validate:"required,len=6,numeric"`
	Inicio string `json:"inicio" validate:"required,datetime=2006-01-02"`
	Fim    string `json:"fim" validate:"required,datetime=2006-01-02"`

	// Fixed times applied to every inserted day, HH:MM.
	Entrada     *string `json:"entrada" validate:"omitempty,datetime=15:04"`
	SaidaAlmoco *string `json:"saida_almoco" validate:"omitempty,datetime=15:04"`
	VoltaAlmoco *string `json:"volta_almoco" validate:"omitempty,datetime=15:04"`
	Saida       *string `json:"saida" validate:"omitempty,datetime=15:04"`

	IncluirSabado  bool `json:"incluir_sabado"`
	IncluirDomingo bool `json:"incluir_domingo"`
	// Defaults to true when omitted.
	PularFeriados *bool `json:"pular_feriados"`

	Justificativa *string `json:"justificativa"`
}

func (r *PontoPeriodoRequest) SkipHolidays() bool {
	return r.PularFeriados == nil || *r.PularFeriados
}

type BulkInsertItem struct {
	Data     string `json:"data"`
	Inserted bool   `json:"inserted"`
	Reason   string `json:"reason,omitempty"`
}

type BulkInsertResponse struct {
	Total   int              `json:"total"`
	Sucesso int              `json:"sucesso"`
	Pulados int              `json:"pulados"`
	Itens   []BulkInsertItem `json:"itens"`
}
