package models

import "time"

// PunchField names one of the four daily attendance timestamps.
type PunchField string

const (
	FieldEntrada     PunchField = "entrada"
	FieldSaidaAlmoco PunchField = "saida_almoco"
	FieldVoltaAlmoco PunchField = "volta_almoco"
	FieldSaida       PunchField = "saida"
)

// DateLayout is the canonical storage format for calendar dates. Dates are
// kept as plain strings so the (colaborador_id, data) unique index compares
// identically on every SQL driver.
const DateLayout = "2006-01-02"

// RegistroPonto holds one row per (collaborator, calendar date). The four
// timestamps are filled sequentially and must stay non-decreasing.
type RegistroPonto struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	ColaboradorID uint        `gorm:"not null;uniqueIndex:idx_registro_ponto_colab_data" json:"colaborador_id"`
	Data          string      `gorm:"size:10;not null;uniqueIndex:idx_registro_ponto_colab_data" json:"data"`
	Entrada       *time.Time  `json:"entrada"`
	SaidaAlmoco   *time.Time  `json:"saida_almoco"`
	VoltaAlmoco   *time.Time  `json:"volta_almoco"`
	Saida         *time.Time  `json:"saida"`
	Justificativa *string     `gorm:"size:500" json:"justificativa,omitempty"`
	Arquivo       *string     `gorm:"size:255" json:"arquivo,omitempty"`
	AlteradoPorID *uint       `json:"alterado_por_id,omitempty"`
	AlteradoPor   *User       `gorm:"foreignKey:AlteradoPorID" json:"-"`
	Colaborador   Colaborador `gorm:"foreignKey:ColaboradorID" json:"-"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Batida returns the stored timestamp for the given field.
func (r *RegistroPonto) Batida(f PunchField) *time.Time {
	switch f {
	case FieldEntrada:
		return r.Entrada
	case FieldSaidaAlmoco:
		return r.SaidaAlmoco
	case FieldVoltaAlmoco:
		return r.VoltaAlmoco
	case FieldSaida:
		return r.Saida
	}
	return nil
}

// SetBatida writes the timestamp for the given field.
func (r *RegistroPonto) SetBatida(f PunchField, t time.Time) {
	switch f {
	case FieldEntrada:
		r.Entrada = &t
	case FieldSaidaAlmoco:
		r.SaidaAlmoco = &t
	case FieldVoltaAlmoco:
		r.VoltaAlmoco = &t
	case FieldSaida:
		r.Saida = &t
	}
}

func (RegistroPonto) TableName() string { return "registro_ponto" }
