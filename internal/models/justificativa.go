package models

import "time"

const (
	JustificativaPendente  = "pendente"
	JustificativaAprovada  = "aprovada"
	JustificativaRejeitada = "rejeitada"
)

// Justificativa is an employee-submitted explanation for an absence or anomaly
// on one referenced date. Evaluation is terminal: once aprovada or rejeitada it
// cannot be re-evaluated.
type Justificativa struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	ColaboradorID uint        `gorm:"not null;index" json:"colaborador_id"`
	Justificativa string      `gorm:"size:500;not null" json:"justificativa"`
	Arquivo       *string     `gorm:"size:255" json:"arquivo,omitempty"`
	DataEnvio     time.Time   `gorm:"autoCreateTime" json:"data_envio"`
	DataReferente string      `gorm:"size:10;not null" json:"data_referente"`
	Status        string      `gorm:"size:20;not null;default:'pendente'" json:"status"`
	AvaliadorID   *uint       `json:"avaliador_id,omitempty"`
	AvaliadoEm    *time.Time  `json:"avaliado_em,omitempty"`
	Comentario    *string     `gorm:"size:500" json:"comentario,omitempty"`
	Avaliador     *User       `gorm:"foreignKey:AvaliadorID" json:"-"`
	Colaborador   Colaborador `gorm:"foreignKey:ColaboradorID" json:"-"`
}
