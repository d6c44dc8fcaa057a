package models

import (
	"time"
)

// Role determines which punch cycle applies to the linked collaborator.
type Role string

const (
	RoleFuncionario Role = "funcionario"
	RoleGestao      Role = "gestao"
	RoleEstagiario  Role = "estagiario"
)

func (r Role) Valid() bool {
	switch r {
	case RoleFuncionario, RoleGestao, RoleEstagiario:
		return true
	}
	return false
}

// Cycle returns the ordered punch fields a collaborator with this role must
// fill during one day. Interns skip the lunch break entirely.
func (r Role) Cycle() []PunchField {
	if r == RoleEstagiario {
		return []PunchField{FieldEntrada, FieldSaida}
	}
	return []PunchField{FieldEntrada, FieldSaidaAlmoco, FieldVoltaAlmoco, FieldSaida}
}

// AllowsLunch reports whether the role may carry lunch-break punches at all,
// including on manual insertion.
func (r Role) AllowsLunch() bool {
	return r != RoleEstagiario
}

type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Email          string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Nome           string     `gorm:"size:255;not null" json:"nome"`
	HashedPassword string     `gorm:"not null" json:"-"`
	Cargo          string     `gorm:"size:100;not null;default:'Não Definido'" json:"cargo"`
	Role           Role       `gorm:"size:20;not null;default:'funcionario'" json:"role"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"`
	FailedAttempts int        `gorm:"not null;default:0" json:"-"`
	Locked         bool       `gorm:"not null;default:false" json:"locked"`
	LockedUntil    *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
