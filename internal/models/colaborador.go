package models

import "time"

// Colaborador is the employee entity punches are recorded against. It is
// identified by a unique 6-digit code and optionally linked 1:1 to a login User.
type Colaborador struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"size:6;not null;uniqueIndex" json:"code"`
	Nome      string    `gorm:"size:255" json:"nome"`
	UserID    *uint     `gorm:"uniqueIndex" json:"user_id,omitempty"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Role resolves the punch cycle for this collaborator from the linked user.
// Unlinked collaborators fall back to the standard cycle.
func (c *Colaborador) RoleOrDefault() Role {
	if c.User != nil && c.User.Role.Valid() {
		return c.User.Role
	}
	return RoleFuncionario
}
