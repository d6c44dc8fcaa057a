package services

import (
	"errors"
	"time"

	"github.com/folhaponto/ponto-backend/internal/models"
)

var (
	ErrCicloCompleto = errors.New("todas as batidas já foram registradas para hoje")
	ErrOrdemBatidas  = errors.New("a ordem dos horários está inconsistente: entrada ≤ saída almoço ≤ volta almoço ≤ saída")
)

// NextField returns the first unset field in the role's punch cycle. A nil
// record means the day has no row yet, so the next action is always entrada.
// The second return is false once the cycle is complete for the day.
func NextField(role models.Role, reg *models.RegistroPonto) (models.PunchField, bool) {
	for _, f := range role.Cycle() {
		if reg == nil || reg.Batida(f) == nil {
			return f, true
		}
	}
	return "", false
}

// applyPunch fills the next legal field with instant. The new timestamp must
// not precede the previous field in the cycle; violations are rejected, never
// silently reordered.
func applyPunch(role models.Role, reg *models.RegistroPonto, instant time.Time) (models.PunchField, error) {
	field, ok := NextField(role, reg)
	if !ok {
		return "", ErrCicloCompleto
	}

	cycle := role.Cycle()
	for i, f := range cycle {
		if f != field {
			continue
		}
		if i > 0 {
			if prev := reg.Batida(cycle[i-1]); prev != nil && instant.Before(*prev) {
				return "", ErrOrdemBatidas
			}
		}
		break
	}

	reg.SetBatida(field, instant)
	return field, nil
}

// validateOrdering enforces entrada ≤ saida_almoco ≤ volta_almoco ≤ saida
// across whatever fields are present. Used by the manual paths, which bypass
// the sequential gate but keep the ordering invariant.
func validateOrdering(reg *models.RegistroPonto) error {
	fields := []models.PunchField{
		models.FieldEntrada,
		models.FieldSaidaAlmoco,
		models.FieldVoltaAlmoco,
		models.FieldSaida,
	}

	var prev *time.Time
	for _, f := range fields {
		cur := reg.Batida(f)
		if cur == nil {
			continue
		}
		if prev != nil && cur.Before(*prev) {
			return ErrOrdemBatidas
		}
		prev = cur
	}
	return nil
}
