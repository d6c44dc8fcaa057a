package services

import (
	"errors"
	"testing"
	"time"

	"github.com/folhaponto/ponto-backend/internal/models"
)

func TestNextFieldStandardCycle(t *testing.T) {
	t.Parallel()

	role := models.RoleFuncionario

	field, ok := NextField(role, nil)
	if !ok || field != models.FieldEntrada {
		t.Fatalf("empty day: got %q ok=%v", field, ok)
	}

	reg := &models.RegistroPonto{}
	order := []models.PunchField{
		models.FieldEntrada,
		models.FieldSaidaAlmoco,
		models.FieldVoltaAlmoco,
		models.FieldSaida,
	}
	now := time.Now()
	for _, want := range order {
		field, ok := NextField(role, reg)
		if !ok || field != want {
			t.Fatalf("got %q ok=%v, want %q", field, ok, want)
		}
		reg.SetBatida(want, now)
	}

	if _, ok := NextField(role, reg); ok {
		t.Fatal("full cycle should report no next field")
	}
}

func TestNextFieldInternCycle(t *testing.T) {
	t.Parallel()

	reg := &models.RegistroPonto{}
	now := time.Now()

	field, _ := NextField(models.RoleEstagiario, reg)
	if field != models.FieldEntrada {
		t.Fatalf("got %q, want entrada", field)
	}
	reg.SetBatida(models.FieldEntrada, now)

	field, _ = NextField(models.RoleEstagiario, reg)
	if field != models.FieldSaida {
		t.Fatalf("intern after entrada: got %q, want saida", field)
	}
	reg.SetBatida(models.FieldSaida, now)

	if _, ok := NextField(models.RoleEstagiario, reg); ok {
		t.Fatal("intern cycle should be complete after entrada and saida")
	}
}

func TestApplyPunchRejectsEarlierTimestamp(t *testing.T) {
	t.Parallel()

	entrada := at(2025, time.July, 1, 12, 0)
	reg := &models.RegistroPonto{Entrada: &entrada}

	_, err := applyPunch(models.RoleFuncionario, reg, at(2025, time.July, 1, 11, 0))
	if !errors.Is(err, ErrOrdemBatidas) {
		t.Fatalf("got %v, want ErrOrdemBatidas", err)
	}
	if reg.SaidaAlmoco != nil {
		t.Fatal("rejected punch must not mutate the record")
	}
}

func TestApplyPunchCompleteCycle(t *testing.T) {
	t.Parallel()

	now := time.Now()
	reg := &models.RegistroPonto{Entrada: &now, SaidaAlmoco: &now, VoltaAlmoco: &now, Saida: &now}

	_, err := applyPunch(models.RoleFuncionario, reg, now.Add(time.Hour))
	if !errors.Is(err, ErrCicloCompleto) {
		t.Fatalf("got %v, want ErrCicloCompleto", err)
	}
}

func TestValidateOrderingSkipsMissingFields(t *testing.T) {
	t.Parallel()

	entrada := at(2025, time.July, 1, 8, 0)
	saida := at(2025, time.July, 1, 17, 0)

	// entrada and saida only, lunch absent, still ordered
	reg := &models.RegistroPonto{Entrada: &entrada, Saida: &saida}
	if err := validateOrdering(reg); err != nil {
		t.Fatalf("sparse but ordered record rejected: %v", err)
	}

	bad := at(2025, time.July, 1, 7, 0)
	reg.Saida = &bad
	if err := validateOrdering(reg); !errors.Is(err, ErrOrdemBatidas) {
		t.Fatalf("got %v, want ErrOrdemBatidas", err)
	}
}
