package services

import (
	"errors"
	"testing"
	"time"

	"github.com/folhaponto/ponto-backend/internal/dto"
	"github.com/folhaponto/ponto-backend/internal/models"
)

func newColaboradorService(t *testing.T) *ColaboradorService {
	t.Helper()
	db := newTestDB(t)
	return NewColaboradorService(db, NewAuditService(db))
}

func TestNormalizeCargo(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":              CargoPlaceholder,
		"  ":            CargoPlaceholder,
		"não definido":  CargoPlaceholder,
		"Nao Definido":  CargoPlaceholder,
		"Desenvolvedor": "Desenvolvedor",
		" Analista ":    "Analista",
	}
	for in, want := range cases {
		if got := NormalizeCargo(in); got != want {
			t.Errorf("NormalizeCargo(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCreateColaborador(t *testing.T) {
	t.Parallel()
	svc := newColaboradorService(t)

	colab, err := svc.Create(&dto.ColaboradorCreateRequest{Code: "400001", Nome: "Ana"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if colab.ID == 0 || colab.UserID != nil {
		t.Fatal("standalone colaborador should have no linked user")
	}

	if _, err := svc.Create(&dto.ColaboradorCreateRequest{Code: "400001", Nome: "Outro"}); !errors.Is(err, ErrCodeTaken) {
		t.Fatalf("got %v, want ErrCodeTaken", err)
	}
}

func TestCreateColaboradorLinkedByEmail(t *testing.T) {
	t.Parallel()
	svc := newColaboradorService(t)

	user := models.User{Email: "link@empresa.com.br", Nome: "Linked", HashedPassword: "x"}
	if err := svc.db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	colab, err := svc.Create(&dto.ColaboradorCreateRequest{
		Code:         "400002",
		EmailUsuario: "link@empresa.com.br",
		Cargo:        "Analista",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if colab.UserID == nil || *colab.UserID != user.ID {
		t.Fatal("colaborador must link to the user")
	}
	if colab.Nome != "Linked" {
		t.Fatalf("nome should fall back to the user's: %q", colab.Nome)
	}

	svc.db.First(&user, user.ID)
	if user.Cargo != "Analista" {
		t.Fatalf("cargo not synced: %q", user.Cargo)
	}

	if _, err := svc.Create(&dto.ColaboradorCreateRequest{Code: "400003", EmailUsuario: "ghost@x.com"}); !errors.Is(err, ErrUsuarioNotFound) {
		t.Fatalf("got %v, want ErrUsuarioNotFound", err)
	}
}

func TestUpsertByUser(t *testing.T) {
	t.Parallel()
	svc := newColaboradorService(t)

	user := models.User{Email: "up@empresa.com.br", Nome: "Up", HashedPassword: "x"}
	if err := svc.db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	// Creating the link requires the code.
	if _, err := svc.UpsertByUser(user.ID, &dto.ColaboradorUpsertRequest{Nome: ptr("Novo Nome")}); err == nil {
		t.Fatal("create without code must fail")
	}

	colab, err := svc.UpsertByUser(user.ID, &dto.ColaboradorUpsertRequest{Code: ptr("400010")})
	if err != nil {
		t.Fatalf("UpsertByUser create: %v", err)
	}
	if colab.Code != "400010" || colab.Nome != "Up" {
		t.Fatalf("got code=%q nome=%q", colab.Code, colab.Nome)
	}

	// Update path only touches what is supplied.
	colab, err = svc.UpsertByUser(user.ID, &dto.ColaboradorUpsertRequest{Nome: ptr("Renomeado")})
	if err != nil {
		t.Fatalf("UpsertByUser update: %v", err)
	}
	if colab.Code != "400010" || colab.Nome != "Renomeado" {
		t.Fatalf("got code=%q nome=%q", colab.Code, colab.Nome)
	}
}

func TestDeleteByCodeCascades(t *testing.T) {
	t.Parallel()
	svc := newColaboradorService(t)
	colab := seedColaborador(t, svc.db, "400020", models.RoleFuncionario)

	entrada := at(2025, time.July, 1, 8, 0)
	if err := svc.db.Create(&models.RegistroPonto{ColaboradorID: colab.ID, Data: "2025-07-01", Entrada: &entrada}).Error; err != nil {
		t.Fatalf("seed registro: %v", err)
	}
	if err := svc.db.Create(&models.Justificativa{ColaboradorID: colab.ID, Justificativa: "x", DataReferente: "2025-07-01", Status: models.JustificativaPendente}).Error; err != nil {
		t.Fatalf("seed justificativa: %v", err)
	}

	if err := svc.DeleteByCode("400020", 1); err != nil {
		t.Fatalf("DeleteByCode: %v", err)
	}

	var regs, justs int64
	svc.db.Model(&models.RegistroPonto{}).Where("colaborador_id = ?", colab.ID).Count(&regs)
	svc.db.Model(&models.Justificativa{}).Where("colaborador_id = ?", colab.ID).Count(&justs)
	if regs != 0 || justs != 0 {
		t.Fatalf("cascade incomplete: registros=%d justificativas=%d", regs, justs)
	}

	if err := svc.DeleteByCode("400020", 1); !errors.Is(err, ErrColaboradorNotFound) {
		t.Fatalf("got %v, want ErrColaboradorNotFound", err)
	}
}

func TestGetByUser(t *testing.T) {
	t.Parallel()
	svc := newColaboradorService(t)
	colab := seedColaborador(t, svc.db, "400030", models.RoleEstagiario)

	found, err := svc.GetByUser(*colab.UserID)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if found.Code != "400030" {
		t.Fatalf("got code %q", found.Code)
	}
	if found.User == nil || found.RoleOrDefault() != models.RoleEstagiario {
		t.Fatal("role must resolve through the preloaded user")
	}

	if _, err := svc.GetByUser(9999); !errors.Is(err, ErrColaboradorNotFound) {
		t.Fatalf("got %v, want ErrColaboradorNotFound", err)
	}
}

func TestAuditListCapsLimit(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	audit := NewAuditService(db)

	for i := 0; i < 5; i++ {
		audit.Record(nil, "acao", "/x", "d")
	}

	logs, total, err := audit.List(0, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 5 || len(logs) != 5 {
		t.Fatalf("got total=%d len=%d", total, len(logs))
	}

	logs, _, err = audit.List(2, 0)
	if err != nil || len(logs) != 2 {
		t.Fatalf("limit=2: len=%d err=%v", len(logs), err)
	}
}
