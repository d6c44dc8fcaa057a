package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/folhaponto/ponto-backend/internal/calendar"
	"github.com/folhaponto/ponto-backend/internal/config"
	"github.com/folhaponto/ponto-backend/internal/database"
	"github.com/folhaponto/ponto-backend/internal/handlers"
	"github.com/folhaponto/ponto-backend/internal/models"
	"github.com/folhaponto/ponto-backend/internal/routes"
	"github.com/folhaponto/ponto-backend/internal/services"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "api.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Colaborador{},
		&models.RegistroPonto{},
		&models.Justificativa{},
		&models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db

	cfg := &config.Config{
		JWTSecret:          "api-test-secret",
		JWTAccessExpiry:    30 * time.Minute,
		JWTRefreshExpiry:   168 * time.Hour,
		LockoutMaxAttempts: 3,
		LockoutDuration:    15 * time.Minute,
		UploadDir:          t.TempDir(),
	}

	audit := services.NewAuditService(db)
	authService := services.NewAuthService(db, cfg, audit)
	colaboradorService := services.NewColaboradorService(db, audit)
	pontoService := services.NewPontoService(db, calendar.NewGate(nil), audit)
	justificativaService := services.NewJustificativaService(db, cfg.UploadDir, audit)

	app := fiber.New()
	routes.Setup(app, cfg, db,
		handlers.NewAuthHandler(authService),
		handlers.NewPontoHandler(pontoService, colaboradorService),
		handlers.NewColaboradorHandler(colaboradorService),
		handlers.NewJustificativaHandler(justificativaService),
		handlers.NewAuditoriaHandler(audit),
		handlers.NewHealthHandler(),
	)
	return app
}

func request(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var parsed map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		json.Unmarshal(raw, &parsed)
	}
	return resp.StatusCode, parsed
}

func TestAPIFlow(t *testing.T) {
	app := newTestApp(t)

	status, _ := request(t, app, http.MethodGet, "/api/health", "", nil)
	if status != http.StatusOK {
		t.Fatalf("health: status %d", status)
	}

	// Bootstrap: the very first signup needs no token.
	status, _ = request(t, app, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"email":    "gestora@empresa.com.br",
		"nome":     "Gestora",
		"password": "senha-gestao",
		"role":     "gestao",
		"code":     "500001",
	})
	if status != http.StatusCreated {
		t.Fatalf("bootstrap signup: status %d", status)
	}

	// Once a user exists, signup without a token is refused.
	status, _ = request(t, app, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"email":    "intruso@empresa.com.br",
		"nome":     "Intruso",
		"password": "12345678",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("unauthenticated signup: status %d, want 401", status)
	}

	status, body := request(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "gestora@empresa.com.br",
		"password": "senha-gestao",
	})
	if status != http.StatusOK {
		t.Fatalf("gestao login: status %d", status)
	}
	gestaoToken, _ := body["access_token"].(string)
	if gestaoToken == "" {
		t.Fatal("missing access token")
	}

	status, _ = request(t, app, http.MethodPost, "/api/auth/signup", gestaoToken, map[string]any{
		"email":    "func@empresa.com.br",
		"nome":     "Funcionário",
		"password": "senha-func",
		"code":     "500002",
	})
	if status != http.StatusCreated {
		t.Fatalf("authenticated signup: status %d", status)
	}

	status, body = request(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "func@empresa.com.br",
		"password": "senha-func",
	})
	if status != http.StatusOK {
		t.Fatalf("func login: status %d", status)
	}
	funcToken, _ := body["access_token"].(string)

	status, body = request(t, app, http.MethodGet, "/api/me/colaborador", funcToken, nil)
	if status != http.StatusOK {
		t.Fatalf("me: status %d", status)
	}
	if code, _ := body["code"].(string); code != "500002" {
		t.Fatalf("me: code %q", code)
	}

	// Routes behind GestaoRequired refuse a funcionario token.
	status, _ = request(t, app, http.MethodGet, "/api/colaboradores", funcToken, nil)
	if status != http.StatusForbidden {
		t.Fatalf("colaboradores as funcionario: status %d, want 403", status)
	}
	// And any protected route refuses no token at all.
	status, _ = request(t, app, http.MethodGet, "/api/pontos", "", nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("pontos without token: status %d, want 401", status)
	}

	// Administrative manual insert for a fixed past day.
	status, _ = request(t, app, http.MethodPost, "/api/ponto/manual", gestaoToken, map[string]any{
		"code":    "500002",
		"data":    "2025-07-01",
		"entrada": "2025-07-01T08:00:00-03:00",
		"saida":   "2025-07-01T17:00:00-03:00",
	})
	if status != http.StatusCreated {
		t.Fatalf("manual insert: status %d", status)
	}

	status, body = request(t, app, http.MethodGet, "/api/pontos/500002?data=2025-07-01", funcToken, nil)
	if status != http.StatusOK {
		t.Fatalf("get por dia: status %d", status)
	}
	if body["entrada"] == nil {
		t.Fatal("entrada missing on fetched record")
	}

	status, _ = request(t, app, http.MethodGet, "/api/pontos/500002?data=2099-01-01", funcToken, nil)
	if status != http.StatusNotFound {
		t.Fatalf("missing day: status %d, want 404", status)
	}

	// Three wrong passwords lock the account; the correct one then gets 423.
	for i := 0; i < 3; i++ {
		status, _ = request(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "func@empresa.com.br",
			"password": "senha-errada",
		})
		if status != http.StatusUnauthorized {
			t.Fatalf("wrong password %d: status %d, want 401", i+1, status)
		}
	}
	status, _ = request(t, app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "func@empresa.com.br",
		"password": "senha-func",
	})
	if status != http.StatusLocked {
		t.Fatalf("locked login: status %d, want 423", status)
	}

	// The lockout shows up in the audit trail.
	status, body = request(t, app, http.MethodGet, "/api/auditoria", gestaoToken, nil)
	if status != http.StatusOK {
		t.Fatalf("auditoria: status %d", status)
	}
	if total, _ := body["total"].(float64); total < 1 {
		t.Fatal("audit trail empty")
	}
}
