package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/folhaponto/ponto-backend/internal/calendar"
	"github.com/folhaponto/ponto-backend/internal/config"
	"github.com/folhaponto/ponto-backend/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
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
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTAccessExpiry:    30 * time.Minute,
		JWTRefreshExpiry:   168 * time.Hour,
		LockoutMaxAttempts: 3,
		LockoutDuration:    15 * time.Minute,
	}
}

// seedColaborador creates a user with the given role and a linked collaborator.
func seedColaborador(t *testing.T, db *gorm.DB, code string, role models.Role) *models.Colaborador {
	t.Helper()

	user := models.User{
		Email:          code + "@empresa.com.br",
		Nome:           "Colaborador " + code,
		HashedPassword: "x",
		Role:           role,
		IsActive:       true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	colab := models.Colaborador{Code: code, Nome: user.Nome, UserID: &user.ID}
	if err := db.Create(&colab).Error; err != nil {
		t.Fatalf("seed colaborador: %v", err)
	}
	colab.User = &user
	return &colab
}

type stubHolidays struct {
	dates map[string]bool
	err   error
}

func (s *stubHolidays) IsHoliday(d time.Time) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.dates[d.Format(time.DateOnly)], nil
}

func openGate() *calendar.Gate {
	return calendar.NewGate(nil)
}

func gateWithHolidays(dates ...string) *calendar.Gate {
	m := make(map[string]bool, len(dates))
	for _, d := range dates {
		m[d] = true
	}
	return calendar.NewGate(&stubHolidays{dates: m})
}

func at(y int, m time.Month, d, hour, min int) time.Time {
	return time.Date(y, m, d, hour, min, 0, 0, calendar.Zone)
}

func ptr[T any](v T) *T { return &v }
