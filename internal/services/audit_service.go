package services

import (
	"log/slog"

	"github.com/folhaponto/ponto-backend/internal/models"
	"gorm.io/gorm"
)

type AuditService struct {
	db *gorm.DB
}

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// Record appends one audit entry. Failures are logged and swallowed so an
// audit hiccup never fails the action being audited.
func (s *AuditService) Record(userID *uint, action, endpoint, detail string) {
	entry := models.AuditLog{
		UserID:   userID,
		Action:   action,
		Endpoint: endpoint,
		Detail:   detail,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		slog.Error("failed to record audit entry", "action", action, "endpoint", endpoint, "error", err)
	}
}

func (s *AuditService) List(limit, offset int) ([]models.AuditLog, int64, error) {
	var logs []models.AuditLog
	var total int64

	s.db.Model(&models.AuditLog{}).Count(&total)

	if limit <= 0 || limit > 200 {
		limit = 100
	}
	err := s.db.Order("timestamp DESC").Limit(limit).Offset(offset).Find(&logs).Error
	return logs, total, err
}
