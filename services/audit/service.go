package audit

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	auditRepo "smartbooking/database/repository/audit"
	"smartbooking/models"
)

// Service records who did what, as append-only audit entries.
type Service interface {
	Log(userID, action, details string) error
	ListLogs() ([]models.AuditLog, error)
}

// DefaultAuditService is the production implementation.
type DefaultAuditService struct {
	Repo   auditRepo.AuditLogRepository
	Logger *zap.Logger
}

// Log appends an audit entry attributed to the acting user or admin.
func (s *DefaultAuditService) Log(userID, action, details string) error {
	entry := &models.AuditLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Create(entry); err != nil {
		return fmt.Errorf("failed to write audit entry %s: %w", action, err)
	}
	s.Logger.Info("audit",
		zap.String("user_id", userID),
		zap.String("action", action),
		zap.String("details", details),
	)
	return nil
}

// ListLogs returns all audit entries, newest first.
func (s *DefaultAuditService) ListLogs() ([]models.AuditLog, error) {
	return s.Repo.FindAll()
}
