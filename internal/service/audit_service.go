package service

import (
	"bloodbank-backend/internal/domain/entity"
	"bloodbank-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService records the activity trail surfaced on the admin dashboard.
// Failures are logged and returned but callers generally treat them as
// non-fatal.
type AuditService interface {
	Log(tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, detail map[string]interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) Log(tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, detail map[string]interface{}) error {
	metadata := entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
	}
	for k, v := range detail {
		metadata[k] = v
	}

	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
