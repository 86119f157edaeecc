package repository

import (
	"bloodbank-backend/internal/domain/entity"
	domainRepo "bloodbank-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	return db.Create(log).Error
}

func (r *auditLogRepository) FindRecent(db *gorm.DB, limit int) ([]entity.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}

	var logs []entity.AuditLog
	err := db.Preload("User").Order("created_at DESC").Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
