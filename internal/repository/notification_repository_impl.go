package repository

import (
	"bloodbank-backend/internal/domain/entity"
	domainRepo "bloodbank-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type notificationRepository struct{}

func NewNotificationRepository() domainRepo.NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(db *gorm.DB, notification *entity.Notification) error {
	return db.Create(notification).Error
}

func (r *notificationRepository) FindByRecipient(db *gorm.DB, recipientID uuid.UUID, unreadOnly bool) ([]entity.Notification, error) {
	query := db.Where("recipient_id = ?", recipientID)
	if unreadOnly {
		query = query.Where("is_read = false")
	}

	var notifications []entity.Notification
	err := query.Order("created_at DESC").Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(db *gorm.DB, id uuid.UUID, recipientID uuid.UUID) (int64, error) {
	result := db.Model(&entity.Notification{}).
		Where("id = ? AND recipient_id = ? AND is_read = false", id, recipientID).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) MarkAllRead(db *gorm.DB, recipientID uuid.UUID) (int64, error) {
	result := db.Model(&entity.Notification{}).
		Where("recipient_id = ? AND is_read = false", recipientID).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) CountUnread(db *gorm.DB, recipientID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.Notification{}).
		Where("recipient_id = ? AND is_read = false", recipientID).
		Count(&count).Error
	return count, err
}
