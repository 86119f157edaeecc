package service

import (
	"bloodbank-backend/internal/domain/entity"
	"bloodbank-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NotificationDispatcher creates in-app notification records and mirrors
// them to email when SMTP is configured. Dispatch never returns an error:
// notification delivery happens after the triggering mutation has committed
// and must not undo it. Failures are logged.
type NotificationDispatcher interface {
	Dispatch(db *gorm.DB, recipientID uuid.UUID, notifType, title, message string, data map[string]interface{})
}

type notificationDispatcher struct {
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	emailService     EmailService
}

func NewNotificationDispatcher(
	log *logrus.Logger,
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	emailService EmailService,
) NotificationDispatcher {
	return &notificationDispatcher{
		log:              log,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		emailService:     emailService,
	}
}

func (d *notificationDispatcher) Dispatch(db *gorm.DB, recipientID uuid.UUID, notifType, title, message string, data map[string]interface{}) {
	notification := &entity.Notification{
		RecipientID: recipientID,
		Type:        notifType,
		Title:       title,
		Message:     message,
		Data:        entity.JSON(data),
	}

	if err := d.notificationRepo.Create(db, notification); err != nil {
		d.log.Warnf("Failed to create notification for %s: %+v", recipientID, err)
		return
	}

	if !d.emailService.Enabled() {
		return
	}

	user, err := d.userRepo.FindByID(db, recipientID)
	if err != nil || user == nil {
		d.log.Warnf("Failed to resolve notification recipient %s: %+v", recipientID, err)
		return
	}

	if err := d.emailService.Send(user.Email, title, message); err != nil {
		// Already logged by the email service; record persists regardless.
		return
	}
}
