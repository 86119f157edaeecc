package usecase

import (
	"context"
	"errors"

	"bloodbank-backend/internal/converter"
	"bloodbank-backend/internal/delivery/dto"
	"bloodbank-backend/internal/domain/entity"
	"bloodbank-backend/internal/domain/repository"
	"bloodbank-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationUsecase interface {
	List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, recipientID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
	Send(ctx context.Context, req *dto.SendNotificationRequest) error
}

type notificationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
	dispatcher       service.NotificationDispatcher
}

func NewNotificationUsecase(db *gorm.DB, log *logrus.Logger, notificationRepo repository.NotificationRepository, dispatcher service.NotificationDispatcher) NotificationUsecase {
	return &notificationUsecase{
		db:               db,
		log:              log,
		notificationRepo: notificationRepo,
		dispatcher:       dispatcher,
	}
}

func (u *notificationUsecase) List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) (*dto.NotificationListResponse, error) {
	db := u.db.WithContext(ctx)

	notifications, err := u.notificationRepo.FindByRecipient(db, recipientID, unreadOnly)
	if err != nil {
		u.log.Warnf("Failed to list notifications: %+v", err)
		return nil, err
	}

	unread, err := u.notificationRepo.CountUnread(db, recipientID)
	if err != nil {
		u.log.Warnf("Failed to count unread notifications: %+v", err)
		return nil, err
	}

	return &dto.NotificationListResponse{
		Notifications: converter.NotificationsToResponses(notifications),
		Unread:        unread,
		Total:         len(notifications),
	}, nil
}

func (u *notificationUsecase) MarkRead(ctx context.Context, recipientID, id uuid.UUID) error {
	affected, err := u.notificationRepo.MarkRead(u.db.WithContext(ctx), id, recipientID)
	if err != nil {
		u.log.Warnf("Failed to mark notification read: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (u *notificationUsecase) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	affected, err := u.notificationRepo.MarkAllRead(u.db.WithContext(ctx), recipientID)
	if err != nil {
		u.log.Warnf("Failed to mark notifications read: %+v", err)
		return 0, err
	}
	return affected, nil
}

func (u *notificationUsecase) Send(ctx context.Context, req *dto.SendNotificationRequest) error {
	notifType := req.Type
	if notifType == "" {
		notifType = entity.NotificationTypeGeneral
	}

	if req.SendEmail {
		u.dispatcher.Dispatch(u.db.WithContext(ctx), req.RecipientID, notifType, req.Title, req.Message, req.Data)
		return nil
	}

	notification := &entity.Notification{
		RecipientID: req.RecipientID,
		Type:        notifType,
		Title:       req.Title,
		Message:     req.Message,
		Data:        entity.JSON(req.Data),
	}
	if err := u.notificationRepo.Create(u.db.WithContext(ctx), notification); err != nil {
		u.log.Warnf("Failed to create notification: %+v", err)
		return err
	}
	return nil
}
