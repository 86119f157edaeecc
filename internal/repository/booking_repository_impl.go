package repository

import (
	"errors"
	"time"

	"bloodbank-backend/internal/domain/entity"
	domainRepo "bloodbank-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingRepository struct{}

func NewBookingRepository() domainRepo.BookingRepository {
	return &bookingRepository{}
}

func (r *bookingRepository) Create(db *gorm.DB, booking *entity.Booking) error {
	return db.Create(booking).Error
}

func (r *bookingRepository) FindByID(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Where("id = ? AND hospital_id = ?", id, hospitalID).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByToken(db *gorm.DB, hospitalID uuid.UUID, token string) (*entity.Booking, error) {
	var booking entity.Booking
	err := db.Where("hospital_id = ? AND token_number = ?", hospitalID, token).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

// FindByDateRange uses a half-open [from, to) comparison rather than exact
// equality so stored time components don't hide same-day bookings.
func (r *bookingRepository) FindByDateRange(db *gorm.DB, hospitalID uuid.UUID, from, to time.Time) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Where("hospital_id = ? AND date >= ? AND date < ?", hospitalID, from, to).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByDonor(db *gorm.DB, donorID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Where("donor_id = ?", donorID).Order("date DESC").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByPatientMRID(db *gorm.DB, hospitalID uuid.UUID, mrid string) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Where("hospital_id = ? AND patient_mrid = ?", hospitalID, mrid).
		Order("date DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindDuplicate(db *gorm.DB, hospitalID uuid.UUID, token string, donorID *uuid.UUID, date time.Time) (*entity.Booking, error) {
	query := db.Where("hospital_id = ? AND date = ?", hospitalID, date)

	switch {
	case token != "" && donorID != nil:
		query = query.Where("token_number = ? OR donor_id = ?", token, *donorID)
	case token != "":
		query = query.Where("token_number = ?", token)
	case donorID != nil:
		query = query.Where("donor_id = ?", *donorID)
	default:
		// Nothing to match on; treat as no duplicate.
		return nil, nil
	}

	var booking entity.Booking
	err := query.First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID, update domainRepo.BookingStatusUpdate) (int64, error) {
	values := map[string]interface{}{"status": update.Status}
	if update.RejectionReason != nil {
		values["rejection_reason"] = *update.RejectionReason
	}
	if update.WeightKg != nil {
		values["weight_kg"] = *update.WeightKg
	}
	if update.BagSerialNumber != nil {
		values["bag_serial_number"] = *update.BagSerialNumber
	}

	result := db.Model(&entity.Booking{}).
		Where("id = ? AND hospital_id = ?", id, hospitalID).
		Updates(values)
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) Reschedule(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID, date time.Time, timeStr string) (int64, error) {
	result := db.Model(&entity.Booking{}).
		Where("id = ? AND hospital_id = ?", id, hospitalID).
		Updates(map[string]interface{}{
			"date":   date,
			"time":   timeStr,
			"status": entity.BookingStatusConfirmed,
		})
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) Save(db *gorm.DB, booking *entity.Booking) error {
	return db.Save(booking).Error
}

func (r *bookingRepository) CountByStatus(db *gorm.DB, hospitalID uuid.UUID) (map[string]int64, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := db.Model(&entity.Booking{}).
		Select("status, COUNT(*) AS count").
		Where("hospital_id = ?", hospitalID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (r *bookingRepository) FindVisited(db *gorm.DB, hospitalID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := db.Where("hospital_id = ? AND status IN ?", hospitalID,
		[]entity.BookingStatus{entity.BookingStatusArrived, entity.BookingStatusCompleted}).
		Order("date DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
