package repository

import (
	"time"

	"bloodbank-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BloodGroupAvailability is one row of the availability aggregation: the
// usable stock for a blood group at a hospital.
type BloodGroupAvailability struct {
	BloodGroup     string    `json:"blood_group"`
	TotalQuantity  int       `json:"total_quantity"`
	UnitsCount     int       `json:"units_count"`
	EarliestExpiry time.Time `json:"earliest_expiry"`
}

type BloodUnitRepository interface {
	Create(db *gorm.DB, unit *entity.BloodUnit) error
	FindByID(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID) (*entity.BloodUnit, error)
	FindByHospital(db *gorm.DB, hospitalID uuid.UUID) ([]entity.BloodUnit, error)
	Save(db *gorm.DB, unit *entity.BloodUnit) error
	Delete(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID) (int64, error)

	// Availability groups available, non-expired units by blood group,
	// optionally filtered to a single group, ordered by blood group.
	Availability(db *gorm.DB, hospitalID uuid.UUID, bloodGroup string, now time.Time) ([]BloodGroupAvailability, error)

	// Reserve transitions a unit available->reserved only while it is still
	// available and unexpired. Returns affected rows: 0 means the unit was
	// missing, expired, or already taken.
	Reserve(db *gorm.DB, id uuid.UUID, hospitalID uuid.UUID, now time.Time) (int64, error)

	// ExpiringSoon lists available units whose expiry falls inside (now, until].
	ExpiringSoon(db *gorm.DB, hospitalID uuid.UUID, now, until time.Time) ([]entity.BloodUnit, error)
}
