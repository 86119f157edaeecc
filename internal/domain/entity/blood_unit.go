package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BloodUnitStatus represents the lifecycle status of a stored unit
type BloodUnitStatus string

const (
	BloodUnitStatusAvailable BloodUnitStatus = "available"
	BloodUnitStatusReserved  BloodUnitStatus = "reserved"
	BloodUnitStatusExpired   BloodUnitStatus = "expired"
	BloodUnitStatusUsed      BloodUnitStatus = "used"
)

const (
	UnitTypeWholeBlood = "whole_blood"
	UnitTypePlasma     = "plasma"
	UnitTypePlatelets  = "platelets"
	UnitTypeRBC        = "rbc"
)

// BloodUnit represents a stocked unit of blood owned by a hospital.
type BloodUnit struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	HospitalID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"hospital_id"`
	BloodGroup      string          `gorm:"type:varchar(5);not null;index" json:"blood_group"`
	Quantity        int             `gorm:"not null;default:1" json:"quantity"`
	UnitType        string          `gorm:"type:varchar(30);not null;default:'whole_blood'" json:"unit_type"`
	CollectionDate  time.Time       `gorm:"type:date;not null" json:"collection_date"`
	ExpiryDate      time.Time       `gorm:"not null;index" json:"expiry_date"`
	Status          BloodUnitStatus `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	BagSerialNumber string          `gorm:"type:varchar(50)" json:"bag_serial_number,omitempty"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BloodUnit) TableName() string {
	return "blood_units"
}

// IsExpired reports whether the unit's expiry date has passed.
func (b *BloodUnit) IsExpired(now time.Time) bool {
	return now.After(b.ExpiryDate)
}

// IsAvailable reports whether the unit can be handed out right now. Both the
// status and the expiry date are checked; availability queries apply the
// same double guard on the read path.
func (b *BloodUnit) IsAvailable(now time.Time) bool {
	return b.Status == BloodUnitStatusAvailable && !b.IsExpired(now)
}

// ExpireIfStale flips an available unit past its expiry date to expired.
// Idempotent: an already-expired unit stays expired, and no status ever
// transitions back to available here.
func (b *BloodUnit) ExpireIfStale(now time.Time) bool {
	if b.Status == BloodUnitStatusAvailable && b.IsExpired(now) {
		b.Status = BloodUnitStatusExpired
		return true
	}
	return false
}

// BeforeSave lazily expires stale stock on every write. There is no
// background sweep; units only expire when touched, and read paths filter
// on expiry_date as well.
func (b *BloodUnit) BeforeSave(tx *gorm.DB) error {
	b.ExpireIfStale(time.Now())
	return nil
}
