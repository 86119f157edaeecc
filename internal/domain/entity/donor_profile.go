package entity

import (
	"time"

	"github.com/google/uuid"
)

// DonorProfile holds donor-specific data, one-to-one with a User.
type DonorProfile struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID            uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	BloodGroup        string     `gorm:"type:varchar(5);not null;index" json:"blood_group"`
	Contact           string     `gorm:"type:varchar(30)" json:"contact,omitempty"`
	Age               int        `gorm:"not null" json:"age"`
	WeightKg          float64    `gorm:"not null" json:"weight_kg"`
	LastDonationDate  *time.Time `gorm:"type:date" json:"last_donation_date,omitempty"`
	EligibilityStatus bool       `gorm:"not null;default:true" json:"eligibility_status"`
	EligibilityNotes  string     `gorm:"type:text" json:"eligibility_notes,omitempty"`
	Address           string     `gorm:"type:text" json:"address,omitempty"`
	Availability      bool       `gorm:"not null;default:true;index" json:"availability"`
	ContactPreference string     `gorm:"type:varchar(20)" json:"contact_preference,omitempty"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (DonorProfile) TableName() string {
	return "donor_profiles"
}

// Eligibility rule bounds
const (
	MinDonorAge      = 18
	MaxDonorAge      = 65
	MinDonorWeightKg = 50.0
	DonationGapMonth = 3
)

// Eligibility reason messages
const (
	ReasonAgeOutOfRange = "Age must be between 18 and 65"
	ReasonUnderweight   = "Weight must be at least 50 kg"
	ReasonRecentlyGave  = "Must wait at least 3 months between donations"
	ReasonEligible      = "Eligible to donate"
)

// CheckEligibility evaluates the donation rules against the profile's current
// attributes. Rules apply in priority order and the first failing rule wins:
// age within [18,65], weight at least 50 kg, and at least 3 calendar months
// since the last donation. Pure over (Age, WeightKg, LastDonationDate).
func (d *DonorProfile) CheckEligibility(now time.Time) (bool, string) {
	if d.Age < MinDonorAge || d.Age > MaxDonorAge {
		return false, ReasonAgeOutOfRange
	}
	if d.WeightKg < MinDonorWeightKg {
		return false, ReasonUnderweight
	}
	if d.LastDonationDate != nil {
		// Calendar-month arithmetic, not a fixed 90-day window.
		if d.LastDonationDate.AddDate(0, DonationGapMonth, 0).After(now) {
			return false, ReasonRecentlyGave
		}
	}
	return true, ReasonEligible
}

// RefreshEligibility recomputes eligibility and caches the result on the
// profile. Returns the computed values for the caller's response.
func (d *DonorProfile) RefreshEligibility(now time.Time) (bool, string) {
	eligible, reason := d.CheckEligibility(now)
	d.EligibilityStatus = eligible
	d.EligibilityNotes = reason
	return eligible, reason
}
