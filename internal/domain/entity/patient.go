package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents a hospital patient awaiting transfusion. MRID is the
// medical record identifier assigned by the hospital; it is not unique
// across hospitals and not guaranteed unique within one.
type Patient struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	HospitalID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"hospital_id"`
	Name          string     `gorm:"type:varchar(255);not null" json:"name"`
	BloodGroup    string     `gorm:"type:varchar(5);not null;index" json:"blood_group"`
	MRID          string     `gorm:"type:varchar(50);index" json:"mrid,omitempty"`
	Age           int        `json:"age,omitempty"`
	Gender        string     `gorm:"type:char(1)" json:"gender,omitempty"`
	Contact       string     `gorm:"type:varchar(30)" json:"contact,omitempty"`
	RequiredUnits int        `gorm:"not null;default:1" json:"required_units"`
	RequiredDate  *time.Time `gorm:"type:date" json:"required_date,omitempty"`
	Notes         string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}
