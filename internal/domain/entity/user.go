package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized authentication table. Blood-bank accounts
// and their staff carry a HospitalID; the blood bank's own user ID doubles
// as the hospital identifier for everything it owns.
type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"type:text;not null" json:"-"`
	FullName    string     `gorm:"type:varchar(255);not null" json:"full_name"`
	Role        string     `gorm:"type:varchar(50);not null;index" json:"role"`
	HospitalID  *uuid.UUID `gorm:"type:uuid;index" json:"hospital_id,omitempty"`
	Phone       string     `gorm:"type:varchar(30)" json:"phone,omitempty"`
	IsActive    *bool      `gorm:"not null;default:true;index" json:"is_active"`
	IsBlocked   bool       `gorm:"not null;default:false" json:"is_blocked"`
	IsSuspended bool       `gorm:"not null;default:false" json:"is_suspended"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	DonorProfile *DonorProfile `gorm:"foreignKey:UserID" json:"donor_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Role constants
const (
	RoleAdmin           = "admin"
	RoleBloodbank       = "bloodbank"
	RoleDonor           = "donor"
	RoleDoctor          = "doctor"
	RoleUser            = "user"
	RoleFrontdesk       = "frontdesk"
	RoleLabTechnician   = "lab_technician"
	RoleBleedingStaff   = "bleeding_staff"
	RoleStoreStaff      = "store_staff"
	RoleCentrifugeStaff = "centrifuge_staff"
	RoleOtherStaff      = "other_staff"
)

// StaffRoles are the roles a blood bank can assign when creating staff accounts.
var StaffRoles = []string{
	RoleFrontdesk,
	RoleDoctor,
	RoleLabTechnician,
	RoleBleedingStaff,
	RoleStoreStaff,
	RoleCentrifugeStaff,
	RoleOtherStaff,
}

// IsStaffRole reports whether role is one of the blood-bank staff roles.
func IsStaffRole(role string) bool {
	for _, r := range StaffRoles {
		if r == role {
			return true
		}
	}
	return false
}

// CanAccessHospital reports whether the user may operate on data owned by
// the given hospital. Blood-bank owners match on their own ID, staff on
// their assigned hospital.
func (u *User) CanAccessHospital(hospitalID uuid.UUID) bool {
	if u.Role == RoleBloodbank && u.ID == hospitalID {
		return true
	}
	return u.HospitalID != nil && *u.HospitalID == hospitalID
}

// OwnHospitalID resolves the hospital a user acts for: the user's own ID for
// blood-bank accounts, the assigned hospital for staff.
func (u *User) OwnHospitalID() *uuid.UUID {
	if u.Role == RoleBloodbank {
		id := u.ID
		return &id
	}
	return u.HospitalID
}
