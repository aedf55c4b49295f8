package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser       Role = "user"
	RoleSuperAdmin Role = "super_admin"
)

// User is the single account record. The email unique index is the source of
// truth for uniqueness; callers rely on the constraint, not a pre-check.
// OTPCode/OTPExpires are always set and cleared together.
type User struct {
	ID             string     `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName      string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName       string     `gorm:"type:varchar(100);not null" json:"last_name"`
	Email          string     `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	PasswordHash   string     `gorm:"type:varchar(255);not null" json:"-"`
	MobileNumber   string     `gorm:"type:varchar(20);not null" json:"mobile_number"`
	ProfilePicture *string    `gorm:"type:varchar(200)" json:"profile_picture"`
	Role           Role       `gorm:"type:varchar(20);not null;default:user" json:"role"`
	IsVerified     bool       `gorm:"not null;default:false" json:"is_verified"`
	OTPCode        *string    `gorm:"type:varchar(6)" json:"-"`
	OTPExpires     *time.Time `json:"-"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "auth_user" }

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u *User) SetOTP(code string, expires time.Time) {
	u.OTPCode = &code
	u.OTPExpires = &expires
}

func (u *User) ClearOTP() {
	u.OTPCode = nil
	u.OTPExpires = nil
}

// OTPPending reports whether a verification code is outstanding.
func (u *User) OTPPending() bool {
	return u.OTPCode != nil && u.OTPExpires != nil
}
