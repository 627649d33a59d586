// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Name               string     `json:"name" gorm:"size:100;not null"`
	Email              string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash       string     `json:"-" gorm:"size:255;not null"`
	Role               UserRole   `json:"role" gorm:"type:varchar(20);default:'user'"`
	Status             UserStatus `json:"status" gorm:"type:varchar(20);default:'ACTIVE'"`
	IsVerified         bool       `json:"is_verified" gorm:"default:false"`
	OTP                *string    `json:"-" gorm:"size:10"`
	OTPExpiresAt       *time.Time `json:"-"`
	NeedPasswordChange bool       `json:"need_password_change" gorm:"default:false"`
	Profile            *string    `json:"profile" gorm:"size:512"`

	Orders []Order `json:"orders,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// OTPExpired reports whether the stored OTP is missing or past its expiry.
func (u *User) OTPExpired(now time.Time) bool {
	return u.OTPExpiresAt == nil || u.OTPExpiresAt.Before(now)
}

func (u *User) OTPMatches(code string) bool {
	return u.OTP != nil && *u.OTP == code
}
