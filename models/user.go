package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User is the login identity. Email is the username; IsStaff is the only
// admin signal the API looks at.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Email       string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Password    string    `json:"-" gorm:"size:128;not null"`
	IsActive    bool      `json:"is_active" gorm:"not null"`
	IsStaff     bool      `json:"is_staff" gorm:"not null"`
	IsSuperuser bool      `json:"is_superuser" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewUser returns an active, non-staff user with a hashed password.
func NewUser(email, name, password string) (*User, error) {
	if email == "" {
		return nil, errors.New("users must have an email address")
	}
	u := &User{
		Email:    NormalizeEmail(email),
		Name:     name,
		IsActive: true,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// NewSuperuser is NewUser with the staff and superuser flags set.
func NewSuperuser(email, name, password string) (*User, error) {
	u, err := NewUser(email, name, password)
	if err != nil {
		return nil, err
	}
	u.IsStaff = true
	u.IsSuperuser = true
	return u, nil
}

func (u *User) IsAdmin() bool {
	return u.IsStaff
}

func (u *User) SetPassword(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	return nil
}
