package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Identity providers
const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

// User is an account identity. Password identities carry a hash, OAuth
// identities carry the provider's subject id instead.
type User struct {
	ID             uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	DisplayName    string    `gorm:"size:100" json:"display_name"`
	PhotoURL       string    `gorm:"size:1024" json:"photo_url"`
	Phone          string    `gorm:"size:32" json:"phone"`
	Provider       string    `gorm:"size:20;not null;default:'password';uniqueIndex:idx_users_provider_subject" json:"provider"`
	ProviderUserID *string   `gorm:"size:255;uniqueIndex:idx_users_provider_subject" json:"-"`
	PasswordHash   string    `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns an id when the caller did not
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsOAuth reports whether the identity was established through a social provider
func (u *User) IsOAuth() bool {
	return u.Provider != "" && u.Provider != ProviderPassword
}
