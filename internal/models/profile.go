package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Verification statuses
const (
	VerificationNone     = "none"
	VerificationPending  = "pending"
	VerificationVerified = "verified"
)

// Education levels accepted on the sign-up form
var EducationLevels = []string{
	"none",
	"high_school",
	"diploma",
	"bachelor",
	"master",
	"doctorate",
	"other",
}

// SocialLinks are the optional public profile links
type SocialLinks struct {
	LinkedIn  string `gorm:"size:255" json:"linkedin,omitempty"`
	Facebook  string `gorm:"size:255" json:"facebook,omitempty"`
	Instagram string `gorm:"size:255" json:"instagram,omitempty"`
	Twitter   string `gorm:"size:255" json:"twitter,omitempty"`
	Website   string `gorm:"size:255" json:"website,omitempty"`
}

// Profile is the persisted worker profile. Exactly one exists per identity
// and it is written once, in full.
type Profile struct {
	ID                 uuid.UUID   `gorm:"type:varchar(36);primarykey" json:"id"`
	IdentityID         uuid.UUID   `gorm:"type:varchar(36);not null;uniqueIndex" json:"identity_id"`
	Name               string      `gorm:"size:50;not null" json:"name"`
	Email              string      `gorm:"size:255" json:"email"`
	DateOfBirth        time.Time   `gorm:"type:date;not null" json:"date_of_birth"`
	EducationLevel     string      `gorm:"size:32;not null" json:"education_level"`
	Summary            string      `gorm:"type:text;not null" json:"summary"`
	Phone              string      `gorm:"size:32;not null" json:"phone"`
	Social             SocialLinks `gorm:"embedded;embeddedPrefix:social_" json:"social"`
	PhotoURL           string      `gorm:"size:1024" json:"photo_url"`
	Provider           string      `gorm:"size:20" json:"provider"`
	TermsAccepted      bool        `gorm:"not null" json:"terms_accepted"`
	JobsCompleted      int         `gorm:"not null;default:0" json:"jobs_completed"`
	JobsPosted         int         `gorm:"not null;default:0" json:"jobs_posted"`
	ReviewsCount       int         `gorm:"not null;default:0" json:"reviews_count"`
	RatingSum          int         `gorm:"not null;default:0" json:"rating_sum"`
	VerificationStatus string      `gorm:"size:20;not null;default:'none'" json:"verification_status"`
	CreatedAt          time.Time   `json:"created_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// BeforeCreate assigns an id when the caller did not
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ValidEducationLevel reports whether level is one of EducationLevels
func ValidEducationLevel(level string) bool {
	for _, l := range EducationLevels {
		if l == level {
			return true
		}
	}
	return false
}
