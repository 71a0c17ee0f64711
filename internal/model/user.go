package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a marketplace member. The same user can post jobs and work on others.
type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string     `json:"name" gorm:"size:255;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255"` // Never expose in JSON
	AvatarURL    string     `json:"avatar_url" gorm:"size:512"`
	Skills       StringList `json:"skills" gorm:"type:json"`
	Location     string     `json:"location" gorm:"size:255"`
	PhoneNumber  string     `json:"phone_number,omitempty" gorm:"size:32"`
	About        string     `json:"about,omitempty" gorm:"type:text"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Clone returns a deep copy of the user.
func (u User) Clone() User {
	out := u
	out.Skills = u.Skills.Clone()
	return out
}

// UserPatch lists the profile fields a user may change. Nil fields are left unchanged.
type UserPatch struct {
	Name        *string
	Location    *string
	About       *string
	AvatarURL   *string
	PhoneNumber *string
	Skills      StringList
}

// Columns returns the patch as a column/value map for an UPDATE statement.
func (p UserPatch) Columns() map[string]any {
	cols := make(map[string]any, 6)
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Location != nil {
		cols["location"] = *p.Location
	}
	if p.About != nil {
		cols["about"] = *p.About
	}
	if p.AvatarURL != nil {
		cols["avatar_url"] = *p.AvatarURL
	}
	if p.PhoneNumber != nil {
		cols["phone_number"] = *p.PhoneNumber
	}
	if p.Skills != nil {
		cols["skills"] = p.Skills
	}
	return cols
}

// ApplyTo writes the patch onto user.
func (p UserPatch) ApplyTo(user *User) {
	if p.Name != nil {
		user.Name = *p.Name
	}
	if p.Location != nil {
		user.Location = *p.Location
	}
	if p.About != nil {
		user.About = *p.About
	}
	if p.AvatarURL != nil {
		user.AvatarURL = *p.AvatarURL
	}
	if p.PhoneNumber != nil {
		user.PhoneNumber = *p.PhoneNumber
	}
	if p.Skills != nil {
		user.Skills = p.Skills.Clone()
	}
}
