package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"quizku_backend/internals/constants"
)

// UserModel is one account row in users.
type UserModel struct {
	ID        uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	UserName  string                      `gorm:"size:255;not null;uniqueIndex" json:"username"`
	Email     string                      `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string                      `gorm:"not null" json:"-"`
	Role      string                      `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	IsBlocked bool                        `gorm:"not null;default:false" json:"isBlocked"`
	Badges    datatypes.JSONSlice[string] `gorm:"default:'[]'" json:"badges,omitempty"`
	CreatedAt time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName pins the table name.
func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.SetDefaultValues()
	if !constants.IsValidRole(u.Role) {
		return fmt.Errorf("unknown role %q", u.Role)
	}
	return nil
}

// SetDefaultValues normalizes email and role before insert.
func (u *UserModel) SetDefaultValues() {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.UserName = strings.TrimSpace(u.UserName)
	if u.Role == "" {
		u.Role = constants.RoleUser
	}
}

// HasBadge reports whether the account already owns badge.
func (u *UserModel) HasBadge(badge string) bool {
	for _, b := range u.Badges {
		if b == badge {
			return true
		}
	}
	return false
}
