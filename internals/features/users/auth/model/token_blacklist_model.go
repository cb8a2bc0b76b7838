package model

import (
	"time"
)

// TokenBlacklist stores HMAC digests of logged-out access tokens until they expire.
type TokenBlacklist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"size:128;not null;uniqueIndex" json:"token"`
	ExpiredAt time.Time `gorm:"index" json:"expired_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName pins the table name.
func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}
