package models

import "time"

// Session is a server-side login record keyed by an opaque token.
type Session struct {
	Token     string    `gorm:"primaryKey;size:64" json:"-"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Username  string    `gorm:"size:80;not null" json:"username"`
	Role      Role      `gorm:"size:20;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
}

func (Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
