package models

import "time"

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"size:80;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null" json:"-"` // Not show in JSON
	Role         Role      `gorm:"size:20;not null;default:'visor'" json:"role"`
	FirstLogin   bool      `gorm:"not null" json:"first_login"`
	IsActive     bool      `gorm:"not null;index" json:"is_active"`
	CreatedBy    *int64    `gorm:"index" json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`

	// Associations
	Creator *User `gorm:"foreignKey:CreatedBy" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// CreatorName returns the creator's username when the association was preloaded.
func (u *User) CreatorName() *string {
	if u.Creator == nil {
		return nil
	}
	name := u.Creator.Username
	return &name
}
