package models

import "time"

type Member struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex:idx_members_active_name,where:is_active = true" json:"name"`
	CreatedBy int64     `gorm:"not null;index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `gorm:"not null;index" json:"is_active"`
}

func (Member) TableName() string {
	return "members"
}
