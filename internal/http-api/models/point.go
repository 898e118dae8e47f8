package models

import "time"

type Point struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	MemberID    int64     `gorm:"not null;index" json:"member_id"`
	PointType   PointType `gorm:"size:10;not null;index" json:"point_type"`
	Category    string    `gorm:"size:50;not null" json:"category"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedBy   int64     `gorm:"not null;index" json:"created_by"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	IsActive    bool      `gorm:"not null;index" json:"is_active"`

	// Associations
	Member *Member `gorm:"foreignKey:MemberID" json:"-"`
}

func (Point) TableName() string {
	return "points"
}
