package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActionType of an audit record.
type ActionType string

const (
	ActionCreate         ActionType = "create"
	ActionUpdate         ActionType = "update"
	ActionDelete         ActionType = "delete"
	ActionLogin          ActionType = "login"
	ActionLogout         ActionType = "logout"
	ActionPasswordChange ActionType = "password_change"
	ActionReactivate     ActionType = "reactivate"
)

func (a ActionType) Valid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionLogin, ActionLogout, ActionPasswordChange, ActionReactivate:
		return true
	}
	return false
}

// TargetType of an audit record.
type TargetType string

const (
	TargetUser   TargetType = "user"
	TargetMember TargetType = "member"
	TargetPoint  TargetType = "point"
)

func (t TargetType) Valid() bool {
	return t == TargetUser || t == TargetMember || t == TargetPoint
}

// Log is an append-only audit record. Rows are never updated; they are only
// removed together with their author by a force-replace.
type Log struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ActionType ActionType     `gorm:"size:50;not null;index" json:"action_type"`
	TargetType TargetType     `gorm:"size:20;not null;index" json:"target_type"`
	TargetID   *int64         `json:"target_id"`
	Details    string         `gorm:"type:text" json:"details"`
	Metadata   datatypes.JSON `json:"metadata,omitempty"`
	CreatedBy  *int64         `gorm:"index" json:"created_by"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`
}

func (Log) TableName() string {
	return "logs"
}
