package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	// TypeSessionScheduled is the only actionable notification type: the
	// guest answers it through the accept/deny workflow.
	TypeSessionScheduled = "session_scheduled"
)

type Notification struct {
	ID          int64          `gorm:"column:id;primaryKey" json:"id"`
	UserID      int64          `gorm:"column:user_id" json:"-"`
	Type        string         `gorm:"column:type" json:"type"`
	PayloadJSON datatypes.JSON `gorm:"column:payload_json;type:jsonb" json:"payload_json"`
	ReadAt      *time.Time     `gorm:"column:read_at" json:"read_at"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
