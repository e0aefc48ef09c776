package model

import (
	"time"

	"github.com/google/uuid"
)

// AuthSession is one row in the persisted session table. The sid cookie
// carries the row id; revocation is soft (revoked_at).
type AuthSession struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    int64      `gorm:"column:user_id" json:"user_id"`
	IP        string     `gorm:"column:ip;type:inet" json:"ip"`
	UserAgent string     `gorm:"column:user_agent" json:"user_agent"`
	ExpiresAt time.Time  `gorm:"column:expires_at" json:"expires_at"`
	RevokedAt *time.Time `gorm:"column:revoked_at" json:"revoked_at,omitempty"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AuthSession) TableName() string {
	return "auth_sessions"
}
