package model

import "time"

// Session lifecycle statuses. Sessions are never hard-deleted.
const (
	StatusScheduled = "scheduled"
	StatusAttended  = "attended"
	StatusNoShow    = "no_show"
	StatusCanceled  = "canceled"
)

// Meeting platforms.
const (
	PlatformMeet   = "meet"
	PlatformZoom   = "zoom"
	PlatformWebRTC = "webrtc"
)

const (
	DurationMinMinutes = 15
	DurationMaxMinutes = 240
)

func IsValidPlatform(p string) bool {
	switch p {
	case PlatformMeet, PlatformZoom, PlatformWebRTC:
		return true
	}
	return false
}

// TutoringSession is a scheduled meeting; tutor_id is the host for that
// session (a student can host peer sessions).
type TutoringSession struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	CourseID    int64     `gorm:"column:course_id" json:"course_id"`
	TutorID     int64     `gorm:"column:tutor_id" json:"tutor_id"`
	ScheduledAt time.Time `gorm:"column:scheduled_at" json:"scheduled_at"`
	DurationMin int       `gorm:"column:duration_min" json:"duration_min"`
	Platform    string    `gorm:"column:platform" json:"platform"`
	JoinURL     string    `gorm:"column:join_url" json:"join_url"`
	RoomName    string    `gorm:"column:room_name" json:"room_name"`
	Status      string    `gorm:"column:status" json:"status"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (TutoringSession) TableName() string {
	return "tutoring_sessions"
}
