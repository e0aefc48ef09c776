package model

import "time"

// Rating rows are unique per (rater_id, tutor_id, session_id); repeat
// submissions update score and comment in place.
type Rating struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	RaterID   int64     `gorm:"column:rater_id" json:"rater_id"`
	TutorID   int64     `gorm:"column:tutor_id" json:"tutor_id"`
	SessionID *int64    `gorm:"column:session_id" json:"session_id"`
	Score     int       `gorm:"column:score" json:"score"`
	Comment   *string   `gorm:"column:comment" json:"comment"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Rating) TableName() string {
	return "ratings"
}
