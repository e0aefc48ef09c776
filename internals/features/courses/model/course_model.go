package model

import "time"

type Course struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	Code        string    `gorm:"column:code" json:"code"`
	Name        string    `gorm:"column:name" json:"name"`
	Description *string   `gorm:"column:description" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Course) TableName() string {
	return "courses"
}

// Enrollment links a student to a course.
type Enrollment struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	UserID    int64     `gorm:"column:user_id" json:"user_id"`
	CourseID  int64     `gorm:"column:course_id" json:"course_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// TutorCourse links a tutor to a course they teach.
type TutorCourse struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	TutorID   int64     `gorm:"column:tutor_id" json:"tutor_id"`
	CourseID  int64     `gorm:"column:course_id" json:"course_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (TutorCourse) TableName() string {
	return "tutor_courses"
}
