package model

import "time"

type User struct {
	ID           int64     `gorm:"column:id;primaryKey" json:"id"`
	RoleID       int64     `gorm:"column:role_id" json:"-"`
	FirstName    string    `gorm:"column:first_name" json:"first_name"`
	LastName     string    `gorm:"column:last_name" json:"last_name"`
	Email        string    `gorm:"column:email" json:"email"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	AvatarURL    *string   `gorm:"column:avatar_url" json:"avatar_url,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

type Role struct {
	ID   int64  `gorm:"column:id;primaryKey" json:"id"`
	Name string `gorm:"column:name" json:"name"`
}

func (Role) TableName() string {
	return "roles"
}
