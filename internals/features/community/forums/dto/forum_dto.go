package dto

import "time"

type CreateThreadRequest struct {
	Title    string  `json:"title" validate:"required,min=1,max=200"`
	Body     string  `json:"body" validate:"required,min=1"`
	ImageURL *string `json:"image_url" validate:"omitempty,url"`
}

type CreateCommentRequest struct {
	Body     string `json:"body" validate:"required,min=1"`
	ParentID *int64 `json:"parent_id" validate:"omitempty,gt=0"`
}

type ThreadListItem struct {
	ID           int64     `gorm:"column:id" json:"id"`
	Title        string    `gorm:"column:title" json:"title"`
	AuthorID     int64     `gorm:"column:author_id" json:"author_id"`
	AuthorName   string    `gorm:"column:author_name" json:"author_name"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	LikeCount    int64     `gorm:"column:like_count" json:"like_count"`
	CommentCount int64     `gorm:"column:comment_count" json:"comment_count"`
	Liked        bool      `gorm:"column:liked" json:"liked"`
}

type CommentView struct {
	ID         int64     `gorm:"column:id" json:"id"`
	ParentID   *int64    `gorm:"column:parent_id" json:"parent_id"`
	AuthorID   int64     `gorm:"column:author_id" json:"author_id"`
	AuthorName string    `gorm:"column:author_name" json:"author_name"`
	Body       string    `gorm:"column:body" json:"body"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	LikeCount  int64     `gorm:"column:like_count" json:"like_count"`
	Liked      bool      `gorm:"column:liked" json:"liked"`
}
