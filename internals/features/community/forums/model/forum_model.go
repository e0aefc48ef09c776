package model

import "time"

type ForumThread struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	AuthorID  int64     `gorm:"column:author_id" json:"author_id"`
	Title     string    `gorm:"column:title" json:"title"`
	Body      string    `gorm:"column:body" json:"body"`
	ImageURL  *string   `gorm:"column:image_url" json:"image_url"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ForumThread) TableName() string {
	return "forum_threads"
}

type ForumComment struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	ThreadID  int64     `gorm:"column:thread_id" json:"thread_id"`
	AuthorID  int64     `gorm:"column:author_id" json:"author_id"`
	ParentID  *int64    `gorm:"column:parent_id" json:"parent_id"`
	Body      string    `gorm:"column:body" json:"body"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ForumComment) TableName() string {
	return "forum_comments"
}

type ForumThreadLike struct {
	ThreadID int64 `gorm:"column:thread_id"`
	UserID   int64 `gorm:"column:user_id"`
}

func (ForumThreadLike) TableName() string {
	return "forum_thread_likes"
}

type ForumCommentLike struct {
	CommentID int64 `gorm:"column:comment_id"`
	UserID    int64 `gorm:"column:user_id"`
}

func (ForumCommentLike) TableName() string {
	return "forum_comment_likes"
}
