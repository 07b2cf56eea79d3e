package models

import "time"

type Comment struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"not null" json:"content"`
	AuthorID  int       `json:"author_id"`
	User      User      `gorm:"foreignKey:AuthorID" json:"user"`
	PostID    *int      `json:"post_id,omitempty"`
	ParentID  *int      `json:"parent_id,omitempty"`
	Deleted   bool      `gorm:"default:false;not null" json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateCommentRequest struct {
	Content  string `json:"content"`
	PostID   *int   `json:"post_id,omitempty"`
	ParentID *int   `json:"parent_id,omitempty"`
}
