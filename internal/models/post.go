package models

import "time"

// Post types. MEDIA posts carry uploaded file URLs and cannot be edited.
const (
	PostTypeText  = "TEXT"
	PostTypeLink  = "LINK"
	PostTypeMedia = "MEDIA"
)

type Post struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Content     string    `json:"content"`
	Type        string    `gorm:"type:varchar(8);default:TEXT;not null" json:"type"`
	MediaURLs   []string  `gorm:"serializer:json" json:"media_urls,omitempty"`
	AuthorID    int       `json:"author_id"`
	User        User      `gorm:"foreignKey:AuthorID" json:"user"`
	CommunityID int       `json:"community_id"`
	Score       int       `gorm:"default:0;not null" json:"score"`
	Deleted     bool      `gorm:"default:false;not null" json:"deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreatePostRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Type          string   `json:"type"`
	CommunityName string   `json:"community_name"`
	MediaURLs     []string `json:"media_urls"`
}
