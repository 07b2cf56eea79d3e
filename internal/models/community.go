package models

import "time"

// Community-scoped roles, looked up per request for moderation checks.
const (
	CommunityRoleMember    = "MEMBER"
	CommunityRoleModerator = "MODERATOR"
)

type Community struct {
	ID          int    `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"unique;not null" json:"name"`
	Description string `json:"description"`
	OwnerID     int    `json:"owner_id"`
	Owner       User   `gorm:"foreignKey:OwnerID" json:"owner"`
	LogoURL     string `json:"logo_url"`
	BannerURL   string `json:"banner_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommunityMember records a user's membership and role within one community.
type CommunityMember struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	UserID      int       `gorm:"uniqueIndex:idx_member_user_community" json:"user_id"`
	CommunityID int       `gorm:"uniqueIndex:idx_member_user_community" json:"community_id"`
	Role        string    `gorm:"type:varchar(12);default:MEMBER;not null" json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}
