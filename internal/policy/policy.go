// Package policy contains the pure moderation predicate used to gate
// destructive operations. It must be evaluated with a freshly looked-up
// community role on every request; role membership changes between requests.
package policy

import "github.com/breddit-app/backend/internal/models"

// CanModerate reports whether the actor may delete or modify the item.
// True when the actor owns the item, holds the platform admin role, or
// moderates the community the item belongs to.
func CanModerate(actorID int, actorRole string, ownerID int, communityRole string) bool {
	if actorID == ownerID {
		return true
	}
	if actorRole == models.RoleAdmin {
		return true
	}
	return communityRole == models.CommunityRoleModerator
}
