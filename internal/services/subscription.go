package services

import (
	"time"

	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/models"
)

// SubscriptionCurrent is the single source of truth for "has this user paid and is
// the paid window still open". Expiry is recomputed here on every call; nothing in
// the system flips flags in the background, so a lapsed subscription is discovered
// the next time a gated route runs this check.
func SubscriptionCurrent(user *models.User, now time.Time) bool {
	if user == nil {
		return false
	}
	if user.AccountStatus != models.AccountActive {
		return false
	}
	if user.SubscriptionExpiresAt == nil {
		return false
	}
	return now.Before(*user.SubscriptionExpiresAt)
}

// ClientActivationCurrent reports whether a client profile is in the paid, coached
// state and the owning user's paid window is still open.
func ClientActivationCurrent(profile *models.ClientProfile, user *models.User, now time.Time) bool {
	if profile == nil || user == nil {
		return false
	}
	if profile.EffectiveActivationStatus() != models.ActivationActive {
		return false
	}
	if user.SubscriptionExpiresAt == nil {
		return false
	}
	return now.Before(*user.SubscriptionExpiresAt)
}

// CanAccessClient is the ownership predicate shared by the route guard and the
// services. Both layers evaluate it on the same loaded profile: a guard bypass or a
// future refactor must not silently widen access.
func CanAccessClient(actor models.Actor, profile *models.ClientProfile) bool {
	if profile == nil {
		return false
	}
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleClient:
		return profile.UserID == actor.ID
	case models.RoleTrainer:
		return profile.TrainerID != nil && *profile.TrainerID == actor.ID
	}
	return false
}
