package port

import (
	"context"

	"github.com/google/uuid"

	"influence-hub/internal/core/domain"
)

// ProfileDirectory is the identity collaborator. It maps verified users to
// their role profiles and back; it never authenticates anyone.
type ProfileDirectory interface {
	// ResolveProfile returns the profile id of userID for role, or a
	// not-found error.
	ResolveProfile(ctx context.Context, userID uuid.UUID, role domain.Role) (uuid.UUID, error)
	// MissingProfiles returns the ids among ids that are not profiles of role.
	MissingProfiles(ctx context.Context, role domain.Role, ids []uuid.UUID) ([]uuid.UUID, error)
	// UserOfProfile returns the user owning a profile, or a not-found error.
	UserOfProfile(ctx context.Context, role domain.Role, profileID uuid.UUID) (uuid.UUID, error)
	// AddProfile registers a profile. Used by seeding.
	AddProfile(ctx context.Context, p domain.Profile) error
}

// Notifier is the notification collaborator. Delivery is best effort:
// callers log failures and never roll back because of them.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// TransitionObserver receives every committed status change, e.g. to
// export metrics.
type TransitionObserver interface {
	ObserveTransition(entity, from, to string)
}
