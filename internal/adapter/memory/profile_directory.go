package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"influence-hub/internal/core/domain"
)

type profileKey struct {
	role domain.Role
	id   uuid.UUID
}

// ProfileDirectory implements port.ProfileDirectory over two maps.
type ProfileDirectory struct {
	mu        sync.RWMutex
	byUser    map[profileKey]uuid.UUID
	byProfile map[profileKey]uuid.UUID
}

// NewProfileDirectory returns an empty directory.
func NewProfileDirectory() *ProfileDirectory {
	return &ProfileDirectory{
		byUser:    make(map[profileKey]uuid.UUID),
		byProfile: make(map[profileKey]uuid.UUID),
	}
}

// AddProfile registers p, replacing an earlier profile of the same user
// and role.
func (d *ProfileDirectory) AddProfile(_ context.Context, p domain.Profile) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byUser[profileKey{p.Role, p.UserID}] = p.ID
	d.byProfile[profileKey{p.Role, p.ID}] = p.UserID
	return nil
}

func (d *ProfileDirectory) ResolveProfile(_ context.Context, userID uuid.UUID, role domain.Role) (uuid.UUID, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	id, ok := d.byUser[profileKey{role, userID}]
	if !ok {
		return uuid.Nil, domain.NotFound(string(role) + " profile not found")
	}
	return id, nil
}

func (d *ProfileDirectory) MissingProfiles(_ context.Context, role domain.Role, ids []uuid.UUID) ([]uuid.UUID, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var missing []uuid.UUID
	for _, id := range ids {
		if _, ok := d.byProfile[profileKey{role, id}]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (d *ProfileDirectory) UserOfProfile(_ context.Context, role domain.Role, profileID uuid.UUID) (uuid.UUID, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	id, ok := d.byProfile[profileKey{role, profileID}]
	if !ok {
		return uuid.Nil, domain.NotFound(string(role) + " profile not found")
	}
	return id, nil
}
