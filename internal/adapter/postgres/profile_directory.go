package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
)

// ProfileDirectory implements port.ProfileDirectory over the profiles
// table.
type ProfileDirectory struct {
	pool *pgxpool.Pool
}

func NewProfileDirectory(pool *pgxpool.Pool) *ProfileDirectory {
	return &ProfileDirectory{pool: pool}
}

var _ port.ProfileDirectory = (*ProfileDirectory)(nil)

func (d *ProfileDirectory) ResolveProfile(ctx context.Context, userID uuid.UUID, role domain.Role) (uuid.UUID, error) {
	var id uuid.UUID
	err := d.pool.QueryRow(ctx, `SELECT id FROM profiles WHERE user_id = $1 AND role = $2`, userID, string(role)).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, domain.NotFound(string(role) + " profile not found")
	}
	return id, err
}

func (d *ProfileDirectory) MissingProfiles(ctx context.Context, role domain.Role, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}
	rows, err := d.pool.Query(ctx, `SELECT id FROM profiles WHERE role = $1 AND id = ANY($2::uuid[])`, string(role), raw)
	if err != nil {
		return nil, err
	}
	found, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, err
	}
	known := make(map[uuid.UUID]bool, len(found))
	for _, id := range found {
		known[id] = true
	}
	var missing []uuid.UUID
	for _, id := range ids {
		if !known[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (d *ProfileDirectory) UserOfProfile(ctx context.Context, role domain.Role, profileID uuid.UUID) (uuid.UUID, error) {
	var userID uuid.UUID
	err := d.pool.QueryRow(ctx, `SELECT user_id FROM profiles WHERE id = $1 AND role = $2`, profileID, string(role)).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, domain.NotFound(string(role) + " profile not found")
	}
	return userID, err
}

// AddProfile inserts p or renames the existing profile of the same user
// and role.
func (d *ProfileDirectory) AddProfile(ctx context.Context, p domain.Profile) error {
	_, err := d.pool.Exec(ctx, `INSERT INTO profiles (id, user_id, role, display_name)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, role) DO UPDATE SET display_name = EXCLUDED.display_name`,
		p.ID, p.UserID, string(p.Role), p.DisplayName)
	return translate(err)
}
