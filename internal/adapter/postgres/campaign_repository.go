package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
)

var (
	selectCampaign    = selectSQL("campaigns", campaignCols)
	insertCampaign    = insertSQL("campaigns", campaignCols)
	updateCampaign    = updateSQL("campaigns", campaignCols)
	selectMilestone   = selectSQL("milestones", milestoneCols)
	insertMilestone   = insertSQL("milestones", milestoneCols)
	updateMilestone   = updateSQL("milestones", milestoneCols)
	selectAssignment  = selectSQL("assignments", assignmentCols)
	insertAssignment  = insertSQL("assignments", assignmentCols)
	updateAssignment  = updateSQL("assignments", assignmentCols)
	selectNegotiation = selectSQL("negotiations", negotiationCols)
	insertNegotiation = insertSQL("negotiations", negotiationCols)
	selectAsset       = selectSQL("assets", assetCols)
	insertAsset       = insertSQL("assets", assetCols)
)

// CampaignRepository implements port.CampaignRepository using pgxpool for
// PostgreSQL.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

var _ port.CampaignRepository = (*CampaignRepository)(nil)

// CreateCampaign inserts the campaign, its milestones and its assets in
// one transaction.
func (r *CampaignRepository) CreateCampaign(ctx context.Context, c *domain.Campaign, milestones []domain.Milestone, assets []domain.Asset) error {
	vals, err := campaignValues(c)
	if err != nil {
		return err
	}
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, insertCampaign, vals...); err != nil {
			return translate(err)
		}
		if err := insertMilestones(ctx, tx, milestones); err != nil {
			return err
		}
		return insertAssets(ctx, tx, assets)
	})
}

// GetCampaign returns a campaign by id.
func (r *CampaignRepository) GetCampaign(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx, selectCampaign+" WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCampaigns returns campaigns matching f, newest first.
func (r *CampaignRepository) ListCampaigns(ctx context.Context, f port.CampaignFilter) ([]domain.Campaign, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.ClientID != nil {
		add("client_id = $%d", *f.ClientID)
	}
	if f.AgencyID != nil {
		add("agency_id = $%d", *f.AgencyID)
	}
	if f.PartyID != nil {
		add("EXISTS (SELECT 1 FROM assignments a WHERE a.campaign_id = campaigns.id AND a.party_id = $%d)", *f.PartyID)
	}
	if f.Status != nil {
		add("status = $%d", string(*f.Status))
	}
	q := selectCampaign
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Campaign, error) {
		return scanCampaign(row)
	})
}

func (r *CampaignRepository) ListMilestones(ctx context.Context, campaignID uuid.UUID) ([]domain.Milestone, error) {
	return listMilestones(ctx, r.pool, campaignID)
}

func (r *CampaignRepository) ListAssets(ctx context.Context, campaignID uuid.UUID) ([]domain.Asset, error) {
	rows, err := r.pool.Query(ctx, selectAsset+" WHERE campaign_id = $1 ORDER BY created_at", campaignID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Asset])
}

func (r *CampaignRepository) ListNegotiations(ctx context.Context, campaignID uuid.UUID) ([]domain.Negotiation, error) {
	return listNegotiations(ctx, r.pool, campaignID)
}

// ListAssignments returns assignments matching f, oldest first.
func (r *CampaignRepository) ListAssignments(ctx context.Context, f port.AssignmentFilter) ([]domain.Assignment, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.CampaignID != nil {
		add("campaign_id = $%d", *f.CampaignID)
	}
	if f.PartyID != nil {
		add("party_id = $%d", *f.PartyID)
	}
	if f.Status != nil {
		add("status = $%d", string(*f.Status))
	}
	q := selectAssignment
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	rows, err := r.pool.Query(ctx, q+" ORDER BY created_at", args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Assignment, error) {
		return scanAssignment(row)
	})
}

func (r *CampaignRepository) CampaignOfMilestone(ctx context.Context, milestoneID uuid.UUID) (uuid.UUID, error) {
	return r.owner(ctx, "milestones", milestoneID)
}

func (r *CampaignRepository) CampaignOfAssignment(ctx context.Context, assignmentID uuid.UUID) (uuid.UUID, error) {
	return r.owner(ctx, "assignments", assignmentID)
}

func (r *CampaignRepository) owner(ctx context.Context, table string, id uuid.UUID) (uuid.UUID, error) {
	var campaignID uuid.UUID
	err := r.pool.QueryRow(ctx, "SELECT campaign_id FROM "+table+" WHERE id = $1", id).Scan(&campaignID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, nil
	}
	return campaignID, err
}

// Atomic runs fn in a serializable transaction holding the campaign row
// lock.
func (r *CampaignRepository) Atomic(ctx context.Context, campaignID uuid.UUID, fn func(tx port.CampaignTx) error) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = translate(tx.Commit(ctx))
	}()
	// lock campaign
	var version int64
	err = tx.QueryRow(ctx, `SELECT version FROM campaigns WHERE id = $1 FOR UPDATE`, campaignID).Scan(&version)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NotFound("campaign not found")
	}
	if err != nil {
		return translate(err)
	}
	return fn(&campaignTx{tx: tx, id: campaignID})
}

// campaignTx implements port.CampaignTx inside Atomic.
type campaignTx struct {
	tx pgx.Tx
	id uuid.UUID
}

func (t *campaignTx) Campaign(ctx context.Context) (*domain.Campaign, error) {
	c, err := scanCampaign(t.tx.QueryRow(ctx, selectCampaign+" WHERE id = $1", t.id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound("campaign not found")
	}
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (t *campaignTx) UpdateCampaign(ctx context.Context, c *domain.Campaign) error {
	vals, err := campaignValues(c)
	if err != nil {
		return err
	}
	tag, err := t.tx.Exec(ctx, updateCampaign, vals...)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Conflict("campaign was modified concurrently")
	}
	c.Version++
	return nil
}

func (t *campaignTx) Milestones(ctx context.Context) ([]domain.Milestone, error) {
	return listMilestones(ctx, t.tx, t.id)
}

func (t *campaignTx) ReplaceMilestones(ctx context.Context, ms []domain.Milestone) error {
	if _, err := t.tx.Exec(ctx, `DELETE FROM milestones WHERE campaign_id = $1`, t.id); err != nil {
		return translate(err)
	}
	return insertMilestones(ctx, t.tx, ms)
}

func (t *campaignTx) UpdateMilestone(ctx context.Context, m *domain.Milestone) error {
	vals, err := milestoneValues(m)
	if err != nil {
		return err
	}
	tag, err := t.tx.Exec(ctx, updateMilestone+" AND campaign_id = $2", vals...)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("milestone not found")
	}
	return nil
}

func (t *campaignTx) Assignments(ctx context.Context) ([]domain.Assignment, error) {
	rows, err := t.tx.Query(ctx, selectAssignment+" WHERE campaign_id = $1 ORDER BY created_at", t.id)
	if err != nil {
		return nil, translate(err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Assignment, error) {
		return scanAssignment(row)
	})
}

func (t *campaignTx) InsertAssignments(ctx context.Context, as []domain.Assignment) error {
	b := &pgx.Batch{}
	for i := range as {
		b.Queue(insertAssignment, assignmentValues(&as[i])...)
	}
	return sendBatch(ctx, t.tx, b)
}

func (t *campaignTx) UpdateAssignment(ctx context.Context, a *domain.Assignment) error {
	tag, err := t.tx.Exec(ctx, updateAssignment+" AND campaign_id = $2", assignmentValues(a)...)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("assignment not found")
	}
	return nil
}

func (t *campaignTx) Negotiations(ctx context.Context) ([]domain.Negotiation, error) {
	return listNegotiations(ctx, t.tx, t.id)
}

func (t *campaignTx) AppendNegotiation(ctx context.Context, n *domain.Negotiation) error {
	vals, err := negotiationValues(n)
	if err != nil {
		return err
	}
	_, err = t.tx.Exec(ctx, insertNegotiation, vals...)
	return translate(err)
}

func (t *campaignTx) MarkNegotiationsRead(ctx context.Context, senders ...domain.Role) (int, error) {
	roles := make([]string, len(senders))
	for i, s := range senders {
		roles[i] = string(s)
	}
	tag, err := t.tx.Exec(ctx,
		`UPDATE negotiations SET is_read = TRUE WHERE campaign_id = $1 AND NOT is_read AND sender_role = ANY($2)`,
		t.id, roles)
	if err != nil {
		return 0, translate(err)
	}
	return int(tag.RowsAffected()), nil
}

func (t *campaignTx) ReplaceAssets(ctx context.Context, assets []domain.Asset) error {
	if _, err := t.tx.Exec(ctx, `DELETE FROM assets WHERE campaign_id = $1`, t.id); err != nil {
		return translate(err)
	}
	return insertAssets(ctx, t.tx, assets)
}

func listMilestones(ctx context.Context, q querier, campaignID uuid.UUID) ([]domain.Milestone, error) {
	rows, err := q.Query(ctx, selectMilestone+" WHERE campaign_id = $1 ORDER BY position", campaignID)
	if err != nil {
		return nil, translate(err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Milestone, error) {
		return scanMilestone(row)
	})
}

func listNegotiations(ctx context.Context, q querier, campaignID uuid.UUID) ([]domain.Negotiation, error) {
	rows, err := q.Query(ctx, selectNegotiation+" WHERE campaign_id = $1 ORDER BY seq", campaignID)
	if err != nil {
		return nil, translate(err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Negotiation, error) {
		return scanNegotiation(row)
	})
}

func insertMilestones(ctx context.Context, q querier, ms []domain.Milestone) error {
	b := &pgx.Batch{}
	for i := range ms {
		vals, err := milestoneValues(&ms[i])
		if err != nil {
			return err
		}
		b.Queue(insertMilestone, vals...)
	}
	return sendBatch(ctx, q, b)
}

func insertAssets(ctx context.Context, q querier, assets []domain.Asset) error {
	b := &pgx.Batch{}
	for _, a := range assets {
		b.Queue(insertAsset, a.ID, a.CampaignID, a.URL, a.Filename, a.Type, a.CreatedAt)
	}
	return sendBatch(ctx, q, b)
}
