package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
)

// Party is a resolved actor: the role plus its profile id.
type Party struct {
	Role domain.Role
	ID   uuid.UUID
}

// Guard authorizes access to a locked campaign. Facades build guards from
// the caller's profile; the state machine runs them inside the
// transaction so ownership is checked against the committed state.
type Guard func(c *domain.Campaign) error

// Lifecycle is the campaign state machine. It owns every status change of
// campaigns, negotiations, assignments and milestones and is shared by
// the role facades.
type Lifecycle struct {
	repo     port.CampaignRepository
	profiles port.ProfileDirectory
	notifier port.Notifier
	observer port.TransitionObserver
	logger   *slog.Logger

	pricing  domain.Pricing
	offerTTL time.Duration
	now      func() time.Time
}

// Option customizes a Lifecycle.
type Option func(*Lifecycle)

// WithPricing sets the VAT and platform fee rates.
func WithPricing(p domain.Pricing) Option { return func(l *Lifecycle) { l.pricing = p } }

// WithOfferTTL sets the default expiry of offers created without one.
func WithOfferTTL(d time.Duration) Option { return func(l *Lifecycle) { l.offerTTL = d } }

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option { return func(l *Lifecycle) { l.now = now } }

// WithObserver registers a transition observer.
func WithObserver(o port.TransitionObserver) Option { return func(l *Lifecycle) { l.observer = o } }

// NewLifecycle creates the state machine over its collaborators.
func NewLifecycle(repo port.CampaignRepository, profiles port.ProfileDirectory, notifier port.Notifier, logger *slog.Logger, opts ...Option) *Lifecycle {
	l := &Lifecycle{
		repo:     repo,
		profiles: profiles,
		notifier: notifier,
		logger:   logger,
		pricing:  domain.DefaultPricing(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// Pricing returns the configured budget calculator.
func (l *Lifecycle) Pricing() domain.Pricing { return l.pricing }

// resolve maps a verified actor to its profile for the expected role.
func (l *Lifecycle) resolve(ctx context.Context, actor domain.Actor, role domain.Role) (Party, error) {
	if actor.Role != role {
		return Party{}, domain.Forbidden(fmt.Sprintf("operation requires the %s role", role))
	}
	id, err := l.profiles.ResolveProfile(ctx, actor.UserID, role)
	if err != nil {
		return Party{}, err
	}
	return Party{Role: role, ID: id}, nil
}

// effects collects what a transaction wants to happen after it commits.
type effects struct {
	notes       []note
	transitions []transition
	// after is returned to the caller once the transaction committed. It
	// lets an operation persist a side exit (an expired offer) and still
	// fail.
	after error
}

type note struct {
	role      domain.Role
	profileID uuid.UUID
	title     string
	message   string
	category  string
}

type transition struct {
	entity, from, to string
}

func (fx *effects) notify(role domain.Role, profileID uuid.UUID, category, title, message string) {
	fx.notes = append(fx.notes, note{role: role, profileID: profileID, title: title, message: message, category: category})
}

func (fx *effects) observe(entity, from, to string) {
	if from != to {
		fx.transitions = append(fx.transitions, transition{entity: entity, from: from, to: to})
	}
}

type mutation func(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, fx *effects) error

// run executes fn on the locked campaign, persists the campaign and then
// flushes notifications and observations.
func (l *Lifecycle) run(ctx context.Context, campaignID uuid.UUID, guard Guard, fn mutation) (*domain.Campaign, error) {
	var (
		fx  effects
		out *domain.Campaign
	)
	err := l.repo.Atomic(ctx, campaignID, func(tx port.CampaignTx) error {
		fx = effects{}
		c, err := tx.Campaign(ctx)
		if err != nil {
			return err
		}
		if guard != nil {
			if err = guard(c); err != nil {
				return err
			}
		}
		from := c.Status
		if err = fn(ctx, tx, c, &fx); err != nil {
			return err
		}
		fx.observe("campaign", string(from), string(c.Status))
		c.UpdatedAt = l.now().UTC()
		if err = tx.UpdateCampaign(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.flush(ctx, &fx)
	if fx.after != nil {
		return out, fx.after
	}
	return out, nil
}

// logOnly runs fn under the campaign lock without rewriting the campaign
// row, so its version is left alone. fn may only touch the negotiation log.
func (l *Lifecycle) logOnly(ctx context.Context, campaignID uuid.UUID, guard Guard, fn func(ctx context.Context, tx port.CampaignTx) error) error {
	return l.repo.Atomic(ctx, campaignID, func(tx port.CampaignTx) error {
		c, err := tx.Campaign(ctx)
		if err != nil {
			return err
		}
		if guard != nil {
			if err = guard(c); err != nil {
				return err
			}
		}
		return fn(ctx, tx)
	})
}

// flush delivers notifications and observations. Failures are logged and
// never reach the caller: the transition already committed.
func (l *Lifecycle) flush(ctx context.Context, fx *effects) {
	if l.observer != nil {
		for _, t := range fx.transitions {
			l.observer.ObserveTransition(t.entity, t.from, t.to)
		}
	}
	if l.notifier == nil {
		return
	}
	for _, n := range fx.notes {
		userID, err := l.profiles.UserOfProfile(ctx, n.role, n.profileID)
		if err != nil {
			l.logger.Warn("notification recipient not resolved",
				slog.String("role", string(n.role)), slog.String("profile_id", n.profileID.String()), slog.Any("error", err))
			continue
		}
		err = l.notifier.Notify(ctx, domain.Notification{
			UserID:   userID,
			Role:     n.role,
			Title:    n.title,
			Message:  n.message,
			Category: n.category,
		})
		if err != nil {
			l.logger.Error("notification failed",
				slog.String("user_id", userID.String()), slog.String("category", n.category), slog.Any("error", err))
		}
	}
}

// notifySide queues a notification for the negotiation side. The
// platform side is the attached agency and the assigned admin, whichever
// exist.
func notifySide(fx *effects, c *domain.Campaign, side domain.Side, category, title, message string) {
	if side == domain.SideClient {
		fx.notify(domain.RoleClient, c.ClientID, category, title, message)
		return
	}
	if c.AgencyID != nil {
		fx.notify(domain.RoleAgency, *c.AgencyID, category, title, message)
	}
	if c.AssignedAdminID != nil {
		fx.notify(domain.RoleAdmin, *c.AssignedAdminID, category, title, message)
	}
}
