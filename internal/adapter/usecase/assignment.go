package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
)

// CreateAssignments offers the campaign to a batch of parties. The batch
// is validated as a whole and inserted in one transaction: either every
// offer is created or none.
func (l *Lifecycle) CreateAssignments(ctx context.Context, campaignID uuid.UUID, guard Guard, by Party, offers []domain.OfferInput) ([]domain.Assignment, error) {
	if len(offers) == 0 {
		return nil, domain.InvalidInput("at least one offer is required")
	}
	now := l.now()
	var v []string
	seen := make(map[uuid.UUID]bool, len(offers))
	byKind := make(map[domain.PartyKind][]uuid.UUID)
	for _, in := range offers {
		v = append(v, in.Validate(now)...)
		if seen[in.PartyID] {
			v = append(v, fmt.Sprintf("party %s is offered twice", in.PartyID))
		}
		seen[in.PartyID] = true
		byKind[in.PartyKind] = append(byKind[in.PartyKind], in.PartyID)
	}
	if len(v) > 0 {
		return nil, domain.InvalidInput("invalid offers", v...)
	}
	var missing []string
	for kind, ids := range byKind {
		unknown, err := l.profiles.MissingProfiles(ctx, kind.Role(), ids)
		if err != nil {
			return nil, err
		}
		for _, id := range unknown {
			missing = append(missing, fmt.Sprintf("%s %s does not exist", kind, id))
		}
	}
	if len(missing) > 0 {
		return nil, &domain.Error{Kind: domain.KindNotFound, Message: "unknown parties", Violations: missing}
	}

	var created []domain.Assignment
	_, err := l.run(ctx, campaignID, guard, func(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, fx *effects) error {
		if !c.Status.Executable() {
			return domain.InvalidTransition(fmt.Sprintf("campaign is %s and cannot be assigned yet", c.Status))
		}
		var excluded []string
		for _, in := range offers {
			if in.PartyKind == domain.PartyInfluencer && c.Excludes(in.PartyID) {
				excluded = append(excluded, in.PartyID.String())
			}
		}
		if len(excluded) > 0 {
			return domain.InvalidTransition("influencers are excluded from this campaign", excluded...)
		}
		existing, err := tx.Assignments(ctx)
		if err != nil {
			return err
		}
		var dup []string
		for _, a := range existing {
			if !a.Status.Terminal() && seen[a.PartyID] {
				dup = append(dup, a.PartyID.String())
			}
		}
		if len(dup) > 0 {
			return domain.InvalidTransition("parties already hold an active offer on this campaign", dup...)
		}

		at := now.UTC()
		delivery := domain.DeliveryNotRequired
		if c.Details.ShipsProduct {
			delivery = domain.DeliveryPending
		}
		batch := make([]domain.Assignment, 0, len(offers))
		for _, in := range offers {
			a := domain.Assignment{
				ID:             uuid.New(),
				CampaignID:     c.ID,
				PartyKind:      in.PartyKind,
				PartyID:        in.PartyID,
				Status:         domain.AssignmentNewOffer,
				Budget:         l.pricing.ComputeAssignment(in.OfferAmount),
				Percentage:     in.Percentage,
				Message:        in.Message,
				Terms:          in.Terms,
				DeliveryStatus: delivery,
				AssignedBy:     by.ID,
				AssignedByRole: by.Role,
				CreatedAt:      at,
				UpdatedAt:      at,
			}
			switch {
			case in.ExpiresAt != nil:
				exp := in.ExpiresAt.UTC()
				a.OfferExpiresAt = &exp
			case l.offerTTL > 0:
				exp := at.Add(l.offerTTL)
				a.OfferExpiresAt = &exp
			}
			batch = append(batch, a)
		}
		if err = tx.InsertAssignments(ctx, batch); err != nil {
			return err
		}
		if c.Status == domain.StatusPaid || c.Status == domain.StatusPartialPaid {
			if err = c.MoveTo(domain.StatusPendingAssignment); err != nil {
				return err
			}
		}
		for _, a := range batch {
			fx.observe("assignment", "", string(a.Status))
			fx.notify(a.PartyKind.Role(), a.PartyID, domain.CategoryAssignment, "New campaign offer",
				fmt.Sprintf("You were offered %s for campaign %q.", a.Budget.Offer.StringFixed(2), c.Name))
		}
		created = batch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// withAssignment runs fn on one assignment of its campaign and persists it.
func (l *Lifecycle) withAssignment(ctx context.Context, assignmentID uuid.UUID, guard Guard, fn func(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, a *domain.Assignment, fx *effects) error) (*domain.Assignment, error) {
	campaignID, err := l.repo.CampaignOfAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if campaignID == uuid.Nil {
		return nil, domain.NotFound("assignment not found")
	}
	var out domain.Assignment
	c, err := l.run(ctx, campaignID, guard, func(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, fx *effects) error {
		as, err := tx.Assignments(ctx)
		if err != nil {
			return err
		}
		var a *domain.Assignment
		for i := range as {
			if as[i].ID == assignmentID {
				a = &as[i]
				break
			}
		}
		if a == nil {
			return domain.NotFound("assignment not found")
		}
		from := a.Status
		if err = fn(ctx, tx, c, a, fx); err != nil {
			return err
		}
		if err = tx.UpdateAssignment(ctx, a); err != nil {
			return err
		}
		fx.observe("assignment", string(from), string(a.Status))
		out = *a
		return nil
	})
	if err != nil {
		if c != nil {
			// committed side exit, e.g. an offer that expired
			return &out, err
		}
		return nil, err
	}
	return &out, nil
}

// expired persists the lazy expiry of an offer and fails the call once
// the transaction committed.
func expired(fx *effects) {
	fx.after = domain.InvalidTransition("the offer has expired")
}

// Respond records the assigned party's answer to an open offer. Accepting
// starts execution at once; an expired offer is closed instead.
func (l *Lifecycle) Respond(ctx context.Context, assignmentID uuid.UUID, p Party, d domain.Decision, message string) (*domain.Assignment, error) {
	return l.withAssignment(ctx, assignmentID, nil, func(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, a *domain.Assignment, fx *effects) error {
		if a.PartyID != p.ID || a.PartyKind.Role() != p.Role {
			return domain.Forbidden("only the assigned party can respond to this offer")
		}
		if a.ExpireIfDue(l.now()) {
			expired(fx)
			return l.promoteAfter(ctx, tx, c, a, fx)
		}
		if err := a.Respond(d, message, l.now()); err != nil {
			return err
		}
		title := "Offer accepted"
		if a.Status == domain.AssignmentDeclined {
			title = "Offer declined"
		}
		fx.notify(a.AssignedByRole, a.AssignedBy, domain.CategoryAssignment, title,
			fmt.Sprintf("An offer for campaign %q was answered: %s.", c.Name, a.Status))
		return l.promoteAfter(ctx, tx, c, a, fx)
	})
}

// promoteAfter re-checks promotion and completion with the pending write
// of a applied.
func (l *Lifecycle) promoteAfter(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, a *domain.Assignment, fx *effects) error {
	if err := tx.UpdateAssignment(ctx, a); err != nil {
		return err
	}
	if err := l.promoteIfReady(ctx, tx, c, fx); err != nil {
		return err
	}
	if err := l.completeIfDone(ctx, tx, c, fx); err != nil {
		return err
	}
	// completion may have closed a as well
	as, err := tx.Assignments(ctx)
	if err != nil {
		return err
	}
	for _, stored := range as {
		if stored.ID == a.ID {
			*a = stored
		}
	}
	return nil
}

// CancelAssignment withdraws an open or accepted offer.
func (l *Lifecycle) CancelAssignment(ctx context.Context, assignmentID uuid.UUID, guard Guard) (*domain.Assignment, error) {
	return l.withAssignment(ctx, assignmentID, guard, func(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, a *domain.Assignment, fx *effects) error {
		if err := a.Cancel(l.now()); err != nil {
			return err
		}
		fx.notify(a.PartyKind.Role(), a.PartyID, domain.CategoryAssignment, "Offer withdrawn",
			fmt.Sprintf("Your offer for campaign %q was withdrawn.", c.Name))
		return l.promoteAfter(ctx, tx, c, a, fx)
	})
}

// UpdateAssignment edits an open offer.
func (l *Lifecycle) UpdateAssignment(ctx context.Context, assignmentID uuid.UUID, guard Guard, patch domain.AssignmentPatch) (*domain.Assignment, error) {
	return l.withAssignment(ctx, assignmentID, guard, func(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, a *domain.Assignment, fx *effects) error {
		if a.ExpireIfDue(l.now()) {
			expired(fx)
			return l.promoteAfter(ctx, tx, c, a, fx)
		}
		if err := a.Update(patch, l.pricing, l.now()); err != nil {
			return err
		}
		fx.notify(a.PartyKind.Role(), a.PartyID, domain.CategoryAssignment, "Offer updated",
			fmt.Sprintf("Your offer for campaign %q was updated.", c.Name))
		return nil
	})
}

// UpdateDelivery tracks shipping of the product for physical campaigns.
func (l *Lifecycle) UpdateDelivery(ctx context.Context, assignmentID uuid.UUID, guard Guard, status domain.DeliveryStatus, address string) (*domain.Assignment, error) {
	if !status.Valid() || status == domain.DeliveryNotRequired {
		return nil, domain.InvalidInput(fmt.Sprintf("unknown delivery status %q", status))
	}
	return l.withAssignment(ctx, assignmentID, guard, func(_ context.Context, _ port.CampaignTx, c *domain.Campaign, a *domain.Assignment, fx *effects) error {
		if !c.Details.ShipsProduct {
			return domain.InvalidTransition("campaign does not ship a product")
		}
		if a.Status.Terminal() {
			return domain.InvalidTransition(fmt.Sprintf("assignment is %s", a.Status))
		}
		if address = strings.TrimSpace(address); address != "" {
			a.DeliveryAddress = address
		}
		if status != domain.DeliveryPending && a.DeliveryAddress == "" {
			return domain.InvalidInput("a delivery address is required before shipping")
		}
		a.DeliveryStatus = status
		a.UpdatedAt = l.now().UTC()
		fx.notify(a.PartyKind.Role(), a.PartyID, domain.CategoryAssignment, "Delivery update",
			fmt.Sprintf("Product delivery for campaign %q is now %s.", c.Name, status))
		return nil
	})
}

// promoteIfReady moves a campaign waiting for its parties into execution
// once no offer is outstanding, at least one party accepted, and the
// budget is fully paid. It runs after every assignment or payment change.
func (l *Lifecycle) promoteIfReady(ctx context.Context, tx port.CampaignTx, c *domain.Campaign, fx *effects) error {
	if c.Status != domain.StatusPendingAssignment || c.PaymentStatus != domain.PaymentFull {
		return nil
	}
	as, err := l.expireLapsed(ctx, tx, fx)
	if err != nil {
		return err
	}
	executing := false
	for _, a := range as {
		if a.Status == domain.AssignmentNewOffer {
			return nil
		}
		if a.Status.Active() {
			executing = true
		}
	}
	if !executing {
		return nil
	}
	return c.MoveTo(domain.StatusActive)
}

// expireLapsed closes every open offer past its expiry and returns the
// campaign's assignments as persisted.
func (l *Lifecycle) expireLapsed(ctx context.Context, tx port.CampaignTx, fx *effects) ([]domain.Assignment, error) {
	as, err := tx.Assignments(ctx)
	if err != nil {
		return nil, err
	}
	now := l.now()
	for i := range as {
		if !as[i].ExpireIfDue(now) {
			continue
		}
		if err = tx.UpdateAssignment(ctx, &as[i]); err != nil {
			return nil, err
		}
		fx.observe("assignment", string(domain.AssignmentNewOffer), string(domain.AssignmentExpired))
	}
	return as, nil
}
