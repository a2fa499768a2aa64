package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"influence-hub/internal/core/domain"
	"influence-hub/internal/core/port"
)

// Demo holds the identities created by Seed.
type Demo struct {
	Client      domain.Actor
	Admin       domain.Actor
	Agency      domain.Actor
	Influencers []domain.Actor
	CampaignID  uuid.UUID
}

func demoID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://influence-hub.local/demo/"+name))
}

// Seed registers demo profiles and walks one campaign through the wizard
// up to a quote. User and profile ids are stable across runs, so
// profiles are upserted; every run adds a new campaign.
func Seed(ctx context.Context, profiles port.ProfileDirectory, client port.ClientUseCase, admin port.AdminUseCase) (*Demo, error) {
	add := func(role domain.Role, name string) (domain.Actor, error) {
		p := domain.Profile{
			ID:          demoID("profile/" + name),
			UserID:      demoID("user/" + name),
			Role:        role,
			DisplayName: name,
		}
		if err := profiles.AddProfile(ctx, p); err != nil {
			return domain.Actor{}, fmt.Errorf("seed profile %s: %w", name, err)
		}
		return domain.Actor{UserID: p.UserID, Role: role}, nil
	}

	var (
		demo Demo
		err  error
	)
	if demo.Client, err = add(domain.RoleClient, "acme-brand"); err != nil {
		return nil, err
	}
	if demo.Admin, err = add(domain.RoleAdmin, "ops"); err != nil {
		return nil, err
	}
	if demo.Agency, err = add(domain.RoleAgency, "north-agency"); err != nil {
		return nil, err
	}
	for i := 1; i <= 3; i++ {
		inf, err := add(domain.RoleInfluencer, fmt.Sprintf("creator-%d", i))
		if err != nil {
			return nil, err
		}
		demo.Influencers = append(demo.Influencers, inf)
	}

	c, err := client.CreateDraft(ctx, demo.Client, domain.BasicInfo{
		Name:            "Spring launch",
		Type:            domain.TypeInfluencerPromotion,
		Niche:           "fitness",
		ProductCategory: "apparel",
	})
	if err != nil {
		return nil, err
	}
	demo.CampaignID = c.ID
	steps := []func() error{
		func() error {
			_, err := client.UpdateTargeting(ctx, demo.Client, c.ID, domain.TargetingInput{
				Targeting: domain.Targeting{Platforms: []string{"instagram", "tiktok"}, Locations: []string{"Riyadh"}, AgeMin: 18, AgeMax: 35},
			})
			return err
		},
		func() error {
			_, err := client.UpdateDetails(ctx, demo.Client, c.ID, domain.Details{
				Objective:   "awareness",
				Description: "Launch of the spring collection",
				Dos:         []string{"show the product outdoors"},
			})
			return err
		},
		func() error {
			_, err := client.UpdateBudget(ctx, demo.Client, c.ID, domain.BudgetInput{
				BaseBudget: decimal.NewFromInt(10000),
				Milestones: []domain.MilestoneDraft{
					{Order: 1, Title: "Teaser reel", Platform: "instagram", ContentType: "reel", Quantity: 1},
					{Order: 2, Title: "Launch video", Platform: "tiktok", ContentType: "video", Quantity: 2},
				},
			})
			return err
		},
		func() error {
			_, err := client.UpdateAssets(ctx, demo.Client, c.ID, []domain.AssetDraft{
				{URL: "https://cdn.influence-hub.local/brief.pdf", Filename: "brief.pdf", Type: "application/pdf"},
			})
			return err
		},
		func() error {
			_, err := client.Place(ctx, demo.Client, c.ID)
			return err
		},
		func() error {
			_, err := admin.SendQuote(ctx, demo.Admin, c.ID, decimal.NewFromInt(12000))
			return err
		},
	}
	for i, step := range steps {
		if err = step(); err != nil {
			return nil, fmt.Errorf("seed campaign step %d: %w", i+1, err)
		}
	}
	return &demo, nil
}
