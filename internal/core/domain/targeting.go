package domain

import "github.com/google/uuid"

// Targeting describes who a campaign should reach. It is collected at
// wizard step 2 and stored as a JSON document.
type Targeting struct {
	Platforms    []string `json:"platforms"`
	Locations    []string `json:"locations"`
	AgeMin       int      `json:"age_min,omitempty"`
	AgeMax       int      `json:"age_max,omitempty"`
	Gender       string   `json:"gender,omitempty"`
	AudienceNote string   `json:"audience_note,omitempty"`
}

// InfluencerPreferences are the non-owning influencer sets attached to a
// campaign. Excluded influencers can never receive an offer.
type InfluencerPreferences struct {
	Preferred []uuid.UUID `json:"preferred"`
	Excluded  []uuid.UUID `json:"excluded"`
}
