package domain

import (
	"time"

	"github.com/google/uuid"
)

// Asset is an uploaded campaign file. The URL points to external storage;
// the contents are never inspected here.
type Asset struct {
	ID         uuid.UUID `json:"id"`
	CampaignID uuid.UUID `json:"campaign_id"`
	URL        string    `json:"url"`
	Filename   string    `json:"filename"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"created_at"`
}
