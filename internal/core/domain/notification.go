package domain

import "github.com/google/uuid"

// Notification categories.
const (
	CategoryQuote       = "quote"
	CategoryNegotiation = "negotiation"
	CategoryMilestone   = "milestone"
	CategoryAssignment  = "assignment"
	CategoryCampaign    = "campaign"
)

// Notification is a message for one user, handed to the notification
// collaborator after a lifecycle transition commits.
type Notification struct {
	UserID   uuid.UUID
	Role     Role
	Title    string
	Message  string
	Category string
}
