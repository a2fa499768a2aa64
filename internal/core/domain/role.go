package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is one of the four actor roles taking part in a campaign.
type Role string

const (
	RoleClient     Role = "client"
	RoleAdmin      Role = "admin"
	RoleAgency     Role = "agency"
	RoleInfluencer Role = "influencer"
)

// ParseRole validates a textual role.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleClient, RoleAdmin, RoleAgency, RoleInfluencer:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Actor is the verified caller of an operation. UserID identifies the
// account; the profile id for the role is resolved separately.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

// Side is a party of the budget negotiation. Admins and agencies both
// negotiate on the platform side, which is stored as "admin".
type Side string

const (
	SideClient Side = "client"
	SideAdmin  Side = "admin"
)

// SideOf maps a role to its negotiation side. Influencers never negotiate
// the campaign budget.
func SideOf(r Role) (Side, bool) {
	switch r {
	case RoleClient:
		return SideClient, true
	case RoleAdmin, RoleAgency:
		return SideAdmin, true
	}
	return "", false
}

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == SideClient {
		return SideAdmin
	}
	return SideClient
}
