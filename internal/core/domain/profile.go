package domain

import "github.com/google/uuid"

// Profile links a user account to its role-specific profile.
type Profile struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Role        Role
	DisplayName string
}
