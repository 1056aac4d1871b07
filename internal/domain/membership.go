package domain

import "time"

// Membership statuses. Mutated externally; this service only observes
// transitions between them.
const (
	MembershipPending  = "pending"
	MembershipApproved = "approved"
	MembershipDeclined = "declined"
	MembershipKicked   = "kicked"
)

type Membership struct {
	MembershipID     string    `json:"id" dynamodbav:"membership_id"`
	UserID           string    `json:"user_id" dynamodbav:"user_id"`
	OrganizationName string    `json:"organization_name" dynamodbav:"organization_name"`
	Status           string    `json:"status" dynamodbav:"status"`
	CreatedAt        time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt        time.Time `json:"updated" dynamodbav:"updated_at"`
}
