package models

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTrainer Role = "trainer"
	RoleClient  Role = "client"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTrainer, RoleClient:
		return true
	}
	return false
}

// AccountStatus tracks the trainer-side activation lifecycle. Clients carry the
// registration default and are gated through ClientProfile.ActivationStatus instead.
type AccountStatus string

const (
	AccountPending          AccountStatus = "pending"
	AccountPaymentSubmitted AccountStatus = "payment_submitted"
	AccountActive           AccountStatus = "active"
	AccountRejected         AccountStatus = "rejected"
)

type User struct {
	ID                    int64         `json:"id"`
	Name                  string        `json:"name"`
	Email                 string        `json:"email"`
	PasswordHash          string        `json:"-"`
	Role                  Role          `json:"role"`
	IsActive              bool          `json:"is_active"`
	AccountStatus         AccountStatus `json:"account_status"`
	SubscriptionExpiresAt *time.Time    `json:"subscription_expires_at"`
	LoginToken            *string       `json:"-"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
}
