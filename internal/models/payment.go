package models

import "time"

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

type PaymentType string

const (
	PaymentClientActivation    PaymentType = "client_activation"
	PaymentTrainerSubscription PaymentType = "trainer_subscription"
)

// Payment records a claimed bank/UPI transaction. The transaction id is free text
// supplied by the payer; nothing verifies it against a gateway. An admin inspects
// the claim and approves or rejects it exactly once.
type Payment struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id"`
	Amount        float64       `json:"amount"`
	TransactionID string        `json:"transaction_id"`
	Status        PaymentStatus `json:"status"`
	PaymentType   PaymentType   `json:"payment_type"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
