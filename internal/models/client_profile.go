package models

import "time"

// ActivationStatus tracks how far a client has progressed from registration to paid
// coaching. A profile with no assigned trainer always reads as registered; use
// EffectiveActivationStatus rather than the stored column.
type ActivationStatus string

const (
	ActivationRegistered     ActivationStatus = "registered"
	ActivationUnassigned     ActivationStatus = "unassigned"
	ActivationPendingPayment ActivationStatus = "pending_payment"
	ActivationActive         ActivationStatus = "active"
)

type ClientProfile struct {
	ID               int64            `json:"id"`
	UserID           int64            `json:"user_id"`
	TrainerID        *int64           `json:"trainer_id"`
	ActivationStatus ActivationStatus `json:"activation_status"`
	CurrentWeightKG  *float64         `json:"current_weight_kg"`
	TargetWeightKG   *float64         `json:"target_weight_kg"`
	HeightCM         *float64         `json:"height_cm"`
	BodyFatPercent   *float64         `json:"body_fat_percent"`
	Age              *int             `json:"age"`
	Gender           *string          `json:"gender"`
	FitnessGoal      *string          `json:"fitness_goal"`
	ActivityLevel    *string          `json:"activity_level"`
	MedicalNotes     *string          `json:"medical_notes"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// EffectiveActivationStatus recomputes the client state defensively on read: a
// profile without a trainer is registered no matter what the stored column says.
func (p *ClientProfile) EffectiveActivationStatus() ActivationStatus {
	if p.TrainerID == nil {
		return ActivationRegistered
	}
	if p.ActivationStatus == ActivationRegistered {
		return ActivationUnassigned
	}
	return p.ActivationStatus
}
