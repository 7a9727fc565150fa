package models

import "time"

// Settings is a singleton row holding the globally configurable subscription terms.
type Settings struct {
	ID                       int64     `json:"id"`
	SubscriptionDurationDays int       `json:"subscription_duration_days"`
	TrainerSubscriptionPrice float64   `json:"trainer_subscription_price"`
	ClientActivationPrice    float64   `json:"client_activation_price"`
	UpdatedAt                time.Time `json:"updated_at"`
}
