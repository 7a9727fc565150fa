package models

import "time"

type TrainerProfile struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Specialization  *string   `json:"specialization"`
	Bio             *string   `json:"bio"`
	ExperienceYears *int      `json:"experience_years"`
	PaymentQRURL    *string   `json:"payment_qr_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
