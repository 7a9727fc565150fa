package repository

import (
	"context"

	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/models"
)

// SettingsRepository manages the singleton subscription-terms row. The row always
// has id 1; EnsureDefaults seeds it from config on first boot.
type SettingsRepository struct {
	db DBTX
}

func NewSettingsRepository(db DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) EnsureDefaults(ctx context.Context, durationDays int, trainerPrice, clientPrice float64) error {
	query := `
		INSERT INTO settings (id, subscription_duration_days, trainer_subscription_price, client_activation_price)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, durationDays, trainerPrice, clientPrice)
	return err
}

func (r *SettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	query := `
		SELECT id, subscription_duration_days, trainer_subscription_price, client_activation_price, updated_at
		FROM settings
		WHERE id = 1
	`
	var settings models.Settings
	err := r.db.QueryRow(ctx, query).Scan(
		&settings.ID,
		&settings.SubscriptionDurationDays,
		&settings.TrainerSubscriptionPrice,
		&settings.ClientActivationPrice,
		&settings.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

type SettingsInput struct {
	SubscriptionDurationDays *int
	TrainerSubscriptionPrice *float64
	ClientActivationPrice    *float64
}

func (r *SettingsRepository) Update(ctx context.Context, input SettingsInput) (*models.Settings, error) {
	query := `
		UPDATE settings
		SET subscription_duration_days = COALESCE($1, subscription_duration_days),
			trainer_subscription_price = COALESCE($2, trainer_subscription_price),
			client_activation_price = COALESCE($3, client_activation_price),
			updated_at = now()
		WHERE id = 1
		RETURNING id, subscription_duration_days, trainer_subscription_price, client_activation_price, updated_at
	`
	var settings models.Settings
	err := r.db.QueryRow(ctx, query,
		input.SubscriptionDurationDays, input.TrainerSubscriptionPrice, input.ClientActivationPrice).
		Scan(
			&settings.ID,
			&settings.SubscriptionDurationDays,
			&settings.TrainerSubscriptionPrice,
			&settings.ClientActivationPrice,
			&settings.UpdatedAt,
		)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
