package repository

import (
	"context"

	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/models"
	"github.com/jackc/pgx/v5"
)

const trainerProfileColumns = `id, user_id, specialization, bio, experience_years,
		payment_qr_url, created_at, updated_at`

type TrainerProfileRepository struct {
	db DBTX
}

func NewTrainerProfileRepository(db DBTX) *TrainerProfileRepository {
	return &TrainerProfileRepository{db: db}
}

func scanTrainerProfile(row pgx.Row) (*models.TrainerProfile, error) {
	var profile models.TrainerProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Specialization,
		&profile.Bio,
		&profile.ExperienceYears,
		&profile.PaymentQRURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *TrainerProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	query := `INSERT INTO trainer_profiles (user_id) VALUES ($1)`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *TrainerProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.TrainerProfile, error) {
	query := `SELECT ` + trainerProfileColumns + ` FROM trainer_profiles WHERE user_id = $1`
	return scanTrainerProfile(r.db.QueryRow(ctx, query, userID))
}

type TrainerProfileInput struct {
	Specialization  *string
	Bio             *string
	ExperienceYears *int
	PaymentQRURL    *string
}

func (r *TrainerProfileRepository) Update(ctx context.Context, userID int64, input TrainerProfileInput) (*models.TrainerProfile, error) {
	query := `
		UPDATE trainer_profiles
		SET specialization = COALESCE($2, specialization),
			bio = COALESCE($3, bio),
			experience_years = COALESCE($4, experience_years),
			payment_qr_url = COALESCE($5, payment_qr_url),
			updated_at = now()
		WHERE user_id = $1
		RETURNING ` + trainerProfileColumns + `
	`
	return scanTrainerProfile(r.db.QueryRow(ctx, query, userID,
		input.Specialization, input.Bio, input.ExperienceYears, input.PaymentQRURL))
}
