package repository

import (
	"context"

	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/models"
	"github.com/jackc/pgx/v5"
)

const clientProfileColumns = `id, user_id, trainer_id, activation_status,
		current_weight_kg, target_weight_kg, height_cm, body_fat_percent,
		age, gender, fitness_goal, activity_level, medical_notes,
		created_at, updated_at`

type ClientProfileRepository struct {
	db DBTX
}

func NewClientProfileRepository(db DBTX) *ClientProfileRepository {
	return &ClientProfileRepository{db: db}
}

func scanClientProfile(row pgx.Row) (*models.ClientProfile, error) {
	var profile models.ClientProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.TrainerID,
		&profile.ActivationStatus,
		&profile.CurrentWeightKG,
		&profile.TargetWeightKG,
		&profile.HeightCM,
		&profile.BodyFatPercent,
		&profile.Age,
		&profile.Gender,
		&profile.FitnessGoal,
		&profile.ActivityLevel,
		&profile.MedicalNotes,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ClientProfileRepository) CreateEmpty(ctx context.Context, userID int64) error {
	query := `
		INSERT INTO client_profiles (user_id, activation_status)
		VALUES ($1, $2)
	`
	_, err := r.db.Exec(ctx, query, userID, models.ActivationRegistered)
	return err
}

func (r *ClientProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.ClientProfile, error) {
	query := `SELECT ` + clientProfileColumns + ` FROM client_profiles WHERE user_id = $1`
	return scanClientProfile(r.db.QueryRow(ctx, query, userID))
}

func (r *ClientProfileRepository) GetByUserIDForUpdate(ctx context.Context, userID int64) (*models.ClientProfile, error) {
	query := `SELECT ` + clientProfileColumns + ` FROM client_profiles WHERE user_id = $1 FOR UPDATE`
	return scanClientProfile(r.db.QueryRow(ctx, query, userID))
}

func (r *ClientProfileRepository) AssignTrainer(ctx context.Context, userID, trainerID int64) error {
	query := `
		UPDATE client_profiles
		SET trainer_id = $2, activation_status = $3, updated_at = now()
		WHERE user_id = $1
	`
	tag, err := r.db.Exec(ctx, query, userID, trainerID, models.ActivationUnassigned)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UnassignTrainer drops the coaching relation and resets the stored state so reads
// and writes stay consistent with the trainer_id column.
func (r *ClientProfileRepository) UnassignTrainer(ctx context.Context, userID int64) error {
	query := `
		UPDATE client_profiles
		SET trainer_id = NULL, activation_status = $2, updated_at = now()
		WHERE user_id = $1
	`
	tag, err := r.db.Exec(ctx, query, userID, models.ActivationRegistered)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ClientProfileRepository) SetActivationStatus(ctx context.Context, userID int64, status models.ActivationStatus) error {
	query := `UPDATE client_profiles SET activation_status = $2, updated_at = now() WHERE user_id = $1`
	tag, err := r.db.Exec(ctx, query, userID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ClientProfileRepository) ListByTrainer(ctx context.Context, trainerID int64) ([]models.ClientProfile, error) {
	query := `SELECT ` + clientProfileColumns + ` FROM client_profiles WHERE trainer_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, trainerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []models.ClientProfile{}
	for rows.Next() {
		profile, err := scanClientProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	return profiles, rows.Err()
}

type BodyStatsInput struct {
	CurrentWeightKG *float64
	TargetWeightKG  *float64
	HeightCM        *float64
	BodyFatPercent  *float64
}

func (r *ClientProfileRepository) UpdateBodyStats(ctx context.Context, userID int64, input BodyStatsInput) (*models.ClientProfile, error) {
	query := `
		UPDATE client_profiles
		SET current_weight_kg = COALESCE($2, current_weight_kg),
			target_weight_kg = COALESCE($3, target_weight_kg),
			height_cm = COALESCE($4, height_cm),
			body_fat_percent = COALESCE($5, body_fat_percent),
			updated_at = now()
		WHERE user_id = $1
		RETURNING ` + clientProfileColumns + `
	`
	return scanClientProfile(r.db.QueryRow(ctx, query, userID,
		input.CurrentWeightKG, input.TargetWeightKG, input.HeightCM, input.BodyFatPercent))
}

type QuestionnaireInput struct {
	Age           *int
	Gender        *string
	FitnessGoal   *string
	ActivityLevel *string
	MedicalNotes  *string
}

func (r *ClientProfileRepository) UpdateQuestionnaire(ctx context.Context, userID int64, input QuestionnaireInput) (*models.ClientProfile, error) {
	query := `
		UPDATE client_profiles
		SET age = COALESCE($2, age),
			gender = COALESCE($3, gender),
			fitness_goal = COALESCE($4, fitness_goal),
			activity_level = COALESCE($5, activity_level),
			medical_notes = COALESCE($6, medical_notes),
			updated_at = now()
		WHERE user_id = $1
		RETURNING ` + clientProfileColumns + `
	`
	return scanClientProfile(r.db.QueryRow(ctx, query, userID,
		input.Age, input.Gender, input.FitnessGoal, input.ActivityLevel, input.MedicalNotes))
}

// ClearTrainer nulls out the coaching relation on every client assigned to the given
// trainer. Deleting a trainer must never cascade into deleting their clients.
func (r *ClientProfileRepository) ClearTrainer(ctx context.Context, trainerID int64) error {
	query := `
		UPDATE client_profiles
		SET trainer_id = NULL, activation_status = $2, updated_at = now()
		WHERE trainer_id = $1
	`
	_, err := r.db.Exec(ctx, query, trainerID, models.ActivationRegistered)
	return err
}
