package services

import (
	"context"
	"errors"
	"time"

	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/models"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAlreadyAssigned = errors.New("client already assigned to another trainer")

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type paymentLister interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Payment, error)
}

type CoachingService struct {
	db                *pgxpool.Pool
	userRepo          userReader
	clientProfileRepo *repository.ClientProfileRepository
	paymentRepo       paymentLister
}

func NewCoachingService(
	db *pgxpool.Pool,
	userRepo userReader,
	clientProfileRepo *repository.ClientProfileRepository,
	paymentRepo paymentLister,
) *CoachingService {
	return &CoachingService{
		db:                db,
		userRepo:          userRepo,
		clientProfileRepo: clientProfileRepo,
		paymentRepo:       paymentRepo,
	}
}

// VerifyClientOwnership resolves the profile for the target client and applies the
// ownership predicate. clientID is the owning user's id. Callers that go on to read
// or mutate must re-apply CanAccessClient on the profile they actually use.
func (s *CoachingService) VerifyClientOwnership(ctx context.Context, actor models.Actor, clientID int64) (*models.ClientProfile, error) {
	profile, err := s.clientProfileRepo.GetByUserID(ctx, clientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !CanAccessClient(actor, profile) {
		return nil, ErrForbidden
	}
	return profile, nil
}

type ClientDetail struct {
	User             *models.User            `json:"user"`
	Profile          *models.ClientProfile   `json:"profile"`
	ActivationStatus models.ActivationStatus `json:"activation_status"`
	ActivationValid  bool                    `json:"activation_valid"`
	Payments         []models.Payment        `json:"payments"`
}

func (s *CoachingService) GetClientDetail(ctx context.Context, actor models.Actor, clientID int64) (*ClientDetail, error) {
	profile, err := s.VerifyClientOwnership(ctx, actor, clientID)
	if err != nil {
		return nil, err
	}
	// Re-checked on the resolved profile before anything is returned.
	if !CanAccessClient(actor, profile) {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.GetByID(ctx, profile.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	payments, err := s.paymentRepo.ListByUser(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}

	return &ClientDetail{
		User:             user,
		Profile:          profile,
		ActivationStatus: profile.EffectiveActivationStatus(),
		ActivationValid:  ClientActivationCurrent(profile, user, time.Now()),
		Payments:         payments,
	}, nil
}

// AddClientByEmail assigns an unclaimed client to the calling trainer. A client
// already coached by someone else is a conflict, not a silent takeover.
func (s *CoachingService) AddClientByEmail(ctx context.Context, trainer models.Actor, email string) (*models.ClientProfile, error) {
	if trainer.Role != models.RoleTrainer {
		return nil, ErrForbidden
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if user.Role != models.RoleClient {
		return nil, ErrInvalidInput
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txProfileRepo := repository.NewClientProfileRepository(tx)

	profile, err := txProfileRepo.GetByUserIDForUpdate(ctx, user.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if profile.TrainerID != nil {
		if *profile.TrainerID == trainer.ID {
			return profile, nil
		}
		return nil, ErrAlreadyAssigned
	}

	if err := txProfileRepo.AssignTrainer(ctx, user.ID, trainer.ID); err != nil {
		return nil, err
	}

	updated, err := txProfileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *CoachingService) RemoveClient(ctx context.Context, actor models.Actor, clientID int64) error {
	if actor.Role == models.RoleClient {
		return ErrForbidden
	}

	profile, err := s.VerifyClientOwnership(ctx, actor, clientID)
	if err != nil {
		return err
	}
	if !CanAccessClient(actor, profile) {
		return ErrForbidden
	}

	return s.clientProfileRepo.UnassignTrainer(ctx, clientID)
}

func (s *CoachingService) ListClients(ctx context.Context, trainerID int64) ([]models.ClientProfile, error) {
	return s.clientProfileRepo.ListByTrainer(ctx, trainerID)
}

// UpdateBodyStats is a coaching mutation: trainers (and admins) adjust the measured
// stats of an owned client. Clients do not set their own measurements.
func (s *CoachingService) UpdateBodyStats(ctx context.Context, actor models.Actor, clientID int64, input repository.BodyStatsInput) (*models.ClientProfile, error) {
	switch actor.Role {
	case models.RoleTrainer, models.RoleAdmin:
	case models.RoleClient:
		return nil, ErrForbidden
	default:
		return nil, ErrForbidden
	}

	profile, err := s.VerifyClientOwnership(ctx, actor, clientID)
	if err != nil {
		return nil, err
	}
	if !CanAccessClient(actor, profile) {
		return nil, ErrForbidden
	}

	return s.clientProfileRepo.UpdateBodyStats(ctx, clientID, input)
}

// UpdateQuestionnaire is the client-side mutation: a client maintains their own
// intake answers. Admins may correct them; trainers may not.
func (s *CoachingService) UpdateQuestionnaire(ctx context.Context, actor models.Actor, clientID int64, input repository.QuestionnaireInput) (*models.ClientProfile, error) {
	switch actor.Role {
	case models.RoleClient, models.RoleAdmin:
	case models.RoleTrainer:
		return nil, ErrForbidden
	default:
		return nil, ErrForbidden
	}

	profile, err := s.VerifyClientOwnership(ctx, actor, clientID)
	if err != nil {
		return nil, err
	}
	if !CanAccessClient(actor, profile) {
		return nil, ErrForbidden
	}

	return s.clientProfileRepo.UpdateQuestionnaire(ctx, clientID, input)
}
