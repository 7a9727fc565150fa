package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/models"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrAlreadyApproved   = errors.New("payment already approved")
	ErrAlreadyRejected   = errors.New("payment already rejected")
	ErrNoTrainerAssigned = errors.New("no trainer assigned")
)

type settingsReader interface {
	Get(ctx context.Context) (*models.Settings, error)
}

type PaymentService struct {
	db           *pgxpool.Pool
	paymentRepo  *repository.PaymentRepository
	settingsRepo settingsReader
}

func NewPaymentService(
	db *pgxpool.Pool,
	paymentRepo *repository.PaymentRepository,
	settingsRepo settingsReader,
) *PaymentService {
	return &PaymentService{
		db:           db,
		paymentRepo:  paymentRepo,
		settingsRepo: settingsRepo,
	}
}

type SubmitPaymentInput struct {
	Amount        float64
	TransactionID string
}

// Submit records a claimed transaction and advances the payer's submitted-state in
// the same transaction. The transaction id is trusted as-is; verification is the
// admin's job at approval time.
func (s *PaymentService) Submit(ctx context.Context, payer *models.User, input SubmitPaymentInput) (*models.Payment, error) {
	if input.Amount <= 0 || strings.TrimSpace(input.TransactionID) == "" {
		return nil, ErrInvalidInput
	}

	var paymentType models.PaymentType
	switch payer.Role {
	case models.RoleTrainer:
		paymentType = models.PaymentTrainerSubscription
	case models.RoleClient:
		paymentType = models.PaymentClientActivation
	case models.RoleAdmin:
		return nil, ErrForbidden
	default:
		return nil, ErrForbidden
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txPaymentRepo := repository.NewPaymentRepository(tx)
	txUserRepo := repository.NewUserRepository(tx)
	txClientProfileRepo := repository.NewClientProfileRepository(tx)

	if payer.Role == models.RoleClient {
		profile, err := txClientProfileRepo.GetByUserIDForUpdate(ctx, payer.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if profile.TrainerID == nil {
			return nil, ErrNoTrainerAssigned
		}
		if profile.EffectiveActivationStatus() != models.ActivationActive {
			if err := txClientProfileRepo.SetActivationStatus(ctx, payer.ID, models.ActivationPendingPayment); err != nil {
				return nil, err
			}
		}
	} else {
		user, err := txUserRepo.GetByIDForUpdate(ctx, payer.ID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		// A renewing trainer keeps the active status until the admin decides.
		if user.AccountStatus == models.AccountPending || user.AccountStatus == models.AccountRejected {
			if err := txUserRepo.SetAccountStatus(ctx, payer.ID, models.AccountPaymentSubmitted); err != nil {
				return nil, err
			}
		}
	}

	payment, err := txPaymentRepo.Create(ctx, repository.CreatePaymentInput{
		UserID:        payer.ID,
		Amount:        input.Amount,
		TransactionID: strings.TrimSpace(input.TransactionID),
		PaymentType:   paymentType,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return payment, nil
}

// Approve flips a pending payment to approved and grants the payer a fresh paid
// window, all inside one transaction. The status flip is a compare-and-swap, so of
// two racing approvals exactly one performs the grant.
func (s *PaymentService) Approve(ctx context.Context, paymentID int64) (*models.Payment, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	duration := time.Duration(settings.SubscriptionDurationDays) * 24 * time.Hour

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txPaymentRepo := repository.NewPaymentRepository(tx)
	txUserRepo := repository.NewUserRepository(tx)
	txClientProfileRepo := repository.NewClientProfileRepository(tx)

	payment, err := txPaymentRepo.UpdateStatusIfCurrent(ctx, paymentID, models.PaymentPending, models.PaymentApproved)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.classifyProcessed(ctx, paymentID)
		}
		return nil, err
	}

	// Always a fresh full-duration grant from approval time; unused days from an
	// earlier window are lost.
	expiresAt := time.Now().Add(duration)
	if err := txUserRepo.ApplySubscription(ctx, payment.UserID, expiresAt); err != nil {
		return nil, err
	}

	if payment.PaymentType == models.PaymentClientActivation {
		if err := txClientProfileRepo.SetActivationStatus(ctx, payment.UserID, models.ActivationActive); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return payment, nil
}

// Reject flips a pending payment to rejected. The payer's paid-window fields are
// left untouched; a trainer still awaiting first approval drops to the rejected
// account state, and a client's pending-payment marker rolls back so the profile
// reads exactly as it did before submission.
func (s *PaymentService) Reject(ctx context.Context, paymentID int64) (*models.Payment, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txPaymentRepo := repository.NewPaymentRepository(tx)
	txUserRepo := repository.NewUserRepository(tx)
	txClientProfileRepo := repository.NewClientProfileRepository(tx)

	payment, err := txPaymentRepo.UpdateStatusIfCurrent(ctx, paymentID, models.PaymentPending, models.PaymentRejected)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, s.classifyProcessed(ctx, paymentID)
		}
		return nil, err
	}

	switch payment.PaymentType {
	case models.PaymentTrainerSubscription:
		user, err := txUserRepo.GetByIDForUpdate(ctx, payment.UserID)
		if err != nil {
			return nil, err
		}
		if user.AccountStatus != models.AccountActive {
			if err := txUserRepo.SetAccountStatus(ctx, payment.UserID, models.AccountRejected); err != nil {
				return nil, err
			}
		}
	case models.PaymentClientActivation:
		profile, err := txClientProfileRepo.GetByUserIDForUpdate(ctx, payment.UserID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		if err == nil && profile.ActivationStatus == models.ActivationPendingPayment {
			if err := txClientProfileRepo.SetActivationStatus(ctx, payment.UserID, models.ActivationUnassigned); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) classifyProcessed(ctx context.Context, paymentID int64) error {
	existing, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if existing.Status == models.PaymentRejected {
		return ErrAlreadyRejected
	}
	return ErrAlreadyApproved
}

func (s *PaymentService) ListPending(ctx context.Context, page, limit int) ([]models.Payment, int, error) {
	total, err := s.paymentRepo.CountPending(ctx)
	if err != nil {
		return nil, 0, err
	}
	payments, err := s.paymentRepo.ListPending(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (s *PaymentService) ListForUser(ctx context.Context, userID int64) ([]models.Payment, error) {
	return s.paymentRepo.ListByUser(ctx, userID)
}
