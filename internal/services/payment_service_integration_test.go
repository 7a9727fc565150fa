package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/models"
	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

var (
	testDBOnce sync.Once
	testDBPool *pgxpool.Pool
	testDBErr  error
)

func TestPaymentServiceApproveGrantsSubscription(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationPaymentService(t, ctx, pool)

	trainerID := createTestAccount(t, ctx, pool, models.RoleTrainer)
	t.Cleanup(func() { cleanupTestUsers(t, ctx, pool, trainerID) })

	trainer := loadTestUser(t, ctx, pool, trainerID)
	payment, err := service.Submit(ctx, trainer, SubmitPaymentInput{
		Amount:        6000,
		TransactionID: "INTEGRATION-TXN-1",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if payment.Status != models.PaymentPending {
		t.Fatalf("expected pending payment, got %q", payment.Status)
	}
	if got := loadTestUser(t, ctx, pool, trainerID).AccountStatus; got != models.AccountPaymentSubmitted {
		t.Fatalf("expected payment_submitted after submit, got %q", got)
	}

	approved, err := service.Approve(ctx, payment.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != models.PaymentApproved {
		t.Fatalf("expected approved payment, got %q", approved.Status)
	}

	trainer = loadTestUser(t, ctx, pool, trainerID)
	if !trainer.IsActive || trainer.AccountStatus != models.AccountActive {
		t.Fatalf("expected active trainer after approval, got active=%v status=%q",
			trainer.IsActive, trainer.AccountStatus)
	}
	if trainer.SubscriptionExpiresAt == nil {
		t.Fatalf("expected an expiry after approval")
	}
	expectedExpiry := time.Now().Add(30 * 24 * time.Hour)
	if diff := trainer.SubscriptionExpiresAt.Sub(expectedExpiry); diff < -time.Minute || diff > time.Minute {
		t.Fatalf("expected expiry near %v, got %v", expectedExpiry, trainer.SubscriptionExpiresAt)
	}
}

func TestPaymentServiceSecondApproveIsRejected(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationPaymentService(t, ctx, pool)

	trainerID := createTestAccount(t, ctx, pool, models.RoleTrainer)
	t.Cleanup(func() { cleanupTestUsers(t, ctx, pool, trainerID) })

	trainer := loadTestUser(t, ctx, pool, trainerID)
	payment, err := service.Submit(ctx, trainer, SubmitPaymentInput{
		Amount:        6000,
		TransactionID: "INTEGRATION-TXN-2",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if _, err := service.Approve(ctx, payment.ID); err != nil {
		t.Fatalf("first Approve: %v", err)
	}
	firstExpiry := loadTestUser(t, ctx, pool, trainerID).SubscriptionExpiresAt

	if _, err := service.Approve(ctx, payment.ID); !errors.Is(err, ErrAlreadyApproved) {
		t.Fatalf("expected ErrAlreadyApproved on second approve, got %v", err)
	}

	// The compare-and-swap failed, so the grant must not have run a second time.
	secondExpiry := loadTestUser(t, ctx, pool, trainerID).SubscriptionExpiresAt
	if firstExpiry == nil || secondExpiry == nil || !firstExpiry.Equal(*secondExpiry) {
		t.Fatalf("expected expiry unchanged by the failed approve, got %v then %v",
			firstExpiry, secondExpiry)
	}
}

func TestPaymentServiceRejectRestoresClientProfile(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationPaymentService(t, ctx, pool)

	trainerID := createTestAccount(t, ctx, pool, models.RoleTrainer)
	clientID := createTestAccount(t, ctx, pool, models.RoleClient)
	t.Cleanup(func() { cleanupTestUsers(t, ctx, pool, trainerID, clientID) })

	profileRepo := repository.NewClientProfileRepository(pool)
	if err := profileRepo.AssignTrainer(ctx, clientID, trainerID); err != nil {
		t.Fatalf("AssignTrainer: %v", err)
	}

	client := loadTestUser(t, ctx, pool, clientID)
	payment, err := service.Submit(ctx, client, SubmitPaymentInput{
		Amount:        6000,
		TransactionID: "INTEGRATION-TXN-3",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if payment.PaymentType != models.PaymentClientActivation {
		t.Fatalf("expected client_activation payment, got %q", payment.PaymentType)
	}

	profile, err := profileRepo.GetByUserID(ctx, clientID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if profile.ActivationStatus != models.ActivationPendingPayment {
		t.Fatalf("expected pending_payment after submit, got %q", profile.ActivationStatus)
	}

	if _, err := service.Reject(ctx, payment.ID); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	// The profile reads exactly as it did before the submission.
	profile, err = profileRepo.GetByUserID(ctx, clientID)
	if err != nil {
		t.Fatalf("GetByUserID after reject: %v", err)
	}
	if profile.ActivationStatus != models.ActivationUnassigned {
		t.Fatalf("expected unassigned after reject, got %q", profile.ActivationStatus)
	}
	if profile.TrainerID == nil || *profile.TrainerID != trainerID {
		t.Fatalf("expected trainer assignment untouched by reject")
	}
	client = loadTestUser(t, ctx, pool, clientID)
	if client.IsActive || client.SubscriptionExpiresAt != nil {
		t.Fatalf("expected no paid window after reject, got active=%v expiry=%v",
			client.IsActive, client.SubscriptionExpiresAt)
	}
}

func TestPaymentServiceSubmitRequiresTrainerForClients(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationPaymentService(t, ctx, pool)

	clientID := createTestAccount(t, ctx, pool, models.RoleClient)
	t.Cleanup(func() { cleanupTestUsers(t, ctx, pool, clientID) })

	client := loadTestUser(t, ctx, pool, clientID)
	_, err := service.Submit(ctx, client, SubmitPaymentInput{
		Amount:        6000,
		TransactionID: "INTEGRATION-TXN-4",
	})
	if !errors.Is(err, ErrNoTrainerAssigned) {
		t.Fatalf("expected ErrNoTrainerAssigned, got %v", err)
	}
}

func integrationTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	testDBOnce.Do(func() {
		_ = godotenv.Load(".env")
		_ = godotenv.Load(filepath.Join("..", "..", ".env"))

		dbURL := os.Getenv("DB_URL")
		if dbURL == "" {
			testDBErr = fmt.Errorf("DB_URL is not set")
			return
		}

		cfg, err := pgxpool.ParseConfig(dbURL)
		if err != nil {
			testDBErr = err
			return
		}

		testDBPool, testDBErr = pgxpool.NewWithConfig(context.Background(), cfg)
		if testDBErr != nil {
			return
		}
		testDBErr = testDBPool.Ping(context.Background())
	})

	if testDBErr != nil {
		t.Skipf("skipping integration test: %v", testDBErr)
	}
	return testDBPool
}

func newIntegrationPaymentService(t *testing.T, ctx context.Context, pool *pgxpool.Pool) *PaymentService {
	t.Helper()

	settingsRepo := repository.NewSettingsRepository(pool)
	if err := settingsRepo.EnsureDefaults(ctx, 30, 6000, 6000); err != nil {
		t.Fatalf("EnsureDefaults: %v", err)
	}
	return NewPaymentService(pool, repository.NewPaymentRepository(pool), settingsRepo)
}

func createTestAccount(t *testing.T, ctx context.Context, pool *pgxpool.Pool, role models.Role) int64 {
	t.Helper()

	userRepo := repository.NewUserRepository(pool)
	user := &models.User{
		Name:          fmt.Sprintf("Payment Test %s", role),
		Email:         fmt.Sprintf("payment-test-%s-%d@example.com", role, time.Now().UnixNano()),
		PasswordHash:  "test-hash",
		Role:          role,
		AccountStatus: models.AccountPending,
	}
	if err := userRepo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser(%s): %v", role, err)
	}

	switch role {
	case models.RoleClient:
		if err := repository.NewClientProfileRepository(pool).CreateEmpty(ctx, user.ID); err != nil {
			t.Fatalf("CreateEmpty client profile: %v", err)
		}
	case models.RoleTrainer:
		if err := repository.NewTrainerProfileRepository(pool).CreateEmpty(ctx, user.ID); err != nil {
			t.Fatalf("CreateEmpty trainer profile: %v", err)
		}
	}
	return user.ID
}

func loadTestUser(t *testing.T, ctx context.Context, pool *pgxpool.Pool, id int64) *models.User {
	t.Helper()

	user, err := repository.NewUserRepository(pool).GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID(%d): %v", id, err)
	}
	return user
}

func cleanupTestUsers(t *testing.T, ctx context.Context, pool *pgxpool.Pool, userIDs ...int64) {
	t.Helper()

	if len(userIDs) == 0 {
		return
	}

	if _, err := pool.Exec(ctx, "DELETE FROM payments WHERE user_id = ANY($1)", userIDs); err != nil {
		t.Fatalf("cleanup payments: %v", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM users WHERE id = ANY($1)", userIDs); err != nil {
		t.Fatalf("cleanup users: %v", err)
	}
}
