package repository

import (
	"context"

	"github.com/Durgesh2005696/gym-fitness-web-sub000/internal/models"
	"github.com/jackc/pgx/v5"
)

const paymentColumns = `id, user_id, amount, transaction_id, status, payment_type,
		created_at, updated_at`

type CreatePaymentInput struct {
	UserID        int64
	Amount        float64
	TransactionID string
	PaymentType   models.PaymentType
}

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var payment models.Payment
	err := row.Scan(
		&payment.ID,
		&payment.UserID,
		&payment.Amount,
		&payment.TransactionID,
		&payment.Status,
		&payment.PaymentType,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) Create(ctx context.Context, input CreatePaymentInput) (*models.Payment, error) {
	query := `
		INSERT INTO payments (user_id, amount, transaction_id, status, payment_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + paymentColumns + `
	`
	return scanPayment(r.db.QueryRow(ctx, query,
		input.UserID, input.Amount, input.TransactionID, models.PaymentPending, input.PaymentType))
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(r.db.QueryRow(ctx, query, id))
}

func (r *PaymentRepository) ListPending(ctx context.Context, limit, offset int) ([]models.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE status = $1
		ORDER BY created_at
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, models.PaymentPending, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *payment)
	}
	return payments, rows.Err()
}

func (r *PaymentRepository) CountPending(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM payments WHERE status = $1`, models.PaymentPending).
		Scan(&total)
	return total, err
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID int64) ([]models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE user_id = $1 ORDER BY id DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *payment)
	}
	return payments, rows.Err()
}

// UpdateStatusIfCurrent performs the transition as a single compare-and-swap so two
// concurrent admin decisions cannot both pass the pending guard. A pgx.ErrNoRows
// result means the payment is missing or already processed; the caller decides which.
func (r *PaymentRepository) UpdateStatusIfCurrent(ctx context.Context, paymentID int64, currentStatus, nextStatus models.PaymentStatus) (*models.Payment, error) {
	query := `
		UPDATE payments
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
		RETURNING ` + paymentColumns + `
	`
	return scanPayment(r.db.QueryRow(ctx, query, paymentID, currentStatus, nextStatus))
}
