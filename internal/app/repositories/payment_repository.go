package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/sisgo/internal/app/models"
	"github.com/emre/sisgo/internal/db"
	"github.com/emre/sisgo/internal/pkg/logger"
)

// Payment error types
var (
	// ErrPaymentNotFound is returned when a payment is not found.
	ErrPaymentNotFound = ErrNotFound // Use shared ErrNotFound
)

// PaymentRepository handles payment database operations
type PaymentRepository struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *PaymentRepository) q(ctx context.Context) db.Querier {
	return db.QuerierFromContext(ctx, r.pool)
}

// Create inserts a new payment and returns the generated id.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) (int64, error) {
	sql, args, err := r.sb.Insert("payments").
		Columns("student_id", "reference", "amount", "paid_at").
		Values(payment.StudentID, payment.Reference, payment.Amount, payment.PaidAt).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create payment SQL")
		return 0, fmt.Errorf("failed to build create payment query: %w", err)
	}

	var id int64
	err = r.q(ctx).QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create payment query")
		return 0, fmt.Errorf("error creating payment: %w", err)
	}

	return id, nil
}

// GetByID retrieves a payment by ID
func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*models.Payment, error) {
	sql, args, err := r.sb.Select("id", "student_id", "reference", "amount", "paid_at").
		From("payments").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get payment by ID SQL")
		return nil, fmt.Errorf("failed to build get payment query: %w", err)
	}

	payment := &models.Payment{}
	err = r.q(ctx).QueryRow(ctx, sql, args...).Scan(
		&payment.ID, &payment.StudentID, &payment.Reference, &payment.Amount, &payment.PaidAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		logger.Error().Err(err).Int64("paymentID", id).Msg("Error scanning payment row")
		return nil, fmt.Errorf("error getting payment by ID: %w", err)
	}

	return payment, nil
}

// GetAll retrieves all payments
func (r *PaymentRepository) GetAll(ctx context.Context) ([]*models.Payment, error) {
	sql, args, err := r.sb.Select("id", "student_id", "reference", "amount", "paid_at").
		From("payments").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get all payments SQL")
		return nil, fmt.Errorf("failed to build get all payments query: %w", err)
	}

	rows, err := r.q(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all payments query")
		return nil, fmt.Errorf("error querying payments: %w", err)
	}
	defer rows.Close()

	payments := []*models.Payment{}
	for rows.Next() {
		payment := &models.Payment{}
		if err := rows.Scan(&payment.ID, &payment.StudentID, &payment.Reference, &payment.Amount, &payment.PaidAt); err != nil {
			return nil, fmt.Errorf("error scanning payment row: %w", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}

	return payments, nil
}

// Update updates an existing payment
func (r *PaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	sql, args, err := r.sb.Update("payments").
		SetMap(map[string]interface{}{
			"student_id": payment.StudentID,
			"reference":  payment.Reference,
			"amount":     payment.Amount,
			"paid_at":    payment.PaidAt,
		}).
		Where(squirrel.Eq{"id": payment.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update payment SQL")
		return fmt.Errorf("failed to build update payment query: %w", err)
	}

	cmdTag, err := r.q(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("paymentID", payment.ID).Msg("Error executing update payment query")
		return fmt.Errorf("error updating payment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// Delete deletes a payment by ID
func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("payments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete payment SQL")
		return fmt.Errorf("failed to build delete payment query: %w", err)
	}

	cmdTag, err := r.q(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("paymentID", id).Msg("Error executing delete payment query")
		return fmt.Errorf("error deleting payment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}

	return nil
}
