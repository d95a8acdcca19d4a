package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/repository"
)

type paymentTransactionRepository struct {
	db *sql.DB
}

func NewPaymentTransactionRepository(db *sql.DB) repository.PaymentTransactionRepository {
	return &paymentTransactionRepository{db: db}
}

const transactionColumns = `id, booking_id, match_id, user_id, amount_cents, gateway, charge_ref, status, COALESCE(description, ''), created_on`

func scanTransaction(row interface{ Scan(...any) error }) (*domain.PaymentTransaction, error) {
	t := &domain.PaymentTransaction{}
	err := row.Scan(&t.ID, &t.BookingID, &t.MatchID, &t.UserID, &t.AmountCents, &t.Gateway, &t.ChargeRef, &t.Status, &t.Description, &t.CreatedOn)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *paymentTransactionRepository) Create(ctx context.Context, t *domain.PaymentTransaction) error {
	query := `INSERT INTO payment_transactions (booking_id, match_id, user_id, amount_cents, gateway, charge_ref, status, description, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query, t.BookingID, t.MatchID, t.UserID, t.AmountCents, t.Gateway, t.ChargeRef, t.Status, t.Description, time.Now()).Scan(&t.ID)
}

func (r *paymentTransactionRepository) ListByBooking(ctx context.Context, bookingID int32) ([]domain.PaymentTransaction, error) {
	return r.list(ctx, `SELECT `+transactionColumns+` FROM payment_transactions WHERE booking_id = $1 ORDER BY created_on DESC`, bookingID)
}

func (r *paymentTransactionRepository) ListByMatch(ctx context.Context, matchID int32) ([]domain.PaymentTransaction, error) {
	return r.list(ctx, `SELECT `+transactionColumns+` FROM payment_transactions WHERE match_id = $1 ORDER BY created_on DESC`, matchID)
}

func (r *paymentTransactionRepository) list(ctx context.Context, query string, arg int32) ([]domain.PaymentTransaction, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.PaymentTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *t)
	}
	return txs, rows.Err()
}
