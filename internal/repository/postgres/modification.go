package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/repository"
)

type modificationRepository struct {
	db *sql.DB
}

func NewModificationRepository(db *sql.DB) repository.ModificationRepository {
	return &modificationRepository{db: db}
}

const bookingModColumns = `id, booking_id, requestor_id, recipient_id, new_start_date, new_end_date, new_monthly_rent_cents, COALESCE(reason, ''), status, resolved_on, created_on`

func scanBookingMod(row interface{ Scan(...any) error }) (*domain.BookingModification, error) {
	m := &domain.BookingModification{}
	err := row.Scan(&m.ID, &m.BookingID, &m.RequestorID, &m.RecipientID, &m.NewStartDate, &m.NewEndDate, &m.NewMonthlyRentCents, &m.Reason, &m.Status, &m.ResolvedOn, &m.CreatedOn)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *modificationRepository) CreateBookingModification(ctx context.Context, m *domain.BookingModification) error {
	query := `INSERT INTO booking_modifications (booking_id, requestor_id, recipient_id, new_start_date, new_end_date, new_monthly_rent_cents, reason, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query, m.BookingID, m.RequestorID, m.RecipientID, m.NewStartDate, m.NewEndDate, m.NewMonthlyRentCents, m.Reason, m.Status, time.Now()).Scan(&m.ID)
}

func (r *modificationRepository) GetBookingModification(ctx context.Context, id int32) (*domain.BookingModification, error) {
	query := `SELECT ` + bookingModColumns + ` FROM booking_modifications WHERE id = $1`
	return scanBookingMod(r.db.QueryRowContext(ctx, query, id))
}

func (r *modificationRepository) ResolveBookingModification(ctx context.Context, id int32, status domain.ModificationStatus, at time.Time) error {
	query := `UPDATE booking_modifications SET status=$1, resolved_on=$2 WHERE id=$3 AND status=$4`
	res, err := r.db.ExecContext(ctx, query, status, at, id, domain.ModificationStatusPending)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *modificationRepository) ListBookingModifications(ctx context.Context, bookingID int32) ([]domain.BookingModification, error) {
	query := `SELECT ` + bookingModColumns + ` FROM booking_modifications WHERE booking_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mods []domain.BookingModification
	for rows.Next() {
		m, err := scanBookingMod(rows)
		if err != nil {
			return nil, err
		}
		mods = append(mods, *m)
	}
	return mods, rows.Err()
}

const paymentModColumns = `id, rent_payment_id, requestor_id, recipient_id, new_amount_cents, new_due_date, COALESCE(reason, ''), status, resolved_on, created_on`

func scanPaymentMod(row interface{ Scan(...any) error }) (*domain.PaymentModification, error) {
	m := &domain.PaymentModification{}
	err := row.Scan(&m.ID, &m.RentPaymentID, &m.RequestorID, &m.RecipientID, &m.NewAmountCents, &m.NewDueDate, &m.Reason, &m.Status, &m.ResolvedOn, &m.CreatedOn)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *modificationRepository) CreatePaymentModification(ctx context.Context, m *domain.PaymentModification) error {
	query := `INSERT INTO payment_modifications (rent_payment_id, requestor_id, recipient_id, new_amount_cents, new_due_date, reason, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, m.RentPaymentID, m.RequestorID, m.RecipientID, m.NewAmountCents, m.NewDueDate, m.Reason, m.Status, time.Now()).Scan(&m.ID)
}

func (r *modificationRepository) GetPaymentModification(ctx context.Context, id int32) (*domain.PaymentModification, error) {
	query := `SELECT ` + paymentModColumns + ` FROM payment_modifications WHERE id = $1`
	return scanPaymentMod(r.db.QueryRowContext(ctx, query, id))
}

func (r *modificationRepository) ResolvePaymentModification(ctx context.Context, id int32, status domain.ModificationStatus, at time.Time) error {
	query := `UPDATE payment_modifications SET status=$1, resolved_on=$2 WHERE id=$3 AND status=$4`
	res, err := r.db.ExecContext(ctx, query, status, at, id, domain.ModificationStatusPending)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *modificationRepository) ListPaymentModifications(ctx context.Context, rentPaymentID int32) ([]domain.PaymentModification, error) {
	query := `SELECT ` + paymentModColumns + ` FROM payment_modifications WHERE rent_payment_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, rentPaymentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mods []domain.PaymentModification
	for rows.Next() {
		m, err := scanPaymentMod(rows)
		if err != nil {
			return nil, err
		}
		mods = append(mods, *m)
	}
	return mods, rows.Err()
}
