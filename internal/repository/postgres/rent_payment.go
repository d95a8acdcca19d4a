package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/repository"
)

type rentPaymentRepository struct {
	db *sql.DB
}

func NewRentPaymentRepository(db *sql.DB) repository.RentPaymentRepository {
	return &rentPaymentRepository{db: db}
}

const rentPaymentColumns = `id, booking_id, amount_cents, due_date, is_paid, paid_on, is_overdue, created_on, updated_on`

func scanRentPayment(row interface{ Scan(...any) error }) (*domain.RentPayment, error) {
	p := &domain.RentPayment{}
	err := row.Scan(&p.ID, &p.BookingID, &p.AmountCents, &p.DueDate, &p.IsPaid, &p.PaidOn, &p.IsOverdue, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *rentPaymentRepository) GetByID(ctx context.Context, id int32) (*domain.RentPayment, error) {
	query := `SELECT ` + rentPaymentColumns + ` FROM rent_payments WHERE id = $1`
	return scanRentPayment(r.db.QueryRowContext(ctx, query, id))
}

func (r *rentPaymentRepository) ListByBooking(ctx context.Context, bookingID int32) ([]domain.RentPayment, error) {
	query := `SELECT ` + rentPaymentColumns + ` FROM rent_payments WHERE booking_id = $1 ORDER BY due_date`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.RentPayment
	for rows.Next() {
		p, err := scanRentPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func (r *rentPaymentRepository) AnyPaid(ctx context.Context, bookingID int32) (bool, error) {
	var count int32
	query := `SELECT count(*) FROM rent_payments WHERE booking_id = $1 AND is_paid = true`
	if err := r.db.QueryRowContext(ctx, query, bookingID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *rentPaymentRepository) Update(ctx context.Context, p *domain.RentPayment) error {
	query := `UPDATE rent_payments SET amount_cents=$1, due_date=$2, is_paid=$3, paid_on=$4, is_overdue=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, p.AmountCents, p.DueDate, p.IsPaid, p.PaidOn, p.IsOverdue, time.Now(), p.ID)
	return err
}

func (r *rentPaymentRepository) MarkPaid(ctx context.Context, id int32, at time.Time) error {
	query := `UPDATE rent_payments SET is_paid=true, paid_on=$1, is_overdue=false, updated_on=$1 WHERE id=$2 AND is_paid=false`
	res, err := r.db.ExecContext(ctx, query, at, id)
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

func (r *rentPaymentRepository) ListDueUnpaid(ctx context.Context, dueBy time.Time) ([]domain.RentPayment, error) {
	query := `SELECT ` + rentPaymentColumns + ` FROM rent_payments WHERE is_paid = false AND due_date <= $1 ORDER BY due_date`
	rows, err := r.db.QueryContext(ctx, query, dueBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.RentPayment
	for rows.Next() {
		p, err := scanRentPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func (r *rentPaymentRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	query := `UPDATE rent_payments SET is_overdue=true, updated_on=$1 WHERE is_paid=false AND is_overdue=false AND due_date < $1`
	res, err := r.db.ExecContext(ctx, query, asOf)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
