package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, tenant_id, listing_id, trip_id, match_id, start_date, end_date, monthly_rent_cents, status, COALESCE(cancel_reason, ''), created_on, updated_on`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(&b.ID, &b.TenantID, &b.ListingID, &b.TripID, &b.MatchID, &b.StartDate, &b.EndDate, &b.MonthlyRentCents, &b.Status, &b.CancelReason, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.db.QueryRowContext(ctx, query, id))
}

func (r *bookingRepository) GetByMatchID(ctx context.Context, matchID int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE match_id = $1`
	return scanBooking(r.db.QueryRowContext(ctx, query, matchID))
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET start_date=$1, end_date=$2, monthly_rent_cents=$3, status=$4, cancel_reason=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, b.StartDate, b.EndDate, b.MonthlyRentCents, b.Status, b.CancelReason, time.Now(), b.ID)
	return err
}

func (r *bookingRepository) List(ctx context.Context, filter repository.BookingFilter) ([]domain.Booking, int32, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND tenant_id IN (SELECT id FROM users WHERE name ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.StartAfter != nil {
		query += fmt.Sprintf(" AND start_date >= $%d", argIdx)
		args = append(args, *filter.StartAfter)
		argIdx++
	}
	if filter.EndBefore != nil {
		query += fmt.Sprintf(" AND end_date <= $%d", argIdx)
		args = append(args, *filter.EndBefore)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) ListStatusStartedBy(ctx context.Context, status domain.BookingStatus, cutoff time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = $1 AND start_date <= $2 ORDER BY id`
	return r.queryBookings(ctx, query, status, cutoff)
}

func (r *bookingRepository) ListStatusEndedBy(ctx context.Context, status domain.BookingStatus, cutoff time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = $1 AND end_date < $2 ORDER BY id`
	return r.queryBookings(ctx, query, status, cutoff)
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args ...interface{}) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) CreateWithSchedule(ctx context.Context, b *domain.Booking, schedule []domain.RentPayment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO bookings (tenant_id, listing_id, trip_id, match_id, start_date, end_date, monthly_rent_cents, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, b.TenantID, b.ListingID, b.TripID, b.MatchID, b.StartDate, b.EndDate, b.MonthlyRentCents, b.Status, now, now).Scan(&b.ID); err != nil {
		return err
	}

	payQuery := `INSERT INTO rent_payments (booking_id, amount_cents, due_date, is_paid, is_overdue, created_on, updated_on)
	             VALUES ($1, $2, $3, false, false, $4, $5) RETURNING id`
	for i := range schedule {
		p := &schedule[i]
		p.BookingID = b.ID
		if err := tx.QueryRowContext(ctx, payQuery, b.ID, p.AmountCents, p.DueDate, now, now).Scan(&p.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *bookingRepository) ApplyUpdate(ctx context.Context, b *domain.Booking, update repository.BookingUpdate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	if update.StartDate != nil {
		b.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		b.EndDate = *update.EndDate
	}
	rentChanged := false
	if update.MonthlyRentCents != nil && *update.MonthlyRentCents != b.MonthlyRentCents {
		b.MonthlyRentCents = *update.MonthlyRentCents
		rentChanged = true
	}
	if update.Status != nil {
		b.Status = *update.Status
	}

	query := `UPDATE bookings SET start_date=$1, end_date=$2, monthly_rent_cents=$3, status=$4, updated_on=$5 WHERE id=$6`
	if _, err := tx.ExecContext(ctx, query, b.StartDate, b.EndDate, b.MonthlyRentCents, b.Status, now, b.ID); err != nil {
		return err
	}

	// Rent changes propagate to the linked match in the same transaction so
	// the two rows cannot drift apart.
	if rentChanged && b.MatchID != nil {
		matchQuery := `UPDATE matches SET monthly_rent_cents=$1, updated_on=$2 WHERE id=$3`
		if _, err := tx.ExecContext(ctx, matchQuery, b.MonthlyRentCents, now, *b.MatchID); err != nil {
			return err
		}
	}

	if g := update.Guests; g != nil {
		tripQuery := `UPDATE trips SET
		                num_adults = COALESCE($1, num_adults),
		                num_children = COALESCE($2, num_children),
		                num_pets = COALESCE($3, num_pets),
		                updated_on = $4
		              WHERE id = $5`
		if _, err := tx.ExecContext(ctx, tripQuery, g.NumAdults, g.NumChildren, g.NumPets, now, b.TripID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *bookingRepository) RevertToMatch(ctx context.Context, bookingID int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM payment_transactions WHERE booking_id = $1`, bookingID); err != nil {
		return err
	}
	// Guarded delete: a rent payment marked paid since the service-level
	// check aborts the whole transaction.
	if _, err := tx.ExecContext(ctx, `DELETE FROM rent_payments WHERE booking_id = $1 AND is_paid = false`, bookingID); err != nil {
		return err
	}
	var remaining int32
	if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM rent_payments WHERE booking_id = $1`, bookingID).Scan(&remaining); err != nil {
		return err
	}
	if remaining > 0 {
		return fmt.Errorf("booking %d has paid rent payments", bookingID)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, bookingID); err != nil {
		return err
	}

	return tx.Commit()
}
