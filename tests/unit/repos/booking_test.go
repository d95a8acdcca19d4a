package repos

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/repository"
	"rentmatch-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "tenant_id", "listing_id", "trip_id", "match_id", "start_date", "end_date", "monthly_rent_cents", "status", "cancel_reason", "created_on", "updated_on"})
}

func TestBookingRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := bookingRows().
			AddRow(1, 10, 20, 30, 40, time.Now(), time.Now().AddDate(0, 6, 0), 150000, "RESERVED", "", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(rows)

		booking, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.NotNil(t, booking)
		assert.Equal(t, int32(1), booking.ID)
		assert.Equal(t, domain.BookingStatusReserved, booking.Status)
		assert.Equal(t, int32(40), *booking.MatchID)
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
			WithArgs(int32(99)).
			WillReturnError(sql.ErrNoRows)

		booking, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, booking)
	})
}

func TestBookingRepository_GetByMatchID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := bookingRows().
			AddRow(5, 10, 20, 30, 7, time.Now(), time.Now().AddDate(0, 3, 0), 120000, "ACTIVE", "", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE match_id = \\$1").
			WithArgs(int32(7)).
			WillReturnRows(rows)

		booking, err := repo.GetByMatchID(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), booking.ID)
	})
}

func TestBookingRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Filter By Status", func(t *testing.T) {
		status := domain.BookingStatusReserved

		mock.ExpectQuery("SELECT count").
			WithArgs(status).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		rows := bookingRows().
			AddRow(1, 10, 20, 30, nil, time.Now(), time.Now().AddDate(0, 6, 0), 150000, "RESERVED", "", time.Now(), time.Now()).
			AddRow(2, 11, 21, 31, nil, time.Now(), time.Now().AddDate(0, 6, 0), 160000, "RESERVED", "", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE 1=1 AND status = \\$1").
			WithArgs(status, int32(20), int32(0)).
			WillReturnRows(rows)

		bookings, count, err := repo.List(ctx, repository.BookingFilter{Status: &status})
		assert.NoError(t, err)
		assert.Equal(t, int32(2), count)
		assert.Len(t, bookings, 2)
	})
}

func TestBookingRepository_CreateWithSchedule(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		matchID := int32(40)
		booking := &domain.Booking{
			TenantID:         10,
			ListingID:        20,
			TripID:           30,
			MatchID:          &matchID,
			StartDate:        time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			EndDate:          time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
			MonthlyRentCents: 150000,
			Status:           domain.BookingStatusReserved,
		}
		schedule := []domain.RentPayment{
			{AmountCents: 82258, DueDate: booking.StartDate},
			{AmountCents: 150000, DueDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		}

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO bookings").
			WithArgs(booking.TenantID, booking.ListingID, booking.TripID, booking.MatchID, booking.StartDate, booking.EndDate, booking.MonthlyRentCents, booking.Status, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery("INSERT INTO rent_payments").
			WithArgs(int32(1), schedule[0].AmountCents, schedule[0].DueDate, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
		mock.ExpectQuery("INSERT INTO rent_payments").
			WithArgs(int32(1), schedule[1].AmountCents, schedule[1].DueDate, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(101))
		mock.ExpectCommit()

		err := repo.CreateWithSchedule(ctx, booking, schedule)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), booking.ID)
		assert.Equal(t, int32(1), schedule[0].BookingID)
		assert.Equal(t, int32(100), schedule[0].ID)
	})
}

func TestBookingRepository_ApplyUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Rent Change Propagates To Match", func(t *testing.T) {
		matchID := int32(40)
		booking := &domain.Booking{
			ID:               1,
			TripID:           30,
			MatchID:          &matchID,
			StartDate:        time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			EndDate:          time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
			MonthlyRentCents: 150000,
			Status:           domain.BookingStatusReserved,
		}
		newRent := int32(160000)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE bookings SET").
			WithArgs(booking.StartDate, booking.EndDate, newRent, booking.Status, sqlmock.AnyArg(), booking.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE matches SET monthly_rent_cents").
			WithArgs(newRent, sqlmock.AnyArg(), matchID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.ApplyUpdate(ctx, booking, repository.BookingUpdate{MonthlyRentCents: &newRent})
		assert.NoError(t, err)
		assert.Equal(t, newRent, booking.MonthlyRentCents)
	})

	t.Run("Unchanged Rent Skips Match Update", func(t *testing.T) {
		matchID := int32(40)
		booking := &domain.Booking{
			ID:               1,
			TripID:           30,
			MatchID:          &matchID,
			StartDate:        time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			EndDate:          time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
			MonthlyRentCents: 150000,
			Status:           domain.BookingStatusReserved,
		}
		sameRent := booking.MonthlyRentCents

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE bookings SET").
			WithArgs(booking.StartDate, booking.EndDate, sameRent, booking.Status, sqlmock.AnyArg(), booking.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.ApplyUpdate(ctx, booking, repository.BookingUpdate{MonthlyRentCents: &sameRent})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_RevertToMatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM payment_transactions WHERE booking_id = \\$1").
			WithArgs(int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM rent_payments WHERE booking_id = \\$1 AND is_paid = false").
			WithArgs(int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 6))
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM rent_payments WHERE booking_id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec("DELETE FROM bookings WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.RevertToMatch(ctx, 1)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Paid Payment Aborts Transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM payment_transactions WHERE booking_id = \\$1").
			WithArgs(int32(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM rent_payments WHERE booking_id = \\$1 AND is_paid = false").
			WithArgs(int32(2)).
			WillReturnResult(sqlmock.NewResult(0, 5))
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM rent_payments WHERE booking_id = \\$1").
			WithArgs(int32(2)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		err := repo.RevertToMatch(ctx, 2)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "paid rent payments")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_ListStatusStartedBy(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		cutoff := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		rows := bookingRows().
			AddRow(1, 10, 20, 30, nil, cutoff.AddDate(0, 0, -3), cutoff.AddDate(0, 6, 0), 150000, "RESERVED", "", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE status = \\$1 AND start_date <= \\$2").
			WithArgs(domain.BookingStatusReserved, cutoff).
			WillReturnRows(rows)

		bookings, err := repo.ListStatusStartedBy(ctx, domain.BookingStatusReserved, cutoff)
		assert.NoError(t, err)
		assert.Len(t, bookings, 1)
	})
}
