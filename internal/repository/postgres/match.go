package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/repository"
)

type matchRepository struct {
	db *sql.DB
}

func NewMatchRepository(db *sql.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

const matchColumns = `id, trip_id, listing_id, tenant_id, landlord_id, monthly_rent_cents, lease_document_id, tenant_signed_on, landlord_signed_on, payment_authorized_on, created_on, updated_on`

func scanMatch(row interface{ Scan(...any) error }) (*domain.Match, error) {
	m := &domain.Match{}
	err := row.Scan(&m.ID, &m.TripID, &m.ListingID, &m.TenantID, &m.LandlordID, &m.MonthlyRentCents, &m.LeaseDocumentID, &m.TenantSignedOn, &m.LandlordSignedOn, &m.PaymentAuthorizedOn, &m.CreatedOn, &m.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *matchRepository) Create(ctx context.Context, m *domain.Match) error {
	query := `INSERT INTO matches (trip_id, listing_id, tenant_id, landlord_id, monthly_rent_cents, lease_document_id, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, m.TripID, m.ListingID, m.TenantID, m.LandlordID, m.MonthlyRentCents, m.LeaseDocumentID, now, now).Scan(&m.ID)
}

func (r *matchRepository) GetByID(ctx context.Context, id int32) (*domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *matchRepository) Update(ctx context.Context, m *domain.Match) error {
	query := `UPDATE matches SET monthly_rent_cents=$1, lease_document_id=$2, tenant_signed_on=$3, landlord_signed_on=$4, payment_authorized_on=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, m.MonthlyRentCents, m.LeaseDocumentID, m.TenantSignedOn, m.LandlordSignedOn, m.PaymentAuthorizedOn, time.Now(), m.ID)
	return err
}

func (r *matchRepository) SetTenantSigned(ctx context.Context, id int32, at time.Time) error {
	query := `UPDATE matches SET tenant_signed_on=$1, updated_on=$1 WHERE id=$2 AND tenant_signed_on IS NULL`
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

func (r *matchRepository) SetPaymentAuthorized(ctx context.Context, id int32, at time.Time) error {
	query := `UPDATE matches SET payment_authorized_on=$1, updated_on=$1 WHERE id=$2 AND payment_authorized_on IS NULL`
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
