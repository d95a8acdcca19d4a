package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/repository"
)

type tripRepository struct {
	db *sql.DB
}

func NewTripRepository(db *sql.DB) repository.TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) Create(ctx context.Context, t *domain.Trip) error {
	query := `INSERT INTO trips (tenant_id, start_date, end_date, num_adults, num_children, num_pets, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, t.TenantID, t.StartDate, t.EndDate, t.NumAdults, t.NumChildren, t.NumPets, now, now).Scan(&t.ID)
}

func (r *tripRepository) GetByID(ctx context.Context, id int32) (*domain.Trip, error) {
	t := &domain.Trip{}
	query := `SELECT id, tenant_id, start_date, end_date, num_adults, num_children, num_pets, created_on, updated_on FROM trips WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.TenantID, &t.StartDate, &t.EndDate, &t.NumAdults, &t.NumChildren, &t.NumPets, &t.CreatedOn, &t.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *tripRepository) Update(ctx context.Context, t *domain.Trip) error {
	query := `UPDATE trips SET start_date=$1, end_date=$2, num_adults=$3, num_children=$4, num_pets=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, t.StartDate, t.EndDate, t.NumAdults, t.NumChildren, t.NumPets, time.Now(), t.ID)
	return err
}
