package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/repository"
)

type documentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) repository.DocumentRepository {
	return &documentRepository{db: db}
}

const documentColumns = `id, listing_id, match_id, name, url, status, uploaded_by, created_on, updated_on`

func scanDocument(row interface{ Scan(...any) error }) (*domain.LeaseDocument, error) {
	d := &domain.LeaseDocument{}
	err := row.Scan(&d.ID, &d.ListingID, &d.MatchID, &d.Name, &d.URL, &d.Status, &d.UploadedBy, &d.CreatedOn, &d.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *documentRepository) Create(ctx context.Context, d *domain.LeaseDocument) error {
	query := `INSERT INTO lease_documents (listing_id, match_id, name, url, status, uploaded_by, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, d.ListingID, d.MatchID, d.Name, d.URL, d.Status, d.UploadedBy, now, now).Scan(&d.ID)
}

func (r *documentRepository) GetByID(ctx context.Context, id int32) (*domain.LeaseDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM lease_documents WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, query, id))
}

func (r *documentRepository) GetByMatch(ctx context.Context, matchID int32) (*domain.LeaseDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM lease_documents WHERE match_id = $1 ORDER BY created_on DESC LIMIT 1`
	return scanDocument(r.db.QueryRowContext(ctx, query, matchID))
}

func (r *documentRepository) ListByListing(ctx context.Context, listingID int32) ([]domain.LeaseDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM lease_documents WHERE listing_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.LeaseDocument
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *d)
	}
	return docs, rows.Err()
}

func (r *documentRepository) Update(ctx context.Context, d *domain.LeaseDocument) error {
	query := `UPDATE lease_documents SET name=$1, url=$2, status=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, d.Name, d.URL, d.Status, time.Now(), d.ID)
	return err
}
