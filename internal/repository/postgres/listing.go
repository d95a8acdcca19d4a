package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/repository"
)

type listingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) repository.ListingRepository {
	return &listingRepository{db: db}
}

const listingColumns = `id, host_id, title, COALESCE(description, ''), address, city, state, postal_code, latitude, longitude, bedrooms, bathrooms,
	wifi, parking, laundry, air_conditioning, furnished, pet_friendly,
	pet_rent_cents, pet_deposit_cents, security_deposit_cents, is_active, created_on, updated_on`

func scanListing(row interface{ Scan(...any) error }) (*domain.Listing, error) {
	l := &domain.Listing{}
	err := row.Scan(&l.ID, &l.HostID, &l.Title, &l.Description, &l.Address, &l.City, &l.State, &l.PostalCode, &l.Latitude, &l.Longitude, &l.Bedrooms, &l.Bathrooms,
		&l.Wifi, &l.Parking, &l.Laundry, &l.AirConditioning, &l.Furnished, &l.PetFriendly,
		&l.PetRentCents, &l.PetDepositCents, &l.SecurityDepositCents, &l.IsActive, &l.CreatedOn, &l.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *listingRepository) Create(ctx context.Context, l *domain.Listing) error {
	query := `INSERT INTO listings (host_id, title, description, address, city, state, postal_code, latitude, longitude, bedrooms, bathrooms,
	            wifi, parking, laundry, air_conditioning, furnished, pet_friendly,
	            pet_rent_cents, pet_deposit_cents, security_deposit_cents, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, l.HostID, l.Title, l.Description, l.Address, l.City, l.State, l.PostalCode, l.Latitude, l.Longitude, l.Bedrooms, l.Bathrooms,
		l.Wifi, l.Parking, l.Laundry, l.AirConditioning, l.Furnished, l.PetFriendly,
		l.PetRentCents, l.PetDepositCents, l.SecurityDepositCents, l.IsActive, now, now).Scan(&l.ID)
}

func (r *listingRepository) GetByID(ctx context.Context, id int32) (*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`
	l, err := scanListing(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if l.Pricing, err = r.loadPricing(ctx, id); err != nil {
		return nil, err
	}
	if l.Images, err = r.loadImages(ctx, id); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *listingRepository) loadPricing(ctx context.Context, listingID int32) ([]domain.MonthlyPricing, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, listing_id, months, price_cents, utilities_included FROM listing_monthly_pricing WHERE listing_id = $1 ORDER BY months`, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tiers []domain.MonthlyPricing
	for rows.Next() {
		var t domain.MonthlyPricing
		if err := rows.Scan(&t.ID, &t.ListingID, &t.Months, &t.PriceCents, &t.UtilitiesIncluded); err != nil {
			return nil, err
		}
		tiers = append(tiers, t)
	}
	return tiers, rows.Err()
}

func (r *listingRepository) loadImages(ctx context.Context, listingID int32) ([]domain.ListingImage, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, listing_id, url, rank FROM listing_images WHERE listing_id = $1 ORDER BY rank`, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []domain.ListingImage
	for rows.Next() {
		var img domain.ListingImage
		if err := rows.Scan(&img.ID, &img.ListingID, &img.URL, &img.Rank); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *listingRepository) Update(ctx context.Context, l *domain.Listing) error {
	query := `UPDATE listings SET title=$1, description=$2, address=$3, city=$4, state=$5, postal_code=$6, latitude=$7, longitude=$8, bedrooms=$9, bathrooms=$10,
	            wifi=$11, parking=$12, laundry=$13, air_conditioning=$14, furnished=$15, pet_friendly=$16,
	            pet_rent_cents=$17, pet_deposit_cents=$18, security_deposit_cents=$19, is_active=$20, updated_on=$21
	          WHERE id=$22`
	_, err := r.db.ExecContext(ctx, query, l.Title, l.Description, l.Address, l.City, l.State, l.PostalCode, l.Latitude, l.Longitude, l.Bedrooms, l.Bathrooms,
		l.Wifi, l.Parking, l.Laundry, l.AirConditioning, l.Furnished, l.PetFriendly,
		l.PetRentCents, l.PetDepositCents, l.SecurityDepositCents, l.IsActive, time.Now(), l.ID)
	return err
}

func (r *listingRepository) List(ctx context.Context, filter repository.ListingFilter) ([]domain.Listing, int32, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := `SELECT ` + listingColumns + ` FROM listings WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Search != "" {
		query += fmt.Sprintf(" AND (title ILIKE $%d OR address ILIKE $%d OR city ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.Active != nil {
		query += fmt.Sprintf(" AND is_active = $%d", argIdx)
		args = append(args, *filter.Active)
		argIdx++
	}
	if filter.CreatedAfter != nil {
		query += fmt.Sprintf(" AND created_on >= $%d", argIdx)
		args = append(args, *filter.CreatedAfter)
		argIdx++
	}
	if filter.CreatedBefore != nil {
		query += fmt.Sprintf(" AND created_on <= $%d", argIdx)
		args = append(args, *filter.CreatedBefore)
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

	var listings []domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, 0, err
		}
		listings = append(listings, *l)
	}
	return listings, count, rows.Err()
}

func (r *listingRepository) ReplacePricing(ctx context.Context, listingID int32, tiers []domain.MonthlyPricing) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM listing_monthly_pricing WHERE listing_id = $1`, listingID); err != nil {
		return err
	}
	query := `INSERT INTO listing_monthly_pricing (listing_id, months, price_cents, utilities_included) VALUES ($1, $2, $3, $4) RETURNING id`
	for i := range tiers {
		t := &tiers[i]
		t.ListingID = listingID
		if err := tx.QueryRowContext(ctx, query, listingID, t.Months, t.PriceCents, t.UtilitiesIncluded).Scan(&t.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *listingRepository) Copy(ctx context.Context, listingID, newOwnerID int32, titleSuffix string) (int32, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var newID int32
	copyQuery := `INSERT INTO listings (host_id, title, description, address, city, state, postal_code, latitude, longitude, bedrooms, bathrooms,
	                wifi, parking, laundry, air_conditioning, furnished, pet_friendly,
	                pet_rent_cents, pet_deposit_cents, security_deposit_cents, is_active, created_on, updated_on)
	              SELECT $1, title || $2, description, address, city, state, postal_code, latitude, longitude, bedrooms, bathrooms,
	                wifi, parking, laundry, air_conditioning, furnished, pet_friendly,
	                pet_rent_cents, pet_deposit_cents, security_deposit_cents, false, $3, $3
	              FROM listings WHERE id = $4 RETURNING id`
	now := time.Now()
	if err := tx.QueryRowContext(ctx, copyQuery, newOwnerID, titleSuffix, now, listingID).Scan(&newID); err != nil {
		return 0, err
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO listing_monthly_pricing (listing_id, months, price_cents, utilities_included)
	                                  SELECT $1, months, price_cents, utilities_included FROM listing_monthly_pricing WHERE listing_id = $2`, newID, listingID); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO listing_images (listing_id, url, rank)
	                                  SELECT $1, url, rank FROM listing_images WHERE listing_id = $2`, newID, listingID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return newID, nil
}
