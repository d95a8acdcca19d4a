package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/logger"
	"rentmatch-backend/internal/repository"
)

type listingAdminService struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	emailSvc    EmailService
	noteRepo    repository.NotificationRepository
}

func NewListingAdminService(
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	emailSvc EmailService,
	noteRepo repository.NotificationRepository,
) ListingAdminService {
	return &listingAdminService{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
		noteRepo:    noteRepo,
	}
}

func (s *listingAdminService) requireAdmin(ctx context.Context, adminID int32) error {
	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil || !admin.IsAdmin() {
		return ErrUnauthorized
	}
	return nil
}

func (s *listingAdminService) GetAllListings(ctx context.Context, adminID int32, filter repository.ListingFilter) ([]domain.ListingWithHost, int32, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, 0, err
	}

	listings, count, err := s.listingRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.ListingWithHost, 0, len(listings))
	for _, l := range listings {
		// Owner lookups tolerate soft-deleted hosts: the listing is orphaned,
		// not broken.
		host, err := s.userRepo.GetByID(ctx, l.HostID)
		if err != nil {
			host = nil
		}
		out = append(out, domain.ListingWithHost{Listing: l, Host: domain.SummarizeHost(host)})
	}
	return out, count, nil
}

func (s *listingAdminService) UpdateListing(ctx context.Context, adminID, listingID int32, updated *domain.Listing, tiers []domain.MonthlyPricing, comment string) (*domain.Listing, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	existing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	updated.ID = existing.ID
	updated.HostID = existing.HostID
	if err := s.listingRepo.Update(ctx, updated); err != nil {
		return nil, err
	}
	if tiers != nil {
		if err := s.listingRepo.ReplacePricing(ctx, listingID, tiers); err != nil {
			return nil, err
		}
	}

	host, err := s.userRepo.GetByID(ctx, existing.HostID)
	if err == nil && host.DeletedOn == nil {
		if err := s.emailSvc.SendListingUpdatedNotification(ctx, host.Email, host.Name, updated.Title, comment); err != nil {
			logger.Error("Failed to send listing update email", "listing_id", listingID, "error", err)
		}
		notif := &domain.Notification{
			UserID:  host.ID,
			Title:   "Listing Updated",
			Message: fmt.Sprintf("An administrator updated your listing %s: %s", updated.Title, comment),
			Attributes: map[string]string{
				"type":       "LISTING_UPDATED",
				"listing_id": fmt.Sprintf("%d", listingID),
			},
		}
		_ = s.noteRepo.Create(ctx, notif)
	}

	return s.listingRepo.GetByID(ctx, listingID)
}

func (s *listingAdminService) CopyListingToAdmin(ctx context.Context, adminID, listingID int32) (*domain.Listing, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	if _, err := s.listingRepo.GetByID(ctx, listingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	newID, err := s.listingRepo.Copy(ctx, listingID, adminID, " (Copy)")
	if err != nil {
		return nil, err
	}
	return s.listingRepo.GetByID(ctx, newID)
}
