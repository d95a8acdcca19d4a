package service

import (
	"context"
	"database/sql"
	"errors"

	"rentmatch-backend/internal/domain"
	"rentmatch-backend/internal/repository"
)

type documentService struct {
	docRepo     repository.DocumentRepository
	matchRepo   repository.MatchRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
}

func NewDocumentService(
	docRepo repository.DocumentRepository,
	matchRepo repository.MatchRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
) DocumentService {
	return &documentService{
		docRepo:     docRepo,
		matchRepo:   matchRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
	}
}

func (s *documentService) GetDocument(ctx context.Context, userID, documentID int32) (*domain.LeaseDocument, error) {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.New("Document not found")
		}
		return nil, err
	}
	if err := s.authorize(ctx, userID, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) ListListingDocuments(ctx context.Context, userID, listingID int32) ([]domain.LeaseDocument, error) {
	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if listing.HostID != userID && !user.IsAdmin() {
		return nil, ErrUnauthorized
	}
	return s.docRepo.ListByListing(ctx, listingID)
}

// authorize grants access to the uploader, either party of a match-bound
// document, the listing's host, and admins.
func (s *documentService) authorize(ctx context.Context, userID int32, doc *domain.LeaseDocument) error {
	if doc.UploadedBy == userID {
		return nil
	}
	if doc.MatchID != nil {
		m, err := s.matchRepo.GetByID(ctx, *doc.MatchID)
		if err == nil && (m.TenantID == userID || m.LandlordID == userID) {
			return nil
		}
	}
	listing, err := s.listingRepo.GetByID(ctx, doc.ListingID)
	if err == nil && listing.HostID == userID {
		return nil
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err == nil && user.IsAdmin() {
		return nil
	}
	return ErrUnauthorized
}
