package postgres

import (
	"database/sql"

	"rentmatch-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.TripRepository
	repository.ListingRepository
	repository.MatchRepository
	repository.BookingRepository
	repository.RentPaymentRepository
	repository.PaymentTransactionRepository
	repository.ModificationRepository
	repository.NotificationRepository
	repository.DocumentRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                           db,
		UserRepository:               NewUserRepository(db),
		TripRepository:               NewTripRepository(db),
		ListingRepository:            NewListingRepository(db),
		MatchRepository:              NewMatchRepository(db),
		BookingRepository:            NewBookingRepository(db),
		RentPaymentRepository:        NewRentPaymentRepository(db),
		PaymentTransactionRepository: NewPaymentTransactionRepository(db),
		ModificationRepository:       NewModificationRepository(db),
		NotificationRepository:       NewNotificationRepository(db),
		DocumentRepository:           NewDocumentRepository(db),
	}
}
