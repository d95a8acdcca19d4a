package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentmatch-backend/internal/config"
	"rentmatch-backend/internal/security"
	"rentmatch-backend/internal/service"
)

// Services bundles everything the router needs.
type Services struct {
	Auth          service.AuthService
	Bookings      service.BookingAdminService
	Listings      service.ListingAdminService
	Matches       service.MatchService
	Modifications service.ModificationService
	Documents     service.DocumentService
	Notifications service.NotificationService
}

func NewRouter(svcs Services, tokens security.TokenManager, places config.PlacesConfig) *mux.Router {
	authHandler := NewAuthHandler(svcs.Auth)
	bookingHandler := NewBookingHandler(svcs.Bookings)
	listingHandler := NewListingHandler(svcs.Listings)
	matchHandler := NewMatchHandler(svcs.Matches)
	modHandler := NewModificationHandler(svcs.Modifications)
	docHandler := NewDocumentHandler(svcs.Documents)
	noteHandler := NewNotificationHandler(svcs.Notifications)
	placesHandler := NewPlacesHandler(places)

	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tokens))

	admin := authed.PathPrefix("/admin").Subrouter()
	admin.Use(RequireAdmin)
	admin.HandleFunc("/bookings", bookingHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/bulk-cancel", bookingHandler.BulkCancel).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{id:[0-9]+}", bookingHandler.Update).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{id:[0-9]+}/cancel", bookingHandler.Cancel).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{id:[0-9]+}/revert", bookingHandler.Revert).Methods(http.MethodPost)
	admin.HandleFunc("/listings", listingHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/listings/{id:[0-9]+}", listingHandler.Update).Methods(http.MethodPatch)
	admin.HandleFunc("/listings/{id:[0-9]+}/copy", listingHandler.Copy).Methods(http.MethodPost)

	authed.HandleFunc("/matches/{id:[0-9]+}", matchHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/matches/{id:[0-9]+}/tenant-signed", matchHandler.TenantSigned).Methods(http.MethodPost)
	authed.HandleFunc("/matches/{id:[0-9]+}/authorize-existing-payment", matchHandler.AuthorizeExistingPayment).Methods(http.MethodPost)

	authed.HandleFunc("/bookings/{id:[0-9]+}/modifications", modHandler.RequestBookingModification).Methods(http.MethodPost)
	authed.HandleFunc("/booking-modifications/{id:[0-9]+}/approve", modHandler.ApproveBookingModification).Methods(http.MethodPost)
	authed.HandleFunc("/booking-modifications/{id:[0-9]+}/reject", modHandler.RejectBookingModification).Methods(http.MethodPost)
	authed.HandleFunc("/rent-payments/{id:[0-9]+}/modifications", modHandler.RequestPaymentModification).Methods(http.MethodPost)
	authed.HandleFunc("/payment-modifications/{id:[0-9]+}/approve", modHandler.ApprovePaymentModification).Methods(http.MethodPost)
	authed.HandleFunc("/payment-modifications/{id:[0-9]+}/reject", modHandler.RejectPaymentModification).Methods(http.MethodPost)

	authed.HandleFunc("/documents/{id:[0-9]+}", docHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/listings/{id:[0-9]+}/documents", docHandler.ListForListing).Methods(http.MethodGet)

	authed.HandleFunc("/notifications", noteHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", noteHandler.MarkRead).Methods(http.MethodPost)

	authed.HandleFunc("/geocode", placesHandler.Geocode).Methods(http.MethodGet)
	authed.HandleFunc("/places-autocomplete", placesHandler.Autocomplete).Methods(http.MethodGet)

	return r
}
