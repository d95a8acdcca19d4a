package domain

import "time"

type Listing struct {
	ID          int32   `json:"id"`
	HostID      int32   `json:"host_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	PostalCode  string  `json:"postal_code"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Bedrooms    int32   `json:"bedrooms"`
	Bathrooms   int32   `json:"bathrooms"`

	// Amenities are flat boolean columns, matching the schema.
	Wifi            bool `json:"wifi"`
	Parking         bool `json:"parking"`
	Laundry         bool `json:"laundry"`
	AirConditioning bool `json:"air_conditioning"`
	Furnished       bool `json:"furnished"`
	PetFriendly     bool `json:"pet_friendly"`

	PetRentCents         int32 `json:"pet_rent_cents"`
	PetDepositCents      int32 `json:"pet_deposit_cents"`
	SecurityDepositCents int32 `json:"security_deposit_cents"`

	IsActive  bool      `json:"is_active"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`

	// Loaded relations, populated by the repository on detail reads.
	Pricing []MonthlyPricing `json:"pricing,omitempty"`
	Images  []ListingImage   `json:"images,omitempty"`
}

// MonthlyPricing is one rent tier: the monthly price that applies when a
// trip's length matches this tier's month count.
type MonthlyPricing struct {
	ID                int32 `json:"id"`
	ListingID         int32 `json:"listing_id"`
	Months            int32 `json:"months"`
	PriceCents        int32 `json:"price_cents"`
	UtilitiesIncluded bool  `json:"utilities_included"`
}

type ListingImage struct {
	ID        int32  `json:"id"`
	ListingID int32  `json:"listing_id"`
	URL       string `json:"url"`
	Rank      int32  `json:"rank"`
}

// ListingWithHost pairs a listing with its orphan-safe owner summary for
// admin list views.
type ListingWithHost struct {
	Listing Listing     `json:"listing"`
	Host    HostSummary `json:"host"`
}
