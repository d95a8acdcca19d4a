package domain

import "time"

type DocumentStatus string

const (
	DocumentStatusDraft  DocumentStatus = "DRAFT"
	DocumentStatusReady  DocumentStatus = "READY"
	DocumentStatusSigned DocumentStatus = "SIGNED"
)

// LeaseDocument is the e-signature provider's lease artifact. The signing
// subsystem itself is external; this row tracks availability so the client
// can poll for it before entering the signing flow.
type LeaseDocument struct {
	ID         int32          `json:"id"`
	ListingID  int32          `json:"listing_id"`
	MatchID    *int32         `json:"match_id,omitempty"`
	Name       string         `json:"name"`
	URL        string         `json:"url"`
	Status     DocumentStatus `json:"status"`
	UploadedBy int32          `json:"uploaded_by"`
	CreatedOn  time.Time      `json:"created_on"`
	UpdatedOn  time.Time      `json:"updated_on"`
}
