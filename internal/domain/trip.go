package domain

import "time"

type Trip struct {
	ID          int32     `json:"id"`
	TenantID    int32     `json:"tenant_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	NumAdults   int32     `json:"num_adults"`
	NumChildren int32     `json:"num_children"`
	NumPets     int32     `json:"num_pets"`
	CreatedOn   time.Time `json:"created_on"`
	UpdatedOn   time.Time `json:"updated_on"`
}
