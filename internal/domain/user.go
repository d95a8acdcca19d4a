package domain

import "time"

type UserRole string

const (
	UserRoleTenant UserRole = "TENANT"
	UserRoleHost   UserRole = "HOST"
	UserRoleAdmin  UserRole = "ADMIN"
)

type User struct {
	ID                int32      `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	PasswordHash      string     `json:"-"`
	Role              UserRole   `json:"role"`
	StripeCustomerRef string     `json:"stripe_customer_ref,omitempty"`
	HasStoredPayment  bool       `json:"has_stored_payment"`
	DeletedOn         *time.Time `json:"deleted_on,omitempty"`
	CreatedOn         time.Time  `json:"created_on"`
	UpdatedOn         time.Time  `json:"updated_on"`
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// HostSummary is the nil-safe projection of a listing's owner used on admin
// reads. A soft-deleted owner leaves the listing orphaned; reads substitute a
// placeholder instead of failing.
type HostSummary struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Orphaned bool   `json:"orphaned"`
}

func SummarizeHost(u *User) HostSummary {
	if u == nil || u.DeletedOn != nil {
		return HostSummary{Name: "(deleted host)", Orphaned: true}
	}
	return HostSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
