package domain

import "time"

// Household is the registered family record owned by a head identity.
// Only the fields the identity layer needs are modeled here; the full
// household file (members, requests, vouchers) lives behind its own
// collaborators.
type Household struct {
	ID          string    `json:"id"`
	NationalID  string    `json:"national_id"`
	DisplayName string    `json:"display_name"`
	Phone       string    `json:"phone,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
