// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// BusinessProfile represents one registered UMKM account: the owner's
// identity, the business metadata shown in the app, and the credentials
// used to log in. The JSON tags define the persisted snapshot layout.
type BusinessProfile struct {
	ID               string    `json:"id"`               // Opaque unique identifier, generated at registration. Never reused.
	BusinessName     string    `json:"businessName"`     // Display name of the business.
	OwnerName        string    `json:"ownerName"`        // Name of the business owner.
	BusinessCategory string    `json:"businessCategory"` // Free-text category, e.g. "Kuliner".
	PhoneNumber      string    `json:"phoneNumber"`      // Display-formatted phone string as entered.
	PhoneDigits      string    `json:"phoneDigits"`      // Digits-only form of PhoneNumber, used for uniqueness and lookup.
	Email            string    `json:"email"`            // Lowercased, trimmed. Unique login key.
	BusinessAddress  string    `json:"businessAddress"`  // Free-text address.
	Description      string    `json:"description"`      // Short description of the business.
	Products         string    `json:"products"`         // Free-text summary of what the business sells.
	RegisteredAt     time.Time `json:"registeredAt"`     // Set once at registration, immutable.
	PasswordHash     string    `json:"password"`         // bcrypt hash of the login password.
}

// Clone returns a copy of the profile so callers cannot mutate store state.
func (p *BusinessProfile) Clone() *BusinessProfile {
	clone := *p
	return &clone
}
