// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"sapa/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new business profile.
type RegisterInput struct {
	BusinessName     string
	OwnerName        string
	BusinessCategory string
	PhoneNumber      string
	Email            string
	BusinessAddress  string
	Description      string
	Products         string
	Password         string
}

// LoginInput defines the data required to log in. Identifier accepts an
// email address or a phone number in any formatting.
type LoginInput struct {
	Identifier string
	Password   string
}

// UpdateProfileInput carries the account settings form. A nil field keeps
// the stored value; a supplied field replaces it after trimming. Password
// additionally keeps the current credential when it trims to nothing.
type UpdateProfileInput struct {
	BusinessName     *string
	OwnerName        *string
	BusinessCategory *string
	PhoneNumber      *string
	Email            *string
	BusinessAddress  *string
	Description      *string
	Products         *string
	Password         *string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created profile. Registration does not
// start a session; the caller still has to log in.
type RegisterOutput struct {
	Profile *entity.BusinessProfile
	Message string
}

// LoginOutput returns the access token and profile after a successful login.
type LoginOutput struct {
	AccessToken string
	Profile     *entity.BusinessProfile
	Message     string
}

// UpdateProfileOutput returns the profile after the settings form was applied.
type UpdateProfileOutput struct {
	Profile *entity.BusinessProfile
	Message string
}

// AuthUsecase defines the interface for account and session operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Bootstrap loads persisted profiles and the session pointer into
	// memory. Storage failures degrade to an empty signed-out state;
	// Bootstrap never returns an error for them.
	Bootstrap(ctx context.Context) error

	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Logout clears the active session pointer. Logging out without an
	// active session is a no-op.
	Logout(ctx context.Context) error

	// UpdateProfile applies the settings form to the profile identified
	// by profileID. An empty profileID targets the active session.
	UpdateProfile(ctx context.Context, profileID string, input *UpdateProfileInput) (*UpdateProfileOutput, error)

	// CurrentProfile returns the profile the session pointer refers to.
	CurrentProfile(ctx context.Context) (*entity.BusinessProfile, error)

	// ProfileByID resolves a profile by its identifier.
	ProfileByID(ctx context.Context, profileID string) (*entity.BusinessProfile, error)

	// Profiles returns a snapshot of every registered profile.
	Profiles(ctx context.Context) []*entity.BusinessProfile

	// Ready reports whether Bootstrap has completed.
	Ready() bool
}
