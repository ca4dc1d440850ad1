package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	AuthProviderPassword AuthProvider = "password"
	AuthProviderGoogle   AuthProvider = "google"
)

func (p AuthProvider) String() string { return string(p) }

// IsValid reports whether the provider is one of the known values.
func (p AuthProvider) IsValid() bool {
	switch p {
	case AuthProviderPassword, AuthProviderGoogle:
		return true
	}
	return false
}

// User represents an application account. Owned exclusively by the identity
// store; accounts are never hard-deleted, only deactivated via IsActive.
type User struct {
	ID                  uuid.UUID
	Email               string
	Username            string
	PasswordHash        *string // nil for social-only accounts
	FirstName           string
	LastName            string
	Provider            AuthProvider
	ProviderID          *string
	EmailVerified       bool
	OnboardingCompleted bool
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// RefreshToken represents a hashed refresh token stored in the database.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked returns true if the token has been revoked.
func (t *RefreshToken) IsRevoked() bool { return t.RevokedAt != nil }

// IsExpired returns true if the token has expired relative to now.
func (t *RefreshToken) IsExpired(now time.Time) bool { return t.ExpiresAt.Before(now) }

// TokenPurpose identifies what a verification token is for.
type TokenPurpose string

const (
	TokenPurposeEmailVerify TokenPurpose = "email_verify"
)

// VerificationToken is a single-use token sent to a user out of band,
// stored hashed. Consumed tokens keep their row with ConsumedAt set.
type VerificationToken struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	TokenHash  string
	Purpose    TokenPurpose
	ExpiresAt  time.Time
	ConsumedAt *time.Time
	CreatedAt  time.Time
}

// IsUsable reports whether the token can still be consumed at the given time.
func (t *VerificationToken) IsUsable(now time.Time) bool {
	return t.ConsumedAt == nil && t.ExpiresAt.After(now)
}
