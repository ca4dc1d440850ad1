package auth

// SocialIdentity represents user information verified against a social
// login provider's access token.
type SocialIdentity struct {
	Email      string
	FirstName  *string
	LastName   *string
	ProviderID string
}
