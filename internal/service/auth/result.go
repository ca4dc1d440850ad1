package auth

import "github.com/foodi-app/foodi-backend/internal/domain"

// AuthResult is returned by Register, Login, SocialLogin and Refresh.
type AuthResult struct {
	AccessToken  string
	RefreshToken string // raw token, NOT hash
	User         *domain.User
}
