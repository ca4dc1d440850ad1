package auth

import (
	"net/mail"
	"unicode"

	"github.com/foodi-app/foodi-backend/internal/domain"
)

// RegisterInput holds parameters for the register operation.
type RegisterInput struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// Validate validates the register input.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	errs = appendEmailErrors(errs, i.Email)
	errs = appendUsernameErrors(errs, i.Username)
	errs = appendPasswordErrors(errs, i.Password)

	if len(i.FirstName) > 100 {
		errs = append(errs, domain.FieldError{Field: "first_name", Message: "too long"})
	}
	if len(i.LastName) > 100 {
		errs = append(errs, domain.FieldError{Field: "last_name", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LoginInput holds parameters for the password login operation.
type LoginInput struct {
	Email    string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SocialLoginInput holds parameters for the social login operation.
type SocialLoginInput struct {
	Provider    string
	AccessToken string
}

// Validate validates the social login input.
func (i SocialLoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Provider == "" {
		errs = append(errs, domain.FieldError{Field: "provider", Message: "required"})
	} else if !domain.AuthProvider(i.Provider).IsValid() || i.Provider == string(domain.AuthProviderPassword) {
		errs = append(errs, domain.FieldError{Field: "provider", Message: "unsupported provider"})
	}

	if i.AccessToken == "" {
		errs = append(errs, domain.FieldError{Field: "access_token", Message: "required"})
	} else if len(i.AccessToken) > 4096 {
		errs = append(errs, domain.FieldError{Field: "access_token", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// VerifyEmailInput holds parameters for the email verification operation.
type VerifyEmailInput struct {
	Token string
}

// Validate validates the email verification input.
func (i VerifyEmailInput) Validate() error {
	var errs []domain.FieldError

	if i.Token == "" {
		errs = append(errs, domain.FieldError{Field: "token", Message: "required"})
	} else if len(i.Token) > 512 {
		errs = append(errs, domain.FieldError{Field: "token", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RefreshInput holds parameters for the token refresh operation.
type RefreshInput struct {
	RefreshToken string
}

// Validate validates the refresh input.
func (i RefreshInput) Validate() error {
	var errs []domain.FieldError

	if i.RefreshToken == "" {
		errs = append(errs, domain.FieldError{Field: "refresh_token", Message: "required"})
	} else if len(i.RefreshToken) > 512 {
		errs = append(errs, domain.FieldError{Field: "refresh_token", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func appendEmailErrors(errs []domain.FieldError, email string) []domain.FieldError {
	if email == "" {
		return append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if len(email) > 254 {
		return append(errs, domain.FieldError{Field: "email", Message: "too long"})
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return append(errs, domain.FieldError{Field: "email", Message: "invalid format"})
	}
	return errs
}

func appendUsernameErrors(errs []domain.FieldError, username string) []domain.FieldError {
	if username == "" {
		return append(errs, domain.FieldError{Field: "username", Message: "required"})
	}
	if len(username) < 3 || len(username) > 32 {
		return append(errs, domain.FieldError{Field: "username", Message: "must be 3-32 characters"})
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return append(errs, domain.FieldError{Field: "username", Message: "only letters, digits, '-' and '_' allowed"})
		}
	}
	return errs
}

func appendPasswordErrors(errs []domain.FieldError, password string) []domain.FieldError {
	if password == "" {
		return append(errs, domain.FieldError{Field: "password", Message: "required"})
	}
	if len(password) < 8 {
		return append(errs, domain.FieldError{Field: "password", Message: "must be at least 8 characters"})
	}
	if len(password) > 72 {
		// bcrypt truncates beyond 72 bytes
		return append(errs, domain.FieldError{Field: "password", Message: "too long"})
	}
	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		errs = append(errs, domain.FieldError{Field: "password", Message: "must contain an uppercase letter"})
	}
	if !hasDigit {
		errs = append(errs, domain.FieldError{Field: "password", Message: "must contain a digit"})
	}
	return errs
}
