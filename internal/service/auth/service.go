// Package auth implements registration, login, social login, email
// verification and token lifecycle.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/auth"
	"github.com/foodi-app/foodi-backend/internal/config"
	"github.com/foodi-app/foodi-backend/internal/domain"
)

// userRepo defines the user repository interface needed by auth service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByProvider(ctx context.Context, provider domain.AuthProvider, providerID string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	SetEmailVerified(ctx context.Context, id uuid.UUID) error
}

// tokenRepo defines the token repository interface needed by auth service.
type tokenRepo interface {
	CreateRefresh(ctx context.Context, t *domain.RefreshToken) error
	GetRefreshByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeRefreshByID(ctx context.Context, id uuid.UUID) error
	RevokeAllRefreshByUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpiredRefresh(ctx context.Context) (int, error)
	CreateVerification(ctx context.Context, t *domain.VerificationToken) error
	GetVerificationByHash(ctx context.Context, tokenHash string, purpose domain.TokenPurpose) (*domain.VerificationToken, error)
	ConsumeVerification(ctx context.Context, id uuid.UUID) error
	DeleteExpiredVerification(ctx context.Context) (int, error)
}

// txManager defines the transaction manager interface needed by auth service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// socialVerifier defines the social identity verification interface.
type socialVerifier interface {
	VerifyAccessToken(ctx context.Context, accessToken string) (*auth.SocialIdentity, error)
}

// jwtManager defines the token generation interface needed by auth service.
type jwtManager interface {
	GenerateAccessToken(userID uuid.UUID) (string, error)
	ValidateAccessToken(token string) (uuid.UUID, error)
	GenerateOpaqueToken() (raw string, hash string, err error)
}

// verificationMailer delivers the email-verification link.
type verificationMailer interface {
	SendVerification(ctx context.Context, email, rawToken string) error
}

// Service implements auth operations.
type Service struct {
	log    *slog.Logger
	users  userRepo
	tokens tokenRepo
	tx     txManager
	social socialVerifier
	jwt    jwtManager
	mailer verificationMailer
	cfg    config.AuthConfig
	mailWG sync.WaitGroup
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	tokens tokenRepo,
	tx txManager,
	social socialVerifier,
	jwt jwtManager,
	mailer verificationMailer,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:    logger.With("service", "auth"),
		users:  users,
		tokens: tokens,
		tx:     tx,
		social: social,
		jwt:    jwt,
		mailer: mailer,
		cfg:    cfg,
	}
}

// issueTokens generates an access/refresh pair for the user, stores the
// refresh token hash and returns an AuthResult carrying the raw tokens.
func (s *Service) issueTokens(ctx context.Context, user *domain.User) (*AuthResult, error) {
	accessToken, err := s.jwt.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	rawRefresh, hashRefresh, err := s.jwt.GenerateOpaqueToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	refreshToken := &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashRefresh,
		ExpiresAt: time.Now().Add(s.cfg.RefreshTokenTTL),
	}
	if err := s.tokens.CreateRefresh(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &AuthResult{
		AccessToken:  accessToken,
		RefreshToken: rawRefresh,
		User:         user,
	}, nil
}

// sendVerificationMailAsync runs the token issue and mail send off the
// request path, so a slow SMTP dial never delays the caller. The parent
// context's cancellation is detached; its values (request id) are kept.
func (s *Service) sendVerificationMailAsync(ctx context.Context, user *domain.User) {
	mailCtx := context.WithoutCancel(ctx)
	s.mailWG.Add(1)
	go func() {
		defer s.mailWG.Done()
		s.sendVerificationMail(mailCtx, user)
	}()
}

// sendVerificationMail issues a verification token and mails the link.
// Failures are logged, never returned: registration must not hinge on SMTP.
func (s *Service) sendVerificationMail(ctx context.Context, user *domain.User) {
	rawToken, hashToken, err := s.jwt.GenerateOpaqueToken()
	if err != nil {
		s.log.ErrorContext(ctx, "generate verification token failed",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
		return
	}

	token := &domain.VerificationToken{
		UserID:    user.ID,
		TokenHash: hashToken,
		Purpose:   domain.TokenPurposeEmailVerify,
		ExpiresAt: time.Now().Add(s.cfg.VerificationTokenTTL),
	}
	if err := s.tokens.CreateVerification(ctx, token); err != nil {
		s.log.ErrorContext(ctx, "store verification token failed",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
		return
	}

	if err := s.mailer.SendVerification(ctx, user.Email, rawToken); err != nil {
		s.log.ErrorContext(ctx, "send verification mail failed",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
	}
}
