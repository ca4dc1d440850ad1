package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/foodi-app/foodi-backend/internal/auth"
	"github.com/foodi-app/foodi-backend/internal/domain"
)

// Hand-rolled mocks in the moq shape: one Func field per interface method.
// Methods without a Func set panic, which keeps tests honest about what
// they expect to be called.

type userRepoMock struct {
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc       func(ctx context.Context, email string) (*domain.User, error)
	GetByProviderFunc    func(ctx context.Context, provider domain.AuthProvider, providerID string) (*domain.User, error)
	CreateFunc           func(ctx context.Context, u *domain.User) (*domain.User, error)
	SetEmailVerifiedFunc func(ctx context.Context, id uuid.UUID) error
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *userRepoMock) GetByProvider(ctx context.Context, provider domain.AuthProvider, providerID string) (*domain.User, error) {
	return m.GetByProviderFunc(ctx, provider, providerID)
}

func (m *userRepoMock) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	return m.CreateFunc(ctx, u)
}

func (m *userRepoMock) SetEmailVerified(ctx context.Context, id uuid.UUID) error {
	return m.SetEmailVerifiedFunc(ctx, id)
}

type tokenRepoMock struct {
	CreateRefreshFunc             func(ctx context.Context, t *domain.RefreshToken) error
	GetRefreshByHashFunc          func(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeRefreshByIDFunc         func(ctx context.Context, id uuid.UUID) error
	RevokeAllRefreshByUserFunc    func(ctx context.Context, userID uuid.UUID) error
	DeleteExpiredRefreshFunc      func(ctx context.Context) (int, error)
	CreateVerificationFunc        func(ctx context.Context, t *domain.VerificationToken) error
	GetVerificationByHashFunc     func(ctx context.Context, tokenHash string, purpose domain.TokenPurpose) (*domain.VerificationToken, error)
	ConsumeVerificationFunc       func(ctx context.Context, id uuid.UUID) error
	DeleteExpiredVerificationFunc func(ctx context.Context) (int, error)
}

func (m *tokenRepoMock) CreateRefresh(ctx context.Context, t *domain.RefreshToken) error {
	return m.CreateRefreshFunc(ctx, t)
}

func (m *tokenRepoMock) GetRefreshByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	return m.GetRefreshByHashFunc(ctx, tokenHash)
}

func (m *tokenRepoMock) RevokeRefreshByID(ctx context.Context, id uuid.UUID) error {
	return m.RevokeRefreshByIDFunc(ctx, id)
}

func (m *tokenRepoMock) RevokeAllRefreshByUser(ctx context.Context, userID uuid.UUID) error {
	return m.RevokeAllRefreshByUserFunc(ctx, userID)
}

func (m *tokenRepoMock) DeleteExpiredRefresh(ctx context.Context) (int, error) {
	return m.DeleteExpiredRefreshFunc(ctx)
}

func (m *tokenRepoMock) CreateVerification(ctx context.Context, t *domain.VerificationToken) error {
	return m.CreateVerificationFunc(ctx, t)
}

func (m *tokenRepoMock) GetVerificationByHash(ctx context.Context, tokenHash string, purpose domain.TokenPurpose) (*domain.VerificationToken, error) {
	return m.GetVerificationByHashFunc(ctx, tokenHash, purpose)
}

func (m *tokenRepoMock) ConsumeVerification(ctx context.Context, id uuid.UUID) error {
	return m.ConsumeVerificationFunc(ctx, id)
}

func (m *tokenRepoMock) DeleteExpiredVerification(ctx context.Context) (int, error) {
	return m.DeleteExpiredVerificationFunc(ctx)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.RunInTxFunc(ctx, fn)
}

// passthroughTx runs the callback without a real transaction.
func passthroughTx() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
}

type socialVerifierMock struct {
	VerifyAccessTokenFunc func(ctx context.Context, accessToken string) (*auth.SocialIdentity, error)
}

func (m *socialVerifierMock) VerifyAccessToken(ctx context.Context, accessToken string) (*auth.SocialIdentity, error) {
	return m.VerifyAccessTokenFunc(ctx, accessToken)
}

type jwtManagerMock struct {
	GenerateAccessTokenFunc func(userID uuid.UUID) (string, error)
	ValidateAccessTokenFunc func(token string) (uuid.UUID, error)
	GenerateOpaqueTokenFunc func() (string, string, error)
}

func (m *jwtManagerMock) GenerateAccessToken(userID uuid.UUID) (string, error) {
	return m.GenerateAccessTokenFunc(userID)
}

func (m *jwtManagerMock) ValidateAccessToken(token string) (uuid.UUID, error) {
	return m.ValidateAccessTokenFunc(token)
}

func (m *jwtManagerMock) GenerateOpaqueToken() (string, string, error) {
	return m.GenerateOpaqueTokenFunc()
}

type mailerMock struct {
	SendVerificationFunc func(ctx context.Context, email, rawToken string) error
}

func (m *mailerMock) SendVerification(ctx context.Context, email, rawToken string) error {
	return m.SendVerificationFunc(ctx, email, rawToken)
}
