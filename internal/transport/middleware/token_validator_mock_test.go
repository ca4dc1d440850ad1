package middleware

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// tokenValidatorMock is a hand-rolled mock of the tokenValidator interface.
type tokenValidatorMock struct {
	ValidateTokenFunc func(ctx context.Context, token string) (uuid.UUID, error)

	mu    sync.Mutex
	calls []string
}

func (m *tokenValidatorMock) ValidateToken(ctx context.Context, token string) (uuid.UUID, error) {
	m.mu.Lock()
	m.calls = append(m.calls, token)
	m.mu.Unlock()
	return m.ValidateTokenFunc(ctx, token)
}

// ValidateTokenCalls returns the tokens ValidateToken was called with.
func (m *tokenValidatorMock) ValidateTokenCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
