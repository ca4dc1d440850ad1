// Package google verifies Google access tokens presented during social
// login by resolving them against the userinfo endpoint.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/foodi-app/foodi-backend/internal/auth"
	"github.com/foodi-app/foodi-backend/internal/domain"
)

// Made variables for testing purposes.
var (
	userinfoURL  = "https://www.googleapis.com/oauth2/v2/userinfo"
	tokeninfoURL = "https://oauth2.googleapis.com/tokeninfo"
)

// Verifier resolves Google access tokens into user identity.
type Verifier struct {
	clientID   string
	httpClient *http.Client
	log        *slog.Logger
}

func NewVerifier(clientID string, logger *slog.Logger) *Verifier {
	return &Verifier{
		clientID:   clientID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        logger.With("adapter", "google_oauth"),
	}
}

// userinfoResponse represents the response from Google's userinfo endpoint.
type userinfoResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

// tokeninfoResponse carries the fields of Google's tokeninfo endpoint the
// verifier cares about.
type tokeninfoResponse struct {
	Audience string `json:"aud"`
}

// VerifyAccessToken resolves an access token obtained by the client into a
// verified identity. The token's audience must match the configured OAuth
// client id, otherwise an access token minted for some other application
// would log its holder in here. Tokens Google rejects map to
// ErrUnauthorized; outages on Google's side surface as plain errors so
// callers return 5xx, not 401.
func (v *Verifier) VerifyAccessToken(ctx context.Context, accessToken string) (*auth.SocialIdentity, error) {
	if err := v.checkAudience(ctx, accessToken); err != nil {
		return nil, err
	}

	userinfo, err := v.fetchUserinfo(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if !userinfo.VerifiedEmail {
		return nil, fmt.Errorf("oauth: email not verified: %w", domain.ErrUnauthorized)
	}

	identity := &auth.SocialIdentity{
		Email:      userinfo.Email,
		ProviderID: userinfo.ID,
	}
	if userinfo.GivenName != "" {
		identity.FirstName = &userinfo.GivenName
	}
	if userinfo.FamilyName != "" {
		identity.LastName = &userinfo.FamilyName
	}

	v.log.DebugContext(ctx, "google oauth success", slog.String("email", userinfo.Email))

	return identity, nil
}

// checkAudience resolves the token at the tokeninfo endpoint and compares
// its audience to the configured client id.
func (v *Verifier) checkAudience(ctx context.Context, accessToken string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		tokeninfoURL+"?access_token="+url.QueryEscape(accessToken), nil)
	if err != nil {
		return fmt.Errorf("failed to create tokeninfo request: %w", err)
	}

	resp, err := v.doWithRetry(ctx, req)
	if err != nil {
		v.log.ErrorContext(ctx, "google oauth tokeninfo failed", slog.String("error", err.Error()))
		return fmt.Errorf("oauth: failed to fetch token info")
	}
	defer resp.Body.Close()

	// Google answers 400 for tokens it did not issue or no longer honors.
	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		v.log.WarnContext(ctx, "google oauth token rejected")
		return fmt.Errorf("oauth: token rejected: %w", domain.ErrUnauthorized)
	}
	if resp.StatusCode != http.StatusOK {
		v.log.ErrorContext(ctx, "google oauth tokeninfo failed", slog.Int("status", resp.StatusCode))
		return fmt.Errorf("oauth: failed to fetch token info")
	}

	var info tokeninfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		v.log.ErrorContext(ctx, "google oauth tokeninfo failed", slog.String("error", "invalid json"))
		return fmt.Errorf("oauth: invalid tokeninfo response")
	}

	if info.Audience != v.clientID {
		v.log.WarnContext(ctx, "google oauth audience mismatch",
			slog.String("aud", info.Audience))
		return fmt.Errorf("oauth: token audience mismatch: %w", domain.ErrUnauthorized)
	}

	return nil
}

func (v *Verifier) fetchUserinfo(ctx context.Context, accessToken string) (*userinfoResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := v.doWithRetry(ctx, req)
	if err != nil {
		v.log.ErrorContext(ctx, "google oauth userinfo failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("oauth: failed to fetch user info")
	}
	defer resp.Body.Close()

	// Google answers 401 for revoked or expired tokens.
	if resp.StatusCode == http.StatusUnauthorized {
		v.log.WarnContext(ctx, "google oauth token rejected")
		return nil, fmt.Errorf("oauth: token rejected: %w", domain.ErrUnauthorized)
	}
	if resp.StatusCode != http.StatusOK {
		v.log.ErrorContext(ctx, "google oauth userinfo failed", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("oauth: failed to fetch user info")
	}

	var userinfo userinfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&userinfo); err != nil {
		v.log.ErrorContext(ctx, "google oauth userinfo failed", slog.String("error", "invalid json"))
		return nil, fmt.Errorf("oauth: invalid userinfo response")
	}

	if userinfo.ID == "" || userinfo.Email == "" {
		v.log.ErrorContext(ctx, "google oauth userinfo failed", slog.String("error", "missing required fields"))
		return nil, fmt.Errorf("oauth: invalid userinfo response")
	}

	return &userinfo, nil
}

// doWithRetry executes an HTTP request, retrying once on 5xx or network
// errors with a 500ms backoff.
func (v *Verifier) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil || (resp != nil && resp.StatusCode >= 500) {
		if resp != nil {
			resp.Body.Close()
		}

		select {
		case <-time.After(500 * time.Millisecond):
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		resp, err = v.httpClient.Do(req)
	}

	return resp, err
}
