package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/sinanfen/todogether-cli/pkg/domain"
)

const (
	refreshTimeout   = 5 * time.Second
	userFetchTimeout = 5 * time.Second
)

var (
	// ErrNoRefreshToken is returned when a refresh is attempted without a
	// stored refresh token.
	ErrNoRefreshToken = errors.New("no refresh token available")

	// ErrNoAccessToken is returned by operations that require an
	// authenticated session.
	ErrNoAccessToken = errors.New("no access token available")

	// ErrTimeout marks errors caused by a per-call deadline expiring, so
	// callers can tell a timeout apart from other transport failures.
	ErrTimeout = errors.New("request timeout")
)

// Fallback messages shown when the server gives us nothing usable.
// Turkish, matching the rest of the product surface.
const (
	loginFallbackMsg    = "Giriş sırasında bir hata oluştu"
	registerFallbackMsg = "Kayıt sırasında bir hata oluştu"
	profileFallbackMsg  = "Profil güncellenirken bir hata oluştu"
)

// Client performs the authentication operations against the backend and owns
// the session store. Expected rejections (bad credentials, taken username)
// come back as a Result with Success=false; errors are reserved for
// transport-level failures.
type Client struct {
	baseURL    string
	store      *Store
	httpClient *http.Client
	refresh    singleflight.Group
	log        zerolog.Logger

	refreshTimeout   time.Duration
	userFetchTimeout time.Duration
}

// NewClient creates an auth client talking to baseURL, persisting credentials
// through store.
func NewClient(baseURL string, store *Store, log zerolog.Logger) *Client {
	return &Client{
		baseURL:          strings.TrimSuffix(baseURL, "/"),
		store:            store,
		httpClient:       &http.Client{},
		log:              log,
		refreshTimeout:   refreshTimeout,
		userFetchTimeout: userFetchTimeout,
	}
}

// Store exposes the session store shared with the request gateway.
func (c *Client) Store() *Store {
	return c.store
}

// Result is the outcome of a credential operation.
type Result struct {
	Success     bool
	Message     string
	User        *domain.User
	InviteToken string
}

// RegisterRequest is the payload for creating a new account. InviteToken
// pairs the new account with an existing partner when present.
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	InviteToken string `json:"inviteToken,omitempty"`
}

// ProfileRequest is the payload for updating the current user's profile.
type ProfileRequest struct {
	Username  string `json:"username,omitempty"`
	ColorCode string `json:"colorCode,omitempty"`
}

// tokenResponse is the body of the login and register endpoints. On failure
// the backend sends a message instead of the token pair.
type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Username     string `json:"username"`
	UserID       string `json:"userId"`
	InviteToken  string `json:"inviteToken"`
	Message      string `json:"message"`
}

// Login exchanges credentials for a token pair. A rejected login returns
// Success=false with the server's message; only transport failures return an
// error.
func (c *Client) Login(ctx context.Context, username, password string) (*Result, error) {
	body := map[string]string{"username": username, "password": password}
	resp, err := c.postJSON(ctx, "/auth/login", body)
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	return c.credentialResult(resp, loginFallbackMsg)
}

// Register creates a new account. Symmetric to Login; the result may carry an
// invite token for partner pairing.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Result, error) {
	resp, err := c.postJSON(ctx, "/auth/register", req)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	return c.credentialResult(resp, registerFallbackMsg)
}

// credentialResult turns a login/register response into a Result, persisting
// the token pair on success.
func (c *Client) credentialResult(resp *http.Response, fallbackMsg string) (*Result, error) {
	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		c.log.Warn().Err(err).Int("status", resp.StatusCode).Msg("unparseable credential response")
		return &Result{Message: fallbackMsg}, nil
	}
	if resp.StatusCode >= 400 {
		msg := tr.Message
		if msg == "" {
			msg = fmt.Sprintf("%s (HTTP %d)", fallbackMsg, resp.StatusCode)
		}
		return &Result{Message: msg}, nil
	}
	if tr.AccessToken == "" || tr.RefreshToken == "" {
		c.log.Warn().Int("status", resp.StatusCode).Msg("credential response missing tokens")
		return &Result{Message: fallbackMsg}, nil
	}

	if err := c.store.Save(tr.AccessToken, tr.RefreshToken); err != nil {
		c.log.Warn().Err(err).Msg("could not persist session")
	}
	user := &domain.User{Username: tr.Username}
	if id, err := uuid.Parse(tr.UserID); err == nil {
		user.ID = id
	}
	return &Result{Success: true, User: user, InviteToken: tr.InviteToken}, nil
}

// Refresh exchanges the refresh token for a new access token. Concurrent
// callers are coalesced into a single request. Any failure clears the whole
// session: refresh failure is never partial.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	sess := c.store.Session()
	if sess.RefreshToken == "" {
		return "", ErrNoRefreshToken
	}

	v, err, _ := c.refresh.Do("refresh", func() (any, error) {
		return c.doRefresh(ctx, sess.RefreshToken)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) doRefresh(ctx context.Context, refreshToken string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.refreshTimeout)
	defer cancel()

	resp, err := c.postJSON(ctx, "/auth/refresh", map[string]string{"refreshToken": refreshToken})
	if err != nil {
		c.store.Clear()
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("auth.Refresh: %w", ErrTimeout)
		}
		return "", fmt.Errorf("auth.Refresh: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		c.store.Clear()
		return "", fmt.Errorf("auth.Refresh: token refresh failed: HTTP %d", resp.StatusCode)
	}

	var tr struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil || tr.AccessToken == "" {
		c.store.Clear()
		return "", fmt.Errorf("auth.Refresh: invalid refresh response")
	}

	// Refresh token is retained; only the access token rotates.
	if err := c.store.Save(tr.AccessToken, refreshToken); err != nil {
		c.log.Warn().Err(err).Msg("could not persist refreshed session")
	}
	c.log.Debug().Msg("access token refreshed")
	return tr.AccessToken, nil
}

// CurrentUser fetches the authenticated user's profile. A 401 triggers
// exactly one implicit refresh-and-retry.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	return c.currentUser(ctx, true)
}

func (c *Client) currentUser(ctx context.Context, retryOn401 bool) (*domain.User, error) {
	sess := c.store.Session()
	if !sess.Authenticated() {
		return nil, fmt.Errorf("auth.CurrentUser: %w", ErrNoAccessToken)
	}

	cctx, cancel := context.WithTimeout(ctx, c.userFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, c.baseURL+"/users/me", nil)
	if err != nil {
		return nil, fmt.Errorf("auth.CurrentUser: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+sess.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("auth.CurrentUser: %w", ErrTimeout)
		}
		return nil, fmt.Errorf("auth.CurrentUser: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusUnauthorized && retryOn401 {
		if _, err := c.Refresh(ctx); err != nil {
			return nil, err
		}
		return c.currentUser(ctx, false)
	}
	if resp.StatusCode >= 400 {
		// Status code stays in the message so callers can match on it.
		return nil, fmt.Errorf("auth.CurrentUser: get user failed: HTTP %d", resp.StatusCode)
	}

	var user domain.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("auth.CurrentUser: decode response: %w", err)
	}
	return &user, nil
}

// UpdateProfile updates the current user's profile. Same result contract as
// Login: rejections are a Result, errors mean transport failure.
func (c *Client) UpdateProfile(ctx context.Context, req ProfileRequest) (*Result, error) {
	sess := c.store.Session()
	if !sess.Authenticated() {
		return nil, fmt.Errorf("auth.UpdateProfile: %w", ErrNoAccessToken)
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("auth.UpdateProfile: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/users/profile", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("auth.UpdateProfile: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+sess.AccessToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("auth.UpdateProfile: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		var body struct {
			Message string `json:"message"`
		}
		msg := profileFallbackMsg
		if json.NewDecoder(resp.Body).Decode(&body) == nil && body.Message != "" {
			msg = body.Message
		}
		return &Result{Message: msg}, nil
	}

	var user domain.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("auth.UpdateProfile: decode response: %w", err)
	}
	return &Result{Success: true, User: &user}, nil
}

// Logout invalidates the refresh token server-side on a best-effort basis and
// always clears the local session, even when the network call fails.
func (c *Client) Logout(ctx context.Context) {
	if sess := c.store.Session(); sess.RefreshToken != "" {
		resp, err := c.postJSON(ctx, "/auth/logout", map[string]string{"refreshToken": sess.RefreshToken})
		if err != nil {
			c.log.Warn().Err(err).Msg("server-side logout failed")
		} else {
			resp.Body.Close() //nolint:errcheck
		}
	}
	c.store.Clear()
}

// AuthHeader returns an empty header set when unauthenticated, or a single
// bearer authorization header otherwise. Side-effect free.
func (c *Client) AuthHeader() http.Header {
	h := http.Header{}
	if sess := c.store.Session(); sess.Authenticated() {
		h.Set("Authorization", "Bearer "+sess.AccessToken)
	}
	return h
}

// TokenExpired decodes the access token's exp claim without verifying the
// signature and compares it against the current time. Any decode failure
// counts as expired.
func (c *Client) TokenExpired() bool {
	sess := c.store.Session()
	if !sess.Authenticated() {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(sess.AccessToken, claims); err != nil {
		c.log.Debug().Err(err).Msg("access token undecodable, treating as expired")
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return !time.Now().Before(exp.Time)
}

// EnsureValidToken refreshes the access token if it has expired and returns
// the (possibly new) token. At most one refresh per invocation.
func (c *Client) EnsureValidToken(ctx context.Context) (string, error) {
	if c.TokenExpired() {
		return c.Refresh(ctx)
	}
	return c.store.Session().AccessToken, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.httpClient.Do(req)
}
