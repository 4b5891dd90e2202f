package auth

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sinanfen/todogether-cli/pkg/domain"
)

// validateTimeout bounds the whole startup validation, including a possible
// token refresh and the user fetch.
const validateTimeout = 10 * time.Second

// GuardState is the guard's position in the startup state machine.
type GuardState int

const (
	StateUnvalidated GuardState = iota
	StateValidating
	StateAuthenticated
	StateLoginPrompt
)

func (s GuardState) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateAuthenticated:
		return "authenticated"
	case StateLoginPrompt:
		return "login-prompt"
	default:
		return "unvalidated"
	}
}

// Guard decides at startup whether the stored session is still good.
// There is no locked-out state: every failure routes back to the login
// prompt with the session cleared.
type Guard struct {
	auth  *Client
	log   zerolog.Logger
	state GuardState
	user  *domain.User
}

// NewGuard creates a guard around the given auth client.
func NewGuard(auth *Client, log zerolog.Logger) *Guard {
	return &Guard{auth: auth, log: log, state: StateUnvalidated}
}

// State returns the guard's current state.
func (g *Guard) State() GuardState {
	return g.state
}

// User returns the validated user, non-nil only in StateAuthenticated.
func (g *Guard) User() *domain.User {
	return g.user
}

// Init validates the persisted session. Without a session it goes straight
// to the login prompt; otherwise the token is refreshed if needed and the
// current user fetched, all under a hard deadline.
func (g *Guard) Init(ctx context.Context) GuardState {
	if !g.auth.Store().Session().Authenticated() {
		g.log.Debug().Msg("no stored session, showing login")
		g.state = StateLoginPrompt
		return g.state
	}

	g.state = StateValidating
	vctx, cancel := context.WithTimeout(ctx, validateTimeout)
	defer cancel()

	user, err := g.validate(vctx)
	if err != nil {
		g.log.Warn().Err(err).Msg("session validation failed, showing login")
		g.auth.Store().Clear()
		g.state = StateLoginPrompt
		return g.state
	}

	g.user = user
	g.state = StateAuthenticated
	g.log.Info().Str("username", user.Username).Msg("session validated")
	return g.state
}

func (g *Guard) validate(ctx context.Context) (*domain.User, error) {
	if _, err := g.auth.EnsureValidToken(ctx); err != nil {
		return nil, err
	}
	return g.auth.CurrentUser(ctx)
}

// SetAuthenticated records a user who just logged in or registered through
// the UI, skipping validation.
func (g *Guard) SetAuthenticated(user *domain.User) {
	g.user = user
	g.state = StateAuthenticated
}

// Logout ends the session. The local session is always cleared, whether or
// not the server could be reached.
func (g *Guard) Logout(ctx context.Context) {
	g.auth.Logout(ctx)
	g.user = nil
	g.state = StateLoginPrompt
}
