package session

import (
	"context"
	"net/http"
	"sync"

	"github.com/pkg/errors"

	"github.com/matedu/matedu-go/core"
)

// State of the session controller.
type State string

const (
	StateUninitialized   State = "uninitialized"
	StateRestoring       State = "restoring"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

const (
	loginPath    = "/auth/login"
	registerPath = "/auth/registro"
	profilePath  = "/usuarios/me"
)

// ErrSuperseded is returned when an in-flight login resolves after a newer
// state-changing operation (typically Logout) has taken over; its result is
// discarded instead of resurrecting the user.
var ErrSuperseded = errors.New("session operation superseded by a newer one")

// PostRegisterLoginError reports that the account was created but the
// follow-up automatic sign-in failed. Callers can tell the two outcomes
// apart: creation succeeded, the session did not come up.
type PostRegisterLoginError struct {
	Err error
}

func (e *PostRegisterLoginError) Error() string {
	return "account created but automatic sign-in failed: " + e.Err.Error()
}

func (e *PostRegisterLoginError) Unwrap() error { return e.Err }

// Service is the authoritative state machine for "who is logged in".
type Service struct {
	store core.TokenStore
	gw    core.Gateway
	log   core.Logger

	mu    sync.Mutex
	state State
	user  *User
	gen   uint64 // bumped by every state-changing operation
}

func NewService(store core.TokenStore, gw core.Gateway, logger core.Logger) *Service {
	if logger == nil {
		logger = core.NewNopLogger()
	}
	return &Service{
		store: store,
		gw:    gw,
		log:   logger,
		state: StateUninitialized,
	}
}

// begin marks the start of a state-changing operation and returns its
// generation. A completion whose generation is no longer current is stale.
func (svc *Service) begin() uint64 {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.gen++
	return svc.gen
}

// commit applies the state transition unless a newer operation has begun
// since gen. Reports whether the write took.
func (svc *Service) commit(gen uint64, state State, usr *User) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.gen != gen {
		return false
	}
	svc.state = state
	svc.user = usr
	return true
}

// superseded reports whether a newer operation has begun since gen.
func (svc *Service) superseded(gen uint64) bool {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.gen != gen
}

// Restore rebuilds the session from the token store at application start.
// It never returns an error: a failed silent restore degrades to "logged
// out". With no stored token it makes zero network calls.
func (svc *Service) Restore(ctx context.Context) {
	gen := svc.begin()
	svc.commit(gen, StateRestoring, nil)

	tok, err := svc.store.Get()
	if err != nil {
		svc.log.Warn("session: reading stored token", err)
		svc.commit(gen, StateUnauthenticated, nil)
		return
	}
	if tok == "" {
		svc.commit(gen, StateUnauthenticated, nil)
		return
	}
	if Expired(tok) {
		svc.log.Info("session: stored token has expired, discarding")
		if err := svc.store.Clear(); err != nil {
			svc.log.Warn("session: clearing expired token", err)
		}
		svc.commit(gen, StateUnauthenticated, nil)
		return
	}

	var usr User
	if err := svc.gw.Request(ctx, http.MethodGet, profilePath, core.RequestOptions{}, &usr); err != nil {
		svc.log.Info("session: could not restore session", err)
		if err := svc.store.Clear(); err != nil {
			svc.log.Warn("session: clearing stale token", err)
		}
		svc.commit(gen, StateUnauthenticated, nil)
		return
	}
	svc.commit(gen, StateAuthenticated, &usr)
}

// Login authenticates with the backend and resolves the user profile. The
// token is durably stored before the profile fetch is issued (the gateway
// resolves it fresh from the store on each call). The session never reports
// "logged in" without a resolved profile: if the follow-up fetch fails, the
// token is cleared and the error propagates.
func (svc *Service) Login(ctx context.Context, creds Credentials) (*User, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	gen := svc.begin()

	var grant tokenGrant
	err := svc.gw.Request(ctx, http.MethodPost, loginPath, core.RequestOptions{Body: creds, SkipAuth: true}, &grant)
	if err != nil {
		var authErr *core.AuthenticationError
		if errors.As(err, &authErr) {
			return nil, &core.InvalidCredentialsError{}
		}
		return nil, err
	}
	if grant.AccessToken == "" {
		return nil, &core.ProtocolError{Reason: "login response is missing access_token"}
	}
	// a Logout that landed while the grant was in flight owns the store now;
	// re-storing the token would let the next Restore resurrect this session
	if svc.superseded(gen) {
		return nil, ErrSuperseded
	}
	if err := svc.store.Set(grant.AccessToken); err != nil {
		return nil, errors.Wrap(err, "storing session token")
	}

	var usr User
	if err := svc.gw.Request(ctx, http.MethodGet, profilePath, core.RequestOptions{}, &usr); err != nil {
		if !svc.commit(gen, StateUnauthenticated, nil) {
			return nil, ErrSuperseded
		}
		if cerr := svc.store.Clear(); cerr != nil {
			svc.log.Warn("session: clearing token after failed profile fetch", cerr)
		}
		return nil, errors.Wrap(err, "fetching user profile")
	}
	if !svc.commit(gen, StateAuthenticated, &usr) {
		// whoever superseded us owns the store now; do not touch it
		return nil, ErrSuperseded
	}
	svc.log.Debug("session: logged in", map[string]interface{}{"email": usr.Email, "role": usr.Role})
	return &usr, nil
}

// Register creates an account and immediately logs it in with the same
// credentials. Registration has no independent authenticated outcome; a
// post-registration login failure is reported as *PostRegisterLoginError so
// callers can distinguish "creation failed" from "account created, sign-in
// failed".
func (svc *Service) Register(ctx context.Context, reg Registration) (*User, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	var created User
	if err := svc.gw.Request(ctx, http.MethodPost, registerPath, core.RequestOptions{Body: reg, SkipAuth: true}, &created); err != nil {
		return nil, err
	}

	usr, err := svc.Login(ctx, Credentials{Email: reg.Email, Password: reg.Password})
	if err != nil {
		return nil, &PostRegisterLoginError{Err: err}
	}
	return usr, nil
}

// Logout clears the token store and drops the user synchronously. No network
// call is involved; the local transition is immediate.
func (svc *Service) Logout() {
	gen := svc.begin()
	if err := svc.store.Clear(); err != nil {
		svc.log.Warn("session: clearing token on logout", err)
	}
	svc.commit(gen, StateUnauthenticated, nil)
}

// syncWithStore drops the authenticated state when the store no longer holds
// a token: the gateway clears it on any 401, and another process sharing the
// storage may clear it too. The store is the source of truth; the in-memory
// user is a cache of it.
func (svc *Service) syncWithStore() {
	svc.mu.Lock()
	authed := svc.state == StateAuthenticated
	svc.mu.Unlock()
	if !authed {
		return
	}

	tok, err := svc.store.Get()
	if err != nil || tok != "" {
		return
	}
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.state == StateAuthenticated {
		svc.gen++
		svc.state = StateUnauthenticated
		svc.user = nil
	}
}

func (svc *Service) State() State {
	svc.syncWithStore()
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.state
}

func (svc *Service) IsAuthenticated() bool {
	svc.syncWithStore()
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.state == StateAuthenticated && svc.user != nil
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (svc *Service) CurrentUser() *User {
	svc.syncWithStore()
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if svc.user == nil {
		return nil
	}
	usr := *svc.user
	return &usr
}
