package client

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// State is the session store's lifecycle state.
type State int

const (
	// StateUnknown means Bootstrap has not completed; consumers must
	// defer any auth decision.
	StateUnknown State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// User is the authenticated identity as the server reports it.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Phone string `json:"phone,omitempty"`
}

// RegisterInput are the fields accepted by registration.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// credentials is the durable on-disk session: token and last-known user,
// always written and cleared together.
type credentials struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Session is the single source of truth for who is logged in, persisted
// across restarts in a credentials file.
type Session struct {
	api       *API
	credsFile string

	mu    sync.RWMutex
	state State
	user  User
	subs  []func(State)
}

// NewSession creates a session store persisting to credsFile and wires
// itself into the adapter's auth-failure hook.
func NewSession(api *API, credsFile string) *Session {
	s := &Session{api: api, credsFile: credsFile, state: StateUnknown}
	api.OnAuthFailure(s.expire)
	return s
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns the current user; meaningful only when authenticated.
func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Role flags derived from the current user.
func (s *Session) IsAdmin() bool   { return s.roleIs("admin") }
func (s *Session) IsStudent() bool { return s.roleIs("student") }
func (s *Session) IsWarden() bool  { return s.roleIs("warden") }

func (s *Session) roleIs(role string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateAuthenticated && s.user.Role == role
}

// Subscribe registers a callback invoked on every state transition.
func (s *Session) Subscribe(fn func(State)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

// Login authenticates against the server. On success the token and user
// are held in memory, persisted to disk, and attached to the adapter.
// Failures are returned to the caller; the session state is unchanged
// except that a previously-authenticated session stays authenticated.
func (s *Session) Login(ctx context.Context, email, password string) (User, error) {
	var resp struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	err := s.api.Post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return User{}, err
	}

	s.api.SetToken(resp.Token)
	// A failed persist does not invalidate the live session.
	_ = s.writeCreds(credentials{Token: resp.Token, User: resp.User})
	s.transition(StateAuthenticated, resp.User)
	return resp.User, nil
}

// Register creates an account. It does not log in.
func (s *Session) Register(ctx context.Context, in RegisterInput) error {
	return s.api.Post(ctx, "/auth/register", in, nil)
}

// Logout revokes the server-side session best-effort, then clears the
// in-memory and durable state. Safe to call when already logged out.
func (s *Session) Logout(ctx context.Context) {
	if s.api.Token() != "" {
		// Revocation is advisory; local cleanup happens regardless.
		_ = s.api.Post(ctx, "/auth/logout", nil, nil)
	}
	s.expire()
}

// Bootstrap restores a persisted session. With no stored token it settles
// immediately in Anonymous without any network call. With one, the session
// is optimistically restored and then verified against the profile
// endpoint; verification failure silently degrades to Anonymous.
func (s *Session) Bootstrap(ctx context.Context) {
	creds, err := s.readCreds()
	if err != nil || creds.Token == "" {
		s.transition(StateAnonymous, User{})
		return
	}

	s.api.SetToken(creds.Token)
	s.mu.Lock()
	s.user = creds.User
	s.mu.Unlock()

	var resp struct {
		User User `json:"user"`
	}
	if err := s.api.Get(ctx, "/auth/profile", &resp); err != nil {
		// The 401/403 hook already expired us for auth failures; expire
		// for anything else too, per the silent-degrade contract.
		s.expire()
		return
	}
	_ = s.writeCreds(credentials{Token: creds.Token, User: resp.User})
	s.transition(StateAuthenticated, resp.User)
}

// expire clears all session state without a server round trip. Used by
// the adapter's 401/403 hook and by failed bootstrap verification.
func (s *Session) expire() {
	s.api.ClearToken()
	_ = os.Remove(s.credsFile)
	s.transition(StateAnonymous, User{})
}

func (s *Session) transition(state State, user User) {
	s.mu.Lock()
	s.state = state
	s.user = user
	subs := append([]func(State){}, s.subs...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(state)
	}
}

func (s *Session) readCreds() (credentials, error) {
	raw, err := os.ReadFile(s.credsFile)
	if err != nil {
		return credentials{}, err
	}
	var creds credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return credentials{}, err
	}
	return creds, nil
}

// writeCreds persists token and user together, atomically via rename.
func (s *Session) writeCreds(creds credentials) error {
	raw, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.credsFile); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	tmp := s.credsFile + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.credsFile)
}
