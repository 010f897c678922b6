package sleekshop

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/cast"

	"github.com/donaldgifford/sleekshop-go/internal/metrics"
	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop/session"
	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

var (
	// ErrUnsupportedStorage is returned for a storage method other than
	// cookie, session or none.
	ErrUnsupportedStorage = errors.New("unsupported session storage method")

	// ErrSessionAcquisition is returned when the backend did not hand out a
	// session token.
	ErrSessionAcquisition = errors.New("error getting session")
)

// StorageMethod selects where session tokens are kept.
type StorageMethod string

// Storage methods.
const (
	StorageCookie  StorageMethod = "cookie"
	StorageSession StorageMethod = "session"
	StorageNone    StorageMethod = "none"
)

// ParseStorageMethod validates a configured storage method.
func ParseStorageMethod(s string) (StorageMethod, error) {
	switch m := StorageMethod(s); m {
	case StorageCookie, StorageSession, StorageNone:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedStorage, s)
	}
}

// SessionState is the lifecycle state of a SessionManager.
type SessionState int

// Session states.
const (
	NoSession SessionState = iota
	Acquiring
	Held
)

func (s SessionState) String() string {
	switch s {
	case NoSession:
		return "no_session"
	case Acquiring:
		return "acquiring"
	case Held:
		return "held"
	default:
		return "unknown"
	}
}

// SessionService hands out new session tokens.
type SessionService struct {
	c *Client
}

// New requests a fresh session token. The token is the response code.
func (s *SessionService) New(ctx context.Context) (*domain.Envelope[string], error) {
	return callDecoded(ctx, s.c, newParams("get_new_session"), func(payload map[string]any) (string, error) {
		return cast.ToString(payload["code"]), nil
	})
}

// SessionManager obtains and keeps the session token of one logical
// session. Create one per visitor or request; never share it across
// visitors.
type SessionManager struct {
	client *Client
	method StorageMethod
	store  session.Store

	mu    sync.Mutex
	state SessionState
}

// NewSessionManager creates a manager storing tokens in store. With
// StorageNone the store is never touched.
func NewSessionManager(client *Client, method StorageMethod, store session.Store) *SessionManager {
	if store == nil {
		store = session.NoneStore{}
	}
	return &SessionManager{
		client: client,
		method: method,
		store:  store,
	}
}

// Session returns the stored token, or acquires and stores a new one.
func (m *SessionManager) Session(ctx context.Context) (string, error) {
	switch m.method {
	case StorageCookie, StorageSession, StorageNone:
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedStorage, m.method)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.method != StorageNone {
		token, ok, err := m.store.Get(ctx)
		if err != nil {
			return "", fmt.Errorf("reading session: %w", err)
		}
		if ok {
			m.state = Held
			return token, nil
		}
	}

	m.state = Acquiring
	env, err := m.client.Sessions.New(ctx)
	if err != nil {
		m.state = NoSession
		return "", err
	}
	if !env.OK() || env.Response == "" {
		m.state = NoSession
		metrics.SessionAcquisitionsTotal.WithLabelValues("failure").Inc()
		if !env.OK() {
			return "", fmt.Errorf("%w: %s", ErrSessionAcquisition, env.Message)
		}
		return "", fmt.Errorf("%w: empty session code", ErrSessionAcquisition)
	}

	if m.method != StorageNone {
		if err := m.store.Set(ctx, env.Response); err != nil {
			m.state = NoSession
			return "", fmt.Errorf("storing session: %w", err)
		}
	}

	metrics.SessionAcquisitionsTotal.WithLabelValues("success").Inc()
	m.state = Held
	return env.Response, nil
}

// Invalidate drops the stored token so the next Session call acquires a
// new one.
func (m *SessionManager) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = NoSession
	if m.method == StorageNone {
		return nil
	}
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// State reports the current lifecycle state.
func (m *SessionManager) State() SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}
