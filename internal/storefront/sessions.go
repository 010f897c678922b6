package storefront

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop"
	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop/session"
)

// Session is the per-request session handle used by cart routes.
type Session interface {
	Session(ctx context.Context) (string, error)
	Invalidate(ctx context.Context) error
}

// SessionFactory builds the session of the visitor behind cookies.
type SessionFactory interface {
	Manager(cookies session.Cookies) Session
}

type sessionKey struct{}

// ContextWithSession returns ctx carrying s.
func ContextWithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session stored by ContextWithSession.
func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}

// sessionMiddleware attaches a fresh session manager to every request.
func sessionMiddleware(f SessionFactory) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		mgr := f.Manager(humaCookies{ctx: ctx})
		next(huma.WithContext(ctx, ContextWithSession(ctx.Context(), mgr)))
	}
}

// humaCookies implements session.Cookies over the huma request context so
// the storefront does not depend on the router adapter.
type humaCookies struct {
	ctx huma.Context
}

// Cookie reads name across all Cookie header lines. Malformed pairs of
// other cookies are skipped.
func (h humaCookies) Cookie(name string) (*http.Cookie, error) {
	return huma.ReadCookie(h.ctx, name)
}

func (h humaCookies) SetCookie(c *http.Cookie) {
	h.ctx.AppendHeader("Set-Cookie", c.String())
}

// Sessions builds SessionManagers for the configured storage method. With
// StorageSession the token lives in backend under a key derived from a
// visitor id cookie.
type Sessions struct {
	client     *sleekshop.Client
	method     sleekshop.StorageMethod
	cookieName string
	cookieOpts []session.CookieOption
	backend    session.Backend
	ttl        time.Duration
	secure     bool
}

// SessionsOption configures Sessions.
type SessionsOption func(*Sessions)

// WithCookieOptions sets the session cookie options.
func WithCookieOptions(opts ...session.CookieOption) SessionsOption {
	return func(s *Sessions) { s.cookieOpts = append(s.cookieOpts, opts...) }
}

// WithBackend sets the keyed backend used by StorageSession.
func WithBackend(b session.Backend, ttl time.Duration) SessionsOption {
	return func(s *Sessions) {
		s.backend = b
		s.ttl = ttl
	}
}

// WithSecureVisitorCookie marks the visitor id cookie Secure.
func WithSecureVisitorCookie(secure bool) SessionsOption {
	return func(s *Sessions) { s.secure = secure }
}

// NewSessions creates a factory bound to client.
func NewSessions(client *sleekshop.Client, method sleekshop.StorageMethod, opts ...SessionsOption) *Sessions {
	s := &Sessions{
		client:     client,
		method:     method,
		cookieName: client.Options().SessionCookieName(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.backend == nil {
		s.backend = session.NewMemoryBackend()
	}
	return s
}

// Manager implements SessionFactory.
func (s *Sessions) Manager(cookies session.Cookies) Session {
	var store session.Store
	switch s.method {
	case sleekshop.StorageCookie:
		store = session.NewCookieStore(cookies, s.cookieName, s.cookieOpts...)
	case sleekshop.StorageSession:
		store = session.NewKeyedStore(s.backend, session.Key(s.cookieName, s.visitor(cookies)), s.ttl)
	}
	return sleekshop.NewSessionManager(s.client, s.method, store)
}

func (s *Sessions) visitorCookie() string {
	return s.client.Options().Token + "_visitor"
}

// visitor returns the visitor id cookie, issuing a new one when missing.
func (s *Sessions) visitor(cookies session.Cookies) string {
	if c, err := cookies.Cookie(s.visitorCookie()); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	cookies.SetCookie(&http.Cookie{
		Name:     s.visitorCookie(),
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
