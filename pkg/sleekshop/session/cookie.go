package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

// Cookies reads request cookies and writes response cookies.
type Cookies interface {
	Cookie(name string) (*http.Cookie, error)
	SetCookie(c *http.Cookie)
}

type httpCookies struct {
	w http.ResponseWriter
	r *http.Request
}

// HTTPCookies adapts a net/http request/response pair.
func HTTPCookies(w http.ResponseWriter, r *http.Request) Cookies {
	return httpCookies{w: w, r: r}
}

func (h httpCookies) Cookie(name string) (*http.Cookie, error) {
	return h.r.Cookie(name)
}

func (h httpCookies) SetCookie(c *http.Cookie) {
	http.SetCookie(h.w, c)
}

// CookieStore keeps the token in a cookie. Writes are visible to later
// reads within the same request.
type CookieStore struct {
	cookies Cookies
	name    string
	path    string
	secure  bool

	mu      sync.Mutex
	written bool
	value   string
}

// CookieOption configures the CookieStore.
type CookieOption func(*CookieStore)

// WithCookiePath sets the cookie path. Defaults to "/".
func WithCookiePath(path string) CookieOption {
	return func(s *CookieStore) {
		if path != "" {
			s.path = path
		}
	}
}

// WithSecureCookie marks the cookie Secure.
func WithSecureCookie(secure bool) CookieOption {
	return func(s *CookieStore) {
		s.secure = secure
	}
}

// NewCookieStore creates a store for the cookie called name.
func NewCookieStore(cookies Cookies, name string, opts ...CookieOption) *CookieStore {
	s := &CookieStore{
		cookies: cookies,
		name:    name,
		path:    "/",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get implements Store.
func (s *CookieStore) Get(context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.written {
		return s.value, s.value != "", nil
	}

	c, err := s.cookies.Cookie(s.name)
	if errors.Is(err, http.ErrNoCookie) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return c.Value, c.Value != "", nil
}

// Set implements Store.
func (s *CookieStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cookies.SetCookie(&http.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     s.path,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	s.written = true
	s.value = token
	return nil
}

// Clear implements Store.
func (s *CookieStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cookies.SetCookie(&http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     s.path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	s.written = true
	s.value = ""
	return nil
}
