package sleekshop_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop"
)

func TestHTTPTransport_Send(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Equal(t, sleekshop.DefaultUserAgent, r.Header.Get("User-Agent"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "get_cart", r.PostForm.Get("request"))
		assert.Equal(t, "tok", r.PostForm.Get("session"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"cart"}`))
	}))
	t.Cleanup(srv.Close)

	tr := sleekshop.NewHTTPTransport()
	res := tr.Send(context.Background(), srv.URL, url.Values{"request": {"get_cart"}, "session": {"tok"}})

	require.NoError(t, res.Err)
	assert.False(t, res.Failed())
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"object":"cart"}`, string(res.Body))
}

func TestHTTPTransport_CustomUserAgent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "shop/2.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	res := sleekshop.NewHTTPTransport(sleekshop.WithUserAgent("shop/2.0")).
		Send(context.Background(), srv.URL, url.Values{})
	require.NoError(t, res.Err)
}

func TestHTTPTransport_DoesNotFollowRedirects(t *testing.T) {
	t.Parallel()

	var followed atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/moved" {
			followed.Store(true)
			_, _ = w.Write([]byte(`{}`))
			return
		}
		http.Redirect(w, r, "/moved", http.StatusFound)
	}))
	t.Cleanup(srv.Close)

	res := sleekshop.NewHTTPTransport().Send(context.Background(), srv.URL, url.Values{})

	require.NoError(t, res.Err)
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.False(t, followed.Load())
}

func TestHTTPTransport_HTTPErrorIsAResult(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`oops`))
	}))
	t.Cleanup(srv.Close)

	res := sleekshop.NewHTTPTransport(sleekshop.WithRetry(3, time.Millisecond)).
		Send(context.Background(), srv.URL, url.Values{})

	require.NoError(t, res.Err)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, "oops", string(res.Body))
}

func TestHTTPTransport_Timeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	res := sleekshop.NewHTTPTransport(sleekshop.WithTimeout(50*time.Millisecond)).
		Send(context.Background(), srv.URL, url.Values{})

	require.Error(t, res.Err)
	assert.True(t, res.Failed())
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
}

// flakyRoundTripper fails the first n round trips with a connection error.
type flakyRoundTripper struct {
	failures int32
	calls    atomic.Int32
	next     http.RoundTripper
}

func (f *flakyRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	if f.calls.Add(1) <= f.failures {
		return nil, errors.New("connection reset by peer")
	}
	return f.next.RoundTrip(r)
}

func TestHTTPTransport_Retry(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"code":"abc"}`))
	}))
	t.Cleanup(srv.Close)

	tests := []struct {
		name       string
		failures   int32
		maxRetries uint64
		wantErr    bool
		wantCalls  int32
	}{
		{name: "no retries by default", failures: 1, maxRetries: 0, wantErr: true, wantCalls: 1},
		{name: "recovers within budget", failures: 2, maxRetries: 3, wantCalls: 3},
		{name: "gives up after budget", failures: 5, maxRetries: 2, wantErr: true, wantCalls: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rt := &flakyRoundTripper{failures: tt.failures, next: http.DefaultTransport}
			opts := []sleekshop.TransportOption{sleekshop.WithHTTPClient(&http.Client{Transport: rt})}
			if tt.maxRetries > 0 {
				opts = append(opts, sleekshop.WithRetry(tt.maxRetries, time.Millisecond))
			}

			res := sleekshop.NewHTTPTransport(opts...).Send(context.Background(), srv.URL, url.Values{})

			if tt.wantErr {
				require.Error(t, res.Err)
			} else {
				require.NoError(t, res.Err)
				assert.JSONEq(t, `{"code":"abc"}`, string(res.Body))
			}
			assert.Equal(t, tt.wantCalls, rt.calls.Load())
		})
	}
}

func TestHTTPTransport_RateLimited(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	rl := sleekshop.NewRateLimiter(1000, 5)
	tr := sleekshop.NewHTTPTransport(sleekshop.WithRateLimiter(rl))

	for range 3 {
		res := tr.Send(context.Background(), srv.URL, url.Values{})
		require.NoError(t, res.Err)
	}
	assert.Equal(t, int64(3), rl.Calls())
}

func TestHTTPTransport_RateLimiterCanceled(t *testing.T) {
	t.Parallel()

	rl := sleekshop.NewRateLimiter(0.001, 1)
	tr := sleekshop.NewHTTPTransport(sleekshop.WithRateLimiter(rl))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, rl.Wait(ctx))
	cancel()

	res := tr.Send(ctx, "http://backend.invalid/", url.Values{})
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "rate limit")
}
