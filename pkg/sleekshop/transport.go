package sleekshop

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/donaldgifford/sleekshop-go/internal/metrics"
)

const (
	// DefaultUserAgent is the fixed User-Agent the backend expects.
	DefaultUserAgent = "PHPPost/1.0"

	defaultTimeout       = 30 * time.Second
	defaultRetryInterval = 500 * time.Millisecond
	formContentType      = "application/x-www-form-urlencoded"
)

// RawResult is the outcome of a single transport round trip. Err is set only
// for connection-level failures; HTTP error statuses are valid results.
type RawResult struct {
	Body       []byte
	StatusCode int
	Err        error
}

// Failed reports whether no response was obtained.
func (r RawResult) Failed() bool {
	return r.Err != nil
}

// Transport sends a form-encoded request to the backend endpoint.
type Transport interface {
	Send(ctx context.Context, endpoint string, form url.Values) RawResult
}

// HTTPTransport implements Transport with a single POST per call. Retries
// are off unless configured with WithRetry.
type HTTPTransport struct {
	client        *http.Client
	userAgent     string
	timeout       time.Duration
	rateLimiter   *RateLimiter
	maxRetries    uint64
	retryInterval time.Duration
}

// TransportOption configures the HTTPTransport.
type TransportOption func(*HTTPTransport)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) TransportOption {
	return func(t *HTTPTransport) {
		t.client = hc
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) TransportOption {
	return func(t *HTTPTransport) {
		t.userAgent = ua
	}
}

// WithTimeout sets the end-to-end timeout of one round trip. Zero disables it.
func WithTimeout(d time.Duration) TransportOption {
	return func(t *HTTPTransport) {
		t.timeout = d
	}
}

// WithRateLimiter injects a rate limiter. When set, every Send() call goes
// through Wait() first.
func WithRateLimiter(r *RateLimiter) TransportOption {
	return func(t *HTTPTransport) {
		t.rateLimiter = r
	}
}

// WithRetry retries transport failures up to maxRetries times with
// exponential backoff starting at initial. HTTP and backend errors are
// never retried.
func WithRetry(maxRetries uint64, initial time.Duration) TransportOption {
	return func(t *HTTPTransport) {
		t.maxRetries = maxRetries
		if initial > 0 {
			t.retryInterval = initial
		}
	}
}

// NewHTTPTransport creates a transport that does not follow redirects.
func NewHTTPTransport(opts ...TransportOption) *HTTPTransport {
	t := &HTTPTransport{
		client: &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		userAgent:     DefaultUserAgent,
		timeout:       defaultTimeout,
		retryInterval: defaultRetryInterval,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Send implements Transport.Send.
func (t *HTTPTransport) Send(
	ctx context.Context,
	endpoint string,
	form url.Values,
) RawResult {
	if t.rateLimiter != nil {
		if err := t.rateLimiter.Wait(ctx); err != nil {
			return RawResult{Err: fmt.Errorf("rate limit: %w", err)}
		}
	}

	if t.maxRetries == 0 {
		return t.post(ctx, endpoint, form)
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = t.retryInterval
	eb.MaxElapsedTime = 0

	var res RawResult
	op := func() error {
		res = t.post(ctx, endpoint, form)
		if res.Err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return backoff.Permanent(res.Err)
		}
		return res.Err
	}
	notify := func(error, time.Duration) {
		metrics.TransportRetriesTotal.Inc()
	}

	b := backoff.WithContext(backoff.WithMaxRetries(eb, t.maxRetries), ctx)
	_ = backoff.RetryNotify(op, b, notify) //nolint:errcheck // outcome is carried in res

	return res
}

func (t *HTTPTransport) post(
	ctx context.Context,
	endpoint string,
	form url.Values,
) RawResult {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		endpoint,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return RawResult{Err: fmt.Errorf("creating request: %w", err)}
	}

	req.Header.Set("Content-Type", formContentType)
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return RawResult{Err: fmt.Errorf("executing request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return RawResult{Err: fmt.Errorf("reading response body: %w", err)}
	}

	return RawResult{Body: body, StatusCode: resp.StatusCode}
}
