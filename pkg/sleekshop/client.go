// Package sleekshop provides a Sleekshop backend client: a form-encoding
// transport, a uniform response envelope, session management and the
// resolution of backend nodes into client-facing shop object and category
// trees.
package sleekshop

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/donaldgifford/sleekshop-go/internal/metrics"
	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

// Client is the entry point to every backend operation. It is safe for
// concurrent use; session state lives in per-visitor SessionManagers.
type Client struct {
	endpoint  string
	creds     credentials
	opts      domain.Options
	transport Transport
	resolver  *Resolver
	expansion CategoryExpansion
	logger    *slog.Logger
	maxDepth  int

	Sessions     *SessionService
	Categories   *CategoryService
	Classes      *ClassService
	Products     *ProductService
	Contents     *ContentService
	Search       *SearchService
	Cart         *CartService
	Coupons      *CouponService
	Users        *UserService
	Orders       *OrderService
	Payments     *PaymentService
	Warehouse    *WarehouseService
	Webhooks     *WebhookService
	Server       *ServerService
	Applications *ApplicationService
	Aggregate    *AggregateService
}

// Option configures the Client.
type Option func(*Client)

// WithSecretKey sets the licence secret key sent on privileged operations.
func WithSecretKey(key string) Option {
	return func(c *Client) {
		c.creds.secretKey = key
	}
}

// WithOptions overrides the SDK options. Zero fields keep their defaults.
func WithOptions(o domain.Options) Option {
	return func(c *Client) {
		if o.DefaultLanguage != "" {
			c.opts.DefaultLanguage = o.DefaultLanguage
		}
		if o.Token != "" {
			c.opts.Token = o.Token
		}
		if o.ProductImageThumbHeight > 0 {
			c.opts.ProductImageThumbHeight = o.ProductImageThumbHeight
		}
		if o.ChainingField != "" {
			c.opts.ChainingField = o.ChainingField
		}
		c.opts.TemplatePath = o.TemplatePath
		c.opts.CategoriesID = o.CategoriesID
	}
}

// WithTransport overrides the default HTTP transport.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger sets the logger used for per-request debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithCategoryExpansion selects how category trees are expanded.
func WithCategoryExpansion(e CategoryExpansion) Option {
	return func(c *Client) {
		c.expansion = e
	}
}

// WithMaxDepth bounds the recursion of shop object and category resolution.
// Values below 1 keep the default.
func WithMaxDepth(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// New creates a client for the backend endpoint with the given licence.
func New(endpoint, username, password string, opts ...Option) *Client {
	c := &Client{
		endpoint:  endpoint,
		creds:     credentials{username: username, password: password},
		opts:      domain.DefaultOptions(),
		expansion: ExpandPerNode(),
		logger:    slog.New(slog.DiscardHandler),
		maxDepth:  defaultMaxDepth,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = NewHTTPTransport()
	}
	c.resolver = NewResolver(c.opts.ProductImageThumbHeight, WithResolverMaxDepth(c.maxDepth))

	c.Sessions = &SessionService{c: c}
	c.Categories = &CategoryService{c: c}
	c.Classes = &ClassService{c: c}
	c.Products = &ProductService{c: c}
	c.Contents = &ContentService{c: c}
	c.Search = &SearchService{c: c}
	c.Cart = &CartService{c: c}
	c.Coupons = &CouponService{c: c}
	c.Users = &UserService{c: c}
	c.Orders = &OrderService{c: c}
	c.Payments = &PaymentService{c: c}
	c.Warehouse = &WarehouseService{c: c}
	c.Webhooks = &WebhookService{c: c}
	c.Server = &ServerService{c: c}
	c.Applications = &ApplicationService{c: c}
	c.Aggregate = &AggregateService{c: c}

	return c
}

// Options returns the effective SDK options.
func (c *Client) Options() domain.Options {
	return c.opts
}

// Resolver returns the shop object resolver configured for this client.
func (c *Client) Resolver() *Resolver {
	return c.resolver
}

func (c *Client) lang(lang string) string {
	if lang == "" {
		return c.opts.DefaultLanguage
	}
	return lang
}

// call sends one operation and normalizes the result. The error return is
// reserved for parameters that could not be encoded.
func (c *Client) call(
	ctx context.Context,
	p *Params,
) (*domain.Envelope[json.RawMessage], error) {
	form, err := p.form(c.creds)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	env := Normalize(c.transport.Send(ctx, c.endpoint, form))
	elapsed := time.Since(start)

	outcome := string(env.Kind)
	if env.OK() {
		outcome = string(domain.StatusSuccess)
	}
	metrics.APIRequestsTotal.WithLabelValues(p.request, outcome).Inc()
	metrics.APIRequestDuration.WithLabelValues(p.request).Observe(elapsed.Seconds())

	c.logger.Debug("sleekshop request",
		"request", p.request,
		"status", env.Status,
		"kind", env.Kind,
		"duration_ms", elapsed.Milliseconds(),
	)

	return env, nil
}

// passthrough sends an operation whose response is returned undecoded.
func (c *Client) passthrough(
	ctx context.Context,
	p *Params,
) (*domain.Envelope[json.RawMessage], error) {
	return c.call(ctx, p)
}

// callDecoded sends an operation and reshapes a successful response with fn.
// Error envelopes pass through unchanged. A reshaping failure becomes a
// resolve error envelope.
func callDecoded[T any](
	ctx context.Context,
	c *Client,
	p *Params,
	fn func(map[string]any) (T, error),
) (*domain.Envelope[T], error) {
	env, err := c.call(ctx, p)
	if err != nil {
		return nil, err
	}
	return reshape(env, fn), nil
}

func reshape[T any](
	env *domain.Envelope[json.RawMessage],
	fn func(map[string]any) (T, error),
) *domain.Envelope[T] {
	if !env.OK() {
		return domain.Recast[json.RawMessage, T](env)
	}

	var payload map[string]any
	if err := json.Unmarshal(env.Response, &payload); err != nil {
		out := domain.Failure[T](domain.KindMalformed, "unexpected response shape: "+err.Error())
		out.HTTPStatus = env.HTTPStatus
		out.Raw = env.Response
		return out
	}

	v, err := fn(payload)
	if err != nil {
		out := domain.Failure[T](domain.KindResolve, err.Error())
		out.HTTPStatus = env.HTTPStatus
		out.Raw = env.Response
		return out
	}

	out := domain.Success(v)
	out.HTTPStatus = env.HTTPStatus
	return out
}
