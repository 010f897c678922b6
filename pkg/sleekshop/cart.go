package sleekshop

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/donaldgifford/sleekshop-go/internal/metrics"
	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

// DefaultElementType is the cart element type used when none is given.
const DefaultElementType = "PRODUCT_GR"

// CartItemInput describes an element to add to a cart. The *Field values
// name the attributes the backend reads price, name and description from.
type CartItemInput struct {
	ProductID        int
	Quantity         int
	PriceField       string
	NameField        string
	DescriptionField string
	Language         string
	ElementType      string
	ParentElementID  int
	Attributes       []map[string]any
}

// Invalidator drops a session that the backend no longer accepts.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// CartService manages the cart bound to a session token.
type CartService struct {
	c *Client
}

// Add adds an element and returns the updated cart.
func (s *CartService) Add(
	ctx context.Context,
	session string,
	in CartItemInput,
) (*domain.Envelope[domain.Cart], error) {
	elementType := in.ElementType
	if elementType == "" {
		elementType = DefaultElementType
	}
	p := newParams("add_to_cart").
		String("session", session).
		Int("id_shopobject", in.ProductID).
		Int("id_parent_element", in.ParentElementID).
		String("element_type", elementType).
		Int("quantity", in.Quantity).
		String("price_field", in.PriceField).
		String("name_field", in.NameField).
		String("description_field", in.DescriptionField).
		String("language", s.c.lang(in.Language)).
		JSON("attributes", in.Attributes)
	return callDecoded(ctx, s.c, p, toCart)
}

// Sub decreases the quantity of a cart element by one.
func (s *CartService) Sub(
	ctx context.Context,
	session string,
	elementID int,
) (*domain.Envelope[domain.Cart], error) {
	p := newParams("sub_from_cart").
		String("session", session).
		Int("id_element", elementID)
	return callDecoded(ctx, s.c, p, toCart)
}

// Del removes a cart element.
func (s *CartService) Del(
	ctx context.Context,
	session string,
	elementID int,
) (*domain.Envelope[domain.Cart], error) {
	p := newParams("del_from_cart").
		String("session", session).
		Int("id_element", elementID)
	return callDecoded(ctx, s.c, p, toCart)
}

// Get returns the cart of a session. An error envelope means the session is
// no longer usable: inv, when not nil, is invalidated and the error envelope
// is returned with an empty cart.
func (s *CartService) Get(
	ctx context.Context,
	session string,
	inv Invalidator,
) (*domain.Envelope[domain.Cart], error) {
	p := newParams("get_cart").String("session", session)
	env, err := callDecoded(ctx, s.c, p, toCart)
	if err != nil {
		return nil, err
	}
	if env.OK() {
		return env, nil
	}

	if inv != nil {
		s.c.logger.Warn("invalidating session after cart error",
			"kind", env.Kind,
			"message", env.Message,
		)
		metrics.SessionInvalidationsTotal.WithLabelValues("cart_error").Inc()
		if err := inv.Invalidate(ctx); err != nil {
			return nil, err
		}
	}
	env.Response = domain.Cart{}
	return env, nil
}

// Clear empties the cart.
func (s *CartService) Clear(
	ctx context.Context,
	session string,
) (*domain.Envelope[domain.Cart], error) {
	p := newParams("clear_cart").String("session", session)
	return callDecoded(ctx, s.c, p, toCart)
}

// CouponService redeems and issues coupons.
type CouponService struct {
	c *Client
}

// DefaultCouponType is the coupon type used by Create when none is given.
const DefaultCouponType = "UNIQUE_NOMINAL"

// Add redeems coupons for the cart of a session.
func (s *CouponService) Add(
	ctx context.Context,
	session string,
	coupons []map[string]any,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("add_coupons").
		String("session", session).
		JSON("coupons", coupons)
	return s.c.passthrough(ctx, p)
}

// Create issues count coupons of the given amount.
func (s *CouponService) Create(
	ctx context.Context,
	count int,
	name string,
	amount decimal.Decimal,
	couponType string,
) (*domain.Envelope[json.RawMessage], error) {
	if couponType == "" {
		couponType = DefaultCouponType
	}
	p := newParams("create_coupons").Privileged().
		Int("count", count).
		String("name", name).
		String("amount", amount.String()).
		String("type", couponType)
	return s.c.passthrough(ctx, p)
}
