package sleekshop

import (
	"context"
	"encoding/json"

	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

// OrderService covers order details, checkout and order documents.
type OrderService struct {
	c *Client
}

// SetDetails stores order details such as addresses on the session's
// pending order. Each arg becomes its own field.
func (s *OrderService) SetDetails(
	ctx context.Context,
	session string,
	args map[string]any,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("set_order_details").
		String("session", session).
		Args(args)
	return s.c.passthrough(ctx, p)
}

// Details returns the pending order of a session.
func (s *OrderService) Details(
	ctx context.Context,
	session string,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("get_order_details").String("session", session)
	return s.c.passthrough(ctx, p)
}

// ByID returns any order.
func (s *OrderService) ByID(
	ctx context.Context,
	orderID int,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("get_order_by_id").Privileged().Int("id_order", orderID)
	return s.c.passthrough(ctx, p)
}

// Update changes the details of an order.
func (s *OrderService) Update(
	ctx context.Context,
	orderID int,
	args map[string]any,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("update_order_details").Privileged().
		Int("id_order", orderID).
		Args(args)
	return s.c.passthrough(ctx, p)
}

// Checkout turns the session's pending order into an order.
func (s *OrderService) Checkout(
	ctx context.Context,
	session string,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("checkout").String("session", session)
	return s.c.passthrough(ctx, p)
}

// Invoice returns the invoice of an order.
func (s *OrderService) Invoice(
	ctx context.Context,
	orderID int,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("get_invoice").Int("id_order", orderID)
	return s.c.passthrough(ctx, p)
}

// Confirmation returns the order confirmation document.
func (s *OrderService) Confirmation(
	ctx context.Context,
	orderID int,
	args map[string]any,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("get_order_confirmation").
		Int("id_order", orderID).
		JSON("args", args)
	return s.c.passthrough(ctx, p)
}

// DeliveryCountries lists the countries orders can be delivered to.
func (s *OrderService) DeliveryCountries(
	ctx context.Context,
) (*domain.Envelope[json.RawMessage], error) {
	return s.c.passthrough(ctx, newParams("get_delivery_countries"))
}

// PaymentService covers payment methods and payment execution.
type PaymentService struct {
	c *Client
}

// Methods returns the available payment methods keyed by name.
func (s *PaymentService) Methods(
	ctx context.Context,
) (*domain.Envelope[map[string]domain.PaymentMethod], error) {
	return callDecoded(ctx, s.c, newParams("get_payment_methods"), toPaymentMethods)
}

// Do starts the payment of an order. The result may carry a redirect the
// buyer has to follow.
func (s *PaymentService) Do(
	ctx context.Context,
	orderID int,
	args map[string]any,
) (*domain.Envelope[domain.PaymentResult], error) {
	p := newParams("do_payment").
		Int("id_order", orderID).
		JSON("args", args)
	return callDecoded(ctx, s.c, p, toPaymentResult)
}

// AddDeliveryCosts adds delivery cost positions to the session's cart.
func (s *PaymentService) AddDeliveryCosts(
	ctx context.Context,
	session string,
	costs []map[string]any,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("add_delivery_costs").
		String("session", session).
		JSON("delivery_costs", costs)
	return s.c.passthrough(ctx, p)
}
