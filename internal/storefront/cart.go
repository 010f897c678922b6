package storefront

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop"
	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

// Carts manages session-bound carts.
type Carts interface {
	Get(ctx context.Context, session string, inv sleekshop.Invalidator) (*domain.Envelope[domain.Cart], error)
	Add(ctx context.Context, session string, in sleekshop.CartItemInput) (*domain.Envelope[domain.Cart], error)
	Del(ctx context.Context, session string, elementID int) (*domain.Envelope[domain.Cart], error)
	Clear(ctx context.Context, session string) (*domain.Envelope[domain.Cart], error)
}

// CartHandler serves the visitor's cart.
type CartHandler struct {
	carts    Carts
	sessions SessionFactory
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(carts Carts, sessions SessionFactory) *CartHandler {
	return &CartHandler{carts: carts, sessions: sessions}
}

// CartOutput is the visitor's cart.
type CartOutput struct {
	Body domain.Cart
}

func (*CartHandler) session(ctx context.Context) (Session, string, error) {
	s, ok := SessionFrom(ctx)
	if !ok {
		return nil, "", huma.Error500InternalServerError("no session attached to request")
	}
	token, err := s.Session(ctx)
	if err != nil {
		return nil, "", fatalError(err)
	}
	return s, token, nil
}

// Get returns the cart. A backend error drops the visitor's session; the
// next request starts a new one.
func (h *CartHandler) Get(ctx context.Context, _ *struct{}) (*CartOutput, error) {
	s, token, err := h.session(ctx)
	if err != nil {
		return nil, err
	}
	cart, err := unwrap(h.carts.Get(ctx, token, s))
	if err != nil {
		return nil, err
	}
	return &CartOutput{Body: cart}, nil
}

// AddItemInput is an element to add to the cart.
type AddItemInput struct {
	Body struct {
		ProductID        int    `json:"product_id" minimum:"1" doc:"Shop object id" example:"42"`
		Quantity         int    `json:"quantity" minimum:"1" doc:"Quantity" example:"1"`
		PriceField       string `json:"price_field,omitempty" default:"price" doc:"Attribute holding the price"`
		NameField        string `json:"name_field,omitempty" default:"name" doc:"Attribute holding the name"`
		DescriptionField string `json:"description_field,omitempty" default:"short_description" doc:"Attribute holding the description"`
		Language         string `json:"language,omitempty" doc:"Language tag"`
		ElementType      string `json:"element_type,omitempty" doc:"Cart element type" example:"PRODUCT_GR"`
	}
}

// AddItem adds an element to the cart.
func (h *CartHandler) AddItem(ctx context.Context, in *AddItemInput) (*CartOutput, error) {
	_, token, err := h.session(ctx)
	if err != nil {
		return nil, err
	}
	cart, err := unwrap(h.carts.Add(ctx, token, sleekshop.CartItemInput{
		ProductID:        in.Body.ProductID,
		Quantity:         in.Body.Quantity,
		PriceField:       in.Body.PriceField,
		NameField:        in.Body.NameField,
		DescriptionField: in.Body.DescriptionField,
		Language:         in.Body.Language,
		ElementType:      in.Body.ElementType,
	}))
	if err != nil {
		return nil, err
	}
	return &CartOutput{Body: cart}, nil
}

// DeleteItemInput selects a cart element.
type DeleteItemInput struct {
	ID int `path:"id" doc:"Cart element id" example:"3"`
}

// DeleteItem removes an element from the cart.
func (h *CartHandler) DeleteItem(ctx context.Context, in *DeleteItemInput) (*CartOutput, error) {
	_, token, err := h.session(ctx)
	if err != nil {
		return nil, err
	}
	cart, err := unwrap(h.carts.Del(ctx, token, in.ID))
	if err != nil {
		return nil, err
	}
	return &CartOutput{Body: cart}, nil
}

// Clear empties the cart.
func (h *CartHandler) Clear(ctx context.Context, _ *struct{}) (*CartOutput, error) {
	_, token, err := h.session(ctx)
	if err != nil {
		return nil, err
	}
	cart, err := unwrap(h.carts.Clear(ctx, token))
	if err != nil {
		return nil, err
	}
	return &CartOutput{Body: cart}, nil
}

// RegisterCartRoutes registers cart endpoints with the Huma API. Every cart
// operation runs with the visitor's session attached.
func RegisterCartRoutes(api huma.API, h *CartHandler) {
	mw := huma.Middlewares{sessionMiddleware(h.sessions)}
	errs := append([]int{http.StatusServiceUnavailable}, backendErrors...)

	huma.Register(api, huma.Operation{
		OperationID: "get-cart",
		Method:      http.MethodGet,
		Path:        "/api/v1/cart",
		Summary:     "Get cart",
		Tags:        []string{"cart"},
		Errors:      errs,
		Middlewares: mw,
	}, h.Get)

	huma.Register(api, huma.Operation{
		OperationID: "add-cart-item",
		Method:      http.MethodPost,
		Path:        "/api/v1/cart/items",
		Summary:     "Add to cart",
		Tags:        []string{"cart"},
		Errors:      errs,
		Middlewares: mw,
	}, h.AddItem)

	huma.Register(api, huma.Operation{
		OperationID: "delete-cart-item",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cart/items/{id}",
		Summary:     "Remove from cart",
		Tags:        []string{"cart"},
		Errors:      errs,
		Middlewares: mw,
	}, h.DeleteItem)

	huma.Register(api, huma.Operation{
		OperationID: "clear-cart",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cart",
		Summary:     "Clear cart",
		Tags:        []string{"cart"},
		Errors:      errs,
		Middlewares: mw,
	}, h.Clear)
}
