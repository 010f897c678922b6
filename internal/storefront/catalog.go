package storefront

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop"
	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

// CategoryReader reads category trees and listings.
type CategoryReader interface {
	Get(ctx context.Context, parentID int, lang string) (*domain.Envelope[[]domain.Category], error)
	Products(
		ctx context.Context,
		categoryID int,
		lang string,
		opts sleekshop.ListOptions,
	) (*domain.Envelope[domain.CategoryListing], error)
	Contents(
		ctx context.Context,
		categoryID int,
		lang string,
		opts sleekshop.ListOptions,
	) (*domain.Envelope[domain.CategoryListing], error)
}

// ProductReader reads single products.
type ProductReader interface {
	Details(
		ctx context.Context,
		productID int,
		lang string,
		neededAttributes []string,
	) (*domain.Envelope[domain.ShopObject], error)
}

// ProductSearcher searches products.
type ProductSearcher interface {
	Products(ctx context.Context, q sleekshop.SearchQuery) (*domain.Envelope[domain.SearchResult], error)
}

// MenuReader serves the cached menu tree.
type MenuReader interface {
	Get(ctx context.Context, lang string) (*domain.Envelope[[]domain.Category], error)
}

// CatalogHandler serves categories, products, search and the menu.
type CatalogHandler struct {
	categories CategoryReader
	products   ProductReader
	search     ProductSearcher
	menu       MenuReader
}

// NewCatalogHandler creates a new CatalogHandler. menu may be nil, in which
// case the menu route is not registered.
func NewCatalogHandler(
	categories CategoryReader,
	products ProductReader,
	search ProductSearcher,
	menu MenuReader,
) *CatalogHandler {
	return &CatalogHandler{
		categories: categories,
		products:   products,
		search:     search,
		menu:       menu,
	}
}

// CategoriesInput selects a subtree.
type CategoriesInput struct {
	Parent int    `query:"parent" doc:"Parent category id" example:"0"`
	Lang   string `query:"lang" pattern:"^([A-Za-z]{2,3}(_[A-Za-z]{2,4})?)?$" doc:"Language tag, empty for the default" example:"de_DE"`
}

// CategoriesOutput is a category tree.
type CategoriesOutput struct {
	Body []domain.Category
}

// Categories returns the tree below the given parent.
func (h *CatalogHandler) Categories(ctx context.Context, in *CategoriesInput) (*CategoriesOutput, error) {
	tree, err := unwrap(h.categories.Get(ctx, in.Parent, in.Lang))
	if err != nil {
		return nil, err
	}
	return &CategoriesOutput{Body: tree}, nil
}

// MenuInput selects the menu language.
type MenuInput struct {
	Lang string `query:"lang" pattern:"^([A-Za-z]{2,3}(_[A-Za-z]{2,4})?)?$" doc:"Language tag, empty for the default" example:"de_DE"`
}

// Menu returns the cached menu tree.
func (h *CatalogHandler) Menu(ctx context.Context, in *MenuInput) (*CategoriesOutput, error) {
	tree, err := unwrap(h.menu.Get(ctx, in.Lang))
	if err != nil {
		return nil, err
	}
	return &CategoriesOutput{Body: tree}, nil
}

// ListingInput pages a category listing.
type ListingInput struct {
	ID           int      `path:"id" doc:"Category id" example:"12"`
	Lang         string   `query:"lang" doc:"Language tag, empty for the default"`
	OrderColumns []string `query:"order_columns" doc:"Columns to order by"`
	Order        string   `query:"order" enum:"ASC,DESC" default:"ASC" doc:"Order direction"`
	Left         int      `query:"left" minimum:"0" doc:"First row"`
	Right        int      `query:"right" minimum:"0" doc:"Row count, 0 for all"`
	Attributes   []string `query:"attributes" doc:"Attributes to fetch, empty for all"`
}

func (in *ListingInput) options() sleekshop.ListOptions {
	return sleekshop.ListOptions{
		OrderColumns:     in.OrderColumns,
		Order:            in.Order,
		LeftLimit:        in.Left,
		RightLimit:       in.Right,
		NeededAttributes: in.Attributes,
	}
}

// ListingOutput is a category listing.
type ListingOutput struct {
	Body domain.CategoryListing
}

// CategoryProducts lists the products of a category.
func (h *CatalogHandler) CategoryProducts(ctx context.Context, in *ListingInput) (*ListingOutput, error) {
	listing, err := unwrap(h.categories.Products(ctx, in.ID, in.Lang, in.options()))
	if err != nil {
		return nil, err
	}
	return &ListingOutput{Body: listing}, nil
}

// CategoryContents lists the contents of a category with their layout chain.
func (h *CatalogHandler) CategoryContents(ctx context.Context, in *ListingInput) (*ListingOutput, error) {
	listing, err := unwrap(h.categories.Contents(ctx, in.ID, in.Lang, in.options()))
	if err != nil {
		return nil, err
	}
	return &ListingOutput{Body: listing}, nil
}

// ProductInput selects a product.
type ProductInput struct {
	ID         int      `path:"id" doc:"Product id" example:"42"`
	Lang       string   `query:"lang" doc:"Language tag, empty for the default"`
	Attributes []string `query:"attributes" doc:"Attributes to fetch, empty for all"`
}

// ProductOutput is a resolved product.
type ProductOutput struct {
	Body domain.ShopObject
}

// Product returns a product with resolved attributes and availability.
func (h *CatalogHandler) Product(ctx context.Context, in *ProductInput) (*ProductOutput, error) {
	obj, err := unwrap(h.products.Details(ctx, in.ID, in.Lang, in.Attributes))
	if err != nil {
		return nil, err
	}
	return &ProductOutput{Body: obj}, nil
}

// SearchInput is the product search request.
type SearchInput struct {
	Body struct {
		Constraint   map[string]any `json:"constraint" doc:"Column conditions, for example {\"main.name\": [\"LIKE\", \"shirt\"]}"`
		Language     string         `json:"language,omitempty" doc:"Language tag"`
		LeftLimit    int            `json:"left_limit,omitempty" minimum:"0" doc:"First row"`
		RightLimit   int            `json:"right_limit,omitempty" minimum:"0" doc:"Row count"`
		OrderColumns []string       `json:"order_columns,omitempty" doc:"Columns to order by"`
		OrderType    string         `json:"order_type,omitempty" enum:"ASC,DESC" doc:"Order direction"`
		Attributes   []string       `json:"attributes,omitempty" doc:"Attributes to fetch"`
	}
}

// SearchOutput is the product search result.
type SearchOutput struct {
	Body domain.SearchResult
}

// Search searches products.
func (h *CatalogHandler) Search(ctx context.Context, in *SearchInput) (*SearchOutput, error) {
	res, err := unwrap(h.search.Products(ctx, sleekshop.SearchQuery{
		Constraint:       in.Body.Constraint,
		LeftLimit:        in.Body.LeftLimit,
		RightLimit:       in.Body.RightLimit,
		OrderColumns:     in.Body.OrderColumns,
		OrderType:        in.Body.OrderType,
		Language:         in.Body.Language,
		NeededAttributes: in.Body.Attributes,
	}))
	if err != nil {
		return nil, err
	}
	return &SearchOutput{Body: res}, nil
}

var backendErrors = []int{
	http.StatusUnprocessableEntity,
	http.StatusBadGateway,
	http.StatusInternalServerError,
}

// RegisterCatalogRoutes registers catalog endpoints with the Huma API.
func RegisterCatalogRoutes(api huma.API, h *CatalogHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories",
		Summary:     "Category tree",
		Description: "Returns the fully expanded category tree below a parent.",
		Tags:        []string{"catalog"},
		Errors:      backendErrors,
	}, h.Categories)

	if h.menu != nil {
		huma.Register(api, huma.Operation{
			OperationID: "get-menu",
			Method:      http.MethodGet,
			Path:        "/api/v1/menu",
			Summary:     "Menu",
			Description: "Returns the cached category tree below the configured root.",
			Tags:        []string{"catalog"},
			Errors:      backendErrors,
		}, h.Menu)
	}

	huma.Register(api, huma.Operation{
		OperationID: "list-category-products",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories/{id}/products",
		Summary:     "Products in category",
		Tags:        []string{"catalog"},
		Errors:      backendErrors,
	}, h.CategoryProducts)

	huma.Register(api, huma.Operation{
		OperationID: "list-category-contents",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories/{id}/contents",
		Summary:     "Contents in category",
		Description: "Returns contents grouped by class with their layout chain.",
		Tags:        []string{"catalog"},
		Errors:      backendErrors,
	}, h.CategoryContents)

	huma.Register(api, huma.Operation{
		OperationID: "get-product",
		Method:      http.MethodGet,
		Path:        "/api/v1/products/{id}",
		Summary:     "Product details",
		Tags:        []string{"catalog"},
		Errors:      backendErrors,
	}, h.Product)

	huma.Register(api, huma.Operation{
		OperationID: "search-products",
		Method:      http.MethodPost,
		Path:        "/api/v1/search",
		Summary:     "Search products",
		Description: "Runs a product search. Matches are keyed by product name.",
		Tags:        []string{"catalog"},
		Errors:      backendErrors,
	}, h.Search)
}
