package sleekshop

import (
	"context"
	"encoding/json"

	"github.com/spf13/cast"

	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

// SearchQuery filters and pages a search. Constraint maps a column to a
// condition, for example {"main.name": ["LIKE", "shirt"]}.
type SearchQuery struct {
	Constraint       map[string]any
	LeftLimit        int
	RightLimit       int
	OrderColumns     []string
	OrderType        string
	Language         string
	NeededAttributes []string
}

func (q SearchQuery) orderType() string {
	if q.OrderType == "" {
		return "ASC"
	}
	return q.OrderType
}

// SearchService runs shop object and administrative searches.
type SearchService struct {
	c *Client
}

// Products searches products. Matches are keyed by name.
func (s *SearchService) Products(
	ctx context.Context,
	q SearchQuery,
) (*domain.Envelope[domain.SearchResult], error) {
	return callDecoded(ctx, s.c, s.shopobjectSearch("search_products", q), s.searchResult)
}

// Contents searches contents. Matches are keyed by name.
func (s *SearchService) Contents(
	ctx context.Context,
	q SearchQuery,
) (*domain.Envelope[domain.SearchResult], error) {
	return callDecoded(ctx, s.c, s.shopobjectSearch("search_contents", q), s.searchResult)
}

// DistinctProducts returns the distinct values of field among the products
// matching constraint.
func (s *SearchService) DistinctProducts(
	ctx context.Context,
	constraint map[string]any,
	field string,
	lang string,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("search_distinct_products").
		JSON("constraint", constraint).
		String("field", field).
		String("language", s.c.lang(lang))
	return s.c.passthrough(ctx, p)
}

// Orders searches orders.
func (s *SearchService) Orders(
	ctx context.Context,
	q SearchQuery,
) (*domain.Envelope[json.RawMessage], error) {
	return s.c.passthrough(ctx, s.adminSearch("search_orders", q))
}

// Users searches users.
func (s *SearchService) Users(
	ctx context.Context,
	q SearchQuery,
) (*domain.Envelope[json.RawMessage], error) {
	return s.c.passthrough(ctx, s.adminSearch("search_users", q))
}

// WarehouseEntities searches warehouse entities.
func (s *SearchService) WarehouseEntities(
	ctx context.Context,
	q SearchQuery,
) (*domain.Envelope[json.RawMessage], error) {
	p := s.adminSearch("search_warehouse_entities", q).
		JSON("needed_attributes", q.NeededAttributes)
	return s.c.passthrough(ctx, p)
}

// Classes searches classes.
func (s *SearchService) Classes(
	ctx context.Context,
	q SearchQuery,
) (*domain.Envelope[json.RawMessage], error) {
	return s.c.passthrough(ctx, s.adminSearch("search_classes", q))
}

func (s *SearchService) shopobjectSearch(request string, q SearchQuery) *Params {
	return newParams(request).
		JSON("constraint", q.Constraint).
		Int("left_limit", q.LeftLimit).
		Int("right_limit", q.RightLimit).
		JSON("order_columns", q.OrderColumns).
		JSON("needed_attributes", q.NeededAttributes).
		String("order_type", q.orderType()).
		String("language", s.c.lang(q.Language))
}

func (s *SearchService) adminSearch(request string, q SearchQuery) *Params {
	return newParams(request).Privileged().
		JSON("constraint", q.Constraint).
		JSON("order_columns", q.OrderColumns).
		String("order_type", q.orderType()).
		Int("left_limit", q.LeftLimit).
		Int("right_limit", q.RightLimit).
		String("language", s.c.lang(q.Language))
}

func (s *SearchService) searchResult(payload map[string]any) (domain.SearchResult, error) {
	items, err := s.c.resolver.ResolveShopObjects(payload["result"])
	if err != nil {
		return domain.SearchResult{}, err
	}
	return domain.SearchResult{
		Count: cast.ToInt(payload["count"]),
		Items: items,
	}, nil
}
