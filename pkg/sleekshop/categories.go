package sleekshop

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/spf13/cast"
	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/sleekshop-go/internal/metrics"
	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

// ListOptions controls ordering and paging of category listings.
type ListOptions struct {
	OrderColumns     []string
	Order            string
	LeftLimit        int
	RightLimit       int
	NeededAttributes []string
}

func (o ListOptions) apply(p *Params) *Params {
	order := o.Order
	if order == "" {
		order = "ASC"
	}
	return p.JSON("order_columns", o.OrderColumns).
		String("order", order).
		Int("left_limit", o.LeftLimit).
		Int("right_limit", o.RightLimit).
		JSON("needed_attributes", o.NeededAttributes)
}

// CategoryInput describes a category to create or update.
type CategoryInput struct {
	ParentID   int
	Name       string
	Labels     map[string]string
	Attributes map[string]any
	SEO        map[string]string
}

// CategoryService covers category trees, listings and administration.
type CategoryService struct {
	c *Client
}

// Get returns the category tree below parentID. Every node costs one
// get_categories round trip; the first error envelope aborts the tree.
func (s *CategoryService) Get(
	ctx context.Context,
	parentID int,
	lang string,
) (*domain.Envelope[[]domain.Category], error) {
	return s.c.expansion.expand(ctx, s, parentID, s.c.lang(lang), 0)
}

// level fetches the direct children of parentID.
func (s *CategoryService) level(
	ctx context.Context,
	parentID int,
	lang string,
	depth int,
) ([]map[string]any, *domain.Envelope[[]domain.Category], error) {
	if depth > s.c.maxDepth {
		return nil, domain.Failure[[]domain.Category](domain.KindResolve, ErrMaxDepth.Error()), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.Failure[[]domain.Category](domain.KindTransport, "transport error: "+err.Error()), nil
	}

	p := newParams("get_categories").
		Int("id_parent", parentID).
		String("language", lang)

	metrics.CategoryFetchesTotal.Inc()
	env, err := s.c.call(ctx, p)
	if err != nil {
		return nil, nil, err
	}
	if !env.OK() {
		return nil, domain.Recast[json.RawMessage, []domain.Category](env), nil
	}

	var payload map[string]any
	if err := json.Unmarshal(env.Response, &payload); err != nil {
		out := domain.Failure[[]domain.Category](domain.KindMalformed, "unexpected response shape: "+err.Error())
		out.Raw = env.Response
		return nil, out, nil
	}
	nodes, err := nodeList(payload["categories"])
	if err != nil {
		out := domain.Failure[[]domain.Category](domain.KindResolve, "categories: "+err.Error())
		out.Raw = env.Response
		return nil, out, nil
	}
	return nodes, nil, nil
}

// toCategory converts one category node without its children.
func toCategory(node map[string]any) (domain.Category, error) {
	seo := asMap(node["seo"])
	attrs, err := attributeList(node["attributes"])
	if err != nil {
		return domain.Category{}, err
	}
	flat := flattenAttributes(attrs)

	return domain.Category{
		ID:          cast.ToInt(node["id"]),
		Label:       cast.ToString(node["label"]),
		Name:        cast.ToString(node["name"]),
		Permalink:   cast.ToString(seo["permalink"]),
		Title:       cast.ToString(seo["title"]),
		Description: cast.ToString(seo["description"]),
		Keywords:    cast.ToString(seo["keywords"]),
		Attributes:  flat,
		Link:        cast.ToString(flat["link"]),
		Position:    cast.ToString(flat["position"]),
		Children:    []domain.Category{},
	}, nil
}

// CategoryExpansion decides how child categories are fetched.
type CategoryExpansion interface {
	expand(
		ctx context.Context,
		s *CategoryService,
		parentID int,
		lang string,
		depth int,
	) (*domain.Envelope[[]domain.Category], error)
}

type perNodeExpansion struct{}

// ExpandPerNode fetches children depth first, one node at a time. A tree of
// depth D and branching B costs O(B^D) sequential round trips.
func ExpandPerNode() CategoryExpansion {
	return perNodeExpansion{}
}

func (e perNodeExpansion) expand(
	ctx context.Context,
	s *CategoryService,
	parentID int,
	lang string,
	depth int,
) (*domain.Envelope[[]domain.Category], error) {
	nodes, failed, err := s.level(ctx, parentID, lang, depth)
	if err != nil || failed != nil {
		return failed, err
	}

	cats := make([]domain.Category, 0, len(nodes))
	for _, node := range nodes {
		cat, err := toCategory(node)
		if err != nil {
			return domain.Failure[[]domain.Category](domain.KindResolve, "category: "+err.Error()), nil
		}
		children, err := e.expand(ctx, s, cat.ID, lang, depth+1)
		if err != nil {
			return nil, err
		}
		if !children.OK() {
			return children, nil
		}
		cat.Children = children.Response
		cats = append(cats, cat)
	}

	return domain.Success(cats), nil
}

var errAbortTree = errors.New("category tree aborted")

type concurrentExpansion struct {
	limit int
}

// ExpandConcurrent issues the same round trips as ExpandPerNode but fetches
// siblings concurrently, at most limit at a time per level. The first error
// envelope cancels the outstanding fetches.
func ExpandConcurrent(limit int) CategoryExpansion {
	if limit < 1 {
		limit = 1
	}
	return concurrentExpansion{limit: limit}
}

func (e concurrentExpansion) expand(
	ctx context.Context,
	s *CategoryService,
	parentID int,
	lang string,
	depth int,
) (*domain.Envelope[[]domain.Category], error) {
	nodes, failed, err := s.level(ctx, parentID, lang, depth)
	if err != nil || failed != nil {
		return failed, err
	}

	cats := make([]domain.Category, len(nodes))
	for i, node := range nodes {
		cat, err := toCategory(node)
		if err != nil {
			return domain.Failure[[]domain.Category](domain.KindResolve, "category: "+err.Error()), nil
		}
		cats[i] = cat
	}

	var (
		mu    sync.Mutex
		first *domain.Envelope[[]domain.Category]
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)
	for i := range cats {
		g.Go(func() error {
			children, err := e.expand(gctx, s, cats[i].ID, lang, depth+1)
			if err != nil {
				return err
			}
			if !children.OK() {
				mu.Lock()
				if first == nil {
					first = children
				}
				mu.Unlock()
				return errAbortTree
			}
			cats[i].Children = children.Response
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if errors.Is(err, errAbortTree) {
			return first, nil
		}
		return nil, err
	}

	return domain.Success(cats), nil
}

// Products lists the products of a category.
func (s *CategoryService) Products(
	ctx context.Context,
	categoryID int,
	lang string,
	opts ListOptions,
) (*domain.Envelope[domain.CategoryListing], error) {
	p := opts.apply(newParams("get_products_in_category").
		Int("id_category", categoryID).
		String("language", s.c.lang(lang)))
	return callDecoded(ctx, s.c, p, s.productListing)
}

// SeoProducts lists the products of the category with the given permalink.
func (s *CategoryService) SeoProducts(
	ctx context.Context,
	permalink string,
	opts ListOptions,
) (*domain.Envelope[domain.CategoryListing], error) {
	p := opts.apply(newParams("seo_get_products_in_category").String("permalink", permalink))
	return callDecoded(ctx, s.c, p, s.productListing)
}

// Contents lists the contents of a category laid out as a chain.
func (s *CategoryService) Contents(
	ctx context.Context,
	categoryID int,
	lang string,
	opts ListOptions,
) (*domain.Envelope[domain.CategoryListing], error) {
	p := opts.apply(newParams("get_contents_in_category").
		Int("id_category", categoryID).
		String("language", s.c.lang(lang)))
	return callDecoded(ctx, s.c, p, s.contentListing)
}

// SeoContents lists the contents of the category with the given permalink.
func (s *CategoryService) SeoContents(
	ctx context.Context,
	permalink string,
	opts ListOptions,
) (*domain.Envelope[domain.CategoryListing], error) {
	p := opts.apply(newParams("seo_get_contents_in_category").String("permalink", permalink))
	return callDecoded(ctx, s.c, p, s.contentListing)
}

// Shopobjects lists both products and contents of a category.
func (s *CategoryService) Shopobjects(
	ctx context.Context,
	categoryID int,
	lang string,
	opts ListOptions,
) (*domain.Envelope[domain.CategoryListing], error) {
	p := opts.apply(newParams("get_shopobjects_in_category").
		Int("id_category", categoryID).
		String("language", s.c.lang(lang)))
	return callDecoded(ctx, s.c, p, s.shopobjectListing)
}

// SeoShopobjects lists products and contents of the category with the given
// permalink.
func (s *CategoryService) SeoShopobjects(
	ctx context.Context,
	permalink string,
	opts ListOptions,
) (*domain.Envelope[domain.CategoryListing], error) {
	p := opts.apply(newParams("seo_get_shopobjects_in_category").String("permalink", permalink))
	return callDecoded(ctx, s.c, p, s.shopobjectListing)
}

// Dump returns a category with all inherited products and child categories,
// undecoded.
func (s *CategoryService) Dump(
	ctx context.Context,
	categoryID int,
	lang string,
	opts ListOptions,
) (*domain.Envelope[json.RawMessage], error) {
	p := opts.apply(newParams("dump_category").
		Int("id_category", categoryID).
		String("language", s.c.lang(lang)))
	return s.c.passthrough(ctx, p)
}

// Create creates a category below in.ParentID.
func (s *CategoryService) Create(
	ctx context.Context,
	in CategoryInput,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("create_category").Privileged().
		Int("id_parent", in.ParentID).
		String("name", in.Name).
		JSON("labels", in.Labels).
		JSON("attributes", in.Attributes).
		JSON("seo", in.SEO)
	return s.c.passthrough(ctx, p)
}

// Update replaces name, labels, attributes and SEO data of a category.
func (s *CategoryService) Update(
	ctx context.Context,
	categoryID int,
	in CategoryInput,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("update_category").Privileged().
		Int("id_category", categoryID).
		String("name", in.Name).
		JSON("labels", in.Labels).
		JSON("attributes", in.Attributes).
		JSON("seo", in.SEO)
	return s.c.passthrough(ctx, p)
}

// Delete deletes a category.
func (s *CategoryService) Delete(
	ctx context.Context,
	categoryID int,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("delete_category").Privileged().Int("id_category", categoryID)
	return s.c.passthrough(ctx, p)
}

func (s *CategoryService) productListing(payload map[string]any) (domain.CategoryListing, error) {
	details, err := toCategoryDetails(payload)
	if err != nil {
		return domain.CategoryListing{}, err
	}
	products, err := s.c.resolver.ResolveShopObjects(payload["products"])
	if err != nil {
		return domain.CategoryListing{}, err
	}
	return domain.CategoryListing{
		CategoryDetails: details,
		Products:        products,
		ProductsCount:   cast.ToInt(payload["count"]),
	}, nil
}

func (s *CategoryService) contentListing(payload map[string]any) (domain.CategoryListing, error) {
	details, err := toCategoryDetails(payload)
	if err != nil {
		return domain.CategoryListing{}, err
	}
	contents, err := s.c.resolver.BuildContentSet(payload["contents"], s.c.opts.ChainingField)
	if err != nil {
		return domain.CategoryListing{}, err
	}
	return domain.CategoryListing{
		CategoryDetails: details,
		Contents:        contents,
		ContentsCount:   cast.ToInt(payload["count"]),
	}, nil
}

func (s *CategoryService) shopobjectListing(payload map[string]any) (domain.CategoryListing, error) {
	details, err := toCategoryDetails(payload)
	if err != nil {
		return domain.CategoryListing{}, err
	}
	products, err := s.c.resolver.ResolveShopObjects(payload["products"])
	if err != nil {
		return domain.CategoryListing{}, err
	}
	contents, err := s.c.resolver.BuildContentSet(payload["contents"], s.c.opts.ChainingField)
	if err != nil {
		return domain.CategoryListing{}, err
	}
	return domain.CategoryListing{
		CategoryDetails: details,
		Products:        products,
		ProductsCount:   cast.ToInt(payload["products_count"]),
		Contents:        contents,
		ContentsCount:   cast.ToInt(payload["contents_count"]),
	}, nil
}
