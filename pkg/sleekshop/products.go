package sleekshop

import (
	"context"

	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

// ProductService fetches single products.
type ProductService struct {
	c *Client
}

// Details returns a product by id. neededAttributes restricts the attributes
// the backend sends; nil sends all.
func (s *ProductService) Details(
	ctx context.Context,
	productID int,
	lang string,
	neededAttributes []string,
) (*domain.Envelope[domain.ShopObject], error) {
	p := newParams("get_product_details").
		String("language", s.c.lang(lang)).
		Int("id_product", productID).
		JSON("needed_attributes", neededAttributes)
	return callDecoded(ctx, s.c, p, s.c.resolver.ResolveShopObject)
}

// SeoDetails returns a product by permalink.
func (s *ProductService) SeoDetails(
	ctx context.Context,
	permalink string,
	neededAttributes []string,
) (*domain.Envelope[domain.ShopObject], error) {
	p := newParams("seo_get_product_details").
		String("permalink", permalink).
		JSON("needed_attributes", neededAttributes)
	return callDecoded(ctx, s.c, p, s.c.resolver.ResolveShopObject)
}

// ContentService fetches single contents.
type ContentService struct {
	c *Client
}

// Details returns a content by id.
func (s *ContentService) Details(
	ctx context.Context,
	contentID int,
	lang string,
) (*domain.Envelope[domain.ShopObject], error) {
	p := newParams("get_content_details").
		String("language", s.c.lang(lang)).
		Int("id_content", contentID)
	return callDecoded(ctx, s.c, p, s.c.resolver.ResolveShopObject)
}

// SeoDetails returns a content by permalink.
func (s *ContentService) SeoDetails(
	ctx context.Context,
	permalink string,
) (*domain.Envelope[domain.ShopObject], error) {
	p := newParams("seo_get_content_details").String("permalink", permalink)
	return callDecoded(ctx, s.c, p, s.c.resolver.ResolveShopObject)
}
