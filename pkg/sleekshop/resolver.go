package sleekshop

import (
	"errors"
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/spf13/cast"

	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

const defaultMaxDepth = 32

// ErrMaxDepth is returned when nested products or variations exceed the
// configured resolution depth.
var ErrMaxDepth = errors.New("maximum resolution depth exceeded")

// Resolver turns raw backend nodes into ShopObjects. It holds no mutable
// state, so resolving the same node twice yields equal results.
type Resolver struct {
	thumbHeight int
	maxDepth    int
}

// ResolverOption configures the Resolver.
type ResolverOption func(*Resolver)

// WithResolverMaxDepth bounds the nesting of PRODUCTS attributes and
// variations. Values below 1 keep the default.
func WithResolverMaxDepth(n int) ResolverOption {
	return func(r *Resolver) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// NewResolver creates a resolver that rescales images to thumbHeight pixels.
func NewResolver(thumbHeight int, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		thumbHeight: thumbHeight,
		maxDepth:    defaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveShopObject converts one backend node, including its nested
// products and variations.
func (r *Resolver) ResolveShopObject(node map[string]any) (domain.ShopObject, error) {
	return r.shopObject(node, 0)
}

// ResolveShopObjects converts a list of nodes keyed by their name, the way
// listings and searches present them. Later duplicates win.
func (r *Resolver) ResolveShopObjects(list any) (map[string]domain.ShopObject, error) {
	nodes, err := nodeList(list)
	if err != nil {
		return nil, err
	}

	out := make(map[string]domain.ShopObject, len(nodes))
	for _, node := range nodes {
		so, err := r.shopObject(node, 0)
		if err != nil {
			return nil, err
		}
		out[so.Name] = so
	}
	return out, nil
}

func (r *Resolver) shopObject(node map[string]any, depth int) (domain.ShopObject, error) {
	if depth > r.maxDepth {
		return domain.ShopObject{}, ErrMaxDepth
	}

	seo := asMap(node["seo"])
	so := domain.ShopObject{
		ID:           cast.ToInt(node["id"]),
		Class:        cast.ToString(node["class"]),
		Name:         cast.ToString(node["name"]),
		Permalink:    cast.ToString(seo["permalink"]),
		Title:        cast.ToString(seo["title"]),
		Description:  cast.ToString(seo["description"]),
		Keywords:     cast.ToString(seo["keywords"]),
		CreationDate: cast.ToString(node["creation_date"]),
		Attributes:   map[string]domain.Attribute{},
		Variations:   []domain.ShopObject{},
	}

	if avail := asMap(node["availability"]); avail != nil {
		if _, ok := avail["quantity"]; ok {
			a := &domain.Availability{
				Quantity:        cast.ToInt(avail["quantity"]),
				QuantityWarning: cast.ToInt(avail["quantity_warning"]),
				AllowOverride:   cast.ToInt(avail["allow_override"]),
				Active:          cast.ToInt(avail["active"]),
			}
			a.Label = AvailabilityLabel(a.Quantity, a.QuantityWarning, a.AllowOverride, a.Active)
			so.Availability = a
		}
	}

	attrs, err := attributeList(node["attributes"])
	if err != nil {
		return domain.ShopObject{}, fmt.Errorf("shopobject %d attributes: %w", so.ID, err)
	}
	for _, raw := range attrs {
		attr, err := r.attribute(raw, depth)
		if err != nil {
			return domain.ShopObject{}, fmt.Errorf("shopobject %d attribute %q: %w", so.ID, attr.Name, err)
		}
		so.Attributes[attr.Name] = attr
	}

	variations, err := nodeList(node["variations"])
	if err != nil {
		return domain.ShopObject{}, fmt.Errorf("shopobject %d variations: %w", so.ID, err)
	}
	for i, v := range variations {
		child, err := r.shopObject(v, depth+1)
		if err != nil {
			return domain.ShopObject{}, fmt.Errorf("variation %d: %w", i, err)
		}
		so.Variations = append(so.Variations, child)
	}

	return so, nil
}

func (r *Resolver) attribute(raw map[string]any, depth int) (domain.Attribute, error) {
	attr := domain.Attribute{
		Type:  cast.ToString(raw["type"]),
		ID:    cast.ToInt(raw["id"]),
		Name:  cast.ToString(raw["name"]),
		Label: cast.ToString(raw["label"]),
	}

	if attr.Type == domain.AttrProducts {
		refs, err := nodeList(raw["value"])
		if err != nil {
			return attr, err
		}
		attr.Products = make([]domain.ShopObject, 0, len(refs))
		for _, ref := range refs {
			so, err := r.shopObject(ref, depth+1)
			if err != nil {
				return attr, err
			}
			attr.Products = append(attr.Products, so)
		}
		return attr, nil
	}

	attr.Value = html.UnescapeString(cast.ToString(raw["value"]))
	switch attr.Type {
	case domain.AttrText:
		attr.Value = strings.ReplaceAll(attr.Value, "\n", "<br>")
	case domain.AttrImage:
		attr.Width, attr.Height = RescaleImage(
			cast.ToInt(raw["width"]),
			cast.ToInt(raw["height"]),
			r.thumbHeight,
		)
	}

	return attr, nil
}

// AvailabilityLabel derives the stock label. The first matching rule wins:
// inactive tracking or allowed override, low stock, no stock, in stock.
func AvailabilityLabel(qty, warn, allowOverride, active int) domain.AvailabilityLabel {
	switch {
	case active == 0 || allowOverride == 1:
		return domain.AvailabilitySuccess
	case qty > 0 && qty < warn:
		return domain.AvailabilityWarning
	case qty == 0:
		return domain.AvailabilityDanger
	default:
		return domain.AvailabilitySuccess
	}
}

// RescaleImage scales (width, height) so that height equals target. A zero
// height or a non-positive target leaves the dimensions unchanged.
func RescaleImage(width, height, target int) (int, int) {
	if height == 0 || target <= 0 {
		return width, height
	}
	w := math.Round(float64(width) * float64(target) / float64(height))
	return int(w), target
}

// attributeList accepts attributes either as a list or as an object keyed
// by attribute name. Keyed entries are returned in key order and inherit the
// key as name when they carry none.
func attributeList(v any) ([]map[string]any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return nodeList(t)
	case map[string]any:
		out := make([]map[string]any, 0, len(t))
		for _, key := range sortedKeys(t) {
			m := asMap(t[key])
			if m == nil {
				return nil, fmt.Errorf("attribute %q: unexpected %T", key, t[key])
			}
			if cast.ToString(m["name"]) == "" {
				m = cloneMap(m)
				m["name"] = key
			}
			out = append(out, m)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unexpected %T", v)
	}
}

// nodeList accepts a list of objects or an object of objects. Empty strings
// and nulls, which the backend sends for empty collections, yield no nodes.
func nodeList(v any) ([]map[string]any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		if t == "" {
			return nil, nil
		}
		return nil, fmt.Errorf("unexpected string %q", t)
	case []any:
		out := make([]map[string]any, 0, len(t))
		for i, item := range t {
			m := asMap(item)
			if m == nil {
				return nil, fmt.Errorf("entry %d: unexpected %T", i, item)
			}
			out = append(out, m)
		}
		return out, nil
	case []map[string]any:
		return t, nil
	case map[string]any:
		out := make([]map[string]any, 0, len(t))
		for _, key := range sortedKeys(t) {
			m := asMap(t[key])
			if m == nil {
				return nil, fmt.Errorf("entry %q: unexpected %T", key, t[key])
			}
			out = append(out, m)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unexpected %T", v)
	}
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
