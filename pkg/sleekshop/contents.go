package sleekshop

import (
	"fmt"
	"strings"

	"github.com/ohler55/ojg/jp"
	"github.com/spf13/cast"

	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

const (
	notSet          = "not_set"
	layoutAttribute = "layout"
	defaultChaining = "class"
)

// BuildContentSet resolves the contents of a category and lays them out as a
// chain. Every content carrying a layout attribute gets a ChainLink that
// records its neighbours' layouts and its position within a run of equal
// layouts.
func (r *Resolver) BuildContentSet(list any, chaining string) (*domain.ContentSet, error) {
	nodes, err := nodeList(list)
	if err != nil {
		return nil, fmt.Errorf("contents: %w", err)
	}

	set := &domain.ContentSet{
		Items:   make(map[string]domain.ShopObject, len(nodes)),
		Order:   make([]string, 0, len(nodes)),
		ByClass: map[string][]domain.ShopObject{},
		Layouts: map[string]bool{},
		Chain:   map[int]domain.ChainLink{},
	}

	grouped := chaining != "" && chaining != defaultChaining
	if grouped {
		set.ByChain = map[string][]domain.ShopObject{}
	}

	var (
		prev        = notSet
		prevKey     int
		hasPrev     bool
		layoutIndex int
		index       int
	)

	for _, node := range nodes {
		so, err := r.ResolveShopObject(node)
		if err != nil {
			return nil, err
		}

		set.Items[so.Name] = so
		set.Order = append(set.Order, so.Name)
		set.ByClass[so.Class] = append(set.ByClass[so.Class], so)

		if grouped {
			if v := ValueByChain(node, chainKeys(chaining)...); v != nil {
				key := cast.ToString(v)
				set.ByChain[key] = append(set.ByChain[key], so)
			}
		}

		layout, ok := so.Attributes[layoutAttribute]
		if !ok {
			continue
		}

		current := layout.Value
		set.Layouts[current] = true
		if current != prev {
			layoutIndex = 0
		} else {
			layoutIndex++
		}
		layoutMax := layoutIndex + 1

		for k, link := range set.Chain {
			if link.Index > index-layoutMax {
				link.LayoutMax = layoutMax
				set.Chain[k] = link
			}
		}

		set.Chain[so.ID] = domain.ChainLink{
			Prev:        prev,
			Current:     current,
			Next:        notSet,
			Index:       index,
			LayoutIndex: layoutIndex,
			LayoutMax:   layoutMax,
		}

		if hasPrev {
			link := set.Chain[prevKey]
			link.Next = current
			set.Chain[prevKey] = link
		}

		prevKey = so.ID
		hasPrev = true
		prev = current
		index++
	}

	return set, nil
}

// ValueByChain walks keys through nested objects and returns the value at
// the end, or nil when any key is missing. Experimental.
func ValueByChain(node any, keys ...string) any {
	if len(keys) == 0 {
		return node
	}
	x := jp.R()
	for _, k := range keys {
		x = x.C(k)
	}
	return x.First(node)
}

// GroupByChain groups raw content nodes by the value found at a dotted key
// path such as "attributes.layout.value". Nodes without a value are left
// out. Experimental.
func (r *Resolver) GroupByChain(list any, path string) (map[string][]domain.ShopObject, error) {
	nodes, err := nodeList(list)
	if err != nil {
		return nil, fmt.Errorf("contents: %w", err)
	}

	keys := chainKeys(path)
	out := map[string][]domain.ShopObject{}
	for _, node := range nodes {
		v := ValueByChain(node, keys...)
		if v == nil {
			continue
		}
		so, err := r.ResolveShopObject(node)
		if err != nil {
			return nil, err
		}
		key := cast.ToString(v)
		out[key] = append(out[key], so)
	}
	return out, nil
}

func chainKeys(path string) []string {
	parts := strings.Split(path, ".")
	keys := parts[:0]
	for _, p := range parts {
		if p != "" {
			keys = append(keys, p)
		}
	}
	return keys
}
