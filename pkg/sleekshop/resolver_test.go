package sleekshop_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop"
	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

// decode parses a JSON fixture the way the client sees backend payloads.
func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestAvailabilityLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                             string
		qty, warn, allowOverride, active int
		want                             domain.AvailabilityLabel
	}{
		{name: "tracking inactive", qty: 0, warn: 5, allowOverride: 0, active: 0, want: domain.AvailabilitySuccess},
		{name: "override allowed", qty: 0, warn: 5, allowOverride: 1, active: 1, want: domain.AvailabilitySuccess},
		{name: "low stock", qty: 2, warn: 5, allowOverride: 0, active: 1, want: domain.AvailabilityWarning},
		{name: "out of stock", qty: 0, warn: 5, allowOverride: 0, active: 1, want: domain.AvailabilityDanger},
		{name: "in stock", qty: 10, warn: 5, allowOverride: 0, active: 1, want: domain.AvailabilitySuccess},
		{name: "at warning threshold", qty: 5, warn: 5, allowOverride: 0, active: 1, want: domain.AvailabilitySuccess},
		{name: "negative stock", qty: -1, warn: 5, allowOverride: 0, active: 1, want: domain.AvailabilitySuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sleekshop.AvailabilityLabel(tt.qty, tt.warn, tt.allowOverride, tt.active))
		})
	}
}

func TestRescaleImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		w, h, target int
		wantW, wantH int
	}{
		{name: "downscale", w: 200, h: 100, target: 50, wantW: 100, wantH: 50},
		{name: "upscale", w: 30, h: 20, target: 100, wantW: 150, wantH: 100},
		{name: "rounds width", w: 101, h: 200, target: 100, wantW: 51, wantH: 100},
		{name: "zero height unchanged", w: 200, h: 0, target: 50, wantW: 200, wantH: 0},
		{name: "zero target unchanged", w: 200, h: 100, target: 0, wantW: 200, wantH: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w, h := sleekshop.RescaleImage(tt.w, tt.h, tt.target)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

const productNode = `{
	"id": 42,
	"class": "shirt",
	"name": "blue-shirt",
	"creation_date": "2024-03-01 10:00:00",
	"seo": {"permalink": "/shirts/blue", "title": "Blue shirt", "description": "A shirt", "keywords": "blue"},
	"availability": {"quantity": 3, "quantity_warning": 5, "allow_override": 0, "active": 1},
	"attributes": [
		{"type": "TXT", "id": 1, "name": "description", "label": "Description", "value": "Soft &amp; warm\nCotton"},
		{"type": "IMG", "id": 2, "name": "image", "label": "Image", "value": "/img/blue.jpg", "width": 400, "height": 200},
		{"type": "CHAR", "id": 3, "name": "price", "label": "Price", "value": "19.90"},
		{"type": "PRODUCTS", "id": 4, "name": "related", "label": "Related", "value": [
			{"id": 43, "class": "shirt", "name": "red-shirt", "attributes": []}
		]}
	],
	"variations": [
		{"id": 44, "class": "shirt", "name": "blue-shirt-xl", "attributes": {"size": {"type": "CHAR", "value": "XL"}}}
	]
}`

func TestResolver_ResolveShopObject(t *testing.T) {
	t.Parallel()

	r := sleekshop.NewResolver(100)
	so, err := r.ResolveShopObject(decode(t, productNode))
	require.NoError(t, err)

	assert.Equal(t, 42, so.ID)
	assert.Equal(t, "shirt", so.Class)
	assert.Equal(t, "blue-shirt", so.Name)
	assert.Equal(t, "/shirts/blue", so.Permalink)
	assert.Equal(t, "Blue shirt", so.Title)
	assert.Equal(t, "2024-03-01 10:00:00", so.CreationDate)

	require.NotNil(t, so.Availability)
	assert.Equal(t, 3, so.Availability.Quantity)
	assert.Equal(t, domain.AvailabilityWarning, so.Availability.Label)

	assert.Equal(t, "Soft & warm<br>Cotton", so.Attributes["description"].Value)

	img := so.Attributes["image"]
	assert.Equal(t, 200, img.Width)
	assert.Equal(t, 100, img.Height)

	assert.Equal(t, "19.90", so.Attributes["price"].Value)

	related := so.Attributes["related"]
	require.Len(t, related.Products, 1)
	assert.Equal(t, "red-shirt", related.Products[0].Name)
	assert.Empty(t, related.Value)

	require.Len(t, so.Variations, 1)
	assert.Equal(t, "XL", so.Variations[0].Attributes["size"].Value)
	assert.Equal(t, "size", so.Variations[0].Attributes["size"].Name)
}

func TestResolver_NoAvailabilityWithoutQuantity(t *testing.T) {
	t.Parallel()

	so, err := sleekshop.NewResolver(100).ResolveShopObject(decode(t, `{"id": 1, "availability": {"active": 1}}`))
	require.NoError(t, err)
	assert.Nil(t, so.Availability)
	assert.Empty(t, so.Variations)
	assert.NotNil(t, so.Attributes)
}

func TestResolver_Pure(t *testing.T) {
	t.Parallel()

	node := decode(t, productNode)
	before, err := json.Marshal(node)
	require.NoError(t, err)

	r := sleekshop.NewResolver(100)
	first, err := r.ResolveShopObject(node)
	require.NoError(t, err)
	second, err := r.ResolveShopObject(node)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	after, err := json.Marshal(node)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestResolver_MaxDepth(t *testing.T) {
	t.Parallel()

	// Each level nests the next inside a PRODUCTS attribute.
	node := map[string]any{"id": 0, "name": "leaf"}
	for i := 1; i <= 5; i++ {
		node = map[string]any{
			"id":   i,
			"name": "level",
			"attributes": []any{
				map[string]any{"type": "PRODUCTS", "name": "children", "value": []any{node}},
			},
		}
	}

	_, err := sleekshop.NewResolver(100, sleekshop.WithResolverMaxDepth(3)).ResolveShopObject(node)
	require.ErrorIs(t, err, sleekshop.ErrMaxDepth)

	_, err = sleekshop.NewResolver(100, sleekshop.WithResolverMaxDepth(10)).ResolveShopObject(node)
	require.NoError(t, err)
}

func TestResolver_ResolveShopObjects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		list     any
		wantKeys []string
		wantErr  bool
	}{
		{
			name:     "list keyed by name",
			list:     []any{map[string]any{"id": 1, "name": "a"}, map[string]any{"id": 2, "name": "b"}},
			wantKeys: []string{"a", "b"},
		},
		{
			name:     "object of objects",
			list:     map[string]any{"x": map[string]any{"id": 1, "name": "a"}},
			wantKeys: []string{"a"},
		},
		{name: "empty string", list: "", wantKeys: []string{}},
		{name: "null", list: nil, wantKeys: []string{}},
		{name: "scalar entry", list: []any{1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := sleekshop.NewResolver(100).ResolveShopObjects(tt.list)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			keys := make([]string, 0, len(got))
			for k := range got {
				keys = append(keys, k)
			}
			assert.ElementsMatch(t, tt.wantKeys, keys)
		})
	}
}
