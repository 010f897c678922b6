package sleekshop_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop"
	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

const contentList = `{"contents": [
	{"id": 1, "class": "teaser", "name": "intro", "attributes": {"layout": {"type": "CHAR", "value": "text"}}},
	{"id": 4, "class": "note", "name": "plain", "attributes": {}},
	{"id": 2, "class": "teaser", "name": "more", "attributes": {"layout": {"type": "CHAR", "value": "text"}}},
	{"id": 3, "class": "gallery", "name": "photos", "attributes": {"layout": {"type": "CHAR", "value": "image"}}}
]}`

func TestResolver_BuildContentSet(t *testing.T) {
	t.Parallel()

	r := sleekshop.NewResolver(100)
	set, err := r.BuildContentSet(decode(t, contentList)["contents"], "class")
	require.NoError(t, err)

	assert.Equal(t, []string{"intro", "plain", "more", "photos"}, set.Order)
	assert.Len(t, set.Items, 4)
	assert.Len(t, set.ByClass["teaser"], 2)
	assert.Len(t, set.ByClass["gallery"], 1)
	assert.Equal(t, map[string]bool{"text": true, "image": true}, set.Layouts)
	assert.Nil(t, set.ByChain)

	want := map[int]domain.ChainLink{
		1: {Prev: "not_set", Current: "text", Next: "text", Index: 0, LayoutIndex: 0, LayoutMax: 2},
		2: {Prev: "text", Current: "text", Next: "image", Index: 1, LayoutIndex: 1, LayoutMax: 2},
		3: {Prev: "text", Current: "image", Next: "not_set", Index: 2, LayoutIndex: 0, LayoutMax: 1},
	}
	assert.Equal(t, want, set.Chain)
}

func TestResolver_BuildContentSet_Empty(t *testing.T) {
	t.Parallel()

	set, err := sleekshop.NewResolver(100).BuildContentSet("", "class")
	require.NoError(t, err)
	assert.Empty(t, set.Items)
	assert.Empty(t, set.Order)
	assert.Empty(t, set.Chain)
}

func TestResolver_BuildContentSet_GroupedByChain(t *testing.T) {
	t.Parallel()

	r := sleekshop.NewResolver(100)
	set, err := r.BuildContentSet(decode(t, contentList)["contents"], "attributes.layout.value")
	require.NoError(t, err)

	require.NotNil(t, set.ByChain)
	assert.Len(t, set.ByChain["text"], 2)
	assert.Len(t, set.ByChain["image"], 1)
	assert.NotContains(t, set.ByChain, "")
}

func TestValueByChain(t *testing.T) {
	t.Parallel()

	node := decode(t, `{"attributes": {"layout": {"value": "text"}}, "name": "intro", "id": 7}`)

	tests := []struct {
		name string
		keys []string
		want any
	}{
		{name: "nested value", keys: []string{"attributes", "layout", "value"}, want: "text"},
		{name: "top level", keys: []string{"name"}, want: "intro"},
		{name: "missing key", keys: []string{"attributes", "size", "value"}, want: nil},
		{name: "through a scalar", keys: []string{"name", "value"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sleekshop.ValueByChain(node, tt.keys...))
		})
	}

	t.Run("no keys returns the node", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, node, sleekshop.ValueByChain(node))
	})
}

func TestResolver_GroupByChain(t *testing.T) {
	t.Parallel()

	r := sleekshop.NewResolver(100)
	groups, err := r.GroupByChain(decode(t, contentList)["contents"], "attributes.layout.value")
	require.NoError(t, err)

	require.Len(t, groups, 2)
	names := make([]string, 0, 2)
	for _, so := range groups["text"] {
		names = append(names, so.Name)
	}
	assert.Equal(t, []string{"intro", "more"}, names)
	assert.Equal(t, "photos", groups["image"][0].Name)

	_, err = r.GroupByChain(42, "class")
	require.Error(t, err)
}
