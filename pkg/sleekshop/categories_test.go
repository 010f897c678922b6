package sleekshop_test

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop"
	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

var expansions = []struct {
	name      string
	expansion sleekshop.CategoryExpansion
}{
	{name: "per node", expansion: sleekshop.ExpandPerNode()},
	{name: "concurrent", expansion: sleekshop.ExpandConcurrent(4)},
}

func parent(id string) any {
	return form("get_categories", map[string]string{"id_parent": id})
}

func TestCategoryService_Get_CallCounts(t *testing.T) {
	t.Parallel()

	for _, ex := range expansions {
		t.Run(ex.name+"/empty tree costs one call", func(t *testing.T) {
			t.Parallel()

			c, mt := newTestClient(t, sleekshop.WithCategoryExpansion(ex.expansion))
			mt.EXPECT().Send(mock.Anything, mock.Anything, parent("0")).Return(ok(`{"categories": ""}`)).Once()

			env, err := c.Categories.Get(context.Background(), 0, "")
			require.NoError(t, err)
			require.True(t, env.OK())
			assert.Empty(t, env.Response)
		})

		t.Run(ex.name+"/two leaves cost three calls", func(t *testing.T) {
			t.Parallel()

			c, mt := newTestClient(t, sleekshop.WithCategoryExpansion(ex.expansion))
			mt.EXPECT().Send(mock.Anything, mock.Anything, parent("0")).
				Return(ok(`{"categories": [
					{"id": 1, "label": "Shirts", "name": "shirts", "seo": {"permalink": "/shirts"},
					 "attributes": [{"name": "link", "value": "/c/shirts"}, {"name": "position", "value": "1"}]},
					{"id": 2, "label": "Shoes", "name": "shoes"}
				]}`)).Once()
			mt.EXPECT().Send(mock.Anything, mock.Anything, parent("1")).Return(ok(`{"categories": []}`)).Once()
			mt.EXPECT().Send(mock.Anything, mock.Anything, parent("2")).Return(ok(`{"categories": []}`)).Once()

			env, err := c.Categories.Get(context.Background(), 0, "de_DE")
			require.NoError(t, err)
			require.True(t, env.OK())
			require.Len(t, env.Response, 2)

			shirts := env.Response[0]
			assert.Equal(t, 1, shirts.ID)
			assert.Equal(t, "Shirts", shirts.Label)
			assert.Equal(t, "/shirts", shirts.Permalink)
			assert.Equal(t, "/c/shirts", shirts.Link)
			assert.Equal(t, "1", shirts.Position)
			assert.NotNil(t, shirts.Children)
			assert.Empty(t, shirts.Children)
			assert.Equal(t, "shoes", env.Response[1].Name)
		})
	}
}

func TestCategoryService_Get_Nested(t *testing.T) {
	t.Parallel()

	for _, ex := range expansions {
		t.Run(ex.name, func(t *testing.T) {
			t.Parallel()

			c, mt := newTestClient(t, sleekshop.WithCategoryExpansion(ex.expansion))
			mt.EXPECT().Send(mock.Anything, mock.Anything, parent("0")).
				Return(ok(`{"categories": [{"id": 1, "name": "clothing"}]}`)).Once()
			mt.EXPECT().Send(mock.Anything, mock.Anything, parent("1")).
				Return(ok(`{"categories": [{"id": 3, "name": "shirts"}]}`)).Once()
			mt.EXPECT().Send(mock.Anything, mock.Anything, parent("3")).
				Return(ok(`{"categories": []}`)).Once()

			env, err := c.Categories.Get(context.Background(), 0, "")
			require.NoError(t, err)
			require.True(t, env.OK())
			require.Len(t, env.Response, 1)
			require.Len(t, env.Response[0].Children, 1)
			assert.Equal(t, "shirts", env.Response[0].Children[0].Name)
		})
	}
}

func TestCategoryService_Get_ChildErrorAbortsTree(t *testing.T) {
	t.Parallel()

	for _, ex := range expansions {
		t.Run(ex.name, func(t *testing.T) {
			t.Parallel()

			c, mt := newTestClient(t, sleekshop.WithCategoryExpansion(ex.expansion))
			mt.EXPECT().Send(mock.Anything, mock.Anything, parent("0")).
				Return(ok(`{"categories": [{"id": 1, "name": "a"}]}`)).Once()
			mt.EXPECT().Send(mock.Anything, mock.Anything, parent("1")).
				Return(ok(`{"object": "error", "message": "category disabled"}`)).Once()

			env, err := c.Categories.Get(context.Background(), 0, "")
			require.NoError(t, err)
			assert.False(t, env.OK())
			assert.Equal(t, domain.KindBackend, env.Kind)
			assert.Equal(t, "category disabled", env.Message)
			assert.Nil(t, env.Response)
		})
	}
}

func TestCategoryService_Get_MaxDepth(t *testing.T) {
	t.Parallel()

	for _, ex := range expansions {
		t.Run(ex.name, func(t *testing.T) {
			t.Parallel()

			c, mt := newTestClient(t,
				sleekshop.WithCategoryExpansion(ex.expansion),
				sleekshop.WithMaxDepth(2),
			)
			// Every category has exactly one child.
			mt.EXPECT().Send(mock.Anything, mock.Anything, request("get_categories")).
				RunAndReturn(func(_ context.Context, _ string, f url.Values) sleekshop.RawResult {
					id, err := strconv.Atoi(f.Get("id_parent"))
					require.NoError(t, err)
					return ok(fmt.Sprintf(`{"categories": [{"id": %d, "name": "loop"}]}`, id+1))
				}).Times(3)

			env, err := c.Categories.Get(context.Background(), 0, "")
			require.NoError(t, err)
			assert.False(t, env.OK())
			assert.Equal(t, domain.KindResolve, env.Kind)
			assert.Equal(t, sleekshop.ErrMaxDepth.Error(), env.Message)
		})
	}
}

func TestWithMaxDepth_NonPositiveKeepsDefault(t *testing.T) {
	t.Parallel()

	for _, depth := range []int{0, -1} {
		t.Run(strconv.Itoa(depth), func(t *testing.T) {
			t.Parallel()

			c, mt := newTestClient(t, sleekshop.WithMaxDepth(depth))
			mt.EXPECT().Send(mock.Anything, mock.Anything, parent("0")).
				Return(ok(`{"categories": [{"id": 1, "name": "shirts"}]}`)).Once()
			mt.EXPECT().Send(mock.Anything, mock.Anything, parent("1")).
				Return(ok(`{"categories": ""}`)).Once()

			env, err := c.Categories.Get(context.Background(), 0, "")
			require.NoError(t, err)
			require.True(t, env.OK(), env.Message)
			require.Len(t, env.Response, 1)
			assert.Equal(t, "shirts", env.Response[0].Name)
			assert.Empty(t, env.Response[0].Children)
		})
	}
}

func TestCategoryService_Products(t *testing.T) {
	t.Parallel()

	c, mt := newTestClient(t)
	mt.EXPECT().
		Send(mock.Anything, mock.Anything, form("get_products_in_category", map[string]string{
			"id_category":   "12",
			"language":      "en_EN",
			"order":         "DESC",
			"order_columns": `["prod.price"]`,
			"left_limit":    "0",
			"right_limit":   "10",
		})).
		Return(ok(`{
			"category": {"id": 12, "name": "shirts", "seo": {"permalink": "/shirts"}, "attributes": [{"name": "headline", "value": "All shirts"}]},
			"count": 2,
			"products": [
				{"id": 1, "name": "blue", "availability": {"quantity": 0, "quantity_warning": 2, "allow_override": 0, "active": 1}},
				{"id": 2, "name": "red"}
			]
		}`)).
		Once()

	env, err := c.Categories.Products(context.Background(), 12, "", sleekshop.ListOptions{
		OrderColumns: []string{"prod.price"},
		Order:        "DESC",
		RightLimit:   10,
	})
	require.NoError(t, err)
	require.True(t, env.OK())

	listing := env.Response
	assert.Equal(t, 12, listing.ID)
	assert.Equal(t, "/shirts", listing.Permalink)
	assert.Equal(t, "All shirts", listing.Attributes["headline"])
	assert.Equal(t, 2, listing.ProductsCount)
	require.Contains(t, listing.Products, "blue")
	assert.Equal(t, domain.AvailabilityDanger, listing.Products["blue"].Availability.Label)
}

func TestCategoryService_Contents_UsesChainingField(t *testing.T) {
	t.Parallel()

	c, mt := newTestClient(t, sleekshop.WithOptions(domain.Options{ChainingField: "attributes.layout.value"}))
	mt.EXPECT().
		Send(mock.Anything, mock.Anything, request("get_contents_in_category")).
		Return(ok(`{"category": {"id": 3}, "count": 1, "contents": [
			{"id": 9, "class": "teaser", "name": "hello", "attributes": {"layout": {"value": "wide"}}}
		]}`)).
		Once()

	env, err := c.Categories.Contents(context.Background(), 3, "", sleekshop.ListOptions{})
	require.NoError(t, err)
	require.True(t, env.OK())
	require.NotNil(t, env.Response.Contents)
	assert.Equal(t, 1, env.Response.ContentsCount)
	assert.Len(t, env.Response.Contents.ByChain["wide"], 1)
	assert.Equal(t, "wide", env.Response.Contents.Chain[9].Current)
}
