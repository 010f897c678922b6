package sleekshop_test

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop"
	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

func TestAdminServices_Privilege(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		request    string
		privileged bool
		call       func(c *sleekshop.Client) (*domain.Envelope[json.RawMessage], error)
	}{
		{
			name:       "class details",
			request:    "get_class_details",
			privileged: true,
			call: func(c *sleekshop.Client) (*domain.Envelope[json.RawMessage], error) {
				return c.Classes.Details(context.Background(), 4)
			},
		},
		{
			name:       "warehouse place",
			request:    "inventory_place",
			privileged: true,
			call: func(c *sleekshop.Client) (*domain.Envelope[json.RawMessage], error) {
				return c.Warehouse.InventoryPlace(context.Background(), 1, 42, 5)
			},
		},
		{
			name:       "webhook create",
			request:    "create_webhook",
			privileged: true,
			call: func(c *sleekshop.Client) (*domain.Envelope[json.RawMessage], error) {
				return c.Webhooks.Create(context.Background(), "orders", "order_created")
			},
		},
		{
			name:       "application call",
			request:    "application_api_call",
			privileged: true,
			call: func(c *sleekshop.Client) (*domain.Envelope[json.RawMessage], error) {
				return c.Applications.Call(context.Background(), "erp", "sync", nil)
			},
		},
		{
			name:    "server status",
			request: "get_status",
			call: func(c *sleekshop.Client) (*domain.Envelope[json.RawMessage], error) {
				return c.Server.Status(context.Background())
			},
		},
		{
			name:    "aggregate",
			request: "aggregate",
			call: func(c *sleekshop.Client) (*domain.Envelope[json.RawMessage], error) {
				return c.Aggregate.Run(context.Background(), []map[string]any{{"$match": map[string]any{"class": "product"}}})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, mt := newTestClient(t, sleekshop.WithSecretKey("key"))
			mt.EXPECT().
				Send(mock.Anything, mock.Anything, mock.MatchedBy(func(f url.Values) bool {
					return f.Get("request") == tt.request && f.Has("licence_secret_key") == tt.privileged
				})).
				Return(ok(`{"status": "SUCCESS"}`)).
				Once()

			env, err := tt.call(c)
			require.NoError(t, err)
			assert.True(t, env.OK())
		})
	}
}

func TestServerService_CreateChannelDefaults(t *testing.T) {
	t.Parallel()

	c, mt := newTestClient(t, sleekshop.WithSecretKey("key"))
	mt.EXPECT().
		Send(mock.Anything, mock.Anything, form("create_channel", map[string]string{
			"name":          "pos",
			"shop_active":   "1",
			"server_output": "json",
		})).
		Return(ok(`{"id_channel": 2}`)).
		Once()

	env, err := c.Server.CreateChannel(context.Background(), sleekshop.ChannelInput{Name: "pos", ShopActive: true})
	require.NoError(t, err)
	assert.True(t, env.OK())
}

func TestWarehouseService_CreateEntity(t *testing.T) {
	t.Parallel()

	c, mt := newTestClient(t, sleekshop.WithSecretKey("key"))
	mt.EXPECT().
		Send(mock.Anything, mock.Anything, form("create_warehouse_entity", map[string]string{
			"class":           "shelf",
			"name":            "A1",
			"id_manufacturer": "0",
			"attributes":      `{"row":"1"}`,
			"metadata":        "[]",
		})).
		Return(ok(`{"id_warehouse_entity": 9}`)).
		Once()

	env, err := c.Warehouse.CreateEntity(context.Background(), sleekshop.WarehouseEntityInput{
		Class:      "shelf",
		Name:       "A1",
		Attributes: map[string]any{"row": "1"},
	})
	require.NoError(t, err)
	assert.True(t, env.OK())
	assert.JSONEq(t, `{"id_warehouse_entity": 9}`, string(env.Response))
}
