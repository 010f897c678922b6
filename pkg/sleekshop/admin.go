package sleekshop

import (
	"context"
	"encoding/json"

	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

// Administrative operations. All of them except Server.Status and
// Aggregate.Run send the licence secret key.

// ClassService manages shop object classes.
type ClassService struct {
	c *Client
}

// Details returns a class with its attribute definitions.
func (s *ClassService) Details(ctx context.Context, classID int) (*domain.Envelope[json.RawMessage], error) {
	return s.c.passthrough(ctx, newParams("get_class_details").Privileged().Int("id_class", classID))
}

// Create creates a class of the given type.
func (s *ClassService) Create(ctx context.Context, name, classType string) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("create_class").Privileged().
		String("name", name).
		String("type", classType)
	return s.c.passthrough(ctx, p)
}

// Delete deletes a class.
func (s *ClassService) Delete(ctx context.Context, classID int) (*domain.Envelope[json.RawMessage], error) {
	return s.c.passthrough(ctx, newParams("delete_class").Privileged().Int("id_class", classID))
}

// CreateAttributes adds attribute definitions to a class.
func (s *ClassService) CreateAttributes(
	ctx context.Context,
	classID int,
	attributes []map[string]any,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("create_class_attributes").Privileged().
		Int("id_class", classID).
		JSON("attributes", attributes)
	return s.c.passthrough(ctx, p)
}

// DeleteAttributes removes attribute definitions from a class.
func (s *ClassService) DeleteAttributes(
	ctx context.Context,
	classID int,
	attributes []map[string]any,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("delete_class_attributes").Privileged().
		Int("id_class", classID).
		JSON("attributes", attributes)
	return s.c.passthrough(ctx, p)
}

// WarehouseEntityInput describes a warehouse entity.
type WarehouseEntityInput struct {
	Class          string
	Name           string
	ManufacturerID int
	Attributes     map[string]any
	Metadata       map[string]any
}

// WarehouseService manages warehouse entities, stock and product bindings.
type WarehouseService struct {
	c *Client
}

// CreateEntity creates a warehouse entity.
func (s *WarehouseService) CreateEntity(
	ctx context.Context,
	in WarehouseEntityInput,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("create_warehouse_entity").Privileged().
		String("class", in.Class).
		String("name", in.Name).
		Int("id_manufacturer", in.ManufacturerID).
		JSON("attributes", in.Attributes).
		JSON("metadata", in.Metadata)
	return s.c.passthrough(ctx, p)
}

// UpdateEntity updates a warehouse entity. in.Class is ignored.
func (s *WarehouseService) UpdateEntity(
	ctx context.Context,
	entityID int,
	in WarehouseEntityInput,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("update_warehouse_entity").Privileged().
		Int("id_warehouse_entity", entityID).
		String("name", in.Name).
		Int("id_manufacturer", in.ManufacturerID).
		JSON("attributes", in.Attributes).
		JSON("metadata", in.Metadata)
	return s.c.passthrough(ctx, p)
}

// DeleteEntity deletes a warehouse entity.
func (s *WarehouseService) DeleteEntity(ctx context.Context, entityID int) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("delete_warehouse_entity").Privileged().Int("id_warehouse_entity", entityID)
	return s.c.passthrough(ctx, p)
}

// InventoryPlace books quantity units of a product into a warehouse entity.
func (s *WarehouseService) InventoryPlace(
	ctx context.Context,
	entityID, productID, quantity int,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("inventory_place").Privileged().
		Int("id_warehouse_entity", entityID).
		Int("id_product", productID).
		Int("quantity", quantity)
	return s.c.passthrough(ctx, p)
}

// InventoryTake books quantity units of an element out of storage.
func (s *WarehouseService) InventoryTake(
	ctx context.Context,
	storage, elementNumber string,
	quantity int,
	note string,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("inventory_take").Privileged().
		String("storage", storage).
		String("element_number", elementNumber).
		Int("quantity", quantity).
		String("note", note)
	return s.c.passthrough(ctx, p)
}

// AddBinding binds a warehouse element to a product.
func (s *WarehouseService) AddBinding(
	ctx context.Context,
	productID int,
	elementNumber string,
	quantity int,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("add_binding").Privileged().
		Int("id_product", productID).
		String("element_number", elementNumber).
		Int("quantity", quantity)
	return s.c.passthrough(ctx, p)
}

// DeleteBinding removes a binding between a warehouse element and a product.
func (s *WarehouseService) DeleteBinding(
	ctx context.Context,
	productID int,
	elementNumber string,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("delete_binding").Privileged().
		Int("id_product", productID).
		String("element_number", elementNumber)
	return s.c.passthrough(ctx, p)
}

// WebhookService manages webhooks.
type WebhookService struct {
	c *Client
}

// Create registers a webhook for an event.
func (s *WebhookService) Create(ctx context.Context, name, event string) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("create_webhook").Privileged().
		String("name", name).
		String("event", event)
	return s.c.passthrough(ctx, p)
}

// Update sets the target URL and parameter of a webhook.
func (s *WebhookService) Update(
	ctx context.Context,
	name, url, parameter string,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("update_webhook").Privileged().
		String("name", name).
		String("url", url).
		String("parameter", parameter)
	return s.c.passthrough(ctx, p)
}

// ChannelInput describes a sales channel.
type ChannelInput struct {
	Name         string
	Description  string
	ShopActive   bool
	ServerOutput string
}

// ServerService reports backend status and manages channels.
type ServerService struct {
	c *Client
}

// Status returns the backend status.
func (s *ServerService) Status(ctx context.Context) (*domain.Envelope[json.RawMessage], error) {
	return s.c.passthrough(ctx, newParams("get_status"))
}

// CreateChannel creates a sales channel. ServerOutput defaults to json.
func (s *ServerService) CreateChannel(
	ctx context.Context,
	in ChannelInput,
) (*domain.Envelope[json.RawMessage], error) {
	output := in.ServerOutput
	if output == "" {
		output = "json"
	}
	active := 0
	if in.ShopActive {
		active = 1
	}
	p := newParams("create_channel").Privileged().
		String("name", in.Name).
		String("description", in.Description).
		Int("shop_active", active).
		String("server_output", output)
	return s.c.passthrough(ctx, p)
}

// ApplicationService calls installed backend applications.
type ApplicationService struct {
	c *Client
}

// Call forwards request to application with the given args.
func (s *ApplicationService) Call(
	ctx context.Context,
	application, request string,
	args map[string]any,
) (*domain.Envelope[json.RawMessage], error) {
	p := newParams("application_api_call").Privileged().
		String("application", application).
		String("app_request", request).
		JSON("args", args)
	return s.c.passthrough(ctx, p)
}

// AggregateService runs aggregation pipelines.
type AggregateService struct {
	c *Client
}

// Run executes an aggregation pipeline.
func (s *AggregateService) Run(
	ctx context.Context,
	pipe []map[string]any,
) (*domain.Envelope[json.RawMessage], error) {
	return s.c.passthrough(ctx, newParams("aggregate").JSON("pipe", pipe))
}
