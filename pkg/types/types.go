// Package domain defines the client-facing types produced by the Sleekshop SDK.
package domain

import (
	"github.com/shopspring/decimal"
)

// Status is the outcome tag carried by every Envelope.
type Status string

// Status constants.
const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ErrorKind classifies why an Envelope is an error.
type ErrorKind string

// Error kind constants, in normalizer classification order.
const (
	KindNone      ErrorKind = ""
	KindTransport ErrorKind = "transport"
	KindHTTP      ErrorKind = "http"
	KindMalformed ErrorKind = "malformed"
	KindBackend   ErrorKind = "backend"
	KindResolve   ErrorKind = "resolve"
)

// Envelope is the uniform result of every remote call. Response is only
// meaningful when Status is StatusSuccess; Message only when it is StatusError.
type Envelope[T any] struct {
	Status     Status    `json:"status"`
	Response   T         `json:"response,omitempty"`
	Message    string    `json:"message,omitempty"`
	Kind       ErrorKind `json:"kind,omitempty"`
	HTTPStatus int       `json:"http_status,omitempty"`

	// Raw is the response body kept for diagnostics on error envelopes.
	Raw []byte `json:"-"`
}

// OK reports whether the envelope is a success.
func (e *Envelope[T]) OK() bool {
	return e != nil && e.Status == StatusSuccess
}

// Success wraps v in a success envelope.
func Success[T any](v T) *Envelope[T] {
	return &Envelope[T]{Status: StatusSuccess, Response: v}
}

// Failure builds an error envelope of the given kind.
func Failure[T any](kind ErrorKind, message string) *Envelope[T] {
	return &Envelope[T]{Status: StatusError, Kind: kind, Message: message}
}

// Recast carries an error envelope over to another response type. The
// response itself is dropped; message, kind, HTTP status and raw body survive.
func Recast[T, U any](e *Envelope[T]) *Envelope[U] {
	return &Envelope[U]{
		Status:     e.Status,
		Message:    e.Message,
		Kind:       e.Kind,
		HTTPStatus: e.HTTPStatus,
		Raw:        e.Raw,
	}
}

// AvailabilityLabel is the derived stock indicator of a shop object.
type AvailabilityLabel string

// Availability label constants.
const (
	AvailabilitySuccess AvailabilityLabel = "success"
	AvailabilityWarning AvailabilityLabel = "warning"
	AvailabilityDanger  AvailabilityLabel = "danger"
)

// Availability holds stock information and its derived label.
type Availability struct {
	Quantity        int               `json:"quantity"`
	QuantityWarning int               `json:"quantity_warning"`
	AllowOverride   int               `json:"allow_override"`
	Active          int               `json:"active"`
	Label           AvailabilityLabel `json:"label"`
}

// Attribute type tags used on the wire.
const (
	AttrText     = "TXT"
	AttrImage    = "IMG"
	AttrProducts = "PRODUCTS"
)

// Attribute is a single typed attribute of a shop object. Which value field
// is populated depends on Type.
type Attribute struct {
	Type  string `json:"type"`
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Label string `json:"label"`
	Value string `json:"value,omitempty"`

	// IMG only, rescaled to the configured thumbnail height.
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// PRODUCTS only.
	Products []ShopObject `json:"products,omitempty"`
}

// ShopObject is the generalized product/content node.
type ShopObject struct {
	ID           int                  `json:"id"`
	Class        string               `json:"class"`
	Name         string               `json:"name"`
	Permalink    string               `json:"permalink"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Keywords     string               `json:"keywords"`
	CreationDate string               `json:"creation_date"`
	Availability *Availability        `json:"availability,omitempty"`
	Attributes   map[string]Attribute `json:"attributes"`
	Variations   []ShopObject         `json:"variations"`
}

// Category is a hierarchical grouping node with recursively fetched children.
type Category struct {
	ID          int            `json:"id"`
	Label       string         `json:"label"`
	Name        string         `json:"name"`
	Permalink   string         `json:"permalink"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Keywords    string         `json:"keywords"`
	Attributes  map[string]any `json:"attributes"`
	Link        string         `json:"link"`
	Position    string         `json:"position"`
	Children    []Category     `json:"children"`
}

// CategoryDetails is the category header returned alongside listings.
type CategoryDetails struct {
	ID          int            `json:"id_category"`
	Name        string         `json:"name"`
	Permalink   string         `json:"permalink"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Keywords    string         `json:"keywords"`
	Attributes  map[string]any `json:"attributes"`
}

// CategoryListing is a category together with the shop objects it holds.
type CategoryListing struct {
	CategoryDetails

	Products      map[string]ShopObject `json:"products,omitempty"`
	ProductsCount int                   `json:"products_count"`
	Contents      *ContentSet           `json:"contents,omitempty"`
	ContentsCount int                   `json:"contents_count"`
}

// ChainLink positions a content within the layout chain of its category.
type ChainLink struct {
	Prev        string `json:"prev"`
	Current     string `json:"current"`
	Next        string `json:"next"`
	Index       int    `json:"index"`
	LayoutIndex int    `json:"layoutindex"`
	LayoutMax   int    `json:"layoutmax"`
}

// ContentSet groups the contents of a category.
type ContentSet struct {
	Items   map[string]ShopObject   `json:"items"`
	Order   []string                `json:"order"`
	ByClass map[string][]ShopObject `json:"byclass"`
	Layouts map[string]bool         `json:"layouts,omitempty"`
	Chain   map[int]ChainLink       `json:"chain"`

	// ByChain groups by the configured chaining field when it is not "class".
	// Experimental.
	ByChain map[string][]ShopObject `json:"bychain,omitempty"`
}

// SearchResult is a shop object search reshaped by name.
type SearchResult struct {
	Count int                   `json:"count"`
	Items map[string]ShopObject `json:"items"`
}

// CartItem is one cart position. Coupons appear as negative-priced items.
type CartItem struct {
	Type        string            `json:"type,omitempty"`
	ID          int               `json:"id"`
	ProductID   int               `json:"id_product"`
	Quantity    decimal.Decimal   `json:"quantity"`
	Price       decimal.Decimal   `json:"price"`
	SumPrice    decimal.Decimal   `json:"sum_price"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// DeliveryCost is one delivery cost position.
type DeliveryCost struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Tax   decimal.Decimal `json:"tax"`
}

// DeliveryCosts totals the delivery cost positions keyed by name.
type DeliveryCosts struct {
	Sum       decimal.Decimal         `json:"sum"`
	Positions map[string]DeliveryCost `json:"positions"`
}

// Cart is the flattened cart of a session.
type Cart struct {
	Sum            decimal.Decimal `json:"sum"`
	CreationDate   string          `json:"creation_date"`
	LastInsertedID int             `json:"last_inserted_id"`
	Contents       []CartItem      `json:"contents"`
	DeliveryCosts  DeliveryCosts   `json:"delivery_costs"`
}

// User is a flattened user profile.
type User struct {
	ID          int            `json:"id_user"`
	SessionID   string         `json:"session_id"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	Salutation  string         `json:"salutation"`
	FirstName   string         `json:"firstname"`
	LastName    string         `json:"lastname"`
	CompanyName string         `json:"companyname"`
	Department  string         `json:"department"`
	Street      string         `json:"street"`
	Number      string         `json:"number"`
	Zip         string         `json:"zip"`
	City        string         `json:"city"`
	State       string         `json:"state"`
	Country     string         `json:"country"`
	Additional  map[string]any `json:"additional,omitempty"`
}

// Registration is the result of registering a user.
type Registration struct {
	Status    string `json:"status"`
	UserID    int    `json:"id_user"`
	SessionID string `json:"session_id"`
}

// LoginResult is the result of a user login.
type LoginResult struct {
	Status    string `json:"status"`
	UserID    int    `json:"id_user"`
	SessionID string `json:"session_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

// StatusResult is the reshaped response of operations that only report a status.
type StatusResult struct {
	Status string `json:"status"`
}

// UserOrder is a summary of an order placed by a user.
type UserOrder struct {
	ID                 int             `json:"id"`
	OrderNumber        int             `json:"order_number"`
	CreationDate       string          `json:"creation_date"`
	OrderEmail         string          `json:"order_email"`
	PaymentMethod      string          `json:"payment_method"`
	PaymentStateName   string          `json:"payment_state_name"`
	PaymentStateLabel  string          `json:"payment_state_label"`
	DeliveryMethod     string          `json:"delivery_method"`
	DeliveryStateName  string          `json:"delivery_state_name"`
	DeliveryStateLabel string          `json:"delivery_state_label"`
	OrderState         string          `json:"order_state"`
	CartSum            decimal.Decimal `json:"cart_sum"`
}

// PaymentMethod is an available payment method.
type PaymentMethod struct {
	ID         int               `json:"id"`
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// PaymentResult is the reshaped outcome of a payment attempt.
type PaymentResult struct {
	Method   string `json:"method"`
	Status   string `json:"status"`
	Redirect string `json:"redirect"`
	Token    any    `json:"token"`
}

// Options are the caller-facing SDK settings.
type Options struct {
	DefaultLanguage         string `json:"default_language"           yaml:"default_language"`
	Token                   string `json:"token"                      yaml:"token"`
	ProductImageThumbHeight int    `json:"product_image_thumb_height" yaml:"product_image_thumb_height"`
	TemplatePath            string `json:"template_path"              yaml:"template_path"`
	CategoriesID            int    `json:"categories_id"              yaml:"categories_id"`
	ChainingField           string `json:"chaining_field"             yaml:"chaining_field"`
}

// DefaultOptions returns the SDK defaults.
func DefaultOptions() Options {
	return Options{
		DefaultLanguage:         "en_EN",
		Token:                   "sleekshop",
		ProductImageThumbHeight: 100,
		ChainingField:           "class",
	}
}

// SessionCookieName is the cookie (or store key) that holds the session token.
func (o Options) SessionCookieName() string {
	return o.Token + "_session"
}
