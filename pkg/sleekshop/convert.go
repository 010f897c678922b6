package sleekshop

import (
	"fmt"
	"html"
	"maps"
	"reflect"
	"slices"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

var decimalType = reflect.TypeOf(decimal.Decimal{})

// decimalHook lets mapstructure fill decimal.Decimal fields from the
// numbers and numeric strings the backend mixes freely.
func decimalHook() mapstructure.DecodeHookFunc {
	return func(_, t reflect.Type, data any) (any, error) {
		if t != decimalType {
			return data, nil
		}
		switch v := data.(type) {
		case float64:
			return decimal.NewFromFloat(v), nil
		case float32:
			return decimal.NewFromFloat32(v), nil
		case int:
			return decimal.NewFromInt(int64(v)), nil
		case int64:
			return decimal.NewFromInt(v), nil
		case string:
			if v == "" {
				return decimal.Zero, nil
			}
			return decimal.NewFromString(v)
		case bool:
			if v {
				return decimal.NewFromInt(1), nil
			}
			return decimal.Zero, nil
		}
		return data, nil
	}
}

// decodeWeak decodes a loosely typed map into out. Nested collections are
// normalized by the callers before decoding.
func decodeWeak(input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       decimalHook(),
		Result:           out,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}
	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("decoding %T: %w", out, err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

type wireCart struct {
	Sum            decimal.Decimal `mapstructure:"sum"`
	CreationDate   string          `mapstructure:"creation_date"`
	LastInsertedID int             `mapstructure:"last_inserted_element_id"`
}

type wireCartElement struct {
	Type        string          `mapstructure:"type"`
	ID          int             `mapstructure:"id"`
	ProductID   int             `mapstructure:"id_product"`
	Quantity    decimal.Decimal `mapstructure:"quantity"`
	Price       decimal.Decimal `mapstructure:"price"`
	SumPrice    decimal.Decimal `mapstructure:"sum_price"`
	Name        string          `mapstructure:"name"`
	Description string          `mapstructure:"description"`
}

type wireCoupon struct {
	Name       string          `mapstructure:"name"`
	UsedAmount decimal.Decimal `mapstructure:"used_amount"`
}

type wireSum struct {
	Sum decimal.Decimal `mapstructure:"sum"`
}

// toCart flattens a backend cart. Coupon positions are appended as
// negative-priced items and the coupon sum is taken off the total.
func toCart(payload map[string]any) (domain.Cart, error) {
	var wc wireCart
	if err := decodeWeak(payload, &wc); err != nil {
		return domain.Cart{}, err
	}

	cart := domain.Cart{
		Sum:            wc.Sum,
		CreationDate:   wc.CreationDate,
		LastInsertedID: wc.LastInsertedID,
		Contents:       []domain.CartItem{},
		DeliveryCosts: domain.DeliveryCosts{
			Sum:       decimal.Zero,
			Positions: map[string]domain.DeliveryCost{},
		},
	}

	elements, err := nodeList(payload["contents"])
	if err != nil {
		return domain.Cart{}, fmt.Errorf("cart contents: %w", err)
	}
	for _, raw := range elements {
		var we wireCartElement
		if err := decodeWeak(raw, &we); err != nil {
			return domain.Cart{}, err
		}
		item := domain.CartItem{
			Type:        we.Type,
			ID:          we.ID,
			ProductID:   we.ProductID,
			Quantity:    we.Quantity,
			Price:       we.Price,
			SumPrice:    we.SumPrice,
			Name:        we.Name,
			Description: we.Description,
			Attributes:  map[string]string{},
		}
		attrs, err := attributeList(raw["attributes"])
		if err != nil {
			return domain.Cart{}, fmt.Errorf("cart element %d attributes: %w", we.ID, err)
		}
		for _, a := range attrs {
			item.Attributes[cast.ToString(a["name"])] = cast.ToString(a["value"])
		}
		cart.Contents = append(cart.Contents, item)
	}

	coupons := asMap(payload["coupons"])
	var couponSum wireSum
	if err := decodeWeak(coupons, &couponSum); err != nil {
		return domain.Cart{}, err
	}
	positions, err := nodeList(coupons["positions"])
	if err != nil {
		return domain.Cart{}, fmt.Errorf("cart coupons: %w", err)
	}
	for _, raw := range positions {
		var wcp wireCoupon
		if err := decodeWeak(raw, &wcp); err != nil {
			return domain.Cart{}, err
		}
		cart.Contents = append(cart.Contents, domain.CartItem{
			Quantity:    decimal.NewFromInt(1),
			Price:       wcp.UsedAmount.Neg(),
			SumPrice:    wcp.UsedAmount.Neg(),
			Name:        wcp.Name,
			Description: " ",
		})
	}

	delivery := asMap(payload["delivery_costs"])
	var deliverySum wireSum
	if err := decodeWeak(delivery, &deliverySum); err != nil {
		return domain.Cart{}, err
	}
	cart.DeliveryCosts.Sum = deliverySum.Sum
	costs, err := nodeList(delivery["positions"])
	if err != nil {
		return domain.Cart{}, fmt.Errorf("cart delivery costs: %w", err)
	}
	for _, raw := range costs {
		var dc struct {
			Name  string          `mapstructure:"name"`
			Price decimal.Decimal `mapstructure:"price"`
			Tax   decimal.Decimal `mapstructure:"tax"`
		}
		if err := decodeWeak(raw, &dc); err != nil {
			return domain.Cart{}, err
		}
		cart.DeliveryCosts.Positions[dc.Name] = domain.DeliveryCost{
			Name:  dc.Name,
			Price: dc.Price,
			Tax:   dc.Tax,
		}
	}

	cart.Sum = cart.Sum.Sub(couponSum.Sum)
	return cart, nil
}

type wireUser struct {
	ID        int    `mapstructure:"id_user"`
	SessionID string `mapstructure:"session_id"`
	Username  string `mapstructure:"username"`
	Email     string `mapstructure:"email"`
}

// toUser flattens a user payload. Address fields come out of the attribute
// map, everything in additional_attributes lands in Additional.
func toUser(payload map[string]any) (domain.User, error) {
	var wu wireUser
	if err := decodeWeak(payload, &wu); err != nil {
		return domain.User{}, err
	}

	attrs, err := attributeList(payload["attributes"])
	if err != nil {
		return domain.User{}, fmt.Errorf("user attributes: %w", err)
	}
	values := make(map[string]string, len(attrs))
	for _, a := range attrs {
		values[cast.ToString(a["name"])] = cast.ToString(a["value"])
	}

	user := domain.User{
		ID:          wu.ID,
		SessionID:   wu.SessionID,
		Username:    wu.Username,
		Email:       wu.Email,
		Salutation:  values["salutation"],
		FirstName:   values["firstname"],
		LastName:    values["lastname"],
		CompanyName: values["companyname"],
		Department:  values["department"],
		Street:      values["street"],
		Number:      values["number"],
		Zip:         values["zip"],
		City:        values["city"],
		State:       values["state"],
		Country:     values["country"],
	}

	additional, err := attributeList(payload["additional_attributes"])
	if err != nil {
		return domain.User{}, fmt.Errorf("user additional attributes: %w", err)
	}
	if len(additional) > 0 {
		user.Additional = make(map[string]any, len(additional))
		for _, a := range additional {
			user.Additional[cast.ToString(a["name"])] = a["value"]
		}
	}

	return user, nil
}

type wireUserOrder struct {
	ID             int    `mapstructure:"id"`
	OrderNumber    int    `mapstructure:"order_number"`
	CreationDate   string `mapstructure:"creation_date"`
	OrderEmail     string `mapstructure:"order_email"`
	PaymentMethod  string `mapstructure:"payment_method"`
	DeliveryMethod string `mapstructure:"delivery_method"`
	OrderState     string `mapstructure:"order_state"`
	PaymentState   struct {
		Name  string `mapstructure:"name"`
		Label string `mapstructure:"label"`
	} `mapstructure:"payment_state"`
	DeliveryState struct {
		Name  string `mapstructure:"name"`
		Label string `mapstructure:"label"`
	} `mapstructure:"delivery_state"`
	Cart wireSum `mapstructure:"cart"`
}

func toUserOrders(payload map[string]any) ([]domain.UserOrder, error) {
	orders, err := nodeList(payload["orders"])
	if err != nil {
		return nil, fmt.Errorf("user orders: %w", err)
	}

	out := make([]domain.UserOrder, 0, len(orders))
	for _, raw := range orders {
		var wo wireUserOrder
		if err := decodeWeak(raw, &wo); err != nil {
			return nil, err
		}
		out = append(out, domain.UserOrder{
			ID:                 wo.ID,
			OrderNumber:        wo.OrderNumber,
			CreationDate:       wo.CreationDate,
			OrderEmail:         wo.OrderEmail,
			PaymentMethod:      wo.PaymentMethod,
			PaymentStateName:   wo.PaymentState.Name,
			PaymentStateLabel:  wo.PaymentState.Label,
			DeliveryMethod:     wo.DeliveryMethod,
			DeliveryStateName:  wo.DeliveryState.Name,
			DeliveryStateLabel: wo.DeliveryState.Label,
			OrderState:         wo.OrderState,
			CartSum:            wo.Cart.Sum,
		})
	}
	return out, nil
}

func toRegistration(payload map[string]any) (domain.Registration, error) {
	var r struct {
		Status    string `mapstructure:"status"`
		UserID    int    `mapstructure:"id_user"`
		SessionID string `mapstructure:"session_id"`
	}
	if err := decodeWeak(payload, &r); err != nil {
		return domain.Registration{}, err
	}
	return domain.Registration{Status: r.Status, UserID: r.UserID, SessionID: r.SessionID}, nil
}

func toLoginResult(payload map[string]any) (domain.LoginResult, error) {
	var r struct {
		Status    string `mapstructure:"status"`
		UserID    int    `mapstructure:"id_user"`
		SessionID string `mapstructure:"session_id"`
		Username  string `mapstructure:"username"`
		Email     string `mapstructure:"email"`
	}
	if err := decodeWeak(payload, &r); err != nil {
		return domain.LoginResult{}, err
	}
	return domain.LoginResult{
		Status:    r.Status,
		UserID:    r.UserID,
		SessionID: r.SessionID,
		Username:  r.Username,
		Email:     r.Email,
	}, nil
}

func toStatus(payload map[string]any) (domain.StatusResult, error) {
	return domain.StatusResult{Status: cast.ToString(payload["status"])}, nil
}

// toPaymentMethods keys the available payment methods by name. The methods
// are either listed under payment_methods or sent as the payload's values.
func toPaymentMethods(payload map[string]any) (map[string]domain.PaymentMethod, error) {
	source := payload["payment_methods"]
	if source == nil {
		filtered := make(map[string]any, len(payload))
		for k, v := range payload {
			if asMap(v) != nil {
				filtered[k] = v
			}
		}
		source = filtered
	}

	methods, err := nodeList(source)
	if err != nil {
		return nil, fmt.Errorf("payment methods: %w", err)
	}

	out := make(map[string]domain.PaymentMethod, len(methods))
	for _, raw := range methods {
		var pm struct {
			ID   int    `mapstructure:"id"`
			Name string `mapstructure:"name"`
		}
		if err := decodeWeak(raw, &pm); err != nil {
			return nil, err
		}
		method := domain.PaymentMethod{ID: pm.ID, Name: pm.Name}
		if attrs := cast.ToStringMapString(raw["attributes"]); len(attrs) > 0 {
			method.Attributes = attrs
		}
		out[pm.Name] = method
	}
	return out, nil
}

func toPaymentResult(payload map[string]any) (domain.PaymentResult, error) {
	return domain.PaymentResult{
		Method:   cast.ToString(payload["method"]),
		Status:   cast.ToString(payload["status"]),
		Redirect: html.UnescapeString(cast.ToString(payload["redirect"])),
		Token:    payload["token"],
	}, nil
}

// toCategoryDetails extracts the category header of a listing response.
// Category attributes are flattened to name → value.
func toCategoryDetails(payload map[string]any) (domain.CategoryDetails, error) {
	cat := asMap(payload["category"])
	seo := asMap(cat["seo"])

	attrs, err := attributeList(cat["attributes"])
	if err != nil {
		return domain.CategoryDetails{}, fmt.Errorf("category attributes: %w", err)
	}

	return domain.CategoryDetails{
		ID:          cast.ToInt(cat["id"]),
		Name:        cast.ToString(cat["name"]),
		Permalink:   cast.ToString(seo["permalink"]),
		Title:       cast.ToString(seo["title"]),
		Description: cast.ToString(seo["description"]),
		Keywords:    cast.ToString(seo["keywords"]),
		Attributes:  flattenAttributes(attrs),
	}, nil
}

func flattenAttributes(attrs []map[string]any) map[string]any {
	out := make(map[string]any, len(attrs))
	for _, a := range attrs {
		out[cast.ToString(a["name"])] = a["value"]
	}
	return out
}
