package storefront_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/sleekshop-go/internal/storefront"
	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop"
	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop/mocks"
	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop/session"
)

const cartBody = `{"sum":"19.99","creation_date":"2026-01-02","last_inserted_element_id":3,
	"contents":[{"id":3,"id_product":42,"quantity":1,"price":"19.99","sum_price":"19.99","name":"shirt"}]}`

func newCartAPI(
	t *testing.T,
	client *sleekshop.Client,
	method sleekshop.StorageMethod,
	opts ...storefront.SessionsOption,
) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	sessions := storefront.NewSessions(client, method, opts...)
	storefront.RegisterCartRoutes(api, storefront.NewCartHandler(client.Cart, sessions))
	return api
}

func sessionFor(token string) any {
	return mock.MatchedBy(func(f url.Values) bool {
		return f.Get("session") == token
	})
}

func setCookies(resp interface{ Header() http.Header }) string {
	return strings.Join(resp.Header().Values("Set-Cookie"), "\n")
}

func TestCartHandler_Get_AcquiresAndStoresSession(t *testing.T) {
	t.Parallel()

	client, mt := newTestClient(t)
	mt.EXPECT().Send(mock.Anything, mock.Anything, request("get_new_session")).
		Return(ok(`{"code":"tok-1"}`)).Once()
	mt.EXPECT().Send(mock.Anything, mock.Anything, mock.MatchedBy(func(f url.Values) bool {
		return f.Get("request") == "get_cart" && f.Get("session") == "tok-1"
	})).Return(ok(cartBody)).Once()

	api := newCartAPI(t, client, sleekshop.StorageCookie)
	resp := api.Get("/api/v1/cart")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"sum":"19.99"`)
	assert.Contains(t, setCookies(resp), "sleekshop_session=tok-1")
}

func TestCartHandler_Get_ReusesCookieSession(t *testing.T) {
	t.Parallel()

	client, mt := newTestClient(t)
	mt.EXPECT().Send(mock.Anything, mock.Anything, sessionFor("tok-9")).
		Return(ok(cartBody)).Once()

	api := newCartAPI(t, client, sleekshop.StorageCookie)
	resp := api.Get("/api/v1/cart", "Cookie: sleekshop_session=tok-9")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, setCookies(resp))
	mt.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, request("get_new_session"))
}

func TestCartHandler_Get_ReusesSessionBesideMalformedCookies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cookie string
	}{
		{name: "bare name", cookie: "Cookie: sleekshop_session=tok-9; bad"},
		{name: "backslash in quoted value", cookie: `Cookie: _ga="a\b"; sleekshop_session=tok-9`},
		{name: "invalid name", cookie: "Cookie: b@d=1; sleekshop_session=tok-9; theme=dark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, mt := newTestClient(t)
			mt.EXPECT().Send(mock.Anything, mock.Anything, sessionFor("tok-9")).
				Return(ok(cartBody)).Once()

			api := newCartAPI(t, client, sleekshop.StorageCookie)
			resp := api.Get("/api/v1/cart", tt.cookie)

			require.Equal(t, http.StatusOK, resp.Code)
			assert.Empty(t, setCookies(resp))
			mt.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, request("get_new_session"))
		})
	}
}

func TestCartHandler_Get_ErrorInvalidatesSession(t *testing.T) {
	t.Parallel()

	client, mt := newTestClient(t)
	mt.EXPECT().Send(mock.Anything, mock.Anything, sessionFor("stale")).
		Return(ok(`{"object":"error","message":"session expired"}`)).Once()

	api := newCartAPI(t, client, sleekshop.StorageCookie)
	resp := api.Get("/api/v1/cart", "Cookie: sleekshop_session=stale")

	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Contains(t, resp.Body.String(), "session expired")
	cookies := setCookies(resp)
	assert.Contains(t, cookies, "sleekshop_session=;")
	assert.Contains(t, cookies, "Max-Age=0")
}

func TestCartHandler_SessionAcquisitionFailure(t *testing.T) {
	t.Parallel()

	client, mt := newTestClient(t)
	mt.EXPECT().Send(mock.Anything, mock.Anything, request("get_new_session")).
		Return(ok(`{"object":"error","message":"licence invalid"}`)).Once()

	api := newCartAPI(t, client, sleekshop.StorageCookie)
	resp := api.Get("/api/v1/cart")

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestCartHandler_AddItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       map[string]any
		setupMock  func(*mocks.MockTransport)
		wantStatus int
	}{
		{
			name: "adds with default fields",
			body: map[string]any{"product_id": 42, "quantity": 2},
			setupMock: func(m *mocks.MockTransport) {
				m.EXPECT().Send(mock.Anything, mock.Anything, mock.MatchedBy(func(f url.Values) bool {
					return f.Get("request") == "add_to_cart" &&
						f.Get("session") == "tok-2" &&
						f.Get("id_shopobject") == "42" &&
						f.Get("quantity") == "2" &&
						f.Get("price_field") == "price" &&
						f.Get("element_type") == sleekshop.DefaultElementType
				})).Return(ok(cartBody)).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing product returns 422",
			body:       map[string]any{"quantity": 1},
			setupMock:  func(_ *mocks.MockTransport) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "zero quantity returns 422",
			body:       map[string]any{"product_id": 42, "quantity": 0},
			setupMock:  func(_ *mocks.MockTransport) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, mt := newTestClient(t)
			tt.setupMock(mt)

			api := newCartAPI(t, client, sleekshop.StorageCookie)
			resp := api.Post("/api/v1/cart/items", "Cookie: sleekshop_session=tok-2", tt.body)
			require.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}

func TestCartHandler_DeleteAndClear(t *testing.T) {
	t.Parallel()

	client, mt := newTestClient(t)
	mt.EXPECT().Send(mock.Anything, mock.Anything, mock.MatchedBy(func(f url.Values) bool {
		return f.Get("request") == "del_from_cart" && f.Get("id_element") == "3"
	})).Return(ok(cartBody)).Once()
	mt.EXPECT().Send(mock.Anything, mock.Anything, request("clear_cart")).
		Return(ok(`{"sum":0,"contents":[]}`)).Once()

	api := newCartAPI(t, client, sleekshop.StorageCookie)

	resp := api.Delete("/api/v1/cart/items/3", "Cookie: sleekshop_session=tok-3")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = api.Delete("/api/v1/cart", "Cookie: sleekshop_session=tok-3")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"contents":[]`)
}

func TestCartHandler_KeyedSessionStorage(t *testing.T) {
	t.Parallel()

	backend := session.NewMemoryBackend()

	client, mt := newTestClient(t)
	mt.EXPECT().Send(mock.Anything, mock.Anything, request("get_new_session")).
		Return(ok(`{"code":"tok-k"}`)).Once()
	mt.EXPECT().Send(mock.Anything, mock.Anything, sessionFor("tok-k")).
		Return(ok(cartBody)).Twice()

	api := newCartAPI(t, client, sleekshop.StorageSession, storefront.WithBackend(backend, 0))

	first := api.Get("/api/v1/cart", "Cookie: sleekshop_visitor=visitor-1")
	require.Equal(t, http.StatusOK, first.Code)
	assert.NotContains(t, setCookies(first), "sleekshop_session")
	assert.Equal(t, 1, backend.Len())

	second := api.Get("/api/v1/cart", "Cookie: sleekshop_visitor=visitor-1")
	require.Equal(t, http.StatusOK, second.Code)
}

func TestCartHandler_KeyedSessionIssuesVisitorCookie(t *testing.T) {
	t.Parallel()

	client, mt := newTestClient(t)
	mt.EXPECT().Send(mock.Anything, mock.Anything, request("get_new_session")).
		Return(ok(`{"code":"tok-v"}`)).Once()
	mt.EXPECT().Send(mock.Anything, mock.Anything, sessionFor("tok-v")).
		Return(ok(cartBody)).Once()

	api := newCartAPI(t, client, sleekshop.StorageSession)
	resp := api.Get("/api/v1/cart")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, setCookies(resp), "sleekshop_visitor=")
}
