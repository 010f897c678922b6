package sleekshop_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop"
	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop/mocks"
)

const testEndpoint = "https://backend.test/srv/service/"

func newTestClient(t *testing.T, opts ...sleekshop.Option) (*sleekshop.Client, *mocks.MockTransport) {
	t.Helper()
	mt := mocks.NewMockTransport(t)
	opts = append([]sleekshop.Option{sleekshop.WithTransport(mt)}, opts...)
	return sleekshop.New(testEndpoint, "shop", "secret", opts...), mt
}

// request matches a form sent for the named backend operation.
func request(name string) any {
	return mock.MatchedBy(func(f url.Values) bool {
		return f.Get("request") == name
	})
}

// form matches a form for the named operation carrying the given fields.
func form(name string, fields map[string]string) any {
	return mock.MatchedBy(func(f url.Values) bool {
		if f.Get("request") != name {
			return false
		}
		for k, v := range fields {
			if f.Get(k) != v {
				return false
			}
		}
		return true
	})
}

func ok(body string) sleekshop.RawResult {
	return sleekshop.RawResult{StatusCode: 200, Body: []byte(body)}
}
