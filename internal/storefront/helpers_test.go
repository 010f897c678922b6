package storefront_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop"
	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop/mocks"
)

// newTestClient returns an SDK client whose transport is a mock.
func newTestClient(t *testing.T) (*sleekshop.Client, *mocks.MockTransport) {
	t.Helper()
	mt := mocks.NewMockTransport(t)
	c := sleekshop.New("https://backend.test/srv/service/", "user", "pass", sleekshop.WithTransport(mt))
	return c, mt
}

// request matches a form sent for the named backend operation.
func request(name string) any {
	return mock.MatchedBy(func(f url.Values) bool {
		return f.Get("request") == name
	})
}

func ok(body string) sleekshop.RawResult {
	return sleekshop.RawResult{StatusCode: 200, Body: []byte(body)}
}
