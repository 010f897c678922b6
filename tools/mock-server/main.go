// Package main implements a mock sleekshop backend for local development.
// It answers the form-encoded POST protocol from JSON fixtures and keeps
// sessions and carts in memory, so the storefront and sleekctl can run
// without a shop licence.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// keyFields are the form fields that select a specific fixture, tried in
// order as "request:field=value" before the bare request name.
var keyFields = []string{"id_parent", "id_category", "id_product", "id_content", "permalink"}

type catalogEntry struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type fixtures struct {
	Responses map[string]json.RawMessage `json:"responses"`
	Catalog   map[string]catalogEntry    `json:"catalog"`
}

type cartElement struct {
	ID        int             `json:"id"`
	Type      string          `json:"type"`
	ProductID int             `json:"id_product"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	SumPrice  decimal.Decimal `json:"sum_price"`
	Name      string          `json:"name"`
}

type cart struct {
	created  time.Time
	lastID   int
	elements []cartElement
}

type backend struct {
	logger   *slog.Logger
	fixtures *fixtures

	mu      sync.Mutex
	nextSID int
	carts   map[string]*cart
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/fixtures.json", "path to response fixtures")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fx, err := loadFixtures(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixtures", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixtures", "responses", len(fx.Responses), "catalog", len(fx.Catalog))

	mux := http.NewServeMux()
	mux.Handle("POST /srv/service/", newBackend(logger, fx))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock sleekshop backend", "addr", addr, "endpoint", "/srv/service/")

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixtures(path string) (*fixtures, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixtures: %w", err)
	}
	var fx fixtures
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixtures: %w", err)
	}
	return &fx, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func newBackend(logger *slog.Logger, fx *fixtures) *backend {
	return &backend{
		logger:   logger,
		fixtures: fx,
		carts:    make(map[string]*cart),
	}
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, errorObject("", "unreadable form: "+err.Error()))
		return
	}
	request := r.PostForm.Get("request")

	if r.PostForm.Get("licence_username") == "" || r.PostForm.Get("licence_password") == "" {
		b.logger.Warn("request without licence", "request", request)
		writeJSON(w, errorObject("LICENCE", "licence invalid"))
		return
	}

	switch request {
	case "get_new_session":
		writeJSON(w, b.newSession())
	case "get_cart", "add_to_cart", "sub_from_cart", "del_from_cart", "clear_cart":
		writeJSON(w, b.cartRequest(request, r.PostForm))
	default:
		if raw, ok := b.lookup(request, r.PostForm); ok {
			writeJSON(w, raw)
			return
		}
		b.logger.Info("no fixture", "request", request)
		writeJSON(w, errorObject("", "unknown request "+request))
	}
}

func (b *backend) lookup(request string, form map[string][]string) (json.RawMessage, bool) {
	for _, f := range keyFields {
		vals := form[f]
		if len(vals) == 0 {
			continue
		}
		if raw, ok := b.fixtures.Responses[request+":"+f+"="+vals[0]]; ok {
			return raw, true
		}
	}
	raw, ok := b.fixtures.Responses[request]
	return raw, ok
}

func (b *backend) newSession() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextSID++
	code := "mock-session-" + strconv.Itoa(b.nextSID)
	b.carts[code] = &cart{created: time.Now()}
	b.logger.Info("issued session", "code", code)
	return map[string]any{"object": "session", "code": code}
}

func (b *backend) cartRequest(request string, form map[string][]string) any {
	get := func(key string) string {
		if vals := form[key]; len(vals) > 0 {
			return vals[0]
		}
		return ""
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.carts[get("session")]
	if !ok {
		return errorObject("", "invalid session")
	}

	switch request {
	case "add_to_cart":
		entry, ok := b.fixtures.Catalog[get("id_shopobject")]
		if !ok {
			return errorObject("", "unknown shopobject "+get("id_shopobject"))
		}
		id, _ := strconv.Atoi(get("id_shopobject")) //nolint:errcheck // catalog keys are numeric
		qty, err := strconv.Atoi(get("quantity"))
		if err != nil || qty < 1 {
			qty = 1
		}
		elementType := get("element_type")
		if elementType == "" {
			elementType = "PRODUCT_GR"
		}
		c.lastID++
		c.elements = append(c.elements, cartElement{
			ID:        c.lastID,
			Type:      elementType,
			ProductID: id,
			Quantity:  qty,
			Price:     entry.Price,
			Name:      entry.Name,
		})
	case "sub_from_cart", "del_from_cart":
		id, _ := strconv.Atoi(get("id_element")) //nolint:errcheck // unknown ids match nothing
		kept := c.elements[:0]
		for _, e := range c.elements {
			if e.ID == id {
				if request == "del_from_cart" || e.Quantity <= 1 {
					continue
				}
				e.Quantity--
			}
			kept = append(kept, e)
		}
		c.elements = kept
	case "clear_cart":
		c.elements = nil
	}

	return c.payload()
}

func (c *cart) payload() map[string]any {
	sum := decimal.Zero
	contents := make([]cartElement, 0, len(c.elements))
	for _, e := range c.elements {
		e.SumPrice = e.Price.Mul(decimal.NewFromInt(int64(e.Quantity)))
		sum = sum.Add(e.SumPrice)
		contents = append(contents, e)
	}
	return map[string]any{
		"object":                   "cart",
		"sum":                      sum.StringFixed(2),
		"creation_date":            c.created.Format("2006-01-02 15:04:05"),
		"last_inserted_element_id": c.lastID,
		"contents":                 contents,
	}
}

func errorObject(code, message string) map[string]any {
	obj := map[string]any{"object": "error", "message": message}
	if code != "" {
		obj["code"] = code
	}
	return obj
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}
