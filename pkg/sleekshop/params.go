package sleekshop

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"

	"github.com/spf13/cast"
)

// credentials are fixed at construction and copied into every request.
type credentials struct {
	username  string
	password  string
	secretKey string
}

type field struct {
	key   string
	value string
}

// Params collects the per-call form fields of one backend operation.
type Params struct {
	request    string
	privileged bool
	fields     []field
	err        error
}

func newParams(request string) *Params {
	return &Params{request: request}
}

// Request returns the backend operation name.
func (p *Params) Request() string {
	return p.request
}

// Privileged marks the operation as requiring the licence secret key.
func (p *Params) Privileged() *Params {
	p.privileged = true
	return p
}

// String adds a string field.
func (p *Params) String(key, value string) *Params {
	p.fields = append(p.fields, field{key: key, value: value})
	return p
}

// Int adds an integer field.
func (p *Params) Int(key string, value int) *Params {
	return p.String(key, strconv.Itoa(value))
}

// Float adds a float field.
func (p *Params) Float(key string, value float64) *Params {
	return p.String(key, strconv.FormatFloat(value, 'f', -1, 64))
}

// JSON adds a structured field encoded as JSON text. nil encodes as an
// empty list.
func (p *Params) JSON(key string, value any) *Params {
	if isNil(value) {
		return p.String(key, "[]")
	}
	data, err := json.Marshal(value)
	if err != nil {
		if p.err == nil {
			p.err = fmt.Errorf("encoding %s: %w", key, err)
		}
		return p
	}
	return p.String(key, string(data))
}

// Args spreads a map into individual fields. Scalars are sent as text,
// booleans as 1/0 and anything structured as JSON.
func (p *Params) Args(args map[string]any) *Params {
	for _, key := range sortedKeys(args) {
		switch v := args[key].(type) {
		case string:
			p.String(key, v)
		case bool:
			if v {
				p.String(key, "1")
			} else {
				p.String(key, "0")
			}
		case int, int32, int64, uint, uint32, uint64, float32, float64, json.Number:
			p.String(key, cast.ToString(v))
		default:
			p.JSON(key, v)
		}
	}
	return p
}

// form merges the credentials with the per-call fields into a fresh value set.
func (p *Params) form(creds credentials) (url.Values, error) {
	if p.err != nil {
		return nil, p.err
	}

	form := url.Values{}
	form.Set("licence_username", creds.username)
	form.Set("licence_password", creds.password)
	if p.privileged {
		form.Set("licence_secret_key", creds.secretKey)
	}
	for _, f := range p.fields {
		form.Set(f.key, f.value)
	}
	form.Set("request", p.request)

	return form, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
