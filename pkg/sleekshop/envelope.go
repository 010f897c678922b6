package sleekshop

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"

	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

// Normalize classifies a transport result into an Envelope. The first
// matching rule wins: transport failure, HTTP status >= 400, invalid JSON,
// backend error marker, success.
func Normalize(res RawResult) *domain.Envelope[json.RawMessage] {
	if res.Err != nil {
		return domain.Failure[json.RawMessage](
			domain.KindTransport,
			"transport error: "+res.Err.Error(),
		)
	}

	if res.StatusCode >= 400 {
		env := domain.Failure[json.RawMessage](
			domain.KindHTTP,
			fmt.Sprintf("HTTP error: %d", res.StatusCode),
		)
		env.HTTPStatus = res.StatusCode
		env.Raw = res.Body
		return env
	}

	if !json.Valid(res.Body) {
		env := domain.Failure[json.RawMessage](domain.KindMalformed, "invalid JSON response")
		env.HTTPStatus = res.StatusCode
		env.Raw = res.Body
		return env
	}

	if msg, ok := backendError(res.Body); ok {
		env := domain.Failure[json.RawMessage](domain.KindBackend, msg)
		env.HTTPStatus = res.StatusCode
		env.Response = json.RawMessage(res.Body)
		env.Raw = res.Body
		return env
	}

	return &domain.Envelope[json.RawMessage]{
		Status:     domain.StatusSuccess,
		Response:   json.RawMessage(res.Body),
		HTTPStatus: res.StatusCode,
	}
}

// backendError detects the error markers the backend puts into otherwise
// well-formed responses: "object":"error", "status":"error", or an "error"
// field carrying a message.
func backendError(body []byte) (string, bool) {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return "", false
	}

	if cast.ToString(obj["object"]) == "error" || cast.ToString(obj["status"]) == "error" {
		return errorMessage(obj), true
	}

	switch e := obj["error"].(type) {
	case map[string]any:
		return errorMessage(e), true
	case string:
		if e != "" {
			return e, true
		}
	}

	return "", false
}

func errorMessage(obj map[string]any) string {
	msg := cast.ToString(obj["message"])
	if msg == "" {
		if nested, ok := obj["error"].(map[string]any); ok {
			msg = cast.ToString(nested["message"])
		} else {
			msg = cast.ToString(obj["error"])
		}
	}
	if msg == "" {
		msg = "backend error"
	}
	if code := cast.ToString(obj["code"]); code != "" {
		msg = code + ": " + msg
	}
	return msg
}
