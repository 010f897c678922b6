package storefront

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/sleekshop-go/internal/menu"
	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop"
	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

// envelopeStatus maps an error envelope kind to the HTTP status the
// storefront answers with.
func envelopeStatus(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindBackend:
		return http.StatusUnprocessableEntity
	case domain.KindResolve:
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}

// envelopeError converts an error envelope into a huma error. The envelope
// kind is carried as the error detail location.
func envelopeError[T any](env *domain.Envelope[T]) error {
	return huma.NewError(envelopeStatus(env.Kind), env.Message, &huma.ErrorDetail{
		Location: "backend." + string(env.Kind),
		Message:  env.Message,
	})
}

// fatalError converts an SDK Go error into a huma error.
func fatalError(err error) error {
	switch {
	case errors.Is(err, sleekshop.ErrSessionAcquisition):
		return huma.Error503ServiceUnavailable("session unavailable", err)
	case errors.Is(err, menu.ErrInvalidLanguage):
		return huma.Error400BadRequest("invalid language", err)
	}
	return huma.Error500InternalServerError("storefront error", err)
}

// unwrap returns the response of a successful envelope, or the huma error
// describing why there is none.
func unwrap[T any](env *domain.Envelope[T], err error) (T, error) {
	var zero T
	if err != nil {
		return zero, fatalError(err)
	}
	if !env.OK() {
		return zero, envelopeError(env)
	}
	return env.Response, nil
}
