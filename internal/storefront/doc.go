// Package storefront exposes a small JSON API in front of the Sleekshop
// backend: catalog browsing, search, the menu, and a session-bound cart.
package storefront

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}
