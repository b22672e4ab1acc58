// Package session identifies the shopper behind each request. REST clients
// carry a Shopping-Session header (RFC 8941 Dictionary) naming their session
// id, preferred display currency, and client version; the middleware parses
// it, gates on a minimum client version, and stores the descriptor in the
// request context for handlers.
package session

import "context"

// Descriptor is the parsed Shopping-Session header.
type Descriptor struct {
	// ID keys the shopper's cart, wishlist, and recently-viewed stores.
	ID string

	// Currency is the client's preferred display currency ("" means the
	// server default, typically resolved via geolocation).
	Currency string

	// ClientVersion is the semantic version reported by the client, used
	// for the minimum-version gate. Optional.
	ClientVersion string
}

// contextKey is the type for context values to avoid collisions.
type contextKey string

const descriptorKey contextKey = "storefront.session"

// NewContext returns ctx carrying the session descriptor.
func NewContext(ctx context.Context, d *Descriptor) context.Context {
	return context.WithValue(ctx, descriptorKey, d)
}

// FromContext retrieves the session descriptor, or nil when the request
// went through an exempt path.
func FromContext(ctx context.Context) *Descriptor {
	v := ctx.Value(descriptorKey)
	if v == nil {
		return nil
	}
	return v.(*Descriptor)
}
