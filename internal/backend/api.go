// Package backend talks to the remote product/commerce API. The storefront
// never exposes that API directly; handlers go through the API interface so
// tests can swap in the Mock.
package backend

import (
	"context"

	"storefront-proxy/internal/model"
)

// API abstracts the remote commerce backend. All methods return decoded
// resources; envelope handling and error mapping live in the HTTP client.
type API interface {
	// Categories lists top-level product categories.
	Categories(ctx context.Context) ([]model.Category, error)

	// SubCategories lists all subcategories.
	SubCategories(ctx context.Context) ([]model.SubCategory, error)

	// Products lists the full catalog.
	Products(ctx context.Context) ([]model.Product, error)

	// Product fetches one product by ID.
	Product(ctx context.Context, id string) (*model.Product, error)

	// Quantities lists the available quantity packs.
	Quantities(ctx context.Context) ([]model.QuantityPack, error)

	// Sizes lists the available sizes.
	Sizes(ctx context.Context) ([]model.Size, error)

	// Colors lists the available colors.
	Colors(ctx context.Context) ([]model.Color, error)

	// Coupons lists all coupons in the registry.
	Coupons(ctx context.Context) ([]model.Coupon, error)

	// CouponByCode looks up a coupon by its canonical code. A missing code
	// returns an error wrapping model.ErrNotFound; that is an expected
	// outcome, not a transport failure.
	CouponByCode(ctx context.Context, code string) (*model.Coupon, error)

	// PlaceOrder submits a completed order.
	PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResult, error)

	// SubscribeNewsletter registers a newsletter subscription.
	SubscribeNewsletter(ctx context.Context, req *model.NewsletterRequest) (*model.NewsletterResult, error)
}
