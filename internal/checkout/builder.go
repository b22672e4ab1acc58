// Package checkout turns a cart plus customer details into a backend order
// submission and clears the cart once the backend accepts it.
package checkout

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"storefront-proxy/internal/backend"
	"storefront-proxy/internal/model"
	"storefront-proxy/internal/pricing"
	"storefront-proxy/internal/store"
)

// CustomerInfo carries the checkout form fields. AddressLine2 is the only
// optional field.
type CustomerInfo struct {
	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
}

func (c CustomerInfo) validate() error {
	var missing []string
	required := []struct {
		field string
		value string
	}{
		{"customerName", c.CustomerName},
		{"email", c.Email},
		{"phone", c.Phone},
		{"addressLine1", c.AddressLine1},
		{"city", c.City},
		{"state", c.State},
		{"postalCode", c.PostalCode},
		{"country", c.Country},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.field+" is required")
		}
	}
	if len(missing) > 0 {
		return model.NewValidationDetailsError("invalid order details", missing)
	}
	return nil
}

// Builder assembles and submits orders.
type Builder struct {
	api    backend.API
	logger *slog.Logger
}

func NewBuilder(api backend.API, logger *slog.Logger) *Builder {
	return &Builder{api: api, logger: logger}
}

// PlaceOrder validates the customer details, resolves each cart line's
// variant identifiers, submits the order, and clears the cart on success.
// The applied coupon code survives the clear.
func (b *Builder) PlaceOrder(ctx context.Context, cart *store.Cart, info CustomerInfo, totals pricing.Breakdown) (*model.OrderResult, error) {
	if err := info.validate(); err != nil {
		return nil, err
	}

	items := cart.Items()
	if len(items) == 0 {
		return nil, model.NewValidationError("cart", "must not be empty")
	}

	req, err := b.buildRequest(ctx, items, info, totals)
	if err != nil {
		return nil, err
	}

	result, err := b.api.PlaceOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	cart.Clear(ctx)
	b.logger.InfoContext(ctx, "order placed",
		slog.String("order_number", result.OrderNumber),
		slog.Int("line_count", len(req.Items)))
	return result, nil
}

func (b *Builder) buildRequest(ctx context.Context, items []model.CartLineItem, info CustomerInfo, totals pricing.Breakdown) (*model.OrderRequest, error) {
	variants, err := b.loadVariants(ctx)
	if err != nil {
		return nil, err
	}

	lines := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		code := item.ProductCode
		if code == "" {
			code = item.ID
		}
		lines = append(lines, model.OrderItem{
			ProductCode: code,
			ProductName: item.Name,
			QuantityID:  variants.quantityID(item),
			ColorID:     variants.colorID(item),
			SizeID:      variants.sizeID(item),
			UnitPrice:   model.FormatCents(item.UnitPriceCents()),
		})
	}

	return &model.OrderRequest{
		CustomerName: info.CustomerName,
		Email:        info.Email,
		Phone:        info.Phone,
		AddressLine1: info.AddressLine1,
		AddressLine2: info.AddressLine2,
		City:         info.City,
		State:        info.State,
		PostalCode:   info.PostalCode,
		Country:      info.Country,
		Discount:     model.FormatCents(totals.Discount),
		Amount:       model.FormatCents(totals.Total),
		Items:        lines,
	}, nil
}

// variantCatalog holds the backend's variant resources for one submission.
type variantCatalog struct {
	quantities []model.QuantityPack
	sizes      []model.Size
	colors     []model.Color
}

func (b *Builder) loadVariants(ctx context.Context) (*variantCatalog, error) {
	quantities, err := b.api.Quantities(ctx)
	if err != nil {
		return nil, err
	}
	sizes, err := b.api.Sizes(ctx)
	if err != nil {
		return nil, err
	}
	colors, err := b.api.Colors(ctx)
	if err != nil {
		return nil, err
	}
	return &variantCatalog{quantities: quantities, sizes: sizes, colors: colors}, nil
}

// Variant resolution falls back through three stages: the line's explicit
// numeric id, then a case-insensitive name match on the selected variant,
// then the first catalog entry. An empty catalog resolves to zero, which
// the backend treats as "unspecified".

func (v *variantCatalog) quantityID(item model.CartLineItem) int {
	if item.QuantityPackID != 0 {
		return item.QuantityPackID
	}
	for _, q := range v.quantities {
		if strings.EqualFold(q.Name, item.SelectedQuantityPack) && item.SelectedQuantityPack != "" {
			return q.ID
		}
	}
	if len(v.quantities) > 0 {
		return v.quantities[0].ID
	}
	return 0
}

func (v *variantCatalog) sizeID(item model.CartLineItem) int {
	if item.SizeID != 0 {
		return item.SizeID
	}
	for _, s := range v.sizes {
		if strings.EqualFold(s.Name, item.SelectedSize) && item.SelectedSize != "" {
			return s.ID
		}
	}
	if len(v.sizes) > 0 {
		return v.sizes[0].ID
	}
	return 0
}

func (v *variantCatalog) colorID(item model.CartLineItem) int {
	if item.ColorID != 0 {
		return item.ColorID
	}
	for _, c := range v.colors {
		if strings.EqualFold(c.Name, item.SelectedColor) && item.SelectedColor != "" {
			return c.ID
		}
	}
	if len(v.colors) > 0 {
		return v.colors[0].ID
	}
	return 0
}

// SubscribeNewsletter forwards a newsletter signup, stamping the
// subscription date.
func (b *Builder) SubscribeNewsletter(ctx context.Context, email, fullName string) (*model.NewsletterResult, error) {
	if strings.TrimSpace(email) == "" {
		return nil, model.NewValidationError("email", "must not be empty")
	}
	return b.api.SubscribeNewsletter(ctx, &model.NewsletterRequest{
		Email:          email,
		FullName:       fullName,
		IsSubscribed:   true,
		SubscribedDate: time.Now().UTC().Format(time.RFC3339),
	})
}
