package backend

import (
	"context"

	"storefront-proxy/internal/model"
)

// Mock implements API for testing.
// Each method can be configured via function fields.
type Mock struct {
	CategoriesFunc          func(ctx context.Context) ([]model.Category, error)
	SubCategoriesFunc       func(ctx context.Context) ([]model.SubCategory, error)
	ProductsFunc            func(ctx context.Context) ([]model.Product, error)
	ProductFunc             func(ctx context.Context, id string) (*model.Product, error)
	QuantitiesFunc          func(ctx context.Context) ([]model.QuantityPack, error)
	SizesFunc               func(ctx context.Context) ([]model.Size, error)
	ColorsFunc              func(ctx context.Context) ([]model.Color, error)
	CouponsFunc             func(ctx context.Context) ([]model.Coupon, error)
	CouponByCodeFunc        func(ctx context.Context, code string) (*model.Coupon, error)
	PlaceOrderFunc          func(ctx context.Context, req *model.OrderRequest) (*model.OrderResult, error)
	SubscribeNewsletterFunc func(ctx context.Context, req *model.NewsletterRequest) (*model.NewsletterResult, error)
}

func (m *Mock) Categories(ctx context.Context) ([]model.Category, error) {
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(ctx)
	}
	return []model.Category{}, nil
}

func (m *Mock) SubCategories(ctx context.Context) ([]model.SubCategory, error) {
	if m.SubCategoriesFunc != nil {
		return m.SubCategoriesFunc(ctx)
	}
	return []model.SubCategory{}, nil
}

func (m *Mock) Products(ctx context.Context) ([]model.Product, error) {
	if m.ProductsFunc != nil {
		return m.ProductsFunc(ctx)
	}
	return []model.Product{}, nil
}

func (m *Mock) Product(ctx context.Context, id string) (*model.Product, error) {
	if m.ProductFunc != nil {
		return m.ProductFunc(ctx, id)
	}
	return nil, model.NewNotFoundError("product")
}

func (m *Mock) Quantities(ctx context.Context) ([]model.QuantityPack, error) {
	if m.QuantitiesFunc != nil {
		return m.QuantitiesFunc(ctx)
	}
	return []model.QuantityPack{}, nil
}

func (m *Mock) Sizes(ctx context.Context) ([]model.Size, error) {
	if m.SizesFunc != nil {
		return m.SizesFunc(ctx)
	}
	return []model.Size{}, nil
}

func (m *Mock) Colors(ctx context.Context) ([]model.Color, error) {
	if m.ColorsFunc != nil {
		return m.ColorsFunc(ctx)
	}
	return []model.Color{}, nil
}

func (m *Mock) Coupons(ctx context.Context) ([]model.Coupon, error) {
	if m.CouponsFunc != nil {
		return m.CouponsFunc(ctx)
	}
	return []model.Coupon{}, nil
}

func (m *Mock) CouponByCode(ctx context.Context, code string) (*model.Coupon, error) {
	if m.CouponByCodeFunc != nil {
		return m.CouponByCodeFunc(ctx, code)
	}
	return nil, model.NewNotFoundError("coupon")
}

func (m *Mock) PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResult, error) {
	if m.PlaceOrderFunc != nil {
		return m.PlaceOrderFunc(ctx, req)
	}
	return nil, model.NewInternalError(nil)
}

func (m *Mock) SubscribeNewsletter(ctx context.Context, req *model.NewsletterRequest) (*model.NewsletterResult, error) {
	if m.SubscribeNewsletterFunc != nil {
		return m.SubscribeNewsletterFunc(ctx, req)
	}
	return nil, model.NewInternalError(nil)
}

// Verify Mock implements API at compile time.
var _ API = (*Mock)(nil)
