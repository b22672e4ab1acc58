// Package model defines data structures for the storefront API and the
// remote commerce backend.
package model

// === Catalog resources (backend wire format, camelCase) ===

// Category is a top-level product grouping.
type Category struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// SubCategory belongs to a Category.
type SubCategory struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	CategoryID int    `json:"categoryId"`
}

// Product is a catalog product as returned by the backend.
// Prices arrive as decimal strings in major units.
type Product struct {
	ID            string   `json:"id"`
	Code          string   `json:"productCode,omitempty"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Price         string   `json:"price"`
	OriginalPrice string   `json:"originalPrice,omitempty"`
	Discount      string   `json:"discount,omitempty"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	Images        []string `json:"images,omitempty"`
	CategoryID    int      `json:"categoryId,omitempty"`
	SubCategoryID int      `json:"subCategoryId,omitempty"`
	Colors        []Color  `json:"colors,omitempty"`
	Sizes         []Size   `json:"sizes,omitempty"`
	InStock       bool     `json:"inStock"`
}

// Color is a selectable product color variant.
type Color struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Hex  string `json:"hexCode,omitempty"`
}

// Size is a selectable product size variant.
type Size struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// QuantityPack is a selectable pack size (e.g., "Pack of 3").
type QuantityPack struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}

// ProductSummary is the compact product shape stored in the wishlist and
// recently-viewed documents. Same fields a product card displays.
type ProductSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	OriginalPrice string `json:"original_price,omitempty"`
	Discount      string `json:"discount,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
}
