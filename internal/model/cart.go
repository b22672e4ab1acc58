package model

// CartLineItem is one product entry in the cart, carrying its own quantity
// and selected variant. At most one line item exists per product ID; adding
// an existing ID increments quantity instead of duplicating.
type CartLineItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"` // currency-formatted at add-time, e.g. "$19.99"
	ImageURL  string `json:"image_url,omitempty"`

	SelectedColor        string `json:"selected_color,omitempty"`
	SelectedSize         string `json:"selected_size,omitempty"`
	SelectedQuantityPack string `json:"selected_quantity_pack,omitempty"`

	Quantity int `json:"quantity"`

	// Identifiers forwarded to order submission. Zero values mean "not
	// selected"; the checkout builder resolves them through the fallback
	// chain (explicit id → name lookup → first available).
	ProductCode    string `json:"product_code,omitempty"`
	ColorID        int    `json:"color_id,omitempty"`
	SizeID         int    `json:"size_id,omitempty"`
	QuantityPackID int    `json:"quantity_pack_id,omitempty"`
}

// UnitPriceCents parses the stored display price. Pure; safe to call
// repeatedly.
func (li CartLineItem) UnitPriceCents() int64 {
	return ParsePrice(li.UnitPrice)
}

// LineTotalCents is unit price times quantity, in cents.
func (li CartLineItem) LineTotalCents() int64 {
	return li.UnitPriceCents() * int64(li.Quantity)
}

// CartNotice describes the user-visible outcome of a cart mutation.
type CartNotice string

const (
	NoticeAdded           CartNotice = "added"
	NoticeQuantityUpdated CartNotice = "quantity_updated"
	NoticeRemoved         CartNotice = "removed"
	NoticeNone            CartNotice = "" // silent no-op (e.g., removing an absent item)
)
