package model

// === Order submission (backend wire format, camelCase) ===

// OrderItem is one submitted order line. IDs reference backend variant
// resources (quantity pack, color, size); UnitPrice is major units.
type OrderItem struct {
	ProductCode string `json:"productCode"`
	ProductName string `json:"productName"`
	QuantityID  int    `json:"quantityID"`
	ColorID     int    `json:"colorID"`
	SizeID      int    `json:"sizeID"`
	UnitPrice   string `json:"unitPrice"`
}

// OrderRequest is the POST /orders body.
type OrderRequest struct {
	CustomerName    string      `json:"customerName"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	AddressLine1    string      `json:"addressLine1"`
	AddressLine2    string      `json:"addressLine2,omitempty"`
	City            string      `json:"city"`
	State           string      `json:"state"`
	PostalCode      string      `json:"postalCode"`
	Country         string      `json:"country"`
	Discount        string      `json:"discount"`
	Amount          string      `json:"amount"`
	Items           []OrderItem `json:"items"`
	CreatedByUserID string      `json:"createdByUserId,omitempty"`
}

// OrderResult is the successful order placement payload.
type OrderResult struct {
	OrderNumber string `json:"orderNumber"`
}

// NewsletterRequest is the POST /newsletter body.
type NewsletterRequest struct {
	Email          string `json:"email"`
	FullName       string `json:"fullName,omitempty"`
	IsSubscribed   bool   `json:"isSubscribed"`
	SubscribedDate string `json:"subscribedDate"` // RFC3339
}

// NewsletterResult is the successful subscription payload.
type NewsletterResult struct {
	ID int `json:"id"`
}
