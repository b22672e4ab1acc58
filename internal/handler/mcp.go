// MCP transport handler for the storefront proxy using the official MCP Go
// SDK. Exposes the same shopping operations as the REST API so agents can
// drive a cart through tool calls. Sessions travel in tool arguments rather
// than headers; every tool takes a session_id.
package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"storefront-proxy/internal/checkout"
	"storefront-proxy/internal/model"
	"storefront-proxy/internal/pricing"
	"storefront-proxy/internal/store"
)

// === MCP Tool Input Types ===
// Schema note: the SDK marks every field without omitempty as required, so
// each input type carries its own schema-shaped fields instead of embedding
// domain structs. session_id is schema-optional so a missing one surfaces as
// a tool error rather than a protocol-level rejection.

// GetCartInput is the input schema for the get_cart tool.
type GetCartInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"shopping session id"`
}

// CartItemInput represents a product line in add_to_cart. Quantity is not
// part of the payload: adding always inserts at one or bumps by one.
type CartItemInput struct {
	ID                   string `json:"id" jsonschema:"product id,required"`
	Name                 string `json:"name,omitempty" jsonschema:"product name"`
	UnitPrice            string `json:"unit_price,omitempty" jsonschema:"currency-formatted unit price, e.g. $19.99"`
	ImageURL             string `json:"image_url,omitempty" jsonschema:"product image URL"`
	SelectedColor        string `json:"selected_color,omitempty" jsonschema:"selected color name"`
	SelectedSize         string `json:"selected_size,omitempty" jsonschema:"selected size name"`
	SelectedQuantityPack string `json:"selected_quantity_pack,omitempty" jsonschema:"selected quantity pack name"`
	ProductCode          string `json:"product_code,omitempty" jsonschema:"backend product code"`
	ColorID              int    `json:"color_id,omitempty" jsonschema:"backend color id"`
	SizeID               int    `json:"size_id,omitempty" jsonschema:"backend size id"`
	QuantityPackID       int    `json:"quantity_pack_id,omitempty" jsonschema:"backend quantity pack id"`
}

// lineItem converts the tool payload to the cart's line item type.
func (i CartItemInput) lineItem() model.CartLineItem {
	return model.CartLineItem{
		ID:                   i.ID,
		Name:                 i.Name,
		UnitPrice:            i.UnitPrice,
		ImageURL:             i.ImageURL,
		SelectedColor:        i.SelectedColor,
		SelectedSize:         i.SelectedSize,
		SelectedQuantityPack: i.SelectedQuantityPack,
		ProductCode:          i.ProductCode,
		ColorID:              i.ColorID,
		SizeID:               i.SizeID,
		QuantityPackID:       i.QuantityPackID,
	}
}

// AddToCartInput is the input schema for the add_to_cart tool.
type AddToCartInput struct {
	SessionID string        `json:"session_id,omitempty" jsonschema:"shopping session id"`
	Item      CartItemInput `json:"item" jsonschema:"product line to add,required"`
}

// UpdateQuantityInput is the input schema for the update_quantity tool.
// Quantity zero or below removes the line.
type UpdateQuantityInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"shopping session id"`
	ProductID string `json:"product_id" jsonschema:"product id,required"`
	Quantity  int    `json:"quantity" jsonschema:"exact quantity to set,required"`
}

// ApplyCouponInput is the input schema for the apply_coupon tool.
type ApplyCouponInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"shopping session id"`
	Code      string `json:"code" jsonschema:"coupon code,required"`
}

// GetTotalsInput is the input schema for the get_totals tool.
type GetTotalsInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"shopping session id"`
	Shipping  string `json:"shipping,omitempty" jsonschema:"shipping strategy: free or flat"`
	Tax       string `json:"tax,omitempty" jsonschema:"tax amount in major units"`
}

// PlaceOrderInput is the input schema for the place_order tool.
type PlaceOrderInput struct {
	SessionID string                `json:"session_id,omitempty" jsonschema:"shopping session id"`
	Customer  checkout.CustomerInfo `json:"customer" jsonschema:"checkout form details,required"`
	Shipping  string                `json:"shipping,omitempty" jsonschema:"shipping strategy: free or flat"`
	Tax       string                `json:"tax,omitempty" jsonschema:"tax amount in major units"`
}

// PlaceOrderOutput is the place_order tool result.
type PlaceOrderOutput struct {
	Order  *model.OrderResult `json:"order"`
	Totals pricing.Breakdown  `json:"totals"`
}

// NewMCPServer creates an MCP server with shopping tools registered.
// The server exposes the same operations as the REST API but via MCP protocol.
func (h *Handler) NewMCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "storefront-proxy",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			Instructions: "Storefront shopping operations. Use these tools to browse a cart, " +
				"apply coupons, inspect totals, and place orders. All tools require a " +
				"session_id identifying the shopper.",
		},
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_cart",
		Description: "Get the current cart: line items, item count, subtotal, and applied coupon.",
	}, h.mcpGetCart)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_to_cart",
		Description: "Add a product to the cart. Adding a product already in the cart bumps its quantity by one.",
	}, h.mcpAddToCart)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_quantity",
		Description: "Set a cart line's quantity exactly. Zero or below removes the line.",
	}, h.mcpUpdateQuantity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "apply_coupon",
		Description: "Resolve a coupon code and apply it to the cart when valid. Invalid codes resolve normally with applicable=false.",
	}, h.mcpApplyCoupon)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_totals",
		Description: "Compute the totals breakdown: subtotal, shipping, tax, discount, total.",
	}, h.mcpGetTotals)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "place_order",
		Description: "Submit the cart as an order with the shopper's checkout details. Clears the cart on success.",
	}, h.mcpPlaceOrder)

	return server
}

// NewMCPHandler returns an HTTP handler for the MCP endpoint.
// Mount this at /mcp on your mux.
func (h *Handler) NewMCPHandler() http.Handler {
	server := h.NewMCPServer()
	return mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server { return server },
		nil,
	)
}

// === Tool Handlers ===

func (h *Handler) mcpGetCart(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input GetCartInput,
) (*mcp.CallToolResult, *cartView, error) {
	sess, err := h.mcpSession(ctx, input.SessionID)
	if err != nil {
		return nil, nil, err
	}

	view := newCartView(sess.Cart)
	return nil, &view, nil
}

func (h *Handler) mcpAddToCart(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input AddToCartInput,
) (*mcp.CallToolResult, *cartMutationView, error) {
	sess, err := h.mcpSession(ctx, input.SessionID)
	if err != nil {
		return nil, nil, err
	}
	if input.Item.ID == "" {
		return nil, nil, fmt.Errorf("item.id is required")
	}

	notice := sess.Cart.AddItem(ctx, input.Item.lineItem())
	return nil, &cartMutationView{Notice: notice, Cart: newCartView(sess.Cart)}, nil
}

func (h *Handler) mcpUpdateQuantity(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input UpdateQuantityInput,
) (*mcp.CallToolResult, *cartMutationView, error) {
	sess, err := h.mcpSession(ctx, input.SessionID)
	if err != nil {
		return nil, nil, err
	}
	if input.ProductID == "" {
		return nil, nil, fmt.Errorf("product_id is required")
	}

	notice := sess.Cart.UpdateQuantity(ctx, input.ProductID, input.Quantity)
	return nil, &cartMutationView{Notice: notice, Cart: newCartView(sess.Cart)}, nil
}

func (h *Handler) mcpApplyCoupon(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input ApplyCouponInput,
) (*mcp.CallToolResult, *couponView, error) {
	sess, err := h.mcpSession(ctx, input.SessionID)
	if err != nil {
		return nil, nil, err
	}

	res, err := h.coupons.Resolve(ctx, sess.Cart, input.Code)
	if err != nil {
		return nil, nil, h.mcpError(err)
	}

	return nil, &couponView{
		Coupon:            res.Coupon,
		Applicable:        res.Applicable,
		AutoApplied:       res.AutoApplied,
		AppliedCouponCode: sess.Cart.AppliedCoupon(),
	}, nil
}

func (h *Handler) mcpGetTotals(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input GetTotalsInput,
) (*mcp.CallToolResult, *pricing.Breakdown, error) {
	sess, err := h.mcpSession(ctx, input.SessionID)
	if err != nil {
		return nil, nil, err
	}

	strategy, tax, err := parseShippingAndTax(input.Shipping, input.Tax)
	if err != nil {
		return nil, nil, err
	}

	discount, err := h.coupons.DiscountCents(ctx, sess.Cart)
	if err != nil {
		// Same degradation as GET /cart/totals: display totals survive a
		// registry outage.
		h.logger.Warn("discount lookup failed, using zero", "error", err.Error())
		discount = 0
	}

	breakdown := h.calc.Calculate(sess.Cart.SubtotalCents(), strategy, tax, discount)
	return nil, &breakdown, nil
}

func (h *Handler) mcpPlaceOrder(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input PlaceOrderInput,
) (*mcp.CallToolResult, *PlaceOrderOutput, error) {
	sess, err := h.mcpSession(ctx, input.SessionID)
	if err != nil {
		return nil, nil, err
	}

	strategy, tax, err := parseShippingAndTax(input.Shipping, input.Tax)
	if err != nil {
		return nil, nil, err
	}

	discount, err := h.coupons.DiscountCents(ctx, sess.Cart)
	if err != nil {
		return nil, nil, h.mcpError(err)
	}
	totals := h.calc.Calculate(sess.Cart.SubtotalCents(), strategy, tax, discount)

	result, err := h.checkout.PlaceOrder(ctx, sess.Cart, input.Customer, totals)
	if err != nil {
		return nil, nil, h.mcpError(err)
	}

	return nil, &PlaceOrderOutput{Order: result, Totals: totals}, nil
}

// mcpSession resolves the per-session stores for a tool call.
func (h *Handler) mcpSession(ctx context.Context, sessionID string) (*store.Session, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session_id is required")
	}
	sess, err := h.sessions.Session(ctx, sessionID)
	if err != nil {
		return nil, h.mcpError(err)
	}
	return sess, nil
}

// parseShippingAndTax validates the strategy and tax strings shared by
// get_totals and place_order.
func parseShippingAndTax(shipping, taxRaw string) (pricing.ShippingStrategy, int64, error) {
	strategy := pricing.ShippingStrategy(shipping)
	switch strategy {
	case "", pricing.ShippingFree:
		strategy = pricing.ShippingFree
	case pricing.ShippingFlat:
	default:
		return "", 0, fmt.Errorf("shipping must be free or flat")
	}

	var tax int64
	if taxRaw != "" {
		if _, err := strconv.ParseFloat(taxRaw, 64); err != nil {
			return "", 0, fmt.Errorf("tax must be a decimal amount")
		}
		tax = model.ParseCents(taxRaw)
		if tax < 0 {
			return "", 0, fmt.Errorf("tax must not be negative")
		}
	}
	return strategy, tax, nil
}

// mcpError converts service errors to MCP-friendly errors.
func (h *Handler) mcpError(err error) error {
	if apiErr, ok := err.(*model.APIError); ok {
		return fmt.Errorf("%s: %s", apiErr.Code, apiErr.Message)
	}
	// Don't leak internal error details
	h.logger.Error("mcp internal error", "error", err.Error())
	return fmt.Errorf("internal error")
}
