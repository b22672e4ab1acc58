// shopclient is a CLI tool for testing storefront shopping flows.
// Each command performs a single operation, making it composable for scripts.
//
// Commands:
//
//	shopclient products -proxy URL
//	shopclient add -proxy URL -session ID -product ID -name NAME -price PRICE [-qty N]
//	shopclient cart -proxy URL -session ID
//	shopclient coupon -proxy URL -session ID -code CODE
//	shopclient totals -proxy URL -session ID [-shipping flat] [-tax AMOUNT]
//	shopclient order -proxy URL -session ID [-email ADDR]
//
// Examples:
//
//	SID=$(shopclient session -q)
//	shopclient add -proxy http://localhost:8080 -session $SID -product 60 -name "Shirt" -price 19.99
//	shopclient coupon -proxy http://localhost:8080 -session $SID -code SAVE10
//	shopclient totals -proxy http://localhost:8080 -session $SID -shipping flat
//	shopclient order -proxy http://localhost:8080 -session $SID
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

var client = &http.Client{Timeout: 30 * time.Second}

// Global flags (apply to all commands)
var (
	proxyURL  string
	sessionID string
	quiet     bool
	noColor   bool
	verbose   bool
)

// clientVersion is sent in the Shopping-Session header so the proxy's
// minimum-version gate sees a current client.
const clientVersion = "1.4.0"

// ANSI color codes
var (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

func init() {
	if os.Getenv("NO_COLOR") != "" {
		disableColors()
	}
}

func disableColors() {
	colorReset, colorRed, colorGreen, colorYellow = "", "", "", ""
	colorBlue, colorCyan, colorGray, colorBold = "", "", "", ""
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "session":
		runSession(args)
	case "products":
		runProducts(args)
	case "add":
		runAdd(args)
	case "cart":
		runCart(args)
	case "coupon":
		runCoupon(args)
	case "totals":
		runTotals(args)
	case "order":
		runOrder(args)
	case "-h", "-help", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `shopclient - storefront shopping flow test tool

Usage:
  shopclient <command> [options]

Commands:
  session   Generate a fresh shopping session ID
  products  List catalog products
  add       Add a product to the cart
  cart      Show the current cart
  coupon    Apply a coupon code
  totals    Compute the totals breakdown
  order     Place an order with test checkout details

Examples:
  # New session ID, captured for later commands
  SID=$(shopclient session -q)

  # Add a product and apply a coupon
  shopclient add -proxy http://localhost:8080 -session "$SID" -product 60 -name "Shirt" -price 19.99
  shopclient coupon -proxy http://localhost:8080 -session "$SID" -code SAVE10

  # Totals with flat-rate shipping, then place the order
  shopclient totals -proxy http://localhost:8080 -session "$SID" -shipping flat
  shopclient order -proxy http://localhost:8080 -session "$SID"

Run 'shopclient <command> -h' for command-specific options.
`)
}

// commonFlags registers the flags every command shares.
func commonFlags(fs *flag.FlagSet, needsSession bool) {
	fs.StringVar(&proxyURL, "proxy", "http://localhost:8080", "storefront proxy base URL")
	if needsSession {
		fs.StringVar(&sessionID, "session", "", "Shopping session ID (required)")
	}
	fs.BoolVar(&quiet, "q", false, "Quiet mode - minimal output")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&verbose, "v", false, "Verbose - show full request/response")
}

func requireSession(fs *flag.FlagSet) {
	if sessionID == "" {
		fmt.Fprintf(os.Stderr, "Error: -session is required\n\n")
		fs.Usage()
		os.Exit(1)
	}
}

// =============================================================================
// SESSION COMMAND
// =============================================================================

func runSession(args []string) {
	fs := flag.NewFlagSet("session", flag.ExitOnError)
	commonFlags(fs, false)
	fs.Parse(args)

	if noColor {
		disableColors()
	}

	id := uuid.NewString()
	if quiet {
		fmt.Println(id)
	} else {
		printSuccess("Session created")
		fmt.Printf("  ID: %s%s%s\n", colorCyan, id, colorReset)
	}
}

// =============================================================================
// PRODUCTS COMMAND
// =============================================================================

func runProducts(args []string) {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	commonFlags(fs, false)
	fs.Parse(args)

	if noColor {
		disableColors()
	}

	data, err := doRequest("GET", "/catalog/products", nil)
	if err != nil {
		fatal("Failed to list products: %v", err)
	}

	var products []map[string]interface{}
	if err := json.Unmarshal(data, &products); err != nil {
		fatal("Parsing products: %v", err)
	}

	if quiet {
		for _, p := range products {
			fmt.Println(p["id"])
		}
		return
	}

	printSuccess("%d products", len(products))
	for _, p := range products {
		fmt.Printf("  %s%v%s  %v  %s%v%s\n",
			colorCyan, p["id"], colorReset, p["name"], colorGreen, p["price"], colorReset)
	}
}

// =============================================================================
// ADD COMMAND
// =============================================================================

func runAdd(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	commonFlags(fs, true)
	var productID, name, price string
	var qty int
	fs.StringVar(&productID, "product", "", "Product ID (required)")
	fs.StringVar(&name, "name", "", "Product name")
	fs.StringVar(&price, "price", "", "Unit price, e.g. 19.99 (required)")
	fs.IntVar(&qty, "qty", 1, "Times to add (each add bumps quantity by one)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: shopclient add -session ID -product ID -price PRICE [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if noColor {
		disableColors()
	}
	requireSession(fs)

	if productID == "" || price == "" {
		fs.Usage()
		os.Exit(1)
	}

	reqBody := map[string]interface{}{
		"id":         productID,
		"name":       name,
		"unit_price": "$" + strings.TrimPrefix(price, "$"),
	}

	var data json.RawMessage
	var err error
	for i := 0; i < qty; i++ {
		data, err = doRequest("POST", "/cart/items", reqBody)
		if err != nil {
			fatal("Failed to add item: %v", err)
		}
	}

	var result struct {
		Notice string `json:"notice"`
		Cart   struct {
			ItemCount       int    `json:"item_count"`
			SubtotalDisplay string `json:"subtotal_display"`
		} `json:"cart"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		fatal("Parsing cart: %v", err)
	}

	if quiet {
		fmt.Println(result.Cart.ItemCount)
	} else {
		printSuccess("Item added (%s)", result.Notice)
		fmt.Printf("  Items: %s%d%s  Subtotal: %s%s%s\n",
			colorCyan, result.Cart.ItemCount, colorReset,
			colorGreen, result.Cart.SubtotalDisplay, colorReset)
	}
}

// =============================================================================
// CART COMMAND
// =============================================================================

func runCart(args []string) {
	fs := flag.NewFlagSet("cart", flag.ExitOnError)
	commonFlags(fs, true)
	fs.Parse(args)

	if noColor {
		disableColors()
	}
	requireSession(fs)

	data, err := doRequest("GET", "/cart", nil)
	if err != nil {
		fatal("Failed to get cart: %v", err)
	}

	var cart struct {
		Items []struct {
			ID        string `json:"id"`
			Name      string `json:"name"`
			UnitPrice string `json:"unit_price"`
			Quantity  int    `json:"quantity"`
		} `json:"items"`
		ItemCount         int    `json:"item_count"`
		SubtotalDisplay   string `json:"subtotal_display"`
		AppliedCouponCode string `json:"applied_coupon_code"`
	}
	if err := json.Unmarshal(data, &cart); err != nil {
		fatal("Parsing cart: %v", err)
	}

	if quiet {
		fmt.Println(cart.ItemCount)
		return
	}

	printSuccess("Cart: %d items, subtotal %s", cart.ItemCount, cart.SubtotalDisplay)
	for _, item := range cart.Items {
		fmt.Printf("  %s%s%s  %s  %s x %d\n",
			colorCyan, item.ID, colorReset, item.Name, item.UnitPrice, item.Quantity)
	}
	if cart.AppliedCouponCode != "" {
		fmt.Printf("  Coupon: %s%s%s\n", colorYellow, cart.AppliedCouponCode, colorReset)
	}
}

// =============================================================================
// COUPON COMMAND
// =============================================================================

func runCoupon(args []string) {
	fs := flag.NewFlagSet("coupon", flag.ExitOnError)
	commonFlags(fs, true)
	var code string
	fs.StringVar(&code, "code", "", "Coupon code (required)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: shopclient coupon -session ID -code CODE [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if noColor {
		disableColors()
	}
	requireSession(fs)

	if code == "" {
		fs.Usage()
		os.Exit(1)
	}

	data, err := doRequest("POST", "/cart/coupon", map[string]string{"code": code})
	if err != nil {
		fatal("Failed to apply coupon: %v", err)
	}

	var result struct {
		Applicable        bool   `json:"applicable"`
		AutoApplied       bool   `json:"auto_applied"`
		AppliedCouponCode string `json:"applied_coupon_code"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		fatal("Parsing coupon result: %v", err)
	}

	if quiet {
		fmt.Println(result.AppliedCouponCode)
		return
	}

	if result.Applicable {
		printSuccess("Coupon applied: %s", result.AppliedCouponCode)
	} else {
		printWarning("Coupon not applicable")
	}
}

// =============================================================================
// TOTALS COMMAND
// =============================================================================

func runTotals(args []string) {
	fs := flag.NewFlagSet("totals", flag.ExitOnError)
	commonFlags(fs, true)
	var shipping, tax string
	fs.StringVar(&shipping, "shipping", "free", "Shipping strategy: free or flat")
	fs.StringVar(&tax, "tax", "", "Tax amount in major units, e.g. 5.00")
	fs.Parse(args)

	if noColor {
		disableColors()
	}
	requireSession(fs)

	path := "/cart/totals?shipping=" + shipping
	if tax != "" {
		path += "&tax=" + tax
	}

	data, err := doRequest("GET", path, nil)
	if err != nil {
		fatal("Failed to get totals: %v", err)
	}

	var breakdown struct {
		SubtotalDisplay string `json:"subtotal_display"`
		ShippingDisplay string `json:"shipping_display"`
		TaxDisplay      string `json:"tax_display"`
		DiscountDisplay string `json:"discount_display"`
		TotalDisplay    string `json:"total_display"`
	}
	if err := json.Unmarshal(data, &breakdown); err != nil {
		fatal("Parsing totals: %v", err)
	}

	if quiet {
		fmt.Println(breakdown.TotalDisplay)
		return
	}

	printSuccess("Totals")
	fmt.Printf("  Subtotal: %s\n", breakdown.SubtotalDisplay)
	fmt.Printf("  Shipping: %s\n", breakdown.ShippingDisplay)
	fmt.Printf("  Tax:      %s\n", breakdown.TaxDisplay)
	fmt.Printf("  Discount: %s\n", breakdown.DiscountDisplay)
	fmt.Printf("  Total:    %s%s%s\n", colorGreen, breakdown.TotalDisplay, colorReset)
}

// =============================================================================
// ORDER COMMAND
// =============================================================================

func runOrder(args []string) {
	fs := flag.NewFlagSet("order", flag.ExitOnError)
	commonFlags(fs, true)
	var email, shipping string
	fs.StringVar(&email, "email", "test@example.com", "Buyer email")
	fs.StringVar(&shipping, "shipping", "free", "Shipping strategy: free or flat")
	fs.Parse(args)

	if noColor {
		disableColors()
	}
	requireSession(fs)

	reqBody := map[string]interface{}{
		"customerName": "Test Buyer",
		"email":        email,
		"phone":        "+16135551234",
		"addressLine1": "150 Elgin Street",
		"city":         "Ottawa",
		"state":        "ON",
		"postalCode":   "K2P 1L4",
		"country":      "CA",
		"shipping":     shipping,
	}

	data, err := doRequest("POST", "/orders", reqBody)
	if err != nil {
		fatal("Failed to place order: %v", err)
	}

	var result struct {
		Order struct {
			OrderNumber string `json:"orderNumber"`
		} `json:"order"`
		Totals struct {
			TotalDisplay string `json:"total_display"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		fatal("Parsing order result: %v", err)
	}

	if quiet {
		fmt.Println(result.Order.OrderNumber)
	} else {
		printSuccess("Order placed!")
		fmt.Printf("  Order: %s%s%s\n", colorGreen, result.Order.OrderNumber, colorReset)
		fmt.Printf("  Total: %s%s%s\n", colorBlue, result.Totals.TotalDisplay, colorReset)
	}
}

// =============================================================================
// HTTP HELPERS
// =============================================================================

// doRequest sends the request, unwraps the response envelope, and returns
// the data payload.
func doRequest(method, path string, body interface{}) (json.RawMessage, error) {
	var reqBody io.Reader
	var reqJSON []byte

	if body != nil {
		var err error
		reqJSON, err = json.MarshalIndent(body, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
		reqBody = bytes.NewReader(reqJSON)
	}

	reqURL := proxyURL + path
	req, err := http.NewRequest(method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Session-scoped routes require the Shopping-Session header
	if sessionID != "" {
		req.Header.Set("Shopping-Session",
			fmt.Sprintf(`id=%q, client=%q`, sessionID, clientVersion))
	}

	if !quiet {
		printRequest(method, path, reqJSON)
	}

	start := time.Now()
	resp, err := client.Do(req)
	duration := time.Since(start)

	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if !quiet {
		printResponse(resp.StatusCode, respBody, duration)
	}

	var env struct {
		Success    bool            `json:"success"`
		StatusCode int             `json:"statusCode"`
		Message    string          `json:"message"`
		Data       json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(respBody, &env); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	if !env.Success {
		return nil, fmt.Errorf("HTTP %d: %s", env.StatusCode, env.Message)
	}

	return env.Data, nil
}

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

func printRequest(method, path string, body []byte) {
	fmt.Printf("\n%s▶ REQUEST%s %s%s %s%s\n", colorYellow, colorReset, colorBold, method, path, colorReset)
	if body != nil {
		printJSON(body, "  ")
	}
}

func printResponse(status int, body []byte, duration time.Duration) {
	statusColor := colorGreen
	if status >= 400 {
		statusColor = colorRed
	}
	fmt.Printf("\n%s◀ RESPONSE%s %s%d%s (%v)\n", colorCyan, colorReset, statusColor, status, colorReset, duration)
	printJSON(body, "  ")
}

func printJSON(data []byte, prefix string) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, prefix, "  "); err != nil {
		fmt.Printf("%s%s\n", prefix, string(data))
		return
	}

	output := pretty.String()
	if !verbose {
		lines := strings.Split(output, "\n")
		if len(lines) > 30 {
			lines = append(lines[:25], fmt.Sprintf("%s  %s(%d more lines, use -v for full output)%s", prefix, colorGray, len(lines)-25, colorReset))
			output = strings.Join(lines, "\n")
		}
	}
	fmt.Println(output)
}

func printSuccess(format string, args ...interface{}) {
	if !quiet {
		fmt.Printf("%s✓ %s%s\n", colorGreen, fmt.Sprintf(format, args...), colorReset)
	}
}

func printWarning(format string, args ...interface{}) {
	fmt.Printf("%s⚠ %s%s\n", colorYellow, fmt.Sprintf(format, args...), colorReset)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s✗ %s%s\n", colorRed, fmt.Sprintf(format, args...), colorReset)
	os.Exit(1)
}
