package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront-proxy/internal/model"
	"storefront-proxy/internal/transport"
)

// Config holds commerce backend connection settings.
type Config struct {
	BaseURL string
	APIKey  string

	// HTTPClient overrides the default client; used by tests against
	// httptest servers.
	HTTPClient *http.Client
}

// Client is the HTTP implementation of API. The backend wraps every
// response, success or failure, in the {success, statusCode, message, data}
// envelope; the client decodes it once here so callers only see resources
// and APIErrors.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// New creates a backend client with the given configuration.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		// Chrome TLS fingerprint transport; the backend sits behind a CDN
		// that rate-limits Go's default fingerprint. See internal/transport.
		httpClient = &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport.NewChromeTransport(30 * time.Second),
		}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
	}, nil
}

func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	if err := c.get(ctx, "/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SubCategories(ctx context.Context) ([]model.SubCategory, error) {
	var out []model.SubCategory
	if err := c.get(ctx, "/subcategories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Products(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	if err := c.get(ctx, "/products", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Product(ctx context.Context, id string) (*model.Product, error) {
	var out model.Product
	if err := c.get(ctx, "/products/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Quantities(ctx context.Context) ([]model.QuantityPack, error) {
	var out []model.QuantityPack
	if err := c.get(ctx, "/quantities", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Sizes(ctx context.Context) ([]model.Size, error) {
	var out []model.Size
	if err := c.get(ctx, "/sizes", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Colors(ctx context.Context) ([]model.Color, error) {
	var out []model.Color
	if err := c.get(ctx, "/colors", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Coupons(ctx context.Context) ([]model.Coupon, error) {
	var out []model.Coupon
	if err := c.get(ctx, "/coupons", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CouponByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var out model.Coupon
	path := "/coupons/code/" + url.PathEscape(model.CanonicalCode(code))
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PlaceOrder(ctx context.Context, req *model.OrderRequest) (*model.OrderResult, error) {
	var out model.OrderResult
	if err := c.post(ctx, "/orders", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubscribeNewsletter(ctx context.Context, req *model.NewsletterRequest) (*model.NewsletterResult, error) {
	var out model.NewsletterResult
	if err := c.post(ctx, "/newsletter", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// === HTTP plumbing ===

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.NewUpstreamError("commerce", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return model.NewRateLimitError("commerce")
	}

	var env model.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 400 {
			// Error body did not follow the envelope convention
			return model.NewUpstreamError("commerce",
				fmt.Errorf("status %d with undecodable body", resp.StatusCode))
		}
		return model.NewUpstreamError("commerce", fmt.Errorf("decoding response: %w", err))
	}

	if resp.StatusCode >= 400 || !env.Success {
		if resp.StatusCode == http.StatusNotFound {
			return model.NewNotFoundError(resourceName(path))
		}
		// Surface the backend's message and field details, never an opaque
		// status code.
		return model.NewBackendError(resp.StatusCode, env.Message, env.ErrorDetails())
	}

	if out == nil {
		return nil
	}
	if err := env.Decode(out); err != nil {
		return model.NewUpstreamError("commerce", fmt.Errorf("decoding payload: %w", err))
	}
	return nil
}

// resourceName derives a display name from a request path for not-found
// errors ("/coupons/code/X" → "coupon").
func resourceName(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i > 0 {
		path = path[:i]
	}
	return strings.TrimSuffix(path, "s")
}

// Verify Client implements API at compile time.
var _ API = (*Client)(nil)
