// Package geo defaults a session's display currency from the caller's IP,
// using an external IP-geolocation service. Every failure path falls back
// to a fixed default currency; a geolocation outage never blocks shopping.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultCurrency is used whenever the lookup fails or the country has no
// mapping.
const DefaultCurrency = "USD"

// currencyByCountry maps ISO 3166-1 alpha-2 country codes to the currency
// presented by default. Unlisted countries fall back to DefaultCurrency.
var currencyByCountry = map[string]string{
	"US": "USD", "CA": "CAD", "GB": "GBP", "AU": "AUD", "NZ": "NZD",
	"IN": "INR", "JP": "JPY", "CH": "CHF", "SE": "SEK", "NO": "NOK",
	"DK": "DKK", "MX": "MXN", "BR": "BRL", "SG": "SGD", "HK": "HKD",
	"AE": "AED", "SA": "SAR", "ZA": "ZAR", "NG": "NGN", "KE": "KES",
	// Eurozone
	"DE": "EUR", "FR": "EUR", "IT": "EUR", "ES": "EUR", "NL": "EUR",
	"BE": "EUR", "AT": "EUR", "IE": "EUR", "PT": "EUR", "FI": "EUR",
	"GR": "EUR",
}

// CurrencyForCountry returns the default currency for a country code, or
// DefaultCurrency when the country is unknown or unmapped.
func CurrencyForCountry(code string) string {
	if currency, ok := currencyByCountry[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return currency
	}
	return DefaultCurrency
}

// Config holds geolocation service settings.
type Config struct {
	BaseURL string

	// HTTPClient overrides the default client; used by tests.
	HTTPClient *http.Client
}

// Client queries the IP-geolocation service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		logger:     logger,
	}
}

// lookupResponse is the subset of the geolocation payload we read.
type lookupResponse struct {
	CountryCode string `json:"country_code"`
}

// CountryCode resolves the country for ip. An empty ip asks the service to
// locate the requesting host.
func (c *Client) CountryCode(ctx context.Context, ip string) (string, error) {
	endpoint := c.baseURL + "/json"
	if ip != "" {
		endpoint = c.baseURL + "/" + url.PathEscape(ip) + "/json"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("geolocation lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geolocation lookup: status %d", resp.StatusCode)
	}

	var out lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding geolocation response: %w", err)
	}
	if out.CountryCode == "" {
		return "", fmt.Errorf("geolocation response carries no country code")
	}
	return out.CountryCode, nil
}

// Currency resolves the default currency for ip, falling back to
// DefaultCurrency on any failure.
func (c *Client) Currency(ctx context.Context, ip string) string {
	country, err := c.CountryCode(ctx, ip)
	if err != nil {
		c.logger.WarnContext(ctx, "geolocation lookup failed, using default currency",
			slog.String("error", err.Error()),
			slog.String("currency", DefaultCurrency))
		return DefaultCurrency
	}
	return CurrencyForCountry(country)
}
