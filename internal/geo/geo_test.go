package geo

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCurrencyForCountry(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"US", "USD"},
		{"de", "EUR"},
		{" gb ", "GBP"},
		{"XX", "USD"},
		{"", "USD"},
	}
	for _, tt := range tests {
		if got := CurrencyForCountry(tt.code); got != tt.want {
			t.Errorf("CurrencyForCountry(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestCurrencyFromLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/203.0.113.7/json" {
			t.Errorf("path = %q, want /203.0.113.7/json", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"country_code":"JP"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, HTTPClient: srv.Client()}, slog.Default())
	if got := c.Currency(context.Background(), "203.0.113.7"); got != "JPY" {
		t.Errorf("Currency() = %q, want JPY", got)
	}
}

func TestCurrencyFallsBackOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"bad payload", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}},
		{"empty country", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := New(Config{BaseURL: srv.URL, HTTPClient: srv.Client()}, slog.Default())
			if got := c.Currency(context.Background(), ""); got != DefaultCurrency {
				t.Errorf("Currency() = %q, want %q fallback", got, DefaultCurrency)
			}
		})
	}
}

func TestCurrencyFallsBackWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := New(Config{BaseURL: srv.URL, HTTPClient: srv.Client()}, slog.Default())
	srv.Close()

	if got := c.Currency(context.Background(), ""); got != DefaultCurrency {
		t.Errorf("Currency() = %q, want %q fallback", got, DefaultCurrency)
	}
}
