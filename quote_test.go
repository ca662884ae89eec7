package coinledger

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newQuoteServer serves a canned JSON body on every request and records the
// last query string.
func newQuoteServer(t *testing.T, body string) (*CoinGecko, *string) {
	t.Helper()
	var lastQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastQuery = r.URL.RawQuery
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return &CoinGecko{BaseURL: srv.URL}, &lastQuery
}

func TestCoinGecko_Fetch(t *testing.T) {
	g, query := newQuoteServer(t, `{"bitcoin":{"usd":47891.5},"ethereum":{"usd":3542}}`)

	prices, err := g.Fetch([]string{"bitcoin", "ethereum"}, "usd")
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if prices["bitcoin"] != 47891.5 || prices["ethereum"] != 3542 {
		t.Errorf("Fetch() = %v", prices)
	}
	if want := "ids=bitcoin%2Cethereum&vs_currencies=usd"; *query != want {
		t.Errorf("query = %q, want %q", *query, want)
	}
}

func TestCoinGecko_FetchAPIKey(t *testing.T) {
	g, query := newQuoteServer(t, `{"bitcoin":{"usd":1}}`)
	g.APIKey = "demo-key"

	if _, err := g.Fetch([]string{"bitcoin"}, "usd"); err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if want := "ids=bitcoin&vs_currencies=usd&x_cg_demo_api_key=demo-key"; *query != want {
		t.Errorf("query = %q, want %q", *query, want)
	}
}

func TestCoinGecko_FetchErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty payload", `{}`},
		{"missing asset", `{"bitcoin":{"usd":1}}`},
		{"not json", `oops`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, _ := newQuoteServer(t, tc.body)
			_, err := g.Fetch([]string{"bitcoin", "ethereum"}, "usd")
			if !errors.Is(err, ErrQuote) {
				t.Errorf("Fetch() = %v, want ErrQuote", err)
			}
		})
	}
}

func TestCoinGecko_FetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := &CoinGecko{BaseURL: srv.URL}
	if _, err := g.Fetch([]string{"bitcoin"}, "usd"); !errors.Is(err, ErrQuote) {
		t.Errorf("Fetch() on HTTP 429 = %v, want ErrQuote", err)
	}
}

func TestCoinGecko_HasAsset(t *testing.T) {
	g, _ := newQuoteServer(t, `{"bitcoin":{"usd":47891}}`)
	if !g.HasAsset("bitcoin") {
		t.Errorf("HasAsset(bitcoin) = false, want true")
	}

	// The provider omits unknown ids entirely.
	g, _ = newQuoteServer(t, `{}`)
	if g.HasAsset("notacoin") {
		t.Errorf("HasAsset(notacoin) = true, want false")
	}
}

func TestCoinGecko_HasCurrency(t *testing.T) {
	g, query := newQuoteServer(t, `{"bitcoin":{"eur":44000}}`)
	if !g.HasCurrency("EUR") {
		t.Errorf("HasCurrency(EUR) = false, want true")
	}
	if want := "ids=bitcoin&vs_currencies=eur"; *query != want {
		t.Errorf("query = %q, want %q", *query, want)
	}

	g, _ = newQuoteServer(t, `{"bitcoin":{}}`)
	if g.HasCurrency("xyz") {
		t.Errorf("HasCurrency(xyz) = true, want false")
	}
}

func TestValidateCurrency(t *testing.T) {
	if err := ValidateCurrency("usd"); err != nil {
		t.Errorf("ValidateCurrency(usd) = %v", err)
	}
	if err := ValidateCurrency("EUR"); err != nil {
		t.Errorf("ValidateCurrency(EUR) = %v", err)
	}
	if err := ValidateCurrency("notacurrency"); !errors.Is(err, ErrValidation) {
		t.Errorf("ValidateCurrency(notacurrency) = %v, want ErrValidation", err)
	}
}
