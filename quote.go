package coinledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/Rhymond/go-money"
)

// QuoteSource supplies current prices for a set of assets in a fiat
// currency. A fetch fails on network error or on an empty/invalid payload;
// the two causes are not distinguished.
type QuoteSource interface {
	Fetch(ids []string, currency string) (map[string]float64, error)
}

const coingeckoBaseURL = "https://api.coingecko.com/api/v3/simple/price"

// CoinGecko fetches spot prices from the CoinGecko simple-price endpoint.
//
// The zero value is ready to use. It relies on http.DefaultClient, which
// carries no timeout: a hung request blocks the calling tick until the
// server gives up. Set Client to bound that.
type CoinGecko struct {
	Client  *http.Client
	BaseURL string // endpoint override, for tests
	APIKey  string // optional demo API key
}

func (g *CoinGecko) client() *http.Client {
	if g.Client != nil {
		return g.Client
	}
	return http.DefaultClient
}

func (g *CoinGecko) addr(ids []string, currency string) string {
	base := g.BaseURL
	if base == "" {
		base = coingeckoBaseURL
	}
	addr := fmt.Sprintf("%s?ids=%s&vs_currencies=%s", base, strings.Join(ids, "%2C"), url.QueryEscape(currency))
	if g.APIKey != "" {
		addr += "&x_cg_demo_api_key=" + url.QueryEscape(g.APIKey)
	}
	return addr
}

// Fetch returns the current price of every requested asset in the given
// fiat currency.
func (g *CoinGecko) Fetch(ids []string, currency string) (map[string]float64, error) {
	var payload map[string]map[string]float64
	if err := jwget(g.client(), g.addr(ids, currency), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuote, err)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrQuote)
	}
	prices := make(map[string]float64, len(ids))
	for _, id := range ids {
		quote, ok := payload[id]
		if !ok {
			return nil, fmt.Errorf("%w: no quote for %q", ErrQuote, id)
		}
		prices[id] = quote[currency]
	}
	return prices, nil
}

// HasAsset reports whether the provider can quote the given asset id.
func (g *CoinGecko) HasAsset(id string) bool {
	price, err := g.probe(id, "usd")
	return err == nil && price > 0
}

// HasCurrency reports whether the provider can quote in the given fiat
// currency, probing with bitcoin.
func (g *CoinGecko) HasCurrency(code string) bool {
	price, err := g.probe("bitcoin", strings.ToLower(code))
	return err == nil && price > 0
}

// probe requests a single (asset, currency) pair and extracts the value with
// a jsonpath, which copes with the provider omitting unknown keys entirely.
func (g *CoinGecko) probe(id, currency string) (float64, error) {
	var jobj any
	if err := jwget(g.client(), g.addr([]string{id}, currency), &jobj); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrQuote, err)
	}
	path := fmt.Sprintf("$[%q][%q]", id, currency)
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("%w: %q not in payload", ErrQuote, path)
	}
	// jsonpath is never clear about whether it returns a list of one answer
	// or a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a number", ErrQuote, path)
	}
	return val, nil
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}

// ValidateCurrency checks the code against the ISO currency table.
func ValidateCurrency(code string) error {
	if money.GetCurrency(strings.ToUpper(code)) == nil {
		return fmt.Errorf("%w: unknown currency %q", ErrValidation, code)
	}
	return nil
}
