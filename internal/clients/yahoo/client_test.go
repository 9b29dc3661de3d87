package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finsightlabs/finsight/internal/models"
)

func TestQuerySymbol(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"AAPL", "AAPL"},
		{"aapl", "AAPL"},
		{"BTC", "BTC-USD"},
		{"eth", "ETH-USD"},
		{" doge ", "DOGE-USD"},
		{"BTCX", "BTCX"}, // not on the crypto list
	}
	for _, tc := range cases {
		if got := QuerySymbol(tc.in); got != tc.want {
			t.Errorf("QuerySymbol(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGetPrice(t *testing.T) {
	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chart":{"result":[{"meta":{"regularMarketPrice":64250.5,"chartPreviousClose":63000.0}}]}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	quote, err := client.GetPrice(context.Background(), "btc")
	if err != nil {
		t.Fatalf("GetPrice: %v", err)
	}

	if gotPath != "/v8/finance/chart/BTC-USD" {
		t.Errorf("crypto symbol should query with -USD suffix, got path %q", gotPath)
	}
	if gotUA == "" || gotUA == "Go-http-client/1.1" {
		t.Errorf("request must carry a browser user-agent, got %q", gotUA)
	}
	if quote.CurrentPrice != 64250.5 {
		t.Errorf("currentPrice = %.2f", quote.CurrentPrice)
	}
	if quote.PreviousClose != 63000.0 {
		t.Errorf("previousClose = %.2f", quote.PreviousClose)
	}
	if quote.Symbol != "BTC-USD" {
		t.Errorf("symbol = %q", quote.Symbol)
	}
}

func TestGetPriceUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.GetPrice(context.Background(), "AAPL")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
}

func TestGetPriceMissingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[{"meta":{}}]}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.GetPrice(context.Background(), "AAPL")
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("missing price fields should map to ErrNotFound, got %v", err)
	}
}

func TestGetPriceEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[]}}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	_, err := client.GetPrice(context.Background(), "NOPE")
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("empty result should map to ErrNotFound, got %v", err)
	}
}

func TestGetPriceMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>rate limited</html>`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	if _, err := client.GetPrice(context.Background(), "AAPL"); err == nil {
		t.Error("malformed body should fail decoding")
	}
}
