package storefront

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestHTTPClientDeliversEvents(t *testing.T) {
	type call struct {
		path    string
		payload event
	}
	var calls []call

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload event
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		calls = append(calls, call{path: r.URL.Path, payload: payload})
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	ctx := context.Background()
	if err := client.ClearCart(ctx, 1); err != nil {
		t.Fatalf("clear cart: %v", err)
	}
	if err := client.NotifyBuyer(ctx, 2, "notice"); err != nil {
		t.Fatalf("notify buyer: %v", err)
	}
	if err := client.OrderFailed(ctx, 3, "reason"); err != nil {
		t.Fatalf("order failed: %v", err)
	}

	if len(calls) != 3 {
		t.Fatalf("expected 3 webhook calls, got %d", len(calls))
	}
	if calls[0].path != "/webhooks/cart-clear" || calls[0].payload.OrderID != 1 {
		t.Errorf("unexpected cart clear call %+v", calls[0])
	}
	if calls[1].path != "/webhooks/buyer-notice" || calls[1].payload.Message != "notice" {
		t.Errorf("unexpected buyer notice call %+v", calls[1])
	}
	if calls[2].path != "/webhooks/order-failed" || calls[2].payload.Message != "reason" {
		t.Errorf("unexpected order failed call %+v", calls[2])
	}
}

func TestHTTPClientReportsServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if err := client.ClearCart(context.Background(), 1); err == nil {
		t.Fatal("expected error for failing webhook")
	}
}

func TestNoopClientNeverFails(t *testing.T) {
	client := NewNoopClient(testLogger())
	ctx := context.Background()
	if err := client.ClearCart(ctx, 1); err != nil {
		t.Fatalf("clear cart: %v", err)
	}
	if err := client.NotifyBuyer(ctx, 1, "notice"); err != nil {
		t.Fatalf("notify buyer: %v", err)
	}
	if err := client.OrderFailed(ctx, 1, "reason"); err != nil {
		t.Fatalf("order failed: %v", err)
	}
}
