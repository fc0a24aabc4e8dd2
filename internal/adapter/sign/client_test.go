package sign

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPClientValidatesURL(t *testing.T) {
	if _, err := NewHTTPClient("://bad-url", 0, testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPClient("/relative", 0, testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestCheckTxidParsesMinedTransaction(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected json content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"transaction": {
				"from": "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
				"method": {
					"parameters": {
						"_payeesPaymentAddress": ["0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"],
						"_payeeAmounts": ["1000000000000000000"]
					}
				}
			}
		}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	record, err := client.CheckTxid(context.Background(), "0xdeadbeef")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotBody["txid"] != "0xdeadbeef" {
		t.Errorf("expected txid in request body, got %v", gotBody)
	}
	if !record.Mined {
		t.Error("expected mined record")
	}
	if record.FromAddress != "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359" {
		t.Errorf("unexpected from address %q", record.FromAddress)
	}
	if record.PayeeAddress() != "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed" {
		t.Errorf("unexpected payee address %q", record.PayeeAddress())
	}
	if record.PayeeAmount() != "1000000000000000000" {
		t.Errorf("unexpected payee amount %q", record.PayeeAmount())
	}
	if len(record.Raw) == 0 {
		t.Error("expected raw response to be kept for logging")
	}
}

func TestCheckTxidNumericAmounts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"transaction":{"from":"","method":{"parameters":{"_payeesPaymentAddress":["0xabc"],"_payeeAmounts":[1000000000000000000]}}}}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	record, err := client.CheckTxid(context.Background(), "0x1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.PayeeAmount() != "1000000000000000000" {
		t.Errorf("expected exact numeric literal, got %q", record.PayeeAmount())
	}
}

func TestCheckTxidUnminedTransaction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := NewHTTPClient(server.URL, time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	record, err := client.CheckTxid(context.Background(), "0x1")
	if err != nil {
		t.Fatalf("unmined must not be an error, got %v", err)
	}
	if record.Mined {
		t.Error("expected unmined record")
	}
}

func TestCheckTxidTransportErrors(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "empty body",
			handler: func(w http.ResponseWriter, r *http.Request) {
			},
		},
		{
			name: "non-json body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>gateway timeout</html>"))
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			client, err := NewHTTPClient(server.URL, time.Second, testLogger())
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}

			_, err = client.CheckTxid(context.Background(), "0x1")
			var transportErr *TransportError
			if !errors.As(err, &transportErr) {
				t.Fatalf("expected TransportError, got %v", err)
			}
		})
	}
}

func TestCheckTxidNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := NewHTTPClient(server.URL, time.Second, testLogger())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	_, err = client.CheckTxid(context.Background(), "0x1")
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError for refused connection, got %v", err)
	}
}
