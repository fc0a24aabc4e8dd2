package sign

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/reqpay/reqpay/internal/domain/model"
)

// TransportError indicates the verification service was unreachable or
// returned data that could not be parsed. It is a caller policy whether and
// when to retry.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("verification transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client exposes operations to query the transaction verification service.
type Client interface {
	CheckTxid(ctx context.Context, txid string) (*model.TransactionRecord, error)
}

// HTTPClient implements Client via the sign service HTTP API.
type HTTPClient struct {
	endpoint   *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type checkRequest struct {
	Txid string `json:"txid"`
}

// response mirrors the JSON payload from the sign service. A missing
// transaction field means the transaction has not been mined yet.
type response struct {
	Transaction *transactionPayload `json:"transaction"`
}

type transactionPayload struct {
	From   string `json:"from"`
	Method struct {
		Parameters struct {
			PayeesPaymentAddress []string          `json:"_payeesPaymentAddress"`
			PayeeAmounts         []json.RawMessage `json:"_payeeAmounts"`
		} `json:"parameters"`
	} `json:"method"`
}

// NewHTTPClient creates a sign service client with a bounded timeout.
func NewHTTPClient(endpoint string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse sign service url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("sign service url must be absolute")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPClient{
		endpoint: parsed,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// CheckTxid fetches the on-chain details for txid. A transaction that is not
// yet mined is an expected state reported via the record, not an error.
func (c *HTTPClient) CheckTxid(ctx context.Context, txid string) (*model.TransactionRecord, error) {
	payload, err := json.Marshal(checkRequest{Txid: txid})
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("sign service request failed",
			slog.String("txid", txid),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, &TransportError{Err: fmt.Errorf("sign service error: %s", resp.Status)}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &TransportError{Err: fmt.Errorf("empty response body")}
	}

	var data response
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}

	record := &model.TransactionRecord{Raw: body}
	if data.Transaction == nil {
		return record, nil
	}

	record.Mined = true
	record.FromAddress = data.Transaction.From
	record.PayeeAddresses = data.Transaction.Method.Parameters.PayeesPaymentAddress
	record.PayeeAmounts = rawAmounts(data.Transaction.Method.Parameters.PayeeAmounts)
	return record, nil
}

// rawAmounts keeps amounts as exact strings whether the service encodes them
// as JSON strings or bare numbers.
func rawAmounts(raws []json.RawMessage) []string {
	amounts := make([]string, 0, len(raws))
	for _, raw := range raws {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			s = string(bytes.TrimSpace(raw))
		}
		amounts = append(amounts, s)
	}
	return amounts
}
