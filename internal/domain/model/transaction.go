package model

import "encoding/json"

// TransactionRecord captures the on-chain details returned by the
// verification service for a single txid. Request-scoped, never persisted.
type TransactionRecord struct {
	Mined          bool
	FromAddress    string
	PayeeAddresses []string
	PayeeAmounts   []string
	Raw            json.RawMessage
}

// PayeeAddress returns the authoritative receiving address, the first entry.
func (r *TransactionRecord) PayeeAddress() string {
	if len(r.PayeeAddresses) == 0 {
		return ""
	}
	return r.PayeeAddresses[0]
}

// PayeeAmount returns the authoritative paid amount, the first entry.
func (r *TransactionRecord) PayeeAmount() string {
	if len(r.PayeeAmounts) == 0 {
		return ""
	}
	return r.PayeeAmounts[0]
}
