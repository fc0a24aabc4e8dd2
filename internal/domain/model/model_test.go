package model

import "testing"

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name  string
		got   OrderStatus
		value string
	}{
		{"pending", OrderStatusPending, "pending"},
		{"on-hold", OrderStatusOnHold, "on-hold"},
		{"processing", OrderStatusProcessing, "processing"},
		{"failed", OrderStatusFailed, "failed"},
		{"completed", OrderStatusCompleted, "completed"},
		{"cancelled", OrderStatusCancelled, "cancelled"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestOrderAwaitingPayment(t *testing.T) {
	cases := []struct {
		status   OrderStatus
		awaiting bool
	}{
		{OrderStatusPending, true},
		{OrderStatusOnHold, true},
		{OrderStatusFailed, true},
		{OrderStatusCancelled, true},
		{OrderStatusProcessing, false},
		{OrderStatusCompleted, false},
	}

	for _, tc := range cases {
		order := &Order{Status: tc.status}
		if got := order.AwaitingPayment(); got != tc.awaiting {
			t.Fatalf("status %s: expected awaiting=%v, got %v", tc.status, tc.awaiting, got)
		}
	}
}

func TestTransactionRecordFirstEntryAuthority(t *testing.T) {
	empty := &TransactionRecord{}
	if empty.PayeeAddress() != "" || empty.PayeeAmount() != "" {
		t.Fatal("expected empty record to yield empty payee fields")
	}

	record := &TransactionRecord{
		PayeeAddresses: []string{"0xabc", "0xdef"},
		PayeeAmounts:   []string{"100", "200"},
	}
	if record.PayeeAddress() != "0xabc" {
		t.Fatalf("expected first payee address, got %s", record.PayeeAddress())
	}
	if record.PayeeAmount() != "100" {
		t.Fatalf("expected first payee amount, got %s", record.PayeeAmount())
	}
}

func TestVerificationResultAccepted(t *testing.T) {
	if !(VerificationResult{Outcome: VerificationAccepted}).Accepted() {
		t.Error("expected accepted result")
	}
	for _, outcome := range []VerificationOutcome{
		VerificationUnmined,
		VerificationAddressMismatch,
		VerificationAmountMismatch,
		VerificationTransportError,
	} {
		if (VerificationResult{Outcome: outcome}).Accepted() {
			t.Errorf("outcome %s must not be accepted", outcome)
		}
	}
}
