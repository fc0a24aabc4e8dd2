package normalize

import "testing"

func TestAddressCanonicalizesCase(t *testing.T) {
	a := Address("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	b := Address(" 0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed ")
	if a != b {
		t.Fatalf("expected equal normalized addresses, got %q and %q", a, b)
	}

	other := Address("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaee")
	if a == other {
		t.Fatal("addresses differing in a non-case character must not be equal")
	}
}

func TestValidAddress(t *testing.T) {
	valid := []string{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		"0xde709f2102306220921060314715629080e2fb77",
		"0x52908400098527886E0F7030069857D2E4169EE7",
	}
	for _, a := range valid {
		if !ValidAddress(a) {
			t.Errorf("expected %s to be valid", a)
		}
	}

	invalid := []string{
		"",
		"cancelled",
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAe",
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAedd",
		"5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaeg",
		// correct hex, broken EIP-55 checksum
		"0x5Aaeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
	}
	for _, a := range invalid {
		if ValidAddress(a) {
			t.Errorf("expected %s to be invalid", a)
		}
	}
}

func TestAmountScalesSmallestUnits(t *testing.T) {
	got, err := Amount("1000000000000000000", 18)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1.000000000000000000" {
		t.Fatalf("expected 1.000000000000000000, got %s", got)
	}

	if _, err := Amount("not-a-number", 18); err == nil {
		t.Fatal("expected error for non-numeric amount")
	}
}

func TestAmountEqualAtDifferentPrecisions(t *testing.T) {
	cases := []struct {
		sent     string
		expected string
		equal    bool
	}{
		{"1000000000000000000", "1.000000000000000000", true},
		{"1000000000000000000", "1", true},
		{"1500000000000000000", "1.5", true},
		{"42000000000000000", "0.042", true},
		{"999999999999999999", "1", false},
		{"1000000000000000001", "1", false},
		{"0", "0.5", false},
	}

	for _, tc := range cases {
		if got := AmountEqual(tc.sent, tc.expected, 18); got != tc.equal {
			t.Errorf("AmountEqual(%s, %s) = %v, want %v", tc.sent, tc.expected, got, tc.equal)
		}
	}
}

func TestFixedWidthSharedPadding(t *testing.T) {
	a, err := FixedWidth("1", 18)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Amount("1000000000000000000", 18)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("expected both operands to share width, got %d and %d", len(a), len(b))
	}
}

func TestZeroAmount(t *testing.T) {
	if !ZeroAmount("0") || !ZeroAmount("") || !ZeroAmount("0.000") {
		t.Error("expected zero detection for zero and unparsable values")
	}
	if ZeroAmount("1") {
		t.Error("expected non-zero value to be detected")
	}
}
