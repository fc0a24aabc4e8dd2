// Package normalize canonicalizes blockchain addresses and monetary values
// so equality checks are exact string comparisons.
package normalize

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/sha3"
)

// Address canonicalizes a blockchain address for comparison. Addresses are
// case-insensitive on chain but commonly rendered with checksummed case.
func Address(a string) string {
	return strings.ToLower(strings.TrimSpace(a))
}

// ValidAddress reports whether a is a syntactically valid address: 0x prefix
// followed by 40 hex characters. Mixed-case addresses must additionally
// carry a correct EIP-55 checksum.
func ValidAddress(a string) bool {
	a = strings.TrimSpace(a)
	if len(a) != 42 || a[0] != '0' || (a[1] != 'x' && a[1] != 'X') {
		return false
	}
	hex := a[2:]
	for _, c := range hex {
		if !isHex(byte(c)) {
			return false
		}
	}
	lower := strings.ToLower(hex)
	upper := strings.ToUpper(hex)
	if hex == lower || hex == upper {
		return true
	}
	return hex == checksumCase(lower)
}

// Amount converts an integer smallest-unit value to its decimal form by
// scaling down by 10^decimals, rounded and rendered with exactly decimals
// fractional digits. Both operands of a comparison must be normalized with
// the same decimals so their widths match.
func Amount(raw string, decimals int32) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("parse amount %q: %w", raw, err)
	}
	return d.Shift(-decimals).StringFixed(decimals), nil
}

// FixedWidth renders an already-decimal value with exactly decimals
// fractional digits, the same width Amount produces.
func FixedWidth(value string, decimals int32) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("parse amount %q: %w", value, err)
	}
	return d.StringFixed(decimals), nil
}

// AmountEqual compares a smallest-unit value against an expected decimal
// value after normalizing both to the shared fixed width.
func AmountEqual(sentRaw, expected string, decimals int32) bool {
	sent, err := Amount(sentRaw, decimals)
	if err != nil {
		return false
	}
	want, err := FixedWidth(expected, decimals)
	if err != nil {
		return false
	}
	return sent == want
}

// ZeroAmount reports whether raw parses to zero or does not parse at all.
func ZeroAmount(raw string) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return true
	}
	return d.IsZero()
}

// checksumCase returns the EIP-55 casing for a lowercase 40-char hex string.
func checksumCase(lower string) string {
	hash := sha3.NewLegacyKeccak256()
	hash.Write([]byte(lower))
	sum := hash.Sum(nil)

	out := []byte(lower)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := sum[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if nibble >= 8 {
			out[i] = c - ('a' - 'A')
		}
	}
	return string(out)
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
