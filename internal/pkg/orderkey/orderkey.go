package orderkey

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidKey = errors.New("invalid order key")

const keyPrefix = "wr_"

// Strategy issues and verifies HMAC-signed opaque order keys. The key is the
// only credential a buyer presents on the callback endpoints, so it must be
// unguessable and tamper-evident.
type Strategy struct {
	secret []byte
}

// NewStrategy builds Strategy with the provided secret.
func NewStrategy(secret string) *Strategy {
	return &Strategy{secret: []byte(secret)}
}

// Issue generates a signed key for the order.
func (s *Strategy) Issue(orderID int64) string {
	payload := strconv.FormatInt(orderID, 10)
	token := fmt.Sprintf("%s:%s", payload, s.sign(payload))
	return keyPrefix + base64.RawURLEncoding.EncodeToString([]byte(token))
}

// Parse validates the key and returns the encoded order ID.
func (s *Strategy) Parse(key string) (int64, error) {
	if !strings.HasPrefix(key, keyPrefix) {
		return 0, ErrInvalidKey
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(key, keyPrefix))
	if err != nil {
		return 0, ErrInvalidKey
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 2 {
		return 0, ErrInvalidKey
	}

	expectedSig := s.sign(parts[0])
	if !hmac.Equal([]byte(expectedSig), []byte(parts[1])) {
		return 0, ErrInvalidKey
	}

	orderID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, ErrInvalidKey
	}

	return orderID, nil
}

func (s *Strategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
