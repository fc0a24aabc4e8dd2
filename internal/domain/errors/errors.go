package errors

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrOrderKeyInvalid   = errors.New("invalid order key")
	ErrDuplicateCallback = errors.New("order already in process or completed")
	ErrEmptyTxid         = errors.New("empty transaction id")
)
