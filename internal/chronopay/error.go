package chronopay

import "errors"

var (
	ErrNotSupported      = errors.New("operation not supported by chronopay")
	ErrNilOrder          = errors.New("order is required")
	ErrInvalidGatewayURL = errors.New("invalid gateway url")
)
