package settings

import "errors"

var (
	ErrNotInstalled      = errors.New("chronopay settings not installed")
	ErrInvalidGatewayURL = errors.New("gateway url must be an absolute http(s) url")
	ErrNegativeFee       = errors.New("additional fee must not be negative")
	ErrInvalidSetting    = errors.New("invalid stored setting")
)
