package domain

import "errors"

var (
	ErrMissingParams     = errors.New("missing required parameters")
	ErrTransport         = errors.New("schedule backend unavailable")
	ErrMalformedResponse = errors.New("malformed backend response")
)
