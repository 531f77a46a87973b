package provider

import "errors"

var (
	ErrNotFound   = errors.New("provider config not found")
	ErrValidation = errors.New("invalid provider config")
)
