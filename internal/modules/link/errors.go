package link

import "errors"

var (
	ErrNotFound         = errors.New("link not found")
	ErrValidation       = errors.New("invalid destination url")
	ErrInvalidConfigRef = errors.New("referenced provider config does not exist")
)
