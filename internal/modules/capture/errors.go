package capture

import "errors"

var (
	ErrNotFound = errors.New("capture not found")
	ErrNoImage  = errors.New("no image provided")
)
