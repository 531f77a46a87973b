package link

import (
	"context"

	"snaplink/internal/modules/provider"
)

// ConfigResolver checks that a config reference points at an existing record.
type ConfigResolver interface {
	GetByID(ctx context.Context, id uint) (*provider.Config, error)
}

// CaptureCleaner removes the capture records belonging to a link, including
// best-effort remote object cleanup. Wired from the capture module in main.
type CaptureCleaner interface {
	DeleteByLink(ctx context.Context, token string) error
}
