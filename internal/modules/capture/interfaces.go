package capture

import (
	"context"
	"time"

	"snaplink/internal/modules/link"
	"snaplink/internal/modules/provider"
	"snaplink/internal/storage"
)

// LinkResolver resolves tokens to their link records.
type LinkResolver interface {
	GetByToken(ctx context.Context, token string) (*link.Link, error)
}

// StatsBumper updates click/capture counters on the owning link.
type StatsBumper interface {
	BumpStats(ctx context.Context, token string, at time.Time) error
}

// ConfigResolver looks up the provider config referenced by a link.
type ConfigResolver interface {
	GetByID(ctx context.Context, id uint) (*provider.Config, error)
}

// AdapterFactory selects the storage adapter for a provider kind.
// Production wiring uses storage.ForKind; tests substitute stubs.
type AdapterFactory func(kind provider.Kind) (storage.Adapter, error)
