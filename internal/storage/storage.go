// Package storage implements the upload/delete contract against the
// supported remote media back-ends. One adapter per provider kind; the
// ingestion pipeline picks the adapter matching the link's config.
package storage

import (
	"context"
	"fmt"

	"snaplink/internal/modules/provider"
)

// UploadResult identifies the stored object on the remote side.
type UploadResult struct {
	RemoteID  string
	RemoteURL string
}

// Adapter is the uniform contract every back-end implements.
// Upload is not idempotent: re-invocation creates a duplicate remote object,
// so callers must invoke it at most once per capture. Delete is idempotent:
// removing an id that no longer exists is not an error.
type Adapter interface {
	Upload(ctx context.Context, data []byte, filename string, cfg *provider.Config) (*UploadResult, error)
	Delete(ctx context.Context, remoteID string, cfg *provider.Config) error
}

// UploadError wraps a provider-side upload failure. Code distinguishes
// failures worth surfacing separately (quota/ownership rejections) from
// generic provider errors.
type UploadError struct {
	Kind provider.Kind
	Code string
	Err  error
}

const (
	// CodeQuota marks provider quota or ownership rejections. Consumer-grade
	// service accounts commonly hit these when uploading into folders they do
	// not own; they are surfaced, never retried.
	CodeQuota    = "quota"
	CodeProvider = "provider"
)

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload to %s failed (%s): %v", e.Kind, e.Code, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// DeleteError wraps a provider-side delete failure.
type DeleteError struct {
	Kind provider.Kind
	Err  error
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("delete from %s failed: %v", e.Kind, e.Err)
}

func (e *DeleteError) Unwrap() error { return e.Err }

// ForKind returns the adapter implementing the given provider kind.
func ForKind(kind provider.Kind) (Adapter, error) {
	switch kind {
	case provider.KindServiceAccount:
		return &DriveAdapter{}, nil
	case provider.KindCDNMedia:
		return &ObjectAdapter{}, nil
	}
	return nil, fmt.Errorf("no storage adapter for kind %q", kind)
}
