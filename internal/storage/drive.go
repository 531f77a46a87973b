package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"snaplink/internal/modules/provider"
)

// DriveAdapter implements the service-account-store contract on Google Drive.
// It authenticates with the signed service-account document stored on the
// config and uploads into the configured parent folder.
type DriveAdapter struct{}

func (a *DriveAdapter) service(ctx context.Context, cfg *provider.Config) (*drive.Service, error) {
	return drive.NewService(ctx,
		option.WithCredentialsJSON(cfg.ServiceAccountJSON),
		option.WithScopes(drive.DriveFileScope),
	)
}

func (a *DriveAdapter) Upload(ctx context.Context, data []byte, filename string, cfg *provider.Config) (*UploadResult, error) {
	if cfg.FolderID == "" {
		return nil, &UploadError{Kind: cfg.Kind, Code: CodeProvider, Err: errors.New("folder id is empty")}
	}

	svc, err := a.service(ctx, cfg)
	if err != nil {
		return nil, &UploadError{Kind: cfg.Kind, Code: CodeProvider, Err: fmt.Errorf("auth: %w", err)}
	}

	meta := &drive.File{
		Name:    filename,
		Parents: []string{cfg.FolderID},
	}

	created, err := svc.Files.Create(meta).
		Media(bytes.NewReader(data), googleapi.ContentType("image/jpeg")).
		Fields("id", "name", "webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return nil, &UploadError{Kind: cfg.Kind, Code: classifyDriveError(err), Err: err}
	}

	// webViewLink is best-effort; the file id is the stable reference.
	return &UploadResult{
		RemoteID:  created.Id,
		RemoteURL: created.WebViewLink,
	}, nil
}

func (a *DriveAdapter) Delete(ctx context.Context, remoteID string, cfg *provider.Config) error {
	svc, err := a.service(ctx, cfg)
	if err != nil {
		return &DeleteError{Kind: cfg.Kind, Err: fmt.Errorf("auth: %w", err)}
	}

	if err := svc.Files.Delete(remoteID).Context(ctx).Do(); err != nil {
		// the file may already be gone
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
			return nil
		}
		return &DeleteError{Kind: cfg.Kind, Err: err}
	}
	return nil
}

// classifyDriveError separates quota/ownership rejections from everything
// else. Service accounts have no storage of their own, so consumer Drive
// folders reject server-owned uploads with 403s that look like auth problems
// but are really account limitations.
func classifyDriveError(err error) string {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return CodeProvider
	}
	if gerr.Code != http.StatusForbidden {
		return CodeProvider
	}
	for _, item := range gerr.Errors {
		switch item.Reason {
		case "storageQuotaExceeded", "quotaExceeded", "insufficientPermissions", "teamDriveFileLimitExceeded":
			return CodeQuota
		}
	}
	return CodeProvider
}
