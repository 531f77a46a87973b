package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"snaplink/internal/modules/provider"
)

// ObjectAdapter implements the cdn-media-store contract against any
// S3-compatible media CDN. Auth is three flat secrets on the config:
// endpoint, access key, secret key.
type ObjectAdapter struct{}

func (a *ObjectAdapter) client(cfg *provider.Config) (*minio.Client, error) {
	return minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: true,
	})
}

func (a *ObjectAdapter) Upload(ctx context.Context, data []byte, filename string, cfg *provider.Config) (*UploadResult, error) {
	client, err := a.client(cfg)
	if err != nil {
		return nil, &UploadError{Kind: cfg.Kind, Code: CodeProvider, Err: fmt.Errorf("client: %w", err)}
	}

	key := objectKey(cfg.Folder, filename)

	_, err = client.PutObject(ctx, cfg.Bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "image/jpeg"},
	)
	if err != nil {
		return nil, &UploadError{Kind: cfg.Kind, Code: CodeProvider, Err: err}
	}

	return &UploadResult{
		RemoteID:  key,
		RemoteURL: fmt.Sprintf("https://%s/%s/%s", cfg.Endpoint, cfg.Bucket, key),
	}, nil
}

func objectKey(folder, filename string) string {
	if folder == "" {
		return filename
	}
	return path.Join(folder, filename)
}

func (a *ObjectAdapter) Delete(ctx context.Context, remoteID string, cfg *provider.Config) error {
	client, err := a.client(cfg)
	if err != nil {
		return &DeleteError{Kind: cfg.Kind, Err: fmt.Errorf("client: %w", err)}
	}

	err = client.RemoveObject(ctx, cfg.Bucket, remoteID, minio.RemoveObjectOptions{})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil
		}
		return &DeleteError{Kind: cfg.Kind, Err: err}
	}
	return nil
}
