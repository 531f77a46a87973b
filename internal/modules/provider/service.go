package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"
)

// Service is pure storage plus shape validation; it never talks to a
// storage provider.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the credential shape for the requested kind and stores the
// config. The kind is immutable after creation: there is no update operation,
// credentials are replaced via delete + recreate.
func (s *Service) Create(ctx context.Context, req CreateConfigRequest) (*Config, error) {
	if strings.TrimSpace(req.Label) == "" {
		return nil, fmt.Errorf("%w: label is required", ErrValidation)
	}
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrValidation, req.Kind)
	}

	cfg := &Config{
		Label:  strings.TrimSpace(req.Label),
		Kind:   req.Kind,
		Folder: strings.TrimSpace(req.Folder),
	}

	switch req.Kind {
	case KindServiceAccount:
		if req.Endpoint != "" || req.AccessKey != "" || req.SecretKey != "" || req.Bucket != "" {
			return nil, fmt.Errorf("%w: cdn-media-store fields set on a service-account-store config", ErrValidation)
		}
		if len(req.ServiceAccountJSON) == 0 {
			return nil, fmt.Errorf("%w: service_account_json is required", ErrValidation)
		}
		var doc map[string]any
		if err := json.Unmarshal(req.ServiceAccountJSON, &doc); err != nil {
			return nil, fmt.Errorf("%w: service_account_json is not a JSON object", ErrValidation)
		}
		if strings.TrimSpace(req.FolderID) == "" {
			return nil, fmt.Errorf("%w: folder_id is required", ErrValidation)
		}
		cfg.ServiceAccountJSON = datatypes.JSON(req.ServiceAccountJSON)
		cfg.FolderID = strings.TrimSpace(req.FolderID)

	case KindCDNMedia:
		if len(req.ServiceAccountJSON) != 0 || req.FolderID != "" {
			return nil, fmt.Errorf("%w: service-account-store fields set on a cdn-media-store config", ErrValidation)
		}
		for field, value := range map[string]string{
			"endpoint":   req.Endpoint,
			"access_key": req.AccessKey,
			"secret_key": req.SecretKey,
			"bucket":     req.Bucket,
		} {
			if strings.TrimSpace(value) == "" {
				return nil, fmt.Errorf("%w: %s is required", ErrValidation, field)
			}
		}
		cfg.Endpoint = strings.TrimSpace(req.Endpoint)
		cfg.AccessKey = req.AccessKey
		cfg.SecretKey = req.SecretKey
		cfg.Bucket = strings.TrimSpace(req.Bucket)
	}

	if err := s.repo.Create(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *Service) GetByID(ctx context.Context, id uint) (*Config, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Config, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
