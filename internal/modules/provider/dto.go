package provider

import "encoding/json"

type CreateConfigRequest struct {
	Label string `json:"label" binding:"required"`
	Kind  Kind   `json:"kind" binding:"required"`

	// service-account-store
	ServiceAccountJSON json.RawMessage `json:"service_account_json,omitempty"`
	FolderID           string          `json:"folder_id,omitempty"`

	// cdn-media-store
	Endpoint  string `json:"endpoint,omitempty"`
	AccessKey string `json:"access_key,omitempty"`
	SecretKey string `json:"secret_key,omitempty"`
	Bucket    string `json:"bucket,omitempty"`

	Folder string `json:"folder,omitempty"`
}
