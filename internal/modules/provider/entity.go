package provider

import (
	"time"

	"gorm.io/datatypes"
)

// Kind discriminates which storage back-end contract applies to a config.
type Kind string

const (
	KindServiceAccount Kind = "service-account-store"
	KindCDNMedia       Kind = "cdn-media-store"
)

func (k Kind) Valid() bool {
	return k == KindServiceAccount || k == KindCDNMedia
}

// Config is a named credential bundle for one storage back-end.
// Exactly one kind's credential fields are populated per record; links and
// captures reference configs by id, never by value.
type Config struct {
	ID        uint   `gorm:"column:id;primaryKey" json:"id"`
	Label     string `gorm:"column:label" json:"label"`
	Kind      Kind   `gorm:"column:kind" json:"kind"`

	// service-account-store
	ServiceAccountJSON datatypes.JSON `gorm:"column:service_account_json" json:"-"`
	FolderID           string         `gorm:"column:folder_id" json:"folder_id,omitempty"`

	// cdn-media-store
	Endpoint  string `gorm:"column:endpoint" json:"endpoint,omitempty"`
	AccessKey string `gorm:"column:access_key" json:"-"`
	SecretKey string `gorm:"column:secret_key" json:"-"`
	Bucket    string `gorm:"column:bucket" json:"bucket,omitempty"`

	// optional destination folder/prefix for either kind
	Folder string `gorm:"column:folder" json:"folder,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Config) TableName() string { return "provider_configs" }
