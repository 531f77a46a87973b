package link

import "time"

// Link maps an opaque token to a destination URL plus an optional provider
// config reference. Immutable after creation; only stats fields change.
type Link struct {
	Token          string     `gorm:"column:token;primaryKey" json:"token"`
	Name           string     `gorm:"column:name" json:"name"`
	DestinationURL string     `gorm:"column:destination_url" json:"destination_url"`
	ConfigID       *uint      `gorm:"column:config_id" json:"config_id,omitempty"`
	Clicks         int64      `gorm:"column:clicks" json:"clicks"`
	PhotosCaptured int64      `gorm:"column:photos_captured" json:"photos_captured"`
	LastClickedAt  *time.Time `gorm:"column:last_clicked_at" json:"last_clicked_at,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
}

func (Link) TableName() string { return "links" }
