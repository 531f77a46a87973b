package capture

import "time"

// Outcome is the terminal state of one capture attempt.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeSkipped   Outcome = "skipped"
)

// Capture is the durable record of one browser upload event. Written exactly
// once per attempt and never mutated afterwards; removed only via the
// explicit delete flow.
type Capture struct {
	ID           string  `gorm:"column:id;primaryKey" json:"id"`
	LinkToken    string  `gorm:"column:link_token" json:"link_token"`
	Outcome      Outcome `gorm:"column:outcome" json:"outcome"`
	ProviderKind string  `gorm:"column:provider_kind" json:"provider_kind,omitempty"`
	Filename     string  `gorm:"column:filename" json:"filename"`
	RemoteID     *string `gorm:"column:remote_id" json:"remote_id,omitempty"`
	RemoteURL    *string `gorm:"column:remote_url" json:"remote_url,omitempty"`

	// visitor metadata, snapshot at capture time
	IPAddress        string `gorm:"column:ip_address" json:"ip_address,omitempty"`
	UserAgent        string `gorm:"column:user_agent" json:"user_agent,omitempty"`
	ScreenResolution string `gorm:"column:screen_resolution" json:"screen_resolution,omitempty"`
	DestinationURL   string `gorm:"column:destination_url" json:"destination_url"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Capture) TableName() string { return "captures" }
