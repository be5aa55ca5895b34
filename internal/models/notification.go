package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type NotificationKind string

const (
	KindContactUs     NotificationKind = "contactus"
	KindInterview     NotificationKind = "interview"
	KindNotInterested NotificationKind = "not-interested"
	KindHired         NotificationKind = "hired"
	KindSubscribe     NotificationKind = "subscribe"
)

// Email is a rendered message ready for a transport.
type Email struct {
	Kind    NotificationKind `json:"kind"`
	From    string           `json:"from"`
	ReplyTo string           `json:"reply_to,omitempty"`
	To      []string         `json:"to"`
	Subject string           `json:"subject"`
	Text    string           `json:"text"`
}

// NotificationLog is one delivery attempt in the Postgres ledger.
type NotificationLog struct {
	ID         string           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Kind       NotificationKind `gorm:"column:kind;type:text;index" json:"kind"`
	Sender     string           `gorm:"column:sender;type:text" json:"sender"`
	Recipients pq.StringArray   `gorm:"column:recipients;type:text[]" json:"recipients"`
	Subject    string           `gorm:"column:subject;type:text" json:"subject"`
	Status     string           `gorm:"column:status;type:text;index" json:"status"` // sent | failed
	ProviderID string           `gorm:"column:provider_id;type:text" json:"provider_id,omitempty"`
	Error      string           `gorm:"column:error;type:text" json:"error,omitempty"`
	Payload    datatypes.JSON   `gorm:"column:payload;type:jsonb" json:"payload"`
	CreatedAt  time.Time        `gorm:"column:created_at;type:timestamptz;index" json:"created_at"`
}

func (NotificationLog) TableName() string { return "notification_logs" }

// ListingEvent is published whenever a job or internship changes.
type ListingEvent struct {
	Type string    `json:"type"` // job.created | job.updated | job.deleted | internship.*
	ID   string    `json:"id"`
	At   time.Time `json:"at"`
}
