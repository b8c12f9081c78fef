package model

import "time"

const (
	OutboxPending int8 = 0
	OutboxSent    int8 = 1
	OutboxFailed  int8 = 2
)

// Outbox 领域事件表，和业务写入同一个事务
type Outbox struct {
	ID            uint64 `gorm:"primaryKey"`
	EventType     string `gorm:"size:32;not null"` // feed.created / jobpost.removed ...
	AggregateType string `gorm:"size:16;not null"`
	AggregateID   uint64 `gorm:"not null;index"`
	Payload       string `gorm:"type:json;not null"`
	Status        int8   `gorm:"not null;default:0;index;comment:'0=pending,1=sent,2=failed'"`
	Retry         int    `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Outbox) TableName() string { return "event_outbox" }
