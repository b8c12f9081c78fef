package model

import "time"

type Feed struct {
	ID        uint64    `gorm:"primaryKey"`
	Title     string    `gorm:"size:200;not null"`
	Content   string    `gorm:"type:text"`
	MemberID  uint64    `gorm:"not null;index:idx_feed_member_time,priority:1"`
	Member    Member    `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE"`
	Photos    []Photo   `gorm:"foreignKey:FeedID;constraint:OnDelete:CASCADE"`
	Videos    []Video   `gorm:"foreignKey:FeedID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"index:idx_feed_member_time,priority:2,sort:desc"`
}

type Photo struct {
	ID        uint64 `gorm:"primaryKey"`
	FeedID    uint64 `gorm:"not null;index"`
	PhotoURL  string `gorm:"size:512;not null"`
	ObjectKey string `gorm:"size:255;not null"`
	CreatedAt time.Time
}

type Video struct {
	ID        uint64 `gorm:"primaryKey"`
	FeedID    uint64 `gorm:"not null;index"`
	VideoURL  string `gorm:"size:512;not null"`
	ObjectKey string `gorm:"size:255;not null"`
	CreatedAt time.Time
}
