package model

import "time"

type JobPost struct {
	ID          uint64 `gorm:"primaryKey"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`
	Location    string `gorm:"size:100"`
	PayStatus   string `gorm:"size:16;not null;default:'NONE'"` // NONE / FREE / PAID
	IsClosed    bool   `gorm:"not null;default:false"`
	StartDate   *time.Time
	EndDate     *time.Time
	MemberID    uint64  `gorm:"not null;index"`
	Member      Member  `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE"`
	Applies     []Apply `gorm:"foreignKey:JobPostID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Apply 申请记录，连接成员与招聘帖
type Apply struct {
	ID        uint64 `gorm:"primaryKey"`
	JobPostID uint64 `gorm:"not null;index;uniqueIndex:uk_apply_post_member"`
	MemberID  uint64 `gorm:"not null;index;uniqueIndex:uk_apply_post_member"`
	CreatedAt time.Time
}
