package model

import "time"

type Member struct {
	ID              uint64 `gorm:"primaryKey"`
	Username        string `gorm:"uniqueIndex;size:32;not null"`
	Password        string `gorm:"size:255;not null"`
	Nickname        string `gorm:"size:64"`
	Email           string `gorm:"uniqueIndex;size:64;not null"`
	Address         string `gorm:"size:255"`
	ProfileImageURL string `gorm:"size:512"`
	Role            int    `gorm:"not null;default:0"` // 0=member 1=admin
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
