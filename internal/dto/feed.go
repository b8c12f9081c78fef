package dto

import "time"

// FeedDTO 帖子传输对象，附件只携带 URL
type FeedDTO struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title" form:"title" validate:"required,max=200"`
	Content   string    `json:"content" form:"content"`
	CreatedAt time.Time `json:"created_at"`
	MemberID  uint64    `json:"member_id" form:"member_id"`
	PhotoURLs []string  `json:"photo_urls"`
	VideoURLs []string  `json:"video_urls"`
}
