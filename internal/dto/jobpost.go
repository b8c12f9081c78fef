package dto

import "time"

type JobPostDTO struct {
	ID          uint64     `json:"id"`
	Title       string     `json:"title" validate:"required,max=200"`
	Description string     `json:"description"`
	Location    string     `json:"location" validate:"max=100"`
	PayStatus   string     `json:"pay_status" validate:"omitempty,oneof=NONE FREE PAID"`
	IsClosed    bool       `json:"is_closed"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	UpdatedAt   time.Time  `json:"updated_at"`
	MemberID    uint64     `json:"member_id"`
}
