package dto

import "time"

type MemberDTO struct {
	ID              uint64    `json:"id"`
	Username        string    `json:"username"`
	Nickname        string    `json:"nickname" form:"nickname" validate:"max=64"`
	Email           string    `json:"email" form:"email" validate:"omitempty,email"`
	Address         string    `json:"address" form:"address" validate:"max=255"`
	ProfileImageURL string    `json:"profile_image_url"`
	Role            int       `json:"role"`
	CreatedAt       time.Time `json:"created_at"`
}

// SignUpDTO 注册请求体
type SignUpDTO struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=8,max=64"`
	Nickname string `json:"nickname" validate:"max=64"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address" validate:"max=255"`
}

type TokenPair struct {
	GrantType    string `json:"grant_type"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
