package service

import (
	"errors"
	"fmt"
)

// 错误类别，handler 按类别映射 HTTP 状态码
var (
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("conflict")
	ErrUploadFailed = errors.New("upload failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// DomainError 带类别的业务错误，errors.Is 既能匹配自身也能匹配类别
type DomainError struct {
	Kind error
	Msg  string
}

func (e *DomainError) Error() string { return e.Msg }

func (e *DomainError) Unwrap() error { return e.Kind }

func newError(kind error, msg string) error {
	return &DomainError{Kind: kind, Msg: msg}
}

// Feed
var (
	ErrFeedNotFound     = newError(ErrNotFound, "feed not found")
	ErrFeedBadRequest   = newError(ErrBadRequest, "feed id must not be set on insert")
	ErrFeedCannotDelete = newError(ErrBadRequest, "feed could not be deleted")
)

// JobPost
var (
	ErrJobPostNotFound      = newError(ErrNotFound, "job post not found")
	ErrJobPostNotRegistered = newError(ErrBadRequest, "job post not registered")
	ErrJobPostNotModified   = newError(ErrBadRequest, "job post not modified")
	ErrJobPostNotRemoved    = newError(ErrBadRequest, "job post not removed")
)

// Member
var (
	ErrMemberNotFound     = newError(ErrNotFound, "member not found")
	ErrMemberDuplicate    = newError(ErrConflict, "username or email already in use")
	ErrInvalidMember      = newError(ErrBadRequest, "invalid member")
	ErrInvalidCredentials = newError(ErrUnauthorized, "invalid username or password")
	ErrInvalidToken       = newError(ErrUnauthorized, "invalid or expired token")
)

// Media
var (
	ErrUnsupportedMedia = newError(ErrBadRequest, "unsupported media type")
	ErrFeedNotPersisted = errors.New("feed must be persisted before attaching media")
)

// UploadError 附件上传失败，Cause 是给人看的原因，Err 是原始错误
type UploadError struct {
	Cause string
	Err   error
}

func (e *UploadError) Error() string {
	if e.Err == nil {
		return e.Cause
	}
	return fmt.Sprintf("%s: %v", e.Cause, e.Err)
}

func (e *UploadError) Unwrap() []error {
	return []error{ErrUploadFailed, e.Err}
}
