package provider

import (
	"context"
	"fmt"

	"Bitta/internal/model"
)

type ApplyFinder interface {
	FindAllByJobPost(ctx context.Context, jobPostID uint64) ([]model.Apply, error)
}

type ApplyProvider struct {
	repo ApplyFinder
}

func NewApplyProvider(repo ApplyFinder) *ApplyProvider {
	return &ApplyProvider{repo: repo}
}

// GetAllByJobPost 没有申请记录时返回空切片
func (p *ApplyProvider) GetAllByJobPost(ctx context.Context, jobPostID uint64) ([]model.Apply, error) {
	applies, err := p.repo.FindAllByJobPost(ctx, jobPostID)
	if err != nil {
		return nil, fmt.Errorf("get applies of job post %d: %w", jobPostID, err)
	}
	if applies == nil {
		applies = []model.Apply{}
	}
	return applies, nil
}
