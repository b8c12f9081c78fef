package provider

import (
	"context"
	"errors"
	"fmt"

	"Bitta/internal/model"
	"Bitta/internal/repository/mysql"
	"Bitta/internal/service"
)

type MemberFinder interface {
	FindByID(ctx context.Context, id uint64) (*model.Member, error)
}

// MemberProvider 给 feed、招聘帖模块解析所属成员
type MemberProvider struct {
	repo MemberFinder
}

func NewMemberProvider(repo MemberFinder) *MemberProvider {
	return &MemberProvider{repo: repo}
}

func (p *MemberProvider) GetByID(ctx context.Context, id uint64) (*model.Member, error) {
	if id == 0 {
		return nil, service.ErrMemberNotFound
	}
	member, err := p.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mysql.ErrNotFound) {
			return nil, service.ErrMemberNotFound
		}
		return nil, fmt.Errorf("get member %d: %w", id, err)
	}
	return member, nil
}
