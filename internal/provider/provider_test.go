package provider

import (
	"context"
	"errors"
	"testing"

	"Bitta/internal/model"
	"Bitta/internal/repository/mysql"
	"Bitta/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMemberFinder struct{ mock.Mock }

func (m *mockMemberFinder) FindByID(ctx context.Context, id uint64) (*model.Member, error) {
	args := m.Called(ctx, id)
	member, _ := args.Get(0).(*model.Member)
	return member, args.Error(1)
}

type mockApplyFinder struct{ mock.Mock }

func (m *mockApplyFinder) FindAllByJobPost(ctx context.Context, jobPostID uint64) ([]model.Apply, error) {
	args := m.Called(ctx, jobPostID)
	applies, _ := args.Get(0).([]model.Apply)
	return applies, args.Error(1)
}

func TestMemberProviderGetByID(t *testing.T) {
	ctx := context.Background()
	repo := new(mockMemberFinder)
	repo.On("FindByID", ctx, uint64(7)).Return(&model.Member{ID: 7, Username: "kim"}, nil)

	member, err := NewMemberProvider(repo).GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "kim", member.Username)
	repo.AssertExpectations(t)
}

func TestMemberProviderNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(mockMemberFinder)
	repo.On("FindByID", ctx, uint64(9)).Return(nil, mysql.ErrNotFound)

	p := NewMemberProvider(repo)
	_, err := p.GetByID(ctx, 9)
	assert.ErrorIs(t, err, service.ErrMemberNotFound)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = p.GetByID(ctx, 0)
	assert.ErrorIs(t, err, service.ErrMemberNotFound)
	repo.AssertNumberOfCalls(t, "FindByID", 1)
}

func TestMemberProviderWrapsStorageError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")
	repo := new(mockMemberFinder)
	repo.On("FindByID", ctx, uint64(3)).Return(nil, boom)

	_, err := NewMemberProvider(repo).GetByID(ctx, 3)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, service.ErrMemberNotFound)
}

func TestApplyProviderEmpty(t *testing.T) {
	ctx := context.Background()
	repo := new(mockApplyFinder)
	repo.On("FindAllByJobPost", ctx, uint64(1)).Return(nil, nil)

	applies, err := NewApplyProvider(repo).GetAllByJobPost(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, applies)
	assert.Empty(t, applies)
}

func TestApplyProviderReturnsApplies(t *testing.T) {
	ctx := context.Background()
	repo := new(mockApplyFinder)
	repo.On("FindAllByJobPost", ctx, uint64(2)).Return([]model.Apply{{ID: 1, JobPostID: 2, MemberID: 5}}, nil)

	applies, err := NewApplyProvider(repo).GetAllByJobPost(ctx, 2)
	require.NoError(t, err)
	require.Len(t, applies, 1)
	assert.Equal(t, uint64(5), applies[0].MemberID)
}
