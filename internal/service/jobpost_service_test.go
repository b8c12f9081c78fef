package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"Bitta/internal/dto"
	"Bitta/internal/model"
	"Bitta/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type jobPostFixture struct {
	repo    *mockJobPostRepo
	members *mockMemberProvider
	applies *mockApplyProvider
	tx      *fakeTx
	events  *mockEvents
	svc     *JobPostService
}

func newJobPostFixture() *jobPostFixture {
	f := &jobPostFixture{
		repo:    new(mockJobPostRepo),
		members: new(mockMemberProvider),
		applies: new(mockApplyProvider),
		tx:      &fakeTx{},
		events:  new(mockEvents),
	}
	f.svc = NewJobPostService(f.repo, f.members, f.applies, f.tx, f.events)
	return f
}

func TestJobPostGetListNormalizesPage(t *testing.T) {
	ctx := context.Background()
	f := newJobPostFixture()
	f.repo.On("GetList", ctx, 0, 20).Return([]dto.JobPostDTO{{ID: 3}, {ID: 2}, {ID: 1}}, int64(3), nil)

	page, err := f.svc.GetList(ctx, dto.PageRequest{Page: 0, Size: 999})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Size)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, uint64(3), page.Content[0].ID)
}

func TestJobPostGetListSecondPage(t *testing.T) {
	ctx := context.Background()
	f := newJobPostFixture()
	f.repo.On("GetList", ctx, 10, 10).Return(nil, int64(15), nil)

	page, err := f.svc.GetList(ctx, dto.PageRequest{Page: 2, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalPages)
	assert.NotNil(t, page.Content)
}

func TestJobPostRegister(t *testing.T) {
	ctx := context.Background()
	f := newJobPostFixture()
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	f.members.On("GetByID", ctx, uint64(5)).Return(&model.Member{ID: 5}, nil)
	f.repo.On("Save", ctx, mock.MatchedBy(func(p *model.JobPost) bool {
		return p.MemberID == 5 && p.PayStatus == "NONE" && p.IsClosed && p.StartDate.Equal(start) && p.Applies == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.JobPost).ID = 20
	}).Return(nil)
	f.events.On("Append", ctx, "jobpost.registered", "jobpost", uint64(20), mock.Anything).Return(nil)

	got, err := f.svc.Register(ctx, dto.JobPostDTO{Title: "barista", MemberID: 5, IsClosed: true, StartDate: &start})
	require.NoError(t, err)
	assert.Equal(t, uint64(20), got.ID)
	assert.Equal(t, "barista", got.Title)
	assert.Equal(t, "NONE", got.PayStatus)
	assert.Equal(t, uint64(5), got.MemberID)
	f.applies.AssertNotCalled(t, "GetAllByJobPost", mock.Anything, mock.Anything)
	f.repo.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func TestJobPostRegisterExistingLoadsApplies(t *testing.T) {
	ctx := context.Background()
	f := newJobPostFixture()
	f.members.On("GetByID", ctx, uint64(5)).Return(&model.Member{ID: 5}, nil)
	f.applies.On("GetAllByJobPost", ctx, uint64(20)).Return([]model.Apply{{ID: 1, JobPostID: 20, MemberID: 8}}, nil)
	f.repo.On("Save", ctx, mock.MatchedBy(func(p *model.JobPost) bool {
		return p.ID == 20 && len(p.Applies) == 1 && p.PayStatus == "PAID"
	})).Return(nil)
	f.events.On("Append", ctx, "jobpost.registered", "jobpost", uint64(20), mock.Anything).Return(nil)

	_, err := f.svc.Register(ctx, dto.JobPostDTO{ID: 20, Title: "t", MemberID: 5, PayStatus: "PAID"})
	require.NoError(t, err)
	f.repo.AssertExpectations(t)
}

func TestJobPostRegisterFailureIsMasked(t *testing.T) {
	ctx := context.Background()
	f := newJobPostFixture()
	f.members.On("GetByID", ctx, uint64(5)).Return(&model.Member{ID: 5}, nil)
	f.repo.On("Save", ctx, mock.Anything).Return(errors.New("duplicate entry"))

	got, err := f.svc.Register(ctx, dto.JobPostDTO{Title: "t", MemberID: 5})
	assert.Nil(t, got)
	assert.Equal(t, ErrJobPostNotRegistered, err)
	assert.True(t, f.tx.rolledBack)
}

func TestJobPostRegisterUnknownMember(t *testing.T) {
	ctx := context.Background()
	f := newJobPostFixture()
	f.members.On("GetByID", ctx, uint64(6)).Return(nil, ErrMemberNotFound)

	_, err := f.svc.Register(ctx, dto.JobPostDTO{Title: "t", MemberID: 6})
	assert.ErrorIs(t, err, ErrJobPostNotRegistered)
	f.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestJobPostRead(t *testing.T) {
	ctx := context.Background()
	f := newJobPostFixture()
	f.repo.On("GetJobPostDTO", ctx, uint64(1)).Return(&dto.JobPostDTO{ID: 1, Title: "t"}, nil)
	f.repo.On("GetJobPostDTO", ctx, uint64(2)).Return(nil, mysql.ErrNotFound)

	got, err := f.svc.Read(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)

	_, err = f.svc.Read(ctx, 2)
	assert.ErrorIs(t, err, ErrJobPostNotFound)
}

func TestJobPostModifyChangesOnlyEditableFields(t *testing.T) {
	ctx := context.Background()
	f := newJobPostFixture()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	stored := &model.JobPost{ID: 1, Title: "old", Description: "old", Location: "Seoul", PayStatus: "NONE",
		IsClosed: false, StartDate: &start, MemberID: 5}
	f.repo.On("FindByID", ctx, uint64(1)).Return(stored, nil)
	f.repo.On("Save", ctx, stored).Return(nil)

	other := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	got, err := f.svc.Modify(ctx, dto.JobPostDTO{
		ID:          1,
		Title:       "new",
		Description: "desc",
		Location:    "Busan",
		PayStatus:   "PAID",
		IsClosed:    true,
		StartDate:   &other,
		MemberID:    99,
	})
	require.NoError(t, err)
	assert.Equal(t, "new", stored.Title)
	assert.Equal(t, "desc", stored.Description)
	assert.Equal(t, "Busan", stored.Location)
	assert.Equal(t, "PAID", stored.PayStatus)
	assert.False(t, stored.IsClosed)
	assert.Equal(t, start, *stored.StartDate)
	assert.Equal(t, uint64(5), stored.MemberID)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, uint64(1), got.ID)
}

func TestJobPostModifyKeepsPayStatusWhenEmpty(t *testing.T) {
	ctx := context.Background()
	f := newJobPostFixture()
	stored := &model.JobPost{ID: 1, Title: "old", PayStatus: "PAID", MemberID: 5}
	f.repo.On("FindByID", ctx, uint64(1)).Return(stored, nil)
	f.repo.On("Save", ctx, stored).Return(nil)

	got, err := f.svc.Modify(ctx, dto.JobPostDTO{ID: 1, Title: "new"})
	require.NoError(t, err)
	assert.Equal(t, "PAID", stored.PayStatus)
	assert.Equal(t, "PAID", got.PayStatus)
}

func TestJobPostModifyErrors(t *testing.T) {
	ctx := context.Background()
	f := newJobPostFixture()
	f.repo.On("FindByID", ctx, uint64(1)).Return(nil, mysql.ErrNotFound)
	f.repo.On("FindByID", ctx, uint64(2)).Return(&model.JobPost{ID: 2}, nil)
	f.repo.On("Save", ctx, mock.Anything).Return(errors.New("lock wait timeout"))

	_, err := f.svc.Modify(ctx, dto.JobPostDTO{ID: 1})
	assert.ErrorIs(t, err, ErrJobPostNotFound)
	_, err = f.svc.Modify(ctx, dto.JobPostDTO{ID: 2})
	assert.Equal(t, ErrJobPostNotModified, err)
}

func TestJobPostRemove(t *testing.T) {
	ctx := context.Background()
	f := newJobPostFixture()
	f.repo.On("DeleteByIDAndReturnCount", ctx, uint64(3)).Return(int64(1), nil)
	f.repo.On("DeleteByIDAndReturnCount", ctx, uint64(4)).Return(int64(0), nil)
	f.events.On("Append", ctx, "jobpost.removed", "jobpost", uint64(3), nil).Return(nil)

	require.NoError(t, f.svc.Remove(ctx, 3))
	assert.Equal(t, ErrJobPostNotRemoved, f.svc.Remove(ctx, 4))
	f.events.AssertNumberOfCalls(t, "Append", 1)
}
