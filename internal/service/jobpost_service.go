package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"Bitta/internal/dto"
	"Bitta/internal/model"
	"Bitta/internal/repository/mysql"
)

const aggregateJobPost = "jobpost"

type JobPostRepository interface {
	GetList(ctx context.Context, offset, limit int) ([]dto.JobPostDTO, int64, error)
	GetJobPostDTO(ctx context.Context, id uint64) (*dto.JobPostDTO, error)
	FindByID(ctx context.Context, id uint64) (*model.JobPost, error)
	Save(ctx context.Context, post *model.JobPost) error
	DeleteByIDAndReturnCount(ctx context.Context, id uint64) (int64, error)
}

type ApplyProvider interface {
	GetAllByJobPost(ctx context.Context, jobPostID uint64) ([]model.Apply, error)
}

type JobPostService struct {
	repo    JobPostRepository
	members MemberProvider
	applies ApplyProvider
	tx      Transactor
	events  EventRecorder
}

func NewJobPostService(repo JobPostRepository, members MemberProvider, applies ApplyProvider, tx Transactor, events EventRecorder) *JobPostService {
	return &JobPostService{
		repo:    repo,
		members: members,
		applies: applies,
		tx:      tx,
		events:  events,
	}
}

// GetList 按 id 倒序分页
func (s *JobPostService) GetList(ctx context.Context, req dto.PageRequest) (dto.Page[dto.JobPostDTO], error) {
	req = req.Normalize()
	list, total, err := s.repo.GetList(ctx, req.Offset(), req.Size)
	if err != nil {
		return dto.Page[dto.JobPostDTO]{}, fmt.Errorf("list job posts: %w", err)
	}
	return dto.NewPage(list, req, total), nil
}

// Register 失败原因只记日志，对外统一返回 ErrJobPostNotRegistered
func (s *JobPostService) Register(ctx context.Context, in dto.JobPostDTO) (*dto.JobPostDTO, error) {
	var out dto.JobPostDTO
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		post, err := s.dtoToEntity(ctx, in)
		if err != nil {
			return err
		}
		if err := s.repo.Save(ctx, post); err != nil {
			return err
		}
		if err := s.events.Append(ctx, "jobpost.registered", aggregateJobPost, post.ID, map[string]any{
			"member_id": post.MemberID,
			"title":     post.Title,
		}); err != nil {
			return err
		}
		out = entityToJobPostDTO(post)
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "register job post failed", "member_id", in.MemberID, "error", err)
		return nil, ErrJobPostNotRegistered
	}
	return &out, nil
}

func (s *JobPostService) Read(ctx context.Context, id uint64) (*dto.JobPostDTO, error) {
	out, err := s.repo.GetJobPostDTO(ctx, id)
	if err != nil {
		if errors.Is(err, mysql.ErrNotFound) {
			return nil, ErrJobPostNotFound
		}
		return nil, fmt.Errorf("read job post %d: %w", id, err)
	}
	return out, nil
}

// Modify 只修改 title、description、location、payStatus；payStatus 为空时保留原值
func (s *JobPostService) Modify(ctx context.Context, in dto.JobPostDTO) (*dto.JobPostDTO, error) {
	post, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, mysql.ErrNotFound) {
			return nil, ErrJobPostNotFound
		}
		slog.ErrorContext(ctx, "find job post failed", "id", in.ID, "error", err)
		return nil, ErrJobPostNotModified
	}

	post.Title = in.Title
	post.Description = in.Description
	post.Location = in.Location
	if in.PayStatus != "" {
		post.PayStatus = in.PayStatus
	}
	if err := s.repo.Save(ctx, post); err != nil {
		slog.ErrorContext(ctx, "modify job post failed", "id", in.ID, "error", err)
		return nil, ErrJobPostNotModified
	}
	out := entityToJobPostDTO(post)
	return &out, nil
}

func (s *JobPostService) Remove(ctx context.Context, id uint64) error {
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		n, err := s.repo.DeleteByIDAndReturnCount(ctx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("job post %d: no rows deleted", id)
		}
		return s.events.Append(ctx, "jobpost.removed", aggregateJobPost, id, nil)
	})
	if err != nil {
		slog.ErrorContext(ctx, "remove job post failed", "id", id, "error", err)
		return ErrJobPostNotRemoved
	}
	return nil
}

// dtoToEntity 关联的申请记录按招聘帖 id 查询，新帖没有申请记录
func (s *JobPostService) dtoToEntity(ctx context.Context, in dto.JobPostDTO) (*model.JobPost, error) {
	member, err := s.members.GetByID(ctx, in.MemberID)
	if err != nil {
		return nil, err
	}
	var applies []model.Apply
	if in.ID != 0 {
		if applies, err = s.applies.GetAllByJobPost(ctx, in.ID); err != nil {
			return nil, err
		}
	}
	payStatus := in.PayStatus
	if payStatus == "" {
		payStatus = "NONE"
	}
	return &model.JobPost{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		PayStatus:   payStatus,
		IsClosed:    in.IsClosed,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		MemberID:    member.ID,
		Member:      *member,
		Applies:     applies,
	}, nil
}

func entityToJobPostDTO(post *model.JobPost) dto.JobPostDTO {
	return dto.JobPostDTO{
		ID:          post.ID,
		Title:       post.Title,
		Description: post.Description,
		Location:    post.Location,
		PayStatus:   post.PayStatus,
		IsClosed:    post.IsClosed,
		StartDate:   post.StartDate,
		EndDate:     post.EndDate,
		UpdatedAt:   post.UpdatedAt,
		MemberID:    post.MemberID,
	}
}
