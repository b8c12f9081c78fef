package mysql

import (
	"context"

	"Bitta/internal/dto"
	"Bitta/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const jobPostColumns = "id, title, description, location, pay_status, is_closed, start_date, end_date, updated_at, member_id"

type JobPostRepository struct {
	DB *gorm.DB
}

// GetList 直接投影成 DTO，按 id 倒序
func (r *JobPostRepository) GetList(ctx context.Context, offset, limit int) ([]dto.JobPostDTO, int64, error) {
	var total int64
	if err := conn(ctx, r.DB).Model(&model.JobPost{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []dto.JobPostDTO
	err := conn(ctx, r.DB).Model(&model.JobPost{}).
		Select(jobPostColumns).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Scan(&list).Error
	return list, total, err
}

func (r *JobPostRepository) GetJobPostDTO(ctx context.Context, id uint64) (*dto.JobPostDTO, error) {
	var out dto.JobPostDTO
	tx := conn(ctx, r.DB).Model(&model.JobPost{}).
		Select(jobPostColumns).
		Where("id = ?", id).
		Limit(1).
		Scan(&out)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &out, nil
}

func (r *JobPostRepository) FindByID(ctx context.Context, id uint64) (*model.JobPost, error) {
	var post model.JobPost
	if err := conn(ctx, r.DB).First(&post, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

func (r *JobPostRepository) Save(ctx context.Context, post *model.JobPost) error {
	return conn(ctx, r.DB).Omit(clause.Associations).Save(post).Error
}

func (r *JobPostRepository) DeleteByIDAndReturnCount(ctx context.Context, id uint64) (int64, error) {
	tx := conn(ctx, r.DB).Delete(&model.JobPost{}, id)
	return tx.RowsAffected, tx.Error
}
