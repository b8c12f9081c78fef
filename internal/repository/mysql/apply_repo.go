package mysql

import (
	"context"

	"Bitta/internal/model"

	"gorm.io/gorm"
)

type ApplyRepository struct {
	DB *gorm.DB
}

func (r *ApplyRepository) FindAllByJobPost(ctx context.Context, jobPostID uint64) ([]model.Apply, error) {
	var list []model.Apply
	err := conn(ctx, r.DB).
		Where("job_post_id = ?", jobPostID).
		Order("id ASC").
		Find(&list).Error
	return list, err
}
