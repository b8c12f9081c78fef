package mysql

import (
	"context"

	"Bitta/internal/model"

	"gorm.io/gorm"
)

type PhotoRepository struct {
	DB *gorm.DB
}

func (r *PhotoRepository) Create(ctx context.Context, photo *model.Photo) error {
	return conn(ctx, r.DB).Create(photo).Error
}

type VideoRepository struct {
	DB *gorm.DB
}

func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	return conn(ctx, r.DB).Create(video).Error
}
