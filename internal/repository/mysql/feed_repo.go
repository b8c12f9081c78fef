package mysql

import (
	"context"

	"Bitta/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FeedRepository struct {
	DB *gorm.DB
}

func (r *FeedRepository) withAttachments(ctx context.Context) *gorm.DB {
	return conn(ctx, r.DB).
		Preload("Member").
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Videos", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

func (r *FeedRepository) FindByID(ctx context.Context, id uint64) (*model.Feed, error) {
	var feed model.Feed
	if err := r.withAttachments(ctx).First(&feed, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &feed, nil
}

func (r *FeedRepository) FindAll(ctx context.Context) ([]model.Feed, error) {
	var list []model.Feed
	err := r.withAttachments(ctx).Order("created_at DESC, id DESC").Find(&list).Error
	return list, err
}

func (r *FeedRepository) FindAllByMember(ctx context.Context, memberID uint64) ([]model.Feed, error) {
	var list []model.Feed
	err := r.withAttachments(ctx).
		Where("member_id = ?", memberID).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

// Save id 为 0 时插入，否则整行更新；关联对象不随之写入
func (r *FeedRepository) Save(ctx context.Context, feed *model.Feed) error {
	return conn(ctx, r.DB).Omit(clause.Associations).Save(feed).Error
}

// DeleteByIDAndReturnCount 返回受影响行数，由业务层判断是否真的删除
func (r *FeedRepository) DeleteByIDAndReturnCount(ctx context.Context, id uint64) (int64, error) {
	tx := conn(ctx, r.DB).Delete(&model.Feed{}, id)
	return tx.RowsAffected, tx.Error
}
