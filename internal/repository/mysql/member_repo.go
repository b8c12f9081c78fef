package mysql

import (
	"context"

	"Bitta/internal/model"

	"gorm.io/gorm"
)

type MemberRepository struct {
	DB *gorm.DB
}

func (r *MemberRepository) Create(ctx context.Context, member *model.Member) error {
	return duplicate(conn(ctx, r.DB).Create(member).Error)
}

func (r *MemberRepository) FindByID(ctx context.Context, id uint64) (*model.Member, error) {
	var member model.Member
	if err := conn(ctx, r.DB).First(&member, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &member, nil
}

// FindByUsername 用户名或邮箱都可以登录
func (r *MemberRepository) FindByUsername(ctx context.Context, username string) (*model.Member, error) {
	var member model.Member
	err := conn(ctx, r.DB).Where("username = ? OR email = ?", username, username).First(&member).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &member, nil
}

func (r *MemberRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := conn(ctx, r.DB).Model(&model.Member{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

// ExistsByEmailExceptID 修改邮箱时排除自己
func (r *MemberRepository) ExistsByEmailExceptID(ctx context.Context, email string, id uint64) (bool, error) {
	var count int64
	err := conn(ctx, r.DB).Model(&model.Member{}).
		Where("email = ? AND id <> ?", email, id).
		Count(&count).Error
	return count > 0, err
}

func (r *MemberRepository) Save(ctx context.Context, member *model.Member) error {
	return duplicate(conn(ctx, r.DB).Save(member).Error)
}

func (r *MemberRepository) DeleteByIDAndReturnCount(ctx context.Context, id uint64) (int64, error) {
	tx := conn(ctx, r.DB).Delete(&model.Member{}, id)
	return tx.RowsAffected, tx.Error
}
