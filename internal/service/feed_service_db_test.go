package service

import (
	"context"
	"testing"

	"Bitta/internal/repository/mysql"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newFeedDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, sm, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, sm
}

// 删除提交后再读同一 id，仓储查不到行，应映射为 ErrFeedNotFound
func TestFeedReadAfterDeleteIsNotFound(t *testing.T) {
	ctx := context.Background()
	db, sm := newFeedDB(t)
	events := new(mockEvents)
	events.On("Append", mock.Anything, "feed.deleted", "feed", uint64(5), nil).Return(nil).Once()

	svc := NewFeedService(&mysql.FeedRepository{DB: db}, new(mockPhotoUploader), new(mockVideoUploader),
		new(mockMemberProvider), &mysql.TxManager{DB: db}, events, new(mockStorage))

	sm.ExpectBegin()
	sm.ExpectExec("DELETE FROM `feeds`").WillReturnResult(sqlmock.NewResult(0, 1))
	sm.ExpectCommit()
	sm.ExpectQuery("SELECT \\* FROM `feeds`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "member_id"}))

	require.NoError(t, svc.Delete(ctx, 5))

	got, err := svc.Read(ctx, 5)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrFeedNotFound)
	assert.NoError(t, sm.ExpectationsWereMet())
	events.AssertExpectations(t)
}

func TestFeedDeleteTwiceSecondCannotDelete(t *testing.T) {
	ctx := context.Background()
	db, sm := newFeedDB(t)
	events := new(mockEvents)
	events.On("Append", mock.Anything, "feed.deleted", "feed", uint64(6), nil).Return(nil).Once()

	svc := NewFeedService(&mysql.FeedRepository{DB: db}, new(mockPhotoUploader), new(mockVideoUploader),
		new(mockMemberProvider), &mysql.TxManager{DB: db}, events, new(mockStorage))

	sm.ExpectBegin()
	sm.ExpectExec("DELETE FROM `feeds`").WillReturnResult(sqlmock.NewResult(0, 1))
	sm.ExpectCommit()
	sm.ExpectBegin()
	sm.ExpectExec("DELETE FROM `feeds`").WillReturnResult(sqlmock.NewResult(0, 0))
	sm.ExpectRollback()

	require.NoError(t, svc.Delete(ctx, 6))
	assert.ErrorIs(t, svc.Delete(ctx, 6), ErrFeedCannotDelete)
	assert.NoError(t, sm.ExpectationsWereMet())
	events.AssertExpectations(t)
}
