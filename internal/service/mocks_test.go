package service

import (
	"context"
	"io"
	"strings"

	"Bitta/internal/dto"
	"Bitta/internal/model"
	"Bitta/internal/pkg"

	"github.com/stretchr/testify/mock"
)

// fakeTx 直接执行 fn，记录是否回滚
type fakeTx struct {
	calls      int
	rolledBack bool
}

func (f *fakeTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	err := fn(ctx)
	f.rolledBack = err != nil
	return err
}

type mockEvents struct{ mock.Mock }

func (m *mockEvents) Append(ctx context.Context, eventType, aggregateType string, aggregateID uint64, data any) error {
	return m.Called(ctx, eventType, aggregateType, aggregateID, data).Error(0)
}

type mockMemberProvider struct{ mock.Mock }

func (m *mockMemberProvider) GetByID(ctx context.Context, id uint64) (*model.Member, error) {
	args := m.Called(ctx, id)
	member, _ := args.Get(0).(*model.Member)
	return member, args.Error(1)
}

type mockApplyProvider struct{ mock.Mock }

func (m *mockApplyProvider) GetAllByJobPost(ctx context.Context, jobPostID uint64) ([]model.Apply, error) {
	args := m.Called(ctx, jobPostID)
	applies, _ := args.Get(0).([]model.Apply)
	return applies, args.Error(1)
}

type mockFeedRepo struct{ mock.Mock }

func (m *mockFeedRepo) FindByID(ctx context.Context, id uint64) (*model.Feed, error) {
	args := m.Called(ctx, id)
	feed, _ := args.Get(0).(*model.Feed)
	return feed, args.Error(1)
}

func (m *mockFeedRepo) FindAll(ctx context.Context) ([]model.Feed, error) {
	args := m.Called(ctx)
	feeds, _ := args.Get(0).([]model.Feed)
	return feeds, args.Error(1)
}

func (m *mockFeedRepo) FindAllByMember(ctx context.Context, memberID uint64) ([]model.Feed, error) {
	args := m.Called(ctx, memberID)
	feeds, _ := args.Get(0).([]model.Feed)
	return feeds, args.Error(1)
}

func (m *mockFeedRepo) Save(ctx context.Context, feed *model.Feed) error {
	return m.Called(ctx, feed).Error(0)
}

func (m *mockFeedRepo) DeleteByIDAndReturnCount(ctx context.Context, id uint64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type mockPhotoUploader struct{ mock.Mock }

func (m *mockPhotoUploader) UploadPhotos(ctx context.Context, files []dto.File, feed *model.Feed) error {
	return m.Called(ctx, files, feed).Error(0)
}

type mockVideoUploader struct{ mock.Mock }

func (m *mockVideoUploader) UploadVideos(ctx context.Context, files []dto.File, feed *model.Feed) error {
	return m.Called(ctx, files, feed).Error(0)
}

type mockJobPostRepo struct{ mock.Mock }

func (m *mockJobPostRepo) GetList(ctx context.Context, offset, limit int) ([]dto.JobPostDTO, int64, error) {
	args := m.Called(ctx, offset, limit)
	list, _ := args.Get(0).([]dto.JobPostDTO)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *mockJobPostRepo) GetJobPostDTO(ctx context.Context, id uint64) (*dto.JobPostDTO, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*dto.JobPostDTO)
	return out, args.Error(1)
}

func (m *mockJobPostRepo) FindByID(ctx context.Context, id uint64) (*model.JobPost, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*model.JobPost)
	return post, args.Error(1)
}

func (m *mockJobPostRepo) Save(ctx context.Context, post *model.JobPost) error {
	return m.Called(ctx, post).Error(0)
}

func (m *mockJobPostRepo) DeleteByIDAndReturnCount(ctx context.Context, id uint64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type mockMemberRepo struct{ mock.Mock }

func (m *mockMemberRepo) Create(ctx context.Context, member *model.Member) error {
	return m.Called(ctx, member).Error(0)
}

func (m *mockMemberRepo) FindByID(ctx context.Context, id uint64) (*model.Member, error) {
	args := m.Called(ctx, id)
	member, _ := args.Get(0).(*model.Member)
	return member, args.Error(1)
}

func (m *mockMemberRepo) FindByUsername(ctx context.Context, username string) (*model.Member, error) {
	args := m.Called(ctx, username)
	member, _ := args.Get(0).(*model.Member)
	return member, args.Error(1)
}

func (m *mockMemberRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockMemberRepo) ExistsByEmailExceptID(ctx context.Context, email string, id uint64) (bool, error) {
	args := m.Called(ctx, email, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockMemberRepo) Save(ctx context.Context, member *model.Member) error {
	return m.Called(ctx, member).Error(0)
}

func (m *mockMemberRepo) DeleteByIDAndReturnCount(ctx context.Context, id uint64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type mockTokenStore struct{ mock.Mock }

func (m *mockTokenStore) Save(ctx context.Context, memberID uint64, token string) error {
	return m.Called(ctx, memberID, token).Error(0)
}

func (m *mockTokenStore) Delete(ctx context.Context, memberID uint64) error {
	return m.Called(ctx, memberID).Error(0)
}

type mockIssuer struct{ mock.Mock }

func (m *mockIssuer) GeneratePair(memberID uint64, role int) (*pkg.Pair, error) {
	args := m.Called(memberID, role)
	pair, _ := args.Get(0).(*pkg.Pair)
	return pair, args.Error(1)
}

func (m *mockIssuer) Refresh(refreshToken string) (*pkg.Pair, error) {
	args := m.Called(refreshToken)
	pair, _ := args.Get(0).(*pkg.Pair)
	return pair, args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(to, subject, htmlBody string) error {
	return m.Called(to, subject, htmlBody).Error(0)
}

type mockStorage struct{ mock.Mock }

func (m *mockStorage) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, key, body, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockStorage) KeyFromURL(url string) (string, bool) {
	args := m.Called(url)
	return args.String(0), args.Bool(1)
}

type mockPhotoRepo struct{ mock.Mock }

func (m *mockPhotoRepo) Create(ctx context.Context, photo *model.Photo) error {
	return m.Called(ctx, photo).Error(0)
}

type mockVideoRepo struct{ mock.Mock }

func (m *mockVideoRepo) Create(ctx context.Context, video *model.Video) error {
	return m.Called(ctx, video).Error(0)
}

func textFile(name, body string) dto.File {
	return dto.File{
		Name:        name,
		ContentType: "application/octet-stream",
		Size:        int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}
