package service

import (
	"context"
	"errors"
	"fmt"

	"Bitta/internal/dto"
	"Bitta/internal/model"
	"Bitta/internal/repository/mysql"
)

const aggregateFeed = "feed"

// Transactor 在同一个事务中执行 fn，事务通过 ctx 传递给仓储
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventRecorder 写 outbox 事件
type EventRecorder interface {
	Append(ctx context.Context, eventType, aggregateType string, aggregateID uint64, data any) error
}

type MemberProvider interface {
	GetByID(ctx context.Context, id uint64) (*model.Member, error)
}

type FeedRepository interface {
	FindByID(ctx context.Context, id uint64) (*model.Feed, error)
	FindAll(ctx context.Context) ([]model.Feed, error)
	FindAllByMember(ctx context.Context, memberID uint64) ([]model.Feed, error)
	Save(ctx context.Context, feed *model.Feed) error
	DeleteByIDAndReturnCount(ctx context.Context, id uint64) (int64, error)
}

type PhotoUploader interface {
	UploadPhotos(ctx context.Context, files []dto.File, feed *model.Feed) error
}

type VideoUploader interface {
	UploadVideos(ctx context.Context, files []dto.File, feed *model.Feed) error
}

type FeedService struct {
	repo    FeedRepository
	photos  PhotoUploader
	videos  VideoUploader
	members MemberProvider
	tx      Transactor
	events  EventRecorder
	storage ObjectStorage
}

// NewFeedService storage 用于事务回滚后删除本次已上传的附件对象
func NewFeedService(repo FeedRepository, photos PhotoUploader, videos VideoUploader, members MemberProvider, tx Transactor, events EventRecorder, storage ObjectStorage) *FeedService {
	return &FeedService{
		repo:    repo,
		photos:  photos,
		videos:  videos,
		members: members,
		tx:      tx,
		events:  events,
		storage: storage,
	}
}

func (s *FeedService) Read(ctx context.Context, id uint64) (*dto.FeedDTO, error) {
	feed, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mysql.ErrNotFound) {
			return nil, ErrFeedNotFound
		}
		return nil, fmt.Errorf("read feed %d: %w", id, err)
	}
	out := entityToFeedDTO(feed)
	return &out, nil
}

// ReadAll 没有任何 feed 时返回 ErrFeedNotFound
func (s *FeedService) ReadAll(ctx context.Context) ([]dto.FeedDTO, error) {
	feeds, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read feeds: %w", err)
	}
	if len(feeds) == 0 {
		return nil, ErrFeedNotFound
	}
	return toFeedDTOs(feeds), nil
}

// ReadAllByMember 成员没有 feed 时返回 nil, nil，而不是错误
func (s *FeedService) ReadAllByMember(ctx context.Context, member *model.Member) ([]dto.FeedDTO, error) {
	if member == nil {
		return nil, ErrMemberNotFound
	}
	feeds, err := s.repo.FindAllByMember(ctx, member.ID)
	if err != nil {
		return nil, fmt.Errorf("read feeds of member %d: %w", member.ID, err)
	}
	if len(feeds) == 0 {
		return nil, nil
	}
	return toFeedDTOs(feeds), nil
}

// Insert 先落库 feed，再上传附件；任一步失败整个事务回滚
func (s *FeedService) Insert(ctx context.Context, in dto.FeedDTO, photos, videos []dto.File) (*dto.FeedDTO, error) {
	if in.ID != 0 {
		return nil, ErrFeedBadRequest
	}

	var (
		out   dto.FeedDTO
		added []storedObject
	)
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		member, err := s.members.GetByID(ctx, in.MemberID)
		if err != nil {
			return err
		}

		feed := feedDTOToEntity(in, member)
		if err := s.repo.Save(ctx, feed); err != nil {
			return fmt.Errorf("save feed: %w", err)
		}
		if added, err = s.attach(ctx, feed, photos, videos); err != nil {
			return err
		}
		if err := s.events.Append(ctx, "feed.created", aggregateFeed, feed.ID, map[string]any{
			"member_id": feed.MemberID,
			"title":     feed.Title,
		}); err != nil {
			return fmt.Errorf("record feed event: %w", err)
		}
		out = entityToFeedDTO(feed)
		return nil
	})
	if err != nil {
		discard(ctx, s.storage, added)
		return nil, err
	}
	return &out, nil
}

// Update 只修改 title 和 content，新附件追加而不替换
func (s *FeedService) Update(ctx context.Context, in dto.FeedDTO, photos, videos []dto.File) (*dto.FeedDTO, error) {
	var (
		out   dto.FeedDTO
		added []storedObject
	)
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		feed, err := s.repo.FindByID(ctx, in.ID)
		if err != nil {
			if errors.Is(err, mysql.ErrNotFound) {
				return ErrFeedNotFound
			}
			return fmt.Errorf("find feed %d: %w", in.ID, err)
		}

		feed.Title = in.Title
		feed.Content = in.Content
		if err := s.repo.Save(ctx, feed); err != nil {
			return fmt.Errorf("save feed: %w", err)
		}
		if added, err = s.attach(ctx, feed, photos, videos); err != nil {
			return err
		}
		if err := s.events.Append(ctx, "feed.updated", aggregateFeed, feed.ID, map[string]any{
			"photos": len(photos),
			"videos": len(videos),
		}); err != nil {
			return fmt.Errorf("record feed event: %w", err)
		}
		out = entityToFeedDTO(feed)
		return nil
	})
	if err != nil {
		discard(ctx, s.storage, added)
		return nil, err
	}
	return &out, nil
}

func (s *FeedService) Delete(ctx context.Context, id uint64) error {
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		n, err := s.repo.DeleteByIDAndReturnCount(ctx, id)
		if err != nil {
			return fmt.Errorf("delete feed %d: %w", id, err)
		}
		if n == 0 {
			return ErrFeedCannotDelete
		}
		if err := s.events.Append(ctx, "feed.deleted", aggregateFeed, id, nil); err != nil {
			return fmt.Errorf("record feed event: %w", err)
		}
		return nil
	})
}

// attach 返回本次新增附件的对象，即使出错也返回已成功的部分，供回滚后清理
func (s *FeedService) attach(ctx context.Context, feed *model.Feed, photos, videos []dto.File) ([]storedObject, error) {
	var added []storedObject
	if len(photos) > 0 {
		before := len(feed.Photos)
		err := s.photos.UploadPhotos(ctx, photos, feed)
		for _, p := range feed.Photos[before:] {
			added = append(added, storedObject{key: p.ObjectKey, url: p.PhotoURL})
		}
		if err != nil {
			return added, &UploadError{Cause: "photo upload failed", Err: err}
		}
	}
	if len(videos) > 0 {
		before := len(feed.Videos)
		err := s.videos.UploadVideos(ctx, videos, feed)
		for _, v := range feed.Videos[before:] {
			added = append(added, storedObject{key: v.ObjectKey, url: v.VideoURL})
		}
		if err != nil {
			return added, &UploadError{Cause: "video upload failed", Err: err}
		}
	}
	return added, nil
}

func feedDTOToEntity(in dto.FeedDTO, member *model.Member) *model.Feed {
	return &model.Feed{
		ID:        in.ID,
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: in.CreatedAt,
		MemberID:  member.ID,
		Member:    *member,
	}
}

func entityToFeedDTO(feed *model.Feed) dto.FeedDTO {
	photoURLs := make([]string, 0, len(feed.Photos))
	for _, p := range feed.Photos {
		photoURLs = append(photoURLs, p.PhotoURL)
	}
	videoURLs := make([]string, 0, len(feed.Videos))
	for _, v := range feed.Videos {
		videoURLs = append(videoURLs, v.VideoURL)
	}
	return dto.FeedDTO{
		ID:        feed.ID,
		Title:     feed.Title,
		Content:   feed.Content,
		CreatedAt: feed.CreatedAt,
		MemberID:  feed.MemberID,
		PhotoURLs: photoURLs,
		VideoURLs: videoURLs,
	}
}

func toFeedDTOs(feeds []model.Feed) []dto.FeedDTO {
	out := make([]dto.FeedDTO, 0, len(feeds))
	for i := range feeds {
		out = append(out, entityToFeedDTO(&feeds[i]))
	}
	return out
}
