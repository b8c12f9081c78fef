package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"Bitta/internal/dto"
	"Bitta/internal/model"

	"github.com/google/uuid"
)

// ObjectStorage 对象存储，Put 返回公开访问地址
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) (string, bool)
}

type PhotoRepository interface {
	Create(ctx context.Context, photo *model.Photo) error
}

type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
}

var (
	imageExts = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true,
		".gif": true, ".webp": true, ".heic": true,
	}
	videoExts = map[string]bool{
		".mp4": true, ".mov": true, ".avi": true, ".webm": true,
	}
)

type storedObject struct {
	key string
	url string
}

// storeAll 逐个写入对象存储，中途失败时删除本次已写入的对象
func storeAll(ctx context.Context, storage ObjectStorage, files []dto.File, prefix string, allowed map[string]bool) ([]storedObject, error) {
	stored := make([]storedObject, 0, len(files))
	for _, f := range files {
		obj, err := storeOne(ctx, storage, f, prefix, allowed)
		if err != nil {
			discard(ctx, storage, stored)
			return nil, err
		}
		stored = append(stored, obj)
	}
	return stored, nil
}

func storeOne(ctx context.Context, storage ObjectStorage, f dto.File, prefix string, allowed map[string]bool) (storedObject, error) {
	ext := strings.ToLower(filepath.Ext(f.Name))
	if !allowed[ext] {
		return storedObject{}, fmt.Errorf("%w: %q", ErrUnsupportedMedia, f.Name)
	}
	if f.Open == nil {
		return storedObject{}, fmt.Errorf("open %s: no content", f.Name)
	}
	body, err := f.Open()
	if err != nil {
		return storedObject{}, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer body.Close()

	key := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), ext)
	url, err := storage.Put(ctx, key, body, f.Size, f.ContentType)
	if err != nil {
		return storedObject{}, err
	}
	return storedObject{key: key, url: url}, nil
}

func discard(ctx context.Context, storage ObjectStorage, objs []storedObject) {
	for _, o := range objs {
		if err := storage.Delete(ctx, o.key); err != nil {
			slog.WarnContext(ctx, "discard uploaded object failed", "key", o.key, "error", err)
		}
	}
}

type PhotoService struct {
	repo    PhotoRepository
	storage ObjectStorage
}

func NewPhotoService(repo PhotoRepository, storage ObjectStorage) *PhotoService {
	return &PhotoService{repo: repo, storage: storage}
}

// UploadPhotos 上传图片并挂到已持久化的 feed 上，新记录追加到 feed.Photos；
// 失败时本次上传的对象已删除，feed.Photos 保持原样
func (s *PhotoService) UploadPhotos(ctx context.Context, files []dto.File, feed *model.Feed) error {
	if feed == nil || feed.ID == 0 {
		return ErrFeedNotPersisted
	}
	stored, err := storeAll(ctx, s.storage, files, fmt.Sprintf("feeds/%d/photos", feed.ID), imageExts)
	if err != nil {
		return err
	}
	before := len(feed.Photos)
	for _, o := range stored {
		photo := model.Photo{FeedID: feed.ID, PhotoURL: o.url, ObjectKey: o.key}
		if err := s.repo.Create(ctx, &photo); err != nil {
			discard(ctx, s.storage, stored)
			feed.Photos = feed.Photos[:before]
			return fmt.Errorf("save photo: %w", err)
		}
		feed.Photos = append(feed.Photos, photo)
	}
	return nil
}

type VideoService struct {
	repo    VideoRepository
	storage ObjectStorage
}

func NewVideoService(repo VideoRepository, storage ObjectStorage) *VideoService {
	return &VideoService{repo: repo, storage: storage}
}

func (s *VideoService) UploadVideos(ctx context.Context, files []dto.File, feed *model.Feed) error {
	if feed == nil || feed.ID == 0 {
		return ErrFeedNotPersisted
	}
	stored, err := storeAll(ctx, s.storage, files, fmt.Sprintf("feeds/%d/videos", feed.ID), videoExts)
	if err != nil {
		return err
	}
	before := len(feed.Videos)
	for _, o := range stored {
		video := model.Video{FeedID: feed.ID, VideoURL: o.url, ObjectKey: o.key}
		if err := s.repo.Create(ctx, &video); err != nil {
			discard(ctx, s.storage, stored)
			feed.Videos = feed.Videos[:before]
			return fmt.Errorf("save video: %w", err)
		}
		feed.Videos = append(feed.Videos, video)
	}
	return nil
}
