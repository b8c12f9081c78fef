package handler

import (
	"context"
	"net/http"

	"Bitta/internal/dto"
	"Bitta/internal/model"
	"Bitta/internal/pkg"

	"github.com/gin-gonic/gin"
)

type FeedService interface {
	Read(ctx context.Context, id uint64) (*dto.FeedDTO, error)
	ReadAll(ctx context.Context) ([]dto.FeedDTO, error)
	ReadAllByMember(ctx context.Context, member *model.Member) ([]dto.FeedDTO, error)
	Insert(ctx context.Context, in dto.FeedDTO, photos, videos []dto.File) (*dto.FeedDTO, error)
	Update(ctx context.Context, in dto.FeedDTO, photos, videos []dto.File) (*dto.FeedDTO, error)
	Delete(ctx context.Context, id uint64) error
}

type MemberProvider interface {
	GetByID(ctx context.Context, id uint64) (*model.Member, error)
}

type FeedHandler struct {
	svc     FeedService
	members MemberProvider
}

func NewFeedHandler(svc FeedService, members MemberProvider) *FeedHandler {
	return &FeedHandler{svc: svc, members: members}
}

// bindFeed 读取 multipart 表单中的 title、content 以及 photos、videos 文件
func bindFeed(c *gin.Context) (dto.FeedDTO, []dto.File, []dto.File, bool) {
	var in dto.FeedDTO
	if err := c.ShouldBind(&in); err != nil {
		badRequest(c, "invalid params")
		return in, nil, nil, false
	}
	if err := pkg.Validate(in); err != nil {
		badRequest(c, err.Error())
		return in, nil, nil, false
	}
	var photos, videos []dto.File
	if form, err := c.MultipartForm(); err == nil {
		photos = dto.FromFileHeaders(form.File["photos"])
		videos = dto.FromFileHeaders(form.File["videos"])
	}
	return in, photos, videos, true
}

func (h *FeedHandler) List(c *gin.Context) {
	feeds, err := h.svc.ReadAll(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, feeds)
}

func (h *FeedHandler) ListByMember(c *gin.Context) {
	memberID, ok := paramID(c, "memberId")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	member, err := h.members.GetByID(ctx, memberID)
	if err != nil {
		fail(c, err)
		return
	}
	feeds, err := h.svc.ReadAllByMember(ctx, member)
	if err != nil {
		fail(c, err)
		return
	}
	if feeds == nil {
		feeds = []dto.FeedDTO{}
	}
	c.JSON(http.StatusOK, feeds)
}

func (h *FeedHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	feed, err := h.svc.Read(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// Create 作者取当前登录成员
func (h *FeedHandler) Create(c *gin.Context) {
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}
	in, photos, videos, ok := bindFeed(c)
	if !ok {
		return
	}
	in.ID = 0
	in.MemberID = memberID

	feed, err := h.svc.Insert(c.Request.Context(), in, photos, videos)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, feed)
}

func (h *FeedHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !h.owns(c, id) {
		return
	}
	in, photos, videos, ok := bindFeed(c)
	if !ok {
		return
	}
	in.ID = id

	feed, err := h.svc.Update(c.Request.Context(), in, photos, videos)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

func (h *FeedHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !h.owns(c, id) {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// owns 只有作者本人可以修改或删除
func (h *FeedHandler) owns(c *gin.Context, feedID uint64) bool {
	memberID, ok := currentMemberID(c)
	if !ok {
		return false
	}
	feed, err := h.svc.Read(c.Request.Context(), feedID)
	if err != nil {
		fail(c, err)
		return false
	}
	if feed.MemberID != memberID {
		c.JSON(http.StatusForbidden, gin.H{"msg": "forbidden"})
		return false
	}
	return true
}
