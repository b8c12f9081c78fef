package handler

import (
	"context"
	"net/http"

	"Bitta/internal/dto"
	"Bitta/internal/pkg"

	"github.com/gin-gonic/gin"
)

type JobPostService interface {
	GetList(ctx context.Context, req dto.PageRequest) (dto.Page[dto.JobPostDTO], error)
	Register(ctx context.Context, in dto.JobPostDTO) (*dto.JobPostDTO, error)
	Read(ctx context.Context, id uint64) (*dto.JobPostDTO, error)
	Modify(ctx context.Context, in dto.JobPostDTO) (*dto.JobPostDTO, error)
	Remove(ctx context.Context, id uint64) error
}

type JobPostHandler struct {
	svc JobPostService
}

func NewJobPostHandler(svc JobPostService) *JobPostHandler {
	return &JobPostHandler{svc: svc}
}

func bindJobPost(c *gin.Context) (dto.JobPostDTO, bool) {
	var in dto.JobPostDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid params")
		return in, false
	}
	if err := pkg.Validate(in); err != nil {
		badRequest(c, err.Error())
		return in, false
	}
	return in, true
}

// List 分页参数 page、size，按 id 倒序
func (h *JobPostHandler) List(c *gin.Context) {
	var req dto.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "invalid page params")
		return
	}
	page, err := h.svc.GetList(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *JobPostHandler) Register(c *gin.Context) {
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}
	in, ok := bindJobPost(c)
	if !ok {
		return
	}
	in.ID = 0
	in.MemberID = memberID
	post, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *JobPostHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	post, err := h.svc.Read(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *JobPostHandler) Modify(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok || !h.owns(c, id) {
		return
	}
	in, ok := bindJobPost(c)
	if !ok {
		return
	}
	in.ID = id
	post, err := h.svc.Modify(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *JobPostHandler) Remove(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok || !h.owns(c, id) {
		return
	}
	if err := h.svc.Remove(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *JobPostHandler) owns(c *gin.Context, id uint64) bool {
	memberID, ok := currentMemberID(c)
	if !ok {
		return false
	}
	post, err := h.svc.Read(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return false
	}
	if post.MemberID != memberID {
		c.JSON(http.StatusForbidden, gin.H{"msg": "forbidden"})
		return false
	}
	return true
}
