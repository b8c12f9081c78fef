package handler

import (
	"context"
	"net/http"
	"strconv"

	"Bitta/internal/dto"

	"github.com/gin-gonic/gin"
)

type MemberService interface {
	SignIn(ctx context.Context, username, password string) (*dto.TokenPair, error)
	SignUp(ctx context.Context, in dto.SignUpDTO) (*dto.MemberDTO, error)
	GetMemberByID(ctx context.Context, id uint64) (*dto.MemberDTO, error)
	UpdateMember(ctx context.Context, id uint64, in dto.MemberDTO, profileImage *dto.File, removeProfileImage bool) (*dto.MemberDTO, error)
	DeleteMember(ctx context.Context, id uint64) error
	ResetProfileImageToDefault(ctx context.Context, id uint64) error
	SignOut(ctx context.Context, id uint64) error
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error)
}

type MemberHandler struct {
	svc MemberService
}

func NewMemberHandler(svc MemberService) *MemberHandler {
	return &MemberHandler{svc: svc}
}

type SignInReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// SignUp 注册接口
func (h *MemberHandler) SignUp(c *gin.Context) {
	var req dto.SignUpDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	member, err := h.svc.SignUp(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, member)
}

// SignIn 登录接口，用户名或邮箱均可
func (h *MemberHandler) SignIn(c *gin.Context) {
	var req SignInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	pair, err := h.svc.SignIn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *MemberHandler) SignOut(c *gin.Context) {
	id, ok := currentMemberID(c)
	if !ok {
		return
	}
	if err := h.svc.SignOut(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Refresh 利用 refresh 换发 access
func (h *MemberHandler) Refresh(c *gin.Context) {
	var req RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}
	pair, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	member, err := h.svc.GetMemberByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

// Update multipart 表单：nickname、email、address、profile_image、remove_profile_image
func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok || !sameMember(c, id) {
		return
	}
	var req dto.MemberDTO
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "invalid params")
		return
	}

	var image *dto.File
	if fh, err := c.FormFile("profile_image"); err == nil {
		f := dto.FromFileHeader(fh)
		image = &f
	}
	remove, _ := strconv.ParseBool(c.PostForm("remove_profile_image"))

	member, err := h.svc.UpdateMember(c.Request.Context(), id, req, image, remove)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok || !sameMember(c, id) {
		return
	}
	if err := h.svc.DeleteMember(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MemberHandler) ResetProfileImage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok || !sameMember(c, id) {
		return
	}
	if err := h.svc.ResetProfileImageToDefault(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
