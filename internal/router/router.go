package router

import (
	"net/http"

	"Bitta/internal/handler"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Member  *handler.MemberHandler
	Feed    *handler.FeedHandler
	JobPost *handler.JobPostHandler
}

// InitRouter auth 为鉴权中间件，读接口不需要登录
func InitRouter(h Handlers, auth gin.HandlerFunc) *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = 32 << 20

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "ok"})
	})

	// 成员相关接口
	memberGroup := r.Group("/api/member")
	{
		memberGroup.POST("/signup", h.Member.SignUp)
		memberGroup.POST("/signin", h.Member.SignIn)
		memberGroup.POST("/refresh", h.Member.Refresh)
		memberGroup.GET("/:id", h.Member.Get)
	}
	memberAuth := r.Group("/api/member")
	memberAuth.Use(auth)
	{
		memberAuth.POST("/signout", h.Member.SignOut)
		memberAuth.PUT("/:id", h.Member.Update)
		memberAuth.DELETE("/:id", h.Member.Delete)
		memberAuth.DELETE("/:id/profile-image", h.Member.ResetProfileImage)
	}

	// feed 相关接口
	feedGroup := r.Group("/api/feed")
	{
		feedGroup.GET("", h.Feed.List)
		feedGroup.GET("/:id", h.Feed.Get)
		feedGroup.GET("/member/:memberId", h.Feed.ListByMember)
	}
	feedAuth := r.Group("/api/feed")
	feedAuth.Use(auth)
	{
		feedAuth.POST("", h.Feed.Create)
		feedAuth.PUT("/:id", h.Feed.Update)
		feedAuth.DELETE("/:id", h.Feed.Delete)
	}

	// 招聘帖相关接口
	jobGroup := r.Group("/api/job-post")
	{
		jobGroup.GET("", h.JobPost.List)
		jobGroup.GET("/:id", h.JobPost.Get)
	}
	jobAuth := r.Group("/api/job-post")
	jobAuth.Use(auth)
	{
		jobAuth.POST("", h.JobPost.Register)
		jobAuth.PUT("/:id", h.JobPost.Modify)
		jobAuth.DELETE("/:id", h.JobPost.Remove)
	}

	return r
}
