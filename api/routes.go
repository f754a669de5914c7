package api

import (
	"github.com/SlpAus/learning-feed-backend/internal/content"
	"github.com/SlpAus/learning-feed-backend/internal/detect"
	"github.com/SlpAus/learning-feed-backend/internal/stats"
	"github.com/gin-gonic/gin"
)

// Handlers 汇集了注册路由所需的全部处理器，由main.go构造后传入
type Handlers struct {
	Content *content.Handler
	Stats   *stats.Handler
	Detect  *detect.Handler
}

// SetupRoutes 注册项目的所有API路由
func SetupRoutes(router *gin.Engine, h Handlers) {
	api := router.Group("/api")
	api.Use(RequestIDMiddleware())
	{
		// 内容相关的路由组 /api/content
		contentRoutes := api.Group("/content")
		{
			contentRoutes.GET("", h.Content.ListFeed)
			contentRoutes.POST("", h.Content.Create)
			// detect必须注册在/:id之前，避免被当作ID解析
			contentRoutes.POST("/detect", h.Detect.Detect)
			contentRoutes.GET("/:id", h.Content.GetByID)
			contentRoutes.PATCH("/:id", h.Content.Update)
			contentRoutes.DELETE("/:id", h.Content.Delete)
			contentRoutes.POST("/:id/surfaced", h.Content.MarkSurfaced)
			contentRoutes.POST("/:id/rate", h.Content.Rate)
		}

		// 统计相关的路由 /api/stats
		api.GET("/stats", h.Stats.GetStats)
	}
}
