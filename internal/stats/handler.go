package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler 持有stats模块的HTTP处理函数
type Handler struct {
	repo *Repository
}

// NewHandler 创建一个新的stats处理器。
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// GetStats 返回用户的聚合统计数据，记录不存在时懒加载创建
func (h *Handler) GetStats(c *gin.Context) {
	s, err := h.repo.GetOrCreate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, s)
}
