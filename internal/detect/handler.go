package detect

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler 持有detect模块的HTTP处理函数
type Handler struct {
	enricher *Enricher
}

// NewHandler 创建一个新的detect处理器。
func NewHandler(enricher *Enricher) *Handler {
	return &Handler{enricher: enricher}
}

// DetectRequest 定义了URL识别的请求体
type DetectRequest struct {
	URL string `json:"url" binding:"required"`
}

// Detect 对URL做平台识别。
// 未识别的URL退化为article分类，只有形态非法的URL才会被拒绝。
func (h *Handler) Detect(c *gin.Context) {
	var req DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "url is required", "field": "url"})
		return
	}

	if err := ValidateURL(req.URL); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "url must be a valid http(s) URL", "field": "url"})
		return
	}

	result := Classify(req.URL)
	result = h.enricher.Enrich(c.Request.Context(), result, req.URL)

	c.JSON(http.StatusOK, result)
}
