package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Handler 持有content模块的HTTP处理函数
type Handler struct {
	repo    *Repository
	service *Service
}

// NewHandler 创建一个新的content处理器。
func NewHandler(repo *Repository, service *Service) *Handler {
	return &Handler{repo: repo, service: service}
}

// --- 请求体模型 ---

// CreateRequest 定义了创建内容时请求体的JSON结构。
// id、dateAdded和timesSurfaced由服务端分配，请求中不接受。
type CreateRequest struct {
	Title            string   `json:"title" binding:"required"`
	Type             string   `json:"type" binding:"required,oneof=youtube tiktok video instagram article manual course_launcher"`
	URL              string   `json:"url"`
	LocalPath        string   `json:"localPath"`
	ThumbnailURL     string   `json:"thumbnailUrl"`
	DisplayImageURL  string   `json:"displayImageUrl"`
	Author           string   `json:"author"`
	PlatformName     string   `json:"platformName"`
	EstimatedMinutes *int     `json:"estimatedMinutes" binding:"omitempty,gt=0"`
	Difficulty       string   `json:"difficulty" binding:"omitempty,oneof=light medium deep"`
	Tags             []string `json:"tags"`
	Status           string   `json:"status" binding:"omitempty,oneof=unseen in_progress completed"`
	ProgressPercent  *int     `json:"progressPercent" binding:"omitempty,gte=0,lte=100"`
	Priority         *int     `json:"priority"`
	UserNote         string   `json:"userNote" binding:"omitempty,max=10000"`
}

// UpdateRequest 定义了部分更新内容时请求体的JSON结构。
// 所有字段都是可选的，nil表示不修改。
type UpdateRequest struct {
	Title            *string    `json:"title" binding:"omitempty,min=1"`
	Type             *string    `json:"type" binding:"omitempty,oneof=youtube tiktok video instagram article manual course_launcher"`
	URL              *string    `json:"url"`
	LocalPath        *string    `json:"localPath"`
	ThumbnailURL     *string    `json:"thumbnailUrl"`
	DisplayImageURL  *string    `json:"displayImageUrl"`
	Author           *string    `json:"author"`
	PlatformName     *string    `json:"platformName"`
	EstimatedMinutes *int       `json:"estimatedMinutes" binding:"omitempty,gt=0"`
	Difficulty       *string    `json:"difficulty" binding:"omitempty,oneof=light medium deep"`
	Tags             *[]string  `json:"tags"`
	Status           *string    `json:"status" binding:"omitempty,oneof=unseen in_progress completed"`
	ProgressPercent  *int       `json:"progressPercent" binding:"omitempty,gte=0,lte=100"`
	Priority         *int       `json:"priority"`
	UserNote         *string    `json:"userNote" binding:"omitempty,max=10000"`
	DateCompleted    *time.Time `json:"dateCompleted"` // 兼容旧客户端；服务端自行决定完成时间，此字段被忽略
}

// RateRequest 定义了优先级投票的请求体，delta通常为±1
type RateRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// --- 校验错误格式化 ---

// jsonFieldName 通过反射找到结构体字段对应的json名，
// 让校验错误报告的是API字段名而不是Go字段名。
func jsonFieldName(obj interface{}, structField string) string {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(structField); ok {
		tag := f.Tag.Get("json")
		for i, r := range tag {
			if r == ',' {
				return tag[:i]
			}
		}
		if tag != "" {
			return tag
		}
	}
	return structField
}

// validationMessage 将validator的错误翻译为面向API的提示文案
func validationMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must not be empty", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// bindingError 把gin绑定失败翻译为 {message, field} 形式的400响应体。
// 只报告第一个失败的字段。
func bindingError(obj interface{}, err error) gin.H {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := jsonFieldName(obj, verrs[0].StructField())
		return gin.H{"message": validationMessage(field, verrs[0]), "field": field}
	}
	return gin.H{"message": "Invalid request body"}
}

// parseID 解析路径中的内容ID，非法的ID与不存在的ID同样按404处理
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Content item not found"})
		return 0, false
	}
	return uint(id), true
}

// --- 控制器函数 ---

// ListFeed 返回过滤排序后的Feed工作集
func (h *Handler) ListFeed(c *gin.Context) {
	items, err := h.service.Feed(c.Query("focus"))
	if err != nil {
		if errors.Is(err, ErrInvalidFocus) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "focus must be one of: low medium high", "field": "focus"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetByID 返回单条内容
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	item, err := h.repo.GetByID(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create 创建一条新内容
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingError(&req, err))
		return
	}

	item := ContentItem{
		Title:           req.Title,
		Type:            req.Type,
		URL:             req.URL,
		LocalPath:       req.LocalPath,
		ThumbnailURL:    req.ThumbnailURL,
		DisplayImageURL: req.DisplayImageURL,
		Author:          req.Author,
		PlatformName:    req.PlatformName,
		Difficulty:      req.Difficulty,
		Tags:            req.Tags,
		Status:          StatusUnseen,
		UserNote:        req.UserNote,
	}
	if req.EstimatedMinutes != nil {
		item.EstimatedMinutes = *req.EstimatedMinutes
	}
	if req.Status != "" {
		item.Status = req.Status
	}
	if req.ProgressPercent != nil {
		item.ProgressPercent = *req.ProgressPercent
	}
	if req.Priority != nil {
		item.Priority = *req.Priority
	}
	// 直接以completed状态导入的内容也必须满足
	// dateCompleted与progressPercent的不变量
	if item.Status == StatusCompleted {
		now := time.Now()
		item.DateCompleted = &now
		item.ProgressPercent = 100
	}

	if err := h.repo.Create(&item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update 对内容做部分更新。
// 当请求把status迁移为completed时，走完成流程并触发统计副作用；
// 其余情况只做字段合并。
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingError(&req, err))
		return
	}

	changes, contentEdited := buildChanges(&req)

	var item *ContentItem
	var err error
	if req.Status != nil && *req.Status == StatusCompleted {
		item, err = h.service.Complete(id, req.UserNote, changes, contentEdited)
	} else {
		if req.Status != nil {
			changes["status"] = *req.Status
		}
		if req.ProgressPercent != nil {
			changes["progress_percent"] = *req.ProgressPercent
		}
		item, err = h.service.Edit(id, changes, contentEdited)
	}
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete 删除一条内容，成功时返回204
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(id); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkSurfaced 记录一次Feed曝光事件，该事件只计数，不改变生命周期状态
func (h *Handler) MarkSurfaced(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	item, err := h.repo.IncrementSurfaced(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Rate 根据投票调整内容的优先级
func (h *Handler) Rate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingError(&req, err))
		return
	}

	item, err := h.repo.AdjustPriority(id, req.Delta)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// respondStoreError 统一翻译仓库层错误：NotFound按404，其余按500
func respondStoreError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Content item not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}

// buildChanges 把UpdateRequest中出现的内容字段转换为列名到新值的映射，
// 并报告本次请求是否包含内容编辑（区别于纯生命周期字段变化）。
func buildChanges(req *UpdateRequest) (map[string]interface{}, bool) {
	changes := map[string]interface{}{}

	if req.Title != nil {
		changes["title"] = *req.Title
	}
	if req.Type != nil {
		changes["type"] = *req.Type
	}
	if req.URL != nil {
		changes["url"] = *req.URL
	}
	if req.LocalPath != nil {
		changes["local_path"] = *req.LocalPath
	}
	if req.ThumbnailURL != nil {
		changes["thumbnail_url"] = *req.ThumbnailURL
	}
	if req.DisplayImageURL != nil {
		changes["display_image_url"] = *req.DisplayImageURL
	}
	if req.Author != nil {
		changes["author"] = *req.Author
	}
	if req.PlatformName != nil {
		changes["platform_name"] = *req.PlatformName
	}
	if req.EstimatedMinutes != nil {
		changes["estimated_minutes"] = *req.EstimatedMinutes
	}
	if req.Difficulty != nil {
		changes["difficulty"] = *req.Difficulty
	}
	if req.Tags != nil {
		// map形式的更新不经过gorm的serializer，这里手动序列化为JSON字符串
		data, _ := json.Marshal(*req.Tags)
		changes["tags"] = string(data)
	}

	contentEdited := len(changes) > 0

	// 优先级不属于内容编辑，rate之外也允许直接修改
	if req.Priority != nil {
		changes["priority"] = *req.Priority
	}
	// userNote属于内容编辑，但完成流程里会单独处理
	if req.UserNote != nil {
		changes["user_note"] = *req.UserNote
		contentEdited = true
	}

	return changes, contentEdited
}
