package content

import "time"

// 内容类型标签。视频类与文本类的区分只影响前端的呈现方式，
// 后端统一按字符串标签存储和校验。
const (
	TypeYouTube        = "youtube"
	TypeTikTok         = "tiktok"
	TypeVideo          = "video"
	TypeInstagram      = "instagram"
	TypeArticle        = "article"
	TypeManual         = "manual"
	TypeCourseLauncher = "course_launcher"
)

// 内容的生命周期状态。唯一有副作用的迁移是 * -> completed。
const (
	StatusUnseen     = "unseen"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// 内容的难度档位。空字符串表示未设置，在专注度过滤中视为通配。
const (
	DifficultyLight  = "light"
	DifficultyMedium = "medium"
	DifficultyDeep   = "deep"
)

// 用户选择的专注度档位，由Feed查询映射到难度档位
const (
	FocusLow    = "low"
	FocusMedium = "medium"
	FocusHigh   = "high"
)

// ContentItem 定义了数据库中单条学习内容的数据结构
type ContentItem struct {
	// ID 由数据库自增分配，创建后不可变
	ID uint `gorm:"primarykey" json:"id"`

	// Title 是内容的标题，必填
	Title string `gorm:"not null" json:"title"`

	// Type 是内容的类型标签，取值见Type*常量
	Type string `gorm:"not null" json:"type"`

	// URL 是内容的在线地址，本地导入的内容可以为空
	URL string `json:"url"`

	// LocalPath 是本地文件的路径，在线内容为空
	LocalPath string `json:"localPath"`

	// ThumbnailURL 是自动提取的缩略图地址
	ThumbnailURL string `json:"thumbnailUrl"`

	// DisplayImageURL 是用户手动指定的封面图，前端展示时优先于ThumbnailURL
	DisplayImageURL string `json:"displayImageUrl"`

	// Author 是内容的作者或频道名
	Author string `json:"author"`

	// PlatformName 是内容来源平台的展示名，例如 "YouTube"
	PlatformName string `json:"platformName"`

	// EstimatedMinutes 是预计学习时长（分钟），0表示未设置
	EstimatedMinutes int `json:"estimatedMinutes"`

	// Difficulty 是难度档位，空字符串表示未设置
	Difficulty string `json:"difficulty"`

	// Tags 是有序的标签列表，在SQLite中以JSON字符串形式存储
	Tags []string `gorm:"serializer:json" json:"tags"`

	// Status 是生命周期状态，初始为unseen
	Status string `gorm:"not null;default:unseen" json:"status"`

	// ProgressPercent 是学习进度（0-100），完成时恒为100
	ProgressPercent int `gorm:"not null;default:0" json:"progressPercent"`

	// DateAdded 在创建时设置一次，之后不可变
	DateAdded time.Time `json:"dateAdded"`

	// DateCompleted 仅在迁移到completed时设置，与Status互为不变量
	DateCompleted *time.Time `json:"dateCompleted"`

	// LastEdited 在每次内容编辑时更新
	LastEdited *time.Time `json:"lastEdited"`

	// UserNote 是完成时填写的学习笔记
	UserNote string `json:"userNote"`

	// Priority 是用户可调的有符号优先级，Feed按它降序排列。
	// 没有上下界，只通过rate操作以±1的步长变化，默认0。
	Priority int `gorm:"not null;default:0" json:"priority"`

	// TimesSurfaced 记录内容在Feed中被曝光的次数
	TimesSurfaced int `gorm:"not null;default:0" json:"timesSurfaced"`
}

// focusToDifficulty 是专注度到难度的固定映射表
var focusToDifficulty = map[string]string{
	FocusLow:    DifficultyLight,
	FocusMedium: DifficultyMedium,
	FocusHigh:   DifficultyDeep,
}
