package detect

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidURL 表示传入的字符串不是一个可用的http(s)地址。
var ErrInvalidURL = errors.New("无效的URL")

// Result 是URL识别的结果。
// 它是一个完整定型的结构体，可选字段为空时在JSON中省略，
// 取代了早期实现中在各层之间传递的自由形态对象。
type Result struct {
	Title            string `json:"title"`
	Type             string `json:"type"`
	ThumbnailURL     string `json:"thumbnailUrl,omitempty"`
	Author           string `json:"author,omitempty"`
	PlatformName     string `json:"platformName,omitempty"`
	EstimatedMinutes int    `json:"estimatedMinutes,omitempty"`
}

// youtubeIDPattern 从各种形态的YouTube链接中提取视频ID：
// watch?v=<id>、youtu.be/<id>、shorts/<id>，ID终止于下一个&或?
var youtubeIDPattern = regexp.MustCompile(`(?:v=|youtu\.be/|shorts/)([^&?/]+)`)

// signature 描述一个平台的URL特征与对应的识别结果
type signature struct {
	// matches 判断URL是否命中该平台
	matches func(u string) bool
	// classify 生成该平台的识别结果
	classify func(u string) Result
}

// signatures 是按顺序匹配的平台特征表，排在前面的优先
var signatures = []signature{
	{
		matches: func(u string) bool {
			return strings.Contains(u, "youtube.com") || strings.Contains(u, "youtu.be")
		},
		classify: classifyYouTube,
	},
	{
		matches: func(u string) bool { return strings.Contains(u, "tiktok.com") },
		classify: func(u string) Result {
			return Result{Title: "TikTok Video", Type: "tiktok", PlatformName: "TikTok", EstimatedMinutes: 3}
		},
	},
	{
		matches: func(u string) bool { return strings.Contains(u, "instagram.com/reel") },
		classify: func(u string) Result {
			return Result{Title: "Instagram Reel", Type: "instagram", PlatformName: "Instagram", EstimatedMinutes: 3}
		},
	},
	{
		matches: func(u string) bool { return strings.Contains(u, "udemy.com") },
		classify: func(u string) Result {
			return Result{Title: "Udemy Course", Type: "course_launcher", PlatformName: "Udemy", EstimatedMinutes: 60}
		},
	},
	{
		matches: func(u string) bool { return strings.Contains(u, "coursera.org") },
		classify: func(u string) Result {
			return Result{Title: "Coursera Course", Type: "course_launcher", PlatformName: "Coursera", EstimatedMinutes: 60}
		},
	},
}

// classifyYouTube 识别YouTube链接，并从视频ID推导缩略图地址
func classifyYouTube(u string) Result {
	r := Result{
		Title:            "YouTube Video",
		Type:             "youtube",
		PlatformName:     "YouTube",
		EstimatedMinutes: 10,
	}
	if m := youtubeIDPattern.FindStringSubmatch(u); len(m) == 2 {
		r.ThumbnailURL = fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", m[1])
	}
	return r
}

// ValidateURL 检查输入是否是形态合法的http(s)地址。
// 识别本身永远不会失败，只有URL形态校验会拒绝输入。
func ValidateURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return ErrInvalidURL
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}

// Classify 对URL做纯离线的模式匹配识别。
// 未命中任何平台特征时退化为通用的article分类，而不是报错。
func Classify(rawURL string) Result {
	for _, sig := range signatures {
		if sig.matches(rawURL) {
			return sig.classify(rawURL)
		}
	}
	return Result{Title: "New Article", Type: "article"}
}
