package detect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/SlpAus/learning-feed-backend/internal/platform/config"
	"github.com/SlpAus/learning-feed-backend/internal/platform/database"
)

// oembedEndpoint 是YouTube官方的oEmbed接口
const oembedEndpoint = "https://www.youtube.com/oembed"

// cacheKeyPrefix 是oEmbed结果在Redis中的键名前缀
const cacheKeyPrefix = "detect:oembed:"

// oembedResponse 是oEmbed接口返回的JSON中本模块关心的字段
type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Enricher 负责对离线识别结果做可选的在线增强。
// 增强是尽力而为的：外部请求失败、超时或Redis不可用时，
// 调用方拿到的仍然是完整可用的离线结果，错误不会向上传播。
type Enricher struct {
	enabled bool
	client  *http.Client
	ttl     time.Duration
}

// NewEnricher 根据配置创建增强器。
func NewEnricher(cfg config.EnrichmentConfig) *Enricher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Enricher{
		enabled: cfg.Enabled,
		client:  &http.Client{Timeout: timeout},
		ttl:     cfg.CacheTTL,
	}
}

// Enrich 用oEmbed元数据充实YouTube的识别结果。
// 其他平台原样返回。
func (e *Enricher) Enrich(ctx context.Context, base Result, rawURL string) Result {
	if !e.enabled || base.Type != "youtube" {
		return base
	}

	meta, ok := e.lookup(ctx, rawURL)
	if !ok {
		return base
	}

	if meta.Title != "" {
		base.Title = meta.Title
	}
	if meta.AuthorName != "" {
		base.Author = meta.AuthorName
	}
	if meta.ThumbnailURL != "" {
		base.ThumbnailURL = meta.ThumbnailURL
	}
	return base
}

// lookup 先查Redis缓存，未命中时请求oEmbed接口并回填缓存
func (e *Enricher) lookup(ctx context.Context, rawURL string) (*oembedResponse, bool) {
	cacheKey := cacheKeyPrefix + rawURL

	if database.IsRedisHealthy() {
		cached, err := database.RDB.Get(ctx, cacheKey).Result()
		if err == nil {
			var meta oembedResponse
			if json.Unmarshal([]byte(cached), &meta) == nil {
				return &meta, true
			}
		}
	}

	meta, raw, err := e.fetch(ctx, rawURL)
	if err != nil {
		return nil, false
	}

	// 缓存失败只影响下次的命中率，不影响本次结果
	if database.IsRedisHealthy() {
		if err := database.RDB.Set(ctx, cacheKey, raw, e.ttl).Err(); err != nil {
			fmt.Printf("警告: 无法缓存oEmbed结果: %v\n", err)
		}
	}
	return meta, true
}

// fetch 请求oEmbed接口，超时由client.Timeout约束
func (e *Enricher) fetch(ctx context.Context, rawURL string) (*oembedResponse, []byte, error) {
	query := url.Values{}
	query.Set("url", rawURL)
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, oembedEndpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, nil, err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("oEmbed接口返回状态 %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, nil, err
	}

	var meta oembedResponse
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, nil, err
	}
	return &meta, raw, nil
}
