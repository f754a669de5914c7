package content

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// newTestRouter 在包内直接组装路由，与api包中的注册顺序保持一致
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	_, repo, service, _ := newTestService(t)
	h := NewHandler(repo, service)

	r := gin.New()
	group := r.Group("/api/content")
	{
		group.GET("", h.ListFeed)
		group.POST("", h.Create)
		group.GET("/:id", h.GetByID)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
		group.POST("/:id/surfaced", h.MarkSurfaced)
		group.POST("/:id/rate", h.Rate)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeItem(t *testing.T, w *httptest.ResponseRecorder) ContentItem {
	t.Helper()
	var item ContentItem
	if err := json.Unmarshal(w.Body.Bytes(), &item); err != nil {
		t.Fatalf("响应不是合法的内容JSON: %v (%s)", err, w.Body.String())
	}
	return item
}

func TestCreateAndGetRoundTrip(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/content",
		`{"title":"Go内存模型","type":"article","url":"https://go.dev/ref/mem","tags":["go","memory"],"difficulty":"deep"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("期望201, got %d: %s", w.Code, w.Body.String())
	}
	created := decodeItem(t, w)
	if created.ID == 0 {
		t.Fatal("创建的内容应带有服务端分配的ID")
	}
	if created.Status != StatusUnseen {
		t.Errorf("初始状态应为unseen, got %q", created.Status)
	}

	w = doJSON(t, r, http.MethodGet, "/api/content/"+itoa(created.ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("期望200, got %d", w.Code)
	}
	got := decodeItem(t, w)
	if got.Title != "Go内存模型" || len(got.Tags) != 2 {
		t.Errorf("读取结果与创建不一致: %+v", got)
	}
}

func TestCreateValidation(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "缺少标题", body: `{"type":"article"}`, field: "title"},
		{name: "非法类型", body: `{"title":"x","type":"podcast"}`, field: "type"},
		{name: "时长为零", body: `{"title":"x","type":"article","estimatedMinutes":0}`, field: "estimatedMinutes"},
		{name: "进度越界", body: `{"title":"x","type":"article","progressPercent":101}`, field: "progressPercent"},
		{name: "非法难度", body: `{"title":"x","type":"article","difficulty":"hardcore"}`, field: "difficulty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/content", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("期望400, got %d: %s", w.Code, w.Body.String())
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("响应不是合法JSON: %v", err)
			}
			if body["field"] != tt.field {
				t.Errorf("错误应指向%q字段, got %q", tt.field, body["field"])
			}
			if body["message"] == "" {
				t.Error("错误响应应包含message")
			}
		})
	}
}

func TestCreateCompletedKeepsInvariants(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/content",
		`{"title":"导入的旧记录","type":"manual","status":"completed"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("期望201, got %d: %s", w.Code, w.Body.String())
	}
	created := decodeItem(t, w)
	if created.DateCompleted == nil {
		t.Error("completed状态创建时应补齐dateCompleted")
	}
	if created.ProgressPercent != 100 {
		t.Errorf("completed状态创建时进度应为100, got %d", created.ProgressPercent)
	}
}

func TestFeedFocusQuery(t *testing.T) {
	r := newTestRouter(t)

	doJSON(t, r, http.MethodPost, "/api/content", `{"title":"轻松","type":"article","difficulty":"light"}`)
	doJSON(t, r, http.MethodPost, "/api/content", `{"title":"深度","type":"article","difficulty":"deep"}`)

	w := doJSON(t, r, http.MethodGet, "/api/content?focus=low", "")
	if w.Code != http.StatusOK {
		t.Fatalf("期望200, got %d", w.Code)
	}
	var items []ContentItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("响应不是合法JSON: %v", err)
	}
	for _, item := range items {
		if item.Difficulty == DifficultyDeep {
			t.Errorf("focus=low不应返回deep内容: %q", item.Title)
		}
	}

	w = doJSON(t, r, http.MethodGet, "/api/content?focus=extreme", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("非法focus期望400, got %d", w.Code)
	}
	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["field"] != "focus" {
		t.Errorf("错误应指向focus字段, got %q", body["field"])
	}
}

func TestUpdateCompletionFlow(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/content",
		`{"title":"待完成","type":"youtube","estimatedMinutes":12}`)
	created := decodeItem(t, w)

	w = doJSON(t, r, http.MethodPatch, "/api/content/"+itoa(created.ID),
		`{"status":"completed","userNote":"很有启发"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("期望200, got %d: %s", w.Code, w.Body.String())
	}
	got := decodeItem(t, w)
	if got.Status != StatusCompleted || got.ProgressPercent != 100 {
		t.Errorf("完成后的记录字段错误: status=%q progress=%d", got.Status, got.ProgressPercent)
	}
	if got.DateCompleted == nil {
		t.Error("完成后dateCompleted应被设置")
	}
	if got.UserNote != "很有启发" {
		t.Errorf("笔记应被保存, got %q", got.UserNote)
	}
}

func TestUpdateUncompleteResetsCompletionFields(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/content",
		`{"title":"先完成再反悔","type":"article"}`)
	created := decodeItem(t, w)

	w = doJSON(t, r, http.MethodPatch, "/api/content/"+itoa(created.ID), `{"status":"completed"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("完成期望200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPatch, "/api/content/"+itoa(created.ID), `{"status":"unseen"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("期望200, got %d: %s", w.Code, w.Body.String())
	}
	got := decodeItem(t, w)
	if got.Status != StatusUnseen {
		t.Errorf("状态应为unseen, got %q", got.Status)
	}
	if got.DateCompleted != nil {
		t.Errorf("dateCompleted应随状态回退清空, got %v", got.DateCompleted)
	}
	if got.ProgressPercent != 0 {
		t.Errorf("进度应随状态回退归零, got %d", got.ProgressPercent)
	}
}

func TestUpdatePartialMerge(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/content",
		`{"title":"原标题","type":"article","userNote":"原笔记"}`)
	created := decodeItem(t, w)

	w = doJSON(t, r, http.MethodPatch, "/api/content/"+itoa(created.ID), `{"title":"新标题"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("期望200, got %d: %s", w.Code, w.Body.String())
	}
	got := decodeItem(t, w)
	if got.Title != "新标题" {
		t.Errorf("title未更新, got %q", got.Title)
	}
	if got.UserNote != "原笔记" {
		t.Errorf("未提交的字段不应变化, got %q", got.UserNote)
	}
	if got.LastEdited == nil {
		t.Error("内容编辑应刷新lastEdited")
	}
}

func TestNotFoundResponses(t *testing.T) {
	r := newTestRouter(t)

	paths := []struct {
		method string
		path   string
		body   string
	}{
		{method: http.MethodGet, path: "/api/content/9999", body: ""},
		{method: http.MethodPatch, path: "/api/content/9999", body: `{"title":"x"}`},
		{method: http.MethodDelete, path: "/api/content/9999", body: ""},
		{method: http.MethodPost, path: "/api/content/9999/surfaced", body: ""},
		{method: http.MethodPost, path: "/api/content/9999/rate", body: `{"delta":1}`},
		{method: http.MethodGet, path: "/api/content/not-a-number", body: ""},
	}

	for _, tt := range paths {
		w := doJSON(t, r, tt.method, tt.path, tt.body)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s %s 期望404, got %d", tt.method, tt.path, w.Code)
		}
	}
}

func TestDeleteReturnsNoContent(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/content", `{"title":"删我","type":"article"}`)
	created := decodeItem(t, w)

	w = doJSON(t, r, http.MethodDelete, "/api/content/"+itoa(created.ID), "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("期望204, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("204响应不应有响应体, got %q", w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/content/"+itoa(created.ID), "")
	if w.Code != http.StatusNotFound {
		t.Errorf("删除后查询期望404, got %d", w.Code)
	}
}

func TestRateAdjustsPriority(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/content", `{"title":"打分","type":"video"}`)
	created := decodeItem(t, w)

	w = doJSON(t, r, http.MethodPost, "/api/content/"+itoa(created.ID)+"/rate", `{"delta":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("期望200, got %d: %s", w.Code, w.Body.String())
	}
	if got := decodeItem(t, w); got.Priority != 1 {
		t.Errorf("+1后优先级应为1, got %d", got.Priority)
	}

	w = doJSON(t, r, http.MethodPost, "/api/content/"+itoa(created.ID)+"/rate", `{"delta":-1}`)
	if got := decodeItem(t, w); got.Priority != 0 {
		t.Errorf("往返后优先级应回到0, got %d", got.Priority)
	}
}

func TestSurfacedCounts(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/content", `{"title":"曝光","type":"tiktok"}`)
	created := decodeItem(t, w)

	for i := 1; i <= 2; i++ {
		w = doJSON(t, r, http.MethodPost, "/api/content/"+itoa(created.ID)+"/surfaced", "")
		if w.Code != http.StatusOK {
			t.Fatalf("期望200, got %d", w.Code)
		}
		got := decodeItem(t, w)
		if got.TimesSurfaced != i {
			t.Errorf("第%d次曝光后计数应为%d, got %d", i, i, got.TimesSurfaced)
		}
		if got.Status != StatusUnseen {
			t.Errorf("曝光不应改变生命周期状态, got %q", got.Status)
		}
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
