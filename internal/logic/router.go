package logic

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"daybook-backend/internal/isoweek"
	"daybook-backend/internal/journal"
	"daybook-backend/internal/quota"
)

// RouterOptions Gatherer 为空时 /metrics 使用默认注册表
type RouterOptions struct {
	Logger            *zap.Logger
	Gatherer          prometheus.Gatherer
	CountdownInterval time.Duration
}

type handler struct {
	svc    *JournalService
	logger *zap.Logger
}

// SetupRouter 路由入口
func SetupRouter(svc *JournalService, opts RouterOptions) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	h := &handler{svc: svc, logger: logger.Named("http")}

	r := gin.New()
	r.Use(gin.Recovery(), h.accessLog)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	r.GET("/ws/countdown", NewCountdown(svc, opts.CountdownInterval, logger).Handle)

	api := r.Group("/api")
	api.GET("/today", h.TodayHandler)
	api.POST("/entries", h.StartDayHandler)
	api.GET("/entries/:id", h.GetEntryHandler)
	api.DELETE("/entries/:id", h.DeleteEntryHandler)
	api.POST("/entries/:id/plan", h.MorningPlanHandler)
	api.POST("/entries/:id/follow-up", h.FollowUpHandler)
	api.POST("/entries/:id/close", h.CloseHandler)
	api.POST("/entries/:id/reframe", h.ReframeHandler)
	api.GET("/drafts", h.DraftsHandler)
	api.GET("/search", h.SearchHandler)
	api.GET("/week/:year/:week", h.WeekHandler)
	api.POST("/ask", h.AskHandler)
	api.POST("/sweep", h.SweepHandler)

	return r
}

func (h *handler) accessLog(c *gin.Context) {
	start := time.Now()
	c.Next()
	h.logger.Debug("request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("took", time.Since(start)),
	)
}

// writeError 领域错误到 HTTP 状态码的唯一映射
func (h *handler) writeError(c *gin.Context, err error) {
	status := 500
	switch {
	case errors.Is(err, journal.ErrInvalidTransition), errors.Is(err, journal.ErrDuplicateEntry):
		status = 409
	case errors.Is(err, isoweek.ErrInvalidWeek), errors.Is(err, ErrEmptyText), errors.Is(err, ErrInvalidAsk):
		status = 400
	case errors.Is(err, journal.ErrNotFound):
		status = 404
	case errors.Is(err, quota.ErrQuotaExceeded):
		status = 429
	case errors.Is(err, journal.ErrStoreUnavailable):
		status = 503
	case errors.Is(err, ErrAskFailed):
		status = 502
	}
	if status >= 500 {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func userIDQuery(c *gin.Context) (string, bool) {
	id := c.Query("user_id")
	if id == "" {
		c.JSON(400, gin.H{"error": "user_id required"})
		return "", false
	}
	return id, true
}

// TodayHandler 首页状态
func (h *handler) TodayHandler(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		return
	}
	v, err := h.svc.Today(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(200, v)
}

type textRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

type answersRequest struct {
	UserID  string            `json:"user_id"`
	Answers map[string]string `json:"answers"`
}

// StartDayHandler 开始今天的日记
func (h *handler) StartDayHandler(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(400, gin.H{"error": "user_id and text required"})
		return
	}
	e, err := h.svc.StartDay(c.Request.Context(), req.UserID, req.Text)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(201, gin.H{"entry": NewEntryView(e)})
}

func (h *handler) GetEntryHandler(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		return
	}
	e, err := h.svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(200, gin.H{"entry": NewEntryView(e)})
}

func (h *handler) DeleteEntryHandler(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "deleted"})
}

// MorningPlanHandler 提交早间问题的答案
func (h *handler) MorningPlanHandler(c *gin.Context) {
	var req answersRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(400, gin.H{"error": "user_id and answers required"})
		return
	}
	e, err := h.svc.CompleteMorningPlan(c.Request.Context(), req.UserID, c.Param("id"), req.Answers)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(200, gin.H{"entry": NewEntryView(e)})
}

// FollowUpHandler 晚间记录
func (h *handler) FollowUpHandler(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(400, gin.H{"error": "user_id and text required"})
		return
	}
	e, err := h.svc.StartFollowUp(c.Request.Context(), req.UserID, c.Param("id"), req.Text)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(200, gin.H{"entry": NewEntryView(e)})
}

// CloseHandler 提交晚间答案，结束今天
func (h *handler) CloseHandler(c *gin.Context) {
	var req answersRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(400, gin.H{"error": "user_id and answers required"})
		return
	}
	e, err := h.svc.CompleteFollowUp(c.Request.Context(), req.UserID, c.Param("id"), req.Answers)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(200, gin.H{"entry": NewEntryView(e)})
}

func (h *handler) ReframeHandler(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(400, gin.H{"error": "user_id and text required"})
		return
	}
	e, err := h.svc.Reframe(c.Request.Context(), req.UserID, c.Param("id"), req.Text)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(200, gin.H{"entry": NewEntryView(e)})
}

// DraftsHandler 未完成的草稿
func (h *handler) DraftsHandler(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		return
	}
	entries, err := h.svc.Drafts(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(200, gin.H{"entries": entryViews(entries)})
}

// SearchHandler 搜索已完成的日记
func (h *handler) SearchHandler(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		return
	}
	entries, err := h.svc.Search(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(200, gin.H{"entries": entryViews(entries)})
}

// WeekHandler 周视图
func (h *handler) WeekHandler(c *gin.Context) {
	userID, ok := userIDQuery(c)
	if !ok {
		return
	}
	year, err1 := strconv.Atoi(c.Param("year"))
	week, err2 := strconv.Atoi(c.Param("week"))
	if err1 != nil || err2 != nil {
		c.JSON(400, gin.H{"error": "year and week must be numbers"})
		return
	}
	v, err := h.svc.Week(c.Request.Context(), userID, week, year)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(200, v)
}

// AskHandler 针对自己的日记提问
func (h *handler) AskHandler(c *gin.Context) {
	var req struct {
		UserID    string   `json:"user_id"`
		Questions []string `json:"questions"`
		Responses []string `json:"responses"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(400, gin.H{"error": "user_id and questions required"})
		return
	}
	answer, err := h.svc.Ask(c.Request.Context(), req.UserID, req.Questions, req.Responses)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(200, gin.H{"reply": answer})
}

// SweepHandler 手动触发清理，可选 user_id 限定范围
func (h *handler) SweepHandler(c *gin.Context) {
	res, err := h.svc.Sweep(c.Request.Context(), journal.Filter{AuthorID: c.Query("user_id")})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(200, res)
}
