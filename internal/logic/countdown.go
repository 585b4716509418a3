package logic

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"daybook-backend/internal/journal"
)

const (
	countdownWriteWait = 5 * time.Second
	// 状态每隔多少次推送从存储刷新一次
	countdownRefreshEvery = 15
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// CountdownMessage 每次推送的内容
type CountdownMessage struct {
	State       journal.State  `json:"state"`
	Action      journal.Action `json:"action"`
	Countdown   string         `json:"countdown"`
	SecondsLeft int64          `json:"seconds_left"`
}

// Countdown 通过 websocket 推送距晚间分界的倒计时
type Countdown struct {
	svc      *JournalService
	interval time.Duration
	logger   *zap.Logger
}

func NewCountdown(svc *JournalService, interval time.Duration, logger *zap.Logger) *Countdown {
	if interval <= 0 {
		interval = time.Second
	}
	return &Countdown{svc: svc, interval: interval, logger: logger.Named("countdown")}
}

// Message now 时刻的推送内容，today 为今天的条目
func (cd *Countdown) Message(today *journal.Entry, now time.Time) CountdownMessage {
	engine := cd.svc.Engine()
	state := engine.State(today, now)
	left := engine.TimeLeft(now)
	msg := CountdownMessage{
		State:     state,
		Action:    state.Action(),
		Countdown: journal.FormatCountdown(left),
	}
	if left > 0 {
		msg.SecondsLeft = int64(left / time.Second)
	}
	return msg
}

func (cd *Countdown) Handle(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(400, gin.H{"error": "user_id required"})
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		cd.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// 读循环只用于发现客户端断开
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := cd.Stream(ctx, userID, func(m CountdownMessage) error {
		_ = conn.SetWriteDeadline(time.Now().Add(countdownWriteWait))
		return conn.WriteJSON(m)
	}); err != nil && ctx.Err() == nil {
		cd.logger.Debug("countdown stream ended", zap.String("user_id", userID), zap.Error(err))
	}
}

// Stream 按 interval 调用 send，直到 ctx 结束或 send 返回错误
func (cd *Countdown) Stream(ctx context.Context, userID string, send func(CountdownMessage) error) error {
	ticker := time.NewTicker(cd.interval)
	defer ticker.Stop()

	var today *journal.Entry
	for tick := 0; ; tick++ {
		now := cd.svc.now()
		if tick%countdownRefreshEvery == 0 {
			e, err := cd.svc.findToday(ctx, userID, now)
			if err != nil {
				return err
			}
			today = e
		}
		if err := send(cd.Message(today, now)); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
