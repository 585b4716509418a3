package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"daybook-backend/internal/aitext"
	"daybook-backend/internal/common"
	"daybook-backend/internal/isoweek"
	"daybook-backend/internal/journal"
	"daybook-backend/internal/quota"
)

var (
	ErrEmptyText  = errors.New("text required")
	ErrInvalidAsk = errors.New("invalid ask request")
	ErrAskFailed  = errors.New("ai could not answer")
)

// Ask 的调用参数，与原有聊天接口保持一致
const (
	AskMaxTokens   = 512
	AskTemperature = 0.1
	MaxAskRunes    = 500
)

// Options AI 调用参数和上下文天数
type Options struct {
	MaxTokens   int
	Temperature float64
	ContextDays int
}

// Deps JournalService 依赖，可选项为 nil 时使用空实现
type Deps struct {
	Engine    *journal.Engine
	Calendar  isoweek.Calendar
	Entries   journal.EntryStore
	Users     journal.UserStore
	AI        aitext.Completer
	Quota     quota.Counter
	Publisher Publisher
	Metrics   *Metrics
	Logger    *zap.Logger
	Options   Options
	Now       func() time.Time
	NewID     func() string
}

// JournalService 串起状态机、存储和 AI。自身无状态，可并发使用。
type JournalService struct {
	engine  *journal.Engine
	cal     isoweek.Calendar
	entries journal.EntryStore
	users   journal.UserStore
	ai      aitext.Completer
	quota   quota.Counter
	events  Publisher
	metrics *Metrics
	logger  *zap.Logger
	opts    Options
	now     func() time.Time
	newID   func() string
}

func NewJournalService(d Deps) (*JournalService, error) {
	if d.Engine == nil || d.Entries == nil || d.Users == nil {
		return nil, errors.New("journal service needs an engine, an entry store and a user store")
	}
	s := &JournalService{
		engine:  d.Engine,
		cal:     d.Calendar,
		entries: d.Entries,
		users:   d.Users,
		ai:      d.AI,
		quota:   d.Quota,
		events:  d.Publisher,
		metrics: d.Metrics,
		logger:  d.Logger,
		opts:    d.Options,
		now:     d.Now,
		newID:   d.NewID,
	}
	if s.cal.Location == nil {
		s.cal = isoweek.New(d.Engine.Location)
	}
	if s.ai == nil {
		s.ai = aitext.Disabled{}
	}
	if s.quota == nil {
		s.quota = quota.NewMemoryCounter(10)
	}
	if s.events == nil {
		s.events = NopPublisher{}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = func() string { return uuid.New().String() }
	}
	if s.opts.MaxTokens <= 0 {
		s.opts.MaxTokens = 1024
	}
	if s.opts.ContextDays <= 0 {
		s.opts.ContextDays = 7
	}
	s.logger = s.logger.Named("journal")
	return s, nil
}

func (s *JournalService) Engine() *journal.Engine { return s.engine }

// Today 今天的条目、推导状态和倒计时
func (s *JournalService) Today(ctx context.Context, userID string) (*TodayView, error) {
	now := s.now()
	today, err := s.findToday(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	state := s.engine.State(today, now)
	left := s.engine.TimeLeft(now)
	v := &TodayView{
		State:     state,
		Action:    state.Action(),
		Title:     common.TodayPlaceholder,
		Entry:     NewEntryView(today),
		Cutoff:    s.engine.Cutoff(now),
		Countdown: journal.FormatCountdown(left),
	}
	if left > 0 {
		v.SecondsLeft = int64(left / time.Second)
	}
	if today != nil && today.Summary.Title != "" {
		v.Title = today.Summary.Title
	}
	return v, nil
}

func (s *JournalService) findToday(ctx context.Context, userID string, now time.Time) (*journal.Entry, error) {
	start, end := s.engine.DayBounds(now)
	entries, err := s.entries.FindMany(ctx, journal.Filter{
		AuthorID:    userID,
		CreatedFrom: start,
		CreatedTo:   end,
	}, journal.OrderBy{Field: journal.OrderByUpdatedAt, Desc: true})
	if err != nil {
		return nil, err
	}
	return s.engine.PickToday(entries, now), nil
}

// owned 条目不存在或不属于该用户都返回 ErrNotFound
func (s *JournalService) owned(ctx context.Context, userID, id string) (*journal.Entry, error) {
	e, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.AuthorID != userID {
		return nil, journal.ErrNotFound
	}
	return e, nil
}

// StartDay 新建今天的条目，AI 根据早间文字和近几天的记录提问
func (s *JournalService) StartDay(ctx context.Context, userID, text string) (e *journal.Entry, err error) {
	defer func() { s.metrics.transition(journal.EventStartDay, err) }()
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	now := s.now()
	today, err := s.findToday(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Check(today, journal.EventStartDay, now); err != nil {
		return nil, err
	}
	user, err := s.ensureUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.recentContext(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(common.MorningQuestionsPrompt, text)
	if recent != "" {
		prompt = "Recent days:\n" + recent + "\n\n" + prompt
	}
	questions := s.askQuestions(ctx, "morning_questions", user, prompt, common.DefaultMorningQuestions)

	e, err = s.engine.StartDay(today, s.newID(), userID, text, questions, now)
	if err != nil {
		return nil, err
	}
	if err := s.entries.Create(ctx, e); err != nil {
		return nil, err
	}
	s.publish(ctx, e, EventEntryStarted)
	return e, nil
}

// CompleteMorningPlan 提交早间答案，open -> partial
func (s *JournalService) CompleteMorningPlan(ctx context.Context, userID, id string, answers map[string]string) (next *journal.Entry, err error) {
	defer func() { s.metrics.transition(journal.EventCompleteMorningPlan, err) }()
	entry, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.engine.Check(entry, journal.EventCompleteMorningPlan, now); err != nil {
		return nil, err
	}
	if err := journal.CheckAnswers(entry.MorningQuestions, answers); err != nil {
		return nil, err
	}
	user, err := s.ensureUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(common.MorningSummaryPrompt, entry.MorningString(), formatAnswers(entry.MorningQuestions, answers))
	sum := s.summarize(ctx, "morning_summary", user, prompt)

	next, err = s.engine.CompleteMorningPlan(entry, answers, sum, now)
	if err != nil {
		return nil, err
	}
	return next, s.save(ctx, next, EventEntryPlanned)
}

// StartFollowUp 晚间文字，partial -> partial_open，同时提取标签
func (s *JournalService) StartFollowUp(ctx context.Context, userID, id, text string) (next *journal.Entry, err error) {
	defer func() { s.metrics.transition(journal.EventStartFollowUp, err) }()
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	entry, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.engine.Check(entry, journal.EventStartFollowUp, now); err != nil {
		return nil, err
	}
	user, err := s.ensureUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, err := s.recentContext(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(common.EveningQuestionsPrompt, entry.MorningString(), text)
	if recent != "" {
		prompt = "Recent days:\n" + recent + "\n\n" + prompt
	}
	questions := s.askQuestions(ctx, "evening_questions", user, prompt, common.DefaultEveningQuestions)
	tags := s.extractTags(ctx, user, entry.MorningString()+"\n"+text)

	next, err = s.engine.StartFollowUp(entry, text, questions, tags, now)
	if err != nil {
		return nil, err
	}
	return next, s.save(ctx, next, EventEntryFollowUp)
}

// CompleteFollowUp 提交晚间答案，partial_open -> closed
func (s *JournalService) CompleteFollowUp(ctx context.Context, userID, id string, answers map[string]string) (next *journal.Entry, err error) {
	defer func() { s.metrics.transition(journal.EventCompleteFollowUp, err) }()
	entry, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.engine.Check(entry, journal.EventCompleteFollowUp, now); err != nil {
		return nil, err
	}
	if err := journal.CheckAnswers(entry.EveningQuestions, answers); err != nil {
		return nil, err
	}
	user, err := s.ensureUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	prompt := fmt.Sprintf(common.EveningSummaryPrompt,
		entry.MorningString(), entry.EveningString(), formatAnswers(entry.EveningQuestions, answers))
	sum := s.summarize(ctx, "evening_summary", user, prompt)

	next, err = s.engine.CompleteFollowUp(entry, answers, sum, now)
	if err != nil {
		return nil, err
	}
	return next, s.save(ctx, next, EventEntryClosed)
}

// Reframe 对已关闭条目的负面想法重新表述并重新分析
func (s *JournalService) Reframe(ctx context.Context, userID, id, text string) (next *journal.Entry, err error) {
	defer func() { s.metrics.transition(journal.EventReframe, err) }()
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	entry, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.engine.Check(entry, journal.EventReframe, now); err != nil {
		return nil, err
	}
	user, err := s.ensureUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	negatives := make([]string, 0, len(entry.NegativePhrases))
	for _, p := range entry.NegativePhrases {
		negatives = append(negatives, "- "+p.Negative)
	}
	prompt := fmt.Sprintf(common.ReframePrompt, entry.Summary.Summary, strings.Join(negatives, "\n"), text)
	sum := s.summarize(ctx, "reframe", user, prompt)

	next, err = s.engine.Reframe(entry, text, sum, now)
	if err != nil {
		return nil, err
	}
	return next, s.save(ctx, next, EventEntryReframed)
}

func (s *JournalService) save(ctx context.Context, e *journal.Entry, eventType string) error {
	if err := s.entries.Update(ctx, e.ID, journal.PatchFrom(e)); err != nil {
		return err
	}
	s.publish(ctx, e, eventType)
	return nil
}

// publish 事件发送失败只记日志
func (s *JournalService) publish(ctx context.Context, e *journal.Entry, eventType string) {
	ev := NewEvent(eventType, e.AuthorID, e.ID, s.now())
	ev.Status = string(e.Status)
	if e.Status == journal.StatusClosed {
		sentiment := e.Sentiment
		ev.Sentiment = &sentiment
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.logger.Warn("publish event failed", zap.String("type", eventType), zap.String("entry_id", e.ID), zap.Error(err))
	}
}

// ensureUser 首次出现的用户自动建档
func (s *JournalService) ensureUser(ctx context.Context, userID string) (*journal.User, error) {
	u, err := s.users.FindUser(ctx, userID)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, journal.ErrNotFound) {
		return nil, err
	}
	u = &journal.User{ID: userID}
	if err := s.users.UpsertUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// recentContext 今天之前 ContextDays 天的总结，作为提问的上下文
func (s *JournalService) recentContext(ctx context.Context, userID string, now time.Time) (string, error) {
	start, _ := s.engine.DayBounds(now)
	entries, err := s.entries.FindMany(ctx, journal.Filter{
		AuthorID:    userID,
		CreatedFrom: start.AddDate(0, 0, -s.opts.ContextDays),
		CreatedTo:   start,
	}, journal.OrderBy{Field: journal.OrderByCreatedAt})
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, e := range entries {
		if !e.HasText() {
			continue
		}
		fmt.Fprintf(&b, "%s: %s", e.CreatedAt.In(s.cal.Location).Format("2006-01-02"), e.MorningString())
		if eve := e.EveningString(); eve != "" {
			fmt.Fprintf(&b, " / %s", eve)
		}
		if e.Summary.Summary != "" {
			fmt.Fprintf(&b, " (summary: %s)", e.Summary.Summary)
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

func (s *JournalService) systemPrompt(user *journal.User) aitext.Message {
	prompt := common.RolePrompt
	if user != nil && strings.TrimSpace(user.Preference) != "" {
		prompt += "\n" + fmt.Sprintf(common.PreferencePrompt, user.Preference)
	}
	return aitext.System(prompt)
}

func (s *JournalService) complete(ctx context.Context, kind string, messages []aitext.Message, opts aitext.Options) (string, error) {
	start := time.Now()
	out, err := s.ai.Complete(ctx, messages, opts)
	s.metrics.aiCall(kind, err, time.Since(start))
	if err != nil {
		s.logger.Warn("ai completion failed", zap.String("kind", kind), zap.Error(err))
	}
	return out, err
}

func (s *JournalService) defaultOptions() aitext.Options {
	return aitext.Options{MaxTokens: s.opts.MaxTokens, Temperature: s.opts.Temperature}
}

// askQuestions AI 失败或返回不可解析时使用固定问题
func (s *JournalService) askQuestions(ctx context.Context, kind string, user *journal.User, prompt string, fallback []string) journal.PendingQuestions {
	text, err := s.complete(ctx, kind, []aitext.Message{s.systemPrompt(user), aitext.User(prompt)}, s.defaultOptions())
	if err == nil {
		qs, perr := aitext.DecodeQuestions(text)
		if perr == nil {
			return journal.PendingQuestions(qs)
		}
		s.logger.Warn("ai questions unparseable", zap.String("kind", kind), zap.Error(perr))
	}
	out := make(journal.PendingQuestions, 0, len(fallback))
	for _, q := range fallback {
		out = append(out, journal.Question{Question: q})
	}
	return out
}

// summarize 不会失败，最差返回兜底总结
func (s *JournalService) summarize(ctx context.Context, kind string, user *journal.User, prompt string) journal.Summary {
	text, err := s.complete(ctx, kind, []aitext.Message{s.systemPrompt(user), aitext.User(prompt)}, s.defaultOptions())
	if err != nil {
		return aitext.Fallback()
	}
	return aitext.ParseSummary(text)
}

func (s *JournalService) extractTags(ctx context.Context, user *journal.User, text string) []string {
	out, err := s.complete(ctx, "tags", []aitext.Message{s.systemPrompt(user), aitext.User(fmt.Sprintf(common.TagsPrompt, text))}, s.defaultOptions())
	if err != nil {
		return nil
	}
	tags, err := aitext.DecodeTags(out)
	if err != nil {
		s.logger.Debug("ai tags unparseable", zap.Error(err))
		return nil
	}
	return tags
}

// formatAnswers 按问题顺序输出问答对
func formatAnswers(qs journal.QuestionSet, answers map[string]string) string {
	var b strings.Builder
	if p, ok := qs.(journal.PendingQuestions); ok {
		for _, q := range p {
			fmt.Fprintf(&b, "Q: %s\nA: %s\n", q.Question, strings.TrimSpace(answers[q.Question]))
		}
		return strings.TrimSpace(b.String())
	}
	for q, a := range answers {
		fmt.Fprintf(&b, "Q: %s\nA: %s\n", q, strings.TrimSpace(a))
	}
	return strings.TrimSpace(b.String())
}

// Sweep 关闭过期未完成的条目，删除空的已关闭条目。可重复执行。
func (s *JournalService) Sweep(ctx context.Context, f journal.Filter) (SweepResult, error) {
	var res SweepResult
	now := s.now()
	entries, err := s.entries.FindMany(ctx, f, journal.OrderBy{Field: journal.OrderByCreatedAt})
	if err != nil {
		return res, err
	}
	for _, e := range entries {
		if s.engine.NeedsAutoClose(e, now) {
			closed := s.engine.AutoClose(e, now)
			if err := s.entries.Update(ctx, closed.ID, journal.PatchFrom(closed)); err != nil {
				return res, err
			}
			res.Closed++
			s.publish(ctx, closed, EventEntryAutoClosed)
			e = closed
		}
		if journal.IsEmptyClosed(e) {
			err := s.entries.Delete(ctx, e.ID)
			if errors.Is(err, journal.ErrNotFound) {
				// 已被并发的清理删除
				continue
			}
			if err != nil {
				return res, err
			}
			res.Deleted++
			s.publish(ctx, e, EventEntryDeleted)
		}
	}
	s.metrics.swept(res.Closed, res.Deleted)
	if res.Closed > 0 || res.Deleted > 0 {
		s.logger.Info("sweep finished", zap.Int("closed", res.Closed), zap.Int("deleted", res.Deleted))
	}
	return res, nil
}

// Week 周视图。加载前先清理该用户这一周的条目。
func (s *JournalService) Week(ctx context.Context, userID string, week, year int) (*WeekView, error) {
	start, end, err := s.cal.WeekRange(week, year)
	if err != nil {
		return nil, err
	}
	f := journal.Filter{AuthorID: userID, CreatedFrom: start, CreatedTo: start.AddDate(0, 0, 7)}
	swept, err := s.Sweep(ctx, f)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.FindMany(ctx, f, journal.OrderBy{Field: journal.OrderByCreatedAt})
	if err != nil {
		return nil, err
	}

	now := s.now()
	days := s.cal.Days(start)
	buckets := s.cal.BucketEntriesByDay(entries, start)
	v := &WeekView{
		Year:        year,
		Week:        week,
		WeeksInYear: s.cal.WeeksInYear(year),
		Start:       start,
		End:         end,
		Swept:       swept,
	}
	v.Prev.Week, v.Prev.Year = s.cal.Prev(week, year)
	v.Next.Week, v.Next.Year = s.cal.Next(week, year)

	for i, day := range days {
		dv := DayView{
			Date:    day,
			Weekday: day.Weekday().String(),
			IsToday: s.engine.SameDay(day, now),
			Entry:   NewEntryView(buckets[i]),
		}
		if e := buckets[i]; e != nil {
			dv.Link = LinkJournal
			if e.Status == journal.StatusOpen {
				dv.Link = LinkPlan
			}
		}
		var sameDay []*journal.Entry
		for _, e := range entries {
			if s.engine.SameDay(e.CreatedAt, day) {
				sameDay = append(sameDay, e)
			}
		}
		if avg, ok := journal.AverageClosedSentiment(sameDay); ok {
			dv.Sentiment = &avg
			dv.Label = journal.SentimentLabel(avg)
		}
		v.Days[i] = dv
	}
	if trend, ok := journal.SentimentTrend(entries); ok {
		v.Trend = &trend
	}
	return v, nil
}

// CurrentWeek 当前时间所在的 ISO 周
func (s *JournalService) CurrentWeek() (week, year int) {
	return s.cal.ISOWeekOf(s.now())
}

// Ask 基于用户全部日记回答问题。questions 与 responses 交替组成多轮对话，最后一条必须是问题。
func (s *JournalService) Ask(ctx context.Context, userID string, questions, responses []string) (string, error) {
	if len(questions) == 0 || strings.TrimSpace(questions[len(questions)-1]) == "" {
		return "", ErrInvalidAsk
	}
	if len(responses) >= len(questions) {
		return "", fmt.Errorf("%w: expected fewer responses than questions", ErrInvalidAsk)
	}
	for _, q := range questions {
		if len([]rune(q)) > MaxAskRunes {
			return "", fmt.Errorf("%w: question longer than %d characters", ErrInvalidAsk, MaxAskRunes)
		}
	}
	entries, err := s.entries.FindMany(ctx, journal.Filter{AuthorID: userID}, journal.OrderBy{Field: journal.OrderByCreatedAt})
	if err != nil {
		return "", err
	}
	// 只在真正调用模型前扣次数
	if _, err := s.quota.Take(ctx, userID, s.now().In(s.cal.Location)); err != nil {
		return "", err
	}

	messages := []aitext.Message{aitext.System(fmt.Sprintf(common.AskSystemPrompt, s.notes(entries)))}
	for i, q := range questions {
		messages = append(messages, aitext.User(q))
		if i < len(responses) {
			messages = append(messages, aitext.Assistant(responses[i]))
		}
	}
	out, err := s.complete(ctx, "ask", messages, aitext.Options{MaxTokens: AskMaxTokens, Temperature: AskTemperature})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAskFailed, err)
	}
	answer := aitext.StripThink(out)
	if answer == "" {
		return "", fmt.Errorf("%w: %v", ErrAskFailed, aitext.ErrEmptyResponse)
	}
	return answer, nil
}

func (s *JournalService) notes(entries []*journal.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		if !e.HasText() {
			continue
		}
		fmt.Fprintf(&b, "Date: %s\n", e.CreatedAt.In(s.cal.Location).Format("Monday 2006-01-02"))
		if m := e.MorningString(); m != "" {
			fmt.Fprintf(&b, "Morning: %s\n", m)
		}
		if ev := e.EveningString(); ev != "" {
			fmt.Fprintf(&b, "Evening: %s\n", ev)
		}
		if e.Summary.Summary != "" {
			fmt.Fprintf(&b, "Summary: %s\n", e.Summary.Summary)
		}
		b.WriteString("\n")
	}
	if b.Len() == 0 {
		return "(no entries yet)"
	}
	return strings.TrimSpace(b.String())
}

// Drafts 未完成早间计划的条目，新的在前
func (s *JournalService) Drafts(ctx context.Context, userID string) ([]*journal.Entry, error) {
	return s.entries.FindMany(ctx, journal.Filter{
		AuthorID: userID,
		Statuses: []journal.Status{journal.StatusOpen},
	}, journal.OrderBy{Field: journal.OrderByCreatedAt, Desc: true})
}

// Search 已关闭条目的模糊搜索
func (s *JournalService) Search(ctx context.Context, userID, query string) ([]*journal.Entry, error) {
	closed, err := s.entries.FindMany(ctx, journal.Filter{
		AuthorID: userID,
		Statuses: []journal.Status{journal.StatusClosed},
	}, journal.OrderBy{Field: journal.OrderByCreatedAt, Desc: true})
	if err != nil {
		return nil, err
	}
	return journal.SearchClosed(closed, query), nil
}

func (s *JournalService) Get(ctx context.Context, userID, id string) (*journal.Entry, error) {
	return s.owned(ctx, userID, id)
}

func (s *JournalService) Delete(ctx context.Context, userID, id string) error {
	e, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.entries.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, e, EventEntryDeleted)
	return nil
}

// RemindFollowUps 分界时刻提醒今天仍为 partial 的用户写晚间记录
func (s *JournalService) RemindFollowUps(ctx context.Context) (int, error) {
	now := s.now()
	start, end := s.engine.DayBounds(now)
	entries, err := s.entries.FindMany(ctx, journal.Filter{
		CreatedFrom: start,
		CreatedTo:   end,
		Statuses:    []journal.Status{journal.StatusPartial},
	}, journal.OrderBy{Field: journal.OrderByCreatedAt})
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}
	events := make([]Event, 0, len(entries))
	for _, e := range entries {
		ev := NewEvent(EventReminderFollowUp, e.AuthorID, e.ID, now)
		ev.Status = string(e.Status)
		events = append(events, ev)
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		return 0, fmt.Errorf("publish follow-up reminders: %w", err)
	}
	s.metrics.reminded(len(events))
	return len(events), nil
}
