package aitext

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"daybook-backend/internal/journal"
)

// FallbackSummary 调用失败或返回为空时的总结
const FallbackSummary = "Error summarizing entry."

var (
	thinkRe = regexp.MustCompile(`(?s)<think>.*?</think>`)
	fenceRe = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
)

// StripThink 去掉 <think>...</think> 及 Markdown 代码块包裹。
// 未闭合的 <think> 之后的内容全部丢弃。
func StripThink(s string) string {
	s = thinkRe.ReplaceAllString(s, "")
	if i := strings.Index(s, "<think>"); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	if m := fenceRe.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	return strings.TrimSpace(s)
}

type rawSummary struct {
	Title           string                   `json:"title"`
	Summary         string                   `json:"summary"`
	Tags            []string                 `json:"tags"`
	NegativePhrases []journal.NegativePhrase `json:"negativePhrases"`
	Positivity      *float64                 `json:"positivity"`
}

// DecodeSummary 严格解析 JSON 总结，失败返回 ErrUnparseable
func DecodeSummary(text string) (journal.Summary, error) {
	body := StripThink(text)
	if !strings.HasPrefix(body, "{") {
		if i, j := strings.Index(body, "{"), strings.LastIndex(body, "}"); i >= 0 && j > i {
			body = body[i : j+1]
		}
	}
	var raw rawSummary
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return journal.Summary{}, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	if raw.Title == "" && raw.Summary == "" && raw.Positivity == nil {
		return journal.Summary{}, fmt.Errorf("%w: no summary fields", ErrUnparseable)
	}
	sum := journal.Summary{
		Title:           strings.TrimSpace(raw.Title),
		Summary:         strings.TrimSpace(raw.Summary),
		Tags:            cleanTags(raw.Tags),
		NegativePhrases: raw.NegativePhrases,
	}
	if raw.Positivity != nil {
		sum.Positivity = journal.ClampSentiment(*raw.Positivity)
		sum.Scored = true
	}
	return sum, nil
}

// ParseSummary 永不失败：JSON 解析失败时原文作为纯文本总结，空文本返回兜底总结
func ParseSummary(text string) journal.Summary {
	if sum, err := DecodeSummary(text); err == nil {
		return sum
	}
	if plain := StripThink(text); plain != "" {
		return journal.Summary{Summary: plain}
	}
	return Fallback()
}

// Fallback 兜底总结
func Fallback() journal.Summary {
	return journal.Summary{Summary: FallbackSummary}
}

// DecodeQuestions 解析问题列表，接受数组或 {"questions": [...]}
func DecodeQuestions(text string) ([]journal.Question, error) {
	body := StripThink(text)
	if strings.HasPrefix(body, "{") {
		var wrapped struct {
			Questions []journal.Question `json:"questions"`
		}
		if err := json.Unmarshal([]byte(body), &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
		}
		return nonEmptyQuestions(wrapped.Questions)
	}
	i, j := strings.Index(body, "["), strings.LastIndex(body, "]")
	if i < 0 || j < i {
		return nil, fmt.Errorf("%w: no question list", ErrUnparseable)
	}
	body = body[i : j+1]
	var qs []journal.Question
	if err := json.Unmarshal([]byte(body), &qs); err != nil {
		// 也接受纯字符串数组
		var plain []string
		if err2 := json.Unmarshal([]byte(body), &plain); err2 != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
		}
		qs = nil
		for _, p := range plain {
			qs = append(qs, journal.Question{Question: p})
		}
	}
	return nonEmptyQuestions(qs)
}

func nonEmptyQuestions(qs []journal.Question) ([]journal.Question, error) {
	out := make([]journal.Question, 0, len(qs))
	for _, q := range qs {
		q.Question = strings.TrimSpace(q.Question)
		if q.Question != "" {
			out = append(out, q)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no questions", ErrUnparseable)
	}
	return out, nil
}

// DecodeTags 解析标签数组，接受 {"tags": [...]}
func DecodeTags(text string) ([]string, error) {
	body := StripThink(text)
	var tags []string
	if err := json.Unmarshal([]byte(body), &tags); err != nil {
		var wrapped struct {
			Tags []string `json:"tags"`
		}
		if err2 := json.Unmarshal([]byte(body), &wrapped); err2 != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
		}
		tags = wrapped.Tags
	}
	return cleanTags(tags), nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, t := range tags {
		t = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(t), "#"))
		if t == "" || seen[strings.ToLower(t)] {
			continue
		}
		seen[strings.ToLower(t)] = true
		out = append(out, t)
	}
	return out
}
