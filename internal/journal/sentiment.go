package journal

// 情绪分数统一使用 0..100
const (
	MinSentiment     = 0
	MaxSentiment     = 100
	NeutralSentiment = 50
)

const (
	LabelPositive    = "Positive"
	LabelNeutral     = "Neutral"
	LabelChallenging = "Challenging"
)

func ClampSentiment(v float64) float64 {
	if v < MinSentiment {
		return MinSentiment
	}
	if v > MaxSentiment {
		return MaxSentiment
	}
	return v
}

// SentimentLabel >55 积极，<45 困难，其余中性
func SentimentLabel(score float64) string {
	switch {
	case score > 55:
		return LabelPositive
	case score < 45:
		return LabelChallenging
	}
	return LabelNeutral
}

// Trend 一组条目的情绪变化
type Trend struct {
	First       float64 `json:"first"`
	Latest      float64 `json:"latest"`
	Improvement float64 `json:"improvement"`
	Points      int     `json:"points"`
}

// SentimentTrend 按顺序取第一条 original 分数和最后一条分数（含 reframed）。
// entries 需按时间升序。没有历史时 ok 为 false。
func SentimentTrend(entries []*Entry) (Trend, bool) {
	var (
		t        Trend
		hasFirst bool
		points   int
	)
	for _, en := range entries {
		if en == nil {
			continue
		}
		for _, p := range en.SentimentHistory {
			points++
			if !hasFirst && p.Version == VersionOriginal {
				t.First = p.Score
				hasFirst = true
			}
			t.Latest = p.Score
		}
	}
	if !hasFirst {
		return Trend{}, false
	}
	t.Points = points
	t.Improvement = t.Latest - t.First
	return t, true
}

// AverageClosedSentiment 只统计已关闭的条目
func AverageClosedSentiment(entries []*Entry) (float64, bool) {
	var sum float64
	n := 0
	for _, en := range entries {
		if en == nil || en.Status != StatusClosed {
			continue
		}
		sum += en.Sentiment
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
