package aitext

import (
	"testing"

	"daybook-backend/internal/journal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripThink(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"plain", "hello", "hello"},
		{"think block", "<think>let me see\nhmm</think>\n{\"a\":1}", `{"a":1}`},
		{"unclosed think", "answer<think>rambling", "answer"},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"think and fence", "<think>x</think>```\n[1]\n```", "[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripThink(tt.in))
		})
	}
}

func TestParseSummary(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		sum := ParseSummary(`<think>ok</think>{"title":"Calm","summary":"A calm day","tags":["#rest","rest","walk"],"negativePhrases":[{"negative":"I failed","suggested":"I learned"}],"positivity":72}`)
		assert.Equal(t, "Calm", sum.Title)
		assert.Equal(t, []string{"rest", "walk"}, sum.Tags)
		assert.Equal(t, []journal.NegativePhrase{{Negative: "I failed", Suggested: "I learned"}}, sum.NegativePhrases)
		assert.Equal(t, 72.0, sum.Positivity)
		assert.True(t, sum.Scored)
	})

	t.Run("json wrapped in prose", func(t *testing.T) {
		sum := ParseSummary(`Here you go: {"title":"T","positivity":180} hope it helps`)
		assert.Equal(t, "T", sum.Title)
		assert.Equal(t, 100.0, sum.Positivity)
	})

	t.Run("plain text", func(t *testing.T) {
		sum := ParseSummary("You had a busy but rewarding day.")
		assert.Equal(t, "You had a busy but rewarding day.", sum.Summary)
		assert.False(t, sum.Scored)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, Fallback(), ParseSummary("  <think>nothing</think> "))
		assert.Equal(t, FallbackSummary, ParseSummary("").Summary)
	})
}

func TestDecodeSummaryUnparseable(t *testing.T) {
	_, err := DecodeSummary("not json")
	assert.ErrorIs(t, err, ErrUnparseable)
	_, err = DecodeSummary(`{"other":1}`)
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestDecodeQuestions(t *testing.T) {
	qs, err := DecodeQuestions(`[{"question":"How did you sleep?","inputType":1},{"question":" "}]`)
	require.NoError(t, err)
	assert.Equal(t, []journal.Question{{Question: "How did you sleep?", InputType: 1}}, qs)

	qs, err = DecodeQuestions("```json\n{\"questions\":[{\"question\":\"Q1\"}]}\n```")
	require.NoError(t, err)
	assert.Equal(t, "Q1", qs[0].Question)

	qs, err = DecodeQuestions(`Sure! ["One?", "Two?"]`)
	require.NoError(t, err)
	assert.Len(t, qs, 2)

	_, err = DecodeQuestions("no list here")
	assert.ErrorIs(t, err, ErrUnparseable)
	_, err = DecodeQuestions("[]")
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestDecodeTags(t *testing.T) {
	tags, err := DecodeTags(`["Work", "work", " family "]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Work", "family"}, tags)

	tags, err = DecodeTags(`{"tags":["a"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, tags)

	_, err = DecodeTags("a, b")
	assert.ErrorIs(t, err, ErrUnparseable)
}
