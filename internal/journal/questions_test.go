package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeQuestionSet(t *testing.T) {
	t.Run("array is pending", func(t *testing.T) {
		qs, err := DecodeQuestionSet([]byte(`[{"question":"Why?","inputType":2}]`))
		require.NoError(t, err)
		assert.Equal(t, PendingQuestions{{Question: "Why?", InputType: 2}}, qs)
		assert.True(t, HasPending(qs))
	})

	t.Run("object is answered", func(t *testing.T) {
		qs, err := DecodeQuestionSet([]byte(` {"Why?":"because"}`))
		require.NoError(t, err)
		assert.Equal(t, AnsweredQuestions{"Why?": "because"}, qs)
		assert.False(t, HasPending(qs))
	})

	t.Run("empty and null", func(t *testing.T) {
		for _, raw := range []string{"", "null", "  "} {
			qs, err := DecodeQuestionSet([]byte(raw))
			require.NoError(t, err)
			assert.Nil(t, qs)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := DecodeQuestionSet([]byte(`"just a string"`))
		assert.Error(t, err)
		_, err = DecodeQuestionSet([]byte(`[{"question":`))
		assert.Error(t, err)
	})
}

func TestEncodeQuestionSet(t *testing.T) {
	raw, err := EncodeQuestionSet(PendingQuestions{{Question: "Q", InputType: 1}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"question":"Q","inputType":1}]`, string(raw))

	raw, err = EncodeQuestionSet(AnsweredQuestions{"Q": "A"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Q":"A"}`, string(raw))

	raw, err = EncodeQuestionSet(nil)
	require.NoError(t, err)
	assert.Nil(t, raw)

	raw, err = EncodeQuestionSet(PendingQuestions(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestHasPendingEmptyList(t *testing.T) {
	assert.False(t, HasPending(PendingQuestions{}))
	assert.False(t, HasPending(nil))
}
