package journal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// QuestionSet 问题集合，只有两种形态：待回答的问题列表，或问题到答案的映射。
// 存储层读出时解析一次，其余代码只做类型判断。
type QuestionSet interface {
	isQuestionSet()
}

// PendingQuestions 待回答
type PendingQuestions []Question

// AnsweredQuestions 已回答，key 为问题原文
type AnsweredQuestions map[string]string

func (PendingQuestions) isQuestionSet()  {}
func (AnsweredQuestions) isQuestionSet() {}

// DecodeQuestionSet JSON 数组为待回答，JSON 对象为已回答，空值返回 nil
func DecodeQuestionSet(raw []byte) (QuestionSet, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	switch raw[0] {
	case '[':
		var qs PendingQuestions
		if err := json.Unmarshal(raw, &qs); err != nil {
			return nil, fmt.Errorf("decode pending questions: %w", err)
		}
		return qs, nil
	case '{':
		var ans AnsweredQuestions
		if err := json.Unmarshal(raw, &ans); err != nil {
			return nil, fmt.Errorf("decode answers: %w", err)
		}
		return ans, nil
	}
	return nil, fmt.Errorf("decode question set: unexpected %q", raw[0])
}

// EncodeQuestionSet nil 编码为 nil
func EncodeQuestionSet(qs QuestionSet) ([]byte, error) {
	switch v := qs.(type) {
	case nil:
		return nil, nil
	case PendingQuestions:
		if v == nil {
			v = PendingQuestions{}
		}
		return json.Marshal([]Question(v))
	case AnsweredQuestions:
		if v == nil {
			v = AnsweredQuestions{}
		}
		return json.Marshal(map[string]string(v))
	}
	return nil, fmt.Errorf("encode question set: unknown type %T", qs)
}

// HasPending 是否还有未回答的问题
func HasPending(qs QuestionSet) bool {
	p, ok := qs.(PendingQuestions)
	return ok && len(p) > 0
}

// CheckAnswers 待回答列表中的每个问题都必须有非空答案
func CheckAnswers(qs QuestionSet, answers map[string]string) error {
	p, ok := qs.(PendingQuestions)
	if !ok || len(p) == 0 {
		if len(answers) == 0 {
			return fmt.Errorf("%w: no answers given", ErrInvalidTransition)
		}
		return nil
	}
	for _, q := range p {
		if strings.TrimSpace(answers[q.Question]) == "" {
			return fmt.Errorf("%w: question %q unanswered", ErrInvalidTransition, q.Question)
		}
	}
	return nil
}

func cloneQuestionSet(qs QuestionSet) QuestionSet {
	switch v := qs.(type) {
	case PendingQuestions:
		return append(PendingQuestions(nil), v...)
	case AnsweredQuestions:
		c := make(AnsweredQuestions, len(v))
		for k, a := range v {
			c[k] = a
		}
		return c
	}
	return nil
}
