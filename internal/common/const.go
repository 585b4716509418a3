package common

// 日记 AI 提示词，%s 依次为用户偏好、正文等
const (
	RolePrompt = "You are a warm, concise journaling companion. You help the user plan their day in the morning and reflect on it in the evening. Never diagnose; stay encouraging and practical."

	MorningQuestionsPrompt = `The user wrote this morning journal entry:
%s

Ask at most 3 short follow-up questions that help them plan the day.
Respond ONLY with a JSON array: [{"question": "...", "inputType": 0}]
inputType is 0 for free text and 1 for a 1-10 scale.`

	MorningSummaryPrompt = `Morning journal:
%s

Answers to follow-up questions:
%s

Summarize the user's plan for today.
Respond ONLY with JSON: {"title": "...", "summary": "...", "positivity": 0-100, "negativePhrases": [{"negative": "...", "suggested": "..."}]}`

	EveningQuestionsPrompt = `This morning the user planned:
%s

Tonight they wrote:
%s

Ask at most 3 short questions comparing how the day went against the plan.
Respond ONLY with a JSON array: [{"question": "...", "inputType": 0}]`

	EveningSummaryPrompt = `Morning journal:
%s

Evening journal:
%s

Answers to evening questions:
%s

Write the summary of the whole day.
Respond ONLY with JSON: {"title": "...", "summary": "...", "positivity": 0-100, "negativePhrases": [{"negative": "...", "suggested": "..."}]}`

	TagsPrompt = `Give up to 5 short topic tags for this journal entry:
%s

Respond ONLY with a JSON array of strings.`

	ReframePrompt = `The user's day was summarized as:
%s

They flagged these negative thoughts:
%s

They reframed them as:
%s

Update the day summary to reflect the reframed perspective.
Respond ONLY with JSON: {"title": "...", "summary": "...", "positivity": 0-100, "negativePhrases": []}`

	AskSystemPrompt = `You answer questions about the user's own journal. Use only the notes below, cite dates when helpful, and say so when the notes do not cover the question.

Notes:
%s`

	PreferencePrompt = "User preference for tone: %s"
)

// TodayPlaceholder 当天没有条目时首页展示
const TodayPlaceholder = "TODAY'S JOURNAL PENDING"

// AI 不可用时的兜底问题
var (
	DefaultMorningQuestions = []string{
		"What is the one thing you most want to get done today?",
		"What might get in the way, and how will you handle it?",
		"How will you take care of yourself today?",
	}
	DefaultEveningQuestions = []string{
		"How did today compare to your plan?",
		"What went better than expected?",
		"What would you do differently tomorrow?",
	}
)
