package handlers

import (
	"github.com/lowrimor/cardtrain/session"
)

// QuestionView is the question face handed to the client.
type QuestionView struct {
	Text       string `json:"text"`
	Difficulty int    `json:"difficulty"`
	FlipOnly   bool   `json:"flipOnly"`
}

// AnswerView is the revealed answer side. Outcome is nil while correctness is
// undecided (manual mode, awaiting the self-report).
type AnswerView struct {
	Answers    []string `json:"answers"`
	Difficulty int      `json:"difficulty"`
	Outcome    *bool    `json:"outcome,omitempty"`
}

// ScoreView is the end-of-pass summary.
type ScoreView struct {
	Correct      int  `json:"correct"`
	Total        int  `json:"total"`
	HasIncorrect bool `json:"hasIncorrect"`
}

// View is one training response body: whatever the controller rendered while
// handling the request, plus its resulting state.
type View struct {
	State    string        `json:"state"`
	Question *QuestionView `json:"question,omitempty"`
	Answer   *AnswerView   `json:"answer,omitempty"`
	Progress []session.Tag `json:"progress,omitempty"`
	Score    *ScoreView    `json:"score,omitempty"`
}

// ViewRecorder implements session.Renderer by capturing render calls into a
// View. The view persists between requests and always holds the current
// screen, so an operation the controller rejects as a no-op still responds
// with whatever is on screen. ResetSessionChrome clears it at session
// boundaries.
type ViewRecorder struct {
	view View
}

func (v *ViewRecorder) View() View {
	return v.view
}

func (v *ViewRecorder) ShowQuestion(text string, difficulty int, isFlipOnly bool) {
	v.view.Question = &QuestionView{Text: text, Difficulty: difficulty, FlipOnly: isFlipOnly}
	v.view.Answer = nil
	v.view.Score = nil
}

func (v *ViewRecorder) ShowAnswer(answers []string, difficulty int, outcome *bool) {
	v.view.Answer = &AnswerView{Answers: answers, Difficulty: difficulty, Outcome: outcome}
}

func (v *ViewRecorder) ShowProgress(tags []session.Tag) {
	v.view.Progress = tags
}

func (v *ViewRecorder) ShowScore(correct, total int, hasIncorrect bool) {
	v.view.Score = &ScoreView{Correct: correct, Total: total, HasIncorrect: hasIncorrect}
	v.view.Question = nil
	v.view.Answer = nil
}

func (v *ViewRecorder) ResetSessionChrome() {
	v.view = View{}
}
