package session

// Renderer receives presentation side effects from the controller. The
// controller treats every call as fire-and-forget; no return value is
// consumed. The outcome pointer in ShowAnswer is nil when correctness is
// still undecided (manual mode, before the self-report).
type Renderer interface {
	ShowQuestion(text string, difficulty int, isFlipOnly bool)
	ShowAnswer(answers []string, difficulty int, outcome *bool)
	ShowProgress(tags []Tag)
	ShowScore(correct, total int, hasIncorrect bool)
	ResetSessionChrome()
}
