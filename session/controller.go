package session

import (
	"errors"
	"strings"

	"github.com/lowrimor/cardtrain/engine"
	"github.com/lowrimor/cardtrain/logger"
	"github.com/lowrimor/cardtrain/settings"
)

// State is the controller's position in the draw/answer loop.
type State int

const (
	StateIdle State = iota
	StatePresenting
	StateChecked
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePresenting:
		return "presenting"
	case StateChecked:
		return "checked"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Mode distinguishes a normal pass from a retry pass over previously missed
// cards. The retry queue only exists in ModeRetry; an empty queue in
// ModeNormal is not ambiguous with an exhausted retry.
type Mode int

const (
	ModeNormal Mode = iota
	ModeRetry
)

// DeckEngine is the card-selection and scoring collaborator the controller
// drives. The concrete implementation lives in the engine package; the
// controller only depends on this surface.
type DeckEngine interface {
	OpenDeck(name string) error
	DeckLength() int
	DrawNext() *engine.DrawnCard
	Draw(index int) *engine.DrawnCard
	CheckAnswer(text string) (engine.CheckResult, error)
	RevealAnswer() ([]string, int, error)
	Shuffle()
	FlipDeck()
	Flipped() bool
	SessionInfo() engine.SessionInfo
	SetSessionInfo(engine.SessionInfo) error
}

// Controller owns the retry queue and drives the draw → present → answer →
// advance loop for one training session at a time. Progress is written
// through to the settings store before every draw, so a reload loses at most
// the card currently in flight.
type Controller struct {
	engine   DeckEngine
	store    *settings.Store
	renderer Renderer
	log      *logger.Logger

	deckID string
	state  State
	mode   Mode

	retryQueue []int
	retryTotal int

	awaitingReport bool
}

func NewController(eng DeckEngine, store *settings.Store, renderer Renderer, log *logger.Logger) *Controller {
	return &Controller{
		engine:   eng,
		store:    store,
		renderer: renderer,
		log:      log,
		state:    StateIdle,
	}
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) DeckID() string { return c.deckID }

// StartSession opens the deck, applies the persisted question-side
// preference, restores a resumable session snapshot when one exists, clears
// the retry queue and draws the first card.
func (c *Controller) StartSession(deckID string) error {
	ds, err := c.store.Get(deckID)
	if errors.Is(err, settings.ErrNotFound) {
		ds = settings.Defaults()
		if err := c.store.Put(deckID, ds); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	if err := c.engine.OpenDeck(deckID); err != nil {
		return err
	}
	c.deckID = deckID

	if (ds.QSide == settings.SideTwo) != c.engine.Flipped() {
		c.engine.FlipDeck()
	}

	if ds.State != nil {
		if err := c.engine.SetSessionInfo(*ds.State); err != nil {
			c.log.Warn("ignoring unusable session snapshot", "deck", deckID, "error", err)
			if err := c.store.Update(deckID, func(s *settings.DeckSettings) { s.State = nil }); err != nil {
				return err
			}
		}
	}

	c.mode = ModeNormal
	c.retryQueue = nil
	c.retryTotal = 0
	c.awaitingReport = false
	c.state = StateIdle
	c.renderer.ResetSessionChrome()
	return c.DrawNext()
}

// DrawNext advances to the next card: the head of the retry queue during a
// retry pass, otherwise the engine's own order. Progress is persisted before
// the draw. A nil card means the pass is exhausted and the score is shown.
func (c *Controller) DrawNext() error {
	if c.state == StatePresenting || c.state == StateExhausted {
		c.log.Warn("draw rejected", "deck", c.deckID, "state", c.state.String())
		return nil
	}

	if err := c.persistProgress(); err != nil {
		return err
	}

	var card *engine.DrawnCard
	if c.mode == ModeRetry {
		if len(c.retryQueue) > 0 {
			idx := c.retryQueue[0]
			c.retryQueue = c.retryQueue[1:]
			card = c.engine.Draw(idx)
		}
	} else {
		card = c.engine.DrawNext()
	}

	if card == nil {
		return c.finishPass()
	}

	c.state = StatePresenting
	c.awaitingReport = false
	c.renderer.ShowQuestion(card.Question[0], card.Difficulty, false)
	c.showProgress()
	return nil
}

// SubmitAnswer handles a submission for the card being presented. With
// autocheck on, the engine judges the trimmed input and the outcome is final;
// with autocheck off, the answer is only revealed and judgement waits for
// ReportOutcome.
func (c *Controller) SubmitAnswer(rawInput string) error {
	if c.state != StatePresenting {
		c.log.Warn("answer rejected", "deck", c.deckID, "state", c.state.String())
		return nil
	}

	ds, err := c.store.Get(c.deckID)
	if err != nil {
		return err
	}

	if ds.Autocheck {
		res, err := c.engine.CheckAnswer(strings.TrimSpace(rawInput))
		if err != nil {
			return err
		}
		c.state = StateChecked
		outcome := res.Outcome
		c.renderer.ShowAnswer(limitAnswers(res.Answers, ds.FirstAnswer), res.NewDifficulty, &outcome)
		if err := c.persistProgress(); err != nil {
			return err
		}
		c.showProgress()
		return nil
	}

	answers, difficulty, err := c.engine.RevealAnswer()
	if err != nil {
		return err
	}
	c.state = StateChecked
	c.awaitingReport = true
	c.renderer.ShowAnswer(limitAnswers(answers, ds.FirstAnswer), difficulty, nil)
	c.showProgress()
	return nil
}

// ReportOutcome records a manual-mode self-report. A correct report submits
// the card's primary accepted answer to the engine's check; an incorrect one
// submits the empty string, which never matches. The answer list is queried
// at report time so an orientation flip between reveal and report still
// scores against the side currently being asked. Either way the loop
// advances directly to the next card.
func (c *Controller) ReportOutcome(correct bool) error {
	if c.state != StateChecked || !c.awaitingReport {
		c.log.Warn("report rejected", "deck", c.deckID, "state", c.state.String())
		return nil
	}

	submission := ""
	if correct {
		answers, _, err := c.engine.RevealAnswer()
		if err != nil {
			return err
		}
		if len(answers) > 0 {
			submission = answers[0]
		}
	}
	if _, err := c.engine.CheckAnswer(submission); err != nil {
		return err
	}
	c.awaitingReport = false
	return c.DrawNext()
}

// Retry starts a second pass scoped to the cards missed in the pass that just
// finished, in the order they were recorded. Engine-side counters reset; the
// retry pass keeps its own bookkeeping.
func (c *Controller) Retry() error {
	if c.state != StateExhausted {
		c.log.Warn("retry rejected", "deck", c.deckID, "state", c.state.String())
		return nil
	}
	info := c.engine.SessionInfo()
	if info.Incorrect == 0 {
		c.log.Warn("retry rejected: nothing to retry", "deck", c.deckID)
		return nil
	}

	queue := append([]int{}, info.IncorrectCards...)
	c.renderer.ResetSessionChrome()
	if err := c.engine.OpenDeck(c.deckID); err != nil {
		return err
	}
	if err := c.applyOrientation(); err != nil {
		return err
	}
	c.mode = ModeRetry
	c.retryQueue = queue
	c.retryTotal = len(queue)
	c.awaitingReport = false
	c.state = StateIdle
	return c.DrawNext()
}

// Shuffle discards any retry pass, reshuffles the deck and restarts the loop.
// Valid from any state.
func (c *Controller) Shuffle() error {
	if c.deckID == "" {
		c.log.Warn("shuffle rejected: no session")
		return nil
	}
	c.mode = ModeNormal
	c.retryQueue = nil
	c.retryTotal = 0
	c.awaitingReport = false
	c.renderer.ResetSessionChrome()
	c.engine.Shuffle()
	c.state = StateIdle
	return c.DrawNext()
}

// ToggleQuestionSide flips the presentation orientation, persists the new
// preference and re-presents the current card's new question face. This is
// the one operation that re-presents without drawing; no counters move and
// the position does not advance.
func (c *Controller) ToggleQuestionSide() error {
	if c.deckID == "" {
		c.log.Warn("toggle rejected: no session")
		return nil
	}

	c.engine.FlipDeck()
	newSide := settings.SideOne
	if c.engine.Flipped() {
		newSide = settings.SideTwo
	}
	if err := c.store.Update(c.deckID, func(s *settings.DeckSettings) { s.QSide = newSide }); err != nil {
		return err
	}

	if c.state == StatePresenting || c.state == StateChecked {
		if card := c.engine.Draw(c.engine.SessionInfo().CurrentIndex); card != nil {
			c.renderer.ShowQuestion(card.Question[0], card.Difficulty, true)
		}
	}
	return nil
}

// finishPass transitions to Exhausted, clears the persisted snapshot (a
// finished pass is not resumable) and shows the score.
func (c *Controller) finishPass() error {
	c.state = StateExhausted
	if err := c.store.Update(c.deckID, func(s *settings.DeckSettings) { s.State = nil }); err != nil {
		return err
	}
	info := c.engine.SessionInfo()
	c.renderer.ShowScore(info.Correct, info.Correct+info.Incorrect, info.Incorrect > 0)
	return nil
}

func (c *Controller) persistProgress() error {
	info := c.engine.SessionInfo()
	return c.store.Update(c.deckID, func(s *settings.DeckSettings) {
		s.State = &info
	})
}

func (c *Controller) applyOrientation() error {
	ds, err := c.store.Get(c.deckID)
	if err != nil {
		return err
	}
	if (ds.QSide == settings.SideTwo) != c.engine.Flipped() {
		c.engine.FlipDeck()
	}
	return nil
}

func (c *Controller) showProgress() {
	expected := c.engine.DeckLength()
	if c.mode == ModeRetry {
		expected = c.retryTotal
	}
	c.renderer.ShowProgress(ProgressView(c.engine.SessionInfo(), c.engine.DeckLength(), expected))
}

func limitAnswers(answers []string, firstOnly bool) []string {
	if firstOnly && len(answers) > 1 {
		return answers[:1]
	}
	return answers
}
