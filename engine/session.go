package engine

import (
	"fmt"
	"slices"
)

// SessionInfo tracks per-card outcomes for the pass currently in progress.
// CorrectCards and IncorrectCards are disjoint sets of card indices; the
// counters always equal the respective set sizes. CurrentIndex is the index
// of the card currently drawn, or -1 before the first draw.
type SessionInfo struct {
	Correct        int   `json:"correct"`
	Incorrect      int   `json:"incorrect"`
	CorrectCards   []int `json:"correctCards"`
	IncorrectCards []int `json:"incorrectCards"`
	CurrentIndex   int   `json:"currentIndex"`
}

// NewSessionInfo returns the zero session: no outcomes, nothing drawn.
func NewSessionInfo() SessionInfo {
	return SessionInfo{
		CorrectCards:   []int{},
		IncorrectCards: []int{},
		CurrentIndex:   -1,
	}
}

// Answered reports whether the card at index has an outcome recorded.
func (s SessionInfo) Answered(index int) bool {
	return slices.Contains(s.CorrectCards, index) || slices.Contains(s.IncorrectCards, index)
}

func (s SessionInfo) clone() SessionInfo {
	out := s
	out.CorrectCards = append([]int{}, s.CorrectCards...)
	out.IncorrectCards = append([]int{}, s.IncorrectCards...)
	return out
}

// validate checks the SessionInfo invariants against a deck of the given size.
func (s SessionInfo) validate(deckLen int) error {
	if s.Correct < 0 || s.Incorrect < 0 {
		return fmt.Errorf("%w: negative counter", ErrBadSessionInfo)
	}
	if s.Correct != len(s.CorrectCards) || s.Incorrect != len(s.IncorrectCards) {
		return fmt.Errorf("%w: counter does not match set size", ErrBadSessionInfo)
	}
	if s.CurrentIndex < -1 || s.CurrentIndex >= deckLen {
		return fmt.Errorf("%w: current index %d out of range", ErrBadSessionInfo, s.CurrentIndex)
	}
	for _, i := range s.CorrectCards {
		if i < 0 || i >= deckLen {
			return fmt.Errorf("%w: correct index %d out of range", ErrBadSessionInfo, i)
		}
		if slices.Contains(s.IncorrectCards, i) {
			return fmt.Errorf("%w: index %d in both outcome sets", ErrBadSessionInfo, i)
		}
	}
	for _, i := range s.IncorrectCards {
		if i < 0 || i >= deckLen {
			return fmt.Errorf("%w: incorrect index %d out of range", ErrBadSessionInfo, i)
		}
	}
	return nil
}
