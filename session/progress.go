package session

import (
	"slices"

	"github.com/lowrimor/cardtrain/engine"
)

// Tag is one slot of the progress bar.
type Tag string

const (
	TagCorrect    Tag = "correct"
	TagIncorrect  Tag = "incorrect"
	TagIncomplete Tag = "incomplete"
)

// ProgressView builds the ordered per-card status tags for the progress bar.
// Answered cards appear first, in index order; the remaining slots are filled
// with incomplete up to expectedTotal. During a normal pass expectedTotal is
// the deck length; during a retry pass it is the retry queue's original size.
func ProgressView(info engine.SessionInfo, totalCards, expectedTotal int) []Tag {
	tags := make([]Tag, 0, expectedTotal)
	for i := 0; i < totalCards; i++ {
		switch {
		case slices.Contains(info.CorrectCards, i):
			tags = append(tags, TagCorrect)
		case slices.Contains(info.IncorrectCards, i):
			tags = append(tags, TagIncorrect)
		}
	}
	remaining := expectedTotal - (info.Correct + info.Incorrect)
	for i := 0; i < remaining; i++ {
		tags = append(tags, TagIncomplete)
	}
	return tags
}
