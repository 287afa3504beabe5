package quiz

import (
	"github.com/mindly-app/duel-engine/internal/models"
)

// Score returns the point value awarded for correctly answering a question
// of the given difficulty. Pure lookup, no state.
func Score(d models.Difficulty) int {
	return d.Points()
}
