package quiz

import (
	"testing"

	"github.com/mindly-app/duel-engine/internal/models"
)

func TestScoreWeights(t *testing.T) {
	expected := map[models.Difficulty]int{
		models.DifficultyEasy:     10,
		models.DifficultyMedium:   20,
		models.DifficultyHard:     30,
		models.DifficultyVeryHard: 40,
	}

	for d, want := range expected {
		if got := Score(d); got != want {
			t.Errorf("Score(%s) = %d, want %d", d, got, want)
		}
	}
}

func TestScoreStrictlyIncreasing(t *testing.T) {
	prev := 0
	for _, d := range models.Difficulties() {
		got := Score(d)
		if got <= prev {
			t.Errorf("Score(%s) = %d, not greater than %d", d, got, prev)
		}
		prev = got
	}
}

func TestScoreIdempotent(t *testing.T) {
	for _, d := range models.Difficulties() {
		if Score(d) != Score(d) {
			t.Errorf("Score(%s) changed between calls", d)
		}
	}
}

func TestScoreUnknownDifficulty(t *testing.T) {
	if got := Score(models.Difficulty("impossible")); got != 0 {
		t.Errorf("Score(impossible) = %d, want 0", got)
	}
}
