package quiz

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/mindly-app/duel-engine/internal/models"
)

// Source fetches questions from a remote provider. Implementations absorb
// their own failures: a source that cannot deliver returns an empty slice
// and a nil error.
type Source interface {
	Fetch(ctx context.Context, subject models.Subject, difficulty models.Difficulty, amount int) ([]models.Question, error)
}

// Fallback supplies locally stored questions when the remote source comes
// up short. Satisfied by *bank.Bank.
type Fallback interface {
	Select(subject models.Subject, difficulty models.Difficulty, count int, rng *rand.Rand) []models.Question
}

// Assembler merges remote and fallback questions into fixed-size question
// sets. The caller always receives as many questions as the fallback bank
// can guarantee, regardless of network conditions.
type Assembler struct {
	source Source
	bank   Fallback
	rng    *rand.Rand
}

// NewAssembler creates an Assembler. A nil rng gets a time-seeded default.
func NewAssembler(source Source, b Fallback, rng *rand.Rand) *Assembler {
	if rng == nil {
		rng = NewRand()
	}
	return &Assembler{
		source: source,
		bank:   b,
		rng:    rng,
	}
}

// Questions returns count questions for the subject and difficulty: remote
// questions first, fallback bank questions for any shortfall (deduplicated
// by question text), shuffled. The result is short only when the bank itself
// holds fewer than count questions in total.
func (a *Assembler) Questions(ctx context.Context, subject models.Subject, difficulty models.Difficulty, count int) []models.Question {
	questions := a.assemble(ctx, subject, difficulty, count, make(map[string]bool))
	Shuffle(questions, a.rng)
	return questions
}

// DuelQuestions returns the fixed 15-question duel set for a subject:
// 6 easy, 5 medium, 4 hard. The dedup set spans all three tiers so a
// question text never appears twice in one duel.
func (a *Assembler) DuelQuestions(ctx context.Context, subject models.Subject) []models.Question {
	distribution := []struct {
		difficulty models.Difficulty
		count      int
	}{
		{models.DifficultyEasy, 6},
		{models.DifficultyMedium, 5},
		{models.DifficultyHard, 4},
	}

	seen := make(map[string]bool)
	var questions []models.Question
	for _, d := range distribution {
		questions = append(questions, a.assemble(ctx, subject, d.difficulty, d.count, seen)...)
	}

	Shuffle(questions, a.rng)
	return questions
}

// assemble fills count questions for one subject and difficulty, skipping
// texts already in seen and recording the texts it picks.
func (a *Assembler) assemble(ctx context.Context, subject models.Subject, difficulty models.Difficulty, count int, seen map[string]bool) []models.Question {
	questions := make([]models.Question, 0, count)

	for _, q := range a.fromSource(ctx, subject, difficulty, count) {
		if len(questions) >= count || seen[q.Text] {
			continue
		}
		seen[q.Text] = true
		questions = append(questions, q)
	}

	if len(questions) < count {
		// Overfetch so texts already taken by earlier tiers do not starve
		// this one.
		for _, q := range a.bank.Select(subject, difficulty, count+len(seen), a.rng) {
			if len(questions) >= count {
				break
			}
			if seen[q.Text] {
				continue
			}
			seen[q.Text] = true
			questions = append(questions, q)
		}
	}

	return questions
}

func (a *Assembler) fromSource(ctx context.Context, subject models.Subject, difficulty models.Difficulty, count int) []models.Question {
	if a.source == nil {
		return nil
	}

	questions, err := a.source.Fetch(ctx, subject, difficulty, count)
	if err != nil {
		slog.Warn("question source failed, using fallback bank",
			"subject", subject,
			"difficulty", difficulty,
			"error", err,
		)
		return nil
	}

	if len(questions) > count {
		questions = questions[:count]
	}
	return questions
}
