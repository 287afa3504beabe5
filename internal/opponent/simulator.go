package opponent

import (
	"math/rand"
	"time"

	"github.com/mindly-app/duel-engine/internal/models"
	"github.com/mindly-app/duel-engine/internal/quiz"
)

// Personality is a named accuracy profile for a simulated opponent: the
// probability it answers a question of each difficulty correctly, plus a
// canned response-style phrase. Static configuration, never mutated.
type Personality struct {
	Name       string                        `json:"name"`
	Phrase     string                        `json:"phrase"`
	Difficulty models.Difficulty             `json:"difficulty"`
	Accuracy   map[models.Difficulty]float64 `json:"accuracy"`
}

const (
	correctSuffix = " I got it right!"
	wrongSuffix   = " I think I made an error here."
)

// personalities holds one profile per selectable AI difficulty
var personalities = map[models.Difficulty]Personality{
	models.DifficultyEasy: {
		Name:       "Rookie Robo",
		Phrase:     "Hmm, let me take a guess...",
		Difficulty: models.DifficultyEasy,
		Accuracy: map[models.Difficulty]float64{
			models.DifficultyEasy:     0.50,
			models.DifficultyMedium:   0.35,
			models.DifficultyHard:     0.25,
			models.DifficultyVeryHard: 0.15,
		},
	},
	models.DifficultyMedium: {
		Name:       "Scholar Sam",
		Phrase:     "I studied this one recently.",
		Difficulty: models.DifficultyMedium,
		Accuracy: map[models.Difficulty]float64{
			models.DifficultyEasy:     0.70,
			models.DifficultyMedium:   0.60,
			models.DifficultyHard:     0.45,
			models.DifficultyVeryHard: 0.30,
		},
	},
	models.DifficultyHard: {
		Name:       "Professor Pixel",
		Phrase:     "Elementary, of course.",
		Difficulty: models.DifficultyHard,
		Accuracy: map[models.Difficulty]float64{
			models.DifficultyEasy:     0.90,
			models.DifficultyMedium:   0.80,
			models.DifficultyHard:     0.70,
			models.DifficultyVeryHard: 0.55,
		},
	},
}

// Personalities returns all selectable opponent profiles
func Personalities() []Personality {
	result := make([]Personality, 0, len(personalities))
	for _, d := range models.Difficulties() {
		if p, ok := personalities[d]; ok {
			result = append(result, p)
		}
	}
	return result
}

// Get returns the personality for an AI difficulty, falling back to the
// medium profile for unmapped values.
func Get(difficulty models.Difficulty) Personality {
	if p, ok := personalities[difficulty]; ok {
		return p
	}
	return personalities[models.DifficultyMedium]
}

// Response is the simulated opponent's turn for one question
type Response struct {
	Answer      string
	Correct     bool
	Explanation string
	ThinkTime   time.Duration
}

// Simulator produces synthetic answers standing in for a human competitor.
// Pure function of its inputs plus the random draw; no side effects.
type Simulator struct {
	rng *rand.Rand
}

// NewSimulator creates a Simulator. A nil rng gets a time-seeded default.
func NewSimulator(rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = quiz.NewRand()
	}
	return &Simulator{rng: rng}
}

// Answer simulates the opponent answering a question. One uniform draw
// against the personality's accuracy for the question's difficulty decides
// the branch: the correct answer, or a uniformly random incorrect option.
func (s *Simulator) Answer(q *models.Question, aiDifficulty models.Difficulty) Response {
	return s.AnswerAs(q, Get(aiDifficulty))
}

// AnswerAs simulates the opponent answering with an explicit personality.
// Callers needing deterministic behavior pass a profile with accuracy 0 or 1.
func (s *Simulator) AnswerAs(q *models.Question, p Personality) Response {
	accuracy := p.Accuracy[q.Difficulty]

	think := time.Second + time.Duration(s.rng.Intn(2000))*time.Millisecond

	if s.rng.Float64() < accuracy {
		return Response{
			Answer:      q.Answer,
			Correct:     true,
			Explanation: p.Phrase + correctSuffix,
			ThinkTime:   think,
		}
	}

	wrong := make([]string, 0, len(q.Options))
	for _, opt := range q.Options {
		if opt != q.Answer {
			wrong = append(wrong, opt)
		}
	}

	// A single-option question leaves no wrong answer to pick
	if len(wrong) == 0 {
		return Response{
			Answer:      q.Answer,
			Correct:     true,
			Explanation: p.Phrase + correctSuffix,
			ThinkTime:   think,
		}
	}

	return Response{
		Answer:      wrong[s.rng.Intn(len(wrong))],
		Correct:     false,
		Explanation: p.Phrase + wrongSuffix,
		ThinkTime:   think,
	}
}
