package bank

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mindly-app/duel-engine/internal/models"
	"github.com/mindly-app/duel-engine/internal/quiz"
)

// Bank is the always-available fallback question store. It starts with the
// embedded default set and can be extended with YAML question packs.
type Bank struct {
	mu        sync.RWMutex
	questions []models.Question
}

// New creates a Bank seeded with the embedded default questions
func New() *Bank {
	b := &Bank{}
	for _, q := range defaultQuestions() {
		b.questions = append(b.questions, q)
	}
	return b
}

// Empty creates a Bank with no questions. Used by tests that need
// substitute data.
func Empty() *Bank {
	return &Bank{}
}

type packFile struct {
	Questions []models.Question `yaml:"questions"`
}

// LoadFromDir loads all YAML question packs from a directory
func (b *Bank) LoadFromDir(dir string) error {
	slog.Info("loading question packs from directory", "dir", dir)

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}

	loaded := 0
	for _, file := range files {
		if err := b.LoadFromFile(file); err != nil {
			slog.Warn("failed to load question pack", "file", file, "error", err)
			continue
		}
		loaded++
	}

	slog.Info("question packs loaded", "count", loaded, "total_files", len(files))
	return nil
}

// LoadFromFile loads a single question pack from a YAML file
func (b *Bank) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var pack packFile
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	added := 0
	for _, q := range pack.Questions {
		if err := validate(&q); err != nil {
			slog.Warn("skipping invalid question", "file", path, "question", q.Text, "error", err)
			continue
		}
		b.Add(q)
		added++
	}

	slog.Info("question pack loaded", "file", path, "questions", added)
	return nil
}

func validate(q *models.Question) error {
	if q.Text == "" {
		return fmt.Errorf("question text is required")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("at least 2 options are required")
	}
	if !q.HasAnswer() {
		return fmt.Errorf("answer is not among the options")
	}
	if !q.Difficulty.Valid() {
		return fmt.Errorf("unknown difficulty: %s", q.Difficulty)
	}
	if !q.Subject.Valid() {
		return fmt.Errorf("unknown subject: %s", q.Subject)
	}
	return nil
}

// Add appends a question to the bank
func (b *Bank) Add(q models.Question) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.questions = append(b.questions, q)
}

// Size returns the total number of questions in the bank
func (b *Bank) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.questions)
}

// Select returns up to count questions for the subject and difficulty.
// Selection spills over in priority order: exact subject+difficulty match,
// then same difficulty in any subject, then anything left. Duplicate question
// texts are excluded and the result is shuffled. Never fails; when the bank
// holds fewer than count questions the result is simply short.
func (b *Bank) Select(subject models.Subject, difficulty models.Difficulty, count int, rng *rand.Rand) []models.Question {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if count <= 0 {
		return nil
	}

	var exact, sameDifficulty, rest []models.Question
	for _, q := range b.questions {
		switch {
		case q.Subject == subject && q.Difficulty == difficulty:
			exact = append(exact, q)
		case q.Difficulty == difficulty:
			sameDifficulty = append(sameDifficulty, q)
		default:
			rest = append(rest, q)
		}
	}

	selected := make([]models.Question, 0, count)
	seen := make(map[string]bool)
	for _, tier := range [][]models.Question{exact, sameDifficulty, rest} {
		quiz.Shuffle(tier, rng)
		for _, q := range tier {
			if len(selected) >= count {
				break
			}
			if seen[q.Text] {
				continue
			}
			seen[q.Text] = true
			selected = append(selected, q)
		}
	}

	quiz.Shuffle(selected, rng)
	return selected
}
