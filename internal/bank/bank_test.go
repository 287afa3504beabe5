package bank

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/mindly-app/duel-engine/internal/models"
)

func addQuestions(b *Bank, subject models.Subject, difficulty models.Difficulty, texts ...string) {
	for _, text := range texts {
		b.Add(models.Question{
			Text:       text,
			Options:    []string{"a", "b", "c", "d"},
			Answer:     "a",
			Difficulty: difficulty,
			Subject:    subject,
		})
	}
}

func TestSelectExactMatch(t *testing.T) {
	b := Empty()
	addQuestions(b, models.SubjectScience, models.DifficultyEasy, "s1", "s2", "s3", "s4")
	addQuestions(b, models.SubjectHistory, models.DifficultyEasy, "h1", "h2")

	rng := rand.New(rand.NewSource(1))
	selected := b.Select(models.SubjectScience, models.DifficultyEasy, 3, rng)

	if len(selected) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(selected))
	}
	for _, q := range selected {
		if q.Subject != models.SubjectScience {
			t.Errorf("got %s question %q despite enough exact matches", q.Subject, q.Text)
		}
	}
}

func TestSelectSpillover(t *testing.T) {
	b := Empty()
	addQuestions(b, models.SubjectScience, models.DifficultyHard, "exact1", "exact2")
	addQuestions(b, models.SubjectHistory, models.DifficultyHard, "samediff1", "samediff2")
	addQuestions(b, models.SubjectGeography, models.DifficultyEasy, "rest1", "rest2")

	rng := rand.New(rand.NewSource(1))
	selected := b.Select(models.SubjectScience, models.DifficultyHard, 5, rng)

	if len(selected) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(selected))
	}

	hardCount := 0
	for _, q := range selected {
		if q.Difficulty == models.DifficultyHard {
			hardCount++
		}
	}
	// all 4 hard questions must be used before any easy one
	if hardCount != 4 {
		t.Errorf("expected all 4 hard questions selected before spillover, got %d", hardCount)
	}
}

func TestSelectNoDuplicates(t *testing.T) {
	b := Empty()
	addQuestions(b, models.SubjectScience, models.DifficultyEasy, "dup", "dup", "other")

	rng := rand.New(rand.NewSource(1))
	selected := b.Select(models.SubjectScience, models.DifficultyEasy, 3, rng)

	seen := make(map[string]bool)
	for _, q := range selected {
		if seen[q.Text] {
			t.Fatalf("duplicate question text selected: %q", q.Text)
		}
		seen[q.Text] = true
	}
	if len(selected) != 2 {
		t.Errorf("expected 2 unique questions, got %d", len(selected))
	}
}

func TestSelectShortBank(t *testing.T) {
	b := Empty()
	addQuestions(b, models.SubjectScience, models.DifficultyEasy, "only")

	rng := rand.New(rand.NewSource(1))
	selected := b.Select(models.SubjectScience, models.DifficultyEasy, 10, rng)

	if len(selected) != 1 {
		t.Errorf("expected short result of 1, got %d", len(selected))
	}
}

func TestSelectZeroCount(t *testing.T) {
	b := New()
	rng := rand.New(rand.NewSource(1))
	if got := b.Select(models.SubjectScience, models.DifficultyEasy, 0, rng); len(got) != 0 {
		t.Errorf("expected empty result for count 0, got %d", len(got))
	}
}

func TestDefaultsValid(t *testing.T) {
	b := New()
	if b.Size() == 0 {
		t.Fatal("default bank is empty")
	}

	for _, q := range b.questions {
		if err := validate(&q); err != nil {
			t.Errorf("default question %q invalid: %v", q.Text, err)
		}
	}
}

func TestDefaultsCoverAllSubjectsAndDifficulties(t *testing.T) {
	b := New()

	rng := rand.New(rand.NewSource(9))
	for _, subject := range models.Subjects() {
		for _, difficulty := range models.Difficulties() {
			selected := b.Select(subject, difficulty, 2, rng)
			if len(selected) < 2 {
				t.Errorf("bank cannot cover 2 questions for %s/%s", subject, difficulty)
			}
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pack.yaml")

	content := `questions:
  - question: "What is the boiling point of water at sea level?"
    options: ["90C", "100C", "110C", "120C"]
    answer: "100C"
    difficulty: "easy"
    subject: "Science"
  - question: ""
    options: ["a", "b"]
    answer: "a"
    difficulty: "easy"
    subject: "Science"
  - question: "Answer missing from options"
    options: ["a", "b"]
    answer: "z"
    difficulty: "easy"
    subject: "Science"
  - question: "Bad difficulty"
    options: ["a", "b"]
    answer: "a"
    difficulty: "impossible"
    subject: "Science"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	b := Empty()
	if err := b.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	// only the first entry is valid
	if b.Size() != 1 {
		t.Fatalf("expected 1 valid question loaded, got %d", b.Size())
	}
}

func TestLoadFromFileBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("questions: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := Empty()
	if err := b.LoadFromFile(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadFromDirSkipsBrokenPacks(t *testing.T) {
	dir := t.TempDir()

	good := `questions:
  - question: "2 + 2?"
    options: ["3", "4", "5", "6"]
    answer: "4"
    difficulty: "easy"
    subject: "Mathematics"
`
	if err := os.WriteFile(filepath.Join(dir, "good.yaml"), []byte(good), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.yml"), []byte(":::"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := Empty()
	if err := b.LoadFromDir(dir); err != nil {
		t.Fatalf("LoadFromDir failed: %v", err)
	}
	if b.Size() != 1 {
		t.Errorf("expected 1 question from good pack, got %d", b.Size())
	}
}
