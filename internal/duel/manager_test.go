package duel

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/mindly-app/duel-engine/internal/config"
	"github.com/mindly-app/duel-engine/internal/models"
	"github.com/mindly-app/duel-engine/internal/opponent"
	"github.com/mindly-app/duel-engine/internal/quiz"
)

// fakeBank hands out as many synthetic questions as asked, each with the
// correct answer at option "right".
type fakeBank struct {
	limit int
}

func (b *fakeBank) Select(subject models.Subject, difficulty models.Difficulty, count int, rng *rand.Rand) []models.Question {
	if b.limit > 0 && count > b.limit {
		count = b.limit
	}
	questions := make([]models.Question, 0, count)
	for i := 0; i < count; i++ {
		questions = append(questions, models.Question{
			Text:       string(difficulty) + " question " + string(rune('A'+i)),
			Options:    []string{"right", "wrong-1", "wrong-2", "wrong-3"},
			Answer:     "right",
			Difficulty: difficulty,
			Subject:    subject,
		})
	}
	return questions
}

func newTestManager(t *testing.T, bankLimit int) *MemoryManager {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	assembler := quiz.NewAssembler(nil, &fakeBank{limit: bankLimit}, rng)
	simulator := opponent.NewSimulator(rand.New(rand.NewSource(2)))
	cfg := config.DuelConfig{
		QuestionCount: 15,
		TTL:           30 * time.Minute,
	}
	return NewManager(cfg, assembler, simulator, nil)
}

func TestCreateStandardDuel(t *testing.T) {
	m := newTestManager(t, 0)

	d, err := m.Create(context.Background(), models.CreateDuelRequest{
		UserID:  "user-1",
		Subject: models.SubjectScience,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if d.ID == "" {
		t.Error("duel has no ID")
	}
	if d.Status != models.DuelInProgress {
		t.Errorf("status = %s, want in_progress", d.Status)
	}
	if len(d.Questions) != 15 {
		t.Errorf("expected 15 questions, got %d", len(d.Questions))
	}
	if d.Opponent != models.DifficultyMedium {
		t.Errorf("default opponent = %s, want medium", d.Opponent)
	}

	counts := make(map[models.Difficulty]int)
	for _, q := range d.Questions {
		counts[q.Difficulty]++
	}
	if counts[models.DifficultyEasy] != 6 || counts[models.DifficultyMedium] != 5 || counts[models.DifficultyHard] != 4 {
		t.Errorf("distribution off: %v", counts)
	}
}

func TestCreateValidation(t *testing.T) {
	m := newTestManager(t, 0)
	ctx := context.Background()

	cases := []struct {
		name string
		req  models.CreateDuelRequest
	}{
		{"missing user", models.CreateDuelRequest{Subject: models.SubjectScience}},
		{"bad subject", models.CreateDuelRequest{UserID: "u", Subject: "Alchemy"}},
		{"bad difficulty", models.CreateDuelRequest{UserID: "u", Subject: models.SubjectScience, Difficulty: "brutal"}},
		{"bad opponent", models.CreateDuelRequest{UserID: "u", Subject: models.SubjectScience, Opponent: "brutal"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := m.Create(ctx, tc.req); !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestCreateNotEnoughQuestions(t *testing.T) {
	m := newTestManager(t, 2)

	_, err := m.Create(context.Background(), models.CreateDuelRequest{
		UserID:  "user-1",
		Subject: models.SubjectScience,
	})
	if !errors.Is(err, ErrNotEnoughQuestions) {
		t.Fatalf("expected ErrNotEnoughQuestions, got %v", err)
	}
}

func TestAnswerFullDuel(t *testing.T) {
	m := newTestManager(t, 0)
	ctx := context.Background()

	d, err := m.Create(ctx, models.CreateDuelRequest{
		UserID:     "user-1",
		Subject:    models.SubjectMathematics,
		Difficulty: models.DifficultyMedium,
		Count:      3,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(d.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(d.Questions))
	}

	var last *models.AnswerResponse
	for i := 0; i < 3; i++ {
		last, err = m.Answer(ctx, d.ID, "right")
		if err != nil {
			t.Fatalf("Answer %d failed: %v", i, err)
		}
		if !last.Round.UserCorrect {
			t.Errorf("round %d: correct pick scored as wrong", i)
		}
		if last.Round.Points != 20 {
			t.Errorf("round %d: points = %d, want 20 for medium", i, last.Round.Points)
		}
		if last.CorrectAnswer != "right" {
			t.Errorf("round %d: revealed answer = %q", i, last.CorrectAnswer)
		}
		if last.Round.OpponentThinkTimeMs < 1000 || last.Round.OpponentThinkTimeMs >= 3000 {
			t.Errorf("round %d: think time %dms outside [1000, 3000)", i, last.Round.OpponentThinkTimeMs)
		}
	}

	if last.Duel.Status != models.DuelComplete {
		t.Fatalf("duel not complete after final answer: %s", last.Duel.Status)
	}
	if last.Next != nil {
		t.Error("completed duel still offers a next question")
	}
	if last.Duel.UserScore != 60 {
		t.Errorf("user score = %d, want 60 for three correct medium answers", last.Duel.UserScore)
	}

	// answering a completed duel is rejected
	if _, err := m.Answer(ctx, d.ID, "right"); !errors.Is(err, ErrDuelFinished) {
		t.Errorf("expected ErrDuelFinished, got %v", err)
	}
}

func TestCompleteTotalsScores(t *testing.T) {
	m := newTestManager(t, 0)

	d := &models.Duel{
		ID:     "d-comp",
		Status: models.DuelInProgress,
		Questions: []models.Question{
			{Difficulty: models.DifficultyEasy},
			{Difficulty: models.DifficultyMedium},
			{Difficulty: models.DifficultyHard},
		},
		Rounds: []models.Round{
			{UserCorrect: true, OpponentCorrect: false, Points: 10},
			{UserCorrect: true, OpponentCorrect: false, Points: 20},
			{UserCorrect: true, OpponentCorrect: false, Points: 30},
		},
	}

	m.complete(d)

	if d.Status != models.DuelComplete {
		t.Errorf("status = %s", d.Status)
	}
	if d.UserScore != 60 {
		t.Errorf("user score = %d, want 60", d.UserScore)
	}
	if d.OpponentScore != 0 {
		t.Errorf("opponent score = %d, want 0", d.OpponentScore)
	}
	if d.CompletedAt == nil {
		t.Error("completion time not set")
	}
}

func TestAnswerMixedScores(t *testing.T) {
	m := newTestManager(t, 0)
	ctx := context.Background()

	d, err := m.Create(ctx, models.CreateDuelRequest{
		UserID:     "user-1",
		Subject:    models.SubjectScience,
		Difficulty: models.DifficultyHard,
		Count:      2,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := m.Answer(ctx, d.ID, "right"); err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	resp, err := m.Answer(ctx, d.ID, "wrong-1")
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}

	if resp.Round.UserCorrect {
		t.Error("wrong pick scored as correct")
	}
	// one correct hard answer out of two
	if resp.Duel.UserScore != 30 {
		t.Errorf("user score = %d, want 30", resp.Duel.UserScore)
	}
}

func TestGetReturnsSnapshot(t *testing.T) {
	m := newTestManager(t, 0)
	ctx := context.Background()

	d, err := m.Create(ctx, models.CreateDuelRequest{
		UserID:     "user-1",
		Subject:    models.SubjectScience,
		Difficulty: models.DifficultyEasy,
		Count:      2,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	snapshot, err := m.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if _, err := m.Answer(ctx, d.ID, "right"); err != nil {
		t.Fatalf("Answer failed: %v", err)
	}

	// the snapshot must not see mutations made after it was taken
	if len(snapshot.Rounds) != 0 || snapshot.CurrentIndex != 0 {
		t.Errorf("snapshot mutated: rounds=%d index=%d", len(snapshot.Rounds), snapshot.CurrentIndex)
	}

	fresh, err := m.Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(fresh.Rounds) != 1 || fresh.CurrentIndex != 1 {
		t.Errorf("fresh snapshot stale: rounds=%d index=%d", len(fresh.Rounds), fresh.CurrentIndex)
	}
}

func TestConcurrentGetDuringAnswers(t *testing.T) {
	m := newTestManager(t, 0)
	ctx := context.Background()

	d, err := m.Create(ctx, models.CreateDuelRequest{
		UserID:     "user-1",
		Subject:    models.SubjectScience,
		Difficulty: models.DifficultyEasy,
		Count:      5,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 5; i++ {
			if _, err := m.Answer(ctx, d.ID, "right"); err != nil {
				t.Errorf("Answer failed: %v", err)
				return
			}
		}
	}()

	// reads race the answer loop; snapshots keep them off the live session
	for {
		select {
		case <-done:
			return
		default:
			got, err := m.Get(ctx, d.ID)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			_ = got.View()
			if _, err := m.List(ctx, ""); err != nil {
				t.Fatalf("List failed: %v", err)
			}
		}
	}
}

func TestAnswerInvalidOption(t *testing.T) {
	m := newTestManager(t, 0)
	ctx := context.Background()

	d, _ := m.Create(ctx, models.CreateDuelRequest{
		UserID:     "user-1",
		Subject:    models.SubjectScience,
		Difficulty: models.DifficultyEasy,
		Count:      2,
	})

	if _, err := m.Answer(ctx, d.ID, "not an option"); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("expected ErrInvalidAnswer, got %v", err)
	}

	// the rejected submission must not consume the round
	got, _ := m.Get(ctx, d.ID)
	if got.CurrentIndex != 0 || len(got.Rounds) != 0 {
		t.Errorf("invalid answer advanced the duel: index=%d rounds=%d", got.CurrentIndex, len(got.Rounds))
	}
}

func TestAnswerUnknownDuel(t *testing.T) {
	m := newTestManager(t, 0)
	if _, err := m.Answer(context.Background(), "nope", "right"); !errors.Is(err, ErrDuelNotFound) {
		t.Errorf("expected ErrDuelNotFound, got %v", err)
	}
}

func TestAnswerExpiredDuel(t *testing.T) {
	m := newTestManager(t, 0)
	ctx := context.Background()

	d, _ := m.Create(ctx, models.CreateDuelRequest{
		UserID:     "user-1",
		Subject:    models.SubjectScience,
		Difficulty: models.DifficultyEasy,
		Count:      2,
	})
	d.ExpiresAt = time.Now().Add(-time.Minute)

	if _, err := m.Answer(ctx, d.ID, "right"); !errors.Is(err, ErrDuelFinished) {
		t.Fatalf("expected ErrDuelFinished on expired duel, got %v", err)
	}

	got, _ := m.Get(ctx, d.ID)
	if got.Status != models.DuelExpired {
		t.Errorf("status = %s, want expired", got.Status)
	}
}

func TestListFiltersByUser(t *testing.T) {
	m := newTestManager(t, 0)
	ctx := context.Background()

	for _, user := range []string{"alice", "alice", "bob"} {
		if _, err := m.Create(ctx, models.CreateDuelRequest{
			UserID:     user,
			Subject:    models.SubjectHistory,
			Difficulty: models.DifficultyEasy,
			Count:      2,
		}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	all, _ := m.List(ctx, "")
	if len(all) != 3 {
		t.Errorf("expected 3 duels, got %d", len(all))
	}
	alices, _ := m.List(ctx, "alice")
	if len(alices) != 2 {
		t.Errorf("expected 2 duels for alice, got %d", len(alices))
	}
}

func TestAbandon(t *testing.T) {
	m := newTestManager(t, 0)
	ctx := context.Background()

	d, _ := m.Create(ctx, models.CreateDuelRequest{
		UserID:     "user-1",
		Subject:    models.SubjectScience,
		Difficulty: models.DifficultyEasy,
		Count:      2,
	})

	if err := m.Abandon(ctx, d.ID); err != nil {
		t.Fatalf("Abandon failed: %v", err)
	}
	if _, err := m.Get(ctx, d.ID); !errors.Is(err, ErrDuelNotFound) {
		t.Errorf("abandoned duel still retrievable: %v", err)
	}
	if err := m.Abandon(ctx, d.ID); !errors.Is(err, ErrDuelNotFound) {
		t.Errorf("expected ErrDuelNotFound on second Abandon, got %v", err)
	}
}

func TestExpireEvicts(t *testing.T) {
	m := newTestManager(t, 0)
	ctx := context.Background()

	d, _ := m.Create(ctx, models.CreateDuelRequest{
		UserID:     "user-1",
		Subject:    models.SubjectScience,
		Difficulty: models.DifficultyEasy,
		Count:      2,
	})
	d.ExpiresAt = time.Now().Add(-time.Minute)

	expired, err := m.GetExpired(ctx)
	if err != nil {
		t.Fatalf("GetExpired failed: %v", err)
	}
	if len(expired) != 1 || expired[0].ID != d.ID {
		t.Fatalf("expected the stale duel in GetExpired, got %d entries", len(expired))
	}

	if err := m.Expire(ctx, d.ID); err != nil {
		t.Fatalf("Expire failed: %v", err)
	}
	if _, err := m.Get(ctx, d.ID); !errors.Is(err, ErrDuelNotFound) {
		t.Errorf("expired duel still retrievable: %v", err)
	}
}
