package duel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mindly-app/duel-engine/internal/config"
	"github.com/mindly-app/duel-engine/internal/models"
	"github.com/mindly-app/duel-engine/internal/opponent"
	"github.com/mindly-app/duel-engine/internal/quiz"
	"github.com/mindly-app/duel-engine/internal/storage"
)

// Common errors
var (
	ErrDuelNotFound       = errors.New("duel not found")
	ErrDuelFinished       = errors.New("duel is already finished")
	ErrInvalidAnswer      = errors.New("answer is not one of the options")
	ErrNotEnoughQuestions = errors.New("not enough questions available")
	ErrInvalidRequest     = errors.New("invalid duel request")
)

// Manager defines the interface for duel session management
type Manager interface {
	Create(ctx context.Context, req models.CreateDuelRequest) (*models.Duel, error)
	Get(ctx context.Context, id string) (*models.Duel, error)
	Answer(ctx context.Context, id, answer string) (*models.AnswerResponse, error)
	List(ctx context.Context, userID string) ([]*models.Duel, error)
	Abandon(ctx context.Context, id string) error
	GetExpired(ctx context.Context) ([]*models.Duel, error)
	Expire(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close() error
}

// MemoryManager implements Manager with an in-memory session store. Duels
// are never persisted while live; only a completed duel's summary row is
// written to the repository.
type MemoryManager struct {
	mu        sync.RWMutex
	duels     map[string]*models.Duel
	assembler *quiz.Assembler
	simulator *opponent.Simulator
	repo      storage.Repository
	cfg       config.DuelConfig
}

// NewManager creates a MemoryManager. repo may be nil when result
// persistence is disabled.
func NewManager(cfg config.DuelConfig, assembler *quiz.Assembler, simulator *opponent.Simulator, repo storage.Repository) *MemoryManager {
	return &MemoryManager{
		duels:     make(map[string]*models.Duel),
		assembler: assembler,
		simulator: simulator,
		repo:      repo,
		cfg:       cfg,
	}
}

// Ping checks if the manager is operational
func (m *MemoryManager) Ping(ctx context.Context) error {
	if m.repo != nil {
		if err := m.repo.Ping(ctx); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}
	}
	return nil
}

// Create assembles a question set and starts a duel. When the assembled list
// falls short of the expected count the duel does not start.
func (m *MemoryManager) Create(ctx context.Context, req models.CreateDuelRequest) (*models.Duel, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidRequest)
	}
	if !req.Subject.Valid() {
		return nil, fmt.Errorf("%w: unknown subject %q", ErrInvalidRequest, req.Subject)
	}
	if req.Difficulty != "" && !req.Difficulty.Valid() {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidRequest, req.Difficulty)
	}

	aiDifficulty := req.Opponent
	if aiDifficulty == "" {
		aiDifficulty = models.DifficultyMedium
	}
	if !aiDifficulty.Valid() {
		return nil, fmt.Errorf("%w: unknown opponent difficulty %q", ErrInvalidRequest, req.Opponent)
	}

	var questions []models.Question
	var expected int

	if req.Difficulty == "" {
		// Standard duel: fixed stratified 15-question set
		expected = m.cfg.QuestionCount
		questions = m.assembler.DuelQuestions(ctx, req.Subject)
	} else {
		expected = req.Count
		if expected <= 0 {
			expected = 5
		}
		questions = m.assembler.Questions(ctx, req.Subject, req.Difficulty, expected)
	}

	if len(questions) < expected {
		return nil, fmt.Errorf("%w: got %d of %d", ErrNotEnoughQuestions, len(questions), expected)
	}

	now := time.Now()
	d := &models.Duel{
		ID:         uuid.New().String(),
		UserID:     req.UserID,
		Subject:    req.Subject,
		Difficulty: req.Difficulty,
		Opponent:   aiDifficulty,
		Status:     models.DuelInProgress,
		Questions:  questions,
		Rounds:     make([]models.Round, 0, len(questions)),
		CreatedAt:  now,
		ExpiresAt:  now.Add(m.cfg.TTL),
	}

	m.mu.Lock()
	m.duels[d.ID] = d
	m.mu.Unlock()

	slog.Info("duel created",
		"id", d.ID,
		"user", d.UserID,
		"subject", d.Subject,
		"opponent", d.Opponent,
		"questions", len(questions),
	)

	return d, nil
}

// Get retrieves a snapshot of a duel by ID. A copy goes out so callers can
// read it while Answer mutates the live session under the lock.
func (m *MemoryManager) Get(ctx context.Context, id string) (*models.Duel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.duels[id]
	if !ok {
		return nil, ErrDuelNotFound
	}
	return d.Clone(), nil
}

// Answer records the user's pick for the current question, invokes the
// opponent simulator for the same question, and advances the duel. The
// user's answer is immutable once recorded; after the last question the
// duel completes and both total scores are computed.
func (m *MemoryManager) Answer(ctx context.Context, id, answer string) (*models.AnswerResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.duels[id]
	if !ok {
		return nil, ErrDuelNotFound
	}

	if d.Status.IsTerminal() {
		return nil, ErrDuelFinished
	}

	if d.IsExpired() {
		d.Status = models.DuelExpired
		return nil, ErrDuelFinished
	}

	q := d.CurrentQuestion()
	if q == nil {
		return nil, ErrDuelFinished
	}

	valid := false
	for _, opt := range q.Options {
		if opt == answer {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrInvalidAnswer
	}

	sim := m.simulator.Answer(q, d.Opponent)

	round := models.Round{
		Index:               d.CurrentIndex,
		UserAnswer:          answer,
		UserCorrect:         answer == q.Answer,
		OpponentAnswer:      sim.Answer,
		OpponentCorrect:     sim.Correct,
		OpponentExplanation: sim.Explanation,
		OpponentThinkTimeMs: sim.ThinkTime.Milliseconds(),
		Points:              quiz.Score(q.Difficulty),
		AnsweredAt:          time.Now(),
	}
	d.Rounds = append(d.Rounds, round)
	d.CurrentIndex++

	if d.CurrentIndex >= len(d.Questions) {
		m.complete(d)
	}

	resp := &models.AnswerResponse{
		Round:         round,
		CorrectAnswer: q.Answer,
		Explanation:   q.Explanation,
		Duel:          d.View(),
	}
	if next := d.CurrentQuestion(); next != nil && d.Status == models.DuelInProgress {
		resp.Next = models.NewQuestionView(d.CurrentIndex, next)
	}

	return resp, nil
}

// complete finalizes a duel: totals are computed once, over all rounds,
// from the per-question score weights. Caller holds the lock.
func (m *MemoryManager) complete(d *models.Duel) {
	userScore, opponentScore := 0, 0
	for _, r := range d.Rounds {
		if r.UserCorrect {
			userScore += r.Points
		}
		if r.OpponentCorrect {
			opponentScore += r.Points
		}
	}

	now := time.Now()
	d.Status = models.DuelComplete
	d.UserScore = userScore
	d.OpponentScore = opponentScore
	d.CompletedAt = &now

	slog.Info("duel complete",
		"id", d.ID,
		"user", d.UserID,
		"user_score", userScore,
		"opponent_score", opponentScore,
	)

	if m.repo != nil {
		result := &models.DuelResult{
			ID:            d.ID,
			UserID:        d.UserID,
			Subject:       d.Subject,
			Difficulty:    d.Difficulty,
			Opponent:      d.Opponent,
			QuestionCount: len(d.Questions),
			UserScore:     userScore,
			OpponentScore: opponentScore,
			Won:           userScore > opponentScore,
			CompletedAt:   now,
		}

		// Persist best-effort; a storage failure never fails the duel
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := m.repo.SaveResult(ctx, result); err != nil {
				slog.Error("failed to save duel result", "error", err, "id", result.ID)
			}
		}()
	}
}

// List returns snapshots of in-memory duels, optionally filtered by user
func (m *MemoryManager) List(ctx context.Context, userID string) ([]*models.Duel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	duels := make([]*models.Duel, 0, len(m.duels))
	for _, d := range m.duels {
		if userID != "" && d.UserID != userID {
			continue
		}
		duels = append(duels, d.Clone())
	}
	return duels, nil
}

// Abandon discards a duel. There is no carry-over; the user starts fresh.
func (m *MemoryManager) Abandon(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.duels[id]; !ok {
		return ErrDuelNotFound
	}

	delete(m.duels, id)
	slog.Info("duel abandoned", "id", id)
	return nil
}

// GetExpired returns all duels past their TTL
func (m *MemoryManager) GetExpired(ctx context.Context) ([]*models.Duel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var expired []*models.Duel
	for _, d := range m.duels {
		if d.IsExpired() {
			expired = append(expired, d.Clone())
		}
	}
	return expired, nil
}

// Expire marks an abandoned duel expired and evicts it from memory
func (m *MemoryManager) Expire(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.duels[id]
	if !ok {
		return ErrDuelNotFound
	}

	if d.Status == models.DuelInProgress {
		d.Status = models.DuelExpired
	}
	delete(m.duels, id)

	slog.Info("duel expired", "id", id, "user", d.UserID)
	return nil
}

// Close cleans up manager resources
func (m *MemoryManager) Close() error {
	if m.repo != nil {
		if err := m.repo.Close(); err != nil {
			slog.Warn("failed to close repository", "error", err)
		}
	}
	return nil
}
