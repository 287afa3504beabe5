package models

import (
	"time"
)

// DuelStatus represents the current state of a duel session
type DuelStatus string

const (
	DuelInProgress DuelStatus = "in_progress"
	DuelComplete   DuelStatus = "complete"
	DuelExpired    DuelStatus = "expired"
)

// IsTerminal returns true if the status is a terminal state
func (s DuelStatus) IsTerminal() bool {
	return s == DuelComplete || s == DuelExpired
}

// Round records one answered question: the user's pick, the simulated
// opponent's pick, and the points each earned for it.
type Round struct {
	Index               int       `json:"index"`
	UserAnswer          string    `json:"user_answer"`
	UserCorrect         bool      `json:"user_correct"`
	OpponentAnswer      string    `json:"opponent_answer"`
	OpponentCorrect     bool      `json:"opponent_correct"`
	OpponentExplanation string    `json:"opponent_explanation"`
	OpponentThinkTimeMs int64     `json:"opponent_think_time_ms"`
	Points              int       `json:"points"`
	AnsweredAt          time.Time `json:"answered_at"`
}

// Duel is one complete run through an assembled question set, tracking both
// participants' answers. Duels live only in memory; a finished duel's summary
// is written to storage and the session itself is discarded.
type Duel struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Subject       Subject    `json:"subject"`
	Difficulty    Difficulty `json:"difficulty"`
	Opponent      Difficulty `json:"opponent"`
	Status        DuelStatus `json:"status"`
	Questions     []Question `json:"-"`
	Rounds        []Round    `json:"rounds"`
	CurrentIndex  int        `json:"current_index"`
	UserScore     int        `json:"user_score"`
	OpponentScore int        `json:"opponent_score"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	ExpiresAt     time.Time  `json:"expires_at"`
}

// IsExpired checks if the duel has outlived its TTL
func (d *Duel) IsExpired() bool {
	return time.Now().After(d.ExpiresAt)
}

// CurrentQuestion returns the question awaiting an answer, or nil when the
// duel is finished.
func (d *Duel) CurrentQuestion() *Question {
	if d.CurrentIndex >= len(d.Questions) {
		return nil
	}
	return &d.Questions[d.CurrentIndex]
}

// Clone returns a copy safe to read without the manager's lock. Rounds are
// copied; Questions are immutable after construction and shared.
func (d *Duel) Clone() *Duel {
	c := *d
	c.Rounds = make([]Round, len(d.Rounds))
	copy(c.Rounds, d.Rounds)
	return &c
}

// DuelResult is the persisted summary of a completed duel
type DuelResult struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Subject       Subject    `json:"subject"`
	Difficulty    Difficulty `json:"difficulty"`
	Opponent      Difficulty `json:"opponent"`
	QuestionCount int        `json:"question_count"`
	UserScore     int        `json:"user_score"`
	OpponentScore int        `json:"opponent_score"`
	Won           bool       `json:"won"`
	CompletedAt   time.Time  `json:"completed_at"`
}

// LeaderboardEntry aggregates a user's completed duels
type LeaderboardEntry struct {
	UserID     string `json:"user_id"`
	Duels      int    `json:"duels"`
	Wins       int    `json:"wins"`
	TotalScore int    `json:"total_score"`
}

// ResultFilters defines filters for listing duel results
type ResultFilters struct {
	UserID  string
	Subject Subject
	Limit   int
	Offset  int
}

// CreateDuelRequest represents a request to start a duel
type CreateDuelRequest struct {
	UserID     string     `json:"user_id"`
	Subject    Subject    `json:"subject"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Opponent   Difficulty `json:"opponent,omitempty"`
	Count      int        `json:"count,omitempty"`
}

// AnswerRequest represents a user answering the current question
type AnswerRequest struct {
	Answer string `json:"answer"`
}

// QuestionView is the client-facing shape of a question: the correct answer
// and explanation are withheld until the round is answered.
type QuestionView struct {
	Index      int        `json:"index"`
	Text       string     `json:"question"`
	Options    []string   `json:"options"`
	Difficulty Difficulty `json:"difficulty"`
	Subject    Subject    `json:"subject"`
}

// NewQuestionView builds the redacted view of question i
func NewQuestionView(i int, q *Question) *QuestionView {
	return &QuestionView{
		Index:      i,
		Text:       q.Text,
		Options:    q.Options,
		Difficulty: q.Difficulty,
		Subject:    q.Subject,
	}
}

// DuelView is the client-facing shape of a duel
type DuelView struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	Subject       Subject       `json:"subject"`
	Difficulty    Difficulty    `json:"difficulty"`
	Opponent      Difficulty    `json:"opponent"`
	Status        DuelStatus    `json:"status"`
	QuestionCount int           `json:"question_count"`
	Rounds        []Round       `json:"rounds"`
	Current       *QuestionView `json:"current_question,omitempty"`
	UserScore     int           `json:"user_score"`
	OpponentScore int           `json:"opponent_score"`
	CreatedAt     time.Time     `json:"created_at"`
	CompletedAt   *time.Time    `json:"completed_at,omitempty"`
	ExpiresAt     time.Time     `json:"expires_at"`
}

// View builds the redacted client view of the duel
func (d *Duel) View() *DuelView {
	v := &DuelView{
		ID:            d.ID,
		UserID:        d.UserID,
		Subject:       d.Subject,
		Difficulty:    d.Difficulty,
		Opponent:      d.Opponent,
		Status:        d.Status,
		QuestionCount: len(d.Questions),
		Rounds:        d.Rounds,
		UserScore:     d.UserScore,
		OpponentScore: d.OpponentScore,
		CreatedAt:     d.CreatedAt,
		CompletedAt:   d.CompletedAt,
		ExpiresAt:     d.ExpiresAt,
	}
	if q := d.CurrentQuestion(); q != nil && d.Status == DuelInProgress {
		v.Current = NewQuestionView(d.CurrentIndex, q)
	}
	return v
}

// AnswerResponse reveals the outcome of one round after the user has answered
type AnswerResponse struct {
	Round         Round         `json:"round"`
	CorrectAnswer string        `json:"correct_answer"`
	Explanation   string        `json:"explanation,omitempty"`
	Duel          *DuelView     `json:"duel"`
	Next          *QuestionView `json:"next_question,omitempty"`
}
