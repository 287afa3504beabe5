package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"

	"github.com/mindly-app/duel-engine/internal/config"
	"github.com/mindly-app/duel-engine/internal/models"
	"github.com/mindly-app/duel-engine/internal/quiz"
)

// categoryIDs maps subjects to the trivia provider's category identifiers
var categoryIDs = map[models.Subject]int{
	models.SubjectMathematics: 19,
	models.SubjectScience:     17,
	models.SubjectProgramming: 18,
	models.SubjectHistory:     23,
	models.SubjectGeography:   22,
}

// Client fetches multiple-choice questions from a trivia HTTP API.
// Failure is absorbed: any transport error, non-success response code or
// malformed payload yields an empty result and a warning log, never an error
// surfaced to callers. The assembler backfills from the bank in that case.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *Cache
	rng        *rand.Rand
}

// NewClient creates a trivia client. cache may be nil; a nil rng gets a
// time-seeded default.
func NewClient(cfg config.TriviaConfig, cache *Cache, rng *rand.Rand) *Client {
	if rng == nil {
		rng = quiz.NewRand()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache: cache,
		rng:   rng,
	}
}

type apiPayload struct {
	ResponseCode int         `json:"response_code"`
	Results      []apiResult `json:"results"`
}

type apiResult struct {
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
}

// Fetch retrieves amount questions for the subject and difficulty. The
// returned questions are tagged with the requested subject and difficulty,
// not what the provider echoes back: the provider has no "very-hard" grade,
// so that difficulty is queried as "hard" and relabeled on the way out.
func (c *Client) Fetch(ctx context.Context, subject models.Subject, difficulty models.Difficulty, amount int) ([]models.Question, error) {
	if amount <= 0 {
		return nil, nil
	}

	if c.cache != nil {
		if questions, ok := c.cache.Get(ctx, subject, difficulty, amount); ok {
			return questions, nil
		}
	}

	payload, err := c.request(ctx, subject, difficulty, amount)
	if err != nil {
		slog.Warn("trivia request failed",
			"subject", subject,
			"difficulty", difficulty,
			"error", err,
		)
		return nil, nil
	}

	questions := c.decode(payload, subject, difficulty)

	if c.cache != nil && len(questions) > 0 {
		c.cache.Set(ctx, subject, difficulty, amount, questions)
	}

	return questions, nil
}

func (c *Client) request(ctx context.Context, subject models.Subject, difficulty models.Difficulty, amount int) (*apiPayload, error) {
	category, ok := categoryIDs[subject]
	if !ok {
		return nil, fmt.Errorf("no category mapping for subject: %s", subject)
	}

	// The provider only grades easy/medium/hard
	apiDifficulty := difficulty
	if apiDifficulty == models.DifficultyVeryHard {
		apiDifficulty = models.DifficultyHard
	}

	params := url.Values{}
	params.Set("amount", fmt.Sprintf("%d", amount))
	params.Set("category", fmt.Sprintf("%d", category))
	params.Set("difficulty", string(apiDifficulty))
	params.Set("type", "multiple")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var payload apiPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}

	if payload.ResponseCode != 0 {
		return nil, fmt.Errorf("provider response code: %d", payload.ResponseCode)
	}

	return &payload, nil
}

// decode converts provider entries to questions: HTML entities are unescaped,
// options shuffled so the correct answer is not always last, and entries
// whose answer is missing from the option list are discarded.
func (c *Client) decode(payload *apiPayload, subject models.Subject, difficulty models.Difficulty) []models.Question {
	questions := make([]models.Question, 0, len(payload.Results))

	for _, r := range payload.Results {
		answer := html.UnescapeString(r.CorrectAnswer)

		options := make([]string, 0, len(r.IncorrectAnswers)+1)
		for _, o := range r.IncorrectAnswers {
			options = append(options, html.UnescapeString(o))
		}
		options = append(options, answer)
		quiz.Shuffle(options, c.rng)

		q := models.Question{
			Text:       html.UnescapeString(r.Question),
			Options:    options,
			Answer:     answer,
			Difficulty: difficulty,
			Subject:    subject,
		}

		if !q.HasAnswer() || q.Text == "" || len(q.Options) < 2 {
			slog.Warn("discarding malformed trivia entry", "question", q.Text)
			continue
		}

		questions = append(questions, q)
	}

	return questions
}
