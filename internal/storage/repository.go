package storage

import (
	"context"

	"github.com/mindly-app/duel-engine/internal/models"
)

// Repository defines the interface for duel-engine persistence. Live duels
// are memory-only; the repository stores completed duel summaries and the
// API clients used for authentication.
type Repository interface {
	// Results
	SaveResult(ctx context.Context, result *models.DuelResult) error
	GetResult(ctx context.Context, id string) (*models.DuelResult, error)
	ListResults(ctx context.Context, filters models.ResultFilters) ([]*models.DuelResult, error)
	Leaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)

	// API Clients
	GetClientByApiKey(ctx context.Context, apiKey string) (*models.ApiClient, error)
	UpdateClientLastUsed(ctx context.Context, apiKey string) error

	// Health
	Ping(ctx context.Context) error
	Close() error
}
