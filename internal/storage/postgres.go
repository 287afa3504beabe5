package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mindly-app/duel-engine/internal/models"
)

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int32
	MaxIdleConns int32
	MaxLifetime  time.Duration
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(ctx context.Context, cfg PostgresConfig) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	poolConfig.MaxConns = 25
	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	}

	poolConfig.MinConns = 5
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = cfg.MaxIdleConns
	}

	poolConfig.MaxConnLifetime = 30 * time.Minute
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// Ping checks database connectivity
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// SaveResult inserts a completed duel summary
func (r *PostgresRepository) SaveResult(ctx context.Context, result *models.DuelResult) error {
	query := `
		INSERT INTO duel_results (id, user_id, subject, difficulty, opponent, question_count, user_score, opponent_score, won, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query,
		result.ID,
		result.UserID,
		string(result.Subject),
		string(result.Difficulty),
		string(result.Opponent),
		result.QuestionCount,
		result.UserScore,
		result.OpponentScore,
		result.Won,
		result.CompletedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save duel result: %w", err)
	}

	return nil
}

// GetResult retrieves a duel result by ID
func (r *PostgresRepository) GetResult(ctx context.Context, id string) (*models.DuelResult, error) {
	query := `
		SELECT id, user_id, subject, difficulty, opponent, question_count, user_score, opponent_score, won, completed_at
		FROM duel_results
		WHERE id = $1
	`

	result, err := scanResult(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get duel result: %w", err)
	}

	return result, nil
}

// ListResults returns duel results matching filters, newest first
func (r *PostgresRepository) ListResults(ctx context.Context, filters models.ResultFilters) ([]*models.DuelResult, error) {
	query := `
		SELECT id, user_id, subject, difficulty, opponent, question_count, user_score, opponent_score, won, completed_at
		FROM duel_results
		WHERE 1=1
	`
	args := make([]interface{}, 0)
	argNum := 1

	if filters.UserID != "" {
		query += fmt.Sprintf(" AND user_id = $%d", argNum)
		args = append(args, filters.UserID)
		argNum++
	}

	if filters.Subject != "" {
		query += fmt.Sprintf(" AND subject = $%d", argNum)
		args = append(args, string(filters.Subject))
		argNum++
	}

	query += " ORDER BY completed_at DESC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, filters.Limit)
		argNum++
	}

	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argNum)
		args = append(args, filters.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list duel results: %w", err)
	}
	defer rows.Close()

	var results []*models.DuelResult
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan duel result: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating duel results: %w", err)
	}

	return results, nil
}

// Leaderboard aggregates completed duels per user, ranked by total score
func (r *PostgresRepository) Leaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT user_id, COUNT(*), COUNT(*) FILTER (WHERE won), COALESCE(SUM(user_score), 0)
		FROM duel_results
		GROUP BY user_id
		ORDER BY COALESCE(SUM(user_score), 0) DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Duels, &e.Wins, &e.TotalScore); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard: %w", err)
	}

	return entries, nil
}

// GetClientByApiKey retrieves an API client by its key
func (r *PostgresRepository) GetClientByApiKey(ctx context.Context, apiKey string) (*models.ApiClient, error) {
	query := `
		SELECT id, name, api_key, is_active, created_at, last_used_at, permissions
		FROM api_clients
		WHERE api_key = $1
	`

	var c models.ApiClient
	err := r.pool.QueryRow(ctx, query, apiKey).Scan(
		&c.ID,
		&c.Name,
		&c.ApiKey,
		&c.IsActive,
		&c.CreatedAt,
		&c.LastUsedAt,
		&c.Permissions,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("failed to get api client: %w", err)
	}

	return &c, nil
}

// UpdateClientLastUsed stamps the client's last_used_at
func (r *PostgresRepository) UpdateClientLastUsed(ctx context.Context, apiKey string) error {
	query := `UPDATE api_clients SET last_used_at = NOW() WHERE api_key = $1`

	if _, err := r.pool.Exec(ctx, query, apiKey); err != nil {
		return fmt.Errorf("failed to update client last_used_at: %w", err)
	}

	return nil
}

func scanResult(row pgx.Row) (*models.DuelResult, error) {
	var result models.DuelResult
	var subject, difficulty, opponent string

	err := row.Scan(
		&result.ID,
		&result.UserID,
		&subject,
		&difficulty,
		&opponent,
		&result.QuestionCount,
		&result.UserScore,
		&result.OpponentScore,
		&result.Won,
		&result.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	result.Subject = models.Subject(subject)
	result.Difficulty = models.Difficulty(difficulty)
	result.Opponent = models.Difficulty(opponent)
	return &result, nil
}
