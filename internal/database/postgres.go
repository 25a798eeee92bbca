package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SessionResult is one finished session as stored in the archive.
type SessionResult struct {
	ID             int64          `json:"id"`
	RoomCode       string         `json:"roomCode"`
	Mode           string         `json:"mode"`
	Category       string         `json:"category"`
	SecretWord     string         `json:"secretWord"`
	Impostors      []string       `json:"impostors"`
	Winner         string         `json:"winner"`
	ImpostorCaught bool           `json:"impostorCaught"`
	VoteCounts     map[string]int `json:"voteCounts"`
	Players        []string       `json:"players"`
	RoundsPlayed   int            `json:"roundsPlayed"`
	FinishedAt     time.Time      `json:"finishedAt"`
}

// Service is the results archive.
type Service interface {
	InsertSessionResult(ctx context.Context, r SessionResult) (int64, error)
	RecentSessionResults(ctx context.Context, limit int) ([]SessionResult, error)
	Health(ctx context.Context) map[string]string
	Close()
}

type service struct {
	pool *pgxpool.Pool
}

// New opens a pool against url and applies pending migrations.
func New(ctx context.Context, url string) (Service, error) {
	if err := Migrate(ctx, url); err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return &service{pool: pool}, nil
}

// Migrate applies the embedded goose migrations.
func Migrate(ctx context.Context, url string) error {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return fmt.Errorf("failed to open db for migrations: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func (s *service) InsertSessionResult(ctx context.Context, r SessionResult) (int64, error) {
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}
	if r.VoteCounts == nil {
		r.VoteCounts = map[string]int{}
	}

	query := `
		INSERT INTO session_results
			(room_code, mode, category, secret_word, impostors, winner,
			 impostor_caught, vote_counts, players, rounds_played, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	var id int64
	err := s.pool.QueryRow(ctx, query,
		r.RoomCode, r.Mode, r.Category, r.SecretWord, r.Impostors, r.Winner,
		r.ImpostorCaught, r.VoteCounts, r.Players, r.RoundsPlayed, r.FinishedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert result for room %s: %w", r.RoomCode, err)
	}
	return id, nil
}

// RecentSessionResults returns up to limit results, newest first.
func (s *service) RecentSessionResults(ctx context.Context, limit int) ([]SessionResult, error) {
	query := `
		SELECT id, room_code, mode, category, secret_word, impostors, winner,
		       impostor_caught, vote_counts, players, rounds_played, finished_at
		FROM session_results
		ORDER BY finished_at DESC, id DESC
		LIMIT $1
	`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	results := make([]SessionResult, 0, limit)
	for rows.Next() {
		var r SessionResult
		if err := rows.Scan(
			&r.ID, &r.RoomCode, &r.Mode, &r.Category, &r.SecretWord, &r.Impostors, &r.Winner,
			&r.ImpostorCaught, &r.VoteCounts, &r.Players, &r.RoundsPlayed, &r.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}
	return results, nil
}

func (s *service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	stats := make(map[string]string)
	if err := s.pool.Ping(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	st := s.pool.Stat()
	stats["status"] = "up"
	stats["total_connections"] = strconv.Itoa(int(st.TotalConns()))
	stats["idle_connections"] = strconv.Itoa(int(st.IdleConns()))
	stats["acquired_connections"] = strconv.Itoa(int(st.AcquiredConns()))
	return stats
}

func (s *service) Close() {
	s.pool.Close()
}
