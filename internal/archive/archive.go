// internal/archive/archive.go
package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const resultsSchema = `
CREATE TABLE IF NOT EXISTS game_results (
	id BIGSERIAL PRIMARY KEY,
	code TEXT NOT NULL,
	player1_sum INT NOT NULL,
	player2_sum INT NOT NULL,
	winner TEXT NOT NULL,
	ended_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Archive persists finished game results to Postgres. Live sessions are
// never persisted; only the terminal game_end outcome is written, after the
// broadcast has gone out. A nil *Archive is a no-op.
type Archive struct {
	pool *pgxpool.Pool
	log  *logrus.Logger
}

// Connect opens a pgx pool against databaseURL and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string, log *logrus.Logger) (*Archive, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Archive{pool: pool, log: log}, nil
}

// EnsureSchema creates the results table if it does not exist.
func (a *Archive) EnsureSchema(ctx context.Context) error {
	if _, err := a.pool.Exec(ctx, resultsSchema); err != nil {
		return fmt.Errorf("create game_results table: %w", err)
	}
	return nil
}

// RecordResult inserts one finished game row asynchronously. Failures are
// logged; they cannot affect the session that produced them.
func (a *Archive) RecordResult(code string, p1Sum, p2Sum int, winner string) {
	if a == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := a.pool.Exec(ctx,
			`INSERT INTO game_results (code, player1_sum, player2_sum, winner) VALUES ($1, $2, $3, $4)`,
			code, p1Sum, p2Sum, winner,
		)
		if err != nil {
			a.log.Warnf("archive: failed to record result for game %s: %v", code, err)
		}
	}()
}

// Close releases the connection pool.
func (a *Archive) Close() {
	if a != nil {
		a.pool.Close()
	}
}
