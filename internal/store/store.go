// Package store handles the SQLite session archive.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/gotypist-stats/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for archived sessions.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate db: %w", errors.Join(err, db.Close()))
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			text TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			errors INTEGER NOT NULL,
			mode INTEGER NOT NULL,
			seconds REAL NOT NULL,
			cps REAL NOT NULL,
			wpm REAL NOT NULL,
			version INTEGER NOT NULL,
			UNIQUE (started_at, text)
		);`,
		`CREATE TABLE IF NOT EXISTS session_typos (
			session_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			expected TEXT NOT NULL,
			actual TEXT NOT NULL,
			PRIMARY KEY (session_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Import archives sessions that are not stored yet, identified by start time
// and text, and returns how many were added.
func (s *Store) Import(ctx context.Context, sessions []model.Session) (added int, err error) {
	logger := zerolog.Ctx(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				logger.Warn().Err(rerr).Msg("failed to roll back import")
			}
		}
	}()

	sessionStmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO sessions (text, started_at, finished_at, errors, mode, seconds, cps, wpm, version)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer closeStmt(logger, sessionStmt)

	typoStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO session_typos (session_id, position, expected, actual) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer closeStmt(logger, typoStmt)

	for _, session := range sessions {
		res, err := sessionStmt.ExecContext(ctx,
			session.Text,
			session.StartedAt.Format(time.RFC3339Nano),
			session.FinishedAt.Format(time.RFC3339Nano),
			session.Errors,
			session.Mode.Tag(),
			session.Seconds,
			session.CPS,
			session.WPM,
			session.Version,
		)
		if err != nil {
			return 0, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		if affected == 0 {
			continue
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, err
		}
		for pos, typo := range session.Typos {
			if _, err := typoStmt.ExecContext(ctx, id, pos, typo.Expected, typo.Actual); err != nil {
				return 0, err
			}
		}
		added++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	logger.Info().Int("added", added).Int("seen", len(sessions)).Msg("archived sessions")
	return added, nil
}

// ListSessions returns every archived session in import order.
func (s *Store) ListSessions(ctx context.Context) ([]model.Session, error) {
	logger := zerolog.Ctx(ctx)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, started_at, finished_at, errors, mode, seconds, cps, wpm, version
		FROM sessions
		ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer closeRows(logger, rows)

	var ids []int64
	var sessions []model.Session
	for rows.Next() {
		var (
			id                    int64
			session               model.Session
			startedAt, finishedAt string
			modeTag               int
		)
		if err := rows.Scan(&id, &session.Text, &startedAt, &finishedAt, &session.Errors, &modeTag,
			&session.Seconds, &session.CPS, &session.WPM, &session.Version); err != nil {
			return nil, err
		}
		if session.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if session.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
			return nil, err
		}
		if session.Mode, err = model.ModeFromTag(modeTag); err != nil {
			return nil, err
		}
		ids = append(ids, id)
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	typos, err := s.listTypos(ctx)
	if err != nil {
		return nil, err
	}
	for i, id := range ids {
		sessions[i].Typos = typos[id]
		if sessions[i].Typos == nil {
			sessions[i].Typos = []model.Typo{}
		}
	}
	return sessions, nil
}

func (s *Store) listTypos(ctx context.Context) (map[int64][]model.Typo, error) {
	logger := zerolog.Ctx(ctx)

	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, expected, actual
		FROM session_typos
		ORDER BY session_id ASC, position ASC`)
	if err != nil {
		return nil, err
	}
	defer closeRows(logger, rows)

	result := map[int64][]model.Typo{}
	for rows.Next() {
		var sessionID int64
		var typo model.Typo
		if err := rows.Scan(&sessionID, &typo.Expected, &typo.Actual); err != nil {
			return nil, err
		}
		result[sessionID] = append(result[sessionID], typo)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Count returns the number of archived sessions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return n, nil
}

func closeRows(logger *zerolog.Logger, rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		logger.Warn().Err(err).Msg("failed to close rows")
	}
}

func closeStmt(logger *zerolog.Logger, stmt *sql.Stmt) {
	if err := stmt.Close(); err != nil {
		logger.Warn().Err(err).Msg("failed to close statement")
	}
}
