package rulestore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avenaparisshop/avena-sav-app/internal/learner"
	"github.com/avenaparisshop/avena-sav-app/internal/rules"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// kindName marks persisted suspicious display-name words, which live
// alongside the three regex channels in the same table
const kindName = "name"

// SQLiteRuleStore persists the learned rule overlay so patterns appended at
// runtime survive restarts. The built-in tables are compiled in; only the
// overlay is stored.
type SQLiteRuleStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteRuleStore opens (and if needed initializes) the overlay database
func NewSQLiteRuleStore(dbPath string, logger *zap.Logger) (*SQLiteRuleStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS learned_rules (
			channel TEXT NOT NULL,
			pattern TEXT NOT NULL,
			added_at TIMESTAMP,
			PRIMARY KEY (channel, pattern)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteRuleStore{
		db:     db,
		logger: logger,
	}, nil
}

// LoadInto replays the persisted overlay into a rule store. Rows that no
// longer validate (for example after tightening the pattern length cap) are
// logged and skipped rather than failing startup. Returns the number of
// rules restored; replaying is idempotent because the store dedups.
func (s *SQLiteRuleStore) LoadInto(ctx context.Context, store *rules.Store) (int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT channel, pattern FROM learned_rules ORDER BY added_at, pattern
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to query learned rules: %w", err)
	}
	defer rows.Close()

	restored := 0
	for rows.Next() {
		var channel, pattern string
		if err := rows.Scan(&channel, &pattern); err != nil {
			return restored, fmt.Errorf("failed to scan learned rule: %w", err)
		}

		var added bool
		var appendErr error
		if channel == kindName {
			added, appendErr = store.AppendSuspiciousName(pattern)
		} else {
			added, appendErr = store.Append(rules.Channel(channel), pattern)
		}
		if appendErr != nil {
			s.logger.Warn("Skipping invalid persisted rule",
				zap.String("channel", channel),
				zap.String("pattern", pattern),
				zap.Error(appendErr))
			continue
		}
		if added {
			restored++
		}
	}
	if err := rows.Err(); err != nil {
		return restored, fmt.Errorf("failed to iterate learned rules: %w", err)
	}

	s.logger.Info("Restored learned rules", zap.Int("count", restored))
	return restored, nil
}

// SaveApplied persists the outcome of a learner apply step
func (s *SQLiteRuleStore) SaveApplied(ctx context.Context, applied *learner.Applied) error {
	for _, pattern := range applied.SenderPatterns {
		if err := s.save(ctx, string(rules.ChannelSender), pattern); err != nil {
			return err
		}
	}
	for _, pattern := range applied.SubjectPatterns {
		if err := s.save(ctx, string(rules.ChannelSubject), pattern); err != nil {
			return err
		}
	}
	for _, word := range applied.NameWords {
		if err := s.save(ctx, kindName, word); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteRuleStore) save(ctx context.Context, channel, pattern string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO learned_rules (channel, pattern, added_at)
		VALUES (?, ?, ?)
	`, channel, pattern, time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to persist rule %q: %w", pattern, err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteRuleStore) Close() error {
	return s.db.Close()
}
