// Package store provides a SQLite-backed record of earned badges.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/footprint/internal/presenter"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store persists earned badges per account. Badges are only ever added.
type Store struct {
	db *sql.DB
}

// Earned is one stored badge.
type Earned struct {
	ID       presenter.BadgeID
	EarnedAt time.Time
}

// Open opens or creates the badge database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(2000)")
	if err != nil {
		return nil, fmt.Errorf("opening badge db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Set returns the account's earned badges as a set.
func (s *Store) Set(account string) (presenter.BadgeSet, error) {
	list, err := s.List(account)
	if err != nil {
		return nil, err
	}
	set := make(presenter.BadgeSet, len(list))
	for _, e := range list {
		set[e.ID] = true
	}
	return set, nil
}

// List returns the account's earned badges, oldest first.
func (s *Store) List(account string) ([]Earned, error) {
	rows, err := s.db.Query(
		"SELECT badge_id, earned_at FROM badges WHERE account = ? ORDER BY earned_at, badge_id",
		account)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Earned
	for rows.Next() {
		var id, at string
		if err := rows.Scan(&id, &at); err != nil {
			return nil, err
		}
		e := Earned{ID: presenter.BadgeID(id)}
		e.EarnedAt, _ = time.Parse(time.RFC3339, at)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Earn records ids for the account and returns those that were not already
// stored. Existing rows keep their original earned_at.
func (s *Store) Earn(account string, ids ...presenter.BadgeID) ([]presenter.BadgeID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	var added []presenter.BadgeID
	for _, id := range ids {
		res, err := tx.Exec(
			"INSERT OR IGNORE INTO badges (account, badge_id, earned_at) VALUES (?, ?, ?)",
			account, string(id), now)
		if err != nil {
			return nil, err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added = append(added, id)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return added, nil
}

// Count returns how many badges the account has earned.
func (s *Store) Count(account string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM badges WHERE account = ?", account).Scan(&count)
	return count, err
}

// DataDir returns the platform-appropriate data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "footprint")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "footprint")
}

// DefaultPath returns the full path to the badge database.
func DefaultPath() string {
	return filepath.Join(DataDir(), "badges.db")
}

// AccountBadges binds a Store to one account.
type AccountBadges struct {
	store   *Store
	account string
}

// ForAccount returns the badge record for account.
func (s *Store) ForAccount(account string) *AccountBadges {
	return &AccountBadges{store: s, account: account}
}

// Earn records ids for the bound account.
func (a *AccountBadges) Earn(ids ...presenter.BadgeID) ([]presenter.BadgeID, error) {
	return a.store.Earn(a.account, ids...)
}

// Set returns the bound account's earned badges.
func (a *AccountBadges) Set() (presenter.BadgeSet, error) {
	return a.store.Set(a.account)
}
