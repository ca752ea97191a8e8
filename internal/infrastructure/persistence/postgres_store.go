package persistence

import (
	"context"
	"fmt"

	"github.com/zinrai/dns-directory-go/internal/domain"
	"github.com/zinrai/dns-directory-go/internal/infrastructure/db"
)

const createEntriesTable = `
	CREATE TABLE IF NOT EXISTS directory_entries (
		name    TEXT PRIMARY KEY,
		address TEXT NOT NULL UNIQUE
	)
`

// PostgresStore keeps entries in the directory_entries table. The table is
// created on first load.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Location() string {
	return "postgres:directory_entries"
}

func (s *PostgresStore) Load(ctx context.Context) ([]domain.Entry, error) {
	if _, err := s.db.ExecContext(ctx, createEntriesTable); err != nil {
		return nil, s.fail("create table in", err)
	}

	query := `SELECT name, address FROM directory_entries ORDER BY name`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, s.fail("query", err)
	}
	defer rows.Close()

	var entries []domain.Entry
	seen := newUniqueness()
	row := 0
	for rows.Next() {
		row++
		var nameStr, addressStr string
		if err := rows.Scan(&nameStr, &addressStr); err != nil {
			return nil, s.fail("scan row of", err)
		}
		name, err := domain.NewMachineName(nameStr)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		addr, err := domain.NewIPv4Address(addressStr)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		entry := domain.NewEntry(name, addr)
		if err := seen.check(entry); err != nil {
			return nil, fmt.Errorf("row %d: %w: %s", row, err, entry)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("read", err)
	}
	return entries, nil
}

// Save replaces the table content with entries inside one transaction.
func (s *PostgresStore) Save(ctx context.Context, entries []domain.Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.fail("begin transaction on", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM directory_entries`); err != nil {
		return s.fail("clear", err)
	}

	query := `INSERT INTO directory_entries (name, address) VALUES ($1, $2)`
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, query, e.Name.String(), e.Address.String()); err != nil {
			return s.fail("insert into", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return s.fail("commit transaction on", err)
	}
	return nil
}

func (s *PostgresStore) fail(op string, err error) error {
	return &domain.PersistenceError{Op: op, Location: s.Location(), Err: err}
}
