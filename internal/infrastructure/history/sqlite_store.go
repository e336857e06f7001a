// Package history persists explain exchanges in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/explain-go/internal/domain"
	"github.com/doeshing/explain-go/internal/ports"
)

const schema = `CREATE TABLE IF NOT EXISTS History (
	Id INTEGER PRIMARY KEY AUTOINCREMENT,
	RecordedAt TEXT NOT NULL,
	InputText TEXT NOT NULL,
	OutputText TEXT NOT NULL,
	ModelName TEXT,
	PromptTokens INTEGER,
	CompletionTokens INTEGER,
	TotalTokens INTEGER
);`

// SQLiteStore implements ports.HistoryRepository.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	mu     sync.Mutex
	logger ports.Logger
}

// NewSQLiteStore opens (or creates) the database at path along with its directory.
func NewSQLiteStore(path string, logger ports.Logger) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("history database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	// One connection serializes writers on the single database file.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db, path: path, logger: logger}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if logger != nil {
		logger.Debug("history store ready", map[string]interface{}{"path": path})
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create history table: %w", err)
	}
	return nil
}

// Add inserts one exchange after validating it.
func (s *SQLiteStore) Add(ctx context.Context, entry domain.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `INSERT INTO History
		(RecordedAt, InputText, OutputText, ModelName, PromptTokens, CompletionTokens, TotalTokens)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.RecordedAt.UTC().Format(domain.TimestampFormat),
		entry.InputText,
		entry.OutputText,
		entry.ModelName,
		entry.PromptTokens,
		entry.CompletionTokens,
		entry.TotalTokens,
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// Latest returns up to limit entries, newest first. A non-positive limit yields none.
func (s *SQLiteStore) Latest(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		return []domain.HistoryEntry{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT Id, RecordedAt, InputText, OutputText,
		COALESCE(ModelName, ''), COALESCE(PromptTokens, 0), COALESCE(CompletionTokens, 0), COALESCE(TotalTokens, 0)
		FROM History ORDER BY RecordedAt DESC, Id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.HistoryEntry, 0, limit)
	for rows.Next() {
		var entry domain.HistoryEntry
		var recordedAt string
		if err := rows.Scan(&entry.ID, &recordedAt, &entry.InputText, &entry.OutputText,
			&entry.ModelName, &entry.PromptTokens, &entry.CompletionTokens, &entry.TotalTokens); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		if t, err := time.Parse(domain.TimestampFormat, recordedAt); err == nil {
			entry.RecordedAt = t.Local()
		} else if s.logger != nil {
			s.logger.Warn("unparseable history timestamp", map[string]interface{}{"id": entry.ID, "value": recordedAt})
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return entries, nil
}

// Clear deletes all history entries.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, "DELETE FROM History"); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
