package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/pulse/internal/core/search"
	"github.com/colonyops/pulse/internal/data/db"
)

// HistoryStore implements search.HistoryStore using SQLite.
type HistoryStore struct {
	db  *db.DB
	now func() time.Time
}

var _ search.HistoryStore = (*HistoryStore)(nil)

// NewHistoryStore creates a new SQLite-backed search history store.
func NewHistoryStore(db *db.DB) *HistoryStore {
	return &HistoryStore{db: db, now: time.Now}
}

// Load returns the saved history, most recent first.
func (s *HistoryStore) Load(ctx context.Context) ([]string, error) {
	items, err := s.db.Queries().ListSearchHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("list search history: %w", err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

// Replace overwrites the saved history in a single transaction.
func (s *HistoryStore) Replace(ctx context.Context, entries []string) error {
	updatedAt := s.now().UnixNano()
	err := s.db.WithTx(ctx, func(q *db.Queries) error {
		if err := q.DeleteSearchHistory(ctx); err != nil {
			return err
		}
		for i, entry := range entries {
			if err := q.InsertSearchHistory(ctx, db.InsertSearchHistoryParams{
				Position:  int64(i),
				Query:     entry,
				UpdatedAt: updatedAt,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace search history: %w", err)
	}
	return nil
}

// Clear deletes the saved history.
func (s *HistoryStore) Clear(ctx context.Context) error {
	if err := s.db.Queries().DeleteSearchHistory(ctx); err != nil {
		return fmt.Errorf("clear search history: %w", err)
	}
	return nil
}
