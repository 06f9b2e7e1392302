package ledger

import (
	"context"
	"log/slog"

	"recipewatch/internal/config"
	"recipewatch/internal/store"
)

// Ledger is the durable set of submission ids already processed.
type Ledger interface {
	Contains(ctx context.Context, id string) (bool, error)
	Add(ctx context.Context, id string) error
	Len(ctx context.Context) (int, error)
}

// Open returns the ledger selected by cfg.Ledger.Backend.
func Open(cfg *config.Config, st *store.Store, logger *slog.Logger) (Ledger, error) {
	if cfg.Ledger.Backend == config.LedgerFile {
		return OpenFile(cfg.Ledger.FilePath, logger)
	}
	return NewStoreLedger(st), nil
}

// StoreLedger records ids in the SQLite recipe database.
type StoreLedger struct {
	store *store.Store
}

// NewStoreLedger wraps st.
func NewStoreLedger(st *store.Store) *StoreLedger {
	return &StoreLedger{store: st}
}

func (l *StoreLedger) Contains(ctx context.Context, id string) (bool, error) {
	return l.store.Seen(ctx, id)
}

func (l *StoreLedger) Add(ctx context.Context, id string) error {
	return l.store.MarkSeen(ctx, id)
}

func (l *StoreLedger) Len(ctx context.Context) (int, error) {
	return l.store.SeenCount(ctx)
}
