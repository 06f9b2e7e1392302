package ledger

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"

	"recipewatch/internal/logging"
)

// FileLedger is a one-id-per-line text file mirrored in memory.
type FileLedger struct {
	path   string
	lock   *flock.Flock
	logger *slog.Logger

	mu  sync.Mutex
	ids map[string]struct{}
}

// OpenFile loads every id from path. A missing file is an empty ledger.
func OpenFile(path string, logger *slog.Logger) (*FileLedger, error) {
	ids, err := readIDs(path)
	if err != nil {
		return nil, err
	}
	l := &FileLedger{
		path:   path,
		lock:   flock.New(path + ".lock"),
		logger: logging.NewComponentLogger(logger, "ledger"),
		ids:    make(map[string]struct{}, len(ids)),
	}
	for _, id := range ids {
		l.ids[id] = struct{}{}
	}
	l.logger.Debug("file ledger loaded",
		logging.String("path", path),
		logging.Int("ids", len(l.ids)),
	)
	return l, nil
}

func (l *FileLedger) Contains(_ context.Context, id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.ids[id]
	return ok, nil
}

// Add appends id to the file and the in-memory set. Ids already present are
// not written again.
func (l *FileLedger) Add(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("ledger add: empty id")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.ids[id]; ok {
		return nil
	}

	if dir := filepath.Dir(l.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("ensure ledger directory: %w", err)
		}
	}
	locked, err := l.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock ledger: %w", err)
	}
	if !locked {
		return errors.New("lock ledger: not acquired")
	}
	defer func() {
		if err := l.lock.Unlock(); err != nil {
			l.logger.Warn("failed to release ledger lock", logging.Error(err))
		}
	}()

	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	if _, err := io.WriteString(file, id+"\n"); err != nil {
		_ = file.Close()
		return fmt.Errorf("append ledger: %w", err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return fmt.Errorf("sync ledger: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close ledger: %w", err)
	}
	l.ids[id] = struct{}{}
	return nil
}

func (l *FileLedger) Len(context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ids), nil
}

// Path returns the backing file.
func (l *FileLedger) Path() string {
	return l.path
}

func readIDs(path string) ([]string, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer file.Close()

	var ids []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if id := strings.TrimSpace(scanner.Text()); id != "" {
			ids = append(ids, id)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	return ids, nil
}
