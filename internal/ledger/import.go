package ledger

import (
	"context"
	"fmt"
	"time"
)

const lockRetryDelay = 50 * time.Millisecond

// Import copies every id of the file ledger at path into dst and returns how
// many ids were not already present.
func Import(ctx context.Context, path string, dst Ledger) (int, error) {
	ids, err := readIDs(path)
	if err != nil {
		return 0, err
	}
	added := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return added, err
		}
		present, err := dst.Contains(ctx, id)
		if err != nil {
			return added, fmt.Errorf("import %s: %w", id, err)
		}
		if present {
			continue
		}
		if err := dst.Add(ctx, id); err != nil {
			return added, fmt.Errorf("import %s: %w", id, err)
		}
		added++
	}
	return added, nil
}
