package limiter

import (
	"fmt"
	"strconv"
	"strings"
)

// record is the persisted counter state for one fingerprint, stored in the
// backend as "<count>:<unix_epoch_seconds>". The encoding is part of the
// deployed state contract and must not change shape.
type record struct {
	Count   int64 // hits observed in the current window
	ResetAt int64 // unix second at which the window (or lockout) ends
}

func (rec record) encode() string {
	return fmt.Sprintf("%d:%d", rec.Count, rec.ResetAt)
}

// parseRecord decodes a stored record. Any malformed input is an error; the
// engine treats that as if the fingerprint had never been seen.
func parseRecord(raw string) (record, error) {
	countStr, resetStr, ok := strings.Cut(raw, ":")
	if !ok {
		return record{}, fmt.Errorf("malformed record %q", raw)
	}

	count, err := strconv.ParseInt(countStr, 10, 64)
	if err != nil {
		return record{}, fmt.Errorf("malformed record count %q: %w", raw, err)
	}
	if count < 0 {
		return record{}, fmt.Errorf("negative record count %q", raw)
	}

	resetAt, err := strconv.ParseInt(resetStr, 10, 64)
	if err != nil {
		return record{}, fmt.Errorf("malformed record reset %q: %w", raw, err)
	}

	return record{Count: count, ResetAt: resetAt}, nil
}
