package storage

import "context"

// Store defines the interface for admission-control storage backends.
// Concrete backends (in-memory map, Redis, any get/set style cache) each get
// their own adapter implementing this one method set, chosen at construction
// time.
//
// Records are stored without a backend TTL: window expiry is decided by the
// counter engine comparing the record's reset timestamp against the clock, so
// a record must survive past its window for the engine to tell "reset due"
// apart from "never seen".
type Store interface {
	// Exists reports whether a record is present for the given key.
	// A missing key is not an error.
	Exists(ctx context.Context, key string) (bool, error)

	// Get retrieves the raw record for the given key, or "" if absent.
	Get(ctx context.Context, key string) (string, error)

	// Set unconditionally upserts the record for the given key.
	Set(ctx context.Context, key string, value string) error

	// Delete removes the key from storage.
	Delete(ctx context.Context, key string) error

	// Ping checks if the storage is accessible.
	Ping(ctx context.Context) error

	// Close closes the storage connection.
	Close() error
}
