// Package store is the narrow gateway to the external key-value state. The
// engine and controllers only ever see Get/Set/SetPermanent/Delete on JSON
// values; durability and expiry are the backend's concern.
package store

import (
	"context"
	"time"
)

// Keys used by the sync engine and read paths.
const (
	KeyMeditation    = "data:meditation"
	KeyPractice      = "data:practice"
	KeyClass         = "data:class"
	KeyMeta          = "data:meta"
	KeyActivities    = "activities:all"
	KeySubmissions   = "submissions:all"
	KeyMembers       = "members:all"
	KeySyncedMembers = "members:synced"
	KeyTeams         = "data:teams"
)

// UpdateFunc transforms the raw JSON at a key into its replacement value.
// found is false when the key does not exist. Returning an error aborts the
// update without writing.
type UpdateFunc func(current []byte, found bool) (interface{}, error)

// Store maps string keys to JSON encoded structured values.
type Store interface {
	// Get unmarshals the value at key into out. The bool reports whether the
	// key existed.
	Get(ctx context.Context, key string, out interface{}) (bool, error)
	// Set writes a value with a TTL. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// SetPermanent writes a value with no expiry; the durable write path.
	SetPermanent(ctx context.Context, key string, value interface{}) error
	// Update applies fn to the value at key as an optimistic read-modify-write:
	// a concurrent write to the same key retries fn instead of being lost.
	// The written value has no expiry.
	Update(ctx context.Context, key string, fn UpdateFunc) error
	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
