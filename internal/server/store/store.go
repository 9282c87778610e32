// Package store provides the record-store gateway used by all entity
// services: single-table access keyed by a composite partition/sort key.
package store

import (
	"context"

	"github.com/taskboard-dev/taskboard/internal/server/update"
)

// Key identifies one item in the table.
type Key struct {
	PK string
	SK string
}

// Gateway is the thin contract every entity service talks to. Individual
// operations are atomic per the backing store's own guarantees; read-then-
// write sequences built on top of them are not.
type Gateway interface {
	// Get loads the item at key into out (a pointer to a struct with
	// dynamodbav tags). Returns common.ErrorNotFound when absent.
	Get(ctx context.Context, key Key, out any) error

	// Put writes the full item, replacing any existing one at the same key.
	Put(ctx context.Context, item any) error

	// Update applies the given field changes to an existing item. Returns
	// common.ErrorNotFound when no item exists at key.
	Update(ctx context.Context, key Key, changes []update.Change) error

	// Delete removes the item at key and loads the prior value into out
	// (may be nil to discard it). Returns common.ErrorNotFound when nothing
	// was there to delete.
	Delete(ctx context.Context, key Key, out any) error

	// QueryPrefix loads every item under pk whose sort key begins with
	// skPrefix into out (a pointer to a slice).
	QueryPrefix(ctx context.Context, pk, skPrefix string, out any) error

	// ScanEquals walks the whole table and loads the items whose attributes
	// equal every entry of match into out (a pointer to a slice). O(table
	// size) — kept for parity with the source's lookup-by-email; a secondary
	// index would be the scalable replacement.
	ScanEquals(ctx context.Context, match map[string]any, out any) error
}
