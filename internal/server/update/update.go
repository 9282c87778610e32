// Package update computes minimal partial updates: which requested fields
// were actually provided and differ from the stored record.
package update

import "github.com/taskboard-dev/taskboard/internal/common"

// Change is a single field assignment produced by the Builder.
type Change struct {
	Field string
	Value any
}

// Builder diffs requested field values against the currently stored record.
// A requested value is a pointer: nil means "not provided". Presence is
// checked explicitly, never through zero-value truthiness, so an empty string
// or a false boolean is a legitimate update when it differs from the stored
// value. The rule is the same for every field type.
//
// Changes keep the order in which fields were offered to the builder.
type Builder struct {
	changes []Change
}

func NewBuilder() *Builder {
	return &Builder{}
}

// String offers a string field: recorded when requested is non-nil and
// differs from current.
func (b *Builder) String(field string, requested *string, current string) *Builder {
	if requested != nil && *requested != current {
		b.changes = append(b.changes, Change{Field: field, Value: *requested})
	}
	return b
}

// Bool offers a boolean field: recorded when requested is non-nil and differs
// from current.
func (b *Builder) Bool(field string, requested *bool, current bool) *Builder {
	if requested != nil && *requested != current {
		b.changes = append(b.changes, Change{Field: field, Value: *requested})
	}
	return b
}

// Build returns the accumulated changes, or common.ErrNothingToUpdate when no
// offered field was both provided and different. An empty result must never
// reach the store as a no-op write.
func (b *Builder) Build() ([]Change, error) {
	if len(b.changes) == 0 {
		return nil, common.ErrNothingToUpdate
	}
	return b.changes, nil
}
