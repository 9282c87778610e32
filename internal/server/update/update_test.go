package update

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard-dev/taskboard/internal/common"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestBuilder_OnlyChangedFields(t *testing.T) {
	changes, err := NewBuilder().
		String("title", strPtr("A"), "A").
		Bool("done", boolPtr(true), false).
		Build()

	require.NoError(t, err)
	assert.Equal(t, []Change{{Field: "done", Value: true}}, changes)
}

func TestBuilder_NothingProvided(t *testing.T) {
	_, err := NewBuilder().
		String("title", nil, "A").
		Bool("done", nil, false).
		Build()

	assert.True(t, errors.Is(err, common.ErrNothingToUpdate))
}

func TestBuilder_AllEqual(t *testing.T) {
	_, err := NewBuilder().
		String("title", strPtr("A"), "A").
		String("description", strPtr(""), "").
		Bool("done", boolPtr(false), false).
		Build()

	assert.True(t, errors.Is(err, common.ErrNothingToUpdate))
}

func TestBuilder_FalsyValuesAreApplied(t *testing.T) {
	// Empty string and false are valid updates when they differ from the
	// stored value; presence is what matters, not truthiness.
	changes, err := NewBuilder().
		String("description", strPtr(""), "old text").
		Bool("done", boolPtr(false), true).
		Build()

	require.NoError(t, err)
	assert.Equal(t, []Change{
		{Field: "description", Value: ""},
		{Field: "done", Value: false},
	}, changes)
}

func TestBuilder_PreservesOfferOrder(t *testing.T) {
	changes, err := NewBuilder().
		String("name", strPtr("Bob"), "Ana").
		String("email", strPtr("b@x.com"), "a@x.com").
		Build()

	require.NoError(t, err)
	assert.Equal(t, []Change{
		{Field: "name", Value: "Bob"},
		{Field: "email", Value: "b@x.com"},
	}, changes)
}
