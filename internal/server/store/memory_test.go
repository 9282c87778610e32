package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskboard-dev/taskboard/internal/common"
	"github.com/taskboard-dev/taskboard/internal/server/update"
)

type testItem struct {
	PK    string `dynamodbav:"PK"`
	SK    string `dynamodbav:"SK"`
	Title string `dynamodbav:"title"`
	Done  bool   `dynamodbav:"done"`
}

func TestMemoryGateway_GetPut(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	err := g.Get(ctx, Key{PK: "USER#1", SK: "PROFILE"}, &testItem{})
	assert.True(t, errors.Is(err, common.ErrorNotFound))

	require.NoError(t, g.Put(ctx, &testItem{PK: "USER#1", SK: "PROFILE", Title: "a"}))

	var got testItem
	require.NoError(t, g.Get(ctx, Key{PK: "USER#1", SK: "PROFILE"}, &got))
	assert.Equal(t, "a", got.Title)
}

func TestMemoryGateway_Update(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	err := g.Update(ctx, Key{PK: "USER#1", SK: "PROFILE"}, []update.Change{{Field: "title", Value: "x"}})
	assert.True(t, errors.Is(err, common.ErrorNotFound))

	require.NoError(t, g.Put(ctx, &testItem{PK: "USER#1", SK: "PROFILE", Title: "a", Done: false}))
	require.NoError(t, g.Update(ctx, Key{PK: "USER#1", SK: "PROFILE"}, []update.Change{
		{Field: "title", Value: "b"},
		{Field: "done", Value: true},
	}))

	var got testItem
	require.NoError(t, g.Get(ctx, Key{PK: "USER#1", SK: "PROFILE"}, &got))
	assert.Equal(t, "b", got.Title)
	assert.True(t, got.Done)
}

func TestMemoryGateway_DeleteReturnsPriorValue(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	err := g.Delete(ctx, Key{PK: "USER#1", SK: "PROFILE"}, nil)
	assert.True(t, errors.Is(err, common.ErrorNotFound))

	require.NoError(t, g.Put(ctx, &testItem{PK: "USER#1", SK: "PROFILE", Title: "a"}))

	var prior testItem
	require.NoError(t, g.Delete(ctx, Key{PK: "USER#1", SK: "PROFILE"}, &prior))
	assert.Equal(t, "a", prior.Title)

	err = g.Get(ctx, Key{PK: "USER#1", SK: "PROFILE"}, &testItem{})
	assert.True(t, errors.Is(err, common.ErrorNotFound))
	assert.Equal(t, 0, g.Len())
}

func TestMemoryGateway_QueryPrefix(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	require.NoError(t, g.Put(ctx, &testItem{PK: "USER#1", SK: "TASK#b", Title: "second"}))
	require.NoError(t, g.Put(ctx, &testItem{PK: "USER#1", SK: "TASK#a", Title: "first"}))
	require.NoError(t, g.Put(ctx, &testItem{PK: "USER#1", SK: "PROFILE", Title: "profile"}))
	require.NoError(t, g.Put(ctx, &testItem{PK: "USER#2", SK: "TASK#c", Title: "other user"}))

	var got []testItem
	require.NoError(t, g.QueryPrefix(ctx, "USER#1", "TASK#", &got))

	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Title, "results must be ordered by sort key")
	assert.Equal(t, "second", got[1].Title)
}

func TestMemoryGateway_ScanEquals(t *testing.T) {
	g := NewMemoryGateway()
	ctx := context.Background()

	require.NoError(t, g.Put(ctx, &testItem{PK: "USER#1", SK: "PROFILE", Title: "ana"}))
	require.NoError(t, g.Put(ctx, &testItem{PK: "USER#2", SK: "PROFILE", Title: "bob"}))
	require.NoError(t, g.Put(ctx, &testItem{PK: "USER#1", SK: "TASK#a", Title: "ana"}))

	var got []testItem
	require.NoError(t, g.ScanEquals(ctx, map[string]any{"title": "ana", "SK": "PROFILE"}, &got))

	require.Len(t, got, 1)
	assert.Equal(t, "USER#1", got[0].PK)

	got = nil
	require.NoError(t, g.ScanEquals(ctx, map[string]any{"SK": "PROFILE"}, &got))
	assert.Len(t, got, 2)
}
