package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenhq/lumen-go/assets"
	"github.com/lumenhq/lumen-go/client"
	"github.com/lumenhq/lumen-go/errors"
)

// fakeSaver records chunks and optionally fails. Assets whose name is in
// skip are reported as unchanged; the rest come back created with a
// server-assigned GUID.
type fakeSaver struct {
	chunks [][]assets.Asset
	err    error
	skip   map[string]bool
}

func (f *fakeSaver) Save(_ context.Context, toSave []assets.Asset, _ ...client.SaveOption) (*client.MutationResponse, error) {
	f.chunks = append(f.chunks, toSave)
	if f.err != nil {
		return nil, f.err
	}
	resp := &client.MutationResponse{GuidAssignments: map[string]string{}}
	for i, a := range toSave {
		if f.skip[assets.Name(a)] {
			continue
		}
		guid := fmt.Sprintf("srv-%d-%d", len(f.chunks), i)
		resp.GuidAssignments[a.Ref().Guid] = guid
		raw := fmt.Sprintf(`{"typeName":"Table","guid":%q,"attributes":{"qualifiedName":%q}}`,
			guid, assets.QualifiedName(a))
		resp.MutatedEntities.Create = append(resp.MutatedEntities.Create, json.RawMessage(raw))
	}
	return resp, nil
}

func makeTables(t *testing.T, n int) []assets.Asset {
	t.Helper()
	out := make([]assets.Asset, 0, n)
	for i := 0; i < n; i++ {
		tbl, err := assets.NewTable("T"+strconv.Itoa(i), "default/snowflake/1/DB/SCH")
		require.NoError(t, err)
		out = append(out, tbl)
	}
	return out
}

func TestBatch_FlushesAtMaxSize(t *testing.T) {
	saver := &fakeSaver{}
	b, err := NewBatch(saver, WithMaxSize(2))
	require.NoError(t, err)

	for _, a := range makeTables(t, 5) {
		require.NoError(t, b.Add(context.Background(), a))
	}
	require.NoError(t, b.Flush(context.Background()))

	require.Len(t, saver.chunks, 3)
	assert.Len(t, saver.chunks[0], 2)
	assert.Len(t, saver.chunks[1], 2)
	assert.Len(t, saver.chunks[2], 1)

	stats := b.Stats()
	assert.Equal(t, 5, stats.Added)
	assert.Equal(t, 5, stats.Created)
	assert.Zero(t, stats.Failed)
}

func TestBatch_AssignsNegativePlaceholderGuids(t *testing.T) {
	saver := &fakeSaver{}
	b, err := NewBatch(saver)
	require.NoError(t, err)

	tables := makeTables(t, 3)
	seen := map[string]bool{}
	for _, a := range tables {
		require.NoError(t, b.Add(context.Background(), a))
		guid := a.Ref().Guid
		n, convErr := strconv.ParseInt(guid, 10, 64)
		require.NoError(t, convErr, "placeholder GUID should be numeric, got %q", guid)
		assert.Negative(t, n)
		assert.False(t, seen[guid], "placeholder GUIDs must be unique")
		seen[guid] = true
	}

	// An asset that already has a GUID keeps it
	tbl := makeTables(t, 1)[0]
	tbl.Ref().Guid = "server-guid"
	require.NoError(t, b.Add(context.Background(), tbl))
	assert.Equal(t, "server-guid", tbl.Ref().Guid)
}

func TestBatch_TracksSavedPairs(t *testing.T) {
	saver := &fakeSaver{skip: map[string]bool{"T2": true}}
	b, err := NewBatch(saver, WithMaxSize(3))
	require.NoError(t, err)

	for _, a := range makeTables(t, 3) {
		require.NoError(t, b.Add(context.Background(), a))
	}

	created := b.Created()
	require.Len(t, created, 2)
	assert.Equal(t, "srv-1-0", created[0].Guid)
	assert.Equal(t, "default/snowflake/1/DB/SCH/T0", created[0].QualifiedName)
	assert.Equal(t, "default/snowflake/1/DB/SCH/T1", created[1].QualifiedName)
	assert.Empty(t, b.Updated())

	// The asset the server left unchanged is tracked as skipped
	skipped := b.Skipped()
	require.Len(t, skipped, 1)
	assert.Equal(t, "default/snowflake/1/DB/SCH/T2", skipped[0].QualifiedName)

	stats := b.Stats()
	assert.Equal(t, 2, stats.Created)
	assert.Equal(t, 1, stats.Skipped)
	assert.Zero(t, stats.Updated)
}

func TestBatch_EmptyFlushIsNoop(t *testing.T) {
	saver := &fakeSaver{}
	b, err := NewBatch(saver)
	require.NoError(t, err)

	require.NoError(t, b.Flush(context.Background()))
	assert.Empty(t, saver.chunks)
}

func TestBatch_FailurePropagatesByDefault(t *testing.T) {
	saver := &fakeSaver{err: errors.New("tenant down")}
	b, err := NewBatch(saver, WithMaxSize(1))
	require.NoError(t, err)

	addErr := b.Add(context.Background(), makeTables(t, 1)[0])
	require.Error(t, addErr)
	assert.Contains(t, addErr.Error(), "saving batch chunk")
	assert.Equal(t, 1, b.Stats().Failed)
}

func TestBatch_CaptureFailures(t *testing.T) {
	saver := &fakeSaver{err: errors.New("tenant down")}
	b, err := NewBatch(saver, WithMaxSize(2), WithCaptureFailures())
	require.NoError(t, err)

	for _, a := range makeTables(t, 4) {
		require.NoError(t, b.Add(context.Background(), a))
	}
	require.NoError(t, b.Flush(context.Background()))

	failures := b.Failures()
	require.Len(t, failures, 2)
	assert.Len(t, failures[0].Assets, 2)
	assert.Error(t, failures[0].Err)
	assert.Equal(t, 4, b.Stats().Failed)
}

func TestNewBatch_RequiresSaver(t *testing.T) {
	_, err := NewBatch(nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequestError(err))
}
