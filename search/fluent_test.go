package search

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenhq/lumen-go/assets"
)

// fakeSearcher serves canned pages and records the requests it saw
type fakeSearcher struct {
	pages    []*IndexSearchResponse
	requests []*IndexSearchRequest
	err      error
}

func (f *fakeSearcher) Search(_ context.Context, req *IndexSearchRequest) (*IndexSearchResponse, error) {
	clone := *req
	f.requests = append(f.requests, &clone)
	if f.err != nil {
		return nil, f.err
	}
	i := len(f.requests) - 1
	if i >= len(f.pages) {
		return &IndexSearchResponse{}, nil
	}
	return f.pages[i], nil
}

func entityPage(t *testing.T, names ...string) *IndexSearchResponse {
	t.Helper()
	resp := &IndexSearchResponse{}
	for _, n := range names {
		raw, err := json.Marshal(map[string]interface{}{
			"typeName":   "Table",
			"guid":       "guid-" + n,
			"attributes": map[string]interface{}{"name": n},
		})
		require.NoError(t, err)
		resp.Entities = append(resp.Entities, raw)
	}
	return resp
}

func TestToRequest_Defaults(t *testing.T) {
	req := NewFluentSearch().ToRequest()

	assert.Equal(t, DefaultPageSize, req.DSL.Size)
	assert.Equal(t, 0, req.DSL.From)
	assert.True(t, req.DSL.TrackTotalHits)
	assert.IsType(t, MatchAll{}, req.DSL.Query)
}

func TestToRequest_Clauses(t *testing.T) {
	req := NewFluentSearch().
		Where(ActiveAssets()).
		Where(ForType("Table")).
		WhereNot(Exists{Field: FieldCertificate}).
		WhereSome(ByName("A")).
		WhereSome(ByName("B")).
		MinSomes(2).
		PageSize(50).
		Sort(FieldName, SortAscending).
		IncludeOnResults("description", "userDescription").
		ToRequest()

	assert.Equal(t, 50, req.DSL.Size)
	assert.Equal(t, []string{"description", "userDescription"}, req.Attributes)

	b, ok := req.DSL.Query.(Bool)
	require.True(t, ok)
	assert.Len(t, b.Filter, 2)
	assert.Len(t, b.MustNot, 1)
	assert.Len(t, b.Should, 2)
	assert.Equal(t, 2, b.MinimumShouldMatch)
}

func TestToRequest_Aggregations(t *testing.T) {
	req := NewFluentSearch().
		Aggregate("by_type", TermsAgg(FieldTypeName, 20)).
		ToRequest()

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.Contains(t, string(data),
		`"aggregations":{"by_type":{"terms":{"field":"__typeName.keyword","size":20}}}`)
}

func TestForEach_PagesUntilShortPage(t *testing.T) {
	fake := &fakeSearcher{pages: []*IndexSearchResponse{
		entityPage(t, "A", "B"),
		entityPage(t, "C"),
	}}

	var seen []string
	err := NewFluentSearch().
		Where(ActiveAssets()).
		PageSize(2).
		ForEach(context.Background(), fake, func(a assets.Asset) error {
			seen = append(seen, assets.Name(a))
			return nil
		})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, seen)
	require.Len(t, fake.requests, 2)
	assert.Equal(t, 0, fake.requests[0].DSL.From)
	assert.Equal(t, 2, fake.requests[1].DSL.From)
}

func TestForEach_AppendsGuidTiebreak(t *testing.T) {
	fake := &fakeSearcher{pages: []*IndexSearchResponse{entityPage(t)}}

	err := NewFluentSearch().
		Sort(FieldName, SortAscending).
		ForEach(context.Background(), fake, func(assets.Asset) error { return nil })
	require.NoError(t, err)

	require.Len(t, fake.requests, 1)
	sorts := fake.requests[0].DSL.Sort
	require.Len(t, sorts, 2)
	assert.Equal(t, FieldGuid, sorts[1].Field)
}

func TestForEach_CallbackErrorStops(t *testing.T) {
	fake := &fakeSearcher{pages: []*IndexSearchResponse{entityPage(t, "A", "B")}}

	calls := 0
	err := NewFluentSearch().
		PageSize(2).
		ForEach(context.Background(), fake, func(assets.Asset) error {
			calls++
			return fmt.Errorf("stop here")
		})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestForEach_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := &fakeSearcher{pages: []*IndexSearchResponse{entityPage(t, "A")}}
	err := NewFluentSearch().
		ForEach(ctx, fake, func(assets.Asset) error { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fake.requests)
}

func TestResponseAssets_DecodesOnce(t *testing.T) {
	resp := entityPage(t, "A", "B")

	first, err := resp.Assets()
	require.NoError(t, err)
	second, err := resp.Assets()
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Equal(t, "A", assets.Name(first[0]))
	assert.Same(t, first[0], second[0])
}

func TestAggregationBucket_Decode(t *testing.T) {
	payload := `{
		"buckets": [
			{"key": "Table", "doc_count": 12,
			 "by_owner": {"buckets": [{"key": "jo", "doc_count": 3}]}},
			{"key": 42, "doc_count": 1}
		]
	}`

	var result AggregationResult
	require.NoError(t, json.Unmarshal([]byte(payload), &result))
	require.Len(t, result.Buckets, 2)

	assert.Equal(t, "Table", result.Buckets[0].KeyString())
	assert.Equal(t, int64(12), result.Buckets[0].DocCount)
	require.Contains(t, result.Buckets[0].Nested, "by_owner")
	assert.Equal(t, int64(3), result.Buckets[0].Nested["by_owner"].Buckets[0].DocCount)

	assert.Equal(t, "42", result.Buckets[1].KeyString())
}
