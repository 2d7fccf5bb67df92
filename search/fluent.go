package search

import (
	"context"

	"github.com/lumenhq/lumen-go/assets"
	"github.com/lumenhq/lumen-go/errors"
	"github.com/lumenhq/lumen-go/logger"
)

// Searcher executes index-search requests. The SDK client satisfies this;
// tests substitute fakes.
type Searcher interface {
	Search(ctx context.Context, req *IndexSearchRequest) (*IndexSearchResponse, error)
}

// FluentSearch assembles an index-search request incrementally. Where
// clauses become filters, WhereNot clauses become must_not, and WhereSome
// clauses become should with MinSomes as the minimum to match.
type FluentSearch struct {
	wheres     []Query
	whereNots  []Query
	whereSomes []Query
	minSomes   int
	pageSize   int
	sorts      []SortItem
	aggs       map[string]Aggregation
	attributes []string
	relations  []string
}

// NewFluentSearch starts an empty fluent search
func NewFluentSearch() *FluentSearch {
	return &FluentSearch{minSomes: 1}
}

// Where adds a clause every result must satisfy
func (f *FluentSearch) Where(q Query) *FluentSearch {
	f.wheres = append(f.wheres, q)
	return f
}

// WhereNot adds a clause no result may satisfy
func (f *FluentSearch) WhereNot(q Query) *FluentSearch {
	f.whereNots = append(f.whereNots, q)
	return f
}

// WhereSome adds an optional clause; MinSomes controls how many must hold
func (f *FluentSearch) WhereSome(q Query) *FluentSearch {
	f.whereSomes = append(f.whereSomes, q)
	return f
}

// MinSomes sets the minimum number of WhereSome clauses a result must
// satisfy. Defaults to 1.
func (f *FluentSearch) MinSomes(n int) *FluentSearch {
	f.minSomes = n
	return f
}

// PageSize overrides the default page size
func (f *FluentSearch) PageSize(n int) *FluentSearch {
	f.pageSize = n
	return f
}

// Sort appends a sort criterion
func (f *FluentSearch) Sort(field string, order SortOrder) *FluentSearch {
	f.sorts = append(f.sorts, SortItem{Field: field, Order: order})
	return f
}

// Aggregate attaches a named aggregation
func (f *FluentSearch) Aggregate(name string, agg Aggregation) *FluentSearch {
	if f.aggs == nil {
		f.aggs = map[string]Aggregation{}
	}
	f.aggs[name] = agg
	return f
}

// IncludeOnResults requests extra attributes on each returned asset
func (f *FluentSearch) IncludeOnResults(attrs ...string) *FluentSearch {
	f.attributes = append(f.attributes, attrs...)
	return f
}

// IncludeOnRelations requests extra attributes on related assets
func (f *FluentSearch) IncludeOnRelations(attrs ...string) *FluentSearch {
	f.relations = append(f.relations, attrs...)
	return f
}

// ToRequest freezes the builder into a request
func (f *FluentSearch) ToRequest() *IndexSearchRequest {
	size := f.pageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	b := Bool{Filter: f.wheres, MustNot: f.whereNots}
	if len(f.whereSomes) > 0 {
		b.Should = f.whereSomes
		b.MinimumShouldMatch = f.minSomes
	}

	var q Query = b
	if len(f.wheres) == 0 && len(f.whereNots) == 0 && len(f.whereSomes) == 0 {
		q = MatchAll{}
	}

	return &IndexSearchRequest{
		DSL: DSL{
			From:           0,
			Size:           size,
			Query:          q,
			Sort:           f.sorts,
			Aggregations:   f.aggs,
			TrackTotalHits: true,
		},
		Attributes:         f.attributes,
		RelationAttributes: f.relations,
	}
}

// Execute runs the search and returns the first page
func (f *FluentSearch) Execute(ctx context.Context, s Searcher) (*IndexSearchResponse, error) {
	return s.Search(ctx, f.ToRequest())
}

// ForEach pages through the full result set, invoking fn for every asset.
// Returning an error from fn stops the iteration and propagates the error.
// A GUID tiebreak sort is appended so pages stay stable across requests.
func (f *FluentSearch) ForEach(ctx context.Context, s Searcher, fn func(assets.Asset) error) error {
	req := f.ToRequest()

	stable := false
	for _, item := range req.DSL.Sort {
		if item.Field == FieldGuid {
			stable = true
		}
	}
	if !stable {
		req.DSL.Sort = append(req.DSL.Sort, SortItem{Field: FieldGuid, Order: SortAscending})
	}

	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "search iteration cancelled")
		}

		page, err := s.Search(ctx, req)
		if err != nil {
			return err
		}
		list, err := page.Assets()
		if err != nil {
			return err
		}
		for _, a := range list {
			if err := fn(a); err != nil {
				return err
			}
		}

		total += len(list)
		if len(list) < req.DSL.Size {
			logger.Debugw("search iteration complete",
				logger.FieldCount, total)
			return nil
		}
		req.DSL.From += req.DSL.Size
	}
}
