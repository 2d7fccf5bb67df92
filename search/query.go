// Package search builds index-search requests for the Lumen catalog and
// decodes their responses. The remote search index speaks an
// Elasticsearch-shaped DSL; this package covers the subset the SDK needs.
package search

import (
	"encoding/json"
)

// Query is a node in the search DSL. Implementations marshal to the exact
// JSON the index expects.
type Query interface {
	json.Marshaler
}

// Term matches documents where field holds exactly value
type Term struct {
	Field string
	Value interface{}
}

func (q Term) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"term": map[string]interface{}{
			q.Field: map[string]interface{}{"value": q.Value},
		},
	})
}

// Terms matches documents where field holds any of values
type Terms struct {
	Field  string
	Values []interface{}
}

func (q Terms) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"terms": map[string]interface{}{
			q.Field: q.Values,
		},
	})
}

// Prefix matches documents where field starts with value
type Prefix struct {
	Field string
	Value string
}

func (q Prefix) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"prefix": map[string]interface{}{
			q.Field: map[string]interface{}{"value": q.Value},
		},
	})
}

// Wildcard matches documents where field matches a glob-style pattern
type Wildcard struct {
	Field string
	Value string
}

func (q Wildcard) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"wildcard": map[string]interface{}{
			q.Field: map[string]interface{}{"value": q.Value},
		},
	})
}

// Exists matches documents that have any value for field
type Exists struct {
	Field string
}

func (q Exists) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"exists": map[string]interface{}{"field": q.Field},
	})
}

// Match runs full-text analysis on query against field
type Match struct {
	Field string
	Query string
}

func (q Match) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"match": map[string]interface{}{
			q.Field: map[string]interface{}{"query": q.Query},
		},
	})
}

// Range matches documents where field falls within the given bounds.
// Nil bounds are omitted.
type Range struct {
	Field string
	GT    interface{}
	GTE   interface{}
	LT    interface{}
	LTE   interface{}
}

func (q Range) MarshalJSON() ([]byte, error) {
	bounds := map[string]interface{}{}
	if q.GT != nil {
		bounds["gt"] = q.GT
	}
	if q.GTE != nil {
		bounds["gte"] = q.GTE
	}
	if q.LT != nil {
		bounds["lt"] = q.LT
	}
	if q.LTE != nil {
		bounds["lte"] = q.LTE
	}
	return json.Marshal(map[string]interface{}{
		"range": map[string]interface{}{q.Field: bounds},
	})
}

// MatchAll matches every document
type MatchAll struct{}

func (q MatchAll) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"match_all": map[string]interface{}{},
	})
}

// Bool composes sub-queries. Filter and Must both AND; Filter skips scoring.
type Bool struct {
	Filter             []Query
	Must               []Query
	Should             []Query
	MustNot            []Query
	MinimumShouldMatch int
}

func (q Bool) MarshalJSON() ([]byte, error) {
	body := map[string]interface{}{}
	if len(q.Filter) > 0 {
		body["filter"] = q.Filter
	}
	if len(q.Must) > 0 {
		body["must"] = q.Must
	}
	if len(q.Should) > 0 {
		body["should"] = q.Should
	}
	if len(q.MustNot) > 0 {
		body["must_not"] = q.MustNot
	}
	if q.MinimumShouldMatch > 0 {
		body["minimum_should_match"] = q.MinimumShouldMatch
	}
	return json.Marshal(map[string]interface{}{"bool": body})
}

// SortOrder is the direction of a sort
type SortOrder string

const (
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// SortItem orders results by one field
type SortItem struct {
	Field string
	Order SortOrder
}

func (s SortItem) MarshalJSON() ([]byte, error) {
	order := s.Order
	if order == "" {
		order = SortAscending
	}
	return json.Marshal(map[string]interface{}{
		s.Field: map[string]interface{}{"order": order},
	})
}
