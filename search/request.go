package search

import (
	"encoding/json"
	"fmt"

	"github.com/lumenhq/lumen-go/assets"
	"github.com/lumenhq/lumen-go/errors"
)

// DefaultPageSize is the page size used when a request does not set one
const DefaultPageSize = 300

// Aggregation is a bucket aggregation request, optionally nested
type Aggregation struct {
	Terms  *AggTerms              `json:"terms,omitempty"`
	Nested map[string]Aggregation `json:"aggregations,omitempty"`
}

// AggTerms buckets documents by distinct values of a field
type AggTerms struct {
	Field string `json:"field"`
	Size  int    `json:"size,omitempty"`
}

// TermsAgg builds a terms aggregation over field returning at most size
// buckets
func TermsAgg(field string, size int) Aggregation {
	return Aggregation{Terms: &AggTerms{Field: field, Size: size}}
}

// DSL is the query portion of an index-search request
type DSL struct {
	From           int                    `json:"from"`
	Size           int                    `json:"size"`
	Query          Query                  `json:"query,omitempty"`
	Sort           []SortItem             `json:"sort,omitempty"`
	Aggregations   map[string]Aggregation `json:"aggregations,omitempty"`
	TrackTotalHits bool                   `json:"track_total_hits"`
}

// IndexSearchRequest is the full request envelope sent to the search
// endpoint
type IndexSearchRequest struct {
	DSL                DSL      `json:"dsl"`
	Attributes         []string `json:"attributes,omitempty"`
	RelationAttributes []string `json:"relationAttributes,omitempty"`
	SuppressLogs       bool     `json:"suppressLogs,omitempty"`
}

// IndexSearchResponse is the raw response from the search endpoint.
// Entities stay as raw JSON until Assets is called so aggregation-only
// searches never pay for decoding.
type IndexSearchResponse struct {
	ApproximateCount int64                        `json:"approximateCount"`
	Entities         []json.RawMessage            `json:"entities"`
	Aggregations     map[string]AggregationResult `json:"aggregations,omitempty"`

	decoded []assets.Asset
}

// AggregationResult holds the buckets returned for one named aggregation
type AggregationResult struct {
	Buckets []AggregationBucket `json:"buckets"`
}

// AggregationBucket is one bucket of a terms aggregation
type AggregationBucket struct {
	Key      interface{}                  `json:"key"`
	DocCount int64                        `json:"doc_count"`
	Nested   map[string]AggregationResult `json:"-"`
}

// KeyString renders the bucket key as a string regardless of its JSON type
func (b AggregationBucket) KeyString() string {
	switch k := b.Key.(type) {
	case string:
		return k
	case float64:
		if k == float64(int64(k)) {
			return fmt.Sprintf("%d", int64(k))
		}
		return fmt.Sprintf("%g", k)
	default:
		return fmt.Sprintf("%v", k)
	}
}

// UnmarshalJSON picks nested sub-aggregations out of each bucket. The index
// inlines them beside key and doc_count, so anything unrecognized that looks
// like a bucket list is treated as a nested result.
func (b *AggregationBucket) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["key"]; ok {
		if err := json.Unmarshal(v, &b.Key); err != nil {
			return err
		}
	}
	if v, ok := raw["doc_count"]; ok {
		if err := json.Unmarshal(v, &b.DocCount); err != nil {
			return err
		}
	}
	for name, v := range raw {
		if name == "key" || name == "doc_count" || name == "key_as_string" {
			continue
		}
		var nested AggregationResult
		if err := json.Unmarshal(v, &nested); err != nil {
			continue
		}
		if nested.Buckets == nil {
			continue
		}
		if b.Nested == nil {
			b.Nested = map[string]AggregationResult{}
		}
		b.Nested[name] = nested
	}
	return nil
}

// Assets decodes the response entities into typed assets. The decode runs
// once; later calls return the same slice.
func (r *IndexSearchResponse) Assets() ([]assets.Asset, error) {
	if r.decoded != nil {
		return r.decoded, nil
	}
	list := make([]assets.Asset, 0, len(r.Entities))
	for i, raw := range r.Entities {
		a, err := assets.UnmarshalAsset(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding search entity %d", i)
		}
		list = append(list, a)
	}
	r.decoded = list
	return list, nil
}

// Count returns the number of entities on this page
func (r *IndexSearchResponse) Count() int {
	return len(r.Entities)
}
