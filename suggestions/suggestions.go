// Package suggestions infers metadata for an asset from how similarly
// named assets across the catalog are already described, owned, tagged
// and linked to glossary terms. It runs one aggregation-only search and
// turns the buckets into ranked candidate values.
package suggestions

import (
	"context"

	"github.com/lumenhq/lumen-go/assets"
	"github.com/lumenhq/lumen-go/errors"
	"github.com/lumenhq/lumen-go/search"
)

// DefaultMaxSuggestions caps how many candidates are returned per kind
const DefaultMaxSuggestions = 5

// Kind selects which metadata to aggregate suggestions for
type Kind string

const (
	SystemDescriptions Kind = "SystemDescriptions"
	UserDescriptions   Kind = "UserDescriptions"
	IndividualOwners   Kind = "IndividualOwners"
	GroupOwners        Kind = "GroupOwners"
	Tags               Kind = "Tags"
	Terms              Kind = "Terms"
)

// aggregation name and index field per kind
var kindFields = map[Kind]struct {
	aggName string
	field   string
}{
	SystemDescriptions: {"group_by_description", search.FieldDescription},
	UserDescriptions:   {"group_by_userDescription", search.FieldUserDesc},
	IndividualOwners:   {"group_by_ownerUsers", search.FieldOwnerUsers},
	GroupOwners:        {"group_by_ownerGroups", search.FieldOwnerGroups},
	Tags:               {"group_by_tags", search.FieldTags},
	Terms:              {"group_by_terms", search.FieldTerms},
}

// Finder builds and runs a suggestion search for one asset
type Finder struct {
	asset      assets.Asset
	includes   []Kind
	otherTypes []string
	maxPerKind int
	withinConn bool
}

// FinderFor starts a suggestion search seeded from the given asset. The
// asset needs a name and a type; candidates come from assets of the same
// type (plus any WithOtherType additions) carrying the same name.
func FinderFor(a assets.Asset) *Finder {
	return &Finder{asset: a, maxPerKind: DefaultMaxSuggestions}
}

// Include adds a kind of suggestion to fetch. Order is preserved;
// duplicates are ignored.
func (f *Finder) Include(kind Kind) *Finder {
	for _, k := range f.includes {
		if k == kind {
			return f
		}
	}
	f.includes = append(f.includes, kind)
	return f
}

// IncludeAll fetches every kind of suggestion
func (f *Finder) IncludeAll() *Finder {
	for _, k := range []Kind{
		SystemDescriptions, UserDescriptions,
		IndividualOwners, GroupOwners, Tags, Terms,
	} {
		f.Include(k)
	}
	return f
}

// WithOtherType widens the candidate pool to another asset type. A Table
// can draw suggestions from Views carrying the same name, for instance.
func (f *Finder) WithOtherType(typeName string) *Finder {
	f.otherTypes = append(f.otherTypes, typeName)
	return f
}

// WithinSameConnection restricts candidates to the asset's own connection
func (f *Finder) WithinSameConnection() *Finder {
	f.withinConn = true
	return f
}

// MaxSuggestions overrides the per-kind candidate cap
func (f *Finder) MaxSuggestions(n int) *Finder {
	if n > 0 {
		f.maxPerKind = n
	}
	return f
}

// validate checks the finder can produce a meaningful search
func (f *Finder) validate() error {
	if f.asset == nil {
		return errors.NewInvalidRequestError("asset is required")
	}
	if f.asset.Ref().TypeName == "" {
		return errors.NewInvalidRequestError("type_name is required")
	}
	if assets.Name(f.asset) == "" {
		return errors.NewInvalidRequestError("name is required")
	}
	if len(f.includes) == 0 {
		return errors.NewInvalidRequestError("includes is required")
	}
	return nil
}

// ToRequest freezes the finder into an aggregation-only search request
func (f *Finder) ToRequest() (*search.IndexSearchRequest, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	types := append([]string{f.asset.Ref().TypeName}, f.otherTypes...)

	fs := search.NewFluentSearch().
		Where(search.ActiveAssets()).
		Where(search.ForTypes(types...)).
		Where(search.ByName(assets.Name(f.asset))).
		PageSize(1)
	if qn := assets.QualifiedName(f.asset); qn != "" {
		fs.WhereNot(search.ByQualifiedName(qn))
	}
	if f.withinConn {
		if connQN := f.asset.BaseAttributes().ConnectionQualifiedName; connQN != "" {
			fs.Where(search.WithinConnection(connQN))
		}
	}

	for _, kind := range f.includes {
		binding := kindFields[kind]
		fs.Aggregate(binding.aggName, search.TermsAgg(binding.field, f.maxPerKind))
	}

	req := fs.ToRequest()
	req.DSL.Size = 0 // buckets only, no hits
	req.SuppressLogs = true
	return req, nil
}

// Get runs the suggestion search and extracts ranked candidates
func (f *Finder) Get(ctx context.Context, s search.Searcher) (*Response, error) {
	req, err := f.ToRequest()
	if err != nil {
		return nil, err
	}

	resp, err := s.Search(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "suggestion search failed")
	}

	result := &Response{}
	for _, kind := range f.includes {
		binding := kindFields[kind]
		agg, ok := resp.Aggregations[binding.aggName]
		if !ok {
			continue
		}
		items := bucketsToSuggestions(agg.Buckets)
		switch kind {
		case SystemDescriptions:
			result.SystemDescriptions = items
		case UserDescriptions:
			result.UserDescriptions = items
		case IndividualOwners:
			result.OwnerUsers = items
		case GroupOwners:
			result.OwnerGroups = items
		case Tags:
			result.Tags = items
		case Terms:
			result.Terms = items
		}
	}
	return result, nil
}

func bucketsToSuggestions(buckets []search.AggregationBucket) []Suggestion {
	items := make([]Suggestion, 0, len(buckets))
	for _, b := range buckets {
		value := b.KeyString()
		if value == "" {
			continue
		}
		items = append(items, Suggestion{Value: value, Count: b.DocCount})
	}
	return items
}
