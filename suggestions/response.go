package suggestions

import (
	"github.com/lumenhq/lumen-go/assets"
)

// Suggestion is one candidate value with the number of assets carrying it
type Suggestion struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// Response holds ranked suggestions per kind, highest count first as
// returned by the index.
type Response struct {
	SystemDescriptions []Suggestion `json:"systemDescriptions,omitempty"`
	UserDescriptions   []Suggestion `json:"userDescriptions,omitempty"`
	OwnerUsers         []Suggestion `json:"ownerUsers,omitempty"`
	OwnerGroups        []Suggestion `json:"ownerGroups,omitempty"`
	Tags               []Suggestion `json:"tags,omitempty"`
	Terms              []Suggestion `json:"terms,omitempty"`
}

// IsEmpty reports whether the search produced no candidates at all
func (r *Response) IsEmpty() bool {
	return len(r.SystemDescriptions) == 0 &&
		len(r.UserDescriptions) == 0 &&
		len(r.OwnerUsers) == 0 &&
		len(r.OwnerGroups) == 0 &&
		len(r.Tags) == 0 &&
		len(r.Terms) == 0
}

// ApplyOptions tunes how suggestions are written onto an asset
type ApplyOptions struct {
	// AllowMultiple applies the full candidate set for owners, tags and
	// terms instead of only the top-ranked value. Descriptions are always
	// single-valued.
	AllowMultiple bool
}

// Applied reports which suggestion kinds were written onto the asset,
// so callers can enable tag or term replacement on the follow-up save
// only for the kinds that actually changed.
type Applied struct {
	Description bool
	Owners      bool
	Tags        bool
	Terms       bool
}

// Any reports whether any kind was applied
func (ap Applied) Any() bool {
	return ap.Description || ap.Owners || ap.Tags || ap.Terms
}

// Apply writes the top-ranked suggestions onto the asset in place.
// Descriptions follow a preference rule: the best user description wins
// unless the best system description's count strictly exceeds it. An
// empty response is a no-op. Returns true when anything changed.
func (r *Response) Apply(a assets.Asset) bool {
	return r.ApplyWithOptions(a, ApplyOptions{}).Any()
}

// ApplyWithOptions is Apply with explicit options, reporting per kind
// what was written.
func (r *Response) ApplyWithOptions(a assets.Asset, opts ApplyOptions) Applied {
	var applied Applied
	if a == nil || r.IsEmpty() {
		return applied
	}

	attrs := a.BaseAttributes()

	if desc, ok := r.bestDescription(); ok {
		attrs.UserDescription = desc
		applied.Description = true
	}

	if values := pickValues(r.OwnerUsers, opts.AllowMultiple); len(values) > 0 {
		attrs.OwnerUsers = values
		applied.Owners = true
	}
	if values := pickValues(r.OwnerGroups, opts.AllowMultiple); len(values) > 0 {
		attrs.OwnerGroups = values
		applied.Owners = true
	}

	if values := pickValues(r.Tags, opts.AllowMultiple); len(values) > 0 {
		a.Ref().Tags = values
		applied.Tags = true
	}

	// Term candidates are GUIDs, so the references are anchored by GUID
	if values := pickValues(r.Terms, opts.AllowMultiple); len(values) > 0 {
		refs := make([]assets.Reference, 0, len(values))
		for _, guid := range values {
			refs = append(refs, assets.RefByGuid(guid))
		}
		a.Ref().Terms = refs
		applied.Terms = true
	}

	return applied
}

// bestDescription arbitrates between the top user and system
// descriptions. User descriptions carry human intent, so ties go to them;
// only a strictly higher system count overrides.
func (r *Response) bestDescription() (string, bool) {
	var user, system *Suggestion
	if len(r.UserDescriptions) > 0 {
		user = &r.UserDescriptions[0]
	}
	if len(r.SystemDescriptions) > 0 {
		system = &r.SystemDescriptions[0]
	}

	switch {
	case user == nil && system == nil:
		return "", false
	case user == nil:
		return system.Value, true
	case system == nil:
		return user.Value, true
	case system.Count > user.Count:
		return system.Value, true
	default:
		return user.Value, true
	}
}

func pickValues(items []Suggestion, allowMultiple bool) []string {
	if len(items) == 0 {
		return nil
	}
	if !allowMultiple {
		return []string{items[0].Value}
	}
	values := make([]string, 0, len(items))
	for _, item := range items {
		values = append(values, item.Value)
	}
	return values
}
