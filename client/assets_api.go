package client

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/lumenhq/lumen-go/assets"
	"github.com/lumenhq/lumen-go/errors"
	"github.com/lumenhq/lumen-go/logger"
)

// SaveOption tunes how a save call merges with existing state
type SaveOption func(*saveOptions)

type saveOptions struct {
	replaceTags  bool
	replaceTerms bool
}

// WithReplaceTags makes the save replace the asset's tags with exactly
// those on the request instead of leaving existing tags untouched.
func WithReplaceTags() SaveOption {
	return func(o *saveOptions) { o.replaceTags = true }
}

// WithReplaceTerms makes the save replace the asset's linked terms with
// exactly those on the request.
func WithReplaceTerms() SaveOption {
	return func(o *saveOptions) { o.replaceTerms = true }
}

type bulkEntityRequest struct {
	Entities []assets.Asset `json:"entities"`
}

// UnmarshalJSON decodes the entity list polymorphically, since Asset is an
// interface the standard decoder cannot populate on its own.
func (b *bulkEntityRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Entities json.RawMessage `json:"entities"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Entities) == 0 {
		return nil
	}
	entities, err := assets.UnmarshalAssets(raw.Entities)
	if err != nil {
		return err
	}
	b.Entities = entities
	return nil
}

// Save creates or updates assets in bulk. The server matches on qualified
// name per type: an existing match is updated, anything else is created.
func (c *Client) Save(ctx context.Context, toSave []assets.Asset, opts ...SaveOption) (*MutationResponse, error) {
	if len(toSave) == 0 {
		return nil, errors.NewInvalidRequestError("entities is required")
	}
	var options saveOptions
	for _, opt := range opts {
		opt(&options)
	}

	query := url.Values{}
	query.Set("replaceTags", strconv.FormatBool(options.replaceTags))
	query.Set("replaceTerms", strconv.FormatBool(options.replaceTerms))

	var resp MutationResponse
	err := c.do(ctx, "POST", "/api/meta/entity/bulk", query,
		bulkEntityRequest{Entities: toSave}, &resp)
	if err != nil {
		return nil, err
	}

	c.logger.Infow("Saved assets",
		logger.FieldCount, len(toSave),
		"created", len(resp.MutatedEntities.Create),
		"updated", len(resp.MutatedEntities.Update))
	return &resp, nil
}

// entityEnvelope wraps single-entity GET responses
type entityEnvelope struct {
	Entity           json.RawMessage            `json:"entity"`
	ReferredEntities map[string]json.RawMessage `json:"referredEntities,omitempty"`
}

func (e *entityEnvelope) asset() (assets.Asset, error) {
	if len(e.Entity) == 0 {
		return nil, errors.Wrap(errors.ErrNotFound, "response contained no entity")
	}
	return assets.UnmarshalAsset(e.Entity)
}

// GetByGuid retrieves one asset by its GUID
func (c *Client) GetByGuid(ctx context.Context, guid string) (assets.Asset, error) {
	if guid == "" {
		return nil, errors.NewInvalidRequestError("guid is required")
	}

	var envelope entityEnvelope
	err := c.do(ctx, "GET", "/api/meta/entity/guid/"+url.PathEscape(guid), nil, nil, &envelope)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.Wrapf(err, "asset with GUID %s", guid)
		}
		return nil, err
	}
	return envelope.asset()
}

// GetByQualifiedName retrieves one asset by type and qualified name
func (c *Client) GetByQualifiedName(ctx context.Context, typeName, qualifiedName string) (assets.Asset, error) {
	if typeName == "" {
		return nil, errors.NewInvalidRequestError("type_name is required")
	}
	if qualifiedName == "" {
		return nil, errors.NewInvalidRequestError("qualified_name is required")
	}

	query := url.Values{}
	query.Set("attr:qualifiedName", qualifiedName)

	var envelope entityEnvelope
	err := c.do(ctx, "GET",
		"/api/meta/entity/uniqueAttribute/type/"+url.PathEscape(typeName),
		query, nil, &envelope)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.Wrapf(err, "%s with qualified name %s", typeName, qualifiedName)
		}
		return nil, err
	}
	return envelope.asset()
}

// Delete soft-deletes assets by GUID. Soft-deleted assets stay in the
// catalog with DELETED status and can be restored.
func (c *Client) Delete(ctx context.Context, guids ...string) (*MutationResponse, error) {
	return c.deleteWithType(ctx, "SOFT", guids)
}

// Purge hard-deletes assets by GUID. Purged assets are gone for good.
func (c *Client) Purge(ctx context.Context, guids ...string) (*MutationResponse, error) {
	return c.deleteWithType(ctx, "PURGE", guids)
}

func (c *Client) deleteWithType(ctx context.Context, deleteType string, guids []string) (*MutationResponse, error) {
	if len(guids) == 0 {
		return nil, errors.NewInvalidRequestError("guid is required")
	}

	query := url.Values{}
	for _, g := range guids {
		query.Add("guid", g)
	}
	query.Set("deleteType", deleteType)

	var resp MutationResponse
	if err := c.do(ctx, "DELETE", "/api/meta/entity/bulk", query, nil, &resp); err != nil {
		return nil, err
	}

	c.logger.Infow("Deleted assets",
		logger.FieldCount, len(guids), "delete_type", deleteType)
	return &resp, nil
}
