package client

import (
	"context"

	"github.com/lumenhq/lumen-go/errors"
	"github.com/lumenhq/lumen-go/search"
)

// Search executes an index-search request against the tenant. Satisfies
// search.Searcher, so a Client can drive FluentSearch directly.
func (c *Client) Search(ctx context.Context, req *search.IndexSearchRequest) (*search.IndexSearchResponse, error) {
	if req == nil {
		return nil, errors.NewInvalidRequestError("request is required")
	}

	var resp search.IndexSearchResponse
	if err := c.do(ctx, "POST", "/api/meta/search/indexsearch", nil, req, &resp); err != nil {
		return nil, err
	}

	c.logger.Debugw("Index search",
		"approximate_count", resp.ApproximateCount,
		"page_count", resp.Count())
	return &resp, nil
}
