package client

import (
	"context"

	"github.com/Masterminds/semver/v3"

	"github.com/lumenhq/lumen-go/errors"
)

// MinServerVersion is the oldest tenant version this SDK speaks to.
// Older tenants predate the bulk entity API the SDK relies on.
const MinServerVersion = "2.0.0"

// ServerInfo is the tenant's version report
type ServerInfo struct {
	Version string `json:"version"`
	Name    string `json:"name,omitempty"`
}

// Healthcheck verifies the tenant is reachable and recent enough for this
// SDK. Unparseable versions fail closed.
func (c *Client) Healthcheck(ctx context.Context) (*ServerInfo, error) {
	var info ServerInfo
	if err := c.do(ctx, "GET", "/api/service/version", nil, nil, &info); err != nil {
		return nil, errors.Wrap(err, "tenant healthcheck failed")
	}

	v, err := semver.NewVersion(info.Version)
	if err != nil {
		return nil, errors.Wrapf(err, "tenant reported unparseable version %q", info.Version)
	}
	min := semver.MustParse(MinServerVersion)
	if v.LessThan(min) {
		return nil, errors.Newf("tenant version %s is older than minimum supported %s",
			info.Version, MinServerVersion)
	}

	c.logger.Debugw("Tenant healthcheck passed", "version", info.Version)
	return &info, nil
}
