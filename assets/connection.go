package assets

import (
	"fmt"
	"strings"
	"time"

	"github.com/lumenhq/lumen-go/errors"
)

// Connection represents a configured source system (warehouse, BI tool, ...)
// at the root of the qualified-name hierarchy.
type Connection struct {
	Referenceable
	Attributes ConnectionAttributes `json:"attributes"`
}

// ConnectionAttributes are the Connection-specific attributes
type ConnectionAttributes struct {
	AssetAttributes
	Category        string   `json:"category,omitempty"`
	Host            string   `json:"host,omitempty"`
	Port            int      `json:"port,omitempty"`
	AdminUsers      []string `json:"adminUsers,omitempty"`
	AdminGroups     []string `json:"adminGroups,omitempty"`
	SourceLogo      string   `json:"sourceLogo,omitempty"`
	AllowQuery      bool     `json:"allowQuery,omitempty"`
	RowLimit        int64    `json:"rowLimit,omitempty"`
	DefaultDatabase string   `json:"defaultDatabaseQualifiedName,omitempty"`
}

func (c *Connection) Ref() *Referenceable              { return &c.Referenceable }
func (c *Connection) BaseAttributes() *AssetAttributes { return &c.Attributes.AssetAttributes }

// connectionEpoch is swappable for deterministic qualified names in tests
var connectionEpoch = func() int64 { return time.Now().Unix() }

// NewConnection creates a client-side Connection. The qualified name embeds
// the creation epoch: default/{connector}/{epochSeconds}.
func NewConnection(name, connectorName string) (*Connection, error) {
	if err := requireParams(
		[2]string{"name", name},
		[2]string{"connector_name", connectorName},
	); err != nil {
		return nil, err
	}

	connector := strings.ToLower(connectorName)
	c := &Connection{Referenceable: Referenceable{TypeName: TypeConnection}}
	c.Attributes.Name = name
	c.Attributes.QualifiedName = fmt.Sprintf("default/%s/%d", connector, connectionEpoch())
	c.Attributes.ConnectorName = connector
	c.Attributes.ConnectionQualifiedName = c.Attributes.QualifiedName
	c.Attributes.Category = connectorCategory(connector)
	return c, nil
}

// ConnectionUpdater creates an instance populated with only the identity
// fields required to modify an existing connection.
func ConnectionUpdater(qualifiedName, name string) (*Connection, error) {
	if err := requireParams(
		[2]string{"qualified_name", qualifiedName},
		[2]string{"name", name},
	); err != nil {
		return nil, err
	}

	c := &Connection{Referenceable: Referenceable{TypeName: TypeConnection}}
	c.Attributes.Name = name
	c.Attributes.QualifiedName = qualifiedName
	return c, nil
}

// connectorCategory buckets well-known connectors; unrecognized ones are
// left uncategorized for the server to fill in.
func connectorCategory(connector string) string {
	switch connector {
	case "snowflake", "redshift", "bigquery", "databricks", "postgres", "mysql", "mssql", "oracle":
		return "warehouse"
	case "tableau", "looker", "powerbi", "preset", "metabase", "mode", "superset":
		return "bi"
	case "dbt":
		return "elt"
	case "kafka", "confluent-kafka":
		return "eventbus"
	case "s3", "gcs", "adls":
		return "objectstore"
	default:
		return ""
	}
}

// connectionQNFromChild extracts the leading default/{connector}/{epoch}
// prefix (and the connector segment) from a descendant qualified name.
func connectionQNFromChild(childQN, param string) (connectionQN, connector string, err error) {
	parts := strings.Split(childQN, "/")
	if len(parts) < 3 {
		return "", "", errors.NewInvalidRequestError(
			"invalid %s %q: expected at least default/{connector}/{epoch}", param, childQN)
	}
	return strings.Join(parts[:3], "/"), parts[1], nil
}
