package assets

import (
	"github.com/lumenhq/lumen-go/errors"
)

// Database is a database within a connection
type Database struct {
	Referenceable
	Attributes DatabaseAttributes `json:"attributes"`
}

// DatabaseAttributes are the Database-specific attributes
type DatabaseAttributes struct {
	AssetAttributes
	SchemaCount int64       `json:"schemaCount,omitempty"`
	Schemas     []Reference `json:"schemas,omitempty"`
}

func (d *Database) Ref() *Referenceable              { return &d.Referenceable }
func (d *Database) BaseAttributes() *AssetAttributes { return &d.Attributes.AssetAttributes }

// NewDatabase creates a client-side Database under an existing connection.
// Qualified name: {connectionQualifiedName}/{name}.
func NewDatabase(name, connectionQualifiedName string) (*Database, error) {
	if err := requireParams(
		[2]string{"name", name},
		[2]string{"connection_qualified_name", connectionQualifiedName},
	); err != nil {
		return nil, err
	}

	connectionQN, connector, err := connectionQNFromChild(connectionQualifiedName, "connection_qualified_name")
	if err != nil {
		return nil, err
	}
	if connectionQN != connectionQualifiedName {
		return nil, errors.NewInvalidRequestError(
			"invalid connection_qualified_name %q: expected default/{connector}/{epoch}",
			connectionQualifiedName)
	}

	d := &Database{Referenceable: Referenceable{TypeName: TypeDatabase}}
	d.Attributes.Name = name
	d.Attributes.QualifiedName = connectionQualifiedName + "/" + name
	d.Attributes.ConnectionQualifiedName = connectionQualifiedName
	d.Attributes.ConnectorName = connector
	return d, nil
}

// DatabaseUpdater creates an instance populated with only the identity
// fields required to modify an existing database.
func DatabaseUpdater(qualifiedName, name string) (*Database, error) {
	if err := requireParams(
		[2]string{"qualified_name", qualifiedName},
		[2]string{"name", name},
	); err != nil {
		return nil, err
	}

	d := &Database{Referenceable: Referenceable{TypeName: TypeDatabase}}
	d.Attributes.Name = name
	d.Attributes.QualifiedName = qualifiedName
	return d, nil
}
