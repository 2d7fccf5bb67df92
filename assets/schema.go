package assets

import (
	"strings"

	"github.com/lumenhq/lumen-go/errors"
)

// Schema is a schema within a database
type Schema struct {
	Referenceable
	Attributes SchemaAttributes `json:"attributes"`
}

// SchemaAttributes are the Schema-specific attributes
type SchemaAttributes struct {
	AssetAttributes
	DatabaseName          string      `json:"databaseName,omitempty"`
	DatabaseQualifiedName string      `json:"databaseQualifiedName,omitempty"`
	TableCount            int64       `json:"tableCount,omitempty"`
	ViewCount             int64       `json:"viewCount,omitempty"`
	Database              *Reference  `json:"database,omitempty"`
	Tables                []Reference `json:"tables,omitempty"`
	Views                 []Reference `json:"views,omitempty"`
}

func (s *Schema) Ref() *Referenceable              { return &s.Referenceable }
func (s *Schema) BaseAttributes() *AssetAttributes { return &s.Attributes.AssetAttributes }

// NewSchema creates a client-side Schema under an existing database.
// Qualified name: {databaseQualifiedName}/{name}.
func NewSchema(name, databaseQualifiedName string) (*Schema, error) {
	if err := requireParams(
		[2]string{"name", name},
		[2]string{"database_qualified_name", databaseQualifiedName},
	); err != nil {
		return nil, err
	}

	parts := strings.Split(databaseQualifiedName, "/")
	if len(parts) != 4 {
		return nil, errors.NewInvalidRequestError(
			"invalid database_qualified_name %q: expected default/{connector}/{epoch}/{database}",
			databaseQualifiedName)
	}

	s := &Schema{Referenceable: Referenceable{TypeName: TypeSchema}}
	s.Attributes.Name = name
	s.Attributes.QualifiedName = databaseQualifiedName + "/" + name
	s.Attributes.ConnectionQualifiedName = strings.Join(parts[:3], "/")
	s.Attributes.ConnectorName = parts[1]
	s.Attributes.DatabaseName = parts[3]
	s.Attributes.DatabaseQualifiedName = databaseQualifiedName
	s.Attributes.Database = &Reference{
		TypeName:         TypeDatabase,
		UniqueAttributes: &UniqueAttributes{QualifiedName: databaseQualifiedName},
	}
	return s, nil
}

// SchemaUpdater creates an instance populated with only the identity fields
// required to modify an existing schema.
func SchemaUpdater(qualifiedName, name string) (*Schema, error) {
	if err := requireParams(
		[2]string{"qualified_name", qualifiedName},
		[2]string{"name", name},
	); err != nil {
		return nil, err
	}

	s := &Schema{Referenceable: Referenceable{TypeName: TypeSchema}}
	s.Attributes.Name = name
	s.Attributes.QualifiedName = qualifiedName
	return s, nil
}

// schemaContext carries the ancestry parsed from a schema qualified name
type schemaContext struct {
	connectionQN string
	connector    string
	databaseName string
	databaseQN   string
	schemaName   string
}

// parseSchemaQN splits default/{connector}/{epoch}/{db}/{schema}
func parseSchemaQN(schemaQN, param string) (schemaContext, error) {
	parts := strings.Split(schemaQN, "/")
	if len(parts) != 5 {
		return schemaContext{}, errors.NewInvalidRequestError(
			"invalid %s %q: expected default/{connector}/{epoch}/{database}/{schema}",
			param, schemaQN)
	}
	return schemaContext{
		connectionQN: strings.Join(parts[:3], "/"),
		connector:    parts[1],
		databaseName: parts[3],
		databaseQN:   strings.Join(parts[:4], "/"),
		schemaName:   parts[4],
	}, nil
}
