package assets

import (
	"github.com/lumenhq/lumen-go/errors"
)

// Column is a column within a table, view or materialized view
type Column struct {
	Referenceable
	Attributes ColumnAttributes `json:"attributes"`
}

// ColumnAttributes are the Column-specific attributes
type ColumnAttributes struct {
	SQLAttributes
	DataType        string     `json:"dataType,omitempty"`
	Order           int        `json:"order,omitempty"`
	IsPrimary       bool       `json:"isPrimary,omitempty"`
	IsNullable      bool       `json:"isNullable,omitempty"`
	IsPartitionKey  bool       `json:"isPartition,omitempty"`
	Precision       int        `json:"precision,omitempty"`
	NumericScale    float64    `json:"numericScale,omitempty"`
	MaxLength       int64      `json:"maxLength,omitempty"`
	Table           *Reference `json:"table,omitempty"`
	ParentView      *Reference `json:"view,omitempty"`
	MaterializedIn  *Reference `json:"materialisedView,omitempty"`
}

func (c *Column) Ref() *Referenceable              { return &c.Referenceable }
func (c *Column) BaseAttributes() *AssetAttributes { return &c.Attributes.AssetAttributes }

// NewColumn creates a client-side Column under a table, view or
// materialized view. parentTypeName selects which linkage is wired; order is
// the 1-based position of the column in its parent.
// Qualified name: {parentQualifiedName}/{name}.
func NewColumn(name, parentTypeName, parentQualifiedName string, order int) (*Column, error) {
	if err := requireParams(
		[2]string{"name", name},
		[2]string{"parent_type_name", parentTypeName},
		[2]string{"parent_qualified_name", parentQualifiedName},
	); err != nil {
		return nil, err
	}
	if order <= 0 {
		return nil, errors.NewInvalidRequestError("order must be positive, got %d", order)
	}

	// Parent QN is {schemaQN}/{parentName}; reuse the schema parser on the prefix
	parentName, schemaQN, err := splitLastSegment(parentQualifiedName, "parent_qualified_name")
	if err != nil {
		return nil, err
	}
	sc, err := parseSchemaQN(schemaQN, "parent_qualified_name")
	if err != nil {
		return nil, err
	}

	c := &Column{Referenceable: Referenceable{TypeName: TypeColumn}}
	c.Attributes.Name = name
	c.Attributes.QualifiedName = parentQualifiedName + "/" + name
	c.Attributes.Order = order
	fillSQLAncestry(&c.Attributes.SQLAttributes, sc)

	parentRef := &Reference{
		TypeName:         parentTypeName,
		UniqueAttributes: &UniqueAttributes{QualifiedName: parentQualifiedName},
	}
	switch parentTypeName {
	case TypeTable:
		c.Attributes.TableName = parentName
		c.Attributes.TableQualifiedName = parentQualifiedName
		c.Attributes.Table = parentRef
	case TypeView:
		c.Attributes.ViewName = parentName
		c.Attributes.ViewQualifiedName = parentQualifiedName
		c.Attributes.ParentView = parentRef
	case TypeMaterializedView:
		c.Attributes.ViewName = parentName
		c.Attributes.ViewQualifiedName = parentQualifiedName
		c.Attributes.MaterializedIn = parentRef
	default:
		return nil, errors.NewInvalidRequestError(
			"invalid parent_type_name %q: must be %s, %s or %s",
			parentTypeName, TypeTable, TypeView, TypeMaterializedView)
	}

	return c, nil
}

// ColumnUpdater creates an instance populated with only the identity fields
// required to modify an existing column.
func ColumnUpdater(qualifiedName, name string) (*Column, error) {
	if err := requireParams(
		[2]string{"qualified_name", qualifiedName},
		[2]string{"name", name},
	); err != nil {
		return nil, err
	}

	c := &Column{Referenceable: Referenceable{TypeName: TypeColumn}}
	c.Attributes.Name = name
	c.Attributes.QualifiedName = qualifiedName
	return c, nil
}

// splitLastSegment splits a qualified name into its final path segment and
// the remaining prefix.
func splitLastSegment(qn, param string) (last, prefix string, err error) {
	for i := len(qn) - 1; i >= 0; i-- {
		if qn[i] == '/' {
			if i == len(qn)-1 || i == 0 {
				break
			}
			return qn[i+1:], qn[:i], nil
		}
	}
	return "", "", errors.NewInvalidRequestError("invalid %s %q: expected a slash-delimited path", param, qn)
}
