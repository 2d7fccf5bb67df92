package assets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenhq/lumen-go/errors"
)

const (
	testConnectionQN = "default/snowflake/1700000000"
	testDatabaseQN   = testConnectionQN + "/ANALYTICS"
	testSchemaQN     = testDatabaseQN + "/PUBLIC"
	testTableQN      = testSchemaQN + "/ORDERS"
)

func TestNewConnection(t *testing.T) {
	restore := connectionEpoch
	connectionEpoch = func() int64 { return 1700000000 }
	defer func() { connectionEpoch = restore }()

	c, err := NewConnection("production", "Snowflake")
	require.NoError(t, err)

	assert.Equal(t, TypeConnection, c.TypeName)
	assert.Equal(t, "production", c.Attributes.Name)
	assert.Equal(t, "default/snowflake/1700000000", c.Attributes.QualifiedName)
	assert.Equal(t, "snowflake", c.Attributes.ConnectorName)
	assert.Equal(t, "warehouse", c.Attributes.Category)
}

func TestNewConnection_RequiredParams(t *testing.T) {
	_, err := NewConnection("", "snowflake")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequestError(err))
	assert.Contains(t, err.Error(), "name is required")

	_, err = NewConnection("production", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connector_name is required")
}

func TestNewDatabase(t *testing.T) {
	d, err := NewDatabase("ANALYTICS", testConnectionQN)
	require.NoError(t, err)

	assert.Equal(t, TypeDatabase, d.TypeName)
	assert.Equal(t, testDatabaseQN, d.Attributes.QualifiedName)
	assert.Equal(t, testConnectionQN, d.Attributes.ConnectionQualifiedName)
	assert.Equal(t, "snowflake", d.Attributes.ConnectorName)
}

func TestNewDatabase_InvalidParentQN(t *testing.T) {
	_, err := NewDatabase("ANALYTICS", "not-a-connection")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequestError(err))

	// A connection descendant is not itself a connection
	_, err = NewDatabase("ANALYTICS", testDatabaseQN)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequestError(err))

	_, err = NewDatabase("", testConnectionQN)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestNewSchema(t *testing.T) {
	s, err := NewSchema("PUBLIC", testDatabaseQN)
	require.NoError(t, err)

	assert.Equal(t, testSchemaQN, s.Attributes.QualifiedName)
	assert.Equal(t, "ANALYTICS", s.Attributes.DatabaseName)
	assert.Equal(t, testDatabaseQN, s.Attributes.DatabaseQualifiedName)
	assert.Equal(t, testConnectionQN, s.Attributes.ConnectionQualifiedName)
	require.NotNil(t, s.Attributes.Database)
	assert.Equal(t, testDatabaseQN, s.Attributes.Database.UniqueAttributes.QualifiedName)
}

func TestNewTable(t *testing.T) {
	tbl, err := NewTable("ORDERS", testSchemaQN)
	require.NoError(t, err)

	assert.Equal(t, TypeTable, tbl.TypeName)
	assert.Equal(t, testTableQN, tbl.Attributes.QualifiedName)
	assert.Equal(t, "PUBLIC", tbl.Attributes.SchemaName)
	assert.Equal(t, testSchemaQN, tbl.Attributes.SchemaQualifiedName)
	assert.Equal(t, "ANALYTICS", tbl.Attributes.DatabaseName)
	assert.Equal(t, "snowflake", tbl.Attributes.ConnectorName)
	require.NotNil(t, tbl.Attributes.Schema)
	assert.Equal(t, TypeSchema, tbl.Attributes.Schema.TypeName)
}

func TestNewTable_InvalidSchemaQN(t *testing.T) {
	_, err := NewTable("ORDERS", "default/snowflake/123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema_qualified_name")

	_, err = NewTable("ORDERS", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema_qualified_name is required")
}

func TestNewColumn(t *testing.T) {
	col, err := NewColumn("ORDER_ID", TypeTable, testTableQN, 1)
	require.NoError(t, err)

	assert.Equal(t, testTableQN+"/ORDER_ID", col.Attributes.QualifiedName)
	assert.Equal(t, 1, col.Attributes.Order)
	assert.Equal(t, "ORDERS", col.Attributes.TableName)
	assert.Equal(t, testTableQN, col.Attributes.TableQualifiedName)
	require.NotNil(t, col.Attributes.Table)
	assert.Nil(t, col.Attributes.ParentView)

	viewCol, err := NewColumn("ORDER_ID", TypeView, testSchemaQN+"/ORDERS_V", 1)
	require.NoError(t, err)
	assert.Equal(t, "ORDERS_V", viewCol.Attributes.ViewName)
	require.NotNil(t, viewCol.Attributes.ParentView)
	assert.Nil(t, viewCol.Attributes.Table)
}

func TestNewColumn_Invalid(t *testing.T) {
	_, err := NewColumn("C", "Dashboard", testTableQN, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parent_type_name")

	_, err = NewColumn("C", TypeTable, testTableQN, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order must be positive")
}

func TestNewGlossaryTerm(t *testing.T) {
	term, err := NewGlossaryTerm("Revenue", "glossary-guid-1")
	require.NoError(t, err)

	assert.Equal(t, TypeGlossaryTerm, term.TypeName)
	require.NotNil(t, term.Attributes.Anchor)
	assert.Equal(t, "glossary-guid-1", term.Attributes.Anchor.Guid)

	_, err = NewGlossaryTerm("Revenue", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "glossary_guid is required")
}

func TestNewProcess(t *testing.T) {
	in := []Reference{RefByQualifiedName(TypeTable, testTableQN)}
	out := []Reference{RefByQualifiedName(TypeTable, testSchemaQN+"/ORDERS_CLEAN")}

	p1, err := NewProcess("clean_orders", testConnectionQN, in, out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p1.Attributes.QualifiedName, testConnectionQN+"/"))

	// Same identity hashes to the same qualified name
	p2, err := NewProcess("clean_orders", testConnectionQN, in, out)
	require.NoError(t, err)
	assert.Equal(t, p1.Attributes.QualifiedName, p2.Attributes.QualifiedName)

	// Different outputs hash differently
	p3, err := NewProcess("clean_orders", testConnectionQN, in,
		[]Reference{RefByQualifiedName(TypeTable, testSchemaQN+"/OTHER")})
	require.NoError(t, err)
	assert.NotEqual(t, p1.Attributes.QualifiedName, p3.Attributes.QualifiedName)

	_, err = NewProcess("clean_orders", testConnectionQN, nil, out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inputs is required")
}

func TestUpdaters(t *testing.T) {
	tbl, err := TableUpdater(testTableQN, "ORDERS")
	require.NoError(t, err)
	assert.Equal(t, testTableQN, tbl.Attributes.QualifiedName)
	assert.Equal(t, "ORDERS", tbl.Attributes.Name)
	// Updaters carry identity only
	assert.Empty(t, tbl.Attributes.SchemaQualifiedName)

	_, err = TableUpdater("", "ORDERS")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "qualified_name is required")
}

func TestTrimToRequired(t *testing.T) {
	tbl, err := NewTable("ORDERS", testSchemaQN)
	require.NoError(t, err)
	tbl.Attributes.Description = "a description that must not survive"
	tbl.Attributes.RowCount = 42

	trimmed, err := TrimToRequired(tbl)
	require.NoError(t, err)

	trimmedTable, ok := trimmed.(*Table)
	require.True(t, ok)
	assert.Equal(t, "ORDERS", trimmedTable.Attributes.Name)
	assert.Equal(t, testTableQN, trimmedTable.Attributes.QualifiedName)
	assert.Empty(t, trimmedTable.Attributes.Description)
	assert.Zero(t, trimmedTable.Attributes.RowCount)
}

func TestTrimToRequired_MissingIdentity(t *testing.T) {
	tbl := &Table{Referenceable: Referenceable{TypeName: TypeTable}}
	tbl.Attributes.Name = "ORDERS"

	_, err := TrimToRequired(tbl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "qualified_name is required")

	tbl.Attributes.Name = ""
	tbl.Attributes.QualifiedName = testTableQN
	_, err = TrimToRequired(tbl)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}
