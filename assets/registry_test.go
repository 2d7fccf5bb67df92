package assets

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalAsset_ConcreteType(t *testing.T) {
	payload := `{
		"typeName": "Table",
		"guid": "guid-1",
		"status": "ACTIVE",
		"attributes": {
			"qualifiedName": "default/snowflake/1700000000/ANALYTICS/PUBLIC/ORDERS",
			"name": "ORDERS",
			"rowCount": 1234,
			"schemaName": "PUBLIC"
		}
	}`

	a, err := UnmarshalAsset([]byte(payload))
	require.NoError(t, err)

	tbl, ok := a.(*Table)
	require.True(t, ok, "expected *Table, got %T", a)
	assert.Equal(t, "guid-1", tbl.Guid)
	assert.Equal(t, StatusActive, tbl.Status)
	assert.Equal(t, "ORDERS", tbl.Attributes.Name)
	assert.Equal(t, int64(1234), tbl.Attributes.RowCount)
	assert.Equal(t, "PUBLIC", tbl.Attributes.SchemaName)
}

func TestUnmarshalAsset_UnknownTypeFallsBack(t *testing.T) {
	payload := `{
		"typeName": "PresetChart",
		"guid": "guid-2",
		"attributes": {"qualifiedName": "default/preset/1/ws/dash/chart", "name": "chart"}
	}`

	a, err := UnmarshalAsset([]byte(payload))
	require.NoError(t, err)

	generic, ok := a.(*IndexedAsset)
	require.True(t, ok, "expected *IndexedAsset, got %T", a)
	assert.Equal(t, "PresetChart", generic.TypeName)
	assert.Equal(t, "chart", generic.Attributes.Name)
}

func TestUnmarshalAsset_MissingTypeName(t *testing.T) {
	_, err := UnmarshalAsset([]byte(`{"guid": "x"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing typeName")
}

func TestUnmarshalAssets(t *testing.T) {
	payload := `[
		{"typeName": "Table", "attributes": {"name": "T1"}},
		{"typeName": "Column", "attributes": {"name": "C1"}},
		{"typeName": "GlossaryTerm", "attributes": {"name": "Revenue"}}
	]`

	list, err := UnmarshalAssets([]byte(payload))
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.IsType(t, &Table{}, list[0])
	assert.IsType(t, &Column{}, list[1])
	assert.IsType(t, &GlossaryTerm{}, list[2])
}

func TestMarshalRoundTrip_AttributesNested(t *testing.T) {
	tbl, err := NewTable("ORDERS", "default/snowflake/1700000000/ANALYTICS/PUBLIC")
	require.NoError(t, err)
	tbl.Attributes.RowCount = 10

	data, err := json.Marshal(tbl)
	require.NoError(t, err)

	// Attributes must nest under "attributes" with the embedded base flattened
	var wire map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, "Table", wire["typeName"])
	attrs, ok := wire["attributes"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ORDERS", attrs["name"])
	assert.Equal(t, float64(10), attrs["rowCount"])
	assert.NotContains(t, wire, "rowCount")

	back, err := UnmarshalAsset(data)
	require.NoError(t, err)
	assert.Equal(t, tbl.Attributes.QualifiedName, QualifiedName(back))
}

func TestNewForType(t *testing.T) {
	a, err := NewForType(TypeView)
	require.NoError(t, err)
	assert.IsType(t, &View{}, a)
	assert.Equal(t, TypeView, a.Ref().TypeName)

	_, err = NewForType("")
	require.Error(t, err)

	unknown, err := NewForType("SapErpTable")
	require.NoError(t, err)
	assert.IsType(t, &IndexedAsset{}, unknown)
	assert.False(t, IsRegisteredType("SapErpTable"))
	assert.True(t, IsRegisteredType(TypeTable))
}
