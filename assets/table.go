package assets

// SQLAttributes are shared by table-shaped SQL assets (tables, views,
// materialized views, columns): the ancestry denormalized from the
// qualified-name hierarchy plus usage counters reported by the source.
type SQLAttributes struct {
	AssetAttributes
	DatabaseName          string `json:"databaseName,omitempty"`
	DatabaseQualifiedName string `json:"databaseQualifiedName,omitempty"`
	SchemaName            string `json:"schemaName,omitempty"`
	SchemaQualifiedName   string `json:"schemaQualifiedName,omitempty"`
	TableName             string `json:"tableName,omitempty"`
	TableQualifiedName    string `json:"tableQualifiedName,omitempty"`
	ViewName              string `json:"viewName,omitempty"`
	ViewQualifiedName     string `json:"viewQualifiedName,omitempty"`
	QueryCount            int64  `json:"queryCount,omitempty"`
	QueryUserCount        int64  `json:"queryUserCount,omitempty"`
	LastProfiledAt        int64  `json:"lastProfiledAt,omitempty"`
}

// Table is a relational table within a schema
type Table struct {
	Referenceable
	Attributes TableAttributes `json:"attributes"`
}

// TableAttributes are the Table-specific attributes
type TableAttributes struct {
	SQLAttributes
	ColumnCount      int64       `json:"columnCount,omitempty"`
	RowCount         int64       `json:"rowCount,omitempty"`
	SizeBytes        int64       `json:"sizeBytes,omitempty"`
	IsPartitioned    bool        `json:"isPartitioned,omitempty"`
	ExternalLocation string      `json:"externalLocation,omitempty"`
	Schema           *Reference  `json:"lumenSchema,omitempty"`
	Columns          []Reference `json:"columns,omitempty"`
}

func (t *Table) Ref() *Referenceable              { return &t.Referenceable }
func (t *Table) BaseAttributes() *AssetAttributes { return &t.Attributes.AssetAttributes }

// NewTable creates a client-side Table under an existing schema.
// Qualified name: {schemaQualifiedName}/{name}.
func NewTable(name, schemaQualifiedName string) (*Table, error) {
	if err := requireParams(
		[2]string{"name", name},
		[2]string{"schema_qualified_name", schemaQualifiedName},
	); err != nil {
		return nil, err
	}

	sc, err := parseSchemaQN(schemaQualifiedName, "schema_qualified_name")
	if err != nil {
		return nil, err
	}

	t := &Table{Referenceable: Referenceable{TypeName: TypeTable}}
	t.Attributes.Name = name
	t.Attributes.QualifiedName = schemaQualifiedName + "/" + name
	fillSQLAncestry(&t.Attributes.SQLAttributes, sc)
	t.Attributes.Schema = &Reference{
		TypeName:         TypeSchema,
		UniqueAttributes: &UniqueAttributes{QualifiedName: schemaQualifiedName},
	}
	return t, nil
}

// TableUpdater creates an instance populated with only the identity fields
// required to modify an existing table.
func TableUpdater(qualifiedName, name string) (*Table, error) {
	if err := requireParams(
		[2]string{"qualified_name", qualifiedName},
		[2]string{"name", name},
	); err != nil {
		return nil, err
	}

	t := &Table{Referenceable: Referenceable{TypeName: TypeTable}}
	t.Attributes.Name = name
	t.Attributes.QualifiedName = qualifiedName
	return t, nil
}

// View is a relational view within a schema
type View struct {
	Referenceable
	Attributes ViewAttributes `json:"attributes"`
}

// ViewAttributes are the View-specific attributes
type ViewAttributes struct {
	SQLAttributes
	ColumnCount int64       `json:"columnCount,omitempty"`
	RowCount    int64       `json:"rowCount,omitempty"`
	Definition  string      `json:"definition,omitempty"`
	Schema      *Reference  `json:"lumenSchema,omitempty"`
	Columns     []Reference `json:"columns,omitempty"`
}

func (v *View) Ref() *Referenceable              { return &v.Referenceable }
func (v *View) BaseAttributes() *AssetAttributes { return &v.Attributes.AssetAttributes }

// NewView creates a client-side View under an existing schema
func NewView(name, schemaQualifiedName string) (*View, error) {
	if err := requireParams(
		[2]string{"name", name},
		[2]string{"schema_qualified_name", schemaQualifiedName},
	); err != nil {
		return nil, err
	}

	sc, err := parseSchemaQN(schemaQualifiedName, "schema_qualified_name")
	if err != nil {
		return nil, err
	}

	v := &View{Referenceable: Referenceable{TypeName: TypeView}}
	v.Attributes.Name = name
	v.Attributes.QualifiedName = schemaQualifiedName + "/" + name
	fillSQLAncestry(&v.Attributes.SQLAttributes, sc)
	v.Attributes.Schema = &Reference{
		TypeName:         TypeSchema,
		UniqueAttributes: &UniqueAttributes{QualifiedName: schemaQualifiedName},
	}
	return v, nil
}

// ViewUpdater creates an instance populated with only the identity fields
// required to modify an existing view.
func ViewUpdater(qualifiedName, name string) (*View, error) {
	if err := requireParams(
		[2]string{"qualified_name", qualifiedName},
		[2]string{"name", name},
	); err != nil {
		return nil, err
	}

	v := &View{Referenceable: Referenceable{TypeName: TypeView}}
	v.Attributes.Name = name
	v.Attributes.QualifiedName = qualifiedName
	return v, nil
}

// MaterializedView is a materialized view within a schema
type MaterializedView struct {
	Referenceable
	Attributes MaterializedViewAttributes `json:"attributes"`
}

// MaterializedViewAttributes are the MaterializedView-specific attributes
type MaterializedViewAttributes struct {
	SQLAttributes
	ColumnCount int64       `json:"columnCount,omitempty"`
	RowCount    int64       `json:"rowCount,omitempty"`
	RefreshMode string      `json:"refreshMode,omitempty"`
	Definition  string      `json:"definition,omitempty"`
	Schema      *Reference  `json:"lumenSchema,omitempty"`
	Columns     []Reference `json:"columns,omitempty"`
}

func (m *MaterializedView) Ref() *Referenceable              { return &m.Referenceable }
func (m *MaterializedView) BaseAttributes() *AssetAttributes { return &m.Attributes.AssetAttributes }

// NewMaterializedView creates a client-side MaterializedView under an
// existing schema
func NewMaterializedView(name, schemaQualifiedName string) (*MaterializedView, error) {
	if err := requireParams(
		[2]string{"name", name},
		[2]string{"schema_qualified_name", schemaQualifiedName},
	); err != nil {
		return nil, err
	}

	sc, err := parseSchemaQN(schemaQualifiedName, "schema_qualified_name")
	if err != nil {
		return nil, err
	}

	m := &MaterializedView{Referenceable: Referenceable{TypeName: TypeMaterializedView}}
	m.Attributes.Name = name
	m.Attributes.QualifiedName = schemaQualifiedName + "/" + name
	fillSQLAncestry(&m.Attributes.SQLAttributes, sc)
	m.Attributes.Schema = &Reference{
		TypeName:         TypeSchema,
		UniqueAttributes: &UniqueAttributes{QualifiedName: schemaQualifiedName},
	}
	return m, nil
}

// MaterializedViewUpdater creates an instance populated with only the
// identity fields required to modify an existing materialized view.
func MaterializedViewUpdater(qualifiedName, name string) (*MaterializedView, error) {
	if err := requireParams(
		[2]string{"qualified_name", qualifiedName},
		[2]string{"name", name},
	); err != nil {
		return nil, err
	}

	m := &MaterializedView{Referenceable: Referenceable{TypeName: TypeMaterializedView}}
	m.Attributes.Name = name
	m.Attributes.QualifiedName = qualifiedName
	return m, nil
}

// fillSQLAncestry denormalizes the parsed schema ancestry onto a SQL asset
func fillSQLAncestry(attrs *SQLAttributes, sc schemaContext) {
	attrs.ConnectionQualifiedName = sc.connectionQN
	attrs.ConnectorName = sc.connector
	attrs.DatabaseName = sc.databaseName
	attrs.DatabaseQualifiedName = sc.databaseQN
	attrs.SchemaName = sc.schemaName
	attrs.SchemaQualifiedName = sc.databaseQN + "/" + sc.schemaName
}
