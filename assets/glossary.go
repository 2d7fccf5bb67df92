package assets

// Glossary is a collection of business terms and categories. Glossary
// qualified names are server-assigned opaque identifiers, not hierarchical
// paths; creators therefore seed a placeholder from the name and rely on the
// mutation response to return the real one.
type Glossary struct {
	Referenceable
	Attributes GlossaryAttributes `json:"attributes"`
}

// GlossaryAttributes are the Glossary-specific attributes
type GlossaryAttributes struct {
	AssetAttributes
	ShortDescription string      `json:"shortDescription,omitempty"`
	Language         string      `json:"language,omitempty"`
	GlossaryTerms    []Reference `json:"terms,omitempty"`
	Categories       []Reference `json:"categories,omitempty"`
}

func (g *Glossary) Ref() *Referenceable              { return &g.Referenceable }
func (g *Glossary) BaseAttributes() *AssetAttributes { return &g.Attributes.AssetAttributes }

// NewGlossary creates a client-side Glossary
func NewGlossary(name string) (*Glossary, error) {
	if err := requireParams([2]string{"name", name}); err != nil {
		return nil, err
	}

	g := &Glossary{Referenceable: Referenceable{TypeName: TypeGlossary}}
	g.Attributes.Name = name
	g.Attributes.QualifiedName = name
	return g, nil
}

// GlossaryUpdater creates an instance populated with only the identity
// fields required to modify an existing glossary.
func GlossaryUpdater(qualifiedName, name string) (*Glossary, error) {
	if err := requireParams(
		[2]string{"qualified_name", qualifiedName},
		[2]string{"name", name},
	); err != nil {
		return nil, err
	}

	g := &Glossary{Referenceable: Referenceable{TypeName: TypeGlossary}}
	g.Attributes.Name = name
	g.Attributes.QualifiedName = qualifiedName
	return g, nil
}

// GlossaryTerm is a business term anchored in a glossary
type GlossaryTerm struct {
	Referenceable
	Attributes GlossaryTermAttributes `json:"attributes"`
}

// GlossaryTermAttributes are the GlossaryTerm-specific attributes
type GlossaryTermAttributes struct {
	AssetAttributes
	ShortDescription string      `json:"shortDescription,omitempty"`
	Examples         []string    `json:"examples,omitempty"`
	Abbreviation     string      `json:"abbreviation,omitempty"`
	Anchor           *Reference  `json:"anchor,omitempty"`
	Categories       []Reference `json:"categories,omitempty"`
	AssignedAssets   []Reference `json:"assignedEntities,omitempty"`
}

func (t *GlossaryTerm) Ref() *Referenceable              { return &t.Referenceable }
func (t *GlossaryTerm) BaseAttributes() *AssetAttributes { return &t.Attributes.AssetAttributes }

// NewGlossaryTerm creates a client-side GlossaryTerm anchored by glossary GUID
func NewGlossaryTerm(name, glossaryGuid string) (*GlossaryTerm, error) {
	if err := requireParams(
		[2]string{"name", name},
		[2]string{"glossary_guid", glossaryGuid},
	); err != nil {
		return nil, err
	}

	t := &GlossaryTerm{Referenceable: Referenceable{TypeName: TypeGlossaryTerm}}
	t.Attributes.Name = name
	t.Attributes.QualifiedName = name
	t.Attributes.Anchor = &Reference{TypeName: TypeGlossary, Guid: glossaryGuid}
	return t, nil
}

// GlossaryTermUpdater creates an instance populated with the identity fields
// required to modify an existing term. Terms additionally need their anchor
// glossary to round-trip.
func GlossaryTermUpdater(qualifiedName, name, glossaryGuid string) (*GlossaryTerm, error) {
	if err := requireParams(
		[2]string{"qualified_name", qualifiedName},
		[2]string{"name", name},
		[2]string{"glossary_guid", glossaryGuid},
	); err != nil {
		return nil, err
	}

	t := &GlossaryTerm{Referenceable: Referenceable{TypeName: TypeGlossaryTerm}}
	t.Attributes.Name = name
	t.Attributes.QualifiedName = qualifiedName
	t.Attributes.Anchor = &Reference{TypeName: TypeGlossary, Guid: glossaryGuid}
	return t, nil
}

// GlossaryCategory groups terms within a glossary
type GlossaryCategory struct {
	Referenceable
	Attributes GlossaryCategoryAttributes `json:"attributes"`
}

// GlossaryCategoryAttributes are the GlossaryCategory-specific attributes
type GlossaryCategoryAttributes struct {
	AssetAttributes
	ShortDescription string      `json:"shortDescription,omitempty"`
	Anchor           *Reference  `json:"anchor,omitempty"`
	ParentCategory   *Reference  `json:"parentCategory,omitempty"`
	ChildCategories  []Reference `json:"childrenCategories,omitempty"`
	Terms            []Reference `json:"terms,omitempty"`
}

func (c *GlossaryCategory) Ref() *Referenceable              { return &c.Referenceable }
func (c *GlossaryCategory) BaseAttributes() *AssetAttributes { return &c.Attributes.AssetAttributes }

// NewGlossaryCategory creates a client-side GlossaryCategory anchored by
// glossary GUID
func NewGlossaryCategory(name, glossaryGuid string) (*GlossaryCategory, error) {
	if err := requireParams(
		[2]string{"name", name},
		[2]string{"glossary_guid", glossaryGuid},
	); err != nil {
		return nil, err
	}

	c := &GlossaryCategory{Referenceable: Referenceable{TypeName: TypeGlossaryCategory}}
	c.Attributes.Name = name
	c.Attributes.QualifiedName = name
	c.Attributes.Anchor = &Reference{TypeName: TypeGlossary, Guid: glossaryGuid}
	return c, nil
}

// GlossaryCategoryUpdater creates an instance populated with the identity
// fields required to modify an existing category.
func GlossaryCategoryUpdater(qualifiedName, name, glossaryGuid string) (*GlossaryCategory, error) {
	if err := requireParams(
		[2]string{"qualified_name", qualifiedName},
		[2]string{"name", name},
		[2]string{"glossary_guid", glossaryGuid},
	); err != nil {
		return nil, err
	}

	c := &GlossaryCategory{Referenceable: Referenceable{TypeName: TypeGlossaryCategory}}
	c.Attributes.Name = name
	c.Attributes.QualifiedName = qualifiedName
	c.Attributes.Anchor = &Reference{TypeName: TypeGlossary, Guid: glossaryGuid}
	return c, nil
}
