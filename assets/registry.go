package assets

import (
	"encoding/json"

	"github.com/lumenhq/lumen-go/errors"
)

// Asset type name literals. Each concrete type's TypeName is fixed to one of
// these; the registry keys polymorphic decoding off them.
const (
	TypeConnection       = "Connection"
	TypeDatabase         = "Database"
	TypeSchema           = "Schema"
	TypeTable            = "Table"
	TypeView             = "View"
	TypeMaterializedView = "MaterializedView"
	TypeColumn           = "Column"
	TypeGlossary         = "Glossary"
	TypeGlossaryTerm     = "GlossaryTerm"
	TypeGlossaryCategory = "GlossaryCategory"
	TypeProcess          = "Process"
)

// registry maps typeName literals to fresh-instance constructors
var registry = map[string]func() Asset{
	TypeConnection:       func() Asset { return &Connection{Referenceable: Referenceable{TypeName: TypeConnection}} },
	TypeDatabase:         func() Asset { return &Database{Referenceable: Referenceable{TypeName: TypeDatabase}} },
	TypeSchema:           func() Asset { return &Schema{Referenceable: Referenceable{TypeName: TypeSchema}} },
	TypeTable:            func() Asset { return &Table{Referenceable: Referenceable{TypeName: TypeTable}} },
	TypeView:             func() Asset { return &View{Referenceable: Referenceable{TypeName: TypeView}} },
	TypeMaterializedView: func() Asset { return &MaterializedView{Referenceable: Referenceable{TypeName: TypeMaterializedView}} },
	TypeColumn:           func() Asset { return &Column{Referenceable: Referenceable{TypeName: TypeColumn}} },
	TypeGlossary:         func() Asset { return &Glossary{Referenceable: Referenceable{TypeName: TypeGlossary}} },
	TypeGlossaryTerm:     func() Asset { return &GlossaryTerm{Referenceable: Referenceable{TypeName: TypeGlossaryTerm}} },
	TypeGlossaryCategory: func() Asset { return &GlossaryCategory{Referenceable: Referenceable{TypeName: TypeGlossaryCategory}} },
	TypeProcess:          func() Asset { return &Process{Referenceable: Referenceable{TypeName: TypeProcess}} },
}

// NewForType returns a fresh instance of the concrete type registered for
// typeName. Unknown type names yield a generic IndexedAsset so payloads from
// newer servers still decode.
func NewForType(typeName string) (Asset, error) {
	if typeName == "" {
		return nil, errors.NewInvalidRequestError("type_name is required")
	}
	if ctor, ok := registry[typeName]; ok {
		return ctor(), nil
	}
	return &IndexedAsset{Referenceable: Referenceable{TypeName: typeName}}, nil
}

// IsRegisteredType reports whether typeName has a concrete Go type
func IsRegisteredType(typeName string) bool {
	_, ok := registry[typeName]
	return ok
}

// UnmarshalAsset decodes one entity payload into its concrete type based on
// the typeName discriminator. The discriminator is authoritative: a payload
// whose typeName is missing is rejected.
func UnmarshalAsset(data []byte) (Asset, error) {
	var probe struct {
		TypeName string `json:"typeName"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.Wrap(err, "failed to probe entity typeName")
	}
	if probe.TypeName == "" {
		return nil, errors.NewInvalidRequestError("entity payload missing typeName")
	}

	target, err := NewForType(probe.TypeName)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, target); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal %s entity", probe.TypeName)
	}

	// typeName is immutable per concrete type: re-check after the full decode
	if target.Ref().TypeName != probe.TypeName {
		return nil, errors.Newf("typeName mismatch: payload %q decoded as %q",
			probe.TypeName, target.Ref().TypeName)
	}
	return target, nil
}

// UnmarshalAssets decodes a list of entity payloads polymorphically
func UnmarshalAssets(data []byte) ([]Asset, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal entity list")
	}

	out := make([]Asset, 0, len(raw))
	for _, r := range raw {
		a, err := UnmarshalAsset(r)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// IndexedAsset is the fallback decoding target for type names this SDK does
// not model. Only the shared attributes are retained.
type IndexedAsset struct {
	Referenceable
	Attributes AssetAttributes `json:"attributes"`
}

func (a *IndexedAsset) Ref() *Referenceable             { return &a.Referenceable }
func (a *IndexedAsset) BaseAttributes() *AssetAttributes { return &a.Attributes }
