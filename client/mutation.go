package client

import (
	"encoding/json"

	"github.com/lumenhq/lumen-go/assets"
	"github.com/lumenhq/lumen-go/errors"
)

// MutationResponse is returned by save and delete calls. Mutated entities
// are partitioned by the kind of change the server applied, and
// GuidAssignments maps client-side placeholder GUIDs to the real GUIDs
// the server assigned.
type MutationResponse struct {
	GuidAssignments map[string]string `json:"guidAssignments,omitempty"`
	MutatedEntities struct {
		Create []json.RawMessage `json:"CREATE,omitempty"`
		Update []json.RawMessage `json:"UPDATE,omitempty"`
		Delete []json.RawMessage `json:"DELETE,omitempty"`
	} `json:"mutatedEntities"`
}

// AssetsCreated decodes the entities the server created
func (m *MutationResponse) AssetsCreated() ([]assets.Asset, error) {
	return decodeRaw(m.MutatedEntities.Create)
}

// AssetsUpdated decodes the entities the server updated
func (m *MutationResponse) AssetsUpdated() ([]assets.Asset, error) {
	return decodeRaw(m.MutatedEntities.Update)
}

// AssetsDeleted decodes the entities the server deleted
func (m *MutationResponse) AssetsDeleted() ([]assets.Asset, error) {
	return decodeRaw(m.MutatedEntities.Delete)
}

// AssignedGuid resolves a placeholder GUID to the server-assigned one.
// Returns the input unchanged when no assignment exists.
func (m *MutationResponse) AssignedGuid(placeholder string) string {
	if real, ok := m.GuidAssignments[placeholder]; ok {
		return real
	}
	return placeholder
}

func decodeRaw(raws []json.RawMessage) ([]assets.Asset, error) {
	list := make([]assets.Asset, 0, len(raws))
	for i, raw := range raws {
		a, err := assets.UnmarshalAsset(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding mutated entity %d", i)
		}
		list = append(list, a)
	}
	return list, nil
}
