package assets

import (
	"crypto/md5"
	"fmt"
	"sort"
	"strings"

	"github.com/lumenhq/lumen-go/errors"
)

// Process is a lineage edge: a transformation reading input assets and
// producing output assets.
type Process struct {
	Referenceable
	Attributes ProcessAttributes `json:"attributes"`
}

// ProcessAttributes are the Process-specific attributes
type ProcessAttributes struct {
	AssetAttributes
	Code    string      `json:"code,omitempty"`
	SQL     string      `json:"sql,omitempty"`
	Inputs  []Reference `json:"inputs,omitempty"`
	Outputs []Reference `json:"outputs,omitempty"`
}

func (p *Process) Ref() *Referenceable              { return &p.Referenceable }
func (p *Process) BaseAttributes() *AssetAttributes { return &p.Attributes.AssetAttributes }

// NewProcess creates a client-side lineage Process. The qualified name is a
// content hash of the process identity (name, connection, sorted inputs and
// outputs) under the connection prefix, so re-registering the same lineage
// edge is idempotent.
func NewProcess(name, connectionQualifiedName string, inputs, outputs []Reference) (*Process, error) {
	if err := requireParams(
		[2]string{"name", name},
		[2]string{"connection_qualified_name", connectionQualifiedName},
	); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, errors.NewInvalidRequestError("inputs is required")
	}
	if len(outputs) == 0 {
		return nil, errors.NewInvalidRequestError("outputs is required")
	}

	p := &Process{Referenceable: Referenceable{TypeName: TypeProcess}}
	p.Attributes.Name = name
	p.Attributes.QualifiedName = connectionQualifiedName + "/" +
		processHash(name, connectionQualifiedName, inputs, outputs)
	p.Attributes.ConnectionQualifiedName = connectionQualifiedName
	p.Attributes.Inputs = inputs
	p.Attributes.Outputs = outputs
	return p, nil
}

// processHash derives a stable identity hash for a lineage edge
func processHash(name, connectionQN string, inputs, outputs []Reference) string {
	keys := make([]string, 0, len(inputs)+len(outputs))
	for _, r := range inputs {
		keys = append(keys, "in:"+refKey(r))
	}
	for _, r := range outputs {
		keys = append(keys, "out:"+refKey(r))
	}
	sort.Strings(keys)

	h := md5.New()
	fmt.Fprintf(h, "%s|%s|%s", name, connectionQN, strings.Join(keys, "|"))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// refKey yields a stable string identity for a reference
func refKey(r Reference) string {
	if r.UniqueAttributes != nil && r.UniqueAttributes.QualifiedName != "" {
		return r.TypeName + "/" + r.UniqueAttributes.QualifiedName
	}
	return r.TypeName + "/" + r.Guid
}
