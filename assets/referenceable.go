// Package assets defines the typed records mirroring the Lumen catalog schema.
//
// Every catalog entity is an Asset: a fixed typeName discriminator, a
// hierarchical slash-delimited qualifiedName, scalar attributes, and
// relationship references to sibling assets. Instances are created client-side
// via the NewXxx/XxxUpdater factories and persisted through the client; the
// server is the sole source of truth, no client-side store is kept.
package assets

import (
	"github.com/lumenhq/lumen-go/errors"
)

// Status is the lifecycle state of an asset record
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusDeleted Status = "DELETED"
)

// CertificateStatus is the governance certification applied to an asset
type CertificateStatus string

const (
	CertificateVerified   CertificateStatus = "VERIFIED"
	CertificateDraft      CertificateStatus = "DRAFT"
	CertificateDeprecated CertificateStatus = "DEPRECATED"
)

// AnnouncementType classifies an announcement banner on an asset
type AnnouncementType string

const (
	AnnouncementInformation AnnouncementType = "information"
	AnnouncementWarning     AnnouncementType = "warning"
	AnnouncementIssue       AnnouncementType = "issue"
)

// Referenceable is the base wire record shared by every asset type.
// TypeName is immutable: it must equal the concrete type's literal at all
// times. Server-managed audit fields are never set client-side.
type Referenceable struct {
	TypeName   string      `json:"typeName"`
	Guid       string      `json:"guid,omitempty"`
	Status     Status      `json:"status,omitempty"`
	CreatedBy  string      `json:"createdBy,omitempty"`
	UpdatedBy  string      `json:"updatedBy,omitempty"`
	CreateTime int64       `json:"createTime,omitempty"`
	UpdateTime int64       `json:"updateTime,omitempty"`
	Tags       []string    `json:"tags,omitempty"`
	Terms      []Reference `json:"terms,omitempty"`
}

// Reference points at another asset, either by GUID or by unique attributes.
type Reference struct {
	TypeName         string            `json:"typeName,omitempty"`
	Guid             string            `json:"guid,omitempty"`
	UniqueAttributes *UniqueAttributes `json:"uniqueAttributes,omitempty"`
}

// UniqueAttributes identifies an asset by its qualified name
type UniqueAttributes struct {
	QualifiedName string `json:"qualifiedName"`
}

// RefByGuid builds a reference to an asset by GUID
func RefByGuid(guid string) Reference {
	return Reference{Guid: guid}
}

// RefByQualifiedName builds a reference to an asset by type and qualified name
func RefByQualifiedName(typeName, qualifiedName string) Reference {
	return Reference{
		TypeName:         typeName,
		UniqueAttributes: &UniqueAttributes{QualifiedName: qualifiedName},
	}
}

// AssetAttributes holds the attributes shared by every asset type. Concrete
// attribute structs embed it so the JSON flattens into a single attributes
// object on the wire.
type AssetAttributes struct {
	QualifiedName           string            `json:"qualifiedName,omitempty"`
	Name                    string            `json:"name,omitempty"`
	DisplayName             string            `json:"displayName,omitempty"`
	Description             string            `json:"description,omitempty"`
	UserDescription         string            `json:"userDescription,omitempty"`
	CertificateStatus       CertificateStatus `json:"certificateStatus,omitempty"`
	CertificateMessage      string            `json:"certificateStatusMessage,omitempty"`
	AnnouncementTitle       string            `json:"announcementTitle,omitempty"`
	AnnouncementMessage     string            `json:"announcementMessage,omitempty"`
	AnnouncementType        AnnouncementType  `json:"announcementType,omitempty"`
	OwnerUsers              []string          `json:"ownerUsers,omitempty"`
	OwnerGroups             []string          `json:"ownerGroups,omitempty"`
	ConnectorName           string            `json:"connectorName,omitempty"`
	ConnectionQualifiedName string            `json:"connectionQualifiedName,omitempty"`
}

// Asset is implemented by every concrete asset type.
type Asset interface {
	// Ref returns the base wire record (typeName, guid, status, audit fields)
	Ref() *Referenceable
	// BaseAttributes returns the shared attribute block
	BaseAttributes() *AssetAttributes
}

// Name returns the asset's name attribute
func Name(a Asset) string { return a.BaseAttributes().Name }

// QualifiedName returns the asset's qualified name attribute
func QualifiedName(a Asset) string { return a.BaseAttributes().QualifiedName }

// TrimToRequired returns a fresh instance of the same type holding only the
// identity fields (name + qualified name) needed to anchor an update.
func TrimToRequired(a Asset) (Asset, error) {
	attrs := a.BaseAttributes()
	if attrs.QualifiedName == "" {
		return nil, errors.NewInvalidRequestError("qualified_name is required")
	}
	if attrs.Name == "" {
		return nil, errors.NewInvalidRequestError("name is required")
	}

	fresh, err := NewForType(a.Ref().TypeName)
	if err != nil {
		return nil, err
	}
	fresh.BaseAttributes().Name = attrs.Name
	fresh.BaseAttributes().QualifiedName = attrs.QualifiedName
	return fresh, nil
}

// requireParams checks creator parameters in order and fails on the first
// missing one with the fixed message "<param> is required".
func requireParams(params ...[2]string) error {
	for _, p := range params {
		if p[1] == "" {
			return errors.NewInvalidRequestError("%s is required", p[0])
		}
	}
	return nil
}
