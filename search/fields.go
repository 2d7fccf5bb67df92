package search

// Index field names. Core metadata fields carry a double-underscore prefix
// in the index; text fields needing exact matching use their .keyword
// sub-field.
const (
	FieldTypeName      = "__typeName.keyword"
	FieldGuid          = "__guid"
	FieldState         = "__state"
	FieldCreatedBy     = "__createdBy"
	FieldModifiedBy    = "__modifiedBy"
	FieldCreateTime    = "__timestamp"
	FieldUpdateTime    = "__modificationTimestamp"
	FieldSuperTypes    = "__superTypeNames.keyword"
	FieldTags          = "__traitNames"
	FieldTerms         = "__meanings"
	FieldQualifiedName = "qualifiedName"
	FieldName          = "name.keyword"
	FieldNameText      = "name"
	FieldDescription   = "description.keyword"
	FieldUserDesc      = "userDescription.keyword"
	FieldOwnerUsers    = "ownerUsers"
	FieldOwnerGroups   = "ownerGroups"
	FieldCertificate   = "certificateStatus"
	FieldConnectorName = "connectorName"
	FieldConnectionQN  = "connectionQualifiedName"
)

// ActiveAssets matches assets that are not soft-deleted
func ActiveAssets() Query {
	return Term{Field: FieldState, Value: "ACTIVE"}
}

// ForType matches assets of exactly one type
func ForType(typeName string) Query {
	return Term{Field: FieldTypeName, Value: typeName}
}

// ForTypes matches assets of any of the given types
func ForTypes(typeNames ...string) Query {
	values := make([]interface{}, len(typeNames))
	for i, t := range typeNames {
		values[i] = t
	}
	return Terms{Field: FieldTypeName, Values: values}
}

// ByName matches assets by exact name
func ByName(name string) Query {
	return Term{Field: FieldName, Value: name}
}

// ByQualifiedName matches one asset by its exact qualified name
func ByQualifiedName(qualifiedName string) Query {
	return Term{Field: FieldQualifiedName, Value: qualifiedName}
}

// WithinConnection matches assets whose qualified name falls under a
// connection prefix
func WithinConnection(connectionQualifiedName string) Query {
	return Prefix{Field: FieldQualifiedName, Value: connectionQualifiedName + "/"}
}
