package model

import internalmodel "github.com/goliatone/go-formbuilder/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeText     = internalmodel.FieldTypeText
	FieldTypeTextarea = internalmodel.FieldTypeTextarea
	FieldTypeNumber   = internalmodel.FieldTypeNumber
	FieldTypeDate     = internalmodel.FieldTypeDate
)

const (
	AttrID          = internalmodel.AttrID
	AttrType        = internalmodel.AttrType
	AttrLabel       = internalmodel.AttrLabel
	AttrPlaceholder = internalmodel.AttrPlaceholder
)

type Field = internalmodel.Field
type Schema = internalmodel.Schema
type FieldTemplate = internalmodel.FieldTemplate

// ErrFieldNotObject is returned when decoding a schema element that is not a
// JSON object.
var ErrFieldNotObject = internalmodel.ErrFieldNotObject

// Catalog returns the palette entries in display order.
func Catalog() []FieldTemplate {
	return internalmodel.Catalog()
}

// Lookup resolves a palette token into its template.
func Lookup(token string) (FieldTemplate, bool) {
	return internalmodel.Lookup(token)
}

// ParseFieldType resolves user-typed field type names (trimmed, lower-cased).
func ParseFieldType(raw string) (FieldType, bool) {
	return internalmodel.ParseFieldType(raw)
}
