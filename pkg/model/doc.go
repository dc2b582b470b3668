// Package model defines the form schema consumed by the editor, the saved-form
// registry and the renderers. Types live in internal/model and are re-exported
// here so callers never import the internal package.
//
// A Schema is an ordered list of Field values. Each field belongs to one of
// the closed set of FieldType values (text, textarea, number, date); the
// palette Catalog declares, per type, the default definition a dropped field
// starts from and the attributes that type carries. Attributes outside the
// modelled set are preserved verbatim in Field.Extra so hand-edited JSON
// survives a round trip.
package model
