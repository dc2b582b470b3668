// Package forms implements the saved-form registry: an ordered collection of
// named schema snapshots, independent from the live editor.
package forms
