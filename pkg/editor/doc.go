// Package editor holds the schema editor state machine: the live ordered list
// of field definitions plus the drag session that drives insertions and
// reorders. Renderers never touch the schema directly; they translate user
// gestures into calls on Editor (drop at index, update, remove, JSON edit).
//
// Every invalid input degrades to a no-op. Operations report whether they
// changed anything and unparseable JSON is reported through
// ErrInvalidSchemaJSON, but the schema is never left partially modified.
package editor
