// Package workspace is the owned state object behind one form builder
// session: the live schema editor, the saved-form registry and the name of
// the form currently being edited. Views receive a *Workspace and emit intents
// through it; nothing here is global.
package workspace
