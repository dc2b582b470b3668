// Package builder exposes the form builder workspace over HTTP.
//
// Each browser session owns a workspace keyed by a UUID cookie. Requests for
// one session are serialised by a per-session lock, so the editor sees the same
// one-event-at-a-time ordering as an in-process UI. Drag intents, drops, field
// edits, JSON edits and saved-form actions are JSON endpoints; preview and
// canvas markup comes from the vanilla renderer; /live streams the workspace
// state over a websocket after every change.
package builder
