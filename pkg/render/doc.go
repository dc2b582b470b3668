// Package render defines the renderer contract shared by the preview outputs
// (HTML, terminal) plus a name-keyed registry so transports can pick a
// renderer per request.
package render
