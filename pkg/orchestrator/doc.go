// Package orchestrator wires the source → schema → transformer → renderer
// pipeline behind a single Generate call, for callers that render saved
// schemas outside the interactive builder.
package orchestrator
