package editor

import "errors"

// ErrInvalidSchemaJSON wraps every rejection of a JSON edit.
var ErrInvalidSchemaJSON = errors.New("editor: invalid schema JSON")
