package editor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Editor owns the live schema. It is not safe for concurrent use; callers
// serialise events the way a UI event loop does.
type Editor struct {
	schema    model.Schema
	drag      *DragSession
	now       func() time.Time
	logger    zerolog.Logger
	listeners []ChangeFunc
}

// New constructs an Editor with an empty schema unless WithSchema is given.
func New(options ...Option) *Editor {
	e := &Editor{
		schema: model.Schema{},
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Schema returns a copy of the live schema.
func (e *Editor) Schema() model.Schema {
	return e.schema.Clone()
}

// Len returns the number of fields.
func (e *Editor) Len() int {
	return len(e.schema)
}

// DropTargets is the number of addressable insertion points: one before each
// field plus a trailing sentinel.
func (e *Editor) DropTargets() int {
	return len(e.schema) + 1
}

// Field returns a copy of the field with the given id.
func (e *Editor) Field(id string) (model.Field, bool) {
	index := e.schema.IndexOf(id)
	if index < 0 {
		return model.Field{}, false
	}
	return e.schema[index].Clone(), true
}

// Insert builds a field from the palette token's default template and splices
// it at index. Unknown tokens and indices outside [0, N] are ignored.
func (e *Editor) Insert(token string, index int) (model.Field, bool) {
	tpl, ok := model.Lookup(token)
	if !ok {
		e.logger.Debug().Str("token", token).Msg("editor: unknown field type ignored")
		return model.Field{}, false
	}
	if index < 0 || index > len(e.schema) {
		e.logger.Debug().Int("index", index).Int("len", len(e.schema)).Msg("editor: insert outside drop targets ignored")
		return model.Field{}, false
	}

	field := tpl.New(e.nextID(tpl.Type))
	e.schema = insertAt(e.schema, index, field)
	e.notify()
	return field.Clone(), true
}

// Append inserts a palette field after the last one.
func (e *Editor) Append(token string) (model.Field, bool) {
	return e.Insert(token, len(e.schema))
}

// Move reorders the field at source to drop target index target, where target
// is observed against the schema before removal. The field is removed first
// and the target shifted left by one when it sat after the source, so dropping
// a field right before or right after itself leaves the order unchanged.
func (e *Editor) Move(source, target int) bool {
	n := len(e.schema)
	if source < 0 || source >= n || target < 0 || target > n {
		e.logger.Debug().Int("source", source).Int("target", target).Int("len", n).Msg("editor: move outside schema ignored")
		return false
	}

	item := e.schema[source]

	next := make(model.Schema, 0, n)
	next = append(next, e.schema[:source]...)
	next = append(next, e.schema[source+1:]...)

	adjusted := target
	if source < target {
		adjusted = target - 1
	}
	next = insertAt(next, adjusted, item)

	changed := adjusted != source
	e.schema = next
	if changed {
		e.notify()
	}
	return true
}

// Update replaces the field matching id with def. The stored id and type are
// kept from the existing entry: a def.ID or def.Type that differs is ignored,
// so Update never renames or retypes a field. Other fields are left untouched.
func (e *Editor) Update(id string, def model.Field) bool {
	index := e.schema.IndexOf(id)
	if index < 0 {
		e.logger.Debug().Str("id", id).Msg("editor: update of unknown field ignored")
		return false
	}

	e.schema[index] = def.WithIdentityOf(e.schema[index])
	e.notify()
	return true
}

// Remove drops the field matching id. Unknown ids are a no-op.
func (e *Editor) Remove(id string) bool {
	index := e.schema.IndexOf(id)
	if index < 0 {
		e.logger.Debug().Str("id", id).Msg("editor: remove of unknown field ignored")
		return false
	}

	next := make(model.Schema, 0, len(e.schema)-1)
	next = append(next, e.schema[:index]...)
	next = append(next, e.schema[index+1:]...)
	e.schema = next
	e.notify()
	return true
}

// Replace swaps the whole schema for a copy of schema. Used when loading,
// cloning or starting a new form.
func (e *Editor) Replace(schema model.Schema) {
	e.schema = schema.Clone()
	e.drag = nil
	e.notify()
}

// JSON serialises the live schema as pretty-printed JSON.
func (e *Editor) JSON() ([]byte, error) {
	payload, err := json.MarshalIndent(e.schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("editor: encode schema: %w", err)
	}
	return payload, nil
}

// ApplyJSON replaces the schema with the parsed text. On any parse failure,
// or when the text is not an array of field objects, the schema is left as it
// was. Ids and types are taken as written, without uniqueness or enumeration
// checks.
func (e *Editor) ApplyJSON(text []byte) error {
	schema, err := ParseSchema(text)
	if err != nil {
		e.logger.Debug().Err(err).Msg("editor: JSON edit rejected")
		return err
	}
	e.schema = schema
	e.drag = nil
	e.notify()
	return nil
}

// ParseSchema decodes a JSON array of field objects.
func ParseSchema(text []byte) (model.Schema, error) {
	trimmed := bytes.TrimSpace(text)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrInvalidSchemaJSON)
	}

	var schema model.Schema
	if err := json.Unmarshal(trimmed, &schema); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchemaJSON, err)
	}
	if schema == nil {
		schema = model.Schema{}
	}
	return schema, nil
}

// nextID stamps "<type>-<unix millis>", bumping the stamp while it collides
// with an id already in the schema.
func (e *Editor) nextID(typ model.FieldType) string {
	stamp := e.now().UnixMilli()
	for {
		id := string(typ) + "-" + strconv.FormatInt(stamp, 10)
		if !e.schema.Has(id) {
			return id
		}
		stamp++
	}
}

func (e *Editor) notify() {
	if len(e.listeners) == 0 {
		return
	}
	for _, fn := range e.listeners {
		fn(e.schema.Clone())
	}
}

func insertAt(schema model.Schema, index int, field model.Field) model.Schema {
	schema = append(schema, model.Field{})
	copy(schema[index+1:], schema[index:])
	schema[index] = field
	return schema
}
