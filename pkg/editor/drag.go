package editor

// DragKind distinguishes the origin of a drag session.
type DragKind int

const (
	DragNone DragKind = iota
	// DragPalette carries a field-type token from the palette.
	DragPalette
	// DragReorder carries the source index of an existing field.
	DragReorder
)

func (k DragKind) String() string {
	switch k {
	case DragPalette:
		return "palette"
	case DragReorder:
		return "reorder"
	default:
		return "none"
	}
}

// DragSession is the ephemeral record of an in-progress drag. It lives from
// drag start until the first drop or drag end, whichever comes first.
type DragSession struct {
	Kind  DragKind
	Type  string
	Index int
}

// Transfer encodes the session as the payload a drop will carry.
func (s DragSession) Transfer() Transfer {
	switch s.Kind {
	case DragPalette:
		return PaletteTransfer(s.Type)
	case DragReorder:
		return ReorderTransfer(s.Index)
	default:
		return Transfer{}
	}
}

// BeginPaletteDrag opens a palette-origin session. Unknown tokens still open
// a session; they are rejected when dropped.
func (e *Editor) BeginPaletteDrag(token string) Transfer {
	e.drag = &DragSession{Kind: DragPalette, Type: token}
	return e.drag.Transfer()
}

// BeginReorderDrag opens a reorder session for the field at index. An index
// outside the schema leaves no session behind.
func (e *Editor) BeginReorderDrag(index int) (Transfer, bool) {
	if index < 0 || index >= len(e.schema) {
		e.drag = nil
		e.logger.Debug().Int("index", index).Int("len", len(e.schema)).Msg("editor: reorder drag outside schema ignored")
		return Transfer{}, false
	}
	e.drag = &DragSession{Kind: DragReorder, Index: index}
	return e.drag.Transfer(), true
}

// EndDrag discards the session. Called on drag termination with or without a
// drop; a stale index must never leak into a later drop.
func (e *Editor) EndDrag() {
	e.drag = nil
}

// Session returns the active drag session, if any.
func (e *Editor) Session() (DragSession, bool) {
	if e.drag == nil {
		return DragSession{}, false
	}
	return *e.drag, true
}

// Dragging reports the source index of an active reorder drag. Renderers use
// it to dim the field being moved.
func (e *Editor) Dragging() (int, bool) {
	if e.drag == nil || e.drag.Kind != DragReorder {
		return 0, false
	}
	return e.drag.Index, true
}

// Drop resolves a drop on target index i (one of the N+1 drop targets). A
// field-type payload wins over dragged-index. The session is cleared no
// matter the outcome.
func (e *Editor) Drop(index int, payload Transfer) bool {
	defer e.EndDrag()

	if token, ok := payload.FieldType(); ok {
		_, inserted := e.Insert(token, index)
		return inserted
	}
	if source, ok := payload.DraggedIndex(); ok {
		return e.Move(source, index)
	}

	e.logger.Debug().Int("index", index).Msg("editor: drop without payload ignored")
	return false
}

// DropOnCanvas handles a drop on the canvas root rather than a specific
// target: palette fields are appended, reorder payloads are ignored.
func (e *Editor) DropOnCanvas(payload Transfer) bool {
	defer e.EndDrag()

	token, ok := payload.FieldType()
	if !ok {
		e.logger.Debug().Msg("editor: canvas drop without palette payload ignored")
		return false
	}
	_, inserted := e.Append(token)
	return inserted
}
