package editor

import (
	"strconv"
	"strings"
)

// Keys carried on the drag payload.
const (
	TransferFieldType    = "field-type"
	TransferDraggedIndex = "dragged-index"
)

// Transfer is the drag payload medium: string key/value pairs, mirroring a
// browser DataTransfer. A missing key reads as "".
type Transfer map[string]string

// PaletteTransfer encodes a palette-origin drag.
func PaletteTransfer(token string) Transfer {
	return Transfer{TransferFieldType: token}
}

// ReorderTransfer encodes a drag of the field at index.
func ReorderTransfer(index int) Transfer {
	return Transfer{TransferDraggedIndex: strconv.Itoa(index)}
}

// Get returns the value stored under key, or "".
func (t Transfer) Get(key string) string {
	if t == nil {
		return ""
	}
	return t[key]
}

// FieldType returns the palette token when one is present.
func (t Transfer) FieldType() (string, bool) {
	token := t.Get(TransferFieldType)
	return token, token != ""
}

// DraggedIndex parses the reorder source index. Values that are not base-10
// integers are treated as absent.
func (t Transfer) DraggedIndex() (int, bool) {
	raw := strings.TrimSpace(t.Get(TransferDraggedIndex))
	if raw == "" {
		return 0, false
	}
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return index, true
}
