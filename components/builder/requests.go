package builder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formbuilder/pkg/editor"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/workspace"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type dragStartRequest struct {
	Type  string `json:"type" validate:"required_without=Index"`
	Index *int   `json:"index" validate:"required_without=Type"`
}

type dropRequest struct {
	Index    *int            `json:"index" validate:"required"`
	Transfer editor.Transfer `json:"transfer"`
}

type canvasDropRequest struct {
	Transfer editor.Transfer `json:"transfer"`
}

// nameRequest requires the key; blank values still reach the workspace,
// which treats them as no-ops.
type nameRequest struct {
	Name *string `json:"name" validate:"required"`
}

type dragView struct {
	Kind  string `json:"kind"`
	Type  string `json:"type,omitempty"`
	Index *int   `json:"index,omitempty"`
}

type stateResponse struct {
	Changed bool         `json:"changed"`
	Name    string       `json:"name"`
	Saved   bool         `json:"saved"`
	Schema  model.Schema `json:"schema"`
	Forms   []string     `json:"forms"`
	Drag    *dragView    `json:"drag,omitempty"`
}

func newStateResponse(ws *workspace.Workspace, changed bool) stateResponse {
	snap := ws.Snapshot()
	out := stateResponse{
		Changed: changed,
		Name:    snap.Name,
		Saved:   snap.Saved,
		Schema:  snap.Schema,
		Forms:   snap.Forms,
	}
	if out.Forms == nil {
		out.Forms = []string{}
	}
	if snap.Drag != nil {
		view := &dragView{Kind: snap.Drag.Kind.String()}
		switch snap.Drag.Kind {
		case editor.DragPalette:
			view.Type = snap.Drag.Type
		case editor.DragReorder:
			index := snap.Drag.Index
			view.Index = &index
		}
		out.Drag = view
	}
	return out
}

type applyResponse struct {
	Applied bool   `json:"applied"`
	Error   string `json:"error,omitempty"`
	stateResponse
}

type dragStartResponse struct {
	Started  bool            `json:"started"`
	Transfer editor.Transfer `json:"transfer"`
	stateResponse
}

type cloneResponse struct {
	Clone string `json:"clone"`
	stateResponse
}

type formsResponse struct {
	Current string      `json:"current"`
	Saved   bool        `json:"saved"`
	Data    []savedForm `json:"data"`
}

type savedForm struct {
	Name   string       `json:"name"`
	Schema model.Schema `json:"schema"`
}

type paletteEntry struct {
	Type       string   `json:"type"`
	Label      string   `json:"label"`
	Attributes []string `json:"attributes"`
}

type paletteResponse struct {
	Data []paletteEntry `json:"data"`
}

// decodeJSON reads a size-capped JSON body into dst and validates it. Every
// failure is a 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	body := http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return badRequest(errors.New("request body is empty"))
		}
		return badRequest(fmt.Errorf("decode request: %w", err))
	}
	if err := validate.Struct(dst); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return nil
		}
		return badRequest(fmt.Errorf("invalid request: %w", err))
	}
	return nil
}

func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		return nil, badRequest(fmt.Errorf("read request: %w", err))
	}
	return data, nil
}
