package builder

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/goliatone/go-formbuilder/pkg/export"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/vanilla"
	"github.com/goliatone/go-formbuilder/pkg/workspace"
)

type server struct {
	opts     Options
	sessions *sessionStore
	renderer render.Renderer
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *session) error

// Handler builds the builder API with default options plus any overrides.
func Handler(fns ...OptionFn) (http.Handler, error) {
	return HandlerWithOptions(NewOptions(fns...), "")
}

// HandlerWithOptions builds the router for a pre-constructed Options value,
// with every route mounted under basePath.
func HandlerWithOptions(opts Options, basePath string) (http.Handler, error) {
	s, err := newServer(NewOptions(func(o *Options) { *o = opts }))
	if err != nil {
		return nil, err
	}
	return s.router(basePath), nil
}

func newServer(opts Options) (*server, error) {
	renderer := opts.Renderer
	if renderer == nil {
		html, err := vanilla.New()
		if err != nil {
			return nil, fmt.Errorf("builder: configure renderer: %w", err)
		}
		renderer = html
	}
	return &server{
		opts:     opts,
		sessions: newSessionStore(opts),
		renderer: renderer,
	}, nil
}

func (s *server) router(basePath string) *mux.Router {
	root := mux.NewRouter()
	api := root
	if prefix := mountPath(basePath, "/"); prefix != "/" {
		api = root.PathPrefix(strings.TrimRight(prefix, "/")).Subrouter()
	}

	api.Handle("/", s.session(s.handleBuilder)).Methods(http.MethodGet)
	api.Handle("/palette", s.session(s.handlePalette)).Methods(http.MethodGet)
	api.Handle("/schema", s.session(s.handleGetSchema)).Methods(http.MethodGet)
	api.Handle("/schema", s.session(s.handlePutSchema)).Methods(http.MethodPut)
	api.Handle("/drag/start", s.session(s.handleDragStart)).Methods(http.MethodPost)
	api.Handle("/drag/end", s.session(s.handleDragEnd)).Methods(http.MethodPost)
	api.Handle("/drop", s.session(s.handleDrop)).Methods(http.MethodPost)
	api.Handle("/canvas/drop", s.session(s.handleCanvasDrop)).Methods(http.MethodPost)
	api.Handle("/fields/{id}", s.session(s.handleUpdateField)).Methods(http.MethodPatch)
	api.Handle("/fields/{id}", s.session(s.handleRemoveField)).Methods(http.MethodDelete)
	api.Handle("/forms", s.session(s.handleListForms)).Methods(http.MethodGet)
	api.Handle("/forms/save", s.session(s.nameAction(func(ws *workspace.Workspace, name string) bool { return ws.Save(name) }))).Methods(http.MethodPost)
	api.Handle("/forms/rename", s.session(s.nameAction(func(ws *workspace.Workspace, name string) bool { return ws.Rename(name) }))).Methods(http.MethodPost)
	api.Handle("/forms/commit-name", s.session(s.nameAction(func(ws *workspace.Workspace, name string) bool { return ws.CommitName(name) }))).Methods(http.MethodPost)
	api.Handle("/forms/select", s.session(s.nameAction(func(ws *workspace.Workspace, name string) bool { return ws.Select(name) }))).Methods(http.MethodPost)
	api.Handle("/forms/clone", s.session(s.handleClone)).Methods(http.MethodPost)
	api.Handle("/forms/new", s.session(s.handleNewForm)).Methods(http.MethodPost)
	api.Handle("/forms/{name}/openapi", s.session(s.handleOpenAPI)).Methods(http.MethodGet)
	api.Handle("/preview", s.session(s.handlePreview)).Methods(http.MethodGet)
	api.Handle("/canvas", s.session(s.handleCanvas)).Methods(http.MethodGet)
	api.Handle("/live", s.guarded(func(w http.ResponseWriter, r *http.Request) {
		s.serveLive(w, r, s.sessions.resolve(w, r))
	})).Methods(http.MethodGet)

	return root
}

func (s *server) guarded(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.Guard != nil {
			if err := s.opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}
		next(w, r)
	})
}

// session resolves the caller's workspace and runs fn while holding its lock.
func (s *server) session(fn sessionHandler) http.Handler {
	return s.guarded(func(w http.ResponseWriter, r *http.Request) {
		sess := s.sessions.resolve(w, r)
		sess.mu.Lock()
		defer sess.mu.Unlock()

		if err := fn(w, r, sess); err != nil {
			s.opts.Logger.Debug().Err(err).Str("session", sess.id).Str("path", r.URL.Path).Msg("builder: request failed")
			writeError(w, err)
		}
	})
}

func (s *server) handlePalette(w http.ResponseWriter, _ *http.Request, _ *session) error {
	catalog := model.Catalog()
	out := paletteResponse{Data: make([]paletteEntry, 0, len(catalog))}
	for _, tpl := range catalog {
		out.Data = append(out.Data, paletteEntry{
			Type:       string(tpl.Type),
			Label:      tpl.Label,
			Attributes: tpl.Attributes,
		})
	}
	respondJSON(w, http.StatusOK, out)
	return nil
}

func (s *server) handleGetSchema(w http.ResponseWriter, _ *http.Request, sess *session) error {
	data, err := sess.workspace.Editor().JSON()
	if err != nil {
		return fmt.Errorf("builder: encode schema: %w", err)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	return nil
}

// handlePutSchema applies a JSON edit. Text that does not parse leaves the
// schema untouched and is reported in the body, not as a transport error.
func (s *server) handlePutSchema(w http.ResponseWriter, r *http.Request, sess *session) error {
	body, err := readBody(w, r, s.opts.MaxBodyBytes)
	if err != nil {
		return err
	}
	out := applyResponse{Applied: true}
	if err := sess.workspace.Editor().ApplyJSON(body); err != nil {
		out.Applied = false
		out.Error = err.Error()
	}
	out.stateResponse = newStateResponse(sess.workspace, out.Applied)
	respondJSON(w, http.StatusOK, out)
	return nil
}

func (s *server) handleDragStart(w http.ResponseWriter, r *http.Request, sess *session) error {
	var req dragStartRequest
	if err := decodeJSON(w, r, s.opts.MaxBodyBytes, &req); err != nil {
		return err
	}

	ed := sess.workspace.Editor()
	out := dragStartResponse{}
	if req.Type != "" {
		out.Transfer = ed.BeginPaletteDrag(req.Type)
		out.Started = true
	} else {
		out.Transfer, out.Started = ed.BeginReorderDrag(*req.Index)
	}
	out.stateResponse = newStateResponse(sess.workspace, false)
	if out.Started {
		sess.publishSnapshot()
	}
	respondJSON(w, http.StatusOK, out)
	return nil
}

func (s *server) handleDragEnd(w http.ResponseWriter, _ *http.Request, sess *session) error {
	sess.workspace.Editor().EndDrag()
	sess.publishSnapshot()
	respondJSON(w, http.StatusOK, newStateResponse(sess.workspace, false))
	return nil
}

func (s *server) handleDrop(w http.ResponseWriter, r *http.Request, sess *session) error {
	var req dropRequest
	if err := decodeJSON(w, r, s.opts.MaxBodyBytes, &req); err != nil {
		sess.workspace.Editor().EndDrag()
		return err
	}
	changed := sess.workspace.Editor().Drop(*req.Index, req.Transfer)
	respondJSON(w, http.StatusOK, newStateResponse(sess.workspace, changed))
	return nil
}

func (s *server) handleCanvasDrop(w http.ResponseWriter, r *http.Request, sess *session) error {
	var req canvasDropRequest
	if err := decodeJSON(w, r, s.opts.MaxBodyBytes, &req); err != nil {
		sess.workspace.Editor().EndDrag()
		return err
	}
	changed := sess.workspace.Editor().DropOnCanvas(req.Transfer)
	respondJSON(w, http.StatusOK, newStateResponse(sess.workspace, changed))
	return nil
}

func (s *server) handleUpdateField(w http.ResponseWriter, r *http.Request, sess *session) error {
	var def model.Field
	if err := decodeJSON(w, r, s.opts.MaxBodyBytes, &def); err != nil {
		return err
	}
	changed := sess.workspace.Editor().Update(mux.Vars(r)["id"], def)
	respondJSON(w, http.StatusOK, newStateResponse(sess.workspace, changed))
	return nil
}

func (s *server) handleRemoveField(w http.ResponseWriter, r *http.Request, sess *session) error {
	changed := sess.workspace.Editor().Remove(mux.Vars(r)["id"])
	respondJSON(w, http.StatusOK, newStateResponse(sess.workspace, changed))
	return nil
}

func (s *server) handleListForms(w http.ResponseWriter, _ *http.Request, sess *session) error {
	saved := sess.workspace.Forms()
	out := formsResponse{
		Current: sess.workspace.CurrentName(),
		Saved:   sess.workspace.IsSaved(),
		Data:    make([]savedForm, 0, len(saved)),
	}
	for _, form := range saved {
		out.Data = append(out.Data, savedForm{Name: form.Name, Schema: form.Schema})
	}
	respondJSON(w, http.StatusOK, out)
	return nil
}

func (s *server) nameAction(apply func(ws *workspace.Workspace, name string) bool) sessionHandler {
	return func(w http.ResponseWriter, r *http.Request, sess *session) error {
		var req nameRequest
		if err := decodeJSON(w, r, s.opts.MaxBodyBytes, &req); err != nil {
			return err
		}
		changed := apply(sess.workspace, *req.Name)
		respondJSON(w, http.StatusOK, newStateResponse(sess.workspace, changed))
		return nil
	}
}

func (s *server) handleClone(w http.ResponseWriter, _ *http.Request, sess *session) error {
	name := sess.workspace.Clone()
	respondJSON(w, http.StatusOK, cloneResponse{
		Clone:         name,
		stateResponse: newStateResponse(sess.workspace, true),
	})
	return nil
}

func (s *server) handleNewForm(w http.ResponseWriter, _ *http.Request, sess *session) error {
	sess.workspace.NewForm()
	respondJSON(w, http.StatusOK, newStateResponse(sess.workspace, true))
	return nil
}

func (s *server) handleOpenAPI(w http.ResponseWriter, r *http.Request, sess *session) error {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		return badRequest(err)
	}

	name := mux.Vars(r)["name"]
	var form *render.Form
	for _, saved := range sess.workspace.Forms() {
		if saved.Name == name {
			form = &render.Form{Name: saved.Name, Schema: saved.Schema}
			break
		}
	}
	if form == nil {
		return StatusError{Code: http.StatusNotFound, Err: fmt.Errorf("saved form %q not found", name)}
	}

	doc, err := export.OpenAPI(r.Context(), *form)
	if errors.Is(err, export.ErrInvalidFieldID) {
		return StatusError{Code: http.StatusUnprocessableEntity, Err: err}
	}
	if err != nil {
		return err
	}
	data, err := export.Marshal(doc, format)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	return nil
}

func (s *server) handlePreview(w http.ResponseWriter, r *http.Request, sess *session) error {
	return s.renderView(w, r, sess, render.ViewPreview)
}

func (s *server) handleCanvas(w http.ResponseWriter, r *http.Request, sess *session) error {
	return s.renderView(w, r, sess, render.ViewCanvas)
}

func (s *server) handleBuilder(w http.ResponseWriter, r *http.Request, sess *session) error {
	return s.renderView(w, r, sess, render.ViewBuilder)
}

func (s *server) renderView(w http.ResponseWriter, r *http.Request, sess *session, view render.View) error {
	query := r.URL.Query()
	options := render.RenderOptions{
		View:    view,
		Device:  s.opts.Device,
		Theme:   s.opts.Theme,
		Variant: s.opts.Variant,
	}
	if device := query.Get("device"); device != "" {
		options.Device = render.ParseDevice(device)
	}
	if variant := query.Get("variant"); variant != "" {
		options.Variant = variant
	}
	if index, ok := sess.workspace.Editor().Dragging(); ok {
		options.Dragging = &index
	}

	form := render.Form{
		Name:   sess.workspace.CurrentName(),
		Schema: sess.workspace.Editor().Schema(),
	}
	out, err := s.renderer.Render(r.Context(), form, options)
	if err != nil {
		return fmt.Errorf("builder: render %s: %w", view, err)
	}
	w.Header().Set("Content-Type", s.renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
	return nil
}
