package builder

import "net/http"

// Component wraps the builder handler, its configuration, and routing helpers.
type Component struct {
	opts   Options
	server *server
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) (*Component, error) {
	opts := NewOptions(fns...)
	s, err := newServer(opts)
	if err != nil {
		return nil, err
	}
	return &Component{opts: opts, server: s}, nil
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns the builder API mounted at basePath. Handlers from the
// same component share sessions.
func (c *Component) Handler(basePath string) http.Handler {
	return c.server.router(basePath)
}

// RegisterRoutes registers the component handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if mux == nil {
		return "", errMissingMux
	}
	pattern := MountPath(basePath)
	mux.Handle(pattern, c.Handler(basePath))
	return pattern, nil
}

// Sessions reports how many workspaces are live.
func (c *Component) Sessions() int {
	return c.server.sessions.Len()
}
