package render

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
)

var (
	// ErrRendererNotFound is returned when no renderer matches a lookup.
	ErrRendererNotFound = errors.New("render: renderer not found")
	// ErrViewUnsupported is returned when the named renderer cannot produce
	// the requested view.
	ErrViewUnsupported = errors.New("render: view not supported")
)

// ViewRenderer is implemented by renderers that only produce some views.
// Renderers without it are assumed to handle every view.
type ViewRenderer interface {
	Views() []View
}

// Supports reports whether renderer can produce view.
func Supports(renderer Renderer, view View) bool {
	scoped, ok := renderer.(ViewRenderer)
	if !ok {
		return true
	}
	return slices.Contains(scoped.Views(), view)
}

// Registry holds renderers by name and picks one for a requested view.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register adds a renderer under its Name(). Names are unique.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return errors.New("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return errors.New("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the renderer registered under name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRendererNotFound, name)
	}
	return renderer, nil
}

// Resolve picks the renderer for view. A non-empty name must exist and
// support the view; an empty name selects the first supporting renderer in
// name order.
func (r *Registry) Resolve(name string, view View) (Renderer, error) {
	if name != "" {
		renderer, err := r.Get(name)
		if err != nil {
			return nil, err
		}
		if !Supports(renderer, view) {
			return nil, fmt.Errorf("%w: %q cannot render %q", ErrViewUnsupported, name, view)
		}
		return renderer, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, candidate := range r.sortedNames() {
		if renderer := r.renderers[candidate]; Supports(renderer, view) {
			return renderer, nil
		}
	}
	return nil, fmt.Errorf("%w: none renders %q", ErrRendererNotFound, view)
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames()
}

func (r *Registry) sortedNames() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
