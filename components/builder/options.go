package builder

import (
	"net/http"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/workspace"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	CookieName  string
	SessionTTL  time.Duration
	DefaultName string
	Device      render.Device
	Theme       *theme.Manifest
	Variant     string
	// Seed is copied into every new session's workspace.
	Seed     model.Schema
	Renderer render.Renderer
	Guard    GuardFunc
	Logger   zerolog.Logger
	Clock    func() time.Time
	// MaxBodyBytes caps request bodies; JSON edits can be large.
	MaxBodyBytes int64
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		CookieName:   "formbuilder",
		SessionTTL:   12 * time.Hour,
		DefaultName:  workspace.DefaultFormName,
		Device:       render.DeviceWeb,
		Logger:       zerolog.Nop(),
		Clock:        time.Now,
		MaxBodyBytes: 1 << 20,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if strings.TrimSpace(opts.CookieName) == "" {
		opts.CookieName = "formbuilder"
	}
	if opts.SessionTTL < 0 {
		opts.SessionTTL = 0
	}
	if strings.TrimSpace(opts.DefaultName) == "" {
		opts.DefaultName = workspace.DefaultFormName
	}
	opts.Device = render.ParseDevice(string(opts.Device))
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	if opts.Seed != nil {
		opts.Seed = opts.Seed.Clone()
	}
	return opts
}

func WithCookieName(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CookieName = name
	}
}

// WithSessionTTL expires idle sessions; zero keeps them for the process
// lifetime.
func WithSessionTTL(ttl time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SessionTTL = ttl
	}
}

func WithDefaultName(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultName = name
	}
}

func WithDevice(device render.Device) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Device = device
	}
}

func WithTheme(manifest *theme.Manifest, variant string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = manifest
		o.Variant = variant
	}
}

func WithSeed(schema model.Schema) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Seed = schema
	}
}

func WithRenderer(renderer render.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLogger(logger zerolog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithClock(now func() time.Time) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Clock = now
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}
