package render

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Device selects the preview frame.
type Device string

const (
	DeviceWeb    Device = "web"
	DeviceMobile Device = "mobile"
)

// ParseDevice maps user input onto a Device, defaulting to web.
func ParseDevice(raw string) Device {
	switch Device(strings.ToLower(strings.TrimSpace(raw))) {
	case DeviceMobile:
		return DeviceMobile
	default:
		return DeviceWeb
	}
}

// View selects which part of the builder a renderer produces.
type View string

const (
	// ViewPreview renders the read-only form as an end user would see it.
	ViewPreview View = "preview"
	// ViewCanvas renders the builder canvas with its N+1 drop targets.
	ViewCanvas View = "canvas"
	// ViewPalette renders the draggable field type list.
	ViewPalette View = "palette"
	// ViewBuilder renders palette, canvas and preview side by side.
	ViewBuilder View = "builder"
)

// RenderOptions describe per-request presentation choices that do not change
// the form itself.
type RenderOptions struct {
	View   View
	Device Device
	// Dragging marks the canvas field currently being reordered, if any.
	Dragging *int
	// Theme supplies design tokens; Variant selects one of its variants.
	Theme   *theme.Manifest
	Variant string
}

// Normalized fills defaults for unset options.
func (o RenderOptions) Normalized() RenderOptions {
	if o.View == "" {
		o.View = ViewPreview
	}
	o.Device = ParseDevice(string(o.Device))
	o.Variant = strings.TrimSpace(o.Variant)
	return o
}
