package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

const dateLayout = "2006-01-02"

// Renderer implements render.Renderer for terminal sessions: it fills in a
// built form by prompting for each field in schema order.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	prefill           map[string]any
	confirmSubmit     bool
	submitTransformer SubmitTransformer
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		driver, err := newSurveyDriver()
		if err != nil {
			return nil, err
		}
		r.driver = driver
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Views reports that a terminal can only fill in the form preview.
func (r *Renderer) Views() []render.View {
	return []render.View{render.ViewPreview}
}

// Render prompts for every field and serializes the answers keyed by field
// id. Presentation options (device, theme) do not apply to terminals.
func (r *Renderer) Render(ctx context.Context, form render.Form, _ render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	if name := strings.TrimSpace(form.Name); name != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+name); err != nil {
			return nil, err
		}
	}

	state := NewState(r.prefill)
	for _, field := range form.Schema {
		if err := r.promptField(ctx, field, state); err != nil {
			return nil, err
		}
	}

	if r.confirmSubmit {
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Submit?", Default: true})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAborted
		}
	}

	values := state.Values()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}

	return r.serialize(form.Schema, state.Order(), values)
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, state *State) error {
	switch field.Type {
	case model.FieldTypeTextarea:
		return r.promptTextArea(ctx, field, state)
	case model.FieldTypeNumber:
		return r.promptParsed(ctx, field, state, validateNumber, func(raw string) any {
			value, _ := strconv.ParseFloat(raw, 64)
			return value
		})
	case model.FieldTypeDate:
		return r.promptParsed(ctx, field, state, validateDate, func(raw string) any {
			return raw
		})
	default:
		// text and types only reachable through a manual JSON edit
		response, err := r.driver.Input(ctx, InputConfig{
			Message: displayLabel(field),
			Default: state.DefaultString(field.ID),
			Help:    field.PlaceholderText(),
		})
		if err != nil {
			return err
		}
		state.Set(field.ID, response)
		return nil
	}
}

func (r *Renderer) promptTextArea(ctx context.Context, field model.Field, state *State) error {
	response, err := r.driver.TextArea(ctx, TextAreaConfig{
		Message: displayLabel(field),
		Default: state.DefaultString(field.ID),
		Help:    field.PlaceholderText(),
	})
	if err != nil {
		return err
	}
	state.Set(field.ID, response)
	return nil
}

// promptParsed keeps asking until the answer validates. Blank answers leave
// the field unanswered.
func (r *Renderer) promptParsed(ctx context.Context, field model.Field, state *State, validate func(string) error, convert func(string) any) error {
	label := displayLabel(field)
	help := field.PlaceholderText()
	if field.Type == model.FieldTypeDate && help == "" {
		help = "YYYY-MM-DD"
	}

	for {
		response, err := r.driver.Input(ctx, InputConfig{
			Message:   label,
			Default:   state.DefaultString(field.ID),
			Help:      help,
			Validator: validate,
		})
		if err != nil {
			return err
		}

		response = strings.TrimSpace(response)
		if response == "" {
			state.Unset(field.ID)
			return nil
		}
		if err := validate(response); err != nil {
			_ = r.driver.Info(ctx, fmt.Sprintf("%sInvalid %s: %v", r.theme.ErrorPrefix, label, err))
			continue
		}

		state.Set(field.ID, convert(response))
		return nil
	}
}

func (r *Renderer) serialize(schema model.Schema, order []string, values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(schema, order, values)), nil
	default:
		return json.Marshal(values)
	}
}

func displayLabel(field model.Field) string {
	if strings.TrimSpace(field.Label) != "" {
		return field.Label
	}
	return field.ID
}

func validateNumber(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return fmt.Errorf("%q is not a number", raw)
	}
	return nil
}

func validateDate(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, raw); err != nil {
		return fmt.Errorf("%q is not a date (YYYY-MM-DD)", raw)
	}
	return nil
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	for key, value := range values {
		flattened.Set(key, toString(value))
	}
	return flattened.Encode()
}

// prettyPrint lists answers as "label: value" lines in schema order.
func prettyPrint(schema model.Schema, order []string, values map[string]any) string {
	labels := make(map[string]string, len(schema))
	for _, field := range schema {
		if _, ok := labels[field.ID]; !ok {
			labels[field.ID] = displayLabel(field)
		}
	}

	var b strings.Builder
	for _, id := range order {
		value, ok := values[id]
		if !ok {
			continue
		}
		label := labels[id]
		if label == "" {
			label = id
		}
		fmt.Fprintf(&b, "%s: %s\n", label, toString(value))
	}
	return b.String()
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func toString(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return formatNumber(typed)
	default:
		return fmt.Sprint(typed)
	}
}
