package tui

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

type stubDriver struct {
	inputs       []string
	confirm      []bool
	textAreas    []string
	infoMessages []string
	inputConfigs []InputConfig
	inputPos     int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.inputConfigs = append(s.inputConfigs, cfg)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func contactForm() render.Form {
	return render.Form{
		Name: "Contact",
		Schema: model.Schema{
			model.Field{ID: "name", Type: model.FieldTypeText, Label: "Name"}.WithPlaceholder("Your name"),
			model.Field{ID: "bio", Type: model.FieldTypeTextarea, Label: "Bio"},
			model.Field{ID: "age", Type: model.FieldTypeNumber, Label: "Age"},
			{ID: "born", Type: model.FieldTypeDate, Label: "Born"},
		},
	}
}

func TestRender_CollectsAnswersByFieldID(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "36", "1815-12-10"},
		textAreas: []string{"Mathematician"},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), contactForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `{"age":36,"bio":"Mathematician","born":"1815-12-10","name":"Ada"}`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if driver.inputConfigs[0].Help != "Your name" {
		t.Fatalf("placeholder should surface as help, got %q", driver.inputConfigs[0].Help)
	}
	if driver.inputConfigs[2].Help != "YYYY-MM-DD" {
		t.Fatalf("date prompt should explain the format, got %q", driver.inputConfigs[2].Help)
	}
	if len(driver.infoMessages) != 1 || driver.infoMessages[0] != "Contact" {
		t.Fatalf("expected form title banner, got %v", driver.infoMessages)
	}
}

func TestRender_NumberAndDateValidation(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "many", "36", "10/12/1815", ""},
		textAreas: []string{""},
	}
	r, err := New(WithPromptDriver(driver))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), contactForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(driver.infoMessages) != 3 {
		t.Fatalf("expected two validation messages after the banner, got %v", driver.infoMessages)
	}

	want := `{"age":36,"bio":"","name":"Ada"}`
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("blank date should be omitted (-want +got):\n%s", diff)
	}
}

func TestRender_PrettyFollowsSchemaOrder(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "36.5", "1815-12-10"},
		textAreas: []string{"Hi"},
	}
	r, err := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatPrettyText))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if r.ContentType() != "text/plain" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}

	out, err := r.Render(context.Background(), contactForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "Name: Ada\nBio: Hi\nAge: 36.5\nBorn: 1815-12-10\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("pretty output mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_FormEncodedOutput(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada Lovelace", "", ""},
		textAreas: []string{"a&b"},
	}
	r, err := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatFormURLEncoded))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render(context.Background(), contactForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	parsed, err := url.ParseQuery(string(out))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if parsed.Get("name") != "Ada Lovelace" || parsed.Get("bio") != "a&b" {
		t.Fatalf("unexpected values: %v", parsed)
	}
	if parsed.Has("age") {
		t.Fatalf("blank number should be omitted")
	}
}

func TestRender_PrefillBecomesDefault(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Grace"}}
	r, err := New(WithPromptDriver(driver), WithPrefill(map[string]any{"name": "Ada", "age": 36.0}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	form := render.Form{Schema: model.Schema{{ID: "name", Type: model.FieldTypeText, Label: "Name"}}}
	out, err := r.Render(context.Background(), form, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if driver.inputConfigs[0].Default != "Ada" {
		t.Fatalf("expected prefill default, got %q", driver.inputConfigs[0].Default)
	}
	if string(out) != `{"age":36,"name":"Grace"}` {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestRender_DeclinedConfirmAborts(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Ada"}, confirm: []bool{false}}
	r, err := New(WithPromptDriver(driver), WithConfirmSubmit())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	form := render.Form{Schema: model.Schema{{ID: "name", Type: model.FieldTypeText}}}
	if _, err := r.Render(context.Background(), form, render.RenderOptions{}); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRender_CancelledContext(t *testing.T) {
	r, err := New(WithPromptDriver(&stubDriver{}))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, contactForm(), render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestState_DuplicateIDsKeepFirstPosition(t *testing.T) {
	state := NewState(nil)
	state.Set("a", "1")
	state.Set("b", "2")
	state.Set("a", "3")

	if diff := cmp.Diff([]string{"a", "b"}, state.Order()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if value, _ := state.Get("a"); value != "3" {
		t.Fatalf("expected last answer, got %v", value)
	}
	state.Unset("a")
	if diff := cmp.Diff([]string{"b"}, state.Order()); diff != "" {
		t.Fatalf("order after unset (-want +got):\n%s", diff)
	}
}
