package vanilla

// ChromeClass is a typed identifier for semantic builder CSS classes.
type ChromeClass string

const (
	ClassBuilder ChromeClass = "fb-builder"
	ClassPalette ChromeClass = "fb-palette"
	ClassCanvas  ChromeClass = "fb-canvas"
	ClassDrop    ChromeClass = "fb-drop-zone"
	ClassCard    ChromeClass = "fb-card"
	ClassPreview ChromeClass = "fb-preview"
	ClassFrame   ChromeClass = "fb-device-frame"
	ClassTitle   ChromeClass = "fb-form-title"
	ClassForm    ChromeClass = "fb-form"
	ClassField   ChromeClass = "fb-field"
	ClassEmpty   ChromeClass = "fb-empty"
)

func chromeClasses() map[string]any {
	return map[string]any{
		"builder": string(ClassBuilder),
		"palette": string(ClassPalette),
		"canvas":  string(ClassCanvas),
		"drop":    string(ClassDrop),
		"card":    string(ClassCard),
		"preview": string(ClassPreview),
		"frame":   string(ClassFrame),
		"title":   string(ClassTitle),
		"form":    string(ClassForm),
		"field":   string(ClassField),
		"empty":   string(ClassEmpty),
	}
}
