package render

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeTokens merges the manifest tokens with the selected variant's
// overrides. Unknown variants fall back to the base tokens.
func ThemeTokens(manifest *theme.Manifest, variant string) map[string]string {
	if manifest == nil {
		return nil
	}
	out := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		out[key] = value
	}
	if variant = strings.TrimSpace(variant); variant != "" {
		if v, ok := manifest.Variants[variant]; ok {
			for key, value := range v.Tokens {
				out[key] = value
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// CSSVarsStyle renders tokens as an inline style of CSS custom properties,
// sorted by name so output is deterministic.
func CSSVarsStyle(tokens map[string]string) string {
	if len(tokens) == 0 {
		return ""
	}
	keys := make([]string, 0, len(tokens))
	for key := range tokens {
		if strings.TrimSpace(key) == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		name := strings.TrimSpace(key)
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		parts = append(parts, name+": "+strings.TrimSpace(tokens[key]))
	}
	return strings.Join(parts, "; ")
}
