package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var titler = cases.Title(language.English)

// Title capitalizes each word of s.
func Title(s string) string {
	return titler.String(s)
}

// FormatHeader formats a Markdown header.
func FormatHeader(level int, title string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + title
}

// FormatKeyValue formats a Markdown bullet "- **key:** value".
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s:** %s", key, value)
}

// KeyValue writes a key/value line in the effective mode.
func (r *Renderer) KeyValue(key, value string) {
	if r.EffectiveMode() == ModeText {
		r.Printf("%s %s\n", r.styles.Key.Render(key+":"), value)
		return
	}
	r.Println(FormatKeyValue(key, value))
}

// Data writes v as JSON or YAML. Other modes fall back to JSON.
func (r *Renderer) Data(v any) error {
	if r.EffectiveMode() == ModeYAML {
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}
