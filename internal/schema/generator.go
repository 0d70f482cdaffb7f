package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Handle derives the storage/key identifier from a display name: lowercased,
// each run of whitespace collapsed to a single underscore. Both generators and
// project ID derivation go through this one function so schema and locale keys
// can never drift apart. An empty name yields an empty handle; it is not
// rejected here.
func Handle(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(name), "_")
}

// SchemaDocument is the shape the theming platform expects for a section
// schema. Settings preserves the field list order.
type SchemaDocument struct {
	Name     string         `json:"name"`
	Settings []SettingEntry `json:"settings"`
}

type SettingEntry struct {
	Type    FieldType `json:"type"`
	ID      string    `json:"id"`
	Label   string    `json:"label"`
	Default any       `json:"default,omitempty"`
	Info    string    `json:"info,omitempty"`
}

// LocaleDocument is the translation file matching a SchemaDocument: label and
// info texts keyed by the translation keys the schema references.
type LocaleDocument struct {
	Sections map[string]LocaleSection `json:"sections"`
}

type LocaleSection struct {
	Name     string                 `json:"name"`
	Settings map[string]LocaleEntry `json:"settings"`
}

type LocaleEntry struct {
	Label string `json:"label"`
	Info  string `json:"info,omitempty"`
}

// BuildSchema maps (name, fields) to the schema document. Labels and infos are
// emitted as t: translation keys; the texts themselves live in the locale
// document. A field's default is carried verbatim whenever it is defined,
// including zero values like 0, false and "".
func BuildSchema(name string, fields []Field) SchemaDocument {
	handle := Handle(name)
	settings := make([]SettingEntry, 0, len(fields))
	for _, f := range fields {
		entry := SettingEntry{
			Type:    f.Type,
			ID:      f.ID,
			Label:   fmt.Sprintf("t:sections.%s.settings.%s.label", handle, f.ID),
			Default: f.Default,
		}
		if f.Info != "" {
			entry.Info = fmt.Sprintf("t:sections.%s.settings.%s.info", handle, f.ID)
		}
		settings = append(settings, entry)
	}
	return SchemaDocument{Name: name, Settings: settings}
}

// BuildLocales maps (name, fields) to the locale document. Settings is keyed
// by field id; when two fields share an id the later one wins, mirroring the
// editor's lack of uniqueness enforcement.
func BuildLocales(name string, fields []Field) LocaleDocument {
	settings := make(map[string]LocaleEntry, len(fields))
	for _, f := range fields {
		settings[f.ID] = LocaleEntry{
			Label: f.Label,
			Info:  f.Info,
		}
	}
	return LocaleDocument{
		Sections: map[string]LocaleSection{
			Handle(name): {
				Name:     name,
				Settings: settings,
			},
		},
	}
}

// GenerateSchema renders the schema document as the JSON text handed to the
// user: 2-space indent, declared key order, no HTML escaping.
func GenerateSchema(name string, fields []Field) (string, error) {
	return renderJSON(BuildSchema(name, fields))
}

// GenerateLocales renders the locale document with the same serialization
// rules as GenerateSchema.
func GenerateLocales(name string, fields []Field) (string, error) {
	return renderJSON(BuildLocales(name, fields))
}

func renderJSON(doc any) (string, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
