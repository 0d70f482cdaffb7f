package export

import (
	"fmt"
	"net/http"

	"github.com/formlab/formlab/internal/schema"
)

// Kind selects which generated document an export produces.
type Kind string

const (
	KindSchema  Kind = "schema"
	KindLocales Kind = "locales"
)

// ParseKind validates a kind taken from a URL.
func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindSchema, KindLocales:
		return Kind(raw), nil
	default:
		return "", fmt.Errorf("unknown export kind %q", raw)
	}
}

// Filename returns the download name for a document, e.g. my_section_schema.json.
func Filename(name string, kind Kind) string {
	return fmt.Sprintf("%s_%s.json", schema.Handle(name), kind)
}

// Generate renders the requested document for (name, fields).
func Generate(name string, fields []schema.Field, kind Kind) (string, error) {
	if kind == KindLocales {
		return schema.GenerateLocales(name, fields)
	}
	return schema.GenerateSchema(name, fields)
}

// WriteAttachment serves a generated document as a file download.
func WriteAttachment(w http.ResponseWriter, filename, document string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write([]byte(document))
}
