package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TypeInfo describes one entry of the field type catalog the editor offers.
// Seed is the initial value a freshly added field of this type gets.
type TypeInfo struct {
	Type  FieldType `yaml:"type" json:"type"`
	Label string    `yaml:"label" json:"label"`
	Seed  any       `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// DefaultCatalog returns the built-in closed set of field kinds.
func DefaultCatalog() []TypeInfo {
	return []TypeInfo{
		{Type: TypeText, Label: "Text", Seed: ""},
		{Type: TypeTextarea, Label: "Textarea", Seed: ""},
		{Type: TypeNumber, Label: "Number", Seed: 0},
		{Type: TypeRadio, Label: "Radio"},
		{Type: TypeSelect, Label: "Select"},
		{Type: TypeCheckbox, Label: "Checkbox", Seed: false},
		{Type: TypeRange, Label: "Range", Seed: 0},
		{Type: TypeColor, Label: "Color", Seed: "#000000"},
		{Type: TypeImage, Label: "Image"},
		{Type: TypeURL, Label: "URL"},
		{Type: TypeRichText, Label: "Rich text"},
		{Type: TypeHTML, Label: "HTML"},
		{Type: TypeVideoURL, Label: "Video URL"},
		{Type: TypeProduct, Label: "Product"},
		{Type: TypeCollection, Label: "Collection"},
		{Type: TypePage, Label: "Page"},
		{Type: TypeBlog, Label: "Blog"},
		{Type: TypeArticle, Label: "Article"},
	}
}

// LoadCatalog reads a catalog from a YAML file. Entries whose type matches a
// built-in one replace it; unknown types are appended, so a deployment can
// expose platform extensions without a rebuild.
func LoadCatalog(path string) ([]TypeInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	var overrides []TypeInfo
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	catalog := DefaultCatalog()
	index := make(map[FieldType]int, len(catalog))
	for i, entry := range catalog {
		index[entry.Type] = i
	}
	for _, entry := range overrides {
		if i, ok := index[entry.Type]; ok {
			catalog[i] = entry
			continue
		}
		catalog = append(catalog, entry)
	}
	return catalog, nil
}
