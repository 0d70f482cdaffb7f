package schema

import "fmt"

// FieldType identifies one of the input kinds the theming platform accepts.
type FieldType string

const (
	TypeText       FieldType = "text"
	TypeTextarea   FieldType = "textarea"
	TypeNumber     FieldType = "number"
	TypeRadio      FieldType = "radio"
	TypeSelect     FieldType = "select"
	TypeCheckbox   FieldType = "checkbox"
	TypeRange      FieldType = "range"
	TypeColor      FieldType = "color"
	TypeImage      FieldType = "image_picker"
	TypeURL        FieldType = "url"
	TypeRichText   FieldType = "richtext"
	TypeHTML       FieldType = "html"
	TypeVideoURL   FieldType = "video_url"
	TypeProduct    FieldType = "product"
	TypeCollection FieldType = "collection"
	TypePage       FieldType = "page"
	TypeBlog       FieldType = "blog"
	TypeArticle    FieldType = "article"
)

// Field is one configurable input descriptor. ID and Label are always set;
// Default and Info are optional and omitted from serialized output when absent.
// Default may hold a string, number or bool. No uniqueness or type validation
// is performed; whatever the user entered flows into the generated documents.
type Field struct {
	Type    FieldType `json:"type"`
	ID      string    `json:"id"`
	Label   string    `json:"label"`
	Default any       `json:"default,omitempty"`
	Info    string    `json:"info,omitempty"`
}

// NewField returns the auto-numbered field appended by the editor's "add"
// action. n is the current list length, so removing and re-adding fields can
// produce duplicate ids; that matches the editor's behavior and is left to
// the user to resolve.
func NewField(n int) Field {
	return Field{
		Type:  TypeText,
		ID:    fmt.Sprintf("field_%d", n+1),
		Label: fmt.Sprintf("Field %d", n+1),
	}
}
