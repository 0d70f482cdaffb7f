package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlab/formlab/internal/schema"
)

func TestAddFieldAutoNumbers(t *testing.T) {
	var list []schema.Field
	list = AddField(list)
	list = AddField(list)

	require.Len(t, list, 2)
	assert.Equal(t, schema.Field{Type: schema.TypeText, ID: "field_1", Label: "Field 1"}, list[0])
	assert.Equal(t, schema.Field{Type: schema.TypeText, ID: "field_2", Label: "Field 2"}, list[1])
}

func TestAddFieldNumberingIsCountBased(t *testing.T) {
	list := AddField(AddField(nil))
	list = RemoveField(list, 0)
	list = AddField(list)

	// Count-based numbering reuses field_2 after a removal; duplicates are
	// allowed by design.
	require.Len(t, list, 2)
	assert.Equal(t, "field_2", list[0].ID)
	assert.Equal(t, "field_2", list[1].ID)
}

func TestAddFieldDoesNotMutateInput(t *testing.T) {
	original := AddField(nil)
	snapshot := original[0]

	grown := AddField(original)
	grown[0].Label = "changed"

	assert.Equal(t, snapshot, original[0])
	assert.Len(t, original, 1)
}

func TestRemoveField(t *testing.T) {
	list := []schema.Field{
		{Type: schema.TypeText, ID: "a", Label: "A"},
		{Type: schema.TypeText, ID: "b", Label: "B"},
		{Type: schema.TypeText, ID: "c", Label: "C"},
	}

	tests := []struct {
		name     string
		index    int
		expected []string
	}{
		{name: "middle", index: 1, expected: []string{"a", "c"}},
		{name: "first", index: 0, expected: []string{"b", "c"}},
		{name: "last", index: 2, expected: []string{"a", "b"}},
		{name: "negative index is a no-op", index: -1, expected: []string{"a", "b", "c"}},
		{name: "past the end is a no-op", index: 3, expected: []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveField(list, tt.index)
			ids := make([]string, len(got))
			for i, f := range got {
				ids[i] = f.ID
			}
			assert.Equal(t, tt.expected, ids)
		})
	}

	// Input list is never mutated.
	assert.Len(t, list, 3)
}

func TestUpdateField(t *testing.T) {
	list := []schema.Field{
		{Type: schema.TypeText, ID: "title", Label: "Title"},
	}

	updated := UpdateField(list, 0, schema.Field{Type: schema.TypeRichText, ID: "body", Label: "Body", Info: "Main content"})
	require.Len(t, updated, 1)
	assert.Equal(t, schema.TypeRichText, updated[0].Type)
	assert.Equal(t, "body", updated[0].ID)

	// Replacement is wholesale, not a merge.
	assert.Equal(t, "Title", list[0].Label)

	assert.Equal(t, list, UpdateField(list, 5, schema.Field{ID: "x"}))
	assert.Equal(t, list, UpdateField(list, -1, schema.Field{ID: "x"}))
}
