package session

import "github.com/formlab/formlab/internal/schema"

// Field list operations. Each returns a fresh slice so callers never observe
// in-place mutation of a list they were handed earlier.

// AddField appends the auto-numbered default field. Numbering is based on the
// current length, not a collision-free counter.
func AddField(list []schema.Field) []schema.Field {
	out := make([]schema.Field, len(list), len(list)+1)
	copy(out, list)
	return append(out, schema.NewField(len(list)))
}

// RemoveField returns the list without the element at index. An out-of-range
// index returns the list unchanged.
func RemoveField(list []schema.Field, index int) []schema.Field {
	if index < 0 || index >= len(list) {
		return list
	}
	out := make([]schema.Field, 0, len(list)-1)
	out = append(out, list[:index]...)
	return append(out, list[index+1:]...)
}

// UpdateField replaces the element at index wholesale. An out-of-range index
// returns the list unchanged.
func UpdateField(list []schema.Field, index int, field schema.Field) []schema.Field {
	if index < 0 || index >= len(list) {
		return list
	}
	out := make([]schema.Field, len(list))
	copy(out, list)
	out[index] = field
	return out
}
