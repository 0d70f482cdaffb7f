package project

import (
	"time"

	"github.com/formlab/formlab/internal/schema"
)

// Project is a named, persisted snapshot of a field list. ID is derived from
// Name at every save, so renaming and saving creates a new entry instead of
// migrating the old one.
type Project struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Fields       []schema.Field `json:"fields"`
	LastModified time.Time      `json:"last_modified"`
}

// New builds the snapshot for a save action at the given time.
func New(name string, fields []schema.Field, now time.Time) *Project {
	copied := make([]schema.Field, len(fields))
	copy(copied, fields)
	return &Project{
		ID:           schema.Handle(name),
		Name:         name,
		Fields:       copied,
		LastModified: now,
	}
}
