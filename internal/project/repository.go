package project

import "context"

type Repository interface {
	// Save upserts: a project whose ID matches an existing entry replaces it,
	// otherwise a new entry is created.
	Save(ctx context.Context, p *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	// List returns all projects ordered by ID. Entries that fail to
	// deserialize are skipped.
	List(ctx context.Context) ([]*Project, error)
	// Delete removes the entry if present; deleting an unknown ID is a no-op.
	Delete(ctx context.Context, id string) error
}
