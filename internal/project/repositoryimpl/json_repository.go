package repositoryimpl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/formlab/formlab/internal/project"
	"github.com/formlab/formlab/pkg/cerr"
	"github.com/formlab/formlab/pkg/storage"
)

// ProjectsPrefix is the storage directory holding one JSON document per project.
const ProjectsPrefix = "projects"

type JSONRepository struct {
	storage storage.Storage
}

func NewJSONRepository(s storage.Storage) *JSONRepository {
	return &JSONRepository{storage: s}
}

func path(id string) string {
	return fmt.Sprintf("%s/%s.json", ProjectsPrefix, id)
}

func (r *JSONRepository) Save(ctx context.Context, p *project.Project) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to marshal project: %w", err))
	}
	if err := r.storage.Write(ctx, path(p.ID), data); err != nil {
		return cerr.WrapStorageWriteError("project", err)
	}
	return nil
}

func (r *JSONRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	data, err := r.storage.Read(ctx, path(id))
	if err != nil {
		return nil, cerr.WrapStorageReadError("project", err)
	}
	var p project.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, cerr.NewError(cerr.Internal, "server error", fmt.Errorf("failed to unmarshal project: %w", err))
	}
	return &p, nil
}

func (r *JSONRepository) List(ctx context.Context) ([]*project.Project, error) {
	paths, err := r.storage.List(ctx, ProjectsPrefix)
	if err != nil {
		return nil, cerr.WrapStorageReadError("projects", err)
	}

	// Sort by filename for consistent ordering.
	sort.Strings(paths)

	projects := make([]*project.Project, 0, len(paths))
	for _, p := range paths {
		data, err := r.storage.Read(ctx, p)
		if err != nil {
			continue
		}
		var proj project.Project
		if err := json.Unmarshal(data, &proj); err != nil {
			// Malformed entries are skipped, never fatal.
			continue
		}
		projects = append(projects, &proj)
	}
	return projects, nil
}

func (r *JSONRepository) Delete(ctx context.Context, id string) error {
	if err := r.storage.Delete(ctx, path(id)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return cerr.WrapStorageDeleteError("project", err)
	}
	return nil
}
