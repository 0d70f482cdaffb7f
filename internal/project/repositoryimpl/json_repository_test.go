package repositoryimpl

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formlab/formlab/internal/project"
	"github.com/formlab/formlab/internal/schema"
	"github.com/formlab/formlab/pkg/cerr"
	"github.com/formlab/formlab/pkg/storage"
)

func TestSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewJSONRepository(storage.NewMemory())

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	p := project.New("My Section", []schema.Field{
		{Type: schema.TypeText, ID: "title", Label: "Title"},
	}, now)
	require.Equal(t, "my_section", p.ID)
	require.NoError(t, repo.Save(ctx, p))

	got, err := repo.Get(ctx, "my_section")
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestSaveSameNameOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewJSONRepository(storage.NewMemory())

	first := project.New("Hero", nil, time.Now())
	require.NoError(t, repo.Save(ctx, first))

	second := project.New("Hero", []schema.Field{schema.NewField(0)}, time.Now().Add(time.Minute))
	require.NoError(t, repo.Save(ctx, second))

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Len(t, projects[0].Fields, 1)
	assert.Equal(t, second.LastModified, projects[0].LastModified)
}

func TestSaveNewNameAppends(t *testing.T) {
	ctx := context.Background()
	repo := NewJSONRepository(storage.NewMemory())

	require.NoError(t, repo.Save(ctx, project.New("Hero", nil, time.Now())))
	require.NoError(t, repo.Save(ctx, project.New("Hero Banner", nil, time.Now())))

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 2)
	// Renaming never migrates the old entry.
	assert.Equal(t, "hero", projects[0].ID)
	assert.Equal(t, "hero_banner", projects[1].ID)
}

func TestDeleteUnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := NewJSONRepository(storage.NewMemory())
	require.NoError(t, repo.Save(ctx, project.New("Hero", nil, time.Now())))

	require.NoError(t, repo.Delete(ctx, "does_not_exist"))

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}

func TestGetMissingProject(t *testing.T) {
	repo := NewJSONRepository(storage.NewMemory())
	_, err := repo.Get(context.Background(), "nope")
	assert.True(t, cerr.IsCode(err, cerr.NotFound))
}

func TestListSkipsMalformedEntries(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	repo := NewJSONRepository(store)

	require.NoError(t, repo.Save(ctx, project.New("Hero", nil, time.Now())))
	require.NoError(t, store.Write(ctx, "projects/broken.json", []byte("not json{")))

	projects, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "hero", projects[0].ID)
}
