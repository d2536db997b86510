package kvstore

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func widgetRepo(t *testing.T) *Repository[widget] {
	t.Helper()

	return NewRepository(NewMemory(), RepositoryConfig[widget]{
		Prefix: "widgets",
		Key:    func(w widget) string { return w.ID },
		Matches: func(w widget, term string) bool {
			return strings.Contains(strings.ToLower(w.Name), strings.ToLower(term))
		},
	})
}

func TestRepositorySaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := widgetRepo(t)

	require.NoError(t, repo.Save(ctx, widget{ID: "w1", Name: "Margherita"}))

	got, err := repo.FindByID(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "Margherita", got.Name)

	_, err = repo.FindByID(ctx, "w2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositorySaveIsUpsert(t *testing.T) {
	ctx := context.Background()
	repo := widgetRepo(t)

	require.NoError(t, repo.Save(ctx, widget{ID: "w1", Name: "old"}))
	require.NoError(t, repo.Save(ctx, widget{ID: "w1", Name: "new"}))

	got, err := repo.FindByID(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRepositoryRejectsEmptyKey(t *testing.T) {
	ctx := context.Background()
	repo := widgetRepo(t)

	assert.Error(t, repo.Save(ctx, widget{Name: "nameless"}))
}

func TestRepositoryFindAllPaged(t *testing.T) {
	ctx := context.Background()
	repo := widgetRepo(t)

	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.Save(ctx, widget{ID: fmt.Sprintf("w%d", i), Name: fmt.Sprintf("widget %d", i)}))
	}

	page1, err := repo.FindAllPaged(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "w1", page1[0].ID)

	page3, err := repo.FindAllPaged(ctx, 3, 2)
	require.NoError(t, err)
	assert.Len(t, page3, 1)

	empty, err := repo.FindAllPaged(ctx, 4, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepositorySaveAll(t *testing.T) {
	ctx := context.Background()
	repo := widgetRepo(t)

	require.NoError(t, repo.SaveAll(ctx, []widget{
		{ID: "w1", Name: "a"},
		{ID: "w2", Name: "b"},
	}))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRepositorySearch(t *testing.T) {
	ctx := context.Background()
	repo := widgetRepo(t)

	require.NoError(t, repo.Save(ctx, widget{ID: "w1", Name: "Pad Thai"}))
	require.NoError(t, repo.Save(ctx, widget{ID: "w2", Name: "Pad See Ew"}))
	require.NoError(t, repo.Save(ctx, widget{ID: "w3", Name: "Green Curry"}))

	matched, err := repo.Search(ctx, "pad")
	require.NoError(t, err)
	assert.Len(t, matched, 2)

	none, err := repo.Search(ctx, "sushi")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := widgetRepo(t)

	require.NoError(t, repo.Save(ctx, widget{ID: "w1", Name: "a"}))
	require.NoError(t, repo.Delete(ctx, "w1"))

	_, err := repo.FindByID(ctx, "w1")
	assert.ErrorIs(t, err, ErrNotFound)
}
