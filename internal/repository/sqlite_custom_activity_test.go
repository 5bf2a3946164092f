package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/levelup/internal/domain"
	"github.com/alexanderramin/levelup/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customDef(name string, xp int) domain.ActivityDefinition {
	return domain.ActivityDefinition{Name: name, XPValue: xp, Provenance: domain.ProvenanceCustom}
}

func TestCustomActivityRepo_ListByUser_EmptyByDefault(t *testing.T) {
	repo := NewSQLiteCustomActivityRepo(testutil.NewTestDB(t))

	got, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCustomActivityRepo_CreateAndList(t *testing.T) {
	repo := NewSQLiteCustomActivityRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "u1", customDef("Meditate", 15)))
	require.NoError(t, repo.Create(ctx, "u1", customDef("Read a book", 30)))
	require.NoError(t, repo.Create(ctx, "u2", customDef("Swim", 40)))

	got, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Meditate": 15, "Read a book": 30}, got)
}

func TestCustomActivityRepo_CreateDuplicate(t *testing.T) {
	repo := NewSQLiteCustomActivityRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "u1", customDef("Meditate", 15)))
	err := repo.Create(ctx, "u1", customDef("Meditate", 99))
	assert.ErrorIs(t, err, ErrDuplicate)

	got, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 15, got["Meditate"], "original value must survive")
}

func TestCustomActivityRepo_NamesAreCaseSensitive(t *testing.T) {
	repo := NewSQLiteCustomActivityRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, "u1", customDef("Meditate", 15)))
	require.NoError(t, repo.Create(ctx, "u1", customDef("meditate", 15)))
}
