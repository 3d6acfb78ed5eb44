package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/marea-picante/pos-terminal/internal/domain/entity"
	domainRepo "github.com/marea-picante/pos-terminal/internal/domain/repository"
)

func setupDraftTestDB(t *testing.T) domainRepo.DraftRepository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Draft{}, &entity.DraftTable{}, &entity.DraftItem{}))
	return NewDraftRepository(db)
}

func TestDraftCreateAssignsID(t *testing.T) {
	repo := setupDraftTestDB(t)
	ctx := context.Background()

	draft := &entity.Draft{}
	require.NoError(t, repo.Create(ctx, draft))
	assert.NotEqual(t, uuid.Nil, draft.ID)
}

func TestDraftGetByIDNotFound(t *testing.T) {
	repo := setupDraftTestDB(t)

	draft, err := repo.GetByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, draft)
}

func TestDraftSaveReplacesChildren(t *testing.T) {
	repo := setupDraftTestDB(t)
	ctx := context.Background()

	draft := &entity.Draft{
		Tables: []entity.DraftTable{{Number: 1}, {Number: 2}},
		Items: []entity.DraftItem{
			{ProductID: 1, PersonalQty: 2, PersonalComment: "sin aji"},
		},
	}
	require.NoError(t, repo.Create(ctx, draft))

	loaded, err := repo.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Tables, 2)
	require.Len(t, loaded.Items, 1)

	// Rewrite the selection: one table gone, quantities changed
	loaded.Tables = []entity.DraftTable{{Number: 2}}
	loaded.Items[0].PersonalQty = 5
	loaded.Items = append(loaded.Items, entity.DraftItem{ProductID: 3, FuenteQty: 1})
	require.NoError(t, repo.Save(ctx, loaded))

	reloaded, err := repo.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Tables, 1)
	assert.Equal(t, 2, reloaded.Tables[0].Number)
	require.Len(t, reloaded.Items, 2)
	assert.Equal(t, 5, reloaded.Items[0].PersonalQty)
	assert.Equal(t, "sin aji", reloaded.Items[0].PersonalComment)
	assert.Equal(t, uint(3), reloaded.Items[1].ProductID)

	// Saving again must not duplicate child rows
	require.NoError(t, repo.Save(ctx, reloaded))
	again, err := repo.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Len(t, again.Tables, 1)
	assert.Len(t, again.Items, 2)
}

func TestDraftDeleteRemovesChildren(t *testing.T) {
	repo := setupDraftTestDB(t)
	ctx := context.Background()

	draft := &entity.Draft{
		Tables: []entity.DraftTable{{Number: 1}},
		Items:  []entity.DraftItem{{ProductID: 1, PersonalQty: 1}},
	}
	require.NoError(t, repo.Create(ctx, draft))
	require.NoError(t, repo.Delete(ctx, draft.ID))

	gone, err := repo.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
