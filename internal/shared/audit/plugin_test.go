package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/changhyeonkim/ambient-toolbox/internal/model"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPlugin_StampsDirectGormWrites(t *testing.T) {
	db := setupDB(t)

	// Given: a note created through plain db.Create
	creatorCtx := audit.WithActor(context.Background(), audit.Actor{ID: 1})
	note := model.NewNote("title", "body")
	require.NoError(t, db.WithContext(creatorCtx).Create(note).Error)

	require.NotNil(t, note.CreatedBy)
	assert.Equal(t, uint32(1), *note.CreatedBy)
	assert.False(t, note.CreatedAt.IsZero())
	assert.False(t, note.LastModifiedAt.IsZero())
	created := note.LastModifiedAt

	// When: another member saves it through db.Save
	editorCtx := audit.WithActor(context.Background(), audit.Actor{ID: 2})
	note.Title = "edited"
	require.NoError(t, db.WithContext(editorCtx).Save(note).Error)

	// Then
	stored := reloadNote(t, db, note.ID)
	require.NotNil(t, stored.CreatedBy)
	require.NotNil(t, stored.LastModifiedBy)
	assert.Equal(t, uint32(1), *stored.CreatedBy)
	assert.Equal(t, uint32(2), *stored.LastModifiedBy)
	assert.True(t, stored.LastModifiedAt.After(created))
}

func TestPlugin_MergesAuditColumnsIntoSelect(t *testing.T) {
	db := setupDB(t)

	note := model.NewNote("title", "body")
	require.NoError(t, db.Create(note).Error)
	assert.Nil(t, note.CreatedBy)

	ctx := audit.WithActor(context.Background(), audit.Actor{ID: 4})
	note.Title = "edited"
	require.NoError(t, db.WithContext(ctx).Model(note).Select("title").Updates(note).Error)

	stored := reloadNote(t, db, note.ID)
	assert.Equal(t, "edited", stored.Title)
	require.NotNil(t, stored.LastModifiedBy)
	assert.Equal(t, uint32(4), *stored.LastModifiedBy)
	assert.Nil(t, stored.CreatedBy)
}

func TestPlugin_IgnoresNonAuditedDestinations(t *testing.T) {
	db := setupDB(t)

	note := model.NewNote("title", "body")
	require.NoError(t, db.Create(note).Error)
	before := note.LastModifiedAt

	ctx := audit.WithActor(context.Background(), audit.Actor{ID: 4})
	require.NoError(t, db.WithContext(ctx).Model(&model.Note{}).Where("id = ?", note.ID).
		Updates(map[string]any{"title": "raw"}).Error)

	stored := reloadNote(t, db, note.ID)
	assert.Equal(t, "raw", stored.Title)
	assert.True(t, stored.LastModifiedAt.Equal(before))
	assert.Nil(t, stored.LastModifiedBy)
}

func TestPlugin_BulkStructUpdateKeepsCreator(t *testing.T) {
	db := setupDB(t)

	// Given: a note created by member 1 at baseTime
	creatorCtx := audit.WithActor(context.Background(), audit.Actor{ID: 1})
	note := model.NewNote("title", "body")
	fixed := func() time.Time { return baseTime }
	require.NoError(t, audit.NewSaver().WithClock(fixed).Save(creatorCtx, db, note, audit.SaveOptions{}))

	editorCtx := audit.WithActor(context.Background(), audit.Actor{ID: 2})

	testCases := []struct {
		name   string
		update func(tx *gorm.DB) *gorm.DB
	}{
		{
			name: "Struct updates",
			update: func(tx *gorm.DB) *gorm.DB {
				return tx.Model(&model.Note{}).Where("id = ?", note.ID).Updates(&model.Note{Title: "bulk"})
			},
		},
		{
			name: "Struct updates with select",
			update: func(tx *gorm.DB) *gorm.DB {
				return tx.Model(&model.Note{}).Where("id = ?", note.ID).Select("title").Updates(&model.Note{Title: "selected"})
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// When
			require.NoError(t, tc.update(db.WithContext(editorCtx)).Error)

			// Then
			stored := reloadNote(t, db, note.ID)
			require.NotNil(t, stored.CreatedBy)
			assert.Equal(t, uint32(1), *stored.CreatedBy)
			assert.True(t, stored.CreatedAt.Equal(baseTime), "created_at changed to %s", stored.CreatedAt)
			require.NotNil(t, stored.LastModifiedBy)
			assert.Equal(t, uint32(2), *stored.LastModifiedBy)
			assert.True(t, stored.LastModifiedAt.After(baseTime))
		})
	}
}

func TestPlugin_StampsBatchCreate(t *testing.T) {
	db := setupDB(t)
	ctx := audit.WithActor(context.Background(), audit.Actor{ID: 3})

	t.Run("Slice of pointers", func(t *testing.T) {
		notes := []*model.Note{model.NewNote("a", ""), model.NewNote("b", "")}
		require.NoError(t, db.WithContext(ctx).Create(&notes).Error)

		for _, n := range notes {
			stored := reloadNote(t, db, n.ID)
			require.NotNil(t, stored.CreatedBy)
			assert.Equal(t, uint32(3), *stored.CreatedBy)
			assert.False(t, stored.LastModifiedAt.IsZero())
			assert.False(t, stored.CreatedAt.IsZero())
		}
	})

	t.Run("Slice of values", func(t *testing.T) {
		notes := []model.Note{*model.NewNote("c", ""), *model.NewNote("d", "")}
		require.NoError(t, db.WithContext(ctx).Create(&notes).Error)

		for _, n := range notes {
			stored := reloadNote(t, db, n.ID)
			require.NotNil(t, stored.LastModifiedBy)
			assert.Equal(t, uint32(3), *stored.LastModifiedBy)
			assert.False(t, stored.LastModifiedAt.IsZero())
		}
	})
}

func TestPlugin_BatchSaveKeepsCreator(t *testing.T) {
	db := setupDB(t)

	creatorCtx := audit.WithActor(context.Background(), audit.Actor{ID: 1})
	notes := []*model.Note{model.NewNote("a", ""), model.NewNote("b", "")}
	require.NoError(t, db.WithContext(creatorCtx).Create(&notes).Error)

	// When: member 2 saves the loaded batch back
	editorCtx := audit.WithActor(context.Background(), audit.Actor{ID: 2})
	for _, n := range notes {
		n.Title += "!"
	}
	require.NoError(t, db.WithContext(editorCtx).Save(&notes).Error)

	// Then
	for _, n := range notes {
		stored := reloadNote(t, db, n.ID)
		require.NotNil(t, stored.CreatedBy)
		require.NotNil(t, stored.LastModifiedBy)
		assert.Equal(t, uint32(1), *stored.CreatedBy)
		assert.Equal(t, uint32(2), *stored.LastModifiedBy)
	}
}
