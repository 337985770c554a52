package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/changhyeonkim/ambient-toolbox/internal/model"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/audit"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// legacyNote opts out of writing the audit columns on restricted updates
type legacyNote struct {
	model.Note
}

func (*legacyNote) AlwaysUpdateAuditFields() bool {
	return false
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestDB(t, db)
	})
	return db
}

// steppingClock advances one second per call
func steppingClock() func() time.Time {
	current := baseTime
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

func reloadNote(t *testing.T, db *gorm.DB, id uint32) *model.Note {
	t.Helper()

	var note model.Note
	require.NoError(t, db.First(&note, id).Error)
	return &note
}

func TestSave_CreatedBySetOnlyOnFirstSave(t *testing.T) {
	db := setupDB(t)
	saver := audit.NewSaver().WithClock(steppingClock())

	// Given: the note is created by member 1
	note := model.NewNote("first", "body")
	creatorCtx := audit.WithActor(context.Background(), audit.Actor{ID: 1})
	require.NoError(t, saver.Save(creatorCtx, db, note, audit.SaveOptions{}))
	require.NotZero(t, note.ID)

	// When: member 2 saves it again
	note.Title = "second"
	editorCtx := audit.WithActor(context.Background(), audit.Actor{ID: 2})
	require.NoError(t, saver.Save(editorCtx, db, note, audit.SaveOptions{}))

	// Then: creator is unchanged, modifier is member 2
	stored := reloadNote(t, db, note.ID)
	require.NotNil(t, stored.CreatedBy)
	require.NotNil(t, stored.LastModifiedBy)
	assert.Equal(t, uint32(1), *stored.CreatedBy)
	assert.Equal(t, uint32(2), *stored.LastModifiedBy)
	assert.Equal(t, "second", stored.Title)
}

func TestSave_LastModifiedAtStrictlyIncreases(t *testing.T) {
	db := setupDB(t)
	fixed := baseTime
	saver := audit.NewSaver().WithClock(func() time.Time { return fixed })
	ctx := context.Background()

	note := model.NewNote("title", "body")
	require.NoError(t, saver.Save(ctx, db, note, audit.SaveOptions{}))
	previous := note.LastModifiedAt

	for i := 0; i < 3; i++ {
		require.NoError(t, saver.Save(ctx, db, note, audit.SaveOptions{}))
		assert.True(t, note.LastModifiedAt.After(previous), "save %d did not advance lastmodified_at", i)
		previous = note.LastModifiedAt
	}

	stored := reloadNote(t, db, note.ID)
	assert.True(t, stored.LastModifiedAt.Equal(previous))
}

func TestSave_NoActorLeavesUserColumns(t *testing.T) {
	db := setupDB(t)
	saver := audit.NewSaver().WithClock(steppingClock())

	note := model.NewNote("title", "body")
	require.NoError(t, saver.Save(audit.WithActor(context.Background(), audit.Actor{ID: 5}), db, note, audit.SaveOptions{}))

	// anonymous save, then an actor without identity
	require.NoError(t, saver.Save(context.Background(), db, note, audit.SaveOptions{}))
	require.NoError(t, saver.Save(audit.WithActor(context.Background(), audit.Actor{}), db, note, audit.SaveOptions{}))

	stored := reloadNote(t, db, note.ID)
	require.NotNil(t, stored.CreatedBy)
	require.NotNil(t, stored.LastModifiedBy)
	assert.Equal(t, uint32(5), *stored.CreatedBy)
	assert.Equal(t, uint32(5), *stored.LastModifiedBy)
}

func TestSave_CurrentUserOverride(t *testing.T) {
	db := setupDB(t)
	saver := audit.NewSaver()
	saver.CurrentUser = func(context.Context) (audit.Actor, bool) {
		return audit.Actor{ID: 42}, true
	}

	note := model.NewNote("title", "body")
	require.NoError(t, saver.Save(context.Background(), db, note, audit.SaveOptions{}))

	require.NotNil(t, note.CreatedBy)
	assert.Equal(t, uint32(42), *note.CreatedBy)
}

func TestSave_RestrictedFieldsIncludeAuditColumns(t *testing.T) {
	db := setupDB(t)
	saver := audit.NewSaver().WithClock(steppingClock())

	note := model.NewNote("title", "body")
	require.NoError(t, saver.Save(context.Background(), db, note, audit.SaveOptions{}))
	created := note.LastModifiedAt

	// When: only the title is listed but content was also changed in memory
	note.Title = "new title"
	note.Content = "not persisted"
	ctx := audit.WithActor(context.Background(), audit.Actor{ID: 9})
	require.NoError(t, saver.Save(ctx, db, note, audit.SaveOptions{Fields: []string{"title"}}))

	// Then: title and audit columns are written, content is not
	stored := reloadNote(t, db, note.ID)
	assert.Equal(t, "new title", stored.Title)
	assert.Equal(t, "body", stored.Content)
	assert.True(t, stored.LastModifiedAt.After(created))
	require.NotNil(t, stored.LastModifiedBy)
	assert.Equal(t, uint32(9), *stored.LastModifiedBy)
}

func TestSave_RestrictedFieldsWithoutMerge(t *testing.T) {
	db := setupDB(t)
	saver := audit.NewSaver().WithClock(steppingClock())

	note := &legacyNote{Note: *model.NewNote("title", "body")}
	require.NoError(t, saver.Save(context.Background(), db, note, audit.SaveOptions{}))
	created := note.LastModifiedAt

	note.Title = "new title"
	ctx := audit.WithActor(context.Background(), audit.Actor{ID: 9})
	require.NoError(t, saver.Save(ctx, db, note, audit.SaveOptions{Fields: []string{"title"}}))

	// in-memory stamp happened, but only title reached the table
	assert.True(t, note.LastModifiedAt.After(created))
	stored := reloadNote(t, db, note.ID)
	assert.Equal(t, "new title", stored.Title)
	assert.True(t, stored.LastModifiedAt.Equal(created))
	assert.Nil(t, stored.LastModifiedBy)
}

func TestSave_EmptyFieldListWithoutMergeIsNoop(t *testing.T) {
	db := setupDB(t)
	saver := audit.NewSaver().WithClock(steppingClock())

	note := &legacyNote{Note: *model.NewNote("title", "body")}
	require.NoError(t, saver.Save(context.Background(), db, note, audit.SaveOptions{}))

	note.Title = "changed"
	require.NoError(t, saver.Save(context.Background(), db, note, audit.SaveOptions{Fields: []string{}}))

	stored := reloadNote(t, db, note.ID)
	assert.Equal(t, "title", stored.Title)
}

func TestSave_EmptyFieldListWithMergeWritesAuditColumnsOnly(t *testing.T) {
	db := setupDB(t)
	saver := audit.NewSaver().WithClock(steppingClock())

	// Given: a note created by member 1
	note := model.NewNote("title", "body")
	require.NoError(t, saver.Save(audit.WithActor(context.Background(), audit.Actor{ID: 1}), db, note, audit.SaveOptions{}))
	created := note.LastModifiedAt

	// When: member 2 saves with an empty field list
	note.Title = "changed"
	editorCtx := audit.WithActor(context.Background(), audit.Actor{ID: 2})
	require.NoError(t, saver.Save(editorCtx, db, note, audit.SaveOptions{Fields: []string{}}))

	// Then: only the audit columns were written
	stored := reloadNote(t, db, note.ID)
	assert.Equal(t, "title", stored.Title)
	require.NotNil(t, stored.LastModifiedBy)
	assert.Equal(t, uint32(2), *stored.LastModifiedBy)
	require.NotNil(t, stored.CreatedBy)
	assert.Equal(t, uint32(1), *stored.CreatedBy)
	assert.True(t, stored.LastModifiedAt.After(created))
}

func TestSave_OptionErrors(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	t.Run("force insert and update", func(t *testing.T) {
		err := audit.Save(ctx, db, model.NewNote("t", "c"), audit.SaveOptions{ForceInsert: true, ForceUpdate: true})
		assert.ErrorIs(t, err, audit.ErrForceInsertAndUpdate)
	})

	t.Run("update without primary key", func(t *testing.T) {
		err := audit.Save(ctx, db, model.NewNote("t", "c"), audit.SaveOptions{ForceUpdate: true})
		assert.ErrorIs(t, err, audit.ErrUpdateWithoutIdentity)

		err = audit.Save(ctx, db, model.NewNote("t", "c"), audit.SaveOptions{Fields: []string{"title"}})
		assert.ErrorIs(t, err, audit.ErrUpdateWithoutIdentity)
	})

	t.Run("forced update of missing row", func(t *testing.T) {
		note := model.NewNote("t", "c")
		note.ID = 999
		err := audit.Save(ctx, db, note, audit.SaveOptions{ForceUpdate: true})
		assert.ErrorIs(t, err, audit.ErrNoRowsUpdated)
	})
}
