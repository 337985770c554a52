package note

import (
	"context"

	"github.com/changhyeonkim/ambient-toolbox/internal/model"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/audit"
	"gorm.io/gorm"
)

type NoteRepository struct {
	saver *audit.Saver
}

func NewNoteRepository(saver *audit.Saver) *NoteRepository {
	if saver == nil {
		saver = audit.NewSaver()
	}
	return &NoteRepository{
		saver: saver,
	}
}

func (r *NoteRepository) Save(ctx context.Context, db *gorm.DB, note *model.Note, opts audit.SaveOptions) error {
	return r.saver.Save(ctx, db, note, opts)
}

func (r *NoteRepository) FindByID(ctx context.Context, db *gorm.DB, ID uint32) (*model.Note, error) {
	var note model.Note
	err := db.WithContext(ctx).Where("id = ?", ID).First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *NoteRepository) FindAll(ctx context.Context, db *gorm.DB) ([]model.Note, error) {
	var notes []model.Note
	err := db.WithContext(ctx).Order("id").Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}
