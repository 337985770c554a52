package note

import (
	"context"
	"errors"
	"fmt"

	"github.com/changhyeonkim/ambient-toolbox/internal/model"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/audit"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/database"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/logger"
	"gorm.io/gorm"
)

type NoteService struct {
	db             *gorm.DB
	noteRepository *NoteRepository
}

func NewNoteService(db *gorm.DB, noteRepository *NoteRepository) *NoteService {
	return &NoteService{
		db:             db,
		noteRepository: noteRepository,
	}
}

func (s *NoteService) Create(ctx context.Context, request *CreateNoteRequest) (*NoteResponse, error) {
	log := logger.FromContext(ctx)
	var response *NoteResponse

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		note := model.NewNote(request.Title, request.Content)
		if err := s.noteRepository.Save(ctx, tx, note, audit.SaveOptions{}); err != nil {
			log.Error("Failed to create note", "error", err)
			return fmt.Errorf("create note: %w", err)
		}

		log.Info("Note created", "note_id", note.ID)
		response = toNoteResponse(note)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return response, nil
}

// Update writes only the changed columns; the audit columns are always included
func (s *NoteService) Update(ctx context.Context, noteID uint32, request *UpdateNoteRequest) (*NoteResponse, error) {
	log := logger.FromContext(ctx)
	var response *NoteResponse

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		note, err := s.findNote(ctx, tx, noteID)
		if err != nil {
			return err
		}

		fields := make([]string, 0, 2)
		if request.Title != nil {
			note.Title = *request.Title
			fields = append(fields, "title")
		}
		if request.Content != nil {
			note.Content = *request.Content
			fields = append(fields, "content")
		}

		if err := s.noteRepository.Save(ctx, tx, note, audit.SaveOptions{Fields: fields}); err != nil {
			log.Error("Failed to update note", "note_id", noteID, "error", err)
			return fmt.Errorf("update note: %w", err)
		}

		log.Info("Note updated", "note_id", noteID, "fields", fields)
		response = toNoteResponse(note)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return response, nil
}

func (s *NoteService) Get(ctx context.Context, noteID uint32) (*NoteResponse, error) {
	note, err := s.findNote(ctx, s.db, noteID)
	if err != nil {
		return nil, err
	}
	return toNoteResponse(note), nil
}

func (s *NoteService) List(ctx context.Context) ([]*NoteResponse, error) {
	notes, err := s.noteRepository.FindAll(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("노트 목록 조회 실패: %w", err)
	}

	responses := make([]*NoteResponse, 0, len(notes))
	for i := range notes {
		responses = append(responses, toNoteResponse(&notes[i]))
	}
	return responses, nil
}

func (s *NoteService) findNote(ctx context.Context, db *gorm.DB, noteID uint32) (*model.Note, error) {
	note, err := s.noteRepository.FindByID(ctx, db, noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("노트를 찾을 수 없습니다 noteID=%d %w", noteID, ErrNoteNotFound)
		}
		return nil, fmt.Errorf("노트 조회 실패: %w", err)
	}
	return note, nil
}

func toNoteResponse(note *model.Note) *NoteResponse {
	return &NoteResponse{
		ID:             note.ID,
		Title:          note.Title,
		Content:        note.Content,
		CreatedAt:      note.CreatedAt,
		CreatedBy:      note.CreatedBy,
		LastModifiedAt: note.LastModifiedAt,
		LastModifiedBy: note.LastModifiedBy,
	}
}
