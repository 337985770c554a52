package note

import "time"

type CreateNoteRequest struct {
	Title   string `json:"title" binding:"required,notblank,max=100"`
	Content string `json:"content" binding:"max=2000"`
}

// UpdateNoteRequest only changes the fields that are present
type UpdateNoteRequest struct {
	Title   *string `json:"title" binding:"omitnil,notblank,max=100"`
	Content *string `json:"content" binding:"omitnil,max=2000"`
}

type NoteResponse struct {
	ID             uint32    `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      *uint32   `json:"createdBy,omitempty"`
	LastModifiedAt time.Time `json:"lastModifiedAt"`
	LastModifiedBy *uint32   `json:"lastModifiedBy,omitempty"`
}
