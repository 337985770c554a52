package note

import (
	"errors"
	"net/http"
	"strconv"

	sharedError "github.com/changhyeonkim/ambient-toolbox/internal/shared/error"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type NoteHandler struct {
	noteService *NoteService
}

func NewNoteHandler(noteService *NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

func (h *NoteHandler) Create(c *gin.Context) {
	var request CreateNoteRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.noteService.Create(c.Request.Context(), &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *NoteHandler) Update(c *gin.Context) {
	noteID, ok := bindNoteID(c)
	if !ok {
		return
	}

	var request UpdateNoteRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.noteService.Update(c.Request.Context(), noteID, &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *NoteHandler) Get(c *gin.Context) {
	noteID, ok := bindNoteID(c)
	if !ok {
		return
	}

	response, err := h.noteService.Get(c.Request.Context(), noteID)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *NoteHandler) List(c *gin.Context) {
	responses, err := h.noteService.List(c.Request.Context())
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}

func bindNoteID(c *gin.Context) (uint32, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err == nil && id == 0 {
		err = errors.New("note id must be positive")
	}
	if err != nil {
		handler.RespondError(c, err, sharedError.InvalidRequest)
		return 0, false
	}
	return uint32(id), true
}
