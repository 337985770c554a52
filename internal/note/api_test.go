package note_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/changhyeonkim/ambient-toolbox/internal/config"
	"github.com/changhyeonkim/ambient-toolbox/internal/model"
	"github.com/changhyeonkim/ambient-toolbox/internal/note"
	sharedError "github.com/changhyeonkim/ambient-toolbox/internal/shared/error"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/middleware"
	"github.com/changhyeonkim/ambient-toolbox/internal/shared/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
}

// setupTestEnvironment mounts the note routes behind the real JWT middleware
func setupTestEnvironment(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestDB(t, db)
	})

	cfg := testutil.NewTestConfig()
	noteService := note.NewNoteService(db, note.NewNoteRepository(nil))
	noteHandler := note.NewNoteHandler(noteService)

	router := testutil.SetupTestRouter()
	notes := router.Group("/api/v1/notes")
	notes.Use(middleware.JWT(cfg), middleware.CurrentUser())
	{
		notes.GET("", noteHandler.List)
		notes.POST("", noteHandler.Create)
		notes.GET("/:id", noteHandler.Get)
		notes.PATCH("/:id", noteHandler.Update)
	}

	return &testEnv{
		router: router,
		db:     db,
		cfg:    cfg,
	}
}

func (e *testEnv) signIn(t *testing.T, email string) (*model.Member, map[string]string) {
	t.Helper()

	m := model.NewMember("Tester", email, "010-1234-5678", "hashed")
	require.NoError(t, e.db.Create(m).Error)

	return m, testutil.BearerHeader(t, e.cfg, m.ID, m.Email)
}

func (e *testEnv) createNote(t *testing.T, headers map[string]string, title string) note.NoteResponse {
	t.Helper()

	recorder := testutil.ExecuteRequest(t, e.router, testutil.TestRequest{
		Method:  http.MethodPost,
		URL:     "/api/v1/notes",
		Body:    note.CreateNoteRequest{Title: title, Content: "content"},
		Headers: headers,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var response note.NoteResponse
	testutil.ParseResponse(t, recorder, &response)
	return response
}

func TestCreateNote_Success(t *testing.T) {
	// Given: Authenticated member
	env := setupTestEnvironment(t)
	author, headers := env.signIn(t, "author@example.com")

	// When: Create a note
	response := env.createNote(t, headers, "first note")

	// Then: Audit fields are populated from the token's member
	assert.NotZero(t, response.ID)
	assert.Equal(t, "first note", response.Title)
	assert.False(t, response.CreatedAt.IsZero())
	assert.False(t, response.LastModifiedAt.IsZero())
	require.NotNil(t, response.CreatedBy)
	require.NotNil(t, response.LastModifiedBy)
	assert.Equal(t, author.ID, *response.CreatedBy)
	assert.Equal(t, author.ID, *response.LastModifiedBy)
}

func TestCreateNote_Unauthorized(t *testing.T) {
	env := setupTestEnvironment(t)

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/notes",
		Body:   note.CreateNoteRequest{Title: "title"},
	})

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestCreateNote_ValidationError(t *testing.T) {
	env := setupTestEnvironment(t)
	_, headers := env.signIn(t, "author@example.com")

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method:  http.MethodPost,
		URL:     "/api/v1/notes",
		Body:    map[string]string{"content": "no title"},
		Headers: headers,
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateNote_KeepsCreatorAndAdvancesModification(t *testing.T) {
	// Given: A note created by the author
	env := setupTestEnvironment(t)
	author, authorHeaders := env.signIn(t, "author@example.com")
	editor, editorHeaders := env.signIn(t, "editor@example.com")
	created := env.createNote(t, authorHeaders, "draft")

	// When: The editor changes only the title
	newTitle := "final"
	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method:  http.MethodPatch,
		URL:     fmt.Sprintf("/api/v1/notes/%d", created.ID),
		Body:    note.UpdateNoteRequest{Title: &newTitle},
		Headers: editorHeaders,
	})

	// Then
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var updated note.NoteResponse
	testutil.ParseResponse(t, recorder, &updated)
	assert.Equal(t, "final", updated.Title)
	assert.Equal(t, "content", updated.Content)
	assert.True(t, updated.LastModifiedAt.After(created.LastModifiedAt))
	require.NotNil(t, updated.CreatedBy)
	require.NotNil(t, updated.LastModifiedBy)
	assert.Equal(t, author.ID, *updated.CreatedBy)
	assert.Equal(t, editor.ID, *updated.LastModifiedBy)

	var stored model.Note
	require.NoError(t, env.db.First(&stored, created.ID).Error)
	require.NotNil(t, stored.LastModifiedBy)
	assert.Equal(t, editor.ID, *stored.LastModifiedBy)
}

func TestGetNote(t *testing.T) {
	env := setupTestEnvironment(t)
	_, headers := env.signIn(t, "author@example.com")
	created := env.createNote(t, headers, "readable")

	testCases := []struct {
		name         string
		url          string
		expectedCode int
		errorCode    string
	}{
		{
			name:         "Existing note",
			url:          fmt.Sprintf("/api/v1/notes/%d", created.ID),
			expectedCode: http.StatusOK,
		},
		{
			name:         "Missing note",
			url:          "/api/v1/notes/9999",
			expectedCode: http.StatusNotFound,
			errorCode:    "NOTE-001",
		},
		{
			name:         "Zero id",
			url:          "/api/v1/notes/0",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Non numeric id",
			url:          "/api/v1/notes/abc",
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
				Method:  http.MethodGet,
				URL:     tc.url,
				Headers: headers,
			})

			assert.Equal(t, tc.expectedCode, recorder.Code)
			if tc.errorCode != "" {
				var errorResponse sharedError.ErrorResponse
				testutil.ParseResponse(t, recorder, &errorResponse)
				assert.Equal(t, tc.errorCode, errorResponse.Code)
			}
		})
	}
}

func TestListNotes(t *testing.T) {
	env := setupTestEnvironment(t)
	_, headers := env.signIn(t, "author@example.com")
	env.createNote(t, headers, "one")
	env.createNote(t, headers, "two")

	recorder := testutil.ExecuteRequest(t, env.router, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     "/api/v1/notes",
		Headers: headers,
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	var responses []note.NoteResponse
	testutil.ParseResponse(t, recorder, &responses)
	require.Len(t, responses, 2)
	assert.Equal(t, "one", responses[0].Title)
	assert.Equal(t, "two", responses[1].Title)
}
