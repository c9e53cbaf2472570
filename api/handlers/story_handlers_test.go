package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nyayasetu/assistant"
	"nyayasetu/models"
	"nyayasetu/services"
)

type stubStoryStore struct {
	inserted int
}

func (s *stubStoryStore) Insert(_ context.Context, st *models.Story) (*models.Story, error) {
	s.inserted++
	st.ID = primitive.NewObjectID()
	return st, nil
}

func (s *stubStoryStore) List(context.Context) ([]models.Story, error) { return nil, nil }

func (s *stubStoryStore) IncrementSupports(context.Context, primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (s *stubStoryStore) Delete(context.Context, primitive.ObjectID) error { return nil }

type stubAnalyzer struct {
	analysis *assistant.StoryAnalysis
}

func (s *stubAnalyzer) AnalyzeStory(context.Context, string) (*assistant.StoryAnalysis, error) {
	return s.analysis, nil
}

func newStoryRouter(store *stubStoryStore, analyzer *stubAnalyzer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/stories", SubmitStoryHandler(services.NewStoryService(store, analyzer)))
	return r
}

func TestSubmitStoryHandlerRejectsToxicWith422(t *testing.T) {
	store := &stubStoryStore{}
	r := newStoryRouter(store, &stubAnalyzer{analysis: &assistant.StoryAnalysis{
		IsToxic:     true,
		ToxicReason: "hate speech",
	}})

	body := `{"content":"abusive text","consent":true}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/stories", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "hate speech")
	assert.Zero(t, store.inserted)
}

func TestSubmitStoryHandlerStoresAcceptedStory(t *testing.T) {
	store := &stubStoryStore{}
	r := newStoryRouter(store, &stubAnalyzer{analysis: &assistant.StoryAnalysis{
		RedactedStory: "a citizen in [City] reported the issue",
		Insight:       "covered under the Consumer Protection Act",
	}})

	body := `{"title":"Deposit issue","content":"details here","consent":true}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/stories", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, store.inserted)
	assert.Contains(t, w.Body.String(), "a citizen in [City] reported the issue")
	assert.NotContains(t, w.Body.String(), "details here", "original body must never be served")
}

func TestSubmitStoryHandlerRejectsMissingConsent(t *testing.T) {
	store := &stubStoryStore{}
	r := newStoryRouter(store, &stubAnalyzer{})

	body := `{"content":"something","consent":false}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/stories", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, store.inserted)
}
