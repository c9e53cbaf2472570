package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nyayasetu/assistant"
	"nyayasetu/models"
)

type fakeStoryStore struct {
	inserted []*models.Story
}

func (f *fakeStoryStore) Insert(_ context.Context, s *models.Story) (*models.Story, error) {
	s.ID = primitive.NewObjectID()
	f.inserted = append(f.inserted, s)
	return s, nil
}

func (f *fakeStoryStore) List(context.Context) ([]models.Story, error) { return nil, nil }

func (f *fakeStoryStore) IncrementSupports(context.Context, primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (f *fakeStoryStore) Delete(context.Context, primitive.ObjectID) error { return nil }

type fakeAnalyzer struct {
	analysis *assistant.StoryAnalysis
	err      error
	calls    int
}

func (f *fakeAnalyzer) AnalyzeStory(context.Context, string) (*assistant.StoryAnalysis, error) {
	f.calls++
	return f.analysis, f.err
}

func TestSubmitRequiresConsent(t *testing.T) {
	store := &fakeStoryStore{}
	analyzer := &fakeAnalyzer{}
	svc := NewStoryService(store, analyzer)

	_, err := svc.Submit(context.Background(), StoryInput{Content: "something happened", Consent: false})
	require.Error(t, err)
	assert.Zero(t, analyzer.calls, "analysis must not run without consent")
	assert.Empty(t, store.inserted)
}

func TestSubmitRequiresContent(t *testing.T) {
	svc := NewStoryService(&fakeStoryStore{}, &fakeAnalyzer{})

	_, err := svc.Submit(context.Background(), StoryInput{Content: "   ", Consent: true})
	assert.Error(t, err)
}

func TestSubmitRejectsToxicStory(t *testing.T) {
	store := &fakeStoryStore{}
	analyzer := &fakeAnalyzer{analysis: &assistant.StoryAnalysis{
		IsToxic:     true,
		ToxicReason: "contains targeted abuse",
	}}
	svc := NewStoryService(store, analyzer)

	_, err := svc.Submit(context.Background(), StoryInput{Content: "abusive text", Consent: true})
	require.Error(t, err)

	var rejected *ErrStoryRejected
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, "contains targeted abuse", rejected.Reason)
	assert.Empty(t, store.inserted, "rejected story must not be stored")
}

func TestSubmitStoresRedactedBodyAndDefaults(t *testing.T) {
	store := &fakeStoryStore{}
	analyzer := &fakeAnalyzer{analysis: &assistant.StoryAnalysis{
		RedactedStory: "a tenant in [City] was denied their deposit",
		Insight:       "security deposits must be returned under the Model Tenancy Act",
	}}
	svc := NewStoryService(store, analyzer)

	got, err := svc.Submit(context.Background(), StoryInput{
		Content: "my landlord Ramesh in Pune kept my deposit",
		Consent: true,
	})
	require.NoError(t, err)
	require.Len(t, store.inserted, 1)

	assert.Equal(t, "a tenant in [City] was denied their deposit", got.RedactedBody)
	assert.Equal(t, "my landlord Ramesh in Pune kept my deposit", got.OriginalBody)
	assert.Equal(t, "Untitled Experience", got.Title)
	assert.Equal(t, "General", got.Category)
	assert.Equal(t, "India", got.Location)
	assert.True(t, got.IsAnonymous)
	assert.True(t, got.ConsentGiven)
}

func TestSubmitPropagatesAnalyzerError(t *testing.T) {
	store := &fakeStoryStore{}
	analyzer := &fakeAnalyzer{err: errors.New("model overloaded")}
	svc := NewStoryService(store, analyzer)

	_, err := svc.Submit(context.Background(), StoryInput{Content: "a story", Consent: true})
	assert.Error(t, err)
	assert.Empty(t, store.inserted)
}
