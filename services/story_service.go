package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nyayasetu/assistant"
	"nyayasetu/models"
)

// ErrStoryRejected carries the reason a submission was refused.
type ErrStoryRejected struct {
	Reason string
}

func (e *ErrStoryRejected) Error() string {
	return fmt.Sprintf("story rejected: %s", e.Reason)
}

// StoryAnalyzer is the AI moderation step. Implemented by assistant.Client.
type StoryAnalyzer interface {
	AnalyzeStory(ctx context.Context, text string) (*assistant.StoryAnalysis, error)
}

// StoryStore is the persistence the service needs.
// Implemented by repositories.StoryRepository.
type StoryStore interface {
	Insert(ctx context.Context, s *models.Story) (*models.Story, error)
	List(ctx context.Context) ([]models.Story, error)
	IncrementSupports(ctx context.Context, id primitive.ObjectID) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// StoryService moderates and persists community stories. Submissions go
// through AI anonymization before anything is stored; only the redacted
// body is ever served.
type StoryService struct {
	store    StoryStore
	analyzer StoryAnalyzer
}

func NewStoryService(store StoryStore, analyzer StoryAnalyzer) *StoryService {
	return &StoryService{store: store, analyzer: analyzer}
}

// StoryInput is the public submission payload.
type StoryInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Location string `json:"location"`
	Consent  bool   `json:"consent"`
}

// Submit analyzes and stores a story. Toxic submissions are rejected with
// the analyzer's reason; missing consent or content never reaches the AI.
func (s *StoryService) Submit(ctx context.Context, in StoryInput) (*models.Story, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, errors.New("story content is missing")
	}
	if !in.Consent {
		return nil, errors.New("consent is required to post a story")
	}

	analysis, err := s.analyzer.AnalyzeStory(ctx, in.Content)
	if err != nil {
		return nil, err
	}
	if analysis.IsToxic {
		return nil, &ErrStoryRejected{Reason: analysis.ToxicReason}
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = "Untitled Experience"
	}
	category := in.Category
	if category == "" {
		category = "General"
	}
	location := in.Location
	if location == "" {
		location = "India"
	}

	story := &models.Story{
		Title:        title,
		RedactedBody: analysis.RedactedStory,
		OriginalBody: in.Content,
		Insight:      analysis.Insight,
		Category:     category,
		Location:     location,
		IsAnonymous:  true,
		ConsentGiven: true,
	}
	return s.store.Insert(ctx, story)
}

func (s *StoryService) List(ctx context.Context) ([]models.Story, error) {
	return s.store.List(ctx)
}

func (s *StoryService) Support(ctx context.Context, hexID string) (int64, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return 0, err
	}
	return s.store.IncrementSupports(ctx, id)
}

func (s *StoryService) Delete(ctx context.Context, hexID string) error {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}
