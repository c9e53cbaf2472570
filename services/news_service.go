package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nyayasetu/extractor"
	"nyayasetu/models"
	"nyayasetu/repositories"
)

// NewsService manages curated news articles.
type NewsService struct {
	repo *repositories.NewsRepository
}

func NewNewsService(repo *repositories.NewsRepository) *NewsService {
	return &NewsService{repo: repo}
}

// NewsInput is the admin payload for news articles.
type NewsInput struct {
	Title       string `json:"title" binding:"required"`
	Date        string `json:"date"`
	Summary     string `json:"summary" binding:"required"`
	Image       string `json:"image"`
	IsHighlight bool   `json:"is_highlight"`
}

func (in *NewsInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Summary = strings.TrimSpace(in.Summary)
	if in.Title == "" || in.Summary == "" {
		return errors.New("title and summary are required")
	}
	if in.Date == "" {
		in.Date = time.Now().Format("2006-01-02")
	}
	return nil
}

func (s *NewsService) List(ctx context.Context) ([]models.News, error) {
	return s.repo.List(ctx)
}

func (s *NewsService) Get(ctx context.Context, hexID string) (*models.News, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *NewsService) Create(ctx context.Context, in NewsInput) (*models.News, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repo.Insert(ctx, &models.News{
		Title:       in.Title,
		Date:        in.Date,
		Summary:     in.Summary,
		Image:       in.Image,
		IsHighlight: in.IsHighlight,
	})
}

func (s *NewsService) Update(ctx context.Context, hexID string, in NewsInput) (*models.News, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, &models.News{
		ID:          id,
		Title:       in.Title,
		Date:        in.Date,
		Summary:     in.Summary,
		Image:       in.Image,
		IsHighlight: in.IsHighlight,
	})
}

func (s *NewsService) Delete(ctx context.Context, hexID string) error {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ExtractDraft fetches an article URL and returns a prefilled draft for
// the admin editor.
func (s *NewsService) ExtractDraft(ctx context.Context, articleURL string) (*NewsInput, error) {
	art, err := extractor.FromURL(articleURL, 30*time.Second)
	if err != nil {
		return nil, err
	}

	summary := art.Excerpt
	if summary == "" {
		summary = art.Content
	}
	if len(summary) > 600 {
		summary = summary[:600]
	}

	return &NewsInput{
		Title:   art.Title,
		Date:    time.Now().Format("2006-01-02"),
		Summary: strings.TrimSpace(summary),
		Image:   art.Image,
	}, nil
}
