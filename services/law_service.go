package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nyayasetu/models"
	"nyayasetu/repositories"
)

// LawService encapsulates business logic for the law library.
type LawService struct {
	repo *repositories.LawRepository
}

func NewLawService(repo *repositories.LawRepository) *LawService {
	return &LawService{repo: repo}
}

// LawInput is the explicit admin payload for creating or updating a law.
// Unlike the legacy admin UI contract this is strictly typed; values are
// trimmed and validated, never type-sniffed.
type LawInput struct {
	Title        string `json:"title" binding:"required"`
	Slug         string `json:"slug"`
	StatuteName  string `json:"statute_name"`
	Year         int    `json:"year"`
	Category     string `json:"category"`
	LawType      string `json:"law_type"`
	CourtLevel   string `json:"court_level"`
	Jurisdiction string `json:"jurisdiction"`
	PracticeArea string `json:"practice_area"`

	Keywords       []string `json:"keywords"`
	Sections       []string `json:"sections"`
	Situations     []string `json:"situations"`
	Tags           []string `json:"tags"`
	RelevanceScore int      `json:"relevance_score"`

	Citizen models.CitizenView `json:"citizen"`
	Lawyer  models.LawyerView  `json:"lawyer"`

	Resources   []models.Resource `json:"resources"`
	IsPublished bool              `json:"is_published"`
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a title.
func Slugify(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	s = strings.ReplaceAll(s, "'", "")
	s = nonSlugChars.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > 160 {
		s = strings.Trim(s[:160], "-")
	}
	return s
}

// CleanStrings trims entries and drops empties, splitting comma or
// newline separated values coming from admin forms.
func CleanStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == '\n' }) {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func (in *LawInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return fmt.Errorf("title is required")
	}
	if in.Category == "" {
		in.Category = "Other"
	}
	switch in.LawType {
	case "":
		in.LawType = "statute"
	case "statute", "case":
	default:
		return fmt.Errorf("law_type must be %q or %q", "statute", "case")
	}
	in.Keywords = CleanStrings(in.Keywords)
	in.Sections = CleanStrings(in.Sections)
	in.Situations = CleanStrings(in.Situations)
	in.Tags = CleanStrings(in.Tags)
	if in.RelevanceScore < 0 {
		in.RelevanceScore = 0
	}
	return nil
}

func (in *LawInput) toModel() *models.Law {
	return &models.Law{
		Title:          in.Title,
		Slug:           in.Slug,
		StatuteName:    strings.TrimSpace(in.StatuteName),
		Year:           in.Year,
		Category:       in.Category,
		LawType:        in.LawType,
		CourtLevel:     strings.TrimSpace(in.CourtLevel),
		Jurisdiction:   strings.TrimSpace(in.Jurisdiction),
		PracticeArea:   strings.TrimSpace(in.PracticeArea),
		Keywords:       in.Keywords,
		Sections:       in.Sections,
		Situations:     in.Situations,
		Tags:           in.Tags,
		RelevanceScore: in.RelevanceScore,
		Citizen:        in.Citizen,
		Lawyer:         in.Lawyer,
		Resources:      in.Resources,
		IsPublished:    in.IsPublished,
	}
}

// ensureSlug fills and de-duplicates the slug, appending -2, -3, ... when
// the natural slug is taken by another document.
func (s *LawService) ensureSlug(ctx context.Context, l *models.Law, excludeID primitive.ObjectID) error {
	base := Slugify(l.Slug)
	if base == "" {
		base = Slugify(l.Title)
	}
	if base == "" {
		base = l.ID.Hex()
	}

	candidate := base
	for i := 2; ; i++ {
		taken, err := s.repo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return err
		}
		if !taken {
			l.Slug = candidate
			return nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *LawService) Create(ctx context.Context, in LawInput) (*models.Law, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	l := in.toModel()
	if err := s.ensureSlug(ctx, l, primitive.NilObjectID); err != nil {
		return nil, err
	}
	return s.repo.Insert(ctx, l)
}

func (s *LawService) Update(ctx context.Context, hexID string, in LawInput) (*models.Law, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	l := in.toModel()
	l.ID = existing.ID
	l.CreatedAt = existing.CreatedAt
	if err := s.ensureSlug(ctx, l, id); err != nil {
		return nil, err
	}
	return s.repo.Replace(ctx, l)
}

func (s *LawService) Delete(ctx context.Context, hexID string) error {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *LawService) TogglePublish(ctx context.Context, hexID string) (*models.Law, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.repo.SetPublished(ctx, id, !existing.IsPublished)
}

func (s *LawService) List(ctx context.Context, o repositories.ListLawsOptions) ([]models.Law, int64, error) {
	return s.repo.List(ctx, o)
}

func (s *LawService) Suggest(ctx context.Context, query string) ([]models.Law, error) {
	if strings.TrimSpace(query) == "" {
		return []models.Law{}, nil
	}
	return s.repo.Suggest(ctx, query, 5)
}

func (s *LawService) GetPublic(ctx context.Context, identifier string) (*models.Law, error) {
	return s.repo.FindBySlugOrID(ctx, strings.ToLower(identifier), true)
}

func (s *LawService) GetAdmin(ctx context.Context, identifier string) (*models.Law, error) {
	return s.repo.FindBySlugOrID(ctx, strings.ToLower(identifier), false)
}
