package dailylaw

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nyayasetu/config"
	"nyayasetu/feeder"
	"nyayasetu/logger"
	"nyayasetu/models"
	"nyayasetu/synthesizer"
)

// Store is the date-keyed persistence the service depends on.
// Implemented by repositories.DailyLawRepository.
type Store interface {
	GetLatest(ctx context.Context) (*models.DailyLaw, error)
	UpsertByFetchDate(ctx context.Context, d *models.DailyLaw) (*models.DailyLaw, error)
	ListRecent(ctx context.Context, limit int) ([]models.DailyLaw, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.DailyLaw, error)
	RecentSourceLinks(ctx context.Context, n int) ([]string, error)
	FindOlderThan(ctx context.Context, cutoff time.Time) ([]models.DailyLaw, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// CandidateSource produces the day's candidate news items.
type CandidateSource interface {
	Collect(ctx context.Context, usedLinks []string) ([]feeder.NewsItem, error)
}

// Synthesizer turns candidates into one structured case study.
type Synthesizer interface {
	Synthesize(ctx context.Context, candidates []feeder.NewsItem) (*synthesizer.CaseStudy, error)
	Model() string
}

// MediaGenerator is the best-effort image step. A non-nil error may still
// come with a usable fallback ref.
type MediaGenerator interface {
	Generate(ctx context.Context, title string) (string, error)
}

// Service owns the generate-once-per-day pipeline and its single-flight
// lock, plus the read paths over the store.
type Service struct {
	store     Store
	source    CandidateSource
	synth     Synthesizer
	media     MediaGenerator
	lock      generationLock
	archive   int
	exclusion int
	retention time.Duration
	flightTTL time.Duration
	uploads   string

	now func() time.Time
}

func NewService(store Store, source CandidateSource, synth Synthesizer, media MediaGenerator, cfg config.AppConfig) *Service {
	dl := cfg.DailyLaw
	flightTTL := time.Duration(cfg.AI.TextTimeoutSeconds+cfg.AI.ImageTimeoutSeconds+60) * time.Second
	return &Service{
		store:     store,
		source:    source,
		synth:     synth,
		media:     media,
		archive:   7,
		exclusion: dl.ExclusionWindow,
		retention: time.Duration(dl.RetentionDays) * 24 * time.Hour,
		flightTTL: flightTTL,
		uploads:   cfg.UploadsDir,
		now:       time.Now,
	}
}

// DateKey returns the canonical calendar-day key for t.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// GetToday returns today's record, generating it on demand when the latest
// stored record is missing or stale. A cache-miss read is therefore neither
// cheap nor side-effect-free; that trade-off is deliberate.
func (s *Service) GetToday(ctx context.Context) (*models.DailyLaw, error) {
	latest, err := s.store.GetLatest(ctx)
	if err != nil {
		return nil, err
	}
	today := DateKey(s.now())
	if latest != nil && latest.FetchDate == today {
		return latest, nil
	}

	logger.Log.Info("daily law missing or stale, generating fresh case study")
	return s.Generate(ctx)
}

// GetWeekly returns the archive window, newest first.
func (s *Service) GetWeekly(ctx context.Context) ([]models.DailyLaw, error) {
	return s.store.ListRecent(ctx, s.archive)
}

// GetByID returns one record by its ObjectID hex.
func (s *Service) GetByID(ctx context.Context, hexID string) (*models.DailyLaw, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, err
	}
	return s.store.FindByID(ctx, id)
}

// Generate runs (or joins) the single-flight generation. Every concurrent
// caller observes the same outcome; after completion — success or failure —
// the lock is back at Idle, so the next call is a fresh attempt.
func (s *Service) Generate(ctx context.Context) (*models.DailyLaw, error) {
	fl, started := s.lock.acquireOrJoin()
	if !started {
		select {
		case <-fl.done:
			return fl.rec, fl.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	var (
		rec *models.DailyLaw
		err error
	)
	// Deferred so a panic inside the pipeline cannot wedge the lock.
	defer func() { s.lock.release(fl, rec, err) }()

	// The flight outlives the request that happened to start it: joiners
	// from other requests share the result, so cancelling the starter must
	// not kill the computation. The bound comes from flightTTL instead.
	genCtx, cancel := context.WithTimeout(context.Background(), s.flightTTL)
	defer cancel()

	rec, err = s.runGeneration(genCtx)
	return rec, err
}

func (s *Service) runGeneration(ctx context.Context) (*models.DailyLaw, error) {
	todayKey := DateKey(s.now())

	// Another caller may have finished between the staleness check and
	// lock acquisition.
	if existing, err := s.store.GetLatest(ctx); err == nil &&
		existing != nil && existing.FetchDate == todayKey {
		return existing, nil
	}

	usedLinks, err := s.store.RecentSourceLinks(ctx, s.exclusion)
	if err != nil {
		return nil, fmt.Errorf("dailylaw: load used links: %w", err)
	}

	candidates, err := s.source.Collect(ctx, usedLinks)
	if err != nil {
		return nil, fmt.Errorf("dailylaw: aggregate candidates: %w", err)
	}

	study, err := s.synth.Synthesize(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("dailylaw: synthesize case study: %w", err)
	}

	// Best-effort enrichment: a failed image never fails the day.
	imageRef, imgErr := s.media.Generate(ctx, study.Title)
	if imgErr != nil {
		logger.ErrorWithFields("image generation failed, continuing without local image", logger.Fields{
			"title": study.Title,
			"error": imgErr.Error(),
		})
	}

	rec := &models.DailyLaw{
		FetchDate:    todayKey,
		Title:        study.Title,
		Highlights:   study.Highlights,
		Summary:      study.Summary,
		WhyItMatters: study.WhyItMatters,
		SourceLink:   study.SourceLink,
		ImageURL:     imageRef,
		ModelName:    s.synth.Model(),
		Date:         s.now(),
	}

	saved, err := s.store.UpsertByFetchDate(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("dailylaw: persist record: %w", err)
	}
	logger.InfoWithFields("daily law updated", logger.Fields{
		"fetch_date": saved.FetchDate,
		"title":      saved.Title,
	})

	s.sweep(ctx)
	return saved, nil
}

// sweep deletes records past the retention window along with the local
// image files they own. Sweep failures are logged, never propagated — the
// generation already succeeded.
func (s *Service) sweep(ctx context.Context) {
	cutoff := s.now().Add(-s.retention)

	old, err := s.store.FindOlderThan(ctx, cutoff)
	if err != nil {
		logger.Log.Errorf("retention sweep: list old records: %v", err)
		return
	}
	for _, d := range old {
		if !d.OwnsLocalImage() {
			continue
		}
		path := filepath.Join(s.uploads, filepath.Base(d.ImageURL))
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Log.Warnf("retention sweep: remove image %s: %v", path, err)
		}
	}

	deleted, err := s.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		logger.Log.Errorf("retention sweep: delete old records: %v", err)
		return
	}
	if deleted > 0 {
		logger.InfoWithFields("retention sweep completed", logger.Fields{
			"deleted": deleted,
			"cutoff":  cutoff.Format(time.RFC3339),
		})
	}
}
