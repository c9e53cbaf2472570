package dailylaw

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"nyayasetu/feeder"
	"nyayasetu/models"
	"nyayasetu/synthesizer"
)

// ---- fakes ----

type fakeStore struct {
	mu         sync.Mutex
	recs       map[string]models.DailyLaw // keyed by fetch_date
	hideLatest bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{recs: make(map[string]models.DailyLaw)}
}

func (f *fakeStore) all() []models.DailyLaw {
	out := make([]models.DailyLaw, 0, len(f.recs))
	for _, d := range f.recs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (f *fakeStore) GetLatest(ctx context.Context) (*models.DailyLaw, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hideLatest || len(f.recs) == 0 {
		return nil, nil
	}
	d := f.all()[0]
	return &d, nil
}

func (f *fakeStore) UpsertByFetchDate(ctx context.Context, d *models.DailyLaw) (*models.DailyLaw, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if prev, ok := f.recs[d.FetchDate]; ok {
		d.ID = prev.ID
	} else {
		d.ID = primitive.NewObjectID()
	}
	f.recs[d.FetchDate] = *d
	saved := *d
	return &saved, nil
}

func (f *fakeStore) ListRecent(ctx context.Context, limit int) ([]models.DailyLaw, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.all()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.DailyLaw, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.recs {
		if d.ID == id {
			rec := d
			return &rec, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeStore) RecentSourceLinks(ctx context.Context, n int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var links []string
	for _, d := range f.all() {
		if len(links) >= n {
			break
		}
		if d.SourceLink != "" {
			links = append(links, d.SourceLink)
		}
	}
	return links, nil
}

func (f *fakeStore) FindOlderThan(ctx context.Context, cutoff time.Time) ([]models.DailyLaw, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.DailyLaw
	for _, d := range f.recs {
		if d.Date.Before(cutoff) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var deleted int64
	for k, d := range f.recs {
		if d.Date.Before(cutoff) {
			delete(f.recs, k)
			deleted++
		}
	}
	return deleted, nil
}

type fakeSource struct {
	items []feeder.NewsItem
}

func (f *fakeSource) Collect(ctx context.Context, usedLinks []string) ([]feeder.NewsItem, error) {
	return f.items, nil
}

type fakeSynth struct {
	calls int64
	fn    func(call int64, candidates []feeder.NewsItem) (*synthesizer.CaseStudy, error)
}

func (f *fakeSynth) Synthesize(ctx context.Context, candidates []feeder.NewsItem) (*synthesizer.CaseStudy, error) {
	n := atomic.AddInt64(&f.calls, 1)
	return f.fn(n, candidates)
}

func (f *fakeSynth) Model() string { return "test-model" }

func (f *fakeSynth) callCount() int64 { return atomic.LoadInt64(&f.calls) }

type fakeMedia struct {
	ref string
	err error
}

func (f *fakeMedia) Generate(ctx context.Context, title string) (string, error) {
	return f.ref, f.err
}

func defaultCandidates() []feeder.NewsItem {
	return []feeder.NewsItem{
		{Title: "A", Link: "https://news.example/a"},
		{Title: "B", Link: "https://news.example/b"},
		{Title: "C", Link: "https://news.example/c"},
	}
}

func studyFor(item feeder.NewsItem) *synthesizer.CaseStudy {
	return &synthesizer.CaseStudy{
		Title:        "X",
		Highlights:   "Section 304A IPC",
		Summary:      "summary",
		WhyItMatters: "lesson",
		SourceLink:   item.Link,
	}
}

func newTestService(t *testing.T, store Store, synth Synthesizer, media MediaGenerator) *Service {
	t.Helper()
	s := &Service{
		store:     store,
		source:    &fakeSource{items: defaultCandidates()},
		synth:     synth,
		media:     media,
		archive:   7,
		exclusion: 10,
		retention: 7 * 24 * time.Hour,
		flightTTL: 5 * time.Second,
		uploads:   t.TempDir(),
		now:       time.Now,
	}
	return s
}

// ---- tests ----

func TestConcurrentCallsShareOneGeneration(t *testing.T) {
	store := newFakeStore()
	entered := make(chan struct{})
	proceed := make(chan struct{})
	var enterOnce sync.Once

	synth := &fakeSynth{fn: func(call int64, cands []feeder.NewsItem) (*synthesizer.CaseStudy, error) {
		enterOnce.Do(func() { close(entered) })
		<-proceed
		return studyFor(cands[1]), nil
	}}
	svc := newTestService(t, store, synth, &fakeMedia{ref: "/uploads/x.png"})

	const n = 8
	results := make([]*models.DailyLaw, n)
	errs := make([]error, n)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = svc.GetToday(context.Background())
	}()
	<-entered

	for i := 1; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.GetToday(context.Background())
		}(i)
	}
	// Let the joiners reach the lock before the flight completes.
	time.Sleep(50 * time.Millisecond)
	close(proceed)
	wg.Wait()

	assert.EqualValues(t, 1, synth.callCount())
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		assert.Equal(t, results[0].ID, results[i].ID)
		assert.Equal(t, "https://news.example/b", results[i].SourceLink)
	}
	assert.Len(t, store.recs, 1)
}

func TestRepeatCallSameDayServesCachedRecord(t *testing.T) {
	store := newFakeStore()
	synth := &fakeSynth{fn: func(call int64, cands []feeder.NewsItem) (*synthesizer.CaseStudy, error) {
		return studyFor(cands[1]), nil
	}}
	svc := newTestService(t, store, synth, &fakeMedia{ref: "/uploads/x.png"})

	first, err := svc.GetToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://news.example/b", first.SourceLink)
	assert.Equal(t, DateKey(time.Now()), first.FetchDate)

	second, err := svc.GetToday(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.EqualValues(t, 1, synth.callCount(), "cached day must not re-invoke synthesis")
}

func TestUpsertSameDayKeepsOneRecordLastWriteWins(t *testing.T) {
	store := newFakeStore()
	store.hideLatest = true // simulate a second instance that cannot see the first write
	synth := &fakeSynth{fn: func(call int64, cands []feeder.NewsItem) (*synthesizer.CaseStudy, error) {
		cs := studyFor(cands[0])
		if call == 2 {
			cs.Title = "second"
		}
		return cs, nil
	}}
	svc := newTestService(t, store, synth, &fakeMedia{ref: "/uploads/x.png"})

	_, err := svc.Generate(context.Background())
	require.NoError(t, err)
	rec, err := svc.Generate(context.Background())
	require.NoError(t, err)

	assert.Len(t, store.recs, 1)
	assert.Equal(t, "second", rec.Title)
	assert.Equal(t, "second", store.recs[rec.FetchDate].Title)
}

func TestMediaFailureFallsBackToRemoteRef(t *testing.T) {
	store := newFakeStore()
	synth := &fakeSynth{fn: func(call int64, cands []feeder.NewsItem) (*synthesizer.CaseStudy, error) {
		return studyFor(cands[0]), nil
	}}
	media := &fakeMedia{ref: "https://img.example/fallback.png", err: errors.New("disk full")}
	svc := newTestService(t, store, synth, media)

	rec, err := svc.GetToday(context.Background())
	require.NoError(t, err, "a broken image pipeline must not fail generation")
	assert.Equal(t, "https://img.example/fallback.png", rec.ImageURL)
}

func TestFailedGenerationReleasesLock(t *testing.T) {
	store := newFakeStore()
	synth := &fakeSynth{fn: func(call int64, cands []feeder.NewsItem) (*synthesizer.CaseStudy, error) {
		if call == 1 {
			return nil, errors.New("model returned garbage")
		}
		return studyFor(cands[0]), nil
	}}
	svc := newTestService(t, store, synth, &fakeMedia{ref: "/uploads/x.png"})

	_, err := svc.GetToday(context.Background())
	require.Error(t, err)
	assert.Len(t, store.recs, 0, "failed generation must not write a partial record")

	rec, err := svc.GetToday(context.Background())
	require.NoError(t, err, "lock must be Idle again after a failed flight")
	assert.NotNil(t, rec)
	assert.EqualValues(t, 2, synth.callCount())
}

func TestRetentionSweep(t *testing.T) {
	store := newFakeStore()
	now := time.Now()
	for _, age := range []int{0, 3, 6, 8, 10} {
		d := now.AddDate(0, 0, -age)
		store.recs[DateKey(d)] = models.DailyLaw{
			ID:        primitive.NewObjectID(),
			FetchDate: DateKey(d),
			Date:      d,
		}
	}
	svc := newTestService(t, store, &fakeSynth{}, &fakeMedia{})

	svc.sweep(context.Background())

	var remaining []string
	for k := range store.recs {
		remaining = append(remaining, k)
	}
	assert.ElementsMatch(t, []string{
		DateKey(now),
		DateKey(now.AddDate(0, 0, -3)),
		DateKey(now.AddDate(0, 0, -6)),
	}, remaining)
}

func TestRetentionSweepDeletesOwnedImages(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store, &fakeSynth{}, &fakeMedia{})

	oldImage := filepath.Join(svc.uploads, "dailylaw-old.png")
	require.NoError(t, os.WriteFile(oldImage, []byte("png"), 0o644))
	keptImage := filepath.Join(svc.uploads, "dailylaw-kept.png")
	require.NoError(t, os.WriteFile(keptImage, []byte("png"), 0o644))

	now := time.Now()
	store.recs["old"] = models.DailyLaw{
		ID:        primitive.NewObjectID(),
		FetchDate: "old",
		Date:      now.AddDate(0, 0, -9),
		ImageURL:  "/uploads/dailylaw-old.png",
	}
	store.recs["remote"] = models.DailyLaw{
		ID:        primitive.NewObjectID(),
		FetchDate: "remote",
		Date:      now.AddDate(0, 0, -9),
		ImageURL:  "https://img.example/remote.png",
	}
	store.recs["kept"] = models.DailyLaw{
		ID:        primitive.NewObjectID(),
		FetchDate: "kept",
		Date:      now,
		ImageURL:  "/uploads/dailylaw-kept.png",
	}

	svc.sweep(context.Background())

	_, err := os.Stat(oldImage)
	assert.True(t, os.IsNotExist(err), "pruned record's local image must be removed")
	_, err = os.Stat(keptImage)
	assert.NoError(t, err, "retained record's image must survive the sweep")
	assert.Len(t, store.recs, 1)
}
