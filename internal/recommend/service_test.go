package recommend

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hassaancode/CineSage/internal/genai"
	"github.com/hassaancode/CineSage/internal/media"
)

type fakeAnalyzer struct {
	analysis *media.AnalyzedInput
	err      error
	calls    int
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, userInput string) (*media.AnalyzedInput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.analysis, nil
}

type fakeGenerator struct {
	batches     [][]genai.Candidate
	err         error
	calls       int
	lastExclude []string
}

func (f *fakeGenerator) Generate(ctx context.Context, userInput string, exclude []string) ([]genai.Candidate, error) {
	f.lastExclude = exclude
	if f.err != nil {
		return nil, f.err
	}
	batch := []genai.Candidate{}
	if f.calls < len(f.batches) {
		batch = f.batches[f.calls]
	}
	f.calls++
	return batch, nil
}

// fakeCatalog resolves titles from a fixed table. With jitter enabled each
// lookup sleeps a random few milliseconds so that completion order differs
// from submission order.
type fakeCatalog struct {
	mu     sync.Mutex
	table  map[string]media.Item
	jitter bool
}

func (f *fakeCatalog) ResolveByTitle(ctx context.Context, title string, mediaType media.Type) *media.Item {
	if f.jitter {
		time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.table[title+"/"+string(mediaType)]
	if !ok {
		return nil
	}
	return &item
}

func (f *fakeCatalog) Search(ctx context.Context, query string, typeFilter media.Type) []media.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	results := make([]media.Item, 0, len(f.table))
	for _, item := range f.table {
		results = append(results, item)
	}
	return results
}

func newTestService(analyzer *fakeAnalyzer, generator *fakeGenerator, cat *fakeCatalog) *Service {
	return NewService(analyzer, generator, cat, zerolog.Nop())
}

func movieItem(id int, title string) media.Item {
	return media.Item{ID: id, Title: title, MediaType: media.TypeMovie}
}

func TestStartEmptyInput(t *testing.T) {
	svc := newTestService(&fakeAnalyzer{}, &fakeGenerator{}, &fakeCatalog{})

	if _, err := svc.Start(context.Background(), "   "); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got %v", err)
	}
}

func TestStartAnalyzerFailureFailsSearch(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("backend down")}
	generator := &fakeGenerator{batches: [][]genai.Candidate{{{Title: "Inception", Type: media.TypeMovie}}}}
	catalog := &fakeCatalog{table: map[string]media.Item{
		"Inception/movie": movieItem(27205, "Inception"),
	}}
	svc := newTestService(analyzer, generator, catalog)

	_, err := svc.Start(context.Background(), "mind-bending heist")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("Expected GenerationError, got %v", err)
	}
}

func TestStartGeneratorFailureFailsSearch(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: &media.AnalyzedInput{RelevantGenres: []string{"Drama"}}}
	generator := &fakeGenerator{err: errors.New("quota exceeded")}
	svc := newTestService(analyzer, generator, &fakeCatalog{})

	_, err := svc.Start(context.Background(), "sad movies")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("Expected GenerationError, got %v", err)
	}
}

func TestStartNoCandidates(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: &media.AnalyzedInput{}}
	generator := &fakeGenerator{batches: [][]genai.Candidate{{}}}
	svc := newTestService(analyzer, generator, &fakeCatalog{})

	if _, err := svc.Start(context.Background(), "something"); !errors.Is(err, ErrNoRecommendations) {
		t.Errorf("Expected ErrNoRecommendations, got %v", err)
	}
}

func TestStartNothingResolves(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: &media.AnalyzedInput{}}
	generator := &fakeGenerator{batches: [][]genai.Candidate{{
		{Title: "Completely Made Up Film", Type: media.TypeMovie},
	}}}
	svc := newTestService(analyzer, generator, &fakeCatalog{table: map[string]media.Item{}})

	if _, err := svc.Start(context.Background(), "something"); !errors.Is(err, ErrNoMatchesInCatalog) {
		t.Errorf("Expected ErrNoMatchesInCatalog, got %v", err)
	}
}

func TestStartDeduplicatesByIdentity(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: &media.AnalyzedInput{RelevantGenres: []string{"Comedy", "Sci-Fi"}}}
	// The generator suggests the same film under two spellings; both resolve
	// to the same catalog record.
	generator := &fakeGenerator{batches: [][]genai.Candidate{{
		{Title: "Galaxy Quest", Type: media.TypeMovie},
		{Title: "Galaxy Quest (1999)", Type: media.TypeMovie},
		{Title: "Paul", Type: media.TypeMovie},
	}}}
	catalog := &fakeCatalog{table: map[string]media.Item{
		"Galaxy Quest/movie":        movieItem(4638, "Galaxy Quest"),
		"Galaxy Quest (1999)/movie": movieItem(4638, "Galaxy Quest"),
		"Paul/movie":                movieItem(39513, "Paul"),
	}}
	svc := newTestService(analyzer, generator, catalog)

	result, err := svc.Start(context.Background(), "funny sci-fi about actors")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if len(result.Media) != 2 {
		t.Fatalf("Expected 2 items after dedup, got %d", len(result.Media))
	}
	if result.Media[0].ID != 4638 || result.Media[1].ID != 39513 {
		t.Errorf("Expected generator order [4638, 39513], got [%d, %d]", result.Media[0].ID, result.Media[1].ID)
	}
	if result.SessionID == "" {
		t.Error("Expected a session id")
	}
	if result.Analysis == nil || len(result.Analysis.RelevantGenres) != 2 {
		t.Errorf("Expected analysis on first page, got %+v", result.Analysis)
	}
}

func TestStartSameIdDifferentTypeBothKept(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: &media.AnalyzedInput{}}
	generator := &fakeGenerator{batches: [][]genai.Candidate{{
		{Title: "Fargo", Type: media.TypeMovie},
		{Title: "Fargo", Type: media.TypeTV},
	}}}
	catalog := &fakeCatalog{table: map[string]media.Item{
		"Fargo/movie": {ID: 275, Title: "Fargo", MediaType: media.TypeMovie},
		"Fargo/tv":    {ID: 275, Title: "Fargo", MediaType: media.TypeTV},
	}}
	svc := newTestService(analyzer, generator, catalog)

	result, err := svc.Start(context.Background(), "crime in the snow")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if len(result.Media) != 2 {
		t.Fatalf("Expected both movie and series with the same id, got %d items", len(result.Media))
	}
}

func TestStartSkipsUnresolvedCandidates(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: &media.AnalyzedInput{}}
	generator := &fakeGenerator{batches: [][]genai.Candidate{{
		{Title: "Not A Real Movie", Type: media.TypeMovie},
		{Title: "Inception", Type: media.TypeMovie},
	}}}
	catalog := &fakeCatalog{table: map[string]media.Item{
		"Inception/movie": movieItem(27205, "Inception"),
	}}
	svc := newTestService(analyzer, generator, catalog)

	result, err := svc.Start(context.Background(), "dreams")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if len(result.Media) != 1 || result.Media[0].ID != 27205 {
		t.Errorf("Expected only the resolvable candidate, got %+v", result.Media)
	}
}

func TestStartOrderIndependentOfCompletionOrder(t *testing.T) {
	candidates := []genai.Candidate{
		{Title: "A", Type: media.TypeMovie},
		{Title: "B", Type: media.TypeMovie},
		{Title: "C", Type: media.TypeMovie},
		{Title: "D", Type: media.TypeMovie},
		{Title: "E", Type: media.TypeMovie},
	}
	table := map[string]media.Item{
		"A/movie": movieItem(1, "A"),
		"B/movie": movieItem(2, "B"),
		"C/movie": movieItem(3, "C"),
		"D/movie": movieItem(4, "D"),
		"E/movie": movieItem(5, "E"),
	}

	for i := 0; i < 10; i++ {
		analyzer := &fakeAnalyzer{analysis: &media.AnalyzedInput{}}
		generator := &fakeGenerator{batches: [][]genai.Candidate{candidates}}
		svc := newTestService(analyzer, generator, &fakeCatalog{table: table, jitter: true})

		result, err := svc.Start(context.Background(), "alphabet")
		if err != nil {
			t.Fatalf("Start failed: %v", err)
		}
		for j, item := range result.Media {
			if item.ID != j+1 {
				t.Fatalf("Run %d: position %d has id %d, output order must follow generator order", i, j, item.ID)
			}
		}
	}
}

func TestMoreUnknownSession(t *testing.T) {
	svc := newTestService(&fakeAnalyzer{}, &fakeGenerator{}, &fakeCatalog{})

	if _, err := svc.More(context.Background(), "no-such-session"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestMoreExcludesDeliveredItems(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: &media.AnalyzedInput{}}
	generator := &fakeGenerator{batches: [][]genai.Candidate{
		{{Title: "Inception", Type: media.TypeMovie}},
		// Continuation: the model re-suggests Inception despite the
		// exclusion prompt, plus one genuinely new title.
		{
			{Title: "Inception", Type: media.TypeMovie},
			{Title: "Tenet", Type: media.TypeMovie},
		},
	}}
	catalog := &fakeCatalog{table: map[string]media.Item{
		"Inception/movie": movieItem(27205, "Inception"),
		"Tenet/movie":     movieItem(577922, "Tenet"),
	}}
	svc := newTestService(analyzer, generator, catalog)

	first, err := svc.Start(context.Background(), "time-bending thrillers")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	second, err := svc.More(context.Background(), first.SessionID)
	if err != nil {
		t.Fatalf("More failed: %v", err)
	}

	if len(second.Media) != 1 || second.Media[0].ID != 577922 {
		t.Fatalf("Expected only the new item, got %+v", second.Media)
	}
	if second.Analysis != nil {
		t.Error("Continuations must not carry analysis")
	}
	if len(generator.lastExclude) != 1 || generator.lastExclude[0] != "Inception" {
		t.Errorf("Generator should receive delivered titles as exclusions, got %v", generator.lastExclude)
	}
	if analyzer.calls != 1 {
		t.Errorf("Analyzer must run only on the first page, ran %d times", analyzer.calls)
	}
}

func TestMoreEmptyGenerationIsTerminal(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: &media.AnalyzedInput{}}
	generator := &fakeGenerator{batches: [][]genai.Candidate{
		{{Title: "Inception", Type: media.TypeMovie}},
		{},
	}}
	catalog := &fakeCatalog{table: map[string]media.Item{
		"Inception/movie": movieItem(27205, "Inception"),
	}}
	svc := newTestService(analyzer, generator, catalog)

	first, err := svc.Start(context.Background(), "dreams")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	second, err := svc.More(context.Background(), first.SessionID)
	if err != nil {
		t.Fatalf("Empty continuation must not be an error, got %v", err)
	}
	if len(second.Media) != 0 {
		t.Errorf("Expected empty media, got %+v", second.Media)
	}
	if second.SessionID != first.SessionID {
		t.Errorf("Session id must be stable across pages")
	}
}

func TestMoreAccumulatesExclusions(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: &media.AnalyzedInput{}}
	generator := &fakeGenerator{batches: [][]genai.Candidate{
		{{Title: "Inception", Type: media.TypeMovie}},
		{{Title: "Tenet", Type: media.TypeMovie}},
		{{Title: "Memento", Type: media.TypeMovie}},
	}}
	catalog := &fakeCatalog{table: map[string]media.Item{
		"Inception/movie": movieItem(27205, "Inception"),
		"Tenet/movie":     movieItem(577922, "Tenet"),
		"Memento/movie":   movieItem(77, "Memento"),
	}}
	svc := newTestService(analyzer, generator, catalog)

	first, err := svc.Start(context.Background(), "nolan")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := svc.More(context.Background(), first.SessionID); err != nil {
		t.Fatalf("More failed: %v", err)
	}
	if _, err := svc.More(context.Background(), first.SessionID); err != nil {
		t.Fatalf("Second More failed: %v", err)
	}

	if len(generator.lastExclude) != 2 {
		t.Fatalf("Third page should exclude both prior titles, got %v", generator.lastExclude)
	}
	if generator.lastExclude[0] != "Inception" || generator.lastExclude[1] != "Tenet" {
		t.Errorf("Exclusions should accumulate in delivery order, got %v", generator.lastExclude)
	}
}

func TestSuggest(t *testing.T) {
	table := make(map[string]media.Item)
	for i := 1; i <= 8; i++ {
		table[string(rune('a'+i))+"/movie"] = movieItem(i, "Item")
	}
	svc := newTestService(&fakeAnalyzer{}, &fakeGenerator{}, &fakeCatalog{table: table})

	t.Run("empty query", func(t *testing.T) {
		items := svc.Suggest(context.Background(), "  ")
		if items == nil || len(items) != 0 {
			t.Errorf("Expected empty non-nil slice, got %v", items)
		}
	})

	t.Run("truncates to limit", func(t *testing.T) {
		items := svc.Suggest(context.Background(), "it")
		if len(items) != 5 {
			t.Errorf("Expected 5 suggestions, got %d", len(items))
		}
	})
}
