package recommend

import (
	"testing"
	"time"

	"github.com/hassaancode/CineSage/internal/media"
)

func TestSessionRecord(t *testing.T) {
	store := NewSessionStore()
	session := store.New("space operas")

	session.Record([]media.Item{
		{ID: 11, Title: "Star Wars", MediaType: media.TypeMovie},
		{ID: 1399, Title: "Game of Thrones", MediaType: media.TypeTV},
	})
	// Re-recording the same item must not duplicate its title.
	session.Record([]media.Item{
		{ID: 11, Title: "Star Wars", MediaType: media.TypeMovie},
	})

	seen := session.Seen()
	if len(seen) != 2 {
		t.Errorf("Expected 2 seen keys, got %d", len(seen))
	}
	if _, ok := seen[media.Key{ID: 11, MediaType: media.TypeMovie}]; !ok {
		t.Error("Expected Star Wars key in seen set")
	}

	titles := session.Titles()
	if len(titles) != 2 {
		t.Fatalf("Expected 2 titles, got %v", titles)
	}
	if titles[0] != "Star Wars" || titles[1] != "Game of Thrones" {
		t.Errorf("Titles should preserve delivery order, got %v", titles)
	}
}

func TestSessionSeenIsACopy(t *testing.T) {
	store := NewSessionStore()
	session := store.New("q")
	session.Record([]media.Item{{ID: 1, MediaType: media.TypeMovie}})

	seen := session.Seen()
	delete(seen, media.Key{ID: 1, MediaType: media.TypeMovie})

	if len(session.Seen()) != 1 {
		t.Error("Mutating the returned seen set must not affect the session")
	}
}

func TestSessionStoreGet(t *testing.T) {
	store := NewSessionStore()
	session := store.New("westerns")

	got, ok := store.Get(session.ID)
	if !ok || got.Query != "westerns" {
		t.Errorf("Expected to retrieve the created session, got %+v ok=%v", got, ok)
	}

	if _, ok := store.Get("missing"); ok {
		t.Error("Expected miss for unknown session id")
	}
}

func TestSessionStorePrune(t *testing.T) {
	store := NewSessionStore()
	stale := store.New("old query")
	fresh := store.New("new query")

	stale.mu.Lock()
	stale.updatedAt = time.Now().Add(-3 * time.Hour)
	stale.mu.Unlock()

	removed := store.Prune(2 * time.Hour)
	if removed != 1 {
		t.Errorf("Expected 1 pruned session, got %d", removed)
	}
	if _, ok := store.Get(stale.ID); ok {
		t.Error("Stale session should be gone")
	}
	if _, ok := store.Get(fresh.ID); !ok {
		t.Error("Fresh session should survive pruning")
	}
	if store.Len() != 1 {
		t.Errorf("Expected 1 remaining session, got %d", store.Len())
	}
}
