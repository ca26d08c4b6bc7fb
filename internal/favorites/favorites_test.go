package favorites

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Snehil208001/QuoteVault/internal/quote"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "favorites.db"))
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertAndIsFavorite(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	q := quote.Quote{Text: "Talk is cheap. Show me the code.", Author: "Linus Torvalds"}

	fav, err := s.IsFavorite(ctx, q.Text)
	if err != nil {
		t.Fatalf("IsFavorite: %v", err)
	}
	if fav {
		t.Fatal("quote should not be favorited yet")
	}

	if err := s.Insert(ctx, q); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	fav, err = s.IsFavorite(ctx, q.Text)
	if err != nil {
		t.Fatalf("IsFavorite: %v", err)
	}
	if !fav {
		t.Error("quote should be favorited after insert")
	}
}

func TestDeleteByText(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	q := quote.Quote{Text: "Q", Author: "A"}
	if err := s.Insert(ctx, q); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := s.DeleteByText(ctx, q.Text); err != nil {
		t.Fatalf("DeleteByText: %v", err)
	}
	fav, err := s.IsFavorite(ctx, q.Text)
	if err != nil {
		t.Fatalf("IsFavorite: %v", err)
	}
	if fav {
		t.Error("quote should not be favorited after delete")
	}

	// Deleting a missing text is not an error.
	if err := s.DeleteByText(ctx, "never saved"); err != nil {
		t.Errorf("DeleteByText on missing text: %v", err)
	}
}

func TestInsertSameTextTwice(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Insert(ctx, quote.Quote{Text: "same", Author: "first"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := s.Insert(ctx, quote.Quote{Text: "same", Author: "second"}); err != nil {
		t.Fatalf("second Insert: %v", err)
	}

	all, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 favorite, got %d", len(all))
	}
	if all[0].Author != "second" {
		t.Errorf("expected author updated, got %q", all[0].Author)
	}
}

func TestResaveMovesToFront(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for _, text := range []string{"oldest", "middle", "newest"} {
		if err := s.Insert(ctx, quote.Quote{Text: text, Author: "a"}); err != nil {
			t.Fatalf("Insert(%q): %v", text, err)
		}
	}

	// Re-saving an existing quote replaces its row, so it becomes the most
	// recently saved one.
	if err := s.Insert(ctx, quote.Quote{Text: "oldest", Author: "a"}); err != nil {
		t.Fatalf("re-Insert: %v", err)
	}

	all, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 favorites, got %d", len(all))
	}
	if all[0].Text != "oldest" {
		t.Errorf("expected re-saved quote first, got %q", all[0].Text)
	}
}

func TestAllMostRecentFirst(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for _, q := range []quote.Quote{
		{Text: "one", Author: "A"},
		{Text: "two", Author: "B"},
		{Text: "three", Author: "C"},
	} {
		if err := s.Insert(ctx, q); err != nil {
			t.Fatalf("Insert %q: %v", q.Text, err)
		}
	}

	all, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 favorites, got %d", len(all))
	}
	if all[0].Text != "three" || all[2].Text != "one" {
		t.Errorf("expected most-recent-first ordering, got %v", all)
	}
}

func TestWatchFiresOnMutation(t *testing.T) {
	s := testStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := s.Watch(ctx)

	if err := s.Insert(ctx, quote.Quote{Text: "Q", Author: "A"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected watch tick after insert")
	}

	if err := s.DeleteByText(ctx, "Q"); err != nil {
		t.Fatalf("DeleteByText: %v", err)
	}
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected watch tick after delete")
	}
}

func TestWatchStopsOnCancel(t *testing.T) {
	s := testStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	ch := s.Watch(ctx)
	cancel()

	// Give the unsubscribe goroutine a moment, then mutate; the channel must
	// not receive a tick for a cancelled subscription.
	time.Sleep(50 * time.Millisecond)
	if err := s.Insert(context.Background(), quote.Quote{Text: "Q", Author: "A"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	select {
	case <-ch:
		t.Error("cancelled watch should not receive ticks")
	case <-time.After(100 * time.Millisecond):
	}
}
