package sqlite

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

func TestToggleLike_Parity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := insertTestMember(t, s, "owner")
	fan := insertTestMember(t, s, "fan")
	sh := insertTestShare(t, s, insertTestEntry(t, s, owner.ID, "Beloved", "Fiction"), true, time.Now())

	for i := 1; i <= 5; i++ {
		liked, err := s.ToggleLike(ctx, sh.ID, fan.ID, time.Now())
		if err != nil {
			t.Fatalf("ToggleLike #%d: %v", i, err)
		}
		if want := i%2 == 1; liked != want {
			t.Errorf("toggle #%d: liked=%v, want %v", i, liked, want)
		}

		n, err := s.CountInteractions(ctx, sh.ID, domain.InteractionLike)
		if err != nil {
			t.Fatalf("CountInteractions: %v", err)
		}
		if want := i % 2; n != want {
			t.Errorf("toggle #%d: %d likes, want %d", i, n, want)
		}
	}
}

func TestToggleLike_ConcurrentNeverDuplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := insertTestMember(t, s, "owner")
	fan := insertTestMember(t, s, "fan")
	sh := insertTestShare(t, s, insertTestEntry(t, s, owner.ID, "Rebecca", "Fiction"), true, time.Now())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.ToggleLike(ctx, sh.ID, fan.ID, time.Now()); err != nil {
				t.Errorf("ToggleLike: %v", err)
			}
		}()
	}
	wg.Wait()

	n, err := s.CountInteractions(ctx, sh.ID, domain.InteractionLike)
	if err != nil {
		t.Fatalf("CountInteractions: %v", err)
	}
	if n > 1 {
		t.Errorf("got %d likes from one member, want at most 1", n)
	}
}

func TestToggleLike_UnknownShare(t *testing.T) {
	s := newTestStore(t)
	fan := insertTestMember(t, s, "fan")

	if _, err := s.ToggleLike(context.Background(), 42, fan.ID, time.Now()); !errors.Is(err, store.ErrInvalidReference) {
		t.Errorf("expected ErrInvalidReference, got %v", err)
	}
}

func TestComments(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	owner := insertTestMember(t, s, "owner")
	reader := insertTestMember(t, s, "reader")
	sh := insertTestShare(t, s, insertTestEntry(t, s, owner.ID, "Kindred", "Fiction"), true, time.Now())

	base := time.Now()
	for i, text := range []string{"first", "second"} {
		c := &domain.Interaction{MemberID: reader.ID, ShareID: sh.ID, Text: text, CreatedAt: base.Add(time.Duration(i) * time.Second)}
		if err := s.CreateComment(ctx, c); err != nil {
			t.Fatalf("CreateComment: %v", err)
		}
		if c.ID == 0 {
			t.Fatal("expected comment ID to be set")
		}
	}

	comments, err := s.ListComments(ctx, sh.ID)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(comments))
	}
	if comments[0].Text != "first" || comments[1].Text != "second" {
		t.Errorf("comments out of order: %q, %q", comments[0].Text, comments[1].Text)
	}
	if comments[0].Username != "reader" {
		t.Errorf("Username: got %q, want reader", comments[0].Username)
	}

	blank := &domain.Interaction{MemberID: reader.ID, ShareID: sh.ID, Text: "   ", CreatedAt: time.Now()}
	if err := s.CreateComment(ctx, blank); !errors.Is(err, store.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for blank comment, got %v", err)
	}
}
