package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/bookcircle/bookcircle-server/internal/domain"
)

func TestListFeed_FiltersAndOrders(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	m := insertTestMember(t, s, "sharer")
	fan := insertTestMember(t, s, "fan")
	now := time.Now()

	older := insertTestShare(t, s, insertTestEntry(t, s, m.ID, "Older", "Fiction"), true, now.Add(-2*time.Hour))
	newer := insertTestShare(t, s, insertTestEntry(t, s, m.ID, "Newer", "Fiction"), true, now.Add(-time.Hour))
	insertTestShare(t, s, insertTestEntry(t, s, m.ID, "Private", "Fiction"), false, now)

	past := now.Add(-time.Minute)
	expired := &domain.ShareRecord{
		EntryID:   insertTestEntry(t, s, m.ID, "Expired", "Fiction").ID,
		SharerID:  m.ID,
		IsPublic:  true,
		Token:     "eeeeeeeeeeeeeeee",
		ExpiresAt: &past,
		CreatedAt: now,
	}
	if err := s.CreateShare(ctx, expired); err != nil {
		t.Fatalf("CreateShare: %v", err)
	}

	if _, err := s.ToggleLike(ctx, older.ID, fan.ID, now); err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if err := s.CreateComment(ctx, &domain.Interaction{MemberID: fan.ID, ShareID: older.ID, Text: "nice", CreatedAt: now}); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	items, err := s.ListFeed(ctx, now, 50)
	if err != nil {
		t.Fatalf("ListFeed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ShareID != newer.ID || items[1].ShareID != older.ID {
		t.Errorf("unexpected order: %d, %d", items[0].ShareID, items[1].ShareID)
	}
	if items[1].LikeCount != 1 || items[1].CommentCount != 1 {
		t.Errorf("counts: likes=%d comments=%d, want 1/1", items[1].LikeCount, items[1].CommentCount)
	}
	if items[0].Sharer.Username != "sharer" {
		t.Errorf("Sharer: got %q", items[0].Sharer.Username)
	}

	limited, err := s.ListFeed(ctx, now, 1)
	if err != nil {
		t.Fatalf("ListFeed limited: %v", err)
	}
	if len(limited) != 1 || limited[0].ShareID != newer.ID {
		t.Errorf("limit not applied: %+v", limited)
	}
}

func TestListFeed_TieBreaksByID(t *testing.T) {
	s := newTestStore(t)
	m := insertTestMember(t, s, "sharer")
	at := time.Now().Add(-time.Minute)

	first := insertTestShare(t, s, insertTestEntry(t, s, m.ID, "A", ""), true, at)
	second := insertTestShare(t, s, insertTestEntry(t, s, m.ID, "B", ""), true, at)

	items, err := s.ListFeed(context.Background(), time.Now(), 10)
	if err != nil {
		t.Fatalf("ListFeed: %v", err)
	}
	if len(items) != 2 || items[0].ShareID != second.ID || items[1].ShareID != first.ID {
		t.Errorf("expected id DESC on equal timestamps, got %+v", items)
	}
}

func TestListSharedEntries(t *testing.T) {
	s := newTestStore(t)
	m := insertTestMember(t, s, "sharer")
	insertTestShare(t, s, insertTestEntry(t, s, m.ID, "Dune", "Science Fiction"), true, time.Now())
	insertTestShare(t, s, insertTestEntry(t, s, m.ID, "No Genre", ""), true, time.Now())
	insertTestEntry(t, s, m.ID, "Unshared", "Science Fiction")
	insertTestShare(t, s, insertTestEntry(t, s, m.ID, "Private", "Science Fiction"), false, time.Now())

	now := time.Now()
	past := now.Add(-time.Minute)
	expired := &domain.ShareRecord{
		EntryID:   insertTestEntry(t, s, m.ID, "Expired", "Science Fiction").ID,
		SharerID:  m.ID,
		IsPublic:  true,
		Token:     "ffffffffffffffff",
		ExpiresAt: &past,
		CreatedAt: now.Add(-time.Hour),
	}
	if err := s.CreateShare(context.Background(), expired); err != nil {
		t.Fatalf("CreateShare: %v", err)
	}

	entries, err := s.ListSharedEntries(context.Background(), now)
	if err != nil {
		t.Fatalf("ListSharedEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "Dune" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}
