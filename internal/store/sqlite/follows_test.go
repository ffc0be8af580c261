package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

func TestCreateFollow_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := insertTestMember(t, s, "a")
	b := insertTestMember(t, s, "b")

	edge := &domain.FollowEdge{FollowerID: a.ID, FolloweeID: b.ID, CreatedAt: time.Now()}
	created, err := s.CreateFollow(ctx, edge)
	if err != nil {
		t.Fatalf("CreateFollow: %v", err)
	}
	if !created {
		t.Error("first follow should create an edge")
	}

	created, err = s.CreateFollow(ctx, edge)
	if err != nil {
		t.Fatalf("CreateFollow again: %v", err)
	}
	if created {
		t.Error("second follow should not create an edge")
	}

	followers, err := s.ListFollowers(ctx, b.ID)
	if err != nil {
		t.Fatalf("ListFollowers: %v", err)
	}
	if len(followers) != 1 || followers[0].ID != a.ID {
		t.Errorf("unexpected followers: %+v", followers)
	}
}

func TestCreateFollow_Self(t *testing.T) {
	s := newTestStore(t)
	a := insertTestMember(t, s, "a")

	_, err := s.CreateFollow(context.Background(), &domain.FollowEdge{FollowerID: a.ID, FolloweeID: a.ID, CreatedAt: time.Now()})
	if !errors.Is(err, store.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDeleteFollow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := insertTestMember(t, s, "a")
	b := insertTestMember(t, s, "b")

	if _, err := s.CreateFollow(ctx, &domain.FollowEdge{FollowerID: a.ID, FolloweeID: b.ID, CreatedAt: time.Now()}); err != nil {
		t.Fatalf("CreateFollow: %v", err)
	}

	removed, err := s.DeleteFollow(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("DeleteFollow: %v", err)
	}
	if !removed {
		t.Error("expected edge to be removed")
	}

	removed, err = s.DeleteFollow(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("DeleteFollow again: %v", err)
	}
	if removed {
		t.Error("second delete should report nothing removed")
	}

	following, err := s.ListFollowing(ctx, a.ID)
	if err != nil {
		t.Fatalf("ListFollowing: %v", err)
	}
	if len(following) != 0 {
		t.Errorf("expected no following, got %d", len(following))
	}
}
