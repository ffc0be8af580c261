package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bookcircle/bookcircle-server/internal/auth"
	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/search"
	"github.com/bookcircle/bookcircle-server/internal/store/sqlite"
	"github.com/bookcircle/bookcircle-server/internal/validation"
)

// testEnv bundles every service over one temporary database.
type testEnv struct {
	store        *sqlite.Store
	index        *search.CatalogIndex
	sharing      *SharingService
	interactions *InteractionService
	follows      *FollowService
	feed         *FeedService
	members      *MemberService
	library      *LibraryService
	catalog      *CatalogService
}

// cheapParams keep argon2 fast in tests.
var cheapParams = auth.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	idx, err := search.NewCatalogIndex(logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	s.SetCatalogIndexer(idx)

	v := validation.New()

	members := NewMemberService(s, v, logger)
	members.hash = func(p string) (string, error) { return auth.HashPasswordWith(p, cheapParams) }

	return &testEnv{
		store:        s,
		index:        idx,
		sharing:      NewSharingService(s, logger),
		interactions: NewInteractionService(s, logger),
		follows:      NewFollowService(s, logger),
		feed:         NewFeedService(s, logger, DefaultFeedLimits),
		members:      members,
		library:      NewLibraryService(s, v, logger),
		catalog:      NewCatalogService(s, idx, v, logger),
	}
}

var memberSeq int

func createTestMember(t *testing.T, env *testEnv, name string) *domain.Member {
	t.Helper()
	memberSeq++
	m := &domain.Member{
		Username:     fmt.Sprintf("%s%d", name, memberSeq),
		Email:        fmt.Sprintf("%s%d@example.com", name, memberSeq),
		DisplayName:  name,
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, env.store.CreateMember(context.Background(), m))
	return m
}

func createTestEntry(t *testing.T, env *testEnv, memberID int64, title, genre string) *domain.BookEntry {
	t.Helper()
	e := &domain.BookEntry{
		MemberID:  memberID,
		Title:     title,
		Author:    "Author of " + title,
		Genre:     genre,
		Year:      1900,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, env.store.CreateEntry(context.Background(), e))
	return e
}

func shareEntry(t *testing.T, env *testEnv, entry *domain.BookEntry, public bool) *ShareResult {
	t.Helper()
	res, err := env.sharing.Share(context.Background(), ShareRequest{
		EntryID:        entry.ID,
		ActingMemberID: entry.MemberID,
		IsPublic:       public,
	})
	require.NoError(t, err)
	return res
}
