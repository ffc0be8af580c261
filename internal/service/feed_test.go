package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	domainerrors "github.com/bookcircle/bookcircle-server/internal/errors"
)

func TestFeedService_NormalizeLimit(t *testing.T) {
	svc := NewFeedService(nil, nil, FeedLimits{Default: 50, Max: 200})

	tests := []struct {
		in, want int
	}{
		{0, 50},
		{-3, 50},
		{1, 1},
		{200, 200},
		{201, 200},
		{10000, 200},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, svc.normalizeLimit(tt.in))
		})
	}
}

func TestNewFeedService_FallbackLimits(t *testing.T) {
	svc := NewFeedService(nil, nil, FeedLimits{})
	assert.Equal(t, DefaultFeedLimits, svc.limits)

	svc = NewFeedService(nil, nil, FeedLimits{Default: 500, Max: 100})
	assert.Equal(t, 100, svc.limits.Default)
}

func TestFeedService_ListCommunityFeed_Filtering(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	owner := createTestMember(t, env, "owner")
	public := shareEntry(t, env, createTestEntry(t, env, owner.ID, "Public", "Fiction"), true)
	shareEntry(t, env, createTestEntry(t, env, owner.ID, "Private", "Fiction"), false)

	soon := time.Now().Add(time.Hour)
	expiring, err := env.sharing.Share(ctx, ShareRequest{
		EntryID:        createTestEntry(t, env, owner.ID, "Expiring", "Fiction").ID,
		ActingMemberID: owner.ID,
		IsPublic:       true,
		ExpiresAt:      &soon,
	})
	require.NoError(t, err)

	items, err := env.feed.ListCommunityFeed(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, expiring.ID, items[0].ShareID)
	assert.Equal(t, public.ID, items[1].ShareID)

	// Once the expiry passes the share drops out.
	env.feed.now = func() time.Time { return soon.Add(time.Second) }
	items, err = env.feed.ListCommunityFeed(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, public.ID, items[0].ShareID)
}

func TestFeedService_ListCommunityFeed_OrderAndLimit(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	owner := createTestMember(t, env, "owner")
	var ids []int64
	for i := range 4 {
		res := shareEntry(t, env, createTestEntry(t, env, owner.ID, fmt.Sprintf("Book %d", i), "Fiction"), true)
		ids = append(ids, res.ID)
	}

	items, err := env.feed.ListCommunityFeed(ctx, 3)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, ids[3], items[0].ShareID)
	assert.Equal(t, ids[2], items[1].ShareID)
	assert.Equal(t, ids[1], items[2].ShareID)
}

func TestFeedService_LiveCounts(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	owner := createTestMember(t, env, "owner")
	fan := createTestMember(t, env, "fan")
	share := shareEntry(t, env, createTestEntry(t, env, owner.ID, "Emma", "Romance"), true)

	_, err := env.interactions.ToggleLike(ctx, share.ID, fan.ID)
	require.NoError(t, err)
	_, err = env.interactions.ToggleLike(ctx, share.ID, owner.ID)
	require.NoError(t, err)
	_, err = env.interactions.AddComment(ctx, share.ID, fan.ID, "lovely")
	require.NoError(t, err)

	items, err := env.feed.ListCommunityFeed(ctx, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].LikeCount)
	assert.Equal(t, 1, items[0].CommentCount)
	assert.Equal(t, owner.ID, items[0].Sharer.ID)
}

// A member shares entry 42; a second member likes it twice and a third
// comments. The feed shows no likes and one comment.
func TestCommunityScenario(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	sharer := createTestMember(t, env, "sharer")
	liker := createTestMember(t, env, "liker")
	commenter := createTestMember(t, env, "commenter")

	var entry *domain.BookEntry
	for entry == nil || entry.ID < 42 {
		entry = createTestEntry(t, env, sharer.ID, "Middlemarch", "Fiction")
	}
	require.Equal(t, int64(42), entry.ID)

	share, err := env.sharing.Share(ctx, ShareRequest{EntryID: 42, ActingMemberID: sharer.ID, IsPublic: true})
	require.NoError(t, err)

	liked, err := env.interactions.ToggleLike(ctx, share.ID, liker.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	liked, err = env.interactions.ToggleLike(ctx, share.ID, liker.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	_, err = env.interactions.AddComment(ctx, share.ID, commenter.ID, "Great read!")
	require.NoError(t, err)

	items, err := env.feed.ListCommunityFeed(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(42), items[0].EntryID)
	assert.Equal(t, 0, items[0].LikeCount)
	assert.Equal(t, 1, items[0].CommentCount)

	comments, err := env.interactions.ListComments(ctx, share.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Great read!", comments[0].Text)
	assert.Equal(t, commenter.ID, comments[0].MemberID)
}

func TestFeedService_GetProfile(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	alice := createTestMember(t, env, "alice")
	bob := createTestMember(t, env, "bob")
	carol := createTestMember(t, env, "carol")

	shareEntry(t, env, createTestEntry(t, env, alice.ID, "One", "Fiction"), true)
	createTestEntry(t, env, alice.ID, "Two", "Fiction")

	_, err := env.follows.Follow(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	_, err = env.follows.Follow(ctx, carol.ID, alice.ID)
	require.NoError(t, err)
	_, err = env.follows.Follow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	profile, err := env.feed.GetProfile(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.Username, profile.Username)
	assert.Equal(t, 2, profile.FollowerCount)
	assert.Equal(t, 1, profile.FollowingCount)
	assert.Equal(t, 2, profile.BookCount)
	assert.Equal(t, 1, profile.SharedCount)

	_, err = env.feed.GetProfile(ctx, 9999)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestFeedService_Categories(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	owner := createTestMember(t, env, "owner")
	shareEntry(t, env, createTestEntry(t, env, owner.ID, "Dune", "Science Fiction"), true)
	shareEntry(t, env, createTestEntry(t, env, owner.ID, "Solaris", "science  fiction"), true)
	shareEntry(t, env, createTestEntry(t, env, owner.ID, "Emma", "Romance"), true)
	createTestEntry(t, env, owner.ID, "Unshared", "Horror")

	categories, err := env.feed.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, domain.Category{Name: "Romance", Slug: "romance", Count: 1}, categories[0])
	assert.Equal(t, "science-fiction", categories[1].Slug)
	assert.Equal(t, 2, categories[1].Count)

	entries, err := env.feed.ListCategory(ctx, "science-fiction")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Solaris", entries[0].Title)

	entries, err = env.feed.ListCategory(ctx, "horror")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFeedService_Categories_OnlyVisibleShares(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	owner := createTestMember(t, env, "owner")
	shareEntry(t, env, createTestEntry(t, env, owner.ID, "Rebecca", "Mystery"), false)

	soon := time.Now().Add(time.Hour)
	_, err := env.sharing.Share(ctx, ShareRequest{
		EntryID:        createTestEntry(t, env, owner.ID, "Gone Girl", "Thriller").ID,
		ActingMemberID: owner.ID,
		IsPublic:       true,
		ExpiresAt:      &soon,
	})
	require.NoError(t, err)

	categories, err := env.feed.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "thriller", categories[0].Slug)

	entries, err := env.feed.ListCategory(ctx, "mystery")
	require.NoError(t, err)
	assert.Empty(t, entries)

	env.feed.now = func() time.Time { return soon.Add(time.Second) }

	categories, err = env.feed.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)

	entries, err = env.feed.ListCategory(ctx, "thriller")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
