package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/genre"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

// FeedLimits bounds the size of a community feed page.
type FeedLimits struct {
	Default int
	Max     int
}

// DefaultFeedLimits are used when no limits are configured.
var DefaultFeedLimits = FeedLimits{Default: 50, Max: 200}

// FeedService composes the community feed, profiles and genre categories.
type FeedService struct {
	store  store.Store
	logger *slog.Logger
	limits FeedLimits
	now    func() time.Time
}

// NewFeedService creates a new feed service. Non-positive limits fall back
// to DefaultFeedLimits.
func NewFeedService(store store.Store, logger *slog.Logger, limits FeedLimits) *FeedService {
	if limits.Default <= 0 {
		limits.Default = DefaultFeedLimits.Default
	}
	if limits.Max <= 0 {
		limits.Max = DefaultFeedLimits.Max
	}
	if limits.Default > limits.Max {
		limits.Default = limits.Max
	}

	return &FeedService{
		store:  store,
		logger: logger,
		limits: limits,
		now:    time.Now,
	}
}

// normalizeLimit maps limit <= 0 to the default and clamps to the maximum.
func (s *FeedService) normalizeLimit(limit int) int {
	if limit <= 0 {
		return s.limits.Default
	}
	if limit > s.limits.Max {
		return s.limits.Max
	}
	return limit
}

// ListCommunityFeed returns unexpired public shares, newest first, with live
// like and comment counts.
func (s *FeedService) ListCommunityFeed(ctx context.Context, limit int) ([]*domain.FeedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items, err := s.store.ListFeed(ctx, s.now().UTC(), s.normalizeLimit(limit))
	if err != nil {
		return nil, fromStore(err, "feed not found")
	}
	return items, nil
}

// GetProfile returns a member's identity with follower, following, book and share counts.
func (s *FeedService) GetProfile(ctx context.Context, memberID int64) (*domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	profile, err := s.store.GetProfile(ctx, memberID)
	if err != nil {
		return nil, fromStore(err, "member not found")
	}
	return profile, nil
}

// ListCategories returns the distinct genres of entries visible in the
// community feed, sorted by name.
func (s *FeedService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := s.store.ListSharedEntries(ctx, s.now().UTC())
	if err != nil {
		return nil, fromStore(err, "categories not found")
	}

	bySlug := make(map[string]*domain.Category)
	for _, e := range entries {
		slug := genre.Slugify(e.Genre)
		if slug == "" {
			continue
		}
		if c, ok := bySlug[slug]; ok {
			c.Count++
			continue
		}
		bySlug[slug] = &domain.Category{Name: genre.DisplayName(e.Genre), Slug: slug, Count: 1}
	}

	categories := make([]domain.Category, 0, len(bySlug))
	for _, c := range bySlug {
		categories = append(categories, *c)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// ListCategory returns the shared entries whose genre matches slug, newest first.
// An unknown slug yields an empty list.
func (s *FeedService) ListCategory(ctx context.Context, slug string) ([]*domain.CategoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := s.store.ListSharedEntries(ctx, s.now().UTC())
	if err != nil {
		return nil, fromStore(err, "category not found")
	}

	matched := []*domain.CategoryEntry{}
	for _, e := range entries {
		if genre.Matches(e.Genre, slug) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}
