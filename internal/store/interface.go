// Package store defines the persistence interface for the BookCircle server.
package store

import (
	"context"
	"time"

	"github.com/bookcircle/bookcircle-server/internal/domain"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error
	Ping(ctx context.Context) error
	SetCatalogIndexer(indexer CatalogIndexer)

	// Members
	CreateMember(ctx context.Context, member *domain.Member) error
	GetMember(ctx context.Context, id int64) (*domain.Member, error)
	GetProfile(ctx context.Context, id int64) (*domain.Profile, error)

	// Personal entries
	CreateEntry(ctx context.Context, entry *domain.BookEntry) error
	GetEntry(ctx context.Context, id int64) (*domain.BookEntry, error)
	ListMemberEntries(ctx context.Context, memberID int64) ([]*domain.BookEntry, error)
	UpdateEntry(ctx context.Context, id int64, update domain.EntryUpdate) (*domain.BookEntry, error)

	// Shares
	// CreateShare inserts the share and flags its entry as shared in one transaction.
	CreateShare(ctx context.Context, share *domain.ShareRecord) error
	GetShare(ctx context.Context, id int64) (*domain.ShareRecord, error)
	GetShareByEntry(ctx context.Context, entryID int64) (*domain.ShareRecord, error)
	GetShareByToken(ctx context.Context, token string) (*domain.ShareRecord, error)

	// Interactions
	// ToggleLike removes the member's like if present, otherwise adds one.
	ToggleLike(ctx context.Context, shareID, memberID int64, at time.Time) (liked bool, err error)
	CreateComment(ctx context.Context, comment *domain.Interaction) error
	ListComments(ctx context.Context, shareID int64) ([]*domain.Comment, error)
	CountInteractions(ctx context.Context, shareID int64, kind domain.InteractionKind) (int, error)

	// Follows
	// CreateFollow reports whether a new edge was inserted.
	CreateFollow(ctx context.Context, edge *domain.FollowEdge) (bool, error)
	DeleteFollow(ctx context.Context, followerID, followeeID int64) (bool, error)
	ListFollowers(ctx context.Context, memberID int64) ([]domain.MemberSummary, error)
	ListFollowing(ctx context.Context, memberID int64) ([]domain.MemberSummary, error)

	// Feed
	ListFeed(ctx context.Context, now time.Time, limit int) ([]*domain.FeedItem, error)
	ListSharedEntries(ctx context.Context, now time.Time) ([]*domain.CategoryEntry, error)

	// Catalogue
	CreateBook(ctx context.Context, book *domain.CatalogBook) error
	GetBook(ctx context.Context, id int64) (*domain.CatalogBook, error)
	ListBooks(ctx context.Context) ([]*domain.CatalogBook, error)
	ListPublicDomainBooks(ctx context.Context) ([]*domain.CatalogBook, error)
	SetBookRead(ctx context.Context, id int64, read bool) (*domain.CatalogBook, error)
	DeleteBook(ctx context.Context, id int64) error
	CountBooks(ctx context.Context) (int, error)
	// RecordDownload inserts the download row and bumps the book's counter in one transaction.
	RecordDownload(ctx context.Context, download *domain.Download) error
	GetStatistics(ctx context.Context) (*domain.Statistics, error)
}
