package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/store"
	"github.com/google/uuid"
)

type recordingIndexer struct {
	indexed []int64
	deleted []int64
}

func (r *recordingIndexer) IndexBook(_ context.Context, b *domain.CatalogBook) error {
	r.indexed = append(r.indexed, b.ID)
	return nil
}

func (r *recordingIndexer) DeleteBook(_ context.Context, id int64) error {
	r.deleted = append(r.deleted, id)
	return nil
}

func insertTestBook(t *testing.T, s *Store, title string, publicDomain bool) *domain.CatalogBook {
	t.Helper()
	b := &domain.CatalogBook{
		Title:          title,
		Author:         "Author",
		Genre:          "Fiction",
		Year:           1851,
		IsPublicDomain: publicDomain,
		CreatedAt:      time.Now(),
	}
	if err := s.CreateBook(context.Background(), b); err != nil {
		t.Fatalf("CreateBook %s: %v", title, err)
	}
	return b
}

func TestCatalogue_CRUDAndIndexing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	idx := &recordingIndexer{}
	s.SetCatalogIndexer(idx)

	moby := insertTestBook(t, s, "Moby Dick", true)
	insertTestBook(t, s, "Gatsby", false)
	insertTestBook(t, s, "Emma", true)

	all, err := s.ListBooks(ctx)
	if err != nil {
		t.Fatalf("ListBooks: %v", err)
	}
	if len(all) != 3 || all[0].Title != "Emma" {
		t.Errorf("ListBooks: want newest first, got %d items starting %q", len(all), all[0].Title)
	}

	pd, err := s.ListPublicDomainBooks(ctx)
	if err != nil {
		t.Fatalf("ListPublicDomainBooks: %v", err)
	}
	if len(pd) != 2 || pd[0].Title != "Emma" || pd[1].Title != "Moby Dick" {
		t.Errorf("ListPublicDomainBooks: unexpected %+v", pd)
	}

	if err := s.DeleteBook(ctx, moby.ID); err != nil {
		t.Fatalf("DeleteBook: %v", err)
	}
	if err := s.DeleteBook(ctx, moby.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second DeleteBook: expected ErrNotFound, got %v", err)
	}

	if len(idx.indexed) != 3 {
		t.Errorf("indexed %d books, want 3", len(idx.indexed))
	}
	if len(idx.deleted) != 1 || idx.deleted[0] != moby.ID {
		t.Errorf("deleted from index: %v", idx.deleted)
	}

	n, err := s.CountBooks(ctx)
	if err != nil {
		t.Fatalf("CountBooks: %v", err)
	}
	if n != 2 {
		t.Errorf("CountBooks: got %d, want 2", n)
	}
}

func TestRecordDownload_AndStatistics(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	m := insertTestMember(t, s, "downloader")
	book := insertTestBook(t, s, "Pride and Prejudice", true)
	insertTestBook(t, s, "1984", false)

	for range 2 {
		d := &domain.Download{ID: uuid.NewString(), BookID: book.ID, MemberID: &m.ID, DownloadedAt: time.Now()}
		if err := s.RecordDownload(ctx, d); err != nil {
			t.Fatalf("RecordDownload: %v", err)
		}
	}
	if err := s.RecordDownload(ctx, &domain.Download{ID: uuid.NewString(), BookID: book.ID, DownloadedAt: time.Now()}); err != nil {
		t.Fatalf("anonymous RecordDownload: %v", err)
	}

	got, err := s.GetBook(ctx, book.ID)
	if err != nil {
		t.Fatalf("GetBook: %v", err)
	}
	if got.DownloadCount != 3 {
		t.Errorf("DownloadCount: got %d, want 3", got.DownloadCount)
	}

	stats, err := s.GetStatistics(ctx)
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if stats.TotalBooks != 2 || stats.PublicDomainBooks != 1 || stats.TotalDownloads != 3 {
		t.Errorf("unexpected statistics: %+v", stats)
	}

	err = s.RecordDownload(ctx, &domain.Download{ID: uuid.NewString(), BookID: 999, DownloadedAt: time.Now()})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown book, got %v", err)
	}
}

func TestGetStatistics_Empty(t *testing.T) {
	s := newTestStore(t)

	stats, err := s.GetStatistics(context.Background())
	if err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if *stats != (domain.Statistics{}) {
		t.Errorf("expected zero statistics, got %+v", stats)
	}
}

func TestSetBookRead(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	b := insertTestBook(t, s, "Moby Dick", true)

	got, err := s.SetBookRead(ctx, b.ID, true)
	if err != nil {
		t.Fatalf("SetBookRead: %v", err)
	}
	if !got.IsRead {
		t.Error("expected book to be marked read")
	}

	if _, err := s.SetBookRead(ctx, 999, true); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
