// Package main fills a BookCircle database with a small demo community.
//
// It accepts the same flags and environment as the server:
//
//	DATABASE_PATH=/tmp/bookcircle.db go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/do/v2"

	"github.com/bookcircle/bookcircle-server/internal/di"
	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/errors"
	"github.com/bookcircle/bookcircle-server/internal/service"
)

var demoMembers = []service.RegisterRequest{
	{Username: "ada", Email: "ada@example.com", Password: "correct-horse-1", DisplayName: "Ada"},
	{Username: "grace", Email: "grace@example.com", Password: "correct-horse-2", DisplayName: "Grace"},
	{Username: "linus", Email: "linus@example.com", Password: "correct-horse-3", DisplayName: "Linus"},
}

var demoEntries = []service.AddEntryRequest{
	{Title: "Pride and Prejudice", Author: "Jane Austen", Genre: "Romance", Year: 1813, IsPublicDomain: true, Rating: 5},
	{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", Year: 1965, Rating: 4},
	{Title: "The Time Machine", Author: "H. G. Wells", Genre: "Science Fiction", Year: 1895, IsPublicDomain: true, Rating: 4},
}

func main() {
	injector := di.NewContainer()
	if err := di.Bootstrap(injector); err != nil {
		log.Fatalf("Failed to bootstrap: %v", err)
	}
	defer injector.Shutdown()

	members := do.MustInvoke[*service.MemberService](injector)
	library := do.MustInvoke[*service.LibraryService](injector)
	sharing := do.MustInvoke[*service.SharingService](injector)
	follows := do.MustInvoke[*service.FollowService](injector)
	interactions := do.MustInvoke[*service.InteractionService](injector)

	ctx := context.Background()

	created := make([]*domain.Member, 0, len(demoMembers))
	for _, req := range demoMembers {
		m, err := members.Register(ctx, req)
		if errors.Is(err, errors.ErrConflict) {
			fmt.Printf("member %s already exists, skipping seed\n", req.Username)
			return
		}
		if err != nil {
			log.Fatalf("Failed to register %s: %v", req.Username, err)
		}
		fmt.Printf("registered %s (id %d)\n", m.Username, m.ID)
		created = append(created, m)
	}

	// Each member shares one entry; everyone follows the first member.
	var shareIDs []int64
	for i, req := range demoEntries {
		owner := created[i%len(created)]
		req.MemberID = owner.ID

		entry, err := library.AddEntry(ctx, req)
		if err != nil {
			log.Fatalf("Failed to add %q: %v", req.Title, err)
		}

		res, err := sharing.Share(ctx, service.ShareRequest{
			EntryID:        entry.ID,
			ActingMemberID: owner.ID,
			IsPublic:       true,
			AllowDownloads: entry.IsPublicDomain,
		})
		if err != nil {
			log.Fatalf("Failed to share %q: %v", req.Title, err)
		}
		fmt.Printf("shared %q as /s/%s\n", entry.Title, res.Token)
		shareIDs = append(shareIDs, res.ID)
	}

	for _, m := range created[1:] {
		if _, err := follows.Follow(ctx, m.ID, created[0].ID); err != nil {
			log.Fatalf("Failed to follow: %v", err)
		}
		if _, err := interactions.ToggleLike(ctx, shareIDs[0], m.ID); err != nil {
			log.Fatalf("Failed to like: %v", err)
		}
	}

	if _, err := interactions.AddComment(ctx, shareIDs[0], created[1].ID, "One of my favourites."); err != nil {
		log.Fatalf("Failed to comment: %v", err)
	}

	fmt.Printf("seeded %d members, %d shares\n", len(created), len(shareIDs))
}
