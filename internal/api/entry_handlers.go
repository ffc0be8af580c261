package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/service"
)

func (s *Server) registerEntryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "addEntry",
		Method:        http.MethodPost,
		Path:          "/entries",
		Summary:       "Add entry",
		Description:   "Adds a private book entry to a member's collection",
		Tags:          []string{"Entries"},
		DefaultStatus: http.StatusCreated,
	}, s.handleAddEntry)

	huma.Register(s.api, huma.Operation{
		OperationID: "listMemberEntries",
		Method:      http.MethodGet,
		Path:        "/members/{id}/entries",
		Summary:     "List member entries",
		Description: "Returns a member's entries, newest first",
		Tags:        []string{"Entries"},
	}, s.handleListMemberEntries)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateEntry",
		Method:      http.MethodPatch,
		Path:        "/entries/{id}",
		Summary:     "Update entry",
		Description: "Updates read status, notes or rating. Only the owner may update an entry.",
		Tags:        []string{"Entries"},
	}, s.handleUpdateEntry)
}

// === DTOs ===

// AddEntryRequest is the request body for adding an entry.
type AddEntryRequest struct {
	MemberID       int64  `json:"memberId" minimum:"1" doc:"Owner of the entry"`
	Title          string `json:"title" doc:"Book title"`
	Author         string `json:"author" doc:"Book author"`
	Genre          string `json:"genre,omitempty" doc:"Free-form genre"`
	Year           int    `json:"year,omitempty" doc:"Publication year"`
	IsPublicDomain bool   `json:"isPublicDomain,omitempty"`
	Notes          string `json:"notes,omitempty"`
	Rating         int    `json:"rating,omitempty" doc:"0 to 5"`
}

// AddEntryInput wraps the add entry request for Huma.
type AddEntryInput struct {
	Body AddEntryRequest
}

// EntryOutput wraps an entry for Huma.
type EntryOutput struct {
	Body domain.BookEntry
}

// EntryListOutput wraps a list of entries for Huma.
type EntryListOutput struct {
	Body []*domain.BookEntry
}

// UpdateEntryRequest is the request body for updating an entry.
type UpdateEntryRequest struct {
	ActingMemberID int64   `json:"actingMemberId" minimum:"1" doc:"Member performing the update; must own the entry"`
	IsRead         *bool   `json:"isRead,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	Rating         *int    `json:"rating,omitempty" doc:"0 to 5"`
}

// UpdateEntryInput wraps the update request for Huma.
type UpdateEntryInput struct {
	ID   int64 `path:"id" doc:"Entry ID"`
	Body UpdateEntryRequest
}

// === Handlers ===

func (s *Server) handleAddEntry(ctx context.Context, input *AddEntryInput) (*EntryOutput, error) {
	b := input.Body
	entry, err := s.services.Library.AddEntry(ctx, service.AddEntryRequest{
		MemberID:       b.MemberID,
		Title:          b.Title,
		Author:         b.Author,
		Genre:          b.Genre,
		Year:           b.Year,
		IsPublicDomain: b.IsPublicDomain,
		Notes:          b.Notes,
		Rating:         b.Rating,
	})
	if err != nil {
		return nil, err
	}
	return &EntryOutput{Body: *entry}, nil
}

func (s *Server) handleListMemberEntries(ctx context.Context, input *MemberIDInput) (*EntryListOutput, error) {
	entries, err := s.services.Library.ListEntries(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &EntryListOutput{Body: entries}, nil
}

func (s *Server) handleUpdateEntry(ctx context.Context, input *UpdateEntryInput) (*EntryOutput, error) {
	entry, err := s.services.Library.UpdateEntry(ctx, input.ID, service.UpdateEntryRequest{
		ActingMemberID: input.Body.ActingMemberID,
		IsRead:         input.Body.IsRead,
		Notes:          input.Body.Notes,
		Rating:         input.Body.Rating,
	})
	if err != nil {
		return nil, err
	}
	return &EntryOutput{Body: *entry}, nil
}
