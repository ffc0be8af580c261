package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/search"
	"github.com/bookcircle/bookcircle-server/internal/service"
	"github.com/bookcircle/bookcircle-server/internal/store/sqlite"
	"github.com/bookcircle/bookcircle-server/internal/validation"
)

type testServer struct {
	*Server
	api   humatest.TestAPI
	store *sqlite.Store
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	return setupTestServerWithOptions(t, Options{})
}

func setupTestServerWithOptions(t *testing.T, opts Options) *testServer {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	idx, err := search.NewCatalogIndex(logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	st.SetCatalogIndexer(idx)

	v := validation.New()
	services := &Services{
		Sharing:      service.NewSharingService(st, logger),
		Interactions: service.NewInteractionService(st, logger),
		Follows:      service.NewFollowService(st, logger),
		Feed:         service.NewFeedService(st, logger, service.FeedLimits{Default: 50, Max: 200}),
		Members:      service.NewMemberService(st, v, logger),
		Library:      service.NewLibraryService(st, v, logger),
		Catalog:      service.NewCatalogService(st, idx, v, logger),
		Search:       idx,
	}

	srv := NewServer(st, services, opts, logger)
	t.Cleanup(srv.Close)

	return &testServer{
		Server: srv,
		api:    humatest.Wrap(t, srv.api),
		store:  st,
	}
}

var memberSeq int

// createMember inserts a member directly; registration hashing is covered separately.
func (ts *testServer) createMember(t *testing.T, name string) *domain.Member {
	t.Helper()
	memberSeq++
	m := &domain.Member{
		Username:     fmt.Sprintf("%s%d", name, memberSeq),
		Email:        fmt.Sprintf("%s%d@example.com", name, memberSeq),
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, ts.store.CreateMember(context.Background(), m))
	return m
}

func (ts *testServer) createEntry(t *testing.T, memberID int64, title, genre string) int64 {
	t.Helper()
	resp := ts.api.Post("/entries", map[string]any{
		"memberId": memberID,
		"title":    title,
		"author":   "Author of " + title,
		"genre":    genre,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[domain.BookEntry](t, resp).ID
}

func (ts *testServer) share(t *testing.T, entryID, memberID int64) service.ShareResult {
	t.Helper()
	resp := ts.api.Post("/shares", map[string]any{
		"entryId":        entryID,
		"actingMemberId": memberID,
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[service.ShareResult](t, resp)
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &v), resp.Body.String())
	return v
}

type errorBody struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details"`
}

func TestRouteNotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/nope")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	body := decode[errorBody](t, resp)
	assert.Equal(t, "route not found", body.Error)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestSchemaValidation_IsBadRequest(t *testing.T) {
	ts := setupTestServer(t)

	// entryId below its minimum.
	resp := ts.api.Post("/shares", map[string]any{"entryId": 0, "actingMemberId": 1})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	body := decode[errorBody](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.NotEmpty(t, body.Error)
	assert.NotEmpty(t, body.Details)
}

func TestMalformedJSON_IsBadRequest(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/follows", "Content-Type: application/json", strings.NewReader("{not json"))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "VALIDATION", decode[errorBody](t, resp).Code)
}

func TestWriteRateLimit(t *testing.T) {
	ts := setupTestServerWithOptions(t, Options{WriteRPS: 0.001, WriteBurst: 1})

	resp := ts.api.Post("/follows", map[string]any{"followerId": 1, "followeeId": 1})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = ts.api.Post("/follows", map[string]any{"followerId": 1, "followeeId": 1})
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Equal(t, "RATE_LIMITED", decode[errorBody](t, resp).Code)

	// Reads are never limited.
	assert.Equal(t, http.StatusOK, ts.api.Get("/feed").Code)
}
