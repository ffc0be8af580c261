package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck_Success(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)

	health := decode[HealthResponse](t, resp)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "healthy", health.Components["database"].Status)
	assert.Equal(t, "healthy", health.Components["search"].Status)
}

func TestHealthCheck_WithoutSearch(t *testing.T) {
	ts := setupTestServer(t)
	ts.services.Search = nil

	health := decode[HealthResponse](t, ts.api.Get("/health"))
	assert.Equal(t, "degraded", health.Status)
}
