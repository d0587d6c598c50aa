package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthAggregation(t *testing.T) {
	UpdateComponent("broker", true, "")
	UpdateComponent("metadata", true, "")

	health := GetHealth()
	assert.Equal(t, "healthy", health.Status)

	UpdateComponent("broker", false, "connection refused")
	health = GetHealth()
	assert.Equal(t, "unhealthy", health.Status)
	assert.Contains(t, health.Components["broker"], "connection refused")

	// Recovery flips the aggregate back.
	UpdateComponent("broker", true, "")
	assert.Equal(t, "healthy", GetHealth().Status)
}

func TestHealthHandlerStatusCodes(t *testing.T) {
	UpdateComponent("broker", true, "")
	UpdateComponent("metadata", true, "")

	rec := httptest.NewRecorder()
	HealthHandler()(rec, httptest.NewRequest("GET", "/healthz", nil))
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	UpdateComponent("metadata", false, "db closed")
	rec = httptest.NewRecorder()
	HealthHandler()(rec, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, 503, rec.Code)

	UpdateComponent("metadata", true, "")
}
