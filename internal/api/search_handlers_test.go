package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/productivite/productivite-server/internal/domain"
	"github.com/productivite/productivite-server/internal/search"
)

func TestSearch_FindsPublishedTools(t *testing.T) {
	ts := setupTestServer(t)
	ts.seedCategory(t, "cat-1", "Productivity", "productivity")
	ts.seedTool(t, "tool-1", "Notion", "notion", "cat-1", domain.ToolStatusPublished)
	ts.seedTool(t, "tool-2", "Linear", "linear", "cat-1", domain.ToolStatusPublished)

	resp := ts.api.Get("/api/v1/search?q=notion")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[search.SearchResult]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Hits, 1)
	assert.Equal(t, "tool-1", envelope.Data.Hits[0].ID)
	assert.Equal(t, "notion", envelope.Data.Hits[0].Slug)
	assert.EqualValues(t, 1, envelope.Data.Total)
}

func TestSearch_ExcludesDrafts(t *testing.T) {
	ts := setupTestServer(t)
	ts.seedCategory(t, "cat-1", "Productivity", "productivity")
	ts.seedTool(t, "tool-1", "Notion", "notion", "cat-1", domain.ToolStatusDraft)

	resp := ts.api.Get("/api/v1/search?q=notion")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[search.SearchResult]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data.Hits)
}

func TestSearch_FilterAndSort(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerUser(t, "ada@example.com", "Ada")
	ts.seedCategory(t, "cat-1", "Productivity", "productivity")
	ts.seedCategory(t, "cat-2", "Design", "design")
	ts.seedTool(t, "tool-1", "Notion", "notion", "cat-1", domain.ToolStatusPublished)
	ts.seedTool(t, "tool-2", "Figma", "figma", "cat-2", domain.ToolStatusPublished)

	// An upvote bumps Figma ahead when sorting by upvotes.
	resp := ts.api.Post("/api/v1/vote", bearer(token), map[string]any{
		"tool_id": "tool-2",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/search?sort=upvotes")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[search.SearchResult]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Hits, 2)
	assert.Equal(t, "figma", envelope.Data.Hits[0].Slug)
	assert.Equal(t, 1, envelope.Data.Hits[0].UpvoteCount)

	// Category filter narrows the result set.
	resp = ts.api.Get("/api/v1/search?category=design")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Hits, 1)
	assert.Equal(t, "figma", envelope.Data.Hits[0].Slug)
}

func TestSearch_InvalidPricing(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/search?pricing=shareware")
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION", envelope.Code)
}
