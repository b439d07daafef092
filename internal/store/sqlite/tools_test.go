package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/productivite/productivite-server/internal/domain"
	"github.com/productivite/productivite-server/internal/store"
)

func TestCreateAndGetTool(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateCategory(ctx, makeTestCategory("cat-1", "Productivity", "productivity")); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	tool := makeTestTool("tool-1", "Notion", "notion", "cat-1")
	tool.Tagline = "All-in-one workspace"
	tool.Description = "Notes, docs, and databases in one place."
	tool.Website = "https://notion.so"
	tool.Platforms = []domain.Platform{domain.PlatformWeb, domain.PlatformMac}
	tool.Features = []string{"Databases", "Templates"}
	tool.Pros = []string{"Flexible"}
	tool.Cons = []string{"Steep learning curve"}

	if err := s.CreateTool(ctx, tool); err != nil {
		t.Fatalf("CreateTool: %v", err)
	}

	got, err := s.GetTool(ctx, "tool-1")
	if err != nil {
		t.Fatalf("GetTool: %v", err)
	}

	if got.Name != tool.Name {
		t.Errorf("Name: got %q, want %q", got.Name, tool.Name)
	}
	if got.Slug != tool.Slug {
		t.Errorf("Slug: got %q, want %q", got.Slug, tool.Slug)
	}
	if got.Tagline != tool.Tagline {
		t.Errorf("Tagline: got %q, want %q", got.Tagline, tool.Tagline)
	}
	if got.Pricing != domain.PricingFreemium {
		t.Errorf("Pricing: got %q", got.Pricing)
	}
	if len(got.Platforms) != 2 || got.Platforms[0] != domain.PlatformWeb {
		t.Errorf("Platforms: got %v", got.Platforms)
	}
	if len(got.Features) != 2 {
		t.Errorf("Features: got %v", got.Features)
	}
	if got.UpvoteCount != 0 {
		t.Errorf("UpvoteCount: got %d, want 0", got.UpvoteCount)
	}
	if got.Category == nil || got.Category.Slug != "productivity" {
		t.Errorf("expected joined category, got %+v", got.Category)
	}
}

func TestCreateTool_DuplicateSlug(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateCategory(ctx, makeTestCategory("cat-1", "Productivity", "productivity")); err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if err := s.CreateTool(ctx, makeTestTool("tool-1", "Notion", "notion", "cat-1")); err != nil {
		t.Fatalf("CreateTool: %v", err)
	}

	err := s.CreateTool(ctx, makeTestTool("tool-2", "Notion Clone", "notion", "cat-1"))
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestGetToolBySlug(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedToolFixture(t, s)

	got, err := s.GetToolBySlug(ctx, "notion")
	if err != nil {
		t.Fatalf("GetToolBySlug: %v", err)
	}
	if got.ID != "tool-1" {
		t.Errorf("ID: got %q", got.ID)
	}

	if _, err := s.GetToolBySlug(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func seedListingFixture(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()

	for _, c := range []*domain.Category{
		makeTestCategory("cat-1", "Productivity", "productivity"),
		makeTestCategory("cat-2", "Design", "design"),
	} {
		if err := s.CreateCategory(ctx, c); err != nil {
			t.Fatalf("CreateCategory: %v", err)
		}
	}

	// The draft's submitter must exist; submitted_by references users(id).
	if err := s.CreateUser(ctx, makeTestUser("user-9", "submitter@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	notion := makeTestTool("tool-1", "Notion", "notion", "cat-1")
	notion.UpvoteCount = 342
	notion.Platforms = []domain.Platform{domain.PlatformWeb}

	figma := makeTestTool("tool-2", "Figma", "figma", "cat-2")
	figma.UpvoteCount = 512
	figma.Pricing = domain.PricingPaid

	draft := makeTestTool("tool-3", "Stealth Tool", "stealth-tool", "cat-1")
	draft.Status = domain.ToolStatusDraft
	draft.SubmittedBy = "user-9"

	for _, tool := range []*domain.Tool{notion, figma, draft} {
		if err := s.CreateTool(ctx, tool); err != nil {
			t.Fatalf("CreateTool %s: %v", tool.Slug, err)
		}
	}
}

func TestListTools_DefaultOrderAndVisibility(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedListingFixture(t, s)

	result, err := s.ListTools(ctx, store.ToolFilter{}, store.DefaultPaginationParams())
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}

	// Drafts are excluded; published tools come back by upvotes descending.
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 published tools, got %d", len(result.Items))
	}
	if result.Items[0].Slug != "figma" || result.Items[1].Slug != "notion" {
		t.Errorf("wrong order: %s, %s", result.Items[0].Slug, result.Items[1].Slug)
	}
	if result.Total != 2 {
		t.Errorf("Total: got %d, want 2", result.Total)
	}
}

func TestListTools_Filters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedListingFixture(t, s)

	// By category slug.
	result, err := s.ListTools(ctx, store.ToolFilter{CategorySlug: "design"}, store.DefaultPaginationParams())
	if err != nil {
		t.Fatalf("ListTools by category: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].Slug != "figma" {
		t.Errorf("category filter: got %v", result.Items)
	}

	// By pricing.
	result, err = s.ListTools(ctx, store.ToolFilter{Pricing: domain.PricingPaid}, store.DefaultPaginationParams())
	if err != nil {
		t.Fatalf("ListTools by pricing: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].Slug != "figma" {
		t.Errorf("pricing filter: got %v", result.Items)
	}

	// By platform.
	result, err = s.ListTools(ctx, store.ToolFilter{Platform: domain.PlatformWeb}, store.DefaultPaginationParams())
	if err != nil {
		t.Fatalf("ListTools by platform: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].Slug != "notion" {
		t.Errorf("platform filter: got %v", result.Items)
	}

	// Drafts by submitter, for the "my submissions" view.
	result, err = s.ListTools(ctx, store.ToolFilter{Status: domain.ToolStatusDraft, SubmittedBy: "user-9"}, store.DefaultPaginationParams())
	if err != nil {
		t.Fatalf("ListTools by submitter: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].Slug != "stealth-tool" {
		t.Errorf("submitter filter: got %v", result.Items)
	}
}

func TestListTools_Pagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedListingFixture(t, s)

	params := store.PaginationParams{Page: 1, PerPage: 1}
	result, err := s.ListTools(ctx, store.ToolFilter{}, params)
	if err != nil {
		t.Fatalf("ListTools page 1: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].Slug != "figma" {
		t.Errorf("page 1: got %v", result.Items)
	}
	if !result.HasMore || result.TotalPages != 2 {
		t.Errorf("page metadata: %+v", result)
	}

	params.Page = 2
	result, err = s.ListTools(ctx, store.ToolFilter{}, params)
	if err != nil {
		t.Fatalf("ListTools page 2: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].Slug != "notion" {
		t.Errorf("page 2: got %v", result.Items)
	}
	if result.HasMore {
		t.Error("expected HasMore=false on last page")
	}
}

func TestListTools_SortOrders(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedListingFixture(t, s)

	result, err := s.ListTools(ctx, store.ToolFilter{Sort: store.ToolSortName}, store.DefaultPaginationParams())
	if err != nil {
		t.Fatalf("ListTools by name: %v", err)
	}
	if result.Items[0].Slug != "figma" || result.Items[1].Slug != "notion" {
		t.Errorf("name sort: %s, %s", result.Items[0].Slug, result.Items[1].Slug)
	}
}

func TestUpdateTool_PreservesCounter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	toolID, userID := seedToolFixture(t, s)

	if _, err := s.ToggleUpvote(ctx, toolID, userID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	tool, err := s.GetTool(ctx, toolID)
	if err != nil {
		t.Fatalf("GetTool: %v", err)
	}
	tool.Tagline = "Updated tagline"
	tool.UpvoteCount = 9999 // must be ignored by UpdateTool
	tool.Touch()
	if err := s.UpdateTool(ctx, tool); err != nil {
		t.Fatalf("UpdateTool: %v", err)
	}

	got, err := s.GetTool(ctx, toolID)
	if err != nil {
		t.Fatalf("GetTool after update: %v", err)
	}
	if got.Tagline != "Updated tagline" {
		t.Errorf("Tagline: got %q", got.Tagline)
	}
	if got.UpvoteCount != 1 {
		t.Errorf("UpvoteCount must stay ledger-derived: got %d, want 1", got.UpvoteCount)
	}
}

func TestUpdateTool_NotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedToolFixture(t, s)

	missing := makeTestTool("tool-missing", "Ghost", "ghost", "cat-1")
	if err := s.UpdateTool(ctx, missing); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTool(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	toolID, _ := seedToolFixture(t, s)

	if err := s.DeleteTool(ctx, toolID); err != nil {
		t.Fatalf("DeleteTool: %v", err)
	}
	if _, err := s.GetTool(ctx, toolID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeleteTool(ctx, toolID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestListAllTools_IncludesDrafts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedListingFixture(t, s)

	tools, err := s.ListAllTools(ctx)
	if err != nil {
		t.Fatalf("ListAllTools: %v", err)
	}
	if len(tools) != 3 {
		t.Errorf("expected 3 tools including draft, got %d", len(tools))
	}
}
