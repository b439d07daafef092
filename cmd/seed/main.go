// Package main provides a tool to seed the database with the reference
// categories and a starter set of published tools.
//
// Seeding is idempotent: categories and tools are matched by slug and
// skipped when they already exist, so the command is safe to rerun.
//
// Usage:
//
//	DATA_PATH=~/Productivite/data go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/productivite/productivite-server/internal/domain"
	"github.com/productivite/productivite-server/internal/id"
	"github.com/productivite/productivite-server/internal/search"
	"github.com/productivite/productivite-server/internal/store"
	"github.com/productivite/productivite-server/internal/store/sqlite"
)

var dataPath = flag.String("data-path", "", "Base path for database and search index")

// seedCategories are the reference categories for the directory.
var seedCategories = []*domain.Category{
	{Name: "Project Management", Slug: "project-management", Description: "Organize and track your projects", Icon: "FolderKanban", Color: "#3B82F6", SortOrder: 1},
	{Name: "Automation", Slug: "automation", Description: "Automate your repetitive tasks", Icon: "Zap", Color: "#F59E0B", SortOrder: 2},
	{Name: "Artificial Intelligence", Slug: "artificial-intelligence", Description: "AI tools to boost your productivity", Icon: "Brain", Color: "#8B5CF6", SortOrder: 3},
	{Name: "Communication", Slug: "communication", Description: "Collaborate effectively with your team", Icon: "MessageSquare", Color: "#10B981", SortOrder: 4},
	{Name: "Notes & Documentation", Slug: "notes-documentation", Description: "Capture and organize your ideas", Icon: "FileText", Color: "#EC4899", SortOrder: 5},
	{Name: "Design", Slug: "design", Description: "Create professional visuals", Icon: "Palette", Color: "#06B6D4", SortOrder: 6},
}

// seedTool holds a starter tool and the slug of its category.
type seedTool struct {
	tool         *domain.Tool
	categorySlug string
}

// seedTools are the starter published tools. Upvote counters start at zero
// so they match the (empty) vote ledger.
var seedTools = []seedTool{
	{
		categorySlug: "project-management",
		tool: &domain.Tool{
			Name:    "Notion",
			Slug:    "notion",
			Tagline: "All-in-one workspace for productivity",
			Description: "Notion is an all-in-one workspace combining notes, wikis, " +
				"databases and project management. Great for teams and individuals " +
				"who want their work in one place.",
			Website:   "https://notion.so",
			Pricing:   domain.PricingFreemium,
			Platforms: []domain.Platform{domain.PlatformWeb, domain.PlatformMac, domain.PlatformWindows, domain.PlatformIOS, domain.PlatformAndroid},
			Features:  []string{"Flexible databases", "Customizable templates", "Real-time collaboration", "Powerful API"},
			Pros:      []string{"Intuitive interface", "Highly customizable", "Generous free plan"},
			Cons:      []string{"Can get slow with lots of content", "Learning curve"},
			Status:    domain.ToolStatusPublished,
		},
	},
	{
		categorySlug: "project-management",
		tool: &domain.Tool{
			Name:    "Linear",
			Slug:    "linear",
			Tagline: "Issue tracking for modern teams",
			Description: "Linear is a project management tool built for product and " +
				"engineering teams. Its fast, minimal interface makes it a startup favorite.",
			Website:   "https://linear.app",
			Pricing:   domain.PricingFreemium,
			Platforms: []domain.Platform{domain.PlatformWeb, domain.PlatformMac, domain.PlatformWindows, domain.PlatformIOS, domain.PlatformAndroid},
			Features:  []string{"Ultra-fast interface", "Cycles and roadmaps", "Git integration", "Keyboard shortcuts"},
			Pros:      []string{"Very fast", "Clean design", "Excellent for developers"},
			Cons:      []string{"Less flexible than other tools", "Pricey for larger teams"},
			Status:    domain.ToolStatusPublished,
		},
	},
	{
		categorySlug: "automation",
		tool: &domain.Tool{
			Name:    "Zapier",
			Slug:    "zapier",
			Tagline: "Connect your favorite apps",
			Description: "Zapier builds automations between more than 6000 applications " +
				"without code. Save time by automating repetitive workflows.",
			Website:   "https://zapier.com",
			Pricing:   domain.PricingFreemium,
			Platforms: []domain.Platform{domain.PlatformWeb},
			Features:  []string{"6000+ integrations", "Multi-step zaps", "Filters and formatting", "Conditional paths"},
			Pros:      []string{"Huge app catalog", "Easy to use", "Reliable"},
			Cons:      []string{"Gets expensive quickly", "Limited for complex flows"},
			Status:    domain.ToolStatusPublished,
		},
	},
	{
		categorySlug: "artificial-intelligence",
		tool: &domain.Tool{
			Name:    "ChatGPT",
			Slug:    "chatgpt",
			Tagline: "Conversational AI assistant",
			Description: "ChatGPT by OpenAI answers questions, generates content, writes " +
				"code and much more. The most popular AI tool in the world.",
			Website:   "https://chat.openai.com",
			Pricing:   domain.PricingFreemium,
			Platforms: []domain.Platform{domain.PlatformWeb, domain.PlatformIOS, domain.PlatformAndroid},
			Features:  []string{"Natural conversation", "Code generation", "Document analysis", "Plugins"},
			Pros:      []string{"Very versatile", "Answer quality", "Frequent updates"},
			Cons:      []string{"Can hallucinate", "Context limits"},
			Status:    domain.ToolStatusPublished,
		},
	},
	{
		categorySlug: "communication",
		tool: &domain.Tool{
			Name:    "Slack",
			Slug:    "slack",
			Tagline: "Modern team communication",
			Description: "Slack is the most popular team messaging platform. Organize " +
				"conversations into channels and plug in all your tools.",
			Website:   "https://slack.com",
			Pricing:   domain.PricingFreemium,
			Platforms: []domain.Platform{domain.PlatformWeb, domain.PlatformMac, domain.PlatformWindows, domain.PlatformIOS, domain.PlatformAndroid, domain.PlatformLinux},
			Features:  []string{"Organized channels", "Audio and video huddles", "2000+ integrations", "Workflow builder"},
			Pros:      []string{"Industry standard", "Rich integrations", "Powerful search"},
			Cons:      []string{"Can be distracting", "Expensive for large teams"},
			Status:    domain.ToolStatusPublished,
		},
	},
	{
		categorySlug: "notes-documentation",
		tool: &domain.Tool{
			Name:    "Obsidian",
			Slug:    "obsidian",
			Tagline: "A second brain in Markdown",
			Description: "Obsidian stores your notes locally as Markdown files. Its " +
				"bidirectional links build a personal knowledge graph.",
			Website:   "https://obsidian.md",
			Pricing:   domain.PricingFreemium,
			Platforms: []domain.Platform{domain.PlatformMac, domain.PlatformWindows, domain.PlatformIOS, domain.PlatformAndroid, domain.PlatformLinux},
			Features:  []string{"Local Markdown", "Bidirectional links", "Graph view", "Community plugins"},
			Pros:      []string{"Data stays local", "Highly customizable", "Free for personal use"},
			Cons:      []string{"Paid sync", "No native collaboration"},
			Status:    domain.ToolStatusPublished,
		},
	},
	{
		categorySlug: "design",
		tool: &domain.Tool{
			Name:    "Figma",
			Slug:    "figma",
			Tagline: "Collaborative design in the browser",
			Description: "Figma is the most popular collaborative design tool. Build " +
				"interfaces, prototypes and design systems right in your browser.",
			Website:   "https://figma.com",
			Pricing:   domain.PricingFreemium,
			Platforms: []domain.Platform{domain.PlatformWeb, domain.PlatformMac, domain.PlatformWindows},
			Features:  []string{"Real-time collaboration", "Prototyping", "Design systems", "Dev mode"},
			Pros:      []string{"Excellent collaboration", "Generous free plan", "Active community"},
			Cons:      []string{"Limited offline mode", "Slows down on large files"},
			Status:    domain.ToolStatusPublished,
		},
	},
}

func main() {
	flag.Parse()

	base := *dataPath
	if base == "" {
		base = os.Getenv("DATA_PATH")
	}
	if base == "" {
		base = os.ExpandEnv("$HOME/Productivite/data")
	}

	fmt.Printf("Opening database at: %s\n", base)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	s, err := sqlite.Open(filepath.Join(base, "productivite.db"), logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	index, err := search.NewSearchIndex(search.Options{
		IndexPath: filepath.Join(base, "search.bleve"),
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to open search index: %v", err)
	}
	defer index.Close()
	s.SetSearchIndexer(index)

	ctx := context.Background()

	// Suppress per-write indexing; the index is rebuilt in one pass below.
	s.SetBulkMode(true)

	categoryIDs := make(map[string]string, len(seedCategories))
	for _, category := range seedCategories {
		existing, err := s.GetCategoryBySlug(ctx, category.Slug)
		if err == nil {
			categoryIDs[category.Slug] = existing.ID
			fmt.Printf("Category exists, skipping: %s\n", category.Name)
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			log.Fatalf("Failed to look up category %s: %v", category.Slug, err)
		}

		category.ID = id.MustGenerate("cat")
		category.InitTimestamps()
		if err := s.CreateCategory(ctx, category); err != nil {
			log.Fatalf("Failed to create category %s: %v", category.Name, err)
		}
		categoryIDs[category.Slug] = category.ID
		fmt.Printf("Created category: %s\n", category.Name)
	}

	for _, seed := range seedTools {
		tool := seed.tool

		if _, err := s.GetToolBySlug(ctx, tool.Slug); err == nil {
			fmt.Printf("Tool exists, skipping: %s\n", tool.Name)
			continue
		} else if !errors.Is(err, store.ErrNotFound) {
			log.Fatalf("Failed to look up tool %s: %v", tool.Slug, err)
		}

		tool.ID = id.MustGenerate("tool")
		tool.CategoryID = categoryIDs[seed.categorySlug]
		tool.InitTimestamps()
		if err := s.CreateTool(ctx, tool); err != nil {
			log.Fatalf("Failed to create tool %s: %v", tool.Name, err)
		}
		fmt.Printf("Created tool: %s\n", tool.Name)
	}

	s.SetBulkMode(false)

	// Rebuild the index so the new tools are searchable immediately.
	tools, err := s.ListAllTools(ctx)
	if err != nil {
		log.Fatalf("Failed to list tools for indexing: %v", err)
	}
	if err := index.SyncAll(tools); err != nil {
		log.Fatalf("Failed to rebuild search index: %v", err)
	}
	indexed, _ := index.DocumentCount()

	fmt.Printf("\nSeeding complete! Indexed %d published tools.\n", indexed)
}
