package domain

// Pricing is the pricing tier of a tool.
type Pricing string

// Pricing tiers.
const (
	PricingFree       Pricing = "free"
	PricingFreemium   Pricing = "freemium"
	PricingPaid       Pricing = "paid"
	PricingEnterprise Pricing = "enterprise"
)

// ValidPricing reports whether p is a known pricing tier.
func ValidPricing(p Pricing) bool {
	switch p {
	case PricingFree, PricingFreemium, PricingPaid, PricingEnterprise:
		return true
	}
	return false
}

// Platform is a platform a tool is available on.
type Platform string

// Platforms.
const (
	PlatformWeb     Platform = "web"
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformMac     Platform = "mac"
	PlatformWindows Platform = "windows"
	PlatformLinux   Platform = "linux"
)

// ValidPlatform reports whether p is a known platform tag.
func ValidPlatform(p Platform) bool {
	switch p {
	case PlatformWeb, PlatformIOS, PlatformAndroid, PlatformMac, PlatformWindows, PlatformLinux:
		return true
	}
	return false
}

// ToolStatus is the lifecycle status of a tool listing.
type ToolStatus string

// Tool lifecycle: submissions start as drafts; admins publish them.
const (
	ToolStatusDraft     ToolStatus = "draft"
	ToolStatusPublished ToolStatus = "published"
)

// Tool is a directory listing for a SaaS productivity tool.
//
// UpvoteCount is denormalized from the upvotes ledger for fast reads.
// It is written only by the vote toggle transaction and the admin recount
// repair; after any committed mutation it equals the live ledger row count
// for this tool.
type Tool struct {
	Timestamps
	Name        string     `json:"name"`
	Slug        string     `json:"slug"` // URL-safe, unique
	Tagline     string     `json:"tagline,omitempty"`
	Description string     `json:"description,omitempty"`
	Website     string     `json:"website,omitempty"`
	CategoryID  string     `json:"category_id"`
	Category    *Category  `json:"category,omitempty"` // Populated by joined reads
	Pricing     Pricing    `json:"pricing"`
	Platforms   []Platform `json:"platforms,omitempty"`
	Features    []string   `json:"features,omitempty"`
	Pros        []string   `json:"pros,omitempty"`
	Cons        []string   `json:"cons,omitempty"`
	Status      ToolStatus `json:"status"`
	UpvoteCount int        `json:"upvote_count"`
	SubmittedBy string     `json:"submitted_by,omitempty"` // User who submitted, empty for seeded tools
}

// IsPublished returns true if the tool is visible in public listings.
func (t *Tool) IsPublished() bool {
	return t.Status == ToolStatusPublished
}
