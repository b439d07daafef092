package domain

// Category groups tools for browsing. Each tool belongs to exactly one
// category.
type Category struct {
	Timestamps
	Name        string `json:"name"`                  // Display name: "IA & Automation"
	Slug        string `json:"slug"`                  // URL-safe key: "ia-automation", unique
	Description string `json:"description,omitempty"` // Optional short blurb
	Icon        string `json:"icon,omitempty"`        // Icon identifier for the frontend (e.g. "Zap")
	Color       string `json:"color,omitempty"`       // Display color class (e.g. "bg-purple-50")
	SortOrder   int    `json:"sort_order"`            // Manual ordering on the categories page
	ToolCount   int    `json:"tool_count"`            // Published tools in this category (computed on read)
}
