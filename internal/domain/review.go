package domain

// Review is a user's rating of a tool. One review per (tool, user) pair;
// posting again updates the existing review in place.
type Review struct {
	Timestamps
	ToolID     string `json:"tool_id"`
	UserID     string `json:"user_id"`
	Rating     int    `json:"rating"` // 1-5
	Title      string `json:"title,omitempty"`
	Content    string `json:"content,omitempty"`
	AuthorName string `json:"author_name,omitempty"` // Populated by joined reads
}
