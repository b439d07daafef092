package domain

import "time"

// Upvote is one ledger entry asserting "this user has upvoted this tool".
// At most one entry exists per (tool, user) pair; the database enforces
// this with a unique constraint, not application logic.
//
// Entries are created and destroyed exclusively by the vote toggle.
type Upvote struct {
	ID        string    `json:"id"`
	ToolID    string    `json:"tool_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// VoteState is what the vote endpoints return: the caller's current vote
// on a tool and the tool's denormalized counter.
type VoteState struct {
	Voted bool `json:"voted"`
	Count int  `json:"count"`
}
