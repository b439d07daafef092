package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/productivite/productivite-server/internal/domain"
	"github.com/productivite/productivite-server/internal/id"
	"github.com/productivite/productivite-server/internal/store"
)

// ToggleUpvote flips the caller's vote on a tool and adjusts the
// denormalized counter, all in one transaction. It returns the resulting
// state: whether the user now has a vote, and the committed counter value.
//
// Concurrency: the upvotes UNIQUE(tool_id, user_id) constraint is the
// authority. Two racing toggles for the same pair cannot both win; the
// loser gets store.ErrVoteConflict (safe to retry). Distinct users racing
// on the same tool serialize on SQLite's single writer: transactions
// begin immediate (see Open) and queue on busy_timeout, so both commits
// land and the counter never drifts from the ledger.
func (s *Store) ToggleUpvote(ctx context.Context, toolID, userID string) (*domain.VoteState, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// The tool must exist; voting on drafts is allowed so admins can test.
	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM tools WHERE id = ?`, toolID).Scan(&status)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("probe tool: %w", err)
	}

	// Probe the ledger for an existing vote.
	var voteID string
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM upvotes WHERE tool_id = ? AND user_id = ?`,
		toolID, userID).Scan(&voteID)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("probe upvote: %w", err)
	}
	hasVote := err == nil

	if hasVote {
		if err := s.removeUpvote(ctx, tx, voteID, toolID); err != nil {
			return nil, err
		}
	} else {
		if err := s.insertUpvote(ctx, tx, toolID, userID); err != nil {
			return nil, err
		}
	}

	// Read the counter back inside the transaction so the returned value
	// is exactly what commits.
	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT upvote_count FROM tools WHERE id = ?`, toolID).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("read counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit toggle: %w", err)
	}

	s.reindexToolByID(ctx, toolID)

	return &domain.VoteState{Voted: !hasVote, Count: count}, nil
}

// removeUpvote deletes a ledger row and decrements the counter.
// A zero-row delete means another request removed the vote first.
func (s *Store) removeUpvote(ctx context.Context, tx *sql.Tx, voteID, toolID string) error {
	result, err := tx.ExecContext(ctx,
		`DELETE FROM upvotes WHERE id = ?`, voteID)
	if err != nil {
		return fmt.Errorf("delete upvote: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrVoteConflict
	}

	// max() keeps the counter from underflowing if it was ever repaired
	// to a smaller value mid-flight.
	_, err = tx.ExecContext(ctx,
		`UPDATE tools SET upvote_count = max(upvote_count - 1, 0) WHERE id = ?`, toolID)
	if err != nil {
		return fmt.Errorf("decrement counter: %w", err)
	}
	return nil
}

// insertUpvote adds a ledger row and increments the counter.
// A unique violation means another request inserted the vote first.
func (s *Store) insertUpvote(ctx context.Context, tx *sql.Tx, toolID, userID string) error {
	voteID, err := id.Generate("vote")
	if err != nil {
		return fmt.Errorf("generate vote ID: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO upvotes (id, tool_id, user_id, created_at)
		VALUES (?, ?, ?, ?)`,
		voteID, toolID, userID, formatTime(time.Now()))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrVoteConflict
		}
		return fmt.Errorf("insert upvote: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE tools SET upvote_count = upvote_count + 1 WHERE id = ?`, toolID)
	if err != nil {
		return fmt.Errorf("increment counter: %w", err)
	}
	return nil
}

// UpvoteStatus reports whether the user has voted on the tool and the
// tool's current counter.
// Returns store.ErrNotFound if the tool does not exist.
func (s *Store) UpvoteStatus(ctx context.Context, toolID, userID string) (*domain.VoteState, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT upvote_count FROM tools WHERE id = ?`, toolID).Scan(&count)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var voted bool
	err = s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM upvotes WHERE tool_id = ? AND user_id = ?)`,
		toolID, userID).Scan(&voted)
	if err != nil {
		return nil, err
	}

	return &domain.VoteState{Voted: voted, Count: count}, nil
}

// UpvotedToolIDs returns the IDs of all tools the user has upvoted.
func (s *Store) UpvotedToolIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tool_id FROM upvotes WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var toolIDs []string
	for rows.Next() {
		var toolID string
		if err := rows.Scan(&toolID); err != nil {
			return nil, err
		}
		toolIDs = append(toolIDs, toolID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return toolIDs, nil
}

// RecountToolUpvotes rewrites the denormalized counter from the ledger.
// This is the admin repair path for counters that drifted (which should
// not happen through normal operation). Returns the corrected count.
func (s *Store) RecountToolUpvotes(ctx context.Context, toolID string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT count(*) FROM upvotes WHERE tool_id = ?`, toolID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count upvotes: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE tools SET upvote_count = ? WHERE id = ?`, count, toolID)
	if err != nil {
		return 0, fmt.Errorf("write counter: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, store.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit recount: %w", err)
	}

	s.reindexToolByID(ctx, toolID)

	return count, nil
}

// RecountAllUpvotes repairs the counters of every tool and refreshes the
// search documents of the tools it changed, since upvote count feeds
// ranking. Returns the number of tools whose counter changed.
func (s *Store) RecountAllUpvotes(ctx context.Context) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT id FROM tools
		WHERE upvote_count != (
			SELECT count(*) FROM upvotes WHERE upvotes.tool_id = tools.id
		)`)
	if err != nil {
		return 0, fmt.Errorf("find drifted counters: %w", err)
	}
	defer rows.Close()

	var drifted []string
	for rows.Next() {
		var toolID string
		if err := rows.Scan(&toolID); err != nil {
			return 0, err
		}
		drifted = append(drifted, toolID)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if len(drifted) == 0 {
		return 0, nil
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE tools SET upvote_count = (
			SELECT count(*) FROM upvotes WHERE upvotes.tool_id = tools.id
		)
		WHERE upvote_count != (
			SELECT count(*) FROM upvotes WHERE upvotes.tool_id = tools.id
		)`)
	if err != nil {
		return 0, fmt.Errorf("recount all: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit recount all: %w", err)
	}

	for _, toolID := range drifted {
		s.reindexToolByID(ctx, toolID)
	}

	return len(drifted), nil
}

// reindexToolByID refreshes the search document after a counter change,
// since upvote count feeds search ranking. Best effort.
func (s *Store) reindexToolByID(ctx context.Context, toolID string) {
	if s.IsBulkMode() {
		return
	}
	t, err := s.GetTool(ctx, toolID)
	if err != nil {
		s.logger.Warn("failed to load tool for reindex", "tool_id", toolID, "error", err)
		return
	}
	s.indexTool(t)
}
