package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/productivite/productivite-server/internal/domain"
	"github.com/productivite/productivite-server/internal/store"
)

// reviewColumns is the ordered list of columns selected in review queries.
// The author name is joined from users for display.
// Must match the scan order in scanReview.
const reviewColumns = `r.id, r.created_at, r.updated_at, r.tool_id, r.user_id, r.rating, r.title, r.content, u.name`

// scanReview scans a sql.Row (or sql.Rows via its Scan method) into a domain.Review.
func scanReview(scanner interface{ Scan(dest ...any) error }) (*domain.Review, error) {
	var r domain.Review

	var (
		createdAt  string
		updatedAt  string
		title      sql.NullString
		content    sql.NullString
		authorName sql.NullString
	)

	err := scanner.Scan(
		&r.ID,
		&createdAt,
		&updatedAt,
		&r.ToolID,
		&r.UserID,
		&r.Rating,
		&title,
		&content,
		&authorName,
	)
	if err != nil {
		return nil, err
	}

	// Parse timestamps.
	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	r.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	// Optional strings.
	if title.Valid {
		r.Title = title.String
	}
	if content.Valid {
		r.Content = content.String
	}
	if authorName.Valid {
		r.AuthorName = authorName.String
	}

	return &r, nil
}

// UpsertReview creates the user's review of a tool, or replaces it if one
// exists. One review per (tool, user) pair; posting again is an edit.
// Returns the stored review.
func (s *Store) UpsertReview(ctx context.Context, r *domain.Review) (*domain.Review, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (id, created_at, updated_at, tool_id, user_id, rating, title, content)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (tool_id, user_id) DO UPDATE SET
			updated_at = excluded.updated_at,
			rating = excluded.rating,
			title = excluded.title,
			content = excluded.content`,
		r.ID,
		formatTime(r.CreatedAt),
		formatTime(r.UpdatedAt),
		r.ToolID,
		r.UserID,
		r.Rating,
		nullString(r.Title),
		nullString(r.Content),
	)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	return s.GetReviewByToolAndUser(ctx, r.ToolID, r.UserID)
}

// GetReview retrieves a review by ID.
// Returns store.ErrNotFound if the review does not exist.
func (s *Store) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = ?`, id)

	r, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// GetReviewByToolAndUser retrieves a user's review of a tool.
// Returns store.ErrNotFound if none exists.
func (s *Store) GetReviewByToolAndUser(ctx context.Context, toolID, userID string) (*domain.Review, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.tool_id = ? AND r.user_id = ?`, toolID, userID)

	r, err := scanReview(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListReviewsByTool returns all reviews of a tool, newest first.
func (s *Store) ListReviewsByTool(ctx context.Context, toolID string) ([]*domain.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.tool_id = ?
		ORDER BY r.created_at DESC`, toolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

// ToolRating returns the average rating and review count for a tool.
// The average is 0 when the tool has no reviews.
func (s *Store) ToolRating(ctx context.Context, toolID string) (avg float64, count int, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT coalesce(avg(rating), 0), count(*)
		FROM reviews
		WHERE tool_id = ?`, toolID).Scan(&avg, &count)
	if err != nil {
		return 0, 0, err
	}
	return avg, count, nil
}

// DeleteReview performs a hard delete of a review by ID.
// Returns store.ErrNotFound if the review does not exist.
func (s *Store) DeleteReview(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
