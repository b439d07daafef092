package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/productivite/productivite-server/internal/domain"
	"github.com/productivite/productivite-server/internal/store"
)

// toolColumns is the ordered list of columns selected in tool queries.
// Must match the scan order in scanTool.
const toolColumns = `id, created_at, updated_at, name, slug, tagline, description, website,
	category_id, pricing, platforms, features, pros, cons, status, upvote_count, submitted_by`

// scanTool scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tool.
func scanTool(scanner interface{ Scan(dest ...any) error }) (*domain.Tool, error) {
	var t domain.Tool

	var (
		createdAt   string
		updatedAt   string
		tagline     sql.NullString
		description sql.NullString
		website     sql.NullString
		platforms   sql.NullString
		features    sql.NullString
		pros        sql.NullString
		cons        sql.NullString
		submittedBy sql.NullString
	)

	err := scanner.Scan(
		&t.ID,
		&createdAt,
		&updatedAt,
		&t.Name,
		&t.Slug,
		&tagline,
		&description,
		&website,
		&t.CategoryID,
		&t.Pricing,
		&platforms,
		&features,
		&pros,
		&cons,
		&t.Status,
		&t.UpvoteCount,
		&submittedBy,
	)
	if err != nil {
		return nil, err
	}

	// Parse timestamps.
	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	// Optional strings.
	if tagline.Valid {
		t.Tagline = tagline.String
	}
	if description.Valid {
		t.Description = description.String
	}
	if website.Valid {
		t.Website = website.String
	}
	if submittedBy.Valid {
		t.SubmittedBy = submittedBy.String
	}

	// JSON-encoded lists.
	t.Platforms, err = unmarshalList[domain.Platform](platforms)
	if err != nil {
		return nil, err
	}
	t.Features, err = unmarshalList[string](features)
	if err != nil {
		return nil, err
	}
	t.Pros, err = unmarshalList[string](pros)
	if err != nil {
		return nil, err
	}
	t.Cons, err = unmarshalList[string](cons)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// toolInsertArgs builds the ordered argument list shared by insert and update.
func toolInsertArgs(t *domain.Tool) ([]any, error) {
	platforms, err := marshalList(t.Platforms)
	if err != nil {
		return nil, err
	}
	features, err := marshalList[string](t.Features)
	if err != nil {
		return nil, err
	}
	pros, err := marshalList[string](t.Pros)
	if err != nil {
		return nil, err
	}
	cons, err := marshalList[string](t.Cons)
	if err != nil {
		return nil, err
	}

	return []any{
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
		t.Name,
		t.Slug,
		nullString(t.Tagline),
		nullString(t.Description),
		nullString(t.Website),
		t.CategoryID,
		t.Pricing,
		platforms,
		features,
		pros,
		cons,
		t.Status,
		t.UpvoteCount,
		nullString(t.SubmittedBy),
	}, nil
}

// CreateTool inserts a new tool into the database.
// Returns store.ErrAlreadyExists if the tool ID or slug already exists.
func (s *Store) CreateTool(ctx context.Context, t *domain.Tool) error {
	args, err := toolInsertArgs(t)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tools (
			id, created_at, updated_at, name, slug, tagline, description, website,
			category_id, pricing, platforms, features, pros, cons, status, upvote_count, submitted_by
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		append([]any{t.ID}, args...)...,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	s.indexTool(t)
	return nil
}

// GetTool retrieves a tool by ID.
// Returns store.ErrNotFound if the tool does not exist.
func (s *Store) GetTool(ctx context.Context, id string) (*domain.Tool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+toolColumns+` FROM tools WHERE id = ?`, id)

	t, err := scanTool(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.attachCategory(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// GetToolBySlug retrieves a tool by slug.
// Returns store.ErrNotFound if the tool does not exist.
func (s *Store) GetToolBySlug(ctx context.Context, slug string) (*domain.Tool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+toolColumns+` FROM tools WHERE slug = ?`, slug)

	t, err := scanTool(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.attachCategory(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// attachCategory populates t.Category from the categories table.
func (s *Store) attachCategory(ctx context.Context, t *domain.Tool) error {
	c, err := s.GetCategory(ctx, t.CategoryID)
	if err == store.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	t.Category = c
	return nil
}

// ListTools returns a filtered, sorted page of tools.
// With an empty filter it returns published tools by upvote count descending.
func (s *Store) ListTools(ctx context.Context, filter store.ToolFilter, params store.PaginationParams) (store.PaginatedResult[*domain.Tool], error) {
	params.Validate()

	var zero store.PaginatedResult[*domain.Tool]

	where, args := buildToolFilter(filter)

	// Total count for page metadata.
	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM tools t `+where, args...).Scan(&total)
	if err != nil {
		return zero, fmt.Errorf("count tools: %w", err)
	}

	query := `SELECT ` + toolColumns + ` FROM tools t ` + where +
		` ORDER BY ` + toolOrderClause(filter.Sort) + ` LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, query, append(args, params.PerPage, params.Offset())...)
	if err != nil {
		return zero, fmt.Errorf("query tools: %w", err)
	}
	defer rows.Close()

	var tools []*domain.Tool
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return zero, err
		}
		tools = append(tools, t)
	}
	if err := rows.Err(); err != nil {
		return zero, err
	}

	for _, t := range tools {
		if err := s.attachCategory(ctx, t); err != nil {
			return zero, err
		}
	}

	return store.NewPaginatedResult(tools, params, total), nil
}

// buildToolFilter renders a WHERE clause and its arguments for a filter.
func buildToolFilter(filter store.ToolFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Status != "" {
		conds = append(conds, "t.status = ?")
		args = append(args, filter.Status)
	} else {
		conds = append(conds, "t.status = ?")
		args = append(args, domain.ToolStatusPublished)
	}
	if filter.CategorySlug != "" {
		conds = append(conds, "t.category_id IN (SELECT id FROM categories WHERE slug = ?)")
		args = append(args, filter.CategorySlug)
	}
	if filter.Pricing != "" {
		conds = append(conds, "t.pricing = ?")
		args = append(args, filter.Pricing)
	}
	if filter.Platform != "" {
		// Platforms are stored as a JSON array of quoted tags.
		conds = append(conds, "t.platforms LIKE ?")
		args = append(args, `%"`+string(filter.Platform)+`"%`)
	}
	if filter.SubmittedBy != "" {
		conds = append(conds, "t.submitted_by = ?")
		args = append(args, filter.SubmittedBy)
	}
	if filter.Search != "" {
		conds = append(conds, "(t.name LIKE ? COLLATE NOCASE OR t.tagline LIKE ? COLLATE NOCASE)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

// toolOrderClause maps a sort selector to an ORDER BY expression.
func toolOrderClause(sort store.ToolSort) string {
	switch sort {
	case store.ToolSortNewest:
		return "t.created_at DESC"
	case store.ToolSortName:
		return "t.name COLLATE NOCASE ASC"
	default:
		return "t.upvote_count DESC, t.created_at DESC"
	}
}

// ListAllTools returns every tool regardless of status, for index rebuilds
// and the admin surface.
func (s *Store) ListAllTools(ctx context.Context) ([]*domain.Tool, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+toolColumns+` FROM tools ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tools []*domain.Tool
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, t := range tools {
		if err := s.attachCategory(ctx, t); err != nil {
			return nil, err
		}
	}
	return tools, nil
}

// UpdateTool performs a full row update on an existing tool.
// The upvote_count column is deliberately NOT written here; it belongs to
// the vote toggle and recount paths.
// Returns store.ErrNotFound if the tool does not exist.
func (s *Store) UpdateTool(ctx context.Context, t *domain.Tool) error {
	platforms, err := marshalList(t.Platforms)
	if err != nil {
		return err
	}
	features, err := marshalList[string](t.Features)
	if err != nil {
		return err
	}
	pros, err := marshalList[string](t.Pros)
	if err != nil {
		return err
	}
	cons, err := marshalList[string](t.Cons)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE tools SET
			created_at = ?,
			updated_at = ?,
			name = ?,
			slug = ?,
			tagline = ?,
			description = ?,
			website = ?,
			category_id = ?,
			pricing = ?,
			platforms = ?,
			features = ?,
			pros = ?,
			cons = ?,
			status = ?,
			submitted_by = ?
		WHERE id = ?`,
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
		t.Name,
		t.Slug,
		nullString(t.Tagline),
		nullString(t.Description),
		nullString(t.Website),
		t.CategoryID,
		t.Pricing,
		platforms,
		features,
		pros,
		cons,
		t.Status,
		nullString(t.SubmittedBy),
		t.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}

	s.indexTool(t)
	return nil
}

// DeleteTool performs a hard delete of a tool by ID.
// Upvotes and reviews cascade.
// Returns store.ErrNotFound if the tool does not exist.
func (s *Store) DeleteTool(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM tools WHERE id = ?`, id)
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

	if !s.IsBulkMode() {
		if err := s.indexer.DeleteTool(id); err != nil {
			s.logger.Warn("failed to remove tool from search index", "tool_id", id, "error", err)
		}
	}
	return nil
}

// indexTool pushes a tool write to the search indexer unless in bulk mode.
// Index failures are logged, not returned; the database is the source of
// truth and the index can always be resynced.
func (s *Store) indexTool(t *domain.Tool) {
	if s.IsBulkMode() {
		return
	}
	if err := s.indexer.IndexTool(t); err != nil {
		s.logger.Warn("failed to index tool", "tool_id", t.ID, "error", err)
	}
}
