package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/productivite/productivite-server/internal/domain"
	"github.com/productivite/productivite-server/internal/store"
)

// sessionColumns is the ordered list of columns selected in session queries.
// Must match the scan order in scanSession.
const sessionColumns = `id, user_id, refresh_token_hash, created_at, expires_at, revoked_at`

// scanSession scans a sql.Row (or sql.Rows via its Scan method) into a domain.Session.
func scanSession(scanner interface{ Scan(dest ...any) error }) (*domain.Session, error) {
	var sess domain.Session

	var (
		createdAt string
		expiresAt string
		revokedAt sql.NullString
	)

	err := scanner.Scan(
		&sess.ID,
		&sess.UserID,
		&sess.RefreshTokenHash,
		&createdAt,
		&expiresAt,
		&revokedAt,
	)
	if err != nil {
		return nil, err
	}

	// Parse timestamps.
	sess.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	sess.ExpiresAt, err = parseTime(expiresAt)
	if err != nil {
		return nil, err
	}
	sess.RevokedAt, err = parseNullableTime(revokedAt)
	if err != nil {
		return nil, err
	}

	return &sess, nil
}

// CreateSession inserts a new session into the database.
// Returns store.ErrAlreadyExists if the session ID already exists.
func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (
			id, user_id, refresh_token_hash, created_at, expires_at, revoked_at
		) VALUES (?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.UserID,
		session.RefreshTokenHash,
		formatTime(session.CreatedAt),
		formatTime(session.ExpiresAt),
		nullTimeString(session.RevokedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetSession retrieves a session by ID.
// Returns store.ErrNotFound if the session does not exist.
func (s *Store) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)

	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// GetSessionByTokenHash retrieves a session by its refresh token hash.
// Returns store.ErrNotFound if no session matches.
func (s *Store) GetSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE refresh_token_hash = ?`, tokenHash)

	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// GetSessionsByUser returns all sessions for a given user ID.
func (s *Store) GetSessionsByUser(ctx context.Context, userID string) ([]*domain.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE user_id = ? ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// RevokeSession marks a session as revoked at the given time.
// Returns store.ErrNotFound if the session does not exist or is already revoked.
func (s *Store) RevokeSession(ctx context.Context, id string, at time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET revoked_at = ?
		WHERE id = ? AND revoked_at IS NULL`,
		formatTime(at), id)
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

// RotateSessionToken swaps the refresh token hash and extends the expiry.
// Returns store.ErrNotFound if the session does not exist or is revoked.
func (s *Store) RotateSessionToken(ctx context.Context, id, newTokenHash string, expiresAt time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET refresh_token_hash = ?, expires_at = ?
		WHERE id = ? AND revoked_at IS NULL`,
		newTokenHash, formatTime(expiresAt), id)
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

// DeleteExpiredSessions deletes all sessions where expires_at is in the past.
// Returns the number of sessions deleted.
func (s *Store) DeleteExpiredSessions(ctx context.Context) (int, error) {
	now := formatTime(time.Now())

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, now)
	if err != nil {
		return 0, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
