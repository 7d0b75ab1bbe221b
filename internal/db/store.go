package db

import (
	"context"
	"database/sql"
	"time"
)

// Store wraps the database connection with typed query helpers
type Store struct {
	db *sql.DB
}

// NewStore creates a store around an open connection
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying database connection
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// User is an identity record
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateUserParams holds the fields for a new user
type CreateUserParams struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
}

// CreateUser inserts a new user
func (s *Store) CreateUser(ctx context.Context, p CreateUserParams) (User, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash) VALUES (?, ?, ?, ?)`,
		p.ID, p.Username, p.Email, p.PasswordHash)
	if err != nil {
		return User{}, err
	}
	return s.GetUserByID(ctx, p.ID)
}

// GetUserByID fetches a user by id
func (s *Store) GetUserByID(ctx context.Context, id string) (User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE id = ?`, id))
}

// GetUserByLogin fetches a user by username or email
func (s *Store) GetUserByLogin(ctx context.Context, login string) (User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE username = ? OR email = ?`,
		login, login))
}

func (s *Store) scanUser(row *sql.Row) (User, error) {
	var u User
	var createdAt int64
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &createdAt); err != nil {
		return User{}, err
	}
	u.CreatedAt = time.Unix(createdAt, 0)
	return u, nil
}

// Prompt is a stored prompt record
type Prompt struct {
	ID          string
	Name        string
	Description string
	Content     string
	CreatedAt   time.Time
}

// CreatePromptParams holds the fields for a new prompt
type CreatePromptParams struct {
	ID          string
	Name        string
	Description string
	Content     string
}

// CreatePrompt inserts a new prompt
func (s *Store) CreatePrompt(ctx context.Context, p CreatePromptParams) (Prompt, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO prompts (id, name, description, content) VALUES (?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Content)
	if err != nil {
		return Prompt{}, err
	}
	return s.GetPrompt(ctx, p.ID)
}

// GetPrompt fetches a prompt by id
func (s *Store) GetPrompt(ctx context.Context, id string) (Prompt, error) {
	return s.scanPrompt(s.db.QueryRowContext(ctx,
		`SELECT id, name, description, content, created_at FROM prompts WHERE id = ?`, id))
}

// ListPrompts returns all prompts, newest first
func (s *Store) ListPrompts(ctx context.Context) ([]Prompt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, content, created_at FROM prompts ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prompts []Prompt
	for rows.Next() {
		var p Prompt
		var createdAt int64
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Content, &createdAt); err != nil {
			return nil, err
		}
		p.CreatedAt = time.Unix(createdAt, 0)
		prompts = append(prompts, p)
	}
	return prompts, rows.Err()
}

// UpdatePromptParams holds the mutable prompt fields. Empty fields keep
// their current value.
type UpdatePromptParams struct {
	ID          string
	Name        string
	Description string
	Content     string
}

// UpdatePrompt patches a prompt in place
func (s *Store) UpdatePrompt(ctx context.Context, p UpdatePromptParams) (Prompt, error) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE prompts SET
			name = COALESCE(NULLIF(?, ''), name),
			description = COALESCE(NULLIF(?, ''), description),
			content = COALESCE(NULLIF(?, ''), content)
		 WHERE id = ?`,
		p.Name, p.Description, p.Content, p.ID)
	if err != nil {
		return Prompt{}, err
	}
	return s.GetPrompt(ctx, p.ID)
}

// DeletePrompt removes a prompt by id
func (s *Store) DeletePrompt(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM prompts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Store) scanPrompt(row *sql.Row) (Prompt, error) {
	var p Prompt
	var createdAt int64
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Content, &createdAt); err != nil {
		return Prompt{}, err
	}
	p.CreatedAt = time.Unix(createdAt, 0)
	return p, nil
}

// SelectPrompt records the user's active prompt, replacing any previous choice
func (s *Store) SelectPrompt(ctx context.Context, userID, promptID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO prompt_selections (user_id, prompt_id, selected_at)
		 VALUES (?, ?, strftime('%s', 'now'))
		 ON CONFLICT(user_id) DO UPDATE SET prompt_id = excluded.prompt_id, selected_at = excluded.selected_at`,
		userID, promptID)
	return err
}

// GetSelectedPrompt returns the user's active prompt, or sql.ErrNoRows
func (s *Store) GetSelectedPrompt(ctx context.Context, userID string) (Prompt, error) {
	return s.scanPrompt(s.db.QueryRowContext(ctx,
		`SELECT p.id, p.name, p.description, p.content, p.created_at
		 FROM prompt_selections s JOIN prompts p ON p.id = s.prompt_id
		 WHERE s.user_id = ?`, userID))
}

// SaveRefreshToken stores the hash of a refresh token with its expiry
func (s *Store) SaveRefreshToken(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (token_hash, user_id, expires_at) VALUES (?, ?, ?)`,
		tokenHash, userID, expiresAt.Unix())
	return err
}

// GetRefreshToken returns the owning user id for a valid (unexpired) token hash
func (s *Store) GetRefreshToken(ctx context.Context, tokenHash string) (string, error) {
	var userID string
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id FROM refresh_tokens WHERE token_hash = ? AND expires_at > strftime('%s', 'now')`,
		tokenHash).Scan(&userID)
	if err != nil {
		return "", err
	}
	return userID, nil
}

// DeleteRefreshToken revokes a single refresh token
func (s *Store) DeleteRefreshToken(ctx context.Context, tokenHash string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE token_hash = ?`, tokenHash)
	return err
}

// PruneExpiredTokens removes refresh tokens past their expiry
func (s *Store) PruneExpiredTokens(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at <= strftime('%s', 'now')`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
