package store

import (
	"context"

	"github.com/01moynul/storefront-golang/internal/models"
)

func (s *Store) InsertUser(ctx context.Context, u *models.User) (int64, error) {
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO users (username, email, first_name, last_name, password_hash, is_staff, is_active, date_joined)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.Email, u.FirstName, u.LastName, u.PasswordHash, u.IsStaff, u.IsActive, u.DateJoined)
	if err != nil {
		return 0, classifyWrite(err, "user", "username")
	}
	return res.LastInsertId()
}

// GetUser loads the user with the role flags the auth middleware checks.
func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, username, email, first_name, last_name, password_hash, is_staff, is_active, date_joined
		FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.IsStaff, &u.IsActive, &u.DateJoined)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return &u, nil
}

func (s *Store) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var taken bool
	err := s.DB.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)", username).Scan(&taken)
	return taken, err
}
