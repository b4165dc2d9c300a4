package memstore

import (
	"context"

	"github.com/01moynul/storefront-golang/internal/apperr"
	"github.com/01moynul/storefront-golang/internal/models"
)

func (s *Store) InsertUser(ctx context.Context, u *models.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.st.users {
		if other.Username == u.Username {
			return 0, duplicate("user", "username")
		}
	}
	row := *u
	row.ID = s.nextID("users")
	s.st.users[row.ID] = row
	return row.ID, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.st.users[id]
	if !ok {
		return nil, apperr.NotFound("user")
	}
	return &u, nil
}

func (s *Store) UsernameTaken(ctx context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.st.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// AddUser stores u as is and returns it with its new id.
func (s *Store) AddUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.nextID("users")
	s.st.users[u.ID] = u
	return u
}
