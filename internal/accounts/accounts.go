// Package accounts registers users and resolves bearer-token identities.
package accounts

import (
	"context"
	"strings"
	"time"

	"github.com/01moynul/storefront-golang/internal/apperr"
	"github.com/01moynul/storefront-golang/internal/logger"
	"github.com/01moynul/storefront-golang/internal/models"
	"go.uber.org/zap"
)

type Repository interface {
	InsertUser(ctx context.Context, u *models.User) (int64, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Register creates an active, non-staff user. No token is issued.
func (s *Service) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	fields := map[string]string{}
	if username == "" {
		fields["username"] = "This field is required."
	}
	if len(in.Password) < 8 {
		fields["password"] = "Ensure this field has at least 8 characters."
	}
	if len(fields) > 0 {
		return nil, apperr.FieldErrors(fields)
	}

	taken, err := s.repo.UsernameTaken(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.FieldErrors(map[string]string{"username": "A user with that username already exists."})
	}

	var pw models.Password
	if err := pw.Set(in.Password); err != nil {
		return nil, err
	}

	u := &models.User{
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: pw.Hash,
		IsActive:     true,
		DateJoined:   s.now().UTC(),
	}
	id, err := s.repo.InsertUser(ctx, u)
	if err != nil {
		return nil, err
	}
	u.ID = id

	logger.FromContext(ctx).Info("User registered", zap.Int64("user_id", id), zap.String("username", username))
	return u, nil
}

// Identity loads the user a verified token names. Unknown or inactive
// users are rejected.
func (s *Service) Identity(ctx context.Context, userID int64) (*models.User, error) {
	u, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Unauthorized("User not found")
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, apperr.Unauthorized("User inactive or deleted.")
	}
	return u, nil
}
