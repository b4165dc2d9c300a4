// Package reviews stores product reviews and their moderation flag.
package reviews

import (
	"context"
	"strings"
	"time"

	"github.com/01moynul/storefront-golang/internal/apperr"
	"github.com/01moynul/storefront-golang/internal/logger"
	"github.com/01moynul/storefront-golang/internal/models"
	"go.uber.org/zap"
)

const requiredMsg = "This field is required."

type Repository interface {
	ListReviews(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error)
	GetReview(ctx context.Context, id int64) (*models.Review, error)
	InsertReview(ctx context.Context, r *models.Review) (int64, error)
	UpdateReview(ctx context.Context, r *models.Review) error
	DeleteReview(ctx context.Context, id int64) error
	ProductExists(ctx context.Context, id int64) (bool, error)
}

// Service manages reviews. Product rating and review_count are not
// derived from reviews.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) ListReviews(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
	return s.repo.ListReviews(ctx, filter)
}

func (s *Service) GetReview(ctx context.Context, id int64) (*models.Review, error) {
	return s.repo.GetReview(ctx, id)
}

// CreateReview stores a review, unapproved unless approval is supplied.
func (s *Service) CreateReview(ctx context.Context, in models.ReviewInput) (*models.Review, error) {
	fields := map[string]string{}
	if in.ProductID == nil {
		fields["product"] = requiredMsg
	}
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		fields["name"] = requiredMsg
	}
	if len(fields) > 0 {
		return nil, apperr.FieldErrors(fields)
	}

	r := &models.Review{Rating: 5, CreatedAt: s.now().UTC()}
	if err := s.apply(ctx, r, in); err != nil {
		return nil, err
	}
	id, err := s.repo.InsertReview(ctx, r)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("Review created",
		zap.Int64("review_id", id), zap.Int64("product_id", r.ProductID), zap.Bool("approved", r.Approved))
	return s.repo.GetReview(ctx, id)
}

// UpdateReview merge-patches the review; moderation is an update of approved.
func (s *Service) UpdateReview(ctx context.Context, id int64, in models.ReviewInput) (*models.Review, error) {
	r, err := s.repo.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, apperr.FieldErrors(map[string]string{"name": "This field may not be blank."})
	}
	if err := s.apply(ctx, r, in); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateReview(ctx, r); err != nil {
		return nil, err
	}
	return s.repo.GetReview(ctx, id)
}

func (s *Service) DeleteReview(ctx context.Context, id int64) error {
	if err := s.repo.DeleteReview(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("Review deleted", zap.Int64("review_id", id))
	return nil
}

func (s *Service) apply(ctx context.Context, r *models.Review, in models.ReviewInput) error {
	fields := map[string]string{}
	if in.ProductID != nil {
		ok, err := s.repo.ProductExists(ctx, *in.ProductID)
		if err != nil {
			return err
		}
		if !ok {
			fields["product"] = "Invalid pk - object does not exist."
		}
		r.ProductID = *in.ProductID
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len(name) > 100 {
			fields["name"] = "Ensure this field has no more than 100 characters."
		}
		r.Name = name
	}
	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			fields["rating"] = "Ensure this value is between 1 and 5."
		}
		r.Rating = *in.Rating
	}
	if in.Comment != nil {
		r.Comment = *in.Comment
	}
	if in.Approved != nil {
		r.Approved = *in.Approved
	}
	if len(fields) > 0 {
		return apperr.FieldErrors(fields)
	}
	return nil
}
