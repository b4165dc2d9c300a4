package memstore

import (
	"context"
	"sort"

	"github.com/01moynul/storefront-golang/internal/apperr"
	"github.com/01moynul/storefront-golang/internal/models"
)

func (s *Store) ListReviews(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Review{}
	for _, r := range s.st.reviews {
		if filter.ProductID != nil && r.ProductID != *filter.ProductID {
			continue
		}
		if filter.Approved != nil && r.Approved != *filter.Approved {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) GetReview(ctx context.Context, id int64) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.st.reviews[id]
	if !ok {
		return nil, apperr.NotFound("review")
	}
	return &r, nil
}

func (s *Store) InsertReview(ctx context.Context, r *models.Review) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.st.products[r.ProductID]; !ok {
		return 0, missingReference()
	}
	row := *r
	row.ID = s.nextID("reviews")
	s.st.reviews[row.ID] = row
	return row.ID, nil
}

func (s *Store) UpdateReview(ctx context.Context, r *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.st.reviews[r.ID]
	if !ok {
		return apperr.NotFound("review")
	}
	if _, ok := s.st.products[r.ProductID]; !ok {
		return missingReference()
	}
	row := *r
	row.CreatedAt = existing.CreatedAt
	s.st.reviews[row.ID] = row
	return nil
}

func (s *Store) DeleteReview(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.st.reviews[id]; !ok {
		return apperr.NotFound("review")
	}
	delete(s.st.reviews, id)
	return nil
}

func (s *Store) ProductExists(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.st.products[id]
	return ok, nil
}
