package store

import (
	"context"

	"github.com/01moynul/storefront-golang/internal/models"
)

func (s *Store) ListReviews(ctx context.Context, filter models.ReviewFilter) ([]models.Review, error) {
	query, args := buildReviewQuery(filter)
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.ProductID, &r.Name, &r.Rating, &r.Comment, &r.Approved, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (s *Store) GetReview(ctx context.Context, id int64) (*models.Review, error) {
	var r models.Review
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, product_id, name, rating, comment, approved, created_at FROM reviews WHERE id = ?", id,
	).Scan(&r.ID, &r.ProductID, &r.Name, &r.Rating, &r.Comment, &r.Approved, &r.CreatedAt)
	if err != nil {
		return nil, notFound(err, "review")
	}
	return &r, nil
}

func (s *Store) InsertReview(ctx context.Context, r *models.Review) (int64, error) {
	res, err := s.DB.ExecContext(ctx,
		"INSERT INTO reviews (product_id, name, rating, comment, approved, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		r.ProductID, r.Name, r.Rating, r.Comment, r.Approved, r.CreatedAt)
	if err != nil {
		return 0, classifyWrite(err, "review", "id")
	}
	return res.LastInsertId()
}

func (s *Store) UpdateReview(ctx context.Context, r *models.Review) error {
	res, err := s.DB.ExecContext(ctx,
		"UPDATE reviews SET product_id = ?, name = ?, rating = ?, comment = ?, approved = ? WHERE id = ?",
		r.ProductID, r.Name, r.Rating, r.Comment, r.Approved, r.ID)
	if err != nil {
		return classifyWrite(err, "review", "id")
	}
	return expectAffected(res, "review")
}

func (s *Store) DeleteReview(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM reviews WHERE id = ?", id)
	if err != nil {
		return err
	}
	return expectAffected(res, "review")
}

func (s *Store) ProductExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := s.DB.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM products WHERE id = ?)", id).Scan(&exists)
	return exists, err
}
