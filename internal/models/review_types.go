package models

import "time"

// Review is the model for the 'reviews' table. New reviews are hidden until
// a staff member approves them.
type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewInput struct {
	ProductID *int64  `json:"product"`
	Name      *string `json:"name" binding:"omitempty,max=100"`
	Rating    *int    `json:"rating" binding:"omitempty,gte=1,lte=5"`
	Comment   *string `json:"comment"`
	Approved  *bool   `json:"approved"`
}

type ReviewFilter struct {
	ProductID *int64
	Approved  *bool
}
