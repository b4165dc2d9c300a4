package models

import "time"

// Category is the model for the 'categories' table.
type Category struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Slug          string        `json:"slug"`
	Description   string        `json:"description"`
	Image         string        `json:"image"`
	SortOrder     int           `json:"sort_order"`
	Subcategories []SubCategory `json:"subcategories"`
}

// SubCategory is the model for the 'subcategories' table.
type SubCategory struct {
	ID          int64  `json:"id"`
	CategoryID  int64  `json:"category"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
	SortOrder   int    `json:"sort_order"`
}

// Collection is the model for the 'collections' table. Products are
// members only; a collection never owns them.
type Collection struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	ProductIDs  []int64   `json:"products"`
	Products    []Product `json:"products_data"`
}

// --- Inputs ---
// Pointer fields are nil when the key was absent from the request, which
// makes every input usable for create as well as merge-patch updates.

type CategoryInput struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	SortOrder   *int    `json:"sort_order"`
}

type SubCategoryInput struct {
	CategoryID  *int64  `json:"category"`
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	SortOrder   *int    `json:"sort_order"`
}

type CollectionInput struct {
	Name        *string  `json:"name"`
	Slug        *string  `json:"slug"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	SortOrder   *int     `json:"sort_order"`
	ProductIDs  *[]int64 `json:"products"`
}

// --- Filters ---

type CategoryFilter struct {
	Slug string
}

type SubCategoryFilter struct {
	CategoryID *int64
}

type CollectionFilter struct {
	Slug string
}
