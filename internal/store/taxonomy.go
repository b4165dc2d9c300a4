package store

import (
	"context"
	"database/sql"

	"github.com/01moynul/storefront-golang/internal/models"
)

// --- Categories ---

func (s *Store) ListCategories(ctx context.Context, filter models.CategoryFilter) ([]models.Category, error) {
	query := "SELECT id, name, slug, description, image, sort_order FROM categories"
	var args []any
	if filter.Slug != "" {
		query += " WHERE slug = ?"
		args = append(args, filter.Slug)
	}
	query += " ORDER BY sort_order ASC, name ASC"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Image, &c.SortOrder); err != nil {
			return nil, err
		}
		c.Subcategories = []models.SubCategory{}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachSubcategories(ctx, categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// attachSubcategories loads the subcategories of every category in one query.
func (s *Store) attachSubcategories(ctx context.Context, categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}
	index := make(map[int64]*models.Category, len(categories))
	ids := make([]int64, len(categories))
	for i := range categories {
		index[categories[i].ID] = &categories[i]
		ids[i] = categories[i].ID
	}

	query := subcategorySelect + " WHERE category_id IN (" + placeholders(len(ids)) + ") ORDER BY sort_order ASC, name ASC"
	subs, err := s.querySubCategories(ctx, query, int64Args(ids)...)
	if err != nil {
		return err
	}
	for _, sc := range subs {
		parent := index[sc.CategoryID]
		parent.Subcategories = append(parent.Subcategories, sc)
	}
	return nil
}

func (s *Store) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, name, slug, description, image, sort_order FROM categories WHERE id = ?", id,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Image, &c.SortOrder)
	if err != nil {
		return nil, notFound(err, "category")
	}
	c.Subcategories = []models.SubCategory{}

	categories := []models.Category{c}
	if err := s.attachSubcategories(ctx, categories); err != nil {
		return nil, err
	}
	return &categories[0], nil
}

func (s *Store) InsertCategory(ctx context.Context, c *models.Category) (int64, error) {
	res, err := s.DB.ExecContext(ctx,
		"INSERT INTO categories (name, slug, description, image, sort_order) VALUES (?, ?, ?, ?, ?)",
		c.Name, c.Slug, c.Description, c.Image, c.SortOrder)
	if err != nil {
		return 0, classifyWrite(err, "category", "slug")
	}
	return res.LastInsertId()
}

func (s *Store) UpdateCategory(ctx context.Context, c *models.Category) error {
	res, err := s.DB.ExecContext(ctx,
		"UPDATE categories SET name = ?, slug = ?, description = ?, image = ?, sort_order = ? WHERE id = ?",
		c.Name, c.Slug, c.Description, c.Image, c.SortOrder, c.ID)
	if err != nil {
		return classifyWrite(err, "category", "slug")
	}
	return expectAffected(res, "category")
}

func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return err
	}
	return expectAffected(res, "category")
}

// --- Subcategories ---

const subcategorySelect = "SELECT id, category_id, name, slug, description, image, sort_order FROM subcategories"

func (s *Store) querySubCategories(ctx context.Context, query string, args ...any) ([]models.SubCategory, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []models.SubCategory{}
	for rows.Next() {
		var sc models.SubCategory
		if err := rows.Scan(&sc.ID, &sc.CategoryID, &sc.Name, &sc.Slug, &sc.Description, &sc.Image, &sc.SortOrder); err != nil {
			return nil, err
		}
		subs = append(subs, sc)
	}
	return subs, rows.Err()
}

func (s *Store) ListSubCategories(ctx context.Context, filter models.SubCategoryFilter) ([]models.SubCategory, error) {
	query := subcategorySelect
	var args []any
	if filter.CategoryID != nil {
		query += " WHERE category_id = ?"
		args = append(args, *filter.CategoryID)
	}
	return s.querySubCategories(ctx, query+" ORDER BY sort_order ASC, name ASC", args...)
}

func (s *Store) GetSubCategory(ctx context.Context, id int64) (*models.SubCategory, error) {
	var sc models.SubCategory
	err := s.DB.QueryRowContext(ctx, subcategorySelect+" WHERE id = ?", id).
		Scan(&sc.ID, &sc.CategoryID, &sc.Name, &sc.Slug, &sc.Description, &sc.Image, &sc.SortOrder)
	if err != nil {
		return nil, notFound(err, "subcategory")
	}
	return &sc, nil
}

func (s *Store) InsertSubCategory(ctx context.Context, sc *models.SubCategory) (int64, error) {
	res, err := s.DB.ExecContext(ctx,
		"INSERT INTO subcategories (category_id, name, slug, description, image, sort_order) VALUES (?, ?, ?, ?, ?, ?)",
		sc.CategoryID, sc.Name, sc.Slug, sc.Description, sc.Image, sc.SortOrder)
	if err != nil {
		return 0, classifyWrite(err, "subcategory", "slug")
	}
	return res.LastInsertId()
}

func (s *Store) UpdateSubCategory(ctx context.Context, sc *models.SubCategory) error {
	res, err := s.DB.ExecContext(ctx,
		"UPDATE subcategories SET category_id = ?, name = ?, slug = ?, description = ?, image = ?, sort_order = ? WHERE id = ?",
		sc.CategoryID, sc.Name, sc.Slug, sc.Description, sc.Image, sc.SortOrder, sc.ID)
	if err != nil {
		return classifyWrite(err, "subcategory", "slug")
	}
	return expectAffected(res, "subcategory")
}

func (s *Store) DeleteSubCategory(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM subcategories WHERE id = ?", id)
	if err != nil {
		return err
	}
	return expectAffected(res, "subcategory")
}

// --- Collections ---

const collectionSelect = "SELECT id, name, slug, description, image, sort_order, created_at, updated_at FROM collections"

func (s *Store) ListCollections(ctx context.Context, filter models.CollectionFilter) ([]models.Collection, error) {
	query := collectionSelect
	var args []any
	if filter.Slug != "" {
		query += " WHERE slug = ?"
		args = append(args, filter.Slug)
	}
	query += " ORDER BY sort_order ASC, name ASC"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	collections := []models.Collection{}
	for rows.Next() {
		var c models.Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Image, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		collections = append(collections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachMembers(ctx, collections); err != nil {
		return nil, err
	}
	return collections, nil
}

func (s *Store) GetCollection(ctx context.Context, id int64) (*models.Collection, error) {
	var c models.Collection
	err := s.DB.QueryRowContext(ctx, collectionSelect+" WHERE id = ?", id).
		Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Image, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "collection")
	}
	collections := []models.Collection{c}
	if err := s.attachMembers(ctx, collections); err != nil {
		return nil, err
	}
	return &collections[0], nil
}

// attachMembers fills ProductIDs and Products for every collection.
func (s *Store) attachMembers(ctx context.Context, collections []models.Collection) error {
	if len(collections) == 0 {
		return nil
	}
	index := make(map[int64]*models.Collection, len(collections))
	ids := make([]int64, len(collections))
	for i := range collections {
		c := &collections[i]
		c.ProductIDs = []int64{}
		c.Products = []models.Product{}
		index[c.ID] = c
		ids[i] = c.ID
	}

	// 1. Membership rows
	rows, err := s.DB.QueryContext(ctx,
		"SELECT collection_id, product_id FROM collection_products WHERE collection_id IN ("+placeholders(len(ids))+") ORDER BY product_id",
		int64Args(ids)...)
	if err != nil {
		return err
	}
	defer rows.Close()

	productIDs := []int64{}
	seen := map[int64]bool{}
	for rows.Next() {
		var collectionID, productID int64
		if err := rows.Scan(&collectionID, &productID); err != nil {
			return err
		}
		index[collectionID].ProductIDs = append(index[collectionID].ProductIDs, productID)
		if !seen[productID] {
			seen[productID] = true
			productIDs = append(productIDs, productID)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(productIDs) == 0 {
		return nil
	}

	// 2. Member products, loaded once
	products, err := s.ListProducts(ctx, models.ProductFilter{IDs: productIDs})
	if err != nil {
		return err
	}
	byID := make(map[int64]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for i := range collections {
		c := &collections[i]
		for _, pid := range c.ProductIDs {
			if p, ok := byID[pid]; ok {
				c.Products = append(c.Products, p)
			}
		}
	}
	return nil
}

func (s *Store) InsertCollection(ctx context.Context, c *models.Collection) (int64, error) {
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO collections (name, slug, description, image, sort_order, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			c.Name, c.Slug, c.Description, c.Image, c.SortOrder, c.CreatedAt, c.UpdatedAt)
		if err != nil {
			return classifyWrite(err, "collection", "slug")
		}
		if id, err = res.LastInsertId(); err != nil {
			return err
		}
		return replaceMembers(ctx, tx, id, c.ProductIDs)
	})
	return id, err
}

func (s *Store) UpdateCollection(ctx context.Context, c *models.Collection, replace bool) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"UPDATE collections SET name = ?, slug = ?, description = ?, image = ?, sort_order = ?, updated_at = ? WHERE id = ?",
			c.Name, c.Slug, c.Description, c.Image, c.SortOrder, c.UpdatedAt, c.ID)
		if err != nil {
			return classifyWrite(err, "collection", "slug")
		}
		if err := expectAffected(res, "collection"); err != nil {
			return err
		}
		if !replace {
			return nil
		}
		return replaceMembers(ctx, tx, c.ID, c.ProductIDs)
	})
}

func replaceMembers(ctx context.Context, q dbtx, collectionID int64, productIDs []int64) error {
	if _, err := q.ExecContext(ctx, "DELETE FROM collection_products WHERE collection_id = ?", collectionID); err != nil {
		return err
	}
	if len(productIDs) == 0 {
		return nil
	}
	rows := make([][]any, len(productIDs))
	for i, pid := range productIDs {
		rows[i] = []any{collectionID, pid}
	}
	query, args := bulkInsert("collection_products", []string{"collection_id", "product_id"}, rows)
	_, err := q.ExecContext(ctx, query, args...)
	return classifyWrite(err, "collection", "products")
}

func (s *Store) DeleteCollection(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM collections WHERE id = ?", id)
	if err != nil {
		return err
	}
	return expectAffected(res, "collection")
}
