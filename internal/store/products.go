package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/01moynul/storefront-golang/internal/catalog"
	"github.com/01moynul/storefront-golang/internal/models"
)

// productQueries runs the product statements against a pool or a transaction.
type productQueries struct {
	q dbtx
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return productQueries{q: s.DB}.GetProduct(ctx, id)
}

func (s *Store) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	return productQueries{q: s.DB}.listProducts(ctx, filter)
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return err
	}
	return expectAffected(res, "product")
}

func (s *Store) InProductTx(ctx context.Context, fn func(catalog.ProductWriter) error) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return fn(productQueries{q: tx})
	})
}

func (pq productQueries) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	products, err := pq.listProducts(ctx, models.ProductFilter{IDs: []int64{id}})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, notFound(sql.ErrNoRows, "product")
	}
	return &products[0], nil
}

func (pq productQueries) listProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	query, args, ok := buildProductQuery(filter)
	if !ok {
		return []models.Product{}, nil
	}

	rows, err := pq.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := pq.loadChildren(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func scanProduct(rows *sql.Rows) (*models.Product, error) {
	var (
		p               models.Product
		subcategoryID   sql.NullInt64
		features        []byte
		subcategoryName sql.NullString
		subcategorySlug sql.NullString
	)
	err := rows.Scan(
		&p.ID, &p.Name, &p.Slug, &p.CategoryID, &subcategoryID,
		&p.Price, &p.OriginalPrice, &p.DiscountPercentage,
		&p.Description, &p.ShortDescription, &features,
		&p.DeliveryInfo, &p.ReturnsGuarantee, &p.DeliveryCharges,
		&p.InStock, &p.IsBestseller, &p.IsNew, &p.Rating, &p.ReviewCount,
		&p.CreatedAt, &p.UpdatedAt,
		&p.CategoryName, &p.CategorySlug, &subcategoryName, &subcategorySlug,
	)
	if err != nil {
		return nil, err
	}

	if subcategoryID.Valid {
		p.SubCategoryID = &subcategoryID.Int64
	}
	if subcategoryName.Valid {
		p.SubCategoryName = &subcategoryName.String
	}
	if subcategorySlug.Valid {
		p.SubCategorySlug = &subcategorySlug.String
	}
	p.Features = []string{}
	if len(features) > 0 {
		if err := json.Unmarshal(features, &p.Features); err != nil {
			return nil, fmt.Errorf("decode features of product %d: %w", p.ID, err)
		}
	}
	return &p, nil
}

// loadChildren fills the five child collections of products with one query
// per child table.
func (pq productQueries) loadChildren(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	index := make(map[int64]*models.Product, len(products))
	ids := make([]int64, len(products))
	for i := range products {
		p := &products[i]
		p.Images = []models.ProductImage{}
		p.Videos = []models.ProductVideo{}
		p.Colors = []models.ProductColor{}
		p.Sizes = []models.ProductSize{}
		p.Styles = []models.ProductStyle{}
		index[p.ID] = p
		ids[i] = p.ID
	}
	in := " WHERE product_id IN (" + placeholders(len(ids)) + ") ORDER BY id"
	args := int64Args(ids)

	// 1. Images
	err := pq.eachRow(ctx, "SELECT product_id, id, url FROM product_images"+in, args, func(rows *sql.Rows) error {
		var productID int64
		var img models.ProductImage
		if err := rows.Scan(&productID, &img.ID, &img.URL); err != nil {
			return err
		}
		index[productID].Images = append(index[productID].Images, img)
		return nil
	})
	if err != nil {
		return err
	}

	// 2. Videos
	err = pq.eachRow(ctx, "SELECT product_id, id, url FROM product_videos"+in, args, func(rows *sql.Rows) error {
		var productID int64
		var v models.ProductVideo
		if err := rows.Scan(&productID, &v.ID, &v.URL); err != nil {
			return err
		}
		index[productID].Videos = append(index[productID].Videos, v)
		return nil
	})
	if err != nil {
		return err
	}

	// 3. Colors
	err = pq.eachRow(ctx, "SELECT product_id, id, name, image FROM product_colors"+in, args, func(rows *sql.Rows) error {
		var productID int64
		var c models.ProductColor
		if err := rows.Scan(&productID, &c.ID, &c.Name, &c.Image); err != nil {
			return err
		}
		index[productID].Colors = append(index[productID].Colors, c)
		return nil
	})
	if err != nil {
		return err
	}

	// 4. Sizes
	err = pq.eachRow(ctx, "SELECT product_id, id, name FROM product_sizes"+in, args, func(rows *sql.Rows) error {
		var productID int64
		var s models.ProductSize
		if err := rows.Scan(&productID, &s.ID, &s.Name); err != nil {
			return err
		}
		index[productID].Sizes = append(index[productID].Sizes, s)
		return nil
	})
	if err != nil {
		return err
	}

	// 5. Styles
	return pq.eachRow(ctx, "SELECT product_id, id, name, options FROM product_styles"+in, args, func(rows *sql.Rows) error {
		var productID int64
		var (
			st      models.ProductStyle
			options []byte
		)
		if err := rows.Scan(&productID, &st.ID, &st.Name, &options); err != nil {
			return err
		}
		st.Options = []string{}
		if len(options) > 0 {
			if err := json.Unmarshal(options, &st.Options); err != nil {
				return fmt.Errorf("decode options of style %d: %w", st.ID, err)
			}
		}
		index[productID].Styles = append(index[productID].Styles, st)
		return nil
	})
}

func (pq productQueries) eachRow(ctx context.Context, query string, args []any, scan func(*sql.Rows) error) error {
	rows, err := pq.q.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (pq productQueries) ProductSlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var taken bool
	err := pq.q.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM products WHERE slug = ? AND id <> ?)", slug, excludeID).Scan(&taken)
	return taken, err
}

func (pq productQueries) InsertProduct(ctx context.Context, p *models.Product) (int64, error) {
	features, err := json.Marshal(p.Features)
	if err != nil {
		return 0, err
	}
	query := `
		INSERT INTO products (
			name, slug, category_id, subcategory_id, price, original_price,
			discount_percentage, description, short_description, features,
			delivery_info, returns_guarantee, delivery_charges,
			in_stock, is_bestseller, is_new, rating, review_count,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := pq.q.ExecContext(ctx, query,
		p.Name, p.Slug, p.CategoryID, p.SubCategoryID, p.Price, p.OriginalPrice,
		p.DiscountPercentage, p.Description, p.ShortDescription, features,
		p.DeliveryInfo, p.ReturnsGuarantee, p.DeliveryCharges,
		p.InStock, p.IsBestseller, p.IsNew, p.Rating, p.ReviewCount,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return 0, classifyWrite(err, "product", "slug")
	}
	return res.LastInsertId()
}

func (pq productQueries) UpdateProduct(ctx context.Context, p *models.Product) error {
	features, err := json.Marshal(p.Features)
	if err != nil {
		return err
	}
	query := `
		UPDATE products SET
			name = ?, slug = ?, category_id = ?, subcategory_id = ?, price = ?, original_price = ?,
			discount_percentage = ?, description = ?, short_description = ?, features = ?,
			delivery_info = ?, returns_guarantee = ?, delivery_charges = ?,
			in_stock = ?, is_bestseller = ?, is_new = ?, rating = ?, review_count = ?,
			updated_at = ?
		WHERE id = ?`
	res, err := pq.q.ExecContext(ctx, query,
		p.Name, p.Slug, p.CategoryID, p.SubCategoryID, p.Price, p.OriginalPrice,
		p.DiscountPercentage, p.Description, p.ShortDescription, features,
		p.DeliveryInfo, p.ReturnsGuarantee, p.DeliveryCharges,
		p.InStock, p.IsBestseller, p.IsNew, p.Rating, p.ReviewCount,
		p.UpdatedAt, p.ID,
	)
	if err != nil {
		return classifyWrite(err, "product", "slug")
	}
	return expectAffected(res, "product")
}

func (pq productQueries) ReplaceProductImages(ctx context.Context, productID int64, images []models.ProductImage) error {
	rows := make([][]any, len(images))
	for i, img := range images {
		rows[i] = []any{productID, img.URL}
	}
	return pq.replaceChildren(ctx, "product_images", productID, []string{"product_id", "url"}, rows)
}

func (pq productQueries) ReplaceProductVideos(ctx context.Context, productID int64, videos []models.ProductVideo) error {
	rows := make([][]any, len(videos))
	for i, v := range videos {
		rows[i] = []any{productID, v.URL}
	}
	return pq.replaceChildren(ctx, "product_videos", productID, []string{"product_id", "url"}, rows)
}

func (pq productQueries) ReplaceProductColors(ctx context.Context, productID int64, colors []models.ProductColor) error {
	rows := make([][]any, len(colors))
	for i, c := range colors {
		rows[i] = []any{productID, c.Name, c.Image}
	}
	return pq.replaceChildren(ctx, "product_colors", productID, []string{"product_id", "name", "image"}, rows)
}

func (pq productQueries) ReplaceProductSizes(ctx context.Context, productID int64, sizes []models.ProductSize) error {
	rows := make([][]any, len(sizes))
	for i, s := range sizes {
		rows[i] = []any{productID, s.Name}
	}
	return pq.replaceChildren(ctx, "product_sizes", productID, []string{"product_id", "name"}, rows)
}

func (pq productQueries) ReplaceProductStyles(ctx context.Context, productID int64, styles []models.ProductStyle) error {
	rows := make([][]any, len(styles))
	for i, st := range styles {
		options, err := json.Marshal(st.Options)
		if err != nil {
			return err
		}
		rows[i] = []any{productID, st.Name, options}
	}
	return pq.replaceChildren(ctx, "product_styles", productID, []string{"product_id", "name", "options"}, rows)
}

// replaceChildren deletes every row of table owned by productID and inserts rows.
func (pq productQueries) replaceChildren(ctx context.Context, table string, productID int64, columns []string, rows [][]any) error {
	if _, err := pq.q.ExecContext(ctx, "DELETE FROM "+table+" WHERE product_id = ?", productID); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if len(rows) == 0 {
		return nil
	}
	query, args := bulkInsert(table, columns, rows)
	if _, err := pq.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}
