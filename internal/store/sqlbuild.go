package store

import (
	"strings"

	"github.com/01moynul/storefront-golang/internal/models"
)

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// bulkInsert builds a multi-row INSERT for rows of len(columns) values each.
func bulkInsert(table string, columns []string, rows [][]any) (string, []any) {
	row := "(" + placeholders(len(columns)) + ")"
	values := make([]string, len(rows))
	args := make([]any, 0, len(rows)*len(columns))
	for i, r := range rows {
		values[i] = row
		args = append(args, r...)
	}
	query := "INSERT INTO " + table + " (" + strings.Join(columns, ", ") + ") VALUES " + strings.Join(values, ", ")
	return query, args
}

// where joins conditions with AND; it is empty when there are none.
func where(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

const productSelect = `
	SELECT p.id, p.name, p.slug, p.category_id, p.subcategory_id,
		p.price, p.original_price, p.discount_percentage,
		p.description, p.short_description, p.features,
		p.delivery_info, p.returns_guarantee, p.delivery_charges,
		p.in_stock, p.is_bestseller, p.is_new, p.rating, p.review_count,
		p.created_at, p.updated_at,
		c.name, c.slug, sc.name, sc.slug
	FROM products p
	JOIN categories c ON c.id = p.category_id
	LEFT JOIN subcategories sc ON sc.id = p.subcategory_id`

// buildProductQuery returns the listing query for filter. ok is false when
// the filter cannot match anything.
func buildProductQuery(filter models.ProductFilter) (query string, args []any, ok bool) {
	var conds []string
	if filter.IDs != nil {
		if len(filter.IDs) == 0 {
			return "", nil, false
		}
		conds = append(conds, "p.id IN ("+placeholders(len(filter.IDs))+")")
		args = append(args, int64Args(filter.IDs)...)
	}
	if filter.Slug != "" {
		conds = append(conds, "p.slug = ?")
		args = append(args, filter.Slug)
	}
	if filter.CategorySlug != "" {
		conds = append(conds, "c.slug = ?")
		args = append(args, filter.CategorySlug)
	}
	if filter.SubCategorySlug != "" {
		conds = append(conds, "sc.slug = ?")
		args = append(args, filter.SubCategorySlug)
	}
	if filter.Bestseller != nil {
		conds = append(conds, "p.is_bestseller = ?")
		args = append(args, *filter.Bestseller)
	}
	if filter.IsNew != nil {
		conds = append(conds, "p.is_new = ?")
		args = append(args, *filter.IsNew)
	}
	return productSelect + where(conds) + " ORDER BY p.created_at DESC, p.id DESC", args, true
}

func buildReviewQuery(filter models.ReviewFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.ProductID != nil {
		conds = append(conds, "product_id = ?")
		args = append(args, *filter.ProductID)
	}
	if filter.Approved != nil {
		conds = append(conds, "approved = ?")
		args = append(args, *filter.Approved)
	}
	query := `SELECT id, product_id, name, rating, comment, approved, created_at FROM reviews` +
		where(conds) + " ORDER BY created_at DESC, id DESC"
	return query, args
}

func buildOrderQuery(filter models.OrderFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.UserID != nil {
		conds = append(conds, "user_id = ?")
		args = append(args, *filter.UserID)
	}
	return orderSelect + where(conds) + " ORDER BY created_at DESC, id DESC", args
}
