// Package catalog implements the product aggregate and the taxonomy
// (categories, subcategories, collections) on top of a repository.
package catalog

import (
	"context"

	"github.com/01moynul/storefront-golang/internal/models"
)

// ProductRepository is the persistence the product service needs.
type ProductRepository interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	// InProductTx runs fn in one transaction. The transaction commits only
	// when fn returns nil.
	InProductTx(ctx context.Context, fn func(ProductWriter) error) error
}

// ProductWriter is the transactional view of the product tables.
type ProductWriter interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ProductSlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error)
	InsertProduct(ctx context.Context, p *models.Product) (int64, error)
	UpdateProduct(ctx context.Context, p *models.Product) error

	ReplaceProductImages(ctx context.Context, productID int64, images []models.ProductImage) error
	ReplaceProductVideos(ctx context.Context, productID int64, videos []models.ProductVideo) error
	ReplaceProductColors(ctx context.Context, productID int64, colors []models.ProductColor) error
	ReplaceProductSizes(ctx context.Context, productID int64, sizes []models.ProductSize) error
	ReplaceProductStyles(ctx context.Context, productID int64, styles []models.ProductStyle) error
}

// TaxonomyRepository persists categories, subcategories and collections.
// Deletes and updates of unknown ids return apperr NotFound.
type TaxonomyRepository interface {
	ListCategories(ctx context.Context, filter models.CategoryFilter) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	InsertCategory(ctx context.Context, c *models.Category) (int64, error)
	UpdateCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id int64) error

	ListSubCategories(ctx context.Context, filter models.SubCategoryFilter) ([]models.SubCategory, error)
	GetSubCategory(ctx context.Context, id int64) (*models.SubCategory, error)
	InsertSubCategory(ctx context.Context, s *models.SubCategory) (int64, error)
	UpdateSubCategory(ctx context.Context, s *models.SubCategory) error
	DeleteSubCategory(ctx context.Context, id int64) error

	ListCollections(ctx context.Context, filter models.CollectionFilter) ([]models.Collection, error)
	GetCollection(ctx context.Context, id int64) (*models.Collection, error)
	// InsertCollection stores c and its ProductIDs membership.
	InsertCollection(ctx context.Context, c *models.Collection) (int64, error)
	// UpdateCollection stores c; membership is replaced by c.ProductIDs
	// only when replaceMembers is set.
	UpdateCollection(ctx context.Context, c *models.Collection, replaceMembers bool) error
	DeleteCollection(ctx context.Context, id int64) error
}
