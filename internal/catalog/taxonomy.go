package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/01moynul/storefront-golang/internal/apperr"
	"github.com/01moynul/storefront-golang/internal/logger"
	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// TaxonomyService manages categories, subcategories and collections.
// Updates are merge-patches; slugs are derived from the name on create
// when left blank.
type TaxonomyService struct {
	repo TaxonomyRepository
	now  func() time.Time
}

func NewTaxonomyService(repo TaxonomyRepository) *TaxonomyService {
	return &TaxonomyService{repo: repo, now: time.Now}
}

// --- Categories ---

func (s *TaxonomyService) ListCategories(ctx context.Context, filter models.CategoryFilter) ([]models.Category, error) {
	return s.repo.ListCategories(ctx, filter)
}

func (s *TaxonomyService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *TaxonomyService) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	if err := requireName(in.Name); err != nil {
		return nil, err
	}
	c := &models.Category{Subcategories: []models.SubCategory{}}
	applyNamed(&c.Name, &c.Slug, &c.Description, &c.Image, &c.SortOrder, in.Name, in.Slug, in.Description, in.Image, in.SortOrder)
	if err := defaultSlug(&c.Slug, c.Name); err != nil {
		return nil, err
	}

	id, err := s.repo.InsertCategory(ctx, c)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("Category created", zap.Int64("category_id", id), zap.String("slug", c.Slug))
	return s.repo.GetCategory(ctx, id)
}

func (s *TaxonomyService) UpdateCategory(ctx context.Context, id int64, in models.CategoryInput) (*models.Category, error) {
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rejectBlankName(in.Name); err != nil {
		return nil, err
	}
	applyNamed(&c.Name, &c.Slug, &c.Description, &c.Image, &c.SortOrder, in.Name, in.Slug, in.Description, in.Image, in.SortOrder)
	if err := checkSlug(c.Slug); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return s.repo.GetCategory(ctx, id)
}

// DeleteCategory removes the category with its subcategories and products.
func (s *TaxonomyService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("Category deleted", zap.Int64("category_id", id))
	return nil
}

// --- Subcategories ---

func (s *TaxonomyService) ListSubCategories(ctx context.Context, filter models.SubCategoryFilter) ([]models.SubCategory, error) {
	return s.repo.ListSubCategories(ctx, filter)
}

func (s *TaxonomyService) GetSubCategory(ctx context.Context, id int64) (*models.SubCategory, error) {
	return s.repo.GetSubCategory(ctx, id)
}

func (s *TaxonomyService) CreateSubCategory(ctx context.Context, in models.SubCategoryInput) (*models.SubCategory, error) {
	fields := map[string]string{}
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		fields["name"] = requiredMsg
	}
	if in.CategoryID == nil {
		fields["category"] = requiredMsg
	}
	if len(fields) > 0 {
		return nil, apperr.FieldErrors(fields)
	}

	sc := &models.SubCategory{CategoryID: *in.CategoryID}
	applyNamed(&sc.Name, &sc.Slug, &sc.Description, &sc.Image, &sc.SortOrder, in.Name, in.Slug, in.Description, in.Image, in.SortOrder)
	if err := defaultSlug(&sc.Slug, sc.Name); err != nil {
		return nil, err
	}

	id, err := s.repo.InsertSubCategory(ctx, sc)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("Subcategory created", zap.Int64("subcategory_id", id), zap.Int64("category_id", sc.CategoryID))
	return s.repo.GetSubCategory(ctx, id)
}

func (s *TaxonomyService) UpdateSubCategory(ctx context.Context, id int64, in models.SubCategoryInput) (*models.SubCategory, error) {
	sc, err := s.repo.GetSubCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rejectBlankName(in.Name); err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		sc.CategoryID = *in.CategoryID
	}
	applyNamed(&sc.Name, &sc.Slug, &sc.Description, &sc.Image, &sc.SortOrder, in.Name, in.Slug, in.Description, in.Image, in.SortOrder)
	if err := checkSlug(sc.Slug); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateSubCategory(ctx, sc); err != nil {
		return nil, err
	}
	return s.repo.GetSubCategory(ctx, id)
}

// DeleteSubCategory removes the subcategory; its products stay in the
// parent category with no subcategory.
func (s *TaxonomyService) DeleteSubCategory(ctx context.Context, id int64) error {
	if err := s.repo.DeleteSubCategory(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("Subcategory deleted", zap.Int64("subcategory_id", id))
	return nil
}

// --- Collections ---

func (s *TaxonomyService) ListCollections(ctx context.Context, filter models.CollectionFilter) ([]models.Collection, error) {
	return s.repo.ListCollections(ctx, filter)
}

func (s *TaxonomyService) GetCollection(ctx context.Context, id int64) (*models.Collection, error) {
	return s.repo.GetCollection(ctx, id)
}

func (s *TaxonomyService) CreateCollection(ctx context.Context, in models.CollectionInput) (*models.Collection, error) {
	if err := requireName(in.Name); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	c := &models.Collection{CreatedAt: now, UpdatedAt: now, ProductIDs: []int64{}}
	applyNamed(&c.Name, &c.Slug, &c.Description, &c.Image, &c.SortOrder, in.Name, in.Slug, in.Description, in.Image, in.SortOrder)
	if in.ProductIDs != nil {
		c.ProductIDs = dedupeIDs(*in.ProductIDs)
	}
	if err := defaultSlug(&c.Slug, c.Name); err != nil {
		return nil, err
	}

	id, err := s.repo.InsertCollection(ctx, c)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("Collection created",
		zap.Int64("collection_id", id), zap.Int("products", len(c.ProductIDs)))
	return s.repo.GetCollection(ctx, id)
}

// UpdateCollection merge-patches the collection. A supplied product list
// replaces the membership; an absent one leaves it as is.
func (s *TaxonomyService) UpdateCollection(ctx context.Context, id int64, in models.CollectionInput) (*models.Collection, error) {
	c, err := s.repo.GetCollection(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rejectBlankName(in.Name); err != nil {
		return nil, err
	}
	applyNamed(&c.Name, &c.Slug, &c.Description, &c.Image, &c.SortOrder, in.Name, in.Slug, in.Description, in.Image, in.SortOrder)
	if err := checkSlug(c.Slug); err != nil {
		return nil, err
	}
	if in.ProductIDs != nil {
		c.ProductIDs = dedupeIDs(*in.ProductIDs)
	}
	c.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateCollection(ctx, c, in.ProductIDs != nil); err != nil {
		return nil, err
	}
	return s.repo.GetCollection(ctx, id)
}

// DeleteCollection removes the collection; member products are untouched.
func (s *TaxonomyService) DeleteCollection(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCollection(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("Collection deleted", zap.Int64("collection_id", id))
	return nil
}

// --- helpers ---

func requireName(name *string) error {
	if name == nil || strings.TrimSpace(*name) == "" {
		return apperr.FieldErrors(map[string]string{"name": requiredMsg})
	}
	return nil
}

func rejectBlankName(name *string) error {
	if name != nil && strings.TrimSpace(*name) == "" {
		return apperr.FieldErrors(map[string]string{"name": "This field may not be blank."})
	}
	return nil
}

// applyNamed copies the fields shared by every taxonomy entity. A blank
// slug is ignored so the stored slug survives.
func applyNamed(name, slugField, description, image *string, sortOrder *int,
	inName, inSlug, inDescription, inImage *string, inSortOrder *int) {
	if inName != nil {
		*name = strings.TrimSpace(*inName)
	}
	if inSlug != nil && strings.TrimSpace(*inSlug) != "" {
		*slugField = strings.TrimSpace(*inSlug)
	}
	if inDescription != nil {
		*description = *inDescription
	}
	if inImage != nil {
		*image = strings.TrimSpace(*inImage)
	}
	if inSortOrder != nil {
		*sortOrder = *inSortOrder
	}
}

func defaultSlug(s *string, name string) error {
	if *s == "" {
		*s = slug.Make(name)
	}
	return checkSlug(*s)
}

func checkSlug(s string) error {
	if s == "" {
		return apperr.FieldErrors(map[string]string{"slug": "Slug could not be derived from name."})
	}
	if !validSlug(s) {
		return apperr.FieldErrors(map[string]string{"slug": "Enter a valid slug consisting of letters, numbers, underscores or hyphens."})
	}
	return nil
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
