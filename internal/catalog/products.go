package catalog

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/01moynul/storefront-golang/internal/apperr"
	"github.com/01moynul/storefront-golang/internal/logger"
	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const requiredMsg = "This field is required."

// ProductService writes and reads the product aggregate: the core record
// plus its images, videos, colors, sizes and styles.
type ProductService struct {
	repo ProductRepository
	now  func() time.Time
}

func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{repo: repo, now: time.Now}
}

// CreateProduct stores a new product with every supplied child collection
// and returns the aggregate as read back after commit.
func (s *ProductService) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	// 1. Required core fields
	fields := map[string]string{}
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		fields["name"] = requiredMsg
	}
	if in.CategoryID == nil {
		fields["category"] = requiredMsg
	}
	if in.Price == nil {
		fields["price"] = requiredMsg
	}
	if len(fields) > 0 {
		return nil, apperr.FieldErrors(fields)
	}

	children, err := childrenFromInput(in)
	if err != nil {
		return nil, err
	}

	// 2. Defaults, then the supplied values
	now := s.now().UTC()
	p := &models.Product{
		Features:        []string{},
		InStock:         true,
		DeliveryCharges: decimal.Zero,
		Rating:          decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	applyProductInput(p, in)
	if p.Slug == "" {
		p.Slug = slug.Make(p.Name)
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	// 3. Core row and children in one transaction
	var id int64
	err = s.repo.InProductTx(ctx, func(w ProductWriter) error {
		if err := ensureSlugFree(ctx, w, p.Slug, 0); err != nil {
			return err
		}
		var err error
		if id, err = w.InsertProduct(ctx, p); err != nil {
			return err
		}
		return children.write(ctx, w, id)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Product created",
		zap.Int64("product_id", id), zap.String("slug", p.Slug), zap.Strings("children", children.kinds()))
	return s.repo.GetProduct(ctx, id)
}

// ReplaceProduct merge-patches the supplied core fields of product id and
// replaces every child collection present in the input. Absent child kinds
// are left untouched; an empty list clears the kind.
func (s *ProductService) ReplaceProduct(ctx context.Context, id int64, in models.ProductInput) (*models.Product, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, apperr.FieldErrors(map[string]string{"name": "This field may not be blank."})
	}
	children, err := childrenFromInput(in)
	if err != nil {
		return nil, err
	}

	err = s.repo.InProductTx(ctx, func(w ProductWriter) error {
		p, err := w.GetProduct(ctx, id)
		if err != nil {
			return err
		}

		applyProductInput(p, in)
		slugGiven := in.Slug != nil && strings.TrimSpace(*in.Slug) != ""
		if !slugGiven && in.Name != nil {
			p.Slug = slug.Make(p.Name)
		}
		p.UpdatedAt = s.now().UTC()
		if err := validateProduct(p); err != nil {
			return err
		}
		if err := ensureSlugFree(ctx, w, p.Slug, id); err != nil {
			return err
		}
		if err := w.UpdateProduct(ctx, p); err != nil {
			return err
		}
		return children.write(ctx, w, id)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Product replaced",
		zap.Int64("product_id", id), zap.Strings("children", children.kinds()))
	return s.repo.GetProduct(ctx, id)
}

func (s *ProductService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// ListProducts returns products matching every set filter, newest first.
func (s *ProductService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	return s.repo.ListProducts(ctx, filter)
}

// DeleteProduct removes the product and, through the schema, its children.
// Order items keep their snapshot with a null product.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("Product deleted", zap.Int64("product_id", id))
	return nil
}

// applyProductInput copies every supplied core field of in onto p.
func applyProductInput(p *models.Product, in models.ProductInput) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Slug != nil && strings.TrimSpace(*in.Slug) != "" {
		p.Slug = strings.TrimSpace(*in.Slug)
	}
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
	if in.SubCategoryID.Set {
		p.SubCategoryID = in.SubCategoryID.Value
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.OriginalPrice.Set {
		if in.OriginalPrice.Value == nil {
			p.OriginalPrice = decimal.NullDecimal{}
		} else {
			p.OriginalPrice = decimal.NewNullDecimal(*in.OriginalPrice.Value)
		}
	}
	if in.DiscountPercentage != nil {
		p.DiscountPercentage = *in.DiscountPercentage
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.ShortDescription != nil {
		p.ShortDescription = *in.ShortDescription
	}
	if in.Features != nil {
		p.Features = append([]string{}, *in.Features...)
	}
	if in.DeliveryInfo != nil {
		p.DeliveryInfo = *in.DeliveryInfo
	}
	if in.ReturnsGuarantee != nil {
		p.ReturnsGuarantee = *in.ReturnsGuarantee
	}
	if in.DeliveryCharges != nil {
		p.DeliveryCharges = *in.DeliveryCharges
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	if in.IsBestseller != nil {
		p.IsBestseller = *in.IsBestseller
	}
	if in.IsNew != nil {
		p.IsNew = *in.IsNew
	}
	if in.Rating != nil {
		p.Rating = *in.Rating
	}
	if in.ReviewCount != nil {
		p.ReviewCount = *in.ReviewCount
	}
}

var (
	maxMoney  = decimal.RequireFromString("99999999.99")
	maxRating = decimal.NewFromInt(5)
)

// validateProduct checks the merged record against the column limits.
func validateProduct(p *models.Product) error {
	fields := map[string]string{}
	if len(p.Name) > 255 {
		fields["name"] = "Ensure this field has no more than 255 characters."
	}
	if p.Slug == "" {
		fields["slug"] = "Slug could not be derived from name."
	} else if !validSlug(p.Slug) {
		fields["slug"] = "Enter a valid slug consisting of letters, numbers, underscores or hyphens."
	}
	checkMoney(fields, "price", p.Price)
	if p.OriginalPrice.Valid {
		checkMoney(fields, "original_price", p.OriginalPrice.Decimal)
	}
	checkMoney(fields, "delivery_charges", p.DeliveryCharges)
	if p.DiscountPercentage < 0 || p.DiscountPercentage > 100 {
		fields["discount_percentage"] = "Ensure this value is between 0 and 100."
	}
	if p.Rating.IsNegative() || p.Rating.GreaterThan(maxRating) || !p.Rating.Equal(p.Rating.Round(1)) {
		fields["rating"] = "Ensure this value is between 0 and 5 with at most 1 decimal place."
	}
	if p.ReviewCount < 0 {
		fields["review_count"] = "Ensure this value is greater than or equal to 0."
	}
	if len(fields) > 0 {
		return apperr.FieldErrors(fields)
	}
	return nil
}

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

func validSlug(s string) bool {
	return len(s) <= 255 && slugPattern.MatchString(s)
}

func checkMoney(fields map[string]string, name string, d decimal.Decimal) {
	switch {
	case d.IsNegative():
		fields[name] = "Ensure this value is greater than or equal to 0."
	case d.GreaterThan(maxMoney):
		fields[name] = "Ensure that there are no more than 10 digits in total."
	case !d.Equal(d.Round(2)):
		fields[name] = "Ensure that there are no more than 2 decimal places."
	}
}

func ensureSlugFree(ctx context.Context, w ProductWriter, s string, excludeID int64) error {
	taken, err := w.ProductSlugTaken(ctx, s, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.FieldErrors(map[string]string{"slug": "product with this slug already exists."})
	}
	return nil
}
