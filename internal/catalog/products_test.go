package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/01moynul/storefront-golang/internal/apperr"
	"github.com/01moynul/storefront-golang/internal/catalog"
	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/store/memstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

type fixture struct {
	ctx      context.Context
	store    *memstore.Store
	products *catalog.ProductService
	taxonomy *catalog.TaxonomyService
	category *models.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{ctx: context.Background(), store: memstore.New()}
	f.products = catalog.NewProductService(f.store)
	f.taxonomy = catalog.NewTaxonomyService(f.store)

	cat, err := f.taxonomy.CreateCategory(f.ctx, models.CategoryInput{Name: ptr("Kitchen")})
	require.NoError(t, err)
	f.category = cat
	return f
}

func (f *fixture) input(name string) models.ProductInput {
	return models.ProductInput{
		Name:       ptr(name),
		CategoryID: ptr(f.category.ID),
		Price:      ptr(decimal.RequireFromString("9.99")),
	}
}

// decodeInput builds an input the way the HTTP layer does.
func decodeInput(t *testing.T, body string) models.ProductInput {
	t.Helper()
	var in models.ProductInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	return in
}

func TestCreateProductRedMug(t *testing.T) {
	f := newFixture(t)
	in := f.input("Red Mug")
	in.Colors = &[]models.ColorInput{{Name: "Red"}}

	created, err := f.products.CreateProduct(f.ctx, in)
	require.NoError(t, err)

	got, err := f.products.GetProduct(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "red-mug", got.Slug)
	require.Len(t, got.Colors, 1)
	assert.Equal(t, "Red", got.Colors[0].Name)
	assert.Equal(t, "", got.Colors[0].Image)
	assert.Equal(t, "Kitchen", got.CategoryName)
	assert.Equal(t, "kitchen", got.CategorySlug)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("9.99")))
	assert.True(t, got.InStock)
	assert.Empty(t, got.Images)
	assert.Empty(t, got.Sizes)
}

func TestCreateProductSlug(t *testing.T) {
	tests := []struct {
		name     string
		slug     *string
		wantSlug string
	}{
		{name: "omitted slug is derived from name", slug: nil, wantSlug: "blue-teapot-large"},
		{name: "blank slug is derived from name", slug: ptr("  "), wantSlug: "blue-teapot-large"},
		{name: "supplied slug is kept", slug: ptr("teapot-xl"), wantSlug: "teapot-xl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			in := f.input("Blue Teapot (Large)")
			in.Slug = tt.slug

			p, err := f.products.CreateProduct(f.ctx, in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSlug, p.Slug)
		})
	}
}

func TestCreateProductRequiredFields(t *testing.T) {
	f := newFixture(t)
	_, err := f.products.CreateProduct(f.ctx, models.ProductInput{})

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "name")
	assert.Contains(t, appErr.Fields, "category")
	assert.Contains(t, appErr.Fields, "price")
}

func TestCreateProductDuplicateSlug(t *testing.T) {
	f := newFixture(t)
	_, err := f.products.CreateProduct(f.ctx, f.input("Red Mug"))
	require.NoError(t, err)

	_, err = f.products.CreateProduct(f.ctx, f.input("Red Mug"))
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestCreateProductUnknownCategory(t *testing.T) {
	f := newFixture(t)
	in := f.input("Red Mug")
	in.CategoryID = ptr(int64(999))

	_, err := f.products.CreateProduct(f.ctx, in)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestCreateProductInvalidValues(t *testing.T) {
	f := newFixture(t)
	in := f.input("Red Mug")
	in.Price = ptr(decimal.RequireFromString("-1"))
	in.DiscountPercentage = ptr(120)
	in.Rating = ptr(decimal.RequireFromString("5.5"))

	_, err := f.products.CreateProduct(f.ctx, in)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "price")
	assert.Contains(t, appErr.Fields, "discount_percentage")
	assert.Contains(t, appErr.Fields, "rating")
}

func TestCreateProductChildMissingName(t *testing.T) {
	f := newFixture(t)
	in := f.input("Red Mug")
	in.Styles = &[]models.StyleInput{{Options: []string{"A"}}}

	_, err := f.products.CreateProduct(f.ctx, in)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "styles[0].name")
}

func TestCreateProductIsAtomic(t *testing.T) {
	f := newFixture(t)
	f.store.FailOn("ReplaceProductStyles", errors.New("disk full"))

	in := f.input("Red Mug")
	in.Images = &[]models.ImageInput{{URL: "https://cdn.example.com/a.jpg"}}
	in.Styles = &[]models.StyleInput{{Name: "Finish", Options: []string{"Matte"}}}

	_, err := f.products.CreateProduct(f.ctx, in)
	require.Error(t, err)

	all, err := f.products.ListProducts(f.ctx, models.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, all, "a failed child write must not leave a partial product")
}

func TestReplaceProductChildren(t *testing.T) {
	f := newFixture(t)
	in := decodeInput(t, `{
		"name": "Red Mug", "category": 1, "price": "9.99",
		"images": [{"url": "https://cdn.example.com/1.jpg"}, {"url": "https://cdn.example.com/2.jpg"}],
		"sizes": ["S", "M"],
		"colors": [{"name": "Red", "image": "https://cdn.example.com/red.jpg"}],
		"styles": [{"name": "Finish", "options": ["Matte", "Gloss"]}]
	}`)
	created, err := f.products.CreateProduct(f.ctx, in)
	require.NoError(t, err)

	// Only images (replaced) and sizes (cleared) are supplied.
	replaced, err := f.products.ReplaceProduct(f.ctx, created.ID, decodeInput(t, `{
		"images": [{"id": 99, "url": "https://cdn.example.com/3.jpg"}],
		"sizes": []
	}`))
	require.NoError(t, err)

	require.Len(t, replaced.Images, 1)
	assert.Equal(t, "https://cdn.example.com/3.jpg", replaced.Images[0].URL)
	assert.Empty(t, replaced.Sizes)
	assert.Equal(t, created.Colors, replaced.Colors)
	assert.Equal(t, created.Styles, replaced.Styles)
	assert.Equal(t, "Red Mug", replaced.Name)
	assert.Equal(t, "red-mug", replaced.Slug)
}

func TestReplaceProductNullChildIsAbsent(t *testing.T) {
	f := newFixture(t)
	in := f.input("Red Mug")
	in.Videos = &[]models.VideoInput{{URL: "https://cdn.example.com/v.mp4"}}
	created, err := f.products.CreateProduct(f.ctx, in)
	require.NoError(t, err)

	replaced, err := f.products.ReplaceProduct(f.ctx, created.ID, decodeInput(t, `{"videos": null}`))
	require.NoError(t, err)
	assert.Len(t, replaced.Videos, 1)
}

func TestReplaceProductSlugRules(t *testing.T) {
	f := newFixture(t)
	created, err := f.products.CreateProduct(f.ctx, f.input("Red Mug"))
	require.NoError(t, err)

	// A blank slug without a name keeps the stored slug.
	p, err := f.products.ReplaceProduct(f.ctx, created.ID, models.ProductInput{Slug: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, "red-mug", p.Slug)

	// A new name without a slug re-derives it.
	p, err = f.products.ReplaceProduct(f.ctx, created.ID, models.ProductInput{Name: ptr("Green Mug")})
	require.NoError(t, err)
	assert.Equal(t, "green-mug", p.Slug)

	// An explicit slug wins over the name.
	p, err = f.products.ReplaceProduct(f.ctx, created.ID, models.ProductInput{Name: ptr("Big Mug"), Slug: ptr("mug-xl")})
	require.NoError(t, err)
	assert.Equal(t, "mug-xl", p.Slug)
	assert.Equal(t, "Big Mug", p.Name)
}

func TestReplaceProductMergePatch(t *testing.T) {
	f := newFixture(t)
	sub, err := f.taxonomy.CreateSubCategory(f.ctx, models.SubCategoryInput{CategoryID: ptr(f.category.ID), Name: ptr("Mugs")})
	require.NoError(t, err)

	in := f.input("Red Mug")
	in.SubCategoryID = models.Some(sub.ID)
	in.OriginalPrice = models.Some(decimal.RequireFromString("12.50"))
	in.Features = &[]string{"Dishwasher safe"}
	created, err := f.products.CreateProduct(f.ctx, in)
	require.NoError(t, err)
	require.NotNil(t, created.SubCategorySlug)
	assert.Equal(t, "mugs", *created.SubCategorySlug)

	p, err := f.products.ReplaceProduct(f.ctx, created.ID, decodeInput(t, `{"subcategory": null, "is_bestseller": true}`))
	require.NoError(t, err)
	assert.Nil(t, p.SubCategoryID)
	assert.Nil(t, p.SubCategoryName)
	assert.True(t, p.IsBestseller)
	assert.True(t, p.OriginalPrice.Valid)
	assert.Equal(t, []string{"Dishwasher safe"}, p.Features)

	p, err = f.products.ReplaceProduct(f.ctx, created.ID, decodeInput(t, `{"original_price": null}`))
	require.NoError(t, err)
	assert.False(t, p.OriginalPrice.Valid)
}

func TestReplaceProductErrors(t *testing.T) {
	f := newFixture(t)
	_, err := f.products.ReplaceProduct(f.ctx, 42, models.ProductInput{Name: ptr("Ghost")})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	first, err := f.products.CreateProduct(f.ctx, f.input("Red Mug"))
	require.NoError(t, err)
	second, err := f.products.CreateProduct(f.ctx, f.input("Blue Mug"))
	require.NoError(t, err)

	_, err = f.products.ReplaceProduct(f.ctx, second.ID, models.ProductInput{Slug: ptr(first.Slug)})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = f.products.ReplaceProduct(f.ctx, first.ID, models.ProductInput{Name: ptr(" ")})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestReplaceProductIsAtomic(t *testing.T) {
	f := newFixture(t)
	in := f.input("Red Mug")
	in.Sizes = &[]string{"S"}
	created, err := f.products.CreateProduct(f.ctx, in)
	require.NoError(t, err)

	f.store.FailOn("ReplaceProductColors", errors.New("lock wait timeout"))
	_, err = f.products.ReplaceProduct(f.ctx, created.ID, models.ProductInput{
		Name:   ptr("Renamed Mug"),
		Sizes:  &[]string{"L"},
		Colors: &[]models.ColorInput{{Name: "Blue"}},
	})
	require.Error(t, err)

	got, err := f.products.GetProduct(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Red Mug", got.Name)
	require.Len(t, got.Sizes, 1)
	assert.Equal(t, "S", got.Sizes[0].Name)
}

func TestListProductsFilters(t *testing.T) {
	f := newFixture(t)
	other, err := f.taxonomy.CreateCategory(f.ctx, models.CategoryInput{Name: ptr("Garden")})
	require.NoError(t, err)

	mug := f.input("Red Mug")
	mug.IsBestseller = ptr(true)
	_, err = f.products.CreateProduct(f.ctx, mug)
	require.NoError(t, err)

	pot := f.input("Plant Pot")
	pot.CategoryID = ptr(other.ID)
	pot.IsNew = ptr(true)
	_, err = f.products.CreateProduct(f.ctx, pot)
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter models.ProductFilter
		want   []string
	}{
		{"all newest first", models.ProductFilter{}, []string{"plant-pot", "red-mug"}},
		{"category slug", models.ProductFilter{CategorySlug: "garden"}, []string{"plant-pot"}},
		{"bestseller", models.ProductFilter{Bestseller: ptr(true)}, []string{"red-mug"}},
		{"not new", models.ProductFilter{IsNew: ptr(false)}, []string{"red-mug"}},
		{"combined without match", models.ProductFilter{CategorySlug: "garden", Bestseller: ptr(true)}, []string{}},
		{"slug", models.ProductFilter{Slug: "red-mug"}, []string{"red-mug"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.products.ListProducts(f.ctx, tt.filter)
			require.NoError(t, err)
			slugs := []string{}
			for _, p := range got {
				slugs = append(slugs, p.Slug)
			}
			assert.Equal(t, tt.want, slugs)
		})
	}
}

func TestDeleteProduct(t *testing.T) {
	f := newFixture(t)
	p, err := f.products.CreateProduct(f.ctx, f.input("Red Mug"))
	require.NoError(t, err)

	require.NoError(t, f.products.DeleteProduct(f.ctx, p.ID))
	_, err = f.products.GetProduct(f.ctx, p.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.True(t, apperr.Is(f.products.DeleteProduct(f.ctx, p.ID), apperr.KindNotFound))
}
