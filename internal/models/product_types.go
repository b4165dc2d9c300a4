package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the model for the 'products' table plus its five owned child
// collections, which are always populated on reads.
type Product struct {
	ID                 int64               `json:"id"`
	Name               string              `json:"name"`
	Slug               string              `json:"slug"`
	CategoryID         int64               `json:"category"`
	SubCategoryID      *int64              `json:"subcategory"`
	Price              decimal.Decimal     `json:"price"`
	OriginalPrice      decimal.NullDecimal `json:"original_price"`
	DiscountPercentage int                 `json:"discount_percentage"`
	Description        string              `json:"description"`
	ShortDescription   string              `json:"short_description"`
	Features           []string            `json:"features"`
	DeliveryInfo       string              `json:"delivery_info"`
	ReturnsGuarantee   string              `json:"returns_guarantee"`
	DeliveryCharges    decimal.Decimal     `json:"delivery_charges"`
	InStock            bool                `json:"in_stock"`
	IsBestseller       bool                `json:"is_bestseller"`
	IsNew              bool                `json:"is_new"`
	Rating             decimal.Decimal     `json:"rating"`
	ReviewCount        int                 `json:"review_count"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`

	Images []ProductImage `json:"images"`
	Videos []ProductVideo `json:"videos"`
	Colors []ProductColor `json:"colors"`
	Sizes  []ProductSize  `json:"sizes"`
	Styles []ProductStyle `json:"styles"`

	// Joined from categories/subcategories, read-only.
	CategoryName    string  `json:"category_name"`
	CategorySlug    string  `json:"category_slug"`
	SubCategoryName *string `json:"subcategory_name"`
	SubCategorySlug *string `json:"subcategory_slug"`
}

type ProductImage struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type ProductVideo struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type ProductColor struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type ProductSize struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ProductStyle struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// ProductInput is the write shape for create and replace. A nil child
// pointer means "not supplied"; a non-nil pointer to an empty slice means
// "clear this collection".
type ProductInput struct {
	Name               *string                   `json:"name"`
	Slug               *string                   `json:"slug"`
	CategoryID         *int64                    `json:"category"`
	SubCategoryID      Optional[int64]           `json:"subcategory"`
	Price              *decimal.Decimal          `json:"price"`
	OriginalPrice      Optional[decimal.Decimal] `json:"original_price"`
	DiscountPercentage *int                      `json:"discount_percentage" binding:"omitempty,gte=0,lte=100"`
	Description        *string                   `json:"description"`
	ShortDescription   *string                   `json:"short_description"`
	Features           *[]string                 `json:"features"`
	DeliveryInfo       *string                   `json:"delivery_info"`
	ReturnsGuarantee   *string                   `json:"returns_guarantee"`
	DeliveryCharges    *decimal.Decimal          `json:"delivery_charges"`
	InStock            *bool                     `json:"in_stock"`
	IsBestseller       *bool                     `json:"is_bestseller"`
	IsNew              *bool                     `json:"is_new"`
	Rating             *decimal.Decimal          `json:"rating"`
	ReviewCount        *int                      `json:"review_count" binding:"omitempty,gte=0"`

	Images *[]ImageInput `json:"images"`
	Videos *[]VideoInput `json:"videos"`
	Colors *[]ColorInput `json:"colors"`
	Sizes  *[]string     `json:"sizes"`
	Styles *[]StyleInput `json:"styles"`
}

// Child inputs accept an "id" key so a read payload can be sent back
// unchanged; it is ignored. Any other unknown key is rejected.

type ImageInput struct {
	ID  *int64 `json:"id,omitempty"`
	URL string `json:"url"`
}

type VideoInput struct {
	ID  *int64 `json:"id,omitempty"`
	URL string `json:"url"`
}

type ColorInput struct {
	ID    *int64 `json:"id,omitempty"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type StyleInput struct {
	ID      *int64   `json:"id,omitempty"`
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

func (i *ImageInput) UnmarshalJSON(data []byte) error {
	type plain ImageInput
	return decodeStrict(data, (*plain)(i))
}

func (v *VideoInput) UnmarshalJSON(data []byte) error {
	type plain VideoInput
	return decodeStrict(data, (*plain)(v))
}

func (c *ColorInput) UnmarshalJSON(data []byte) error {
	type plain ColorInput
	return decodeStrict(data, (*plain)(c))
}

func (s *StyleInput) UnmarshalJSON(data []byte) error {
	type plain StyleInput
	return decodeStrict(data, (*plain)(s))
}

// ProductFilter holds the equality filters of the product listing. Zero
// values impose no constraint.
type ProductFilter struct {
	IDs             []int64
	Slug            string
	CategorySlug    string
	SubCategorySlug string
	Bestseller      *bool
	IsNew           *bool
}
