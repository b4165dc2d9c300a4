package memstore

import (
	"context"
	"sort"

	"github.com/01moynul/storefront-golang/internal/apperr"
	"github.com/01moynul/storefront-golang/internal/catalog"
	"github.com/01moynul/storefront-golang/internal/models"
)

// writer is the ProductWriter handed to InProductTx callbacks; the store
// lock is already held.
type writer struct {
	s *Store
}

func (s *Store) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getProduct(id)
}

func (s *Store) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listProducts(filter), nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.st.products[id]; !ok {
		return apperr.NotFound("product")
	}
	s.deleteProduct(id)
	return nil
}

// InProductTx restores the snapshot taken before fn when fn fails.
func (s *Store) InProductTx(ctx context.Context, fn func(catalog.ProductWriter) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(writer{s: s}); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func (s *Store) getProduct(id int64) (*models.Product, error) {
	p, ok := s.st.products[id]
	if !ok {
		return nil, apperr.NotFound("product")
	}
	out := s.assemble(p)
	return &out, nil
}

// assemble returns p with its joined names and child collections.
func (s *Store) assemble(p models.Product) models.Product {
	c := s.st.categories[p.CategoryID]
	p.CategoryName, p.CategorySlug = c.Name, c.Slug
	p.SubCategoryName, p.SubCategorySlug = nil, nil
	if p.SubCategoryID != nil {
		if sc, ok := s.st.subcategories[*p.SubCategoryID]; ok {
			name, slug := sc.Name, sc.Slug
			p.SubCategoryName, p.SubCategorySlug = &name, &slug
		}
	}
	p.Features = append([]string{}, p.Features...)
	p.Images = append([]models.ProductImage{}, s.st.images[p.ID]...)
	p.Videos = append([]models.ProductVideo{}, s.st.videos[p.ID]...)
	p.Colors = append([]models.ProductColor{}, s.st.colors[p.ID]...)
	p.Sizes = append([]models.ProductSize{}, s.st.sizes[p.ID]...)
	p.Styles = make([]models.ProductStyle, 0, len(s.st.styles[p.ID]))
	for _, st := range s.st.styles[p.ID] {
		st.Options = append([]string{}, st.Options...)
		p.Styles = append(p.Styles, st)
	}
	return p
}

func (s *Store) listProducts(filter models.ProductFilter) []models.Product {
	var ids map[int64]bool
	if filter.IDs != nil {
		ids = make(map[int64]bool, len(filter.IDs))
		for _, id := range filter.IDs {
			ids[id] = true
		}
	}

	out := []models.Product{}
	for _, raw := range s.st.products {
		p := s.assemble(raw)
		switch {
		case ids != nil && !ids[p.ID]:
			continue
		case filter.Slug != "" && p.Slug != filter.Slug:
			continue
		case filter.CategorySlug != "" && p.CategorySlug != filter.CategorySlug:
			continue
		case filter.SubCategorySlug != "" && (p.SubCategorySlug == nil || *p.SubCategorySlug != filter.SubCategorySlug):
			continue
		case filter.Bestseller != nil && p.IsBestseller != *filter.Bestseller:
			continue
		case filter.IsNew != nil && p.IsNew != *filter.IsNew:
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (s *Store) deleteProduct(id int64) {
	delete(s.st.products, id)
	delete(s.st.images, id)
	delete(s.st.videos, id)
	delete(s.st.colors, id)
	delete(s.st.sizes, id)
	delete(s.st.styles, id)
	for cid, members := range s.st.members {
		kept := []int64{}
		for _, pid := range members {
			if pid != id {
				kept = append(kept, pid)
			}
		}
		s.st.members[cid] = kept
	}
	for rid, r := range s.st.reviews {
		if r.ProductID == id {
			delete(s.st.reviews, rid)
		}
	}
	for oid, items := range s.st.items {
		updated := make([]models.OrderItem, len(items))
		for i, item := range items {
			if item.ProductID != nil && *item.ProductID == id {
				item.ProductID = nil
			}
			updated[i] = item
		}
		s.st.items[oid] = updated
	}
}

func (s *Store) checkProductRefs(p *models.Product) error {
	if _, ok := s.st.categories[p.CategoryID]; !ok {
		return missingReference()
	}
	if p.SubCategoryID != nil {
		if _, ok := s.st.subcategories[*p.SubCategoryID]; !ok {
			return missingReference()
		}
	}
	for id, other := range s.st.products {
		if id != p.ID && other.Slug == p.Slug {
			return duplicate("product", "slug")
		}
	}
	return nil
}

// core strips the derived fields before a product row is stored.
func core(p models.Product) models.Product {
	p.Features = append([]string{}, p.Features...)
	p.Images, p.Videos, p.Colors, p.Sizes, p.Styles = nil, nil, nil, nil, nil
	p.CategoryName, p.CategorySlug = "", ""
	p.SubCategoryName, p.SubCategorySlug = nil, nil
	return p
}

func (w writer) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if err := w.s.fault("GetProduct"); err != nil {
		return nil, err
	}
	return w.s.getProduct(id)
}

func (w writer) ProductSlugTaken(ctx context.Context, slug string, excludeID int64) (bool, error) {
	for id, p := range w.s.st.products {
		if id != excludeID && p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (w writer) InsertProduct(ctx context.Context, p *models.Product) (int64, error) {
	if err := w.s.fault("InsertProduct"); err != nil {
		return 0, err
	}
	row := core(*p)
	row.ID = 0
	if err := w.s.checkProductRefs(&row); err != nil {
		return 0, err
	}
	row.ID = w.s.nextID("products")
	w.s.st.products[row.ID] = row
	return row.ID, nil
}

func (w writer) UpdateProduct(ctx context.Context, p *models.Product) error {
	if err := w.s.fault("UpdateProduct"); err != nil {
		return err
	}
	existing, ok := w.s.st.products[p.ID]
	if !ok {
		return apperr.NotFound("product")
	}
	row := core(*p)
	row.CreatedAt = existing.CreatedAt
	if err := w.s.checkProductRefs(&row); err != nil {
		return err
	}
	w.s.st.products[row.ID] = row
	return nil
}

func (w writer) ReplaceProductImages(ctx context.Context, productID int64, images []models.ProductImage) error {
	if err := w.s.fault("ReplaceProductImages"); err != nil {
		return err
	}
	rows := make([]models.ProductImage, len(images))
	for i, img := range images {
		img.ID = w.s.nextID("product_images")
		rows[i] = img
	}
	w.s.st.images[productID] = rows
	return nil
}

func (w writer) ReplaceProductVideos(ctx context.Context, productID int64, videos []models.ProductVideo) error {
	if err := w.s.fault("ReplaceProductVideos"); err != nil {
		return err
	}
	rows := make([]models.ProductVideo, len(videos))
	for i, v := range videos {
		v.ID = w.s.nextID("product_videos")
		rows[i] = v
	}
	w.s.st.videos[productID] = rows
	return nil
}

func (w writer) ReplaceProductColors(ctx context.Context, productID int64, colors []models.ProductColor) error {
	if err := w.s.fault("ReplaceProductColors"); err != nil {
		return err
	}
	rows := make([]models.ProductColor, len(colors))
	for i, c := range colors {
		c.ID = w.s.nextID("product_colors")
		rows[i] = c
	}
	w.s.st.colors[productID] = rows
	return nil
}

func (w writer) ReplaceProductSizes(ctx context.Context, productID int64, sizes []models.ProductSize) error {
	if err := w.s.fault("ReplaceProductSizes"); err != nil {
		return err
	}
	rows := make([]models.ProductSize, len(sizes))
	for i, sz := range sizes {
		sz.ID = w.s.nextID("product_sizes")
		rows[i] = sz
	}
	w.s.st.sizes[productID] = rows
	return nil
}

func (w writer) ReplaceProductStyles(ctx context.Context, productID int64, styles []models.ProductStyle) error {
	if err := w.s.fault("ReplaceProductStyles"); err != nil {
		return err
	}
	rows := make([]models.ProductStyle, len(styles))
	for i, st := range styles {
		st.ID = w.s.nextID("product_styles")
		st.Options = append([]string{}, st.Options...)
		rows[i] = st
	}
	w.s.st.styles[productID] = rows
	return nil
}
