package memstore

import (
	"context"
	"sort"

	"github.com/01moynul/storefront-golang/internal/apperr"
	"github.com/01moynul/storefront-golang/internal/models"
)

func sortNamed[T any](items []T, key func(T) (int, string, int64)) {
	sort.Slice(items, func(i, j int) bool {
		oi, ni, ii := key(items[i])
		oj, nj, ij := key(items[j])
		if oi != oj {
			return oi < oj
		}
		if ni != nj {
			return ni < nj
		}
		return ii < ij
	})
}

func subKey(sc models.SubCategory) (int, string, int64) { return sc.SortOrder, sc.Name, sc.ID }

// --- Categories ---

func (s *Store) ListCategories(ctx context.Context, filter models.CategoryFilter) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Category{}
	for _, c := range s.st.categories {
		if filter.Slug != "" && c.Slug != filter.Slug {
			continue
		}
		out = append(out, s.withSubcategories(c))
	}
	sortNamed(out, func(c models.Category) (int, string, int64) { return c.SortOrder, c.Name, c.ID })
	return out, nil
}

func (s *Store) withSubcategories(c models.Category) models.Category {
	c.Subcategories = []models.SubCategory{}
	for _, sc := range s.st.subcategories {
		if sc.CategoryID == c.ID {
			c.Subcategories = append(c.Subcategories, sc)
		}
	}
	sortNamed(c.Subcategories, subKey)
	return c
}

func (s *Store) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.st.categories[id]
	if !ok {
		return nil, apperr.NotFound("category")
	}
	c = s.withSubcategories(c)
	return &c, nil
}

func (s *Store) categorySlugTaken(slug string, excludeID int64) bool {
	for id, c := range s.st.categories {
		if id != excludeID && c.Slug == slug {
			return true
		}
	}
	return false
}

func (s *Store) InsertCategory(ctx context.Context, c *models.Category) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.categorySlugTaken(c.Slug, 0) {
		return 0, duplicate("category", "slug")
	}
	row := *c
	row.ID = s.nextID("categories")
	row.Subcategories = nil
	s.st.categories[row.ID] = row
	return row.ID, nil
}

func (s *Store) UpdateCategory(ctx context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.st.categories[c.ID]; !ok {
		return apperr.NotFound("category")
	}
	if s.categorySlugTaken(c.Slug, c.ID) {
		return duplicate("category", "slug")
	}
	row := *c
	row.Subcategories = nil
	s.st.categories[row.ID] = row
	return nil
}

// DeleteCategory cascades to subcategories and products.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.st.categories[id]; !ok {
		return apperr.NotFound("category")
	}
	for pid, p := range s.st.products {
		if p.CategoryID == id {
			s.deleteProduct(pid)
		}
	}
	for sid, sc := range s.st.subcategories {
		if sc.CategoryID == id {
			delete(s.st.subcategories, sid)
		}
	}
	delete(s.st.categories, id)
	return nil
}

// --- Subcategories ---

func (s *Store) ListSubCategories(ctx context.Context, filter models.SubCategoryFilter) ([]models.SubCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.SubCategory{}
	for _, sc := range s.st.subcategories {
		if filter.CategoryID != nil && sc.CategoryID != *filter.CategoryID {
			continue
		}
		out = append(out, sc)
	}
	sortNamed(out, subKey)
	return out, nil
}

func (s *Store) GetSubCategory(ctx context.Context, id int64) (*models.SubCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.st.subcategories[id]
	if !ok {
		return nil, apperr.NotFound("subcategory")
	}
	return &sc, nil
}

func (s *Store) checkSubCategory(sc *models.SubCategory) error {
	if _, ok := s.st.categories[sc.CategoryID]; !ok {
		return missingReference()
	}
	for id, other := range s.st.subcategories {
		if id != sc.ID && other.Slug == sc.Slug {
			return duplicate("subcategory", "slug")
		}
	}
	return nil
}

func (s *Store) InsertSubCategory(ctx context.Context, sc *models.SubCategory) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *sc
	row.ID = 0
	if err := s.checkSubCategory(&row); err != nil {
		return 0, err
	}
	row.ID = s.nextID("subcategories")
	s.st.subcategories[row.ID] = row
	return row.ID, nil
}

func (s *Store) UpdateSubCategory(ctx context.Context, sc *models.SubCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.st.subcategories[sc.ID]; !ok {
		return apperr.NotFound("subcategory")
	}
	if err := s.checkSubCategory(sc); err != nil {
		return err
	}
	s.st.subcategories[sc.ID] = *sc
	return nil
}

// DeleteSubCategory nulls the subcategory of its products.
func (s *Store) DeleteSubCategory(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.st.subcategories[id]; !ok {
		return apperr.NotFound("subcategory")
	}
	for pid, p := range s.st.products {
		if p.SubCategoryID != nil && *p.SubCategoryID == id {
			p.SubCategoryID = nil
			s.st.products[pid] = p
		}
	}
	delete(s.st.subcategories, id)
	return nil
}

// --- Collections ---

func (s *Store) ListCollections(ctx context.Context, filter models.CollectionFilter) ([]models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Collection{}
	for _, c := range s.st.collections {
		if filter.Slug != "" && c.Slug != filter.Slug {
			continue
		}
		out = append(out, s.withMembers(c))
	}
	sortNamed(out, func(c models.Collection) (int, string, int64) { return c.SortOrder, c.Name, c.ID })
	return out, nil
}

func (s *Store) withMembers(c models.Collection) models.Collection {
	c.ProductIDs = append([]int64{}, s.st.members[c.ID]...)
	sort.Slice(c.ProductIDs, func(i, j int) bool { return c.ProductIDs[i] < c.ProductIDs[j] })
	c.Products = []models.Product{}
	for _, pid := range c.ProductIDs {
		if p, ok := s.st.products[pid]; ok {
			c.Products = append(c.Products, s.assemble(p))
		}
	}
	return c
}

func (s *Store) GetCollection(ctx context.Context, id int64) (*models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.st.collections[id]
	if !ok {
		return nil, apperr.NotFound("collection")
	}
	c = s.withMembers(c)
	return &c, nil
}

func (s *Store) checkCollection(c *models.Collection, checkMembers bool) error {
	for id, other := range s.st.collections {
		if id != c.ID && other.Slug == c.Slug {
			return duplicate("collection", "slug")
		}
	}
	if checkMembers {
		for _, pid := range c.ProductIDs {
			if _, ok := s.st.products[pid]; !ok {
				return missingReference()
			}
		}
	}
	return nil
}

func (s *Store) InsertCollection(ctx context.Context, c *models.Collection) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := *c
	row.ID = 0
	if err := s.checkCollection(&row, true); err != nil {
		return 0, err
	}
	row.ID = s.nextID("collections")
	s.st.members[row.ID] = append([]int64{}, row.ProductIDs...)
	row.ProductIDs, row.Products = nil, nil
	s.st.collections[row.ID] = row
	return row.ID, nil
}

func (s *Store) UpdateCollection(ctx context.Context, c *models.Collection, replaceMembers bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.st.collections[c.ID]
	if !ok {
		return apperr.NotFound("collection")
	}
	if err := s.checkCollection(c, replaceMembers); err != nil {
		return err
	}
	row := *c
	row.CreatedAt = existing.CreatedAt
	if replaceMembers {
		s.st.members[row.ID] = append([]int64{}, row.ProductIDs...)
	}
	row.ProductIDs, row.Products = nil, nil
	s.st.collections[row.ID] = row
	return nil
}

func (s *Store) DeleteCollection(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.st.collections[id]; !ok {
		return apperr.NotFound("collection")
	}
	delete(s.st.collections, id)
	delete(s.st.members, id)
	return nil
}
