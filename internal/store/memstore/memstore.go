// Package memstore is an in-memory implementation of the service
// repositories. It mirrors the MySQL schema's unique keys, foreign keys and
// delete rules and is used by tests.
package memstore

import (
	"fmt"
	"sync"

	"github.com/01moynul/storefront-golang/internal/accounts"
	"github.com/01moynul/storefront-golang/internal/apperr"
	"github.com/01moynul/storefront-golang/internal/catalog"
	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/orders"
	"github.com/01moynul/storefront-golang/internal/reviews"
)

var (
	_ catalog.ProductRepository  = (*Store)(nil)
	_ catalog.TaxonomyRepository = (*Store)(nil)
	_ orders.Repository          = (*Store)(nil)
	_ reviews.Repository         = (*Store)(nil)
	_ accounts.Repository        = (*Store)(nil)
)

type state struct {
	seq map[string]int64

	users         map[int64]models.User
	categories    map[int64]models.Category
	subcategories map[int64]models.SubCategory
	products      map[int64]models.Product
	images        map[int64][]models.ProductImage
	videos        map[int64][]models.ProductVideo
	colors        map[int64][]models.ProductColor
	sizes         map[int64][]models.ProductSize
	styles        map[int64][]models.ProductStyle
	collections   map[int64]models.Collection
	members       map[int64][]int64
	orders        map[int64]models.Order
	items         map[int64][]models.OrderItem
	reviews       map[int64]models.Review
}

func newState() state {
	return state{
		seq:           map[string]int64{},
		users:         map[int64]models.User{},
		categories:    map[int64]models.Category{},
		subcategories: map[int64]models.SubCategory{},
		products:      map[int64]models.Product{},
		images:        map[int64][]models.ProductImage{},
		videos:        map[int64][]models.ProductVideo{},
		colors:        map[int64][]models.ProductColor{},
		sizes:         map[int64][]models.ProductSize{},
		styles:        map[int64][]models.ProductStyle{},
		collections:   map[int64]models.Collection{},
		members:       map[int64][]int64{},
		orders:        map[int64]models.Order{},
		items:         map[int64][]models.OrderItem{},
		reviews:       map[int64]models.Review{},
	}
}

// clone copies every table. Row values are replaced on write, never
// mutated in place, so a shallow copy of each map is a full snapshot.
func (st state) clone() state {
	return state{
		seq:           cloneMap(st.seq),
		users:         cloneMap(st.users),
		categories:    cloneMap(st.categories),
		subcategories: cloneMap(st.subcategories),
		products:      cloneMap(st.products),
		images:        cloneMap(st.images),
		videos:        cloneMap(st.videos),
		colors:        cloneMap(st.colors),
		sizes:         cloneMap(st.sizes),
		styles:        cloneMap(st.styles),
		collections:   cloneMap(st.collections),
		members:       cloneMap(st.members),
		orders:        cloneMap(st.orders),
		items:         cloneMap(st.items),
		reviews:       cloneMap(st.reviews),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Store is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	st     state
	faults map[string]error
}

func New() *Store {
	return &Store{st: newState(), faults: map[string]error{}}
}

// FailOn makes every later call of the named operation (for example
// "ReplaceProductStyles") return err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

func (s *Store) fault(op string) error {
	return s.faults[op]
}

func (s *Store) nextID(table string) int64 {
	s.st.seq[table]++
	return s.st.seq[table]
}

func duplicate(resource, field string) error {
	return apperr.FieldErrors(map[string]string{field: fmt.Sprintf("%s with this %s already exists.", resource, field)})
}

func missingReference() error {
	return apperr.Validation("referenced record does not exist")
}
