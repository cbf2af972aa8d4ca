package memory

import (
	"sort"

	"github.com/prodflux/prodflux-api/internal/domain/entity"
	"github.com/prodflux/prodflux-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	s *Store
}

func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

func (r *ProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.nextID("products")
	c := *p
	r.s.products[p.ID] = &c
	return nil
}

func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *ProductRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return nil
	}
	c := *p
	r.s.products[p.ID] = &c
	return nil
}

func (r *ProductRepo) Delete(id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	return nil
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var all []*entity.Product
	for _, p := range r.s.products {
		c := *p
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name == all[j].Name {
			return all[i].ID < all[j].ID
		}
		return all[i].Name < all[j].Name
	})
	return paginate(all, limit, offset), nil
}

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo lista de materiales en memoria.
type BOMRepo struct {
	s *Store
}

func NewBOMRepository(s *Store) *BOMRepo {
	return &BOMRepo{s: s}
}

func (r *BOMRepo) CreateLine(line *entity.BOMLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	line.ID = r.s.nextID("bom_lines")
	c := *line
	r.s.bomLines[line.ID] = &c
	return nil
}

func (r *BOMRepo) UpdateLine(line *entity.BOMLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bomLines[line.ID]; !ok {
		return nil
	}
	c := *line
	r.s.bomLines[line.ID] = &c
	return nil
}

func (r *BOMRepo) DeleteLine(id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.bomLines, id)
	return nil
}

func (r *BOMRepo) GetLine(id int64) (*entity.BOMLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	line, ok := r.s.bomLines[id]
	if !ok {
		return nil, nil
	}
	c := *line
	return &c, nil
}

func (r *BOMRepo) ListByProduct(productID int64) ([]*entity.BOMLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var list []*entity.BOMLine
	for _, line := range r.s.bomLines {
		if line.ProductID == productID {
			c := *line
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].MaterialID < list[j].MaterialID })
	return list, nil
}
