package memory

import (
	"sort"

	"github.com/prodflux/prodflux-api/internal/domain/entity"
	"github.com/prodflux/prodflux-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo catálogo de materiales en memoria.
type MaterialRepo struct {
	s *Store
}

func NewMaterialRepository(s *Store) *MaterialRepo {
	return &MaterialRepo{s: s}
}

func (r *MaterialRepo) Create(m *entity.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.ID = r.s.nextID("materials")
	c := *m
	r.s.materials[m.ID] = &c
	return nil
}

func (r *MaterialRepo) GetByID(id int64) (*entity.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.materials[id]
	if !ok {
		return nil, nil
	}
	c := *m
	return &c, nil
}

func (r *MaterialRepo) Update(m *entity.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.materials[m.ID]; !ok {
		return nil
	}
	c := *m
	r.s.materials[m.ID] = &c
	return nil
}

func (r *MaterialRepo) Delete(id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.materials, id)
	return nil
}

func (r *MaterialRepo) List(limit, offset int) ([]*entity.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var all []*entity.Material
	for _, m := range r.s.materials {
		c := *m
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

func (r *MaterialRepo) AddAlternative(materialID, alternativeID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, b := materialID, alternativeID
	if a > b {
		a, b = b, a
	}
	r.s.alternatives[pairKey{a, b}] = struct{}{}
	return nil
}

func (r *MaterialRepo) RemoveAlternative(materialID, alternativeID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, b := materialID, alternativeID
	if a > b {
		a, b = b, a
	}
	delete(r.s.alternatives, pairKey{a, b})
	return nil
}

func (r *MaterialRepo) ListAlternatives(materialID int64) ([]*entity.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var list []*entity.Material
	for k := range r.s.alternatives {
		var other int64
		switch materialID {
		case k.A:
			other = k.B
		case k.B:
			other = k.A
		default:
			continue
		}
		if m, ok := r.s.materials[other]; ok {
			c := *m
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *MaterialRepo) CreateCategory(c *entity.MaterialCategory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.nextID("material_categories")
	cc := *c
	r.s.categories[c.ID] = &cc
	return nil
}

func (r *MaterialRepo) UpdateCategory(c *entity.MaterialCategory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; !ok {
		return nil
	}
	cc := *c
	r.s.categories[c.ID] = &cc
	return nil
}

func (r *MaterialRepo) DeleteCategory(id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.categories, id)
	return nil
}

func (r *MaterialRepo) ListCategories() ([]*entity.MaterialCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var list []*entity.MaterialCategory
	for _, c := range r.s.categories {
		cc := *c
		list = append(list, &cc)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Order == list[j].Order {
			return list[i].ID < list[j].ID
		}
		return list[i].Order < list[j].Order
	})
	return list, nil
}

var _ repository.WorkshopRepository = (*WorkshopRepo)(nil)

// WorkshopRepo talleres en memoria.
type WorkshopRepo struct {
	s *Store
}

func NewWorkshopRepository(s *Store) *WorkshopRepo {
	return &WorkshopRepo{s: s}
}

func (r *WorkshopRepo) Create(w *entity.Workshop) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w.ID = r.s.nextID("workshops")
	c := *w
	r.s.workshops[w.ID] = &c
	return nil
}

func (r *WorkshopRepo) GetByID(id int64) (*entity.Workshop, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.workshops[id]
	if !ok {
		return nil, nil
	}
	c := *w
	return &c, nil
}

func (r *WorkshopRepo) Update(w *entity.Workshop) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.workshops[w.ID]; !ok {
		return nil
	}
	c := *w
	r.s.workshops[w.ID] = &c
	return nil
}

func (r *WorkshopRepo) Delete(id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.workshops, id)
	return nil
}

func (r *WorkshopRepo) List() ([]*entity.Workshop, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var list []*entity.Workshop
	for _, w := range r.s.workshops {
		c := *w
		list = append(list, &c)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Name == list[j].Name {
			return list[i].ID < list[j].ID
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}
