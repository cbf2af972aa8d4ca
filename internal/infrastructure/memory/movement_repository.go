package memory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/prodflux/prodflux-api/internal/domain/entity"
	"github.com/prodflux/prodflux-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos en memoria.
type MovementRepo struct {
	s *Store
}

func NewMovementRepository(s *Store) *MovementRepo {
	return &MovementRepo{s: s}
}

func (r *MovementRepo) Create(m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.ID = r.s.nextID("movements")
	r.s.movements[m.ID] = cloneMovement(m)
	return nil
}

func (r *MovementRepo) GetByID(id int64) (*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	return cloneMovement(m), nil
}

func (r *MovementRepo) Update(m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.movements[m.ID]
	if !ok {
		return nil
	}
	stored.Quantity = m.Quantity
	stored.Note = m.Note
	return nil
}

func (r *MovementRepo) Delete(id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.movements, id)
	return nil
}

func (r *MovementRepo) ListByMaterial(materialID int64, workshopID *int64, limit, offset int) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var all []*entity.Movement
	for _, m := range r.s.movements {
		if m.MaterialID != materialID {
			continue
		}
		if workshopID != nil && m.WorkshopID != *workshopID {
			continue
		}
		all = append(all, cloneMovement(m))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return paginate(all, limit, offset), nil
}

func (r *MovementRepo) ListByOrigin(kind entity.OriginKind, originID int64) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var list []*entity.Movement
	for _, m := range r.s.movements {
		if m.Origin != nil && m.Origin.Kind == kind && m.Origin.ID == originID {
			list = append(list, cloneMovement(m))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *MovementRepo) DeleteByOrigin(kind entity.OriginKind, originID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, m := range r.s.movements {
		if m.Origin != nil && m.Origin.Kind == kind && m.Origin.ID == originID {
			delete(r.s.movements, id)
		}
	}
	return nil
}

func (r *MovementRepo) SumQuantity(materialID, workshopID int64) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	total := decimal.Zero
	for _, m := range r.s.movements {
		if m.MaterialID == materialID && m.WorkshopID == workshopID {
			total = total.Add(m.Quantity)
		}
	}
	return total, nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
