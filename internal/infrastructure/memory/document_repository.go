package memory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/prodflux/prodflux-api/internal/domain/entity"
	"github.com/prodflux/prodflux-api/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

// DeliveryRepo entregas en memoria. Los items se guardan en su propia tabla
// y se cargan al leer la entrega, igual que el adaptador de PostgreSQL.
type DeliveryRepo struct {
	s *Store
}

func NewDeliveryRepository(s *Store) *DeliveryRepo {
	return &DeliveryRepo{s: s}
}

func (r *DeliveryRepo) Create(d *entity.Delivery) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d.ID = r.s.nextID("deliveries")
	c := *d
	c.Items = nil
	r.s.deliveries[d.ID] = &c
	return nil
}

func (r *DeliveryRepo) CreateItem(item *entity.DeliveryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item.ID = r.s.nextID("delivery_items")
	c := *item
	r.s.deliveryItems[item.ID] = &c
	return nil
}

func (r *DeliveryRepo) GetByID(id int64) (*entity.Delivery, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.deliveries[id]
	if !ok {
		return nil, nil
	}
	c := *d
	c.Items = r.itemsLocked(id)
	return &c, nil
}

func (r *DeliveryRepo) Update(d *entity.Delivery) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.deliveries[d.ID]; !ok {
		return nil
	}
	c := *d
	c.Items = nil
	r.s.deliveries[d.ID] = &c
	return nil
}

func (r *DeliveryRepo) DeleteItems(deliveryID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, it := range r.s.deliveryItems {
		if it.DeliveryID == deliveryID {
			delete(r.s.deliveryItems, id)
		}
	}
	return nil
}

func (r *DeliveryRepo) Delete(id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.deliveries, id)
	return nil
}

func (r *DeliveryRepo) List(limit, offset int) ([]*entity.Delivery, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var all []*entity.Delivery
	for _, d := range r.s.deliveries {
		c := *d
		c.Items = r.itemsLocked(d.ID)
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return paginate(all, limit, offset), nil
}

func (r *DeliveryRepo) itemsLocked(deliveryID int64) []entity.DeliveryItem {
	var items []entity.DeliveryItem
	for _, it := range r.s.deliveryItems {
		if it.DeliveryID == deliveryID {
			items = append(items, *it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo traslados en memoria.
type TransferRepo struct {
	s *Store
}

func NewTransferRepository(s *Store) *TransferRepo {
	return &TransferRepo{s: s}
}

func (r *TransferRepo) Create(t *entity.Transfer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = r.s.nextID("transfers")
	c := *t
	c.Items = nil
	r.s.transfers[t.ID] = &c
	return nil
}

func (r *TransferRepo) CreateItem(item *entity.TransferItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item.ID = r.s.nextID("transfer_items")
	c := *item
	r.s.transferItems[item.ID] = &c
	return nil
}

func (r *TransferRepo) GetByID(id int64) (*entity.Transfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transfers[id]
	if !ok {
		return nil, nil
	}
	c := *t
	c.Items = r.itemsLocked(id)
	return &c, nil
}

func (r *TransferRepo) Update(t *entity.Transfer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.transfers[t.ID]; !ok {
		return nil
	}
	c := *t
	c.Items = nil
	r.s.transfers[t.ID] = &c
	return nil
}

func (r *TransferRepo) DeleteItems(transferID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, it := range r.s.transferItems {
		if it.TransferID == transferID {
			delete(r.s.transferItems, id)
		}
	}
	return nil
}

func (r *TransferRepo) Delete(id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.transfers, id)
	return nil
}

func (r *TransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var all []*entity.Transfer
	for _, t := range r.s.transfers {
		c := *t
		c.Items = r.itemsLocked(t.ID)
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return paginate(all, limit, offset), nil
}

func (r *TransferRepo) itemsLocked(transferID int64) []entity.TransferItem {
	var items []entity.TransferItem
	for _, it := range r.s.transferItems {
		if it.TransferID == transferID {
			items = append(items, *it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo órdenes de compra en memoria.
type OrderRepo struct {
	s *Store
}

func NewOrderRepository(s *Store) *OrderRepo {
	return &OrderRepo{s: s}
}

func (r *OrderRepo) Create(o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o.ID = r.s.nextID("orders")
	c := *o
	c.Items = nil
	r.s.orders[o.ID] = &c
	return nil
}

func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item.ID = r.s.nextID("order_items")
	c := *item
	r.s.orderItems[item.ID] = &c
	return nil
}

func (r *OrderRepo) GetByID(id int64) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	c := *o
	c.Items = r.itemsLocked(id)
	return &c, nil
}

func (r *OrderRepo) Update(o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[o.ID]; !ok {
		return nil
	}
	c := *o
	c.Items = nil
	r.s.orders[o.ID] = &c
	return nil
}

func (r *OrderRepo) DeleteItems(orderID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, it := range r.s.orderItems {
		if it.OrderID == orderID {
			delete(r.s.orderItems, id)
		}
	}
	return nil
}

func (r *OrderRepo) Delete(id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.orders, id)
	return nil
}

func (r *OrderRepo) List(limit, offset int) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var all []*entity.Order
	for _, o := range r.s.orders {
		c := *o
		c.Items = r.itemsLocked(o.ID)
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].OrderedAt.Equal(all[j].OrderedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].OrderedAt.After(all[j].OrderedAt)
	})
	return paginate(all, limit, offset), nil
}

func (r *OrderRepo) OpenQuantityByMaterial(materialID int64) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	total := decimal.Zero
	for _, it := range r.s.orderItems {
		if it.MaterialID != materialID {
			continue
		}
		o, ok := r.s.orders[it.OrderID]
		if !ok || !o.Open() {
			continue
		}
		total = total.Add(it.Quantity)
	}
	return total, nil
}

func (r *OrderRepo) itemsLocked(orderID int64) []entity.OrderItem {
	var items []entity.OrderItem
	for _, it := range r.s.orderItems {
		if it.OrderID == orderID {
			items = append(items, *it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}
