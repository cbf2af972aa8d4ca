package shopbridge

import (
	"sync"
	"time"
)

// Snapshot estado de la caché en un instante: pedidos y metadatos de frescura.
type Snapshot struct {
	Orders      []Order
	RefreshedAt time.Time
	LastError   string
}

// Fresh indica si la caché se refrescó alguna vez y no superó la edad máxima.
func (s Snapshot) Fresh(maxAge time.Duration, now time.Time) bool {
	if s.RefreshedAt.IsZero() {
		return false
	}
	return now.Sub(s.RefreshedAt) <= maxAge
}

// Cache caché de pedidos protegida por RWMutex. Las lecturas devuelven una
// copia del slice para que los llamadores no compartan memoria con el worker.
type Cache struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewCache caché vacía, sin refresco previo.
func NewCache() *Cache {
	return &Cache{}
}

// Get devuelve el snapshot actual.
func (c *Cache) Get() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := c.snap
	snap.Orders = append([]Order(nil), c.snap.Orders...)
	return snap
}

// SetOrders reemplaza los pedidos y marca el refresco como exitoso.
func (c *Cache) SetOrders(orders []Order, refreshedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap.Orders = append([]Order(nil), orders...)
	c.snap.RefreshedAt = refreshedAt
	c.snap.LastError = ""
}

// SetError registra un refresco fallido. Los pedidos anteriores se conservan.
func (c *Cache) SetError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap.LastError = err.Error()
}
