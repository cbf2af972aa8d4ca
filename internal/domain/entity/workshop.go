package entity

// Workshop taller físico; toda cantidad de stock está acotada a una bodega/taller.
type Workshop struct {
	ID   int64
	Name string
}
