package entity

// MaterialCategory categoría para agrupar materiales en listados (orden fijo).
type MaterialCategory struct {
	ID    int64
	Name  string
	Order int
}

// Material materia prima o componente usado en fabricación.
// La relación "alternatives" es simétrica: si A es alternativa de B, B lo es de A.
type Material struct {
	ID               int64
	Name             string
	ManufacturerName string
	OrderNumber      string // número de pedido del fabricante
	CategoryID       *int64
	Deprecated       bool
}
