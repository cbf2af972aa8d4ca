package documents

import (
	"sort"
	"time"

	"github.com/prodflux/prodflux-api/internal/domain/entity"
	"github.com/prodflux/prodflux-api/internal/domain/repository"
)

// stockPair par (material, taller) afectado por una operación de documento.
type stockPair struct {
	MaterialID int64
	WorkshopID int64
}

// lockPairs toma los bloqueos de fila de todos los pares en orden canónico
// ascendente (material, taller). Los bloqueos posteriores sobre las mismas filas
// dentro de la transacción son reentrantes; fijar el orden aquí evita deadlocks
// ABBA entre documentos concurrentes de varias líneas.
func lockPairs(stockRepo repository.StockRepository, pairs map[stockPair]struct{}) error {
	ordered := make([]stockPair, 0, len(pairs))
	for p := range pairs {
		ordered = append(ordered, p)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].MaterialID != ordered[j].MaterialID {
			return ordered[i].MaterialID < ordered[j].MaterialID
		}
		return ordered[i].WorkshopID < ordered[j].WorkshopID
	})
	for _, p := range ordered {
		if _, err := stockRepo.GetForUpdate(p.MaterialID, p.WorkshopID); err != nil {
			return err
		}
	}
	return nil
}

// reverseOriginMovements revierte en el balance el efecto de todos los
// movimientos de un origen y los elimina. La reversión no se valida: el estado
// intermedio solo existe dentro de la transacción y los items nuevos se validan
// contra el balance ya recalculado.
func reverseOriginMovements(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	kind entity.OriginKind,
	originID int64,
	now time.Time,
) (map[stockPair]struct{}, error) {
	movements, err := movRepo.ListByOrigin(kind, originID)
	if err != nil {
		return nil, err
	}
	touched := make(map[stockPair]struct{}, len(movements))
	for _, m := range movements {
		touched[stockPair{MaterialID: m.MaterialID, WorkshopID: m.WorkshopID}] = struct{}{}
	}
	if err := lockPairs(stockRepo, touched); err != nil {
		return nil, err
	}
	for _, m := range movements {
		current, err := stockRepo.GetForUpdate(m.MaterialID, m.WorkshopID)
		if err != nil {
			return nil, err
		}
		current.Quantity = current.Quantity.Sub(m.Quantity)
		current.UpdatedAt = now
		if err := stockRepo.Upsert(current); err != nil {
			return nil, err
		}
	}
	if err := movRepo.DeleteByOrigin(kind, originID); err != nil {
		return nil, err
	}
	return touched, nil
}
