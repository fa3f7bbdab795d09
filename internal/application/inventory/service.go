package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-hogar/internal/domain"
	"github.com/jhoicas/Inventario-hogar/internal/domain/entity"
	"github.com/jhoicas/Inventario-hogar/internal/domain/repository"
	"github.com/jhoicas/Inventario-hogar/pkg/logger"
)

// Service es el único punto de mutación sancionado del libro de inventario.
// Orquesta create/move/split/merge/adjust/remove de forma transaccional y escribe
// siempre el historial de movimientos. No invoca al validador: esa orquestación es
// responsabilidad del caller, lo que mantiene el libro testeable en aislamiento.
type Service struct {
	txRunner     TxRunner
	entryRepo    repository.InventoryEntryRepository  // atado al pool, solo lecturas
	historyRepo  repository.MovementHistoryRepository // atado al pool, para el modo no atómico
	itemRepo     repository.ItemRepository
	locationRepo repository.LocationRepository

	// historyAtomic: true = historial dentro de la misma transacción del libro;
	// false = historial best-effort después del commit (un fallo se loguea, no revierte el libro).
	historyAtomic bool
	log           *logger.Logger
}

// NewService construye el servicio de mutaciones.
func NewService(
	txRunner TxRunner,
	entryRepo repository.InventoryEntryRepository,
	historyRepo repository.MovementHistoryRepository,
	itemRepo repository.ItemRepository,
	locationRepo repository.LocationRepository,
	historyAtomic bool,
	log *logger.Logger,
) *Service {
	return &Service{
		txRunner:      txRunner,
		entryRepo:     entryRepo,
		historyRepo:   historyRepo,
		itemRepo:      itemRepo,
		locationRepo:  locationRepo,
		historyAtomic: historyAtomic,
		log:           log,
	}
}

func ptrInt64(v int64) *int64 { return &v }
func ptrStr(s string) *string { return &s }

// writeRecords escribe el historial dentro de la tx (modo atómico) o no hace nada
// para que el caller lo haga después del commit.
func (s *Service) writeRecords(historyRepo repository.MovementHistoryRepository, records []*entity.MovementHistoryRecord) error {
	if !s.historyAtomic {
		return nil
	}
	for _, rec := range records {
		if err := historyRepo.Create(rec); err != nil {
			return err
		}
	}
	return nil
}

// recordAfterCommit escribe el historial fuera de la transacción del libro.
// Un fallo aquí no revierte la mutación ya confirmada: se loguea como warning.
func (s *Service) recordAfterCommit(records []*entity.MovementHistoryRecord) {
	if s.historyAtomic {
		return
	}
	for _, rec := range records {
		if err := s.historyRepo.Create(rec); err != nil {
			s.log.Warn().Err(err).
				Str("item_id", rec.ItemID).
				Str("movement_type", rec.Type).
				Msg("no se pudo escribir el historial de movimientos (la mutación del libro ya fue confirmada)")
		}
	}
}

// lookupItem verifica que el artículo exista.
func (s *Service) lookupItem(itemID string) (*entity.Item, error) {
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// lookupLocation verifica que la ubicación exista.
func (s *Service) lookupLocation(locationID string) (*entity.Location, error) {
	loc, err := s.locationRepo.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	return loc, nil
}

// CreateEntry crea la primera fila del libro para el par (item, ubicación).
// Falla con ErrNotFound si el artículo o la ubicación no existen y con ErrConflict
// si ya hay una fila para el par.
func (s *Service) CreateEntry(ctx context.Context, itemID, locationID string, quantity int64, reason, actor string) (*entity.InventoryEntry, error) {
	if quantity < 1 {
		return nil, domain.ErrInvalidOperation
	}
	if _, err := s.lookupItem(itemID); err != nil {
		return nil, err
	}
	if _, err := s.lookupLocation(locationID); err != nil {
		return nil, err
	}

	now := time.Now()
	entry := &entity.InventoryEntry{ItemID: itemID, LocationID: locationID, Quantity: quantity, UpdatedAt: now}
	records := []*entity.MovementHistoryRecord{{
		ItemID:           itemID,
		Type:             entity.MovementTypeCreate,
		ToLocationID:     ptrStr(locationID),
		QuantityMoved:    quantity,
		QuantityBeforeTo: ptrInt64(0),
		QuantityAfterTo:  ptrInt64(quantity),
		Reason:           reason,
		Actor:            actor,
		CreatedAt:        now,
	}}

	err := s.txRunner.Run(ctx, func(entryRepo repository.InventoryEntryRepository, historyRepo repository.MovementHistoryRepository) error {
		existing, err := entryRepo.Get(itemID, locationID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrConflict
		}
		if err := entryRepo.Create(entry); err != nil {
			return err
		}
		return s.writeRecords(historyRepo, records)
	})
	if err != nil {
		return nil, err
	}
	s.recordAfterCommit(records)
	return entry, nil
}

// Move traslada quantity unidades del artículo entre dos ubicaciones.
// El decremento en origen y el incremento en destino ocurren en una sola transacción;
// si el origen llega exactamente a 0 su fila se elimina.
func (s *Service) Move(ctx context.Context, itemID, fromLocationID, toLocationID string, quantity int64, reason, actor string) (*entity.InventoryEntry, error) {
	return s.transfer(ctx, entity.MovementTypeMove, itemID, fromLocationID, toLocationID, quantity, reason, actor)
}

// Split es semánticamente idéntico a Move pero queda registrado con su propio tipo
// en el historial, para distinguir la intención del caller en la auditoría.
func (s *Service) Split(ctx context.Context, itemID, sourceLocationID, destLocationID string, quantityToMove int64, reason, actor string) (*entity.InventoryEntry, error) {
	return s.transfer(ctx, entity.MovementTypeSplit, itemID, sourceLocationID, destLocationID, quantityToMove, reason, actor)
}

// transfer implementa move/split: valida precondiciones, bloquea las filas implicadas
// (SELECT FOR UPDATE) y aplica resta+suma dentro de una transacción.
func (s *Service) transfer(ctx context.Context, movementType, itemID, fromLocationID, toLocationID string, quantity int64, reason, actor string) (*entity.InventoryEntry, error) {
	if fromLocationID == toLocationID {
		return nil, domain.ErrInvalidOperation
	}
	if quantity < 1 {
		return nil, domain.ErrInvalidOperation
	}
	if _, err := s.lookupItem(itemID); err != nil {
		return nil, err
	}
	if _, err := s.lookupLocation(toLocationID); err != nil {
		return nil, err
	}

	now := time.Now()
	var dest *entity.InventoryEntry
	var records []*entity.MovementHistoryRecord

	err := s.txRunner.Run(ctx, func(entryRepo repository.InventoryEntryRepository, historyRepo repository.MovementHistoryRepository) error {
		source, err := entryRepo.GetForUpdate(itemID, fromLocationID)
		if err != nil {
			return err
		}
		available := int64(0)
		if source != nil {
			available = source.Quantity
		}
		if available < quantity {
			return &domain.InsufficientQuantityError{Available: available, Requested: quantity}
		}

		// Resta en origen; la fila se elimina si queda exactamente en cero
		afterFrom := available - quantity
		if afterFrom == 0 {
			if err := entryRepo.Delete(itemID, fromLocationID); err != nil {
				return err
			}
		} else {
			source.Quantity = afterFrom
			source.UpdatedAt = now
			if err := entryRepo.Upsert(source); err != nil {
				return err
			}
		}

		// Suma en destino; la fila se crea si no existe
		dest, err = entryRepo.GetForUpdate(itemID, toLocationID)
		if err != nil {
			return err
		}
		beforeTo := int64(0)
		if dest == nil {
			dest = &entity.InventoryEntry{ItemID: itemID, LocationID: toLocationID}
		} else {
			beforeTo = dest.Quantity
		}
		dest.Quantity = beforeTo + quantity
		dest.UpdatedAt = now
		if err := entryRepo.Upsert(dest); err != nil {
			return err
		}

		records = []*entity.MovementHistoryRecord{{
			ItemID:             itemID,
			Type:               movementType,
			FromLocationID:     ptrStr(fromLocationID),
			ToLocationID:       ptrStr(toLocationID),
			QuantityMoved:      quantity,
			QuantityBeforeFrom: ptrInt64(available),
			QuantityAfterFrom:  ptrInt64(afterFrom),
			QuantityBeforeTo:   ptrInt64(beforeTo),
			QuantityAfterTo:    ptrInt64(dest.Quantity),
			Reason:             reason,
			Actor:              actor,
			CreatedAt:          now,
		}}
		return s.writeRecords(historyRepo, records)
	})
	if err != nil {
		return nil, err
	}
	s.recordAfterCommit(records)
	return dest, nil
}

// Merge consolida el artículo desde varias ubicaciones origen hacia una ubicación destino.
// Drena TODAS las filas origen sin excepción y escribe un registro de historial por cada
// origen (granularidad de auditoría por ubicación, no un registro agregado).
func (s *Service) Merge(ctx context.Context, itemID string, locationIDs []string, targetLocationID string, reason, actor string) (*entity.InventoryEntry, error) {
	if len(locationIDs) == 0 {
		return nil, domain.ErrInvalidOperation
	}
	// El destino no puede figurar entre los orígenes y un origen repetido
	// contaría la misma fila dos veces, inflando el destino
	seen := make(map[string]struct{}, len(locationIDs))
	for _, id := range locationIDs {
		if id == targetLocationID {
			return nil, domain.ErrInvalidOperation
		}
		if _, dup := seen[id]; dup {
			return nil, domain.ErrInvalidOperation
		}
		seen[id] = struct{}{}
	}
	if _, err := s.lookupItem(itemID); err != nil {
		return nil, err
	}
	if _, err := s.lookupLocation(targetLocationID); err != nil {
		return nil, err
	}

	now := time.Now()
	var target *entity.InventoryEntry
	var records []*entity.MovementHistoryRecord

	err := s.txRunner.Run(ctx, func(entryRepo repository.InventoryEntryRepository, historyRepo repository.MovementHistoryRepository) error {
		// Bloquea y recoge las filas origen existentes
		type sourceEntry struct {
			locationID string
			quantity   int64
		}
		var sources []sourceEntry
		for _, locID := range locationIDs {
			e, err := entryRepo.GetForUpdate(itemID, locID)
			if err != nil {
				return err
			}
			if e != nil {
				sources = append(sources, sourceEntry{locationID: locID, quantity: e.Quantity})
			}
		}
		if len(sources) == 0 {
			return domain.ErrNotFound
		}

		var err error
		target, err = entryRepo.GetForUpdate(itemID, targetLocationID)
		if err != nil {
			return err
		}
		beforeTarget := int64(0)
		if target == nil {
			target = &entity.InventoryEntry{ItemID: itemID, LocationID: targetLocationID}
		} else {
			beforeTarget = target.Quantity
		}

		// Drena cada origen y acumula en destino; un registro de historial por origen,
		// con las cantidades del destino avanzando en cadena para reconstruir la secuencia.
		running := beforeTarget
		records = records[:0]
		for _, src := range sources {
			if err := entryRepo.Delete(itemID, src.locationID); err != nil {
				return err
			}
			records = append(records, &entity.MovementHistoryRecord{
				ItemID:             itemID,
				Type:               entity.MovementTypeMerge,
				FromLocationID:     ptrStr(src.locationID),
				ToLocationID:       ptrStr(targetLocationID),
				QuantityMoved:      src.quantity,
				QuantityBeforeFrom: ptrInt64(src.quantity),
				QuantityAfterFrom:  ptrInt64(0),
				QuantityBeforeTo:   ptrInt64(running),
				QuantityAfterTo:    ptrInt64(running + src.quantity),
				Reason:             reason,
				Actor:              actor,
				CreatedAt:          now,
			})
			running += src.quantity
		}

		target.Quantity = running
		target.UpdatedAt = now
		if err := entryRepo.Upsert(target); err != nil {
			return err
		}
		return s.writeRecords(historyRepo, records)
	})
	if err != nil {
		return nil, err
	}
	s.recordAfterCommit(records)
	return target, nil
}

// Adjust fija la cantidad del par (item, ubicación) a newQuantity (recuento físico).
// newQuantity == 0 elimina la fila; newQuantity > 0 sin fila previa la crea con before=0.
// Devuelve nil cuando la fila quedó eliminada.
func (s *Service) Adjust(ctx context.Context, itemID, locationID string, newQuantity int64, reason, actor string) (*entity.InventoryEntry, error) {
	if newQuantity < 0 {
		return nil, domain.ErrInvalidOperation
	}
	if _, err := s.lookupItem(itemID); err != nil {
		return nil, err
	}
	if _, err := s.lookupLocation(locationID); err != nil {
		return nil, err
	}

	now := time.Now()
	var result *entity.InventoryEntry
	var records []*entity.MovementHistoryRecord

	err := s.txRunner.Run(ctx, func(entryRepo repository.InventoryEntryRepository, historyRepo repository.MovementHistoryRepository) error {
		current, err := entryRepo.GetForUpdate(itemID, locationID)
		if err != nil {
			return err
		}
		before := int64(0)
		if current != nil {
			before = current.Quantity
		}

		movementType := entity.MovementTypeAdjust
		switch {
		case newQuantity == 0 && current != nil:
			// Recuento a cero: baja de la fila
			if err := entryRepo.Delete(itemID, locationID); err != nil {
				return err
			}
			movementType = entity.MovementTypeRemove
			result = nil
		case newQuantity == 0 && current == nil:
			// Recuento que confirma un cero ya vigente; solo queda constancia en el historial
			movementType = entity.MovementTypeCreate
			result = nil
		default:
			if current == nil {
				current = &entity.InventoryEntry{ItemID: itemID, LocationID: locationID}
			}
			current.Quantity = newQuantity
			current.UpdatedAt = now
			if err := entryRepo.Upsert(current); err != nil {
				return err
			}
			result = current
		}

		// QuantityMoved en adjust es el delta con signo del recuento
		records = []*entity.MovementHistoryRecord{{
			ItemID:           itemID,
			Type:             movementType,
			ToLocationID:     ptrStr(locationID),
			QuantityMoved:    newQuantity - before,
			QuantityBeforeTo: ptrInt64(before),
			QuantityAfterTo:  ptrInt64(newQuantity),
			Reason:           reason,
			Actor:            actor,
			CreatedAt:        now,
		}}
		return s.writeRecords(historyRepo, records)
	})
	if err != nil {
		return nil, err
	}
	s.recordAfterCommit(records)
	return result, nil
}

// DeleteEntry elimina explícitamente la fila del par (item, ubicación), registrando
// un movimiento de tipo remove con la cantidad dada de baja.
func (s *Service) DeleteEntry(ctx context.Context, itemID, locationID string, reason, actor string) error {
	if _, err := s.lookupItem(itemID); err != nil {
		return err
	}
	if _, err := s.lookupLocation(locationID); err != nil {
		return err
	}

	now := time.Now()
	var records []*entity.MovementHistoryRecord

	err := s.txRunner.Run(ctx, func(entryRepo repository.InventoryEntryRepository, historyRepo repository.MovementHistoryRepository) error {
		current, err := entryRepo.GetForUpdate(itemID, locationID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if err := entryRepo.Delete(itemID, locationID); err != nil {
			return err
		}
		records = []*entity.MovementHistoryRecord{{
			ItemID:             itemID,
			Type:               entity.MovementTypeRemove,
			FromLocationID:     ptrStr(locationID),
			QuantityMoved:      current.Quantity,
			QuantityBeforeFrom: ptrInt64(current.Quantity),
			QuantityAfterFrom:  ptrInt64(0),
			Reason:             reason,
			Actor:              actor,
			CreatedAt:          now,
		}}
		return s.writeRecords(historyRepo, records)
	})
	if err != nil {
		return err
	}
	s.recordAfterCommit(records)
	return nil
}
