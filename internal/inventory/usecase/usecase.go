package usecase

import (
	"context"
	"sync"

	"github.com/conso-maestro/conso-sync/internal/apperror"
	"github.com/conso-maestro/conso-sync/internal/expiration"
	"github.com/conso-maestro/conso-sync/internal/inventory"
	"github.com/conso-maestro/conso-sync/internal/logger"
	"github.com/conso-maestro/conso-sync/internal/model"
	"go.uber.org/zap"
)

type Options struct {
	// RefreshAfterDelete re-fetches the inventory once a delete is confirmed.
	RefreshAfterDelete bool
}

type inventoryUseCase struct {
	repo   inventory.Repository
	clock  expiration.Clock
	logger logger.ZapLogger
	opts   Options

	mu      sync.Mutex
	mirrors map[string]*mirror
	locks   *itemLocks
}

func NewInventoryUseCase(repo inventory.Repository, clock expiration.Clock, log logger.ZapLogger, opts Options) inventory.UseCase {
	if clock == nil {
		clock = expiration.SystemClock{}
	}
	return &inventoryUseCase{
		repo:    repo,
		clock:   clock,
		logger:  log,
		opts:    opts,
		mirrors: make(map[string]*mirror),
		locks:   newItemLocks(),
	}
}

// mirrorFor must be called with uc.mu held.
func (uc *inventoryUseCase) mirrorFor(userID string) *mirror {
	m, ok := uc.mirrors[userID]
	if !ok {
		m = &mirror{}
		uc.mirrors[userID] = m
	}
	return m
}

func (uc *inventoryUseCase) FetchInventory(ctx context.Context, userID string) ([]model.InventoryItem, error) {
	const op = "fetch inventory"
	if userID == "" {
		return nil, apperror.FetchFailed(op, userID, inventory.ErrEmptyUserID)
	}

	uc.mu.Lock()
	seq, startEpoch := uc.mirrorFor(userID).beginFetch()
	uc.mu.Unlock()

	items, err := uc.repo.ListByUser(ctx, userID)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	m := uc.mirrorFor(userID)
	applied := m.endFetch(seq, startEpoch, items, err == nil)
	if err != nil {
		uc.logger.Error("failed to fetch inventory", zap.String("user_id", userID), zap.Error(err))
		return nil, apperror.FetchFailed(op, userID, err)
	}
	if !applied {
		uc.logger.Debug("discarded stale inventory fetch", zap.String("user_id", userID), zap.Uint64("seq", seq))
	}
	return m.snapshot(), nil
}

func (uc *inventoryUseCase) AdvanceStorageLocation(ctx context.Context, userID string, item model.InventoryItem) (model.InventoryItem, error) {
	const op = "advance storage location"
	if userID == "" {
		return model.InventoryItem{}, apperror.UpdateFailed(op, userID, item.ID, inventory.ErrEmptyUserID)
	}

	unlock, err := uc.locks.Lock(ctx, lockKey(userID, item.ID))
	if err != nil {
		return model.InventoryItem{}, apperror.UpdateFailed(op, userID, item.ID, err)
	}
	defer unlock()

	// The mirror copy is authoritative for the current location; the caller's copy may
	// predate an advance that was queued ahead of this one.
	current, ok := uc.tracked(userID, item.ID)
	if !ok {
		return model.InventoryItem{}, apperror.UpdateFailed(op, userID, item.ID, inventory.ErrItemNotTracked)
	}
	if !current.StorageLocation.Valid() {
		return model.InventoryItem{}, apperror.UpdateFailed(op, userID, item.ID, inventory.ErrInvalidLocation)
	}
	target := current.StorageLocation.Next()

	if err := uc.repo.UpdateStorageLocation(ctx, item.ID, target); err != nil {
		uc.logger.Error("failed to update storage location",
			zap.String("user_id", userID),
			zap.String("item_id", item.ID),
			zap.Stringer("target", target),
			zap.Error(err),
		)
		return model.InventoryItem{}, apperror.UpdateFailed(op, userID, item.ID, err)
	}

	uc.mu.Lock()
	uc.mirrorFor(userID).confirm(confirmation{itemID: item.ID, location: target})
	uc.mu.Unlock()

	uc.logger.Info("storage location updated",
		zap.String("user_id", userID),
		zap.String("item_id", item.ID),
		zap.Stringer("from", current.StorageLocation),
		zap.Stringer("to", target),
	)
	return current.WithLocation(target), nil
}

func (uc *inventoryUseCase) DeleteItem(ctx context.Context, userID string, item model.InventoryItem) error {
	const op = "delete item"
	if userID == "" {
		return apperror.DeleteFailed(op, userID, item.ID, inventory.ErrEmptyUserID)
	}

	unlock, err := uc.locks.Lock(ctx, lockKey(userID, item.ID))
	if err != nil {
		return apperror.DeleteFailed(op, userID, item.ID, err)
	}

	if _, ok := uc.tracked(userID, item.ID); !ok {
		unlock()
		return apperror.DeleteFailed(op, userID, item.ID, inventory.ErrItemNotTracked)
	}

	if err := uc.repo.Delete(ctx, item.ID); err != nil {
		unlock()
		uc.logger.Error("failed to delete item",
			zap.String("user_id", userID),
			zap.String("item_id", item.ID),
			zap.Error(err),
		)
		return apperror.DeleteFailed(op, userID, item.ID, err)
	}

	uc.mu.Lock()
	uc.mirrorFor(userID).confirm(confirmation{itemID: item.ID, deleted: true})
	uc.mu.Unlock()
	unlock()

	uc.logger.Info("item deleted", zap.String("user_id", userID), zap.String("item_id", item.ID))

	if uc.opts.RefreshAfterDelete {
		if _, err := uc.FetchInventory(ctx, userID); err != nil {
			uc.logger.Warn("refresh after delete failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return nil
}

func (uc *inventoryUseCase) Items(userID string) []model.InventoryItem {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	m, ok := uc.mirrors[userID]
	if !ok {
		return []model.InventoryItem{}
	}
	return m.snapshot()
}

func (uc *inventoryUseCase) ItemsByLocation(userID string, loc model.StorageLocation) []model.InventoryItem {
	items := uc.Items(userID)
	out := items[:0]
	for _, item := range items {
		if item.StorageLocation == loc {
			out = append(out, item)
		}
	}
	return out
}

func (uc *inventoryUseCase) Classify(item model.InventoryItem) model.UrgencyLevel {
	return expiration.Classify(item, uc.clock.Now())
}

func (uc *inventoryUseCase) SelectResponse(item model.InventoryItem) model.ResponseKind {
	return expiration.SelectResponse(item, uc.clock.Now())
}

func (uc *inventoryUseCase) tracked(userID, itemID string) (model.InventoryItem, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	m, ok := uc.mirrors[userID]
	if !ok {
		return model.InventoryItem{}, false
	}
	idx := m.indexOf(itemID)
	if idx < 0 {
		return model.InventoryItem{}, false
	}
	return m.items[idx], true
}

func lockKey(userID, itemID string) string {
	return userID + "/" + itemID
}
