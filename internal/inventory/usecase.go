package inventory

import (
	"context"

	"github.com/conso-maestro/conso-sync/internal/model"
)

type UseCase interface {
	FetchInventory(ctx context.Context, userID string) ([]model.InventoryItem, error)
	AdvanceStorageLocation(ctx context.Context, userID string, item model.InventoryItem) (model.InventoryItem, error)
	DeleteItem(ctx context.Context, userID string, item model.InventoryItem) error

	Items(userID string) []model.InventoryItem
	ItemsByLocation(userID string, loc model.StorageLocation) []model.InventoryItem

	Classify(item model.InventoryItem) model.UrgencyLevel
	SelectResponse(item model.InventoryItem) model.ResponseKind
}
