package inventory

import (
	"context"

	"github.com/conso-maestro/conso-sync/internal/model"
)

// Repository is the remote, authoritative inventory store.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]model.InventoryItem, error)
	UpdateStorageLocation(ctx context.Context, itemID string, loc model.StorageLocation) error
	Delete(ctx context.Context, itemID string) error
}
