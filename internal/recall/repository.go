package recall

import (
	"context"

	"github.com/conso-maestro/conso-sync/internal/model"
)

type Repository interface {
	// CheckRecalls returns the recalls matching the user's products. A nil slice with a
	// nil error means the service answered without any recall.
	CheckRecalls(ctx context.Context, userID string) ([]model.RecallRecord, error)
}
