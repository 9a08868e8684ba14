package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/conso-maestro/conso-sync/internal/inventory/dto"
	"github.com/conso-maestro/conso-sync/internal/model"
	"github.com/conso-maestro/conso-sync/internal/remote"
)

// RejectedError is returned when the service answers with result=false.
type RejectedError struct {
	Op      string
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return e.Op + ": rejected by remote service"
	}
	return e.Op + ": rejected by remote service: " + e.Message
}

type HTTPRepository struct {
	client *remote.Client
}

func NewHTTPRepository(client *remote.Client) *HTTPRepository {
	return &HTTPRepository{client: client}
}

func (r *HTTPRepository) ListByUser(ctx context.Context, userID string) ([]model.InventoryItem, error) {
	var resp dto.InventoryResponse
	if err := r.client.Do(ctx, http.MethodGet, "/frigo/"+url.PathEscape(userID), nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Result {
		return nil, &RejectedError{Op: "list inventory", Message: resp.Message}
	}

	items := make([]model.InventoryItem, 0, len(resp.Data))
	for _, p := range resp.Data {
		item, err := p.ToModel()
		if err != nil {
			return nil, fmt.Errorf("list inventory: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *HTTPRepository) UpdateStorageLocation(ctx context.Context, itemID string, loc model.StorageLocation) error {
	body := dto.UpdateStoragePlaceInput{NewStoragePlace: loc.String()}
	var resp dto.MutationResponse
	if err := r.client.Do(ctx, http.MethodPut, "/products/"+url.PathEscape(itemID), body, &resp); err != nil {
		return err
	}
	if !resp.Result {
		return &RejectedError{Op: "update storage place", Message: resp.Message}
	}
	return nil
}

func (r *HTTPRepository) Delete(ctx context.Context, itemID string) error {
	var resp dto.MutationResponse
	if err := r.client.Do(ctx, http.MethodDelete, "/products/"+url.PathEscape(itemID), nil, &resp); err != nil {
		return err
	}
	if !resp.Result {
		return &RejectedError{Op: "delete product", Message: resp.Message}
	}
	return nil
}
