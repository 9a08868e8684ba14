package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/conso-maestro/conso-sync/internal/model"
)

const dateLayout = "2006-01-02"

// ProductPayload is an inventory item as the remote service serializes it.
type ProductPayload struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Dlc          string `json:"dlc"`
	StoragePlace string `json:"storagePlace"`
}

type InventoryResponse struct {
	Result  bool             `json:"result"`
	Data    []ProductPayload `json:"data"`
	Message string           `json:"message,omitempty"`
}

type MutationResponse struct {
	Result  bool   `json:"result"`
	Message string `json:"message,omitempty"`
}

type UpdateStoragePlaceInput struct {
	NewStoragePlace string `json:"newStoragePlace"`
}

// ToModel validates the payload. Items without an id or with an unknown storage place
// are rejected.
func (p ProductPayload) ToModel() (model.InventoryItem, error) {
	if p.ID == "" {
		return model.InventoryItem{}, errors.New("product without _id")
	}
	loc, err := model.ParseStorageLocation(p.StoragePlace)
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("product %s: %w", p.ID, err)
	}
	dlc, err := ParseDate(p.Dlc)
	if err != nil {
		return model.InventoryItem{}, fmt.Errorf("product %s: %w", p.ID, err)
	}
	return model.InventoryItem{
		ID:              p.ID,
		Name:            p.Name,
		ExpirationDate:  dlc,
		StorageLocation: loc,
	}, nil
}

func FromModel(item model.InventoryItem) ProductPayload {
	return ProductPayload{
		ID:           item.ID,
		Name:         item.Name,
		Dlc:          FormatDate(item.ExpirationDate),
		StoragePlace: item.StorageLocation.String(),
	}
}

// ParseDate accepts a bare YYYY-MM-DD date or an RFC 3339 timestamp. Only the calendar
// date written in the timestamp's own offset is kept, at midnight UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid dlc %q", s)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
