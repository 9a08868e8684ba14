package dto

import "github.com/conso-maestro/conso-sync/internal/model"

// CheckRecallResponse is the recall service payload. A missing or null recalls field
// means nothing was found.
type CheckRecallResponse struct {
	Recalls []model.RecallRecord `json:"recalls"`
}
