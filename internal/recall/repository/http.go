package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/conso-maestro/conso-sync/internal/model"
	"github.com/conso-maestro/conso-sync/internal/recall/dto"
	"github.com/conso-maestro/conso-sync/internal/remote"
)

type HTTPRepository struct {
	client *remote.Client
}

func NewHTTPRepository(client *remote.Client) *HTTPRepository {
	return &HTTPRepository{client: client}
}

func (r *HTTPRepository) CheckRecalls(ctx context.Context, userID string) ([]model.RecallRecord, error) {
	var raw json.RawMessage
	if err := r.client.Do(ctx, http.MethodGet, "/rappels/check-recall/"+url.PathEscape(userID), nil, &raw); err != nil {
		return nil, err
	}

	// A JSON null or false body carries no recalls.
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("false")) {
		return nil, nil
	}

	var resp dto.CheckRecallResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, fmt.Errorf("decode recall response: %w", err)
	}
	return resp.Recalls, nil
}
