package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/conso-maestro/conso-sync/internal/apperror"
	"github.com/conso-maestro/conso-sync/internal/logger"
	"github.com/conso-maestro/conso-sync/internal/model"
	"github.com/conso-maestro/conso-sync/internal/recall"
	"github.com/conso-maestro/conso-sync/internal/remote"
	"go.uber.org/zap"
)

type recallUseCase struct {
	repo   recall.Repository
	logger logger.ZapLogger

	mu   sync.Mutex
	last map[string][]model.RecallRecord
}

func NewRecallUseCase(repo recall.Repository, log logger.ZapLogger) recall.UseCase {
	return &recallUseCase{
		repo:   repo,
		logger: log,
		last:   make(map[string][]model.RecallRecord),
	}
}

// FetchRecalls reports transport and decoding failures as FetchFailed. An answer
// without recalls, or an error status from the service, yields NoRecallsFound.
func (uc *recallUseCase) FetchRecalls(ctx context.Context, userID string) (*recall.Result, error) {
	const op = "fetch recalls"
	if userID == "" {
		return nil, apperror.FetchFailed(op, userID, recall.ErrEmptyUserID)
	}

	records, err := uc.repo.CheckRecalls(ctx, userID)
	var statusErr *remote.StatusError
	if errors.As(err, &statusErr) {
		uc.logger.Warn("recall service answered with an error status",
			zap.String("user_id", userID),
			zap.Int("status", statusErr.StatusCode),
		)
		records, err = nil, nil
	}
	if err != nil {
		uc.logger.Error("failed to fetch recalls", zap.String("user_id", userID), zap.Error(err))
		return nil, apperror.FetchFailed(op, userID, err)
	}

	stored := make([]model.RecallRecord, len(records))
	copy(stored, records)

	uc.mu.Lock()
	uc.last[userID] = stored
	uc.mu.Unlock()

	if len(records) == 0 {
		uc.logger.Info("no recalls found", zap.String("user_id", userID))
		return &recall.Result{State: recall.NoRecallsFound, Records: []model.RecallRecord{}}, nil
	}

	uc.logger.Info("recalls found", zap.String("user_id", userID), zap.Int("count", len(records)))
	out := make([]model.RecallRecord, len(records))
	copy(out, records)
	return &recall.Result{State: recall.RecallsFound, Records: out}, nil
}

func (uc *recallUseCase) LastRecalls(userID string) []model.RecallRecord {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	records := uc.last[userID]
	out := make([]model.RecallRecord, len(records))
	copy(out, records)
	return out
}
