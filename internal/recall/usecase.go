package recall

import (
	"context"

	"github.com/conso-maestro/conso-sync/internal/model"
)

// State is the informational outcome of a recall lookup.
type State int

const (
	RecallsFound State = iota + 1
	NoRecallsFound
)

func (s State) String() string {
	switch s {
	case RecallsFound:
		return "RecallsFound"
	case NoRecallsFound:
		return "NoRecallsFound"
	default:
		return "unknown"
	}
}

type Result struct {
	State   State
	Records []model.RecallRecord
}

type UseCase interface {
	FetchRecalls(ctx context.Context, userID string) (*Result, error)
	LastRecalls(userID string) []model.RecallRecord
}
