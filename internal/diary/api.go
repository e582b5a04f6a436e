package diary

import (
	"context"
	"errors"
)

var ErrLogNotFound = errors.New("training log not found")

var _ Api = (*FileApi)(nil)
var _ Api = (*TestApi)(nil)

// Api is the record store boundary: a flat collection of training logs with
// at most one log per calendar date, plus the favorite techniques list.
type Api interface {
	ListAll(ctx context.Context) ([]TrainingLog, error)
	GetByDate(ctx context.Context, date string) (*TrainingLog, error)
	// UpsertByDate replaces the log sharing the same date, else inserts.
	// The id of a replaced log is kept, a new log gets a fresh one.
	UpsertByDate(ctx context.Context, trainingLog TrainingLog) (*TrainingLog, error)
	DeleteByDate(ctx context.Context, date string) error
	// ReplaceAll swaps the whole collection (backup restore)
	ReplaceAll(ctx context.Context, logs []TrainingLog) error
	Favorites(ctx context.Context) ([]string, error)
	SetFavorites(ctx context.Context, favorites []string) error
}
