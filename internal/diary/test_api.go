package diary

import (
	"context"
)

// TestApi is an in-memory diary store for unit tests
type TestApi struct {
	logs      map[string]TrainingLog // keyed by date
	favorites []string
}

func NewTestApi() *TestApi {
	return &TestApi{
		logs: make(map[string]TrainingLog),
	}
}

func (ta *TestApi) ListAll(_ context.Context) ([]TrainingLog, error) {
	var logs []TrainingLog
	for _, tl := range ta.logs {
		logs = append(logs, tl)
	}
	return logs, nil
}

func (ta *TestApi) GetByDate(_ context.Context, date string) (*TrainingLog, error) {
	tl, ok := ta.logs[date]
	if !ok {
		return nil, ErrLogNotFound
	}
	return &tl, nil
}

func (ta *TestApi) UpsertByDate(_ context.Context, trainingLog TrainingLog) (*TrainingLog, error) {
	if existing, ok := ta.logs[trainingLog.Date]; ok {
		trainingLog.ID = existing.ID
	} else if trainingLog.ID == "" {
		trainingLog.ID = "test-id-" + trainingLog.Date
	}
	ta.logs[trainingLog.Date] = trainingLog
	return &trainingLog, nil
}

func (ta *TestApi) DeleteByDate(_ context.Context, date string) error {
	if _, ok := ta.logs[date]; !ok {
		return ErrLogNotFound
	}
	delete(ta.logs, date)
	return nil
}

func (ta *TestApi) ReplaceAll(_ context.Context, logs []TrainingLog) error {
	ta.logs = make(map[string]TrainingLog)
	for _, tl := range logs {
		ta.logs[tl.Date] = tl
	}
	return nil
}

func (ta *TestApi) Favorites(_ context.Context) ([]string, error) {
	return ta.favorites, nil
}

func (ta *TestApi) SetFavorites(_ context.Context, favorites []string) error {
	ta.favorites = favorites
	return nil
}
