package diary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ldhishere/judo-diary/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	logsFileName      = "logs.json"
	favoritesFileName = "favorites.json"
)

// FileApi persists the diary as plain JSON files in a single directory,
// the server side twin of the original app's local storage
type FileApi struct {
	rootPath string
	mutex    sync.RWMutex
}

func NewFileApi(rootPath string) (*FileApi, error) {
	if rootPath == "" {
		return nil, errors.New("root path cannot be empty")
	}
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("create diary data dir: %w", err)
	}
	return &FileApi{
		rootPath: rootPath,
	}, nil
}

func (fa *FileApi) ListAll(_ context.Context) ([]TrainingLog, error) {
	fa.mutex.RLock()
	defer fa.mutex.RUnlock()

	return fa.readLogs()
}

func (fa *FileApi) GetByDate(_ context.Context, date string) (*TrainingLog, error) {
	fa.mutex.RLock()
	defer fa.mutex.RUnlock()

	logs, err := fa.readLogs()
	if err != nil {
		return nil, err
	}

	for _, tl := range logs {
		if tl.Date == date {
			return &tl, nil
		}
	}
	return nil, ErrLogNotFound
}

func (fa *FileApi) UpsertByDate(ctx context.Context, trainingLog TrainingLog) (_ *TrainingLog, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "diaryFileApi.upsertByDate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if trainingLog.Date == "" {
		return nil, errors.New("training log date empty")
	}

	fa.mutex.Lock()
	defer fa.mutex.Unlock()

	logs, err := fa.readLogs()
	if err != nil {
		return nil, err
	}

	existingIndex := -1
	for i, tl := range logs {
		if tl.Date == trainingLog.Date {
			existingIndex = i
			break
		}
	}

	if existingIndex >= 0 {
		// keep the id stable across edits of the same day
		trainingLog.ID = logs[existingIndex].ID
		logs[existingIndex] = trainingLog
	} else {
		if trainingLog.ID == "" {
			trainingLog.ID = uuid.NewString()
		}
		logs = append(logs, trainingLog)
	}

	if err := fa.writeJSONFile(logsFileName, logs); err != nil {
		return nil, err
	}

	log.Debugf("diary file api: log for [%s] saved", trainingLog.Date)

	return &trainingLog, nil
}

func (fa *FileApi) DeleteByDate(ctx context.Context, date string) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "diaryFileApi.deleteByDate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	fa.mutex.Lock()
	defer fa.mutex.Unlock()

	logs, err := fa.readLogs()
	if err != nil {
		return err
	}

	filtered := logs[:0]
	for _, tl := range logs {
		if tl.Date != date {
			filtered = append(filtered, tl)
		}
	}

	if len(filtered) == len(logs) {
		return ErrLogNotFound
	}

	return fa.writeJSONFile(logsFileName, filtered)
}

func (fa *FileApi) ReplaceAll(ctx context.Context, logs []TrainingLog) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "diaryFileApi.replaceAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	fa.mutex.Lock()
	defer fa.mutex.Unlock()

	if logs == nil {
		logs = []TrainingLog{}
	}

	return fa.writeJSONFile(logsFileName, logs)
}

func (fa *FileApi) Favorites(_ context.Context) ([]string, error) {
	fa.mutex.RLock()
	defer fa.mutex.RUnlock()

	var favorites []string
	if err := fa.readJSONFile(favoritesFileName, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

func (fa *FileApi) SetFavorites(_ context.Context, favorites []string) error {
	fa.mutex.Lock()
	defer fa.mutex.Unlock()

	if favorites == nil {
		favorites = []string{}
	}

	return fa.writeJSONFile(favoritesFileName, favorites)
}

func (fa *FileApi) readLogs() ([]TrainingLog, error) {
	var logs []TrainingLog
	if err := fa.readJSONFile(logsFileName, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (fa *FileApi) readJSONFile(fileName string, target any) error {
	data, err := os.ReadFile(filepath.Join(fa.rootPath, fileName))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", fileName, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("unmarshal %s: %w", fileName, err)
	}
	return nil
}

// writeJSONFile writes via a temp file plus rename, so a failed write
// never leaves a half written store behind
func (fa *FileApi) writeJSONFile(fileName string, content any) error {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", fileName, err)
	}

	path := filepath.Join(fa.rootPath, fileName)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename %s: %w", tmpPath, err)
	}
	return nil
}
