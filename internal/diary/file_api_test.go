package diary

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileApi(t *testing.T) {
	_, err := NewFileApi("")
	require.Error(t, err)

	rootPath := filepath.Join(t.TempDir(), "diary-data")
	fileApi, err := NewFileApi(rootPath)
	require.NoError(t, err)
	require.NotNil(t, fileApi)

	// data dir gets created
	info, err := os.Stat(rootPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileApi_EmptyStore(t *testing.T) {
	ctx := context.Background()
	fileApi, err := NewFileApi(t.TempDir())
	require.NoError(t, err)

	logs, err := fileApi.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, logs)

	_, err = fileApi.GetByDate(ctx, "2025-06-01")
	assert.True(t, errors.Is(err, ErrLogNotFound))

	err = fileApi.DeleteByDate(ctx, "2025-06-01")
	assert.True(t, errors.Is(err, ErrLogNotFound))

	favorites, err := fileApi.Favorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestFileApi_UpsertByDate(t *testing.T) {
	ctx := context.Background()
	fileApi, err := NewFileApi(t.TempDir())
	require.NoError(t, err)

	saved, err := fileApi.UpsertByDate(ctx, TrainingLog{
		Date:       "2025-06-01",
		Techniques: "Seoi-nage, Uchi-mata",
		Condition:  ConditionGood,
		Intensity:  IntensityMedium,
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.NotEmpty(t, saved.ID)

	_, err = fileApi.UpsertByDate(ctx, TrainingLog{Date: "2025-06-02", Techniques: "Seoi-nage"})
	require.NoError(t, err)

	// saving the same day again replaces the log but keeps the id
	replaced, err := fileApi.UpsertByDate(ctx, TrainingLog{
		Date:       "2025-06-01",
		Techniques: "Osoto-gari",
		Condition:  ConditionBad,
		Intensity:  IntensityHigh,
	})
	require.NoError(t, err)
	assert.Equal(t, saved.ID, replaced.ID)

	logs, err := fileApi.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	got, err := fileApi.GetByDate(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, "Osoto-gari", got.Techniques)
	assert.Equal(t, ConditionBad, got.Condition)

	_, err = fileApi.UpsertByDate(ctx, TrainingLog{Techniques: "Seoi-nage"})
	assert.Error(t, err)
}

func TestFileApi_DeleteByDate(t *testing.T) {
	ctx := context.Background()
	fileApi, err := NewFileApi(t.TempDir())
	require.NoError(t, err)

	_, err = fileApi.UpsertByDate(ctx, TrainingLog{Date: "2025-06-01", Techniques: "Seoi-nage"})
	require.NoError(t, err)
	_, err = fileApi.UpsertByDate(ctx, TrainingLog{Date: "2025-06-02", Techniques: "Uchi-mata"})
	require.NoError(t, err)

	require.NoError(t, fileApi.DeleteByDate(ctx, "2025-06-01"))

	_, err = fileApi.GetByDate(ctx, "2025-06-01")
	assert.True(t, errors.Is(err, ErrLogNotFound))

	logs, err := fileApi.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "2025-06-02", logs[0].Date)

	err = fileApi.DeleteByDate(ctx, "2025-06-01")
	assert.True(t, errors.Is(err, ErrLogNotFound))
}

func TestFileApi_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	fileApi, err := NewFileApi(t.TempDir())
	require.NoError(t, err)

	_, err = fileApi.UpsertByDate(ctx, TrainingLog{Date: "2025-06-01", Techniques: "Seoi-nage"})
	require.NoError(t, err)

	restored := []TrainingLog{
		{ID: "id-1", Date: "2025-05-10", Techniques: "Uchi-mata"},
		{ID: "id-2", Date: "2025-05-11", Techniques: "Osoto-gari"},
	}
	require.NoError(t, fileApi.ReplaceAll(ctx, restored))

	logs, err := fileApi.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, restored, logs)

	require.NoError(t, fileApi.ReplaceAll(ctx, nil))
	logs, err = fileApi.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestFileApi_Favorites(t *testing.T) {
	ctx := context.Background()
	fileApi, err := NewFileApi(t.TempDir())
	require.NoError(t, err)

	favorites := []string{"Seoi-nage", "Uchi-mata"}
	require.NoError(t, fileApi.SetFavorites(ctx, favorites))

	got, err := fileApi.Favorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, favorites, got)

	require.NoError(t, fileApi.SetFavorites(ctx, nil))
	got, err = fileApi.Favorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileApi_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	rootPath := t.TempDir()

	fileApi, err := NewFileApi(rootPath)
	require.NoError(t, err)
	saved, err := fileApi.UpsertByDate(ctx, TrainingLog{Date: "2025-06-01", Techniques: "Seoi-nage"})
	require.NoError(t, err)
	require.NoError(t, fileApi.SetFavorites(ctx, []string{"Seoi-nage"}))

	reopened, err := NewFileApi(rootPath)
	require.NoError(t, err)

	got, err := reopened.GetByDate(ctx, "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "Seoi-nage", got.Techniques)

	favorites, err := reopened.Favorites(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Seoi-nage"}, favorites)
}

func TestFileApi_CorruptedStore(t *testing.T) {
	ctx := context.Background()
	rootPath := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(rootPath, logsFileName), []byte("{broken"), 0o644))

	fileApi, err := NewFileApi(rootPath)
	require.NoError(t, err)

	_, err = fileApi.ListAll(ctx)
	assert.Error(t, err)
}
