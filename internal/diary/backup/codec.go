package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ldhishere/judo-diary/internal/diary"
	"github.com/ldhishere/judo-diary/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

const SnapshotVersion = "1.0"

// ErrInvalidBackup flags an unparsable snapshot or one missing the logs list
var ErrInvalidBackup = errors.New("invalid backup")

// Snapshot is the portable point in time copy of the whole journal
type Snapshot struct {
	Version   string              `json:"version"`
	Timestamp string              `json:"timestamp"`
	Logs      []diary.TrainingLog `json:"logs"`
	Favorites []string            `json:"favorites"`
}

// Codec turns the record store into portable snapshots and back. It never
// touches the filesystem itself, callers own the file plumbing.
type Codec struct {
	api diary.Api

	// NowFunc is replaceable in tests
	NowFunc func() time.Time
}

func NewCodec(api diary.Api) *Codec {
	return &Codec{
		api:     api,
		NowFunc: time.Now,
	}
}

// Export serializes the full journal, logs and favorites, into an indented
// snapshot document
func (c *Codec) Export(ctx context.Context) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "backup.export")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	logs, err := c.api.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	if logs == nil {
		logs = []diary.TrainingLog{}
	}

	favorites, err := c.api.Favorites(ctx)
	if err != nil {
		return nil, fmt.Errorf("get favorites: %w", err)
	}
	if favorites == nil {
		favorites = []string{}
	}

	snapshot := Snapshot{
		Version:   SnapshotVersion,
		Timestamp: c.NowFunc().UTC().Format(time.RFC3339),
		Logs:      logs,
		Favorites: favorites,
	}

	snapshotJson, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	log.Debugf("backup exported: %d logs, %d favorites", len(logs), len(favorites))

	return snapshotJson, nil
}

// rawSnapshot keeps the two payload fields raw so their shape can be
// checked before anything gets written
type rawSnapshot struct {
	Logs      json.RawMessage `json:"logs"`
	Favorites json.RawMessage `json:"favorites"`
}

// Import parses a snapshot document and wholesale replaces the record store
// with its logs. Favorites are replaced only when the snapshot carries a
// valid favorites list, a missing one leaves the existing favorites alone.
// On any validation failure the store stays untouched.
func (c *Codec) Import(ctx context.Context, document []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "backup.import")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var raw rawSnapshot
	if err := json.Unmarshal(document, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidBackup, err)
	}

	if len(raw.Logs) == 0 || string(raw.Logs) == "null" {
		return fmt.Errorf("%w: missing logs", ErrInvalidBackup)
	}

	var logs []diary.TrainingLog
	if err := json.Unmarshal(raw.Logs, &logs); err != nil {
		return fmt.Errorf("%w: logs not a list: %s", ErrInvalidBackup, err)
	}

	// favorites are optional, but when present they have to be list shaped
	var favorites []string
	replaceFavorites := false
	if len(raw.Favorites) > 0 && string(raw.Favorites) != "null" {
		if err := json.Unmarshal(raw.Favorites, &favorites); err == nil {
			replaceFavorites = true
		}
	}

	if err := c.api.ReplaceAll(ctx, logs); err != nil {
		return fmt.Errorf("replace logs: %w", err)
	}
	if replaceFavorites {
		if err := c.api.SetFavorites(ctx, favorites); err != nil {
			return fmt.Errorf("replace favorites: %w", err)
		}
	}

	log.Debugf("backup imported: %d logs, favorites replaced: %t", len(logs), replaceFavorites)

	return nil
}

// ExportFileName names the downloadable snapshot after the export day
func ExportFileName(day time.Time) string {
	return fmt.Sprintf("judo_diary_backup_%s.json", day.Format(diary.DateLayout))
}
