package backup

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ldhishere/judo-diary/internal/telemetry/metrics"
	"github.com/ldhishere/judo-diary/internal/telemetry/tracing"
	"github.com/ldhishere/judo-diary/pkg"

	log "github.com/sirupsen/logrus"
)

// snapshots can hold years of logs, but nowhere near this
const maxImportSize = 16 << 20

type Handler struct {
	codec   *Codec
	metrics *metrics.Manager
}

func NewHandler(codec *Codec, metrics *metrics.Manager) *Handler {
	return &Handler{
		codec:   codec,
		metrics: metrics,
	}
}

// HandleExport streams the snapshot as a downloadable json document
func (handler *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.backup.export")
	defer span.End()

	snapshotJson, err := handler.codec.Export(ctx)
	if err != nil {
		log.Errorf("backup export error: %s", err)
		http.Error(w, "failed to export backup", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterBackupsExported.Inc()

	fileName := ExportFileName(handler.codec.NowFunc())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, snapshotJson, http.StatusOK)
}

func (handler *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.backup.import")
	defer span.End()

	document, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		log.Errorf("backup import, read body: %s", err)
		http.Error(w, "failed to read backup", http.StatusBadRequest)
		return
	}

	err = handler.codec.Import(ctx, document)
	if errors.Is(err, ErrInvalidBackup) {
		log.Warnf("backup import rejected: %s", err)
		http.Error(w, "invalid backup", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("backup import error: %s", err)
		http.Error(w, "failed to import backup", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterBackupsImported.Inc()

	pkg.WriteJSONResponseOK(w, `{"imported": true}`)
}
