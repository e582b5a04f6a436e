package diary

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ldhishere/judo-diary/internal/telemetry/metrics"
	"github.com/ldhishere/judo-diary/internal/telemetry/tracing"
	"github.com/ldhishere/judo-diary/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type LogsListResponse struct {
	Logs  []TrainingLog `json:"logs"`
	Total int           `json:"total"`
}

type DeleteLogResponse struct {
	DeletedDate string `json:"deletedDate"`
}

type FavoritesResponse struct {
	Favorites []string `json:"favorites"`
}

type ToggleFavoriteResponse struct {
	Technique string `json:"technique"`
	Favorite  bool   `json:"favorite"`
}

type Handler struct {
	api     Api
	metrics *metrics.Manager
}

func NewHandler(api Api, metrics *metrics.Manager) *Handler {
	return &Handler{
		api:     api,
		metrics: metrics,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diary.list")
	defer span.End()

	logs, err := handler.api.ListAll(ctx)
	if err != nil {
		log.Errorf("list training logs error: %s", err)
		http.Error(w, "failed to get training logs", http.StatusInternalServerError)
		return
	}

	if logs == nil {
		logs = []TrainingLog{}
	}

	listRespJson, err := json.Marshal(LogsListResponse{
		Logs:  logs,
		Total: len(logs),
	})
	if err != nil {
		log.Errorf("marshal training logs error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listRespJson, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diary.get")
	defer span.End()

	vars := mux.Vars(r)
	date := vars["date"]
	if !ValidDate(date) {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}

	trainingLog, err := handler.api.GetByDate(ctx, date)
	if errors.Is(err, ErrLogNotFound) {
		http.Error(w, "training log not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to get training log for %s: %s", date, err)
		http.Error(w, "failed to get training log", http.StatusInternalServerError)
		return
	}

	logJson, err := json.Marshal(trainingLog)
	if err != nil {
		log.Errorf("failed to marshal training log: %s", err)
		http.Error(w, "failed to marshal training log", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, logJson, http.StatusOK)
}

func (handler *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diary.upsert")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var trainingLog TrainingLog
	if err := json.NewDecoder(r.Body).Decode(&trainingLog); err != nil {
		log.Errorf("save training log, unmarshal json params: %s", err)
		http.Error(w, "save training log failed", http.StatusBadRequest)
		return
	}

	if !ValidDate(trainingLog.Date) {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}

	savedLog, err := handler.api.UpsertByDate(ctx, trainingLog)
	if err != nil {
		log.Errorf("failed to save training log for [%s]: %s", trainingLog.Date, err)
		http.Error(w, "error, failed to save training log", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterLogsSaved.Inc()

	log.Debugf("training log saved: [%s]: %s", savedLog.Date, savedLog.ID)

	savedLogJson, err := json.Marshal(savedLog)
	if err != nil {
		log.Errorf("failed to marshal saved training log: %s", err)
		http.Error(w, "error, failed to save training log", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, savedLogJson, http.StatusCreated)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diary.delete")
	defer span.End()

	vars := mux.Vars(r)
	date := vars["date"]
	if !ValidDate(date) {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}

	err := handler.api.DeleteByDate(ctx, date)
	if errors.Is(err, ErrLogNotFound) {
		http.Error(w, "training log not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to delete training log for %s: %s", date, err)
		http.Error(w, "training log not deleted", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterLogsDeleted.Inc()

	deleteRespJson, err := json.Marshal(DeleteLogResponse{
		DeletedDate: date,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleGetFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diary.favorites.get")
	defer span.End()

	favorites, err := handler.api.Favorites(ctx)
	if err != nil {
		log.Errorf("get favorite techniques error: %s", err)
		http.Error(w, "failed to get favorite techniques", http.StatusInternalServerError)
		return
	}

	if favorites == nil {
		favorites = []string{}
	}

	favoritesJson, err := json.Marshal(FavoritesResponse{
		Favorites: favorites,
	})
	if err != nil {
		log.Errorf("marshal favorite techniques error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, favoritesJson, http.StatusOK)
}

func (handler *Handler) HandleSetFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diary.favorites.set")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var favorites []string
	if err := json.NewDecoder(r.Body).Decode(&favorites); err != nil {
		log.Errorf("set favorite techniques, unmarshal json params: %s", err)
		http.Error(w, "set favorite techniques failed", http.StatusBadRequest)
		return
	}

	if err := handler.api.SetFavorites(ctx, favorites); err != nil {
		log.Errorf("failed to set favorite techniques: %s", err)
		http.Error(w, "error, failed to set favorite techniques", http.StatusInternalServerError)
		return
	}

	favoritesJson, err := json.Marshal(FavoritesResponse{
		Favorites: favorites,
	})
	if err != nil {
		log.Errorf("marshal favorite techniques error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, favoritesJson, http.StatusOK)
}

func (handler *Handler) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diary.favorites.toggle")
	defer span.End()

	vars := mux.Vars(r)
	technique := vars["technique"]
	if technique == "" {
		http.Error(w, "error, technique empty", http.StatusBadRequest)
		return
	}

	favorites, err := handler.api.Favorites(ctx)
	if err != nil {
		log.Errorf("get favorite techniques error: %s", err)
		http.Error(w, "failed to toggle favorite technique", http.StatusInternalServerError)
		return
	}

	nowFavorite := true
	updated := make([]string, 0, len(favorites)+1)
	for _, favorite := range favorites {
		if favorite == technique {
			nowFavorite = false
			continue
		}
		updated = append(updated, favorite)
	}
	if nowFavorite {
		updated = append(updated, technique)
	}

	if err := handler.api.SetFavorites(ctx, updated); err != nil {
		log.Errorf("failed to toggle favorite technique [%s]: %s", technique, err)
		http.Error(w, "error, failed to toggle favorite technique", http.StatusInternalServerError)
		return
	}

	toggleRespJson, err := json.Marshal(ToggleFavoriteResponse{
		Technique: technique,
		Favorite:  nowFavorite,
	})
	if err != nil {
		log.Errorf("failed to marshal toggle response: %s", err)
		http.Error(w, "failed to marshal toggle response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(toggleRespJson))
}
