package stats

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ldhishere/judo-diary/internal/diary"
	"github.com/ldhishere/judo-diary/internal/telemetry/tracing"
	"github.com/ldhishere/judo-diary/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	analyzer *Analyzer
}

func NewHandler(analyzer *Analyzer) *Handler {
	return &Handler{
		analyzer: analyzer,
	}
}

// windowFromQuery reads the optional year + month query params, absence
// meaning the all time window
func windowFromQuery(r *http.Request) (Window, bool) {
	yearStr := r.URL.Query().Get("year")
	monthStr := r.URL.Query().Get("month")
	if yearStr == "" && monthStr == "" {
		return AllTime(), true
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year <= 0 {
		return Window{}, false
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return Window{}, false
	}

	return MonthOf(year, time.Month(month)), true
}

func (handler *Handler) HandleTechniqueFrequency(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diary.stats.techniques")
	defer span.End()

	window, ok := windowFromQuery(r)
	if !ok {
		http.Error(w, "invalid year or month", http.StatusBadRequest)
		return
	}

	techniqueStats, err := handler.analyzer.TechniqueFrequency(ctx, window)
	if err != nil {
		log.Errorf("technique frequency error: %s", err)
		http.Error(w, "failed to get technique frequency", http.StatusInternalServerError)
		return
	}

	statsJson, err := json.Marshal(techniqueStats)
	if err != nil {
		log.Errorf("marshal technique frequency error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, statsJson, http.StatusOK)
}

func (handler *Handler) HandlePieChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diary.stats.pie")
	defer span.End()

	window, ok := windowFromQuery(r)
	if !ok {
		http.Error(w, "invalid year or month", http.StatusBadRequest)
		return
	}

	slices, err := handler.analyzer.PieChart(ctx, window)
	if err != nil {
		log.Errorf("pie chart error: %s", err)
		http.Error(w, "failed to get pie chart", http.StatusInternalServerError)
		return
	}

	slicesJson, err := json.Marshal(slices)
	if err != nil {
		log.Errorf("marshal pie chart error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, slicesJson, http.StatusOK)
}

func (handler *Handler) HandleDailySeries(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diary.stats.daily")
	defer span.End()

	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil || year <= 0 {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(vars["month"])
	if err != nil || month < 1 || month > 12 {
		http.Error(w, "invalid month", http.StatusBadRequest)
		return
	}

	series, err := handler.analyzer.DailySeries(ctx, year, time.Month(month))
	if err != nil {
		log.Errorf("daily series error: %s", err)
		http.Error(w, "failed to get daily series", http.StatusInternalServerError)
		return
	}

	seriesJson, err := json.Marshal(series)
	if err != nil {
		log.Errorf("marshal daily series error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, seriesJson, http.StatusOK)
}

func (handler *Handler) HandleYearlyTrend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diary.stats.yearly")
	defer span.End()

	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil || year <= 0 {
		http.Error(w, "invalid year", http.StatusBadRequest)
		return
	}

	trend, err := handler.analyzer.YearlyTrend(ctx, year)
	if err != nil {
		log.Errorf("yearly trend error: %s", err)
		http.Error(w, "failed to get yearly trend", http.StatusInternalServerError)
		return
	}

	trendJson, err := json.Marshal(trend)
	if err != nil {
		log.Errorf("marshal yearly trend error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, trendJson, http.StatusOK)
}

func (handler *Handler) HandleMonthlyActivity(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diary.stats.activity")
	defer span.End()

	reference := handler.analyzer.NowFunc()
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.Parse(diary.DateLayout, dateStr)
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}
		reference = parsed
	}

	buckets, err := handler.analyzer.MonthlyActivity(ctx, reference)
	if err != nil {
		log.Errorf("monthly activity error: %s", err)
		http.Error(w, "failed to get monthly activity", http.StatusInternalServerError)
		return
	}

	bucketsJson, err := json.Marshal(buckets)
	if err != nil {
		log.Errorf("marshal monthly activity error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, bucketsJson, http.StatusOK)
}

func (handler *Handler) HandleConditionSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diary.stats.condition")
	defer span.End()

	window, ok := windowFromQuery(r)
	if !ok {
		http.Error(w, "invalid year or month", http.StatusBadRequest)
		return
	}

	counts, err := handler.analyzer.ConditionSummary(ctx, window)
	if err != nil {
		log.Errorf("condition summary error: %s", err)
		http.Error(w, "failed to get condition summary", http.StatusInternalServerError)
		return
	}

	countsJson, err := json.Marshal(counts)
	if err != nil {
		log.Errorf("marshal condition summary error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, countsJson, http.StatusOK)
}
