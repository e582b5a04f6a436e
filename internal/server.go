package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/ldhishere/judo-diary/internal/auth"
	"github.com/ldhishere/judo-diary/internal/config"
	"github.com/ldhishere/judo-diary/internal/diary"
	"github.com/ldhishere/judo-diary/internal/diary/backup"
	"github.com/ldhishere/judo-diary/internal/diary/stats"
	"github.com/ldhishere/judo-diary/internal/middleware"
	"github.com/ldhishere/judo-diary/internal/misc"
	"github.com/ldhishere/judo-diary/internal/techniques"
	"github.com/ldhishere/judo-diary/internal/telemetry/metrics"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config   *config.Config
	diaryApi *diary.FileApi

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service
	admin        *auth.Admin

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
}

type NewServerParams struct {
	Config            *config.Config
	VersionInfo       string
	AdminUsername     string
	AdminPasswordHash string
	RedisPassword     string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("diary", "backend", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewAuthService(auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	diaryApi, err := diary.NewFileApi(params.Config.DiaryDataPath)
	if err != nil {
		return nil, fmt.Errorf("new diary file api: %w", err)
	}

	return &Server{
		config:      params.Config,
		versionInfo: params.VersionInfo,
		diaryApi:    diaryApi,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),
		admin: &auth.Admin{
			Username:     params.AdminUsername,
			PasswordHash: params.AdminPasswordHash,
		},

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("judo-diary-router"))

	diaryHandler := diary.NewHandler(s.diaryApi, s.metricsManager)
	r.HandleFunc("/diary/logs", diaryHandler.HandleList).Methods("GET", "OPTIONS").Name("list-logs")
	r.HandleFunc("/diary/logs", diaryHandler.HandleUpsert).Methods("POST", "PUT", "OPTIONS").Name("save-log")
	r.HandleFunc("/diary/logs/{date}", diaryHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-log")
	r.HandleFunc("/diary/logs/{date}", diaryHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-log")
	r.HandleFunc("/diary/favorites", diaryHandler.HandleGetFavorites).Methods("GET", "OPTIONS").Name("get-favorites")
	r.HandleFunc("/diary/favorites", diaryHandler.HandleSetFavorites).Methods("PUT", "OPTIONS").Name("set-favorites")
	r.HandleFunc("/diary/favorites/{technique}", diaryHandler.HandleToggleFavorite).Methods("POST", "OPTIONS").Name("toggle-favorite")

	statsHandler := stats.NewHandler(stats.NewAnalyzer(s.diaryApi))
	r.HandleFunc("/diary/stats/techniques", statsHandler.HandleTechniqueFrequency).Methods("GET", "OPTIONS").Name("stats-techniques")
	r.HandleFunc("/diary/stats/pie", statsHandler.HandlePieChart).Methods("GET", "OPTIONS").Name("stats-pie")
	r.HandleFunc("/diary/stats/daily/{year}/{month}", statsHandler.HandleDailySeries).Methods("GET", "OPTIONS").Name("stats-daily")
	r.HandleFunc("/diary/stats/yearly/{year}", statsHandler.HandleYearlyTrend).Methods("GET", "OPTIONS").Name("stats-yearly")
	r.HandleFunc("/diary/stats/activity", statsHandler.HandleMonthlyActivity).Methods("GET", "OPTIONS").Name("stats-activity")
	r.HandleFunc("/diary/stats/condition", statsHandler.HandleConditionSummary).Methods("GET", "OPTIONS").Name("stats-condition")

	backupHandler := backup.NewHandler(backup.NewCodec(s.diaryApi), s.metricsManager)
	r.HandleFunc("/diary/backup", backupHandler.HandleExport).Methods("GET", "OPTIONS").Name("backup-export")
	r.HandleFunc("/diary/backup", backupHandler.HandleImport).Methods("POST", "OPTIONS").Name("backup-import")

	techniquesHandler := techniques.NewHandler()
	r.HandleFunc("/techniques", techniquesHandler.HandleSearch).Methods("GET", "OPTIONS").Name("techniques-search")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	miscHandler := misc.NewHandler(s.versionInfo, s.authService, s.admin)
	miscHandler.SetupRoutes(r, reqRateLimiter, s.config.LoginRateLimitAllowedPerMin, s.metricsManager)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
