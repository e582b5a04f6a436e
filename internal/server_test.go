package internal

import (
	"net/http"
	"path/filepath"
	"testing"

	"github.com/ldhishere/judo-diary/internal/auth"
	"github.com/ldhishere/judo-diary/internal/config"
	"github.com/ldhishere/judo-diary/internal/diary"
	"github.com/ldhishere/judo-diary/internal/telemetry/metrics"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction(
			"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
		),
	)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	diaryApi, err := diary.NewFileApi(filepath.Join(t.TempDir(), "diary-data"))
	require.NoError(t, err)

	return &Server{
		config: &config.Config{
			LoginRateLimitAllowedPerMin: 5,
		},
		versionInfo:    "test",
		diaryApi:       diaryApi,
		authService:    &auth.Service{},
		admin:          &auth.Admin{},
		metricsManager: metrics.NewTestManager(),
	}
}

func TestServer_RouterSetup(t *testing.T) {
	server := newTestServer(t)
	router := server.routerSetup()
	require.NotNil(t, router)

	for caseName, route := range map[string]struct {
		name   string
		path   string
		method string
	}{
		"list-logs": {
			name:   "list-logs",
			path:   "/diary/logs",
			method: "GET",
		},
		"save-log": {
			name:   "save-log",
			path:   "/diary/logs",
			method: "POST",
		},
		"save-log-put": {
			name:   "save-log",
			path:   "/diary/logs",
			method: "PUT",
		},
		"get-log": {
			name:   "get-log",
			path:   "/diary/logs/2025-06-01",
			method: "GET",
		},
		"delete-log": {
			name:   "delete-log",
			path:   "/diary/logs/2025-06-01",
			method: "DELETE",
		},
		"get-favorites": {
			name:   "get-favorites",
			path:   "/diary/favorites",
			method: "GET",
		},
		"set-favorites": {
			name:   "set-favorites",
			path:   "/diary/favorites",
			method: "PUT",
		},
		"toggle-favorite": {
			name:   "toggle-favorite",
			path:   "/diary/favorites/Seoi-nage",
			method: "POST",
		},
		"stats-techniques": {
			name:   "stats-techniques",
			path:   "/diary/stats/techniques",
			method: "GET",
		},
		"stats-pie": {
			name:   "stats-pie",
			path:   "/diary/stats/pie",
			method: "GET",
		},
		"stats-daily": {
			name:   "stats-daily",
			path:   "/diary/stats/daily/2025/6",
			method: "GET",
		},
		"stats-yearly": {
			name:   "stats-yearly",
			path:   "/diary/stats/yearly/2025",
			method: "GET",
		},
		"stats-activity": {
			name:   "stats-activity",
			path:   "/diary/stats/activity",
			method: "GET",
		},
		"stats-condition": {
			name:   "stats-condition",
			path:   "/diary/stats/condition",
			method: "GET",
		},
		"backup-export": {
			name:   "backup-export",
			path:   "/diary/backup",
			method: "GET",
		},
		"backup-import": {
			name:   "backup-import",
			path:   "/diary/backup",
			method: "POST",
		},
		"techniques-search": {
			name:   "techniques-search",
			path:   "/techniques",
			method: "GET",
		},
		"login": {
			name:   "login",
			path:   "/a/login",
			method: "POST",
		},
	} {
		t.Run(caseName, func(t *testing.T) {
			req, err := http.NewRequest(route.method, route.path, nil)
			require.NoError(t, err)

			routeMatch := &mux.RouteMatch{}
			muxRoute := router.Get(route.name)
			require.NotNil(t, muxRoute)
			isMatch := muxRoute.Match(req, routeMatch)
			assert.True(t, isMatch, caseName)
		})
	}
}
