package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/questmap/questmap-backend/internal/observability"
	"github.com/questmap/questmap-backend/internal/questgraph/service"
)

const dataset = `{"nodes":[{"id":"A","type":"quest"},{"id":"B","type":"quest"}],"edges":[{"from":"A","to":"B","type":"FINISHED"}]}`

func newGraphService(t *testing.T) *service.GraphService {
	t.Helper()
	p := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(p, []byte(dataset), 0o644))
	svc, err := service.New(service.Options{DataPath: p})
	require.NoError(t, err)
	return svc
}

func TestBuildRouter(t *testing.T) {
	SetGinMode("test")
	r := BuildRouter(RouterDeps{
		ServiceName:    "questmap",
		Version:        "test",
		DefaultLang:    "en",
		AllowedOrigins: []string{"https://map.example"},
		RateLimitRPS:   1,
		RateLimitBurst: 2,
		Graph:          newGraphService(t),
		Metrics:        observability.NewCollector("test"),
		Logger:         zap.NewNop(),
	})

	get := func(path string, header map[string]string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		for k, v := range header {
			req.Header.Set(k, v)
		}
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	rr := get("/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))

	rr = get("/api/v1/nodes/B/predecessors", map[string]string{"Origin": "https://map.example"})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "https://map.example", rr.Header().Get("Access-Control-Allow-Origin"))

	get("/api/v1/nodes/B/elements", nil)
	assert.Equal(t, http.StatusTooManyRequests, get("/api/v1/graph", nil).Code)

	// health and metrics sit outside the rate limited group
	assert.Equal(t, http.StatusOK, get("/health", nil).Code)
	rr = get("/metrics", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "test_http_requests_total"))
}

type countingReloader struct{ calls atomic.Int32 }

func (c *countingReloader) Reload(context.Context) (bool, error) {
	c.calls.Add(1)
	return true, nil
}

func TestStartReloader(t *testing.T) {
	c, err := StartReloader("", &countingReloader{}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = StartReloader("not a schedule", &countingReloader{}, zap.NewNop())
	assert.Error(t, err)

	r := &countingReloader{}
	c, err = StartReloader("* * * * * *", r, zap.NewNop())
	require.NoError(t, err)
	defer c.Stop()

	assert.Eventually(t, func() bool { return r.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestOpenRedis(t *testing.T) {
	client, err := OpenRedis(context.Background(), RedisOptions{})
	require.NoError(t, err)
	assert.Nil(t, client)

	mr := miniredis.RunT(t)
	client, err = OpenRedis(context.Background(), RedisOptions{Addr: mr.Addr()})
	require.NoError(t, err)
	require.NotNil(t, client)
	_ = client.Close()

	addr := mr.Addr()
	mr.Close()
	_, err = OpenRedis(context.Background(), RedisOptions{Addr: addr, PingTO: 200 * time.Millisecond})
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger("production", "warn")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.InfoLevel))
	assert.True(t, log.Core().Enabled(zap.WarnLevel))

	_, err = NewLogger("development", "loud")
	assert.Error(t, err)
}

func TestSetGinMode(t *testing.T) {
	defer gin.SetMode(gin.TestMode)
	SetGinMode("production")
	assert.Equal(t, gin.ReleaseMode, gin.Mode())
}
