package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtmw "notes_backend/internal/platform/jwt"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestCORS_Allowlist(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name      string
		origin    string
		wantAllow string
		wantCode  int
	}{
		{"allowed origin", "http://localhost:3000", "http://localhost:3000", http.StatusOK},
		{"other origin", "http://evil.example", "", http.StatusForbidden},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantAllow, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCORS_Wildcard(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(CORS([]string{"*"}))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "http://anything.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_Preflight(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.Use(CORS([]string{"http://localhost:5173"}))
	r.DELETE("/notes/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/notes/1", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
}

func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestRequestLogger_GeneratesRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(newBufferLogger(&buf)))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "request_id="+id)
	assert.Contains(t, out, "route=/ping")
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "level=INFO")
}

func TestRequestLogger_ReusesInboundID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(newBufferLogger(&buf)))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	inbound := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, inbound)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, inbound, w.Header().Get(RequestIDHeader))
}

func TestRequestLogger_ReplacesMalformedID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(newBufferLogger(&buf)))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "not a uuid\nforged=1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	id := w.Header().Get(RequestIDHeader)
	assert.NotContains(t, id, "forged")
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestRequestLogger_LevelsAndUser(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(newBufferLogger(&buf)))
	r.GET("/denied", func(c *gin.Context) { c.Status(http.StatusUnauthorized) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })
	r.GET("/mine", func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, uint(42))
		c.Status(http.StatusOK)
	})

	for _, path := range []string{"/denied", "/boom", "/mine", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "level=WARN")
	assert.Contains(t, lines[1], "level=ERROR")
	assert.Contains(t, lines[2], "user_id=42")
	assert.Contains(t, lines[3], "route=unmatched")
	assert.NotContains(t, lines[3], "/missing")
}

func TestMetrics_CountsByRoute(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/metrics-test/:id", func(c *gin.Context) { c.Status(http.StatusAccepted) })

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-test/:id", "202"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics-test/7", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics-test/8", nil))
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-test/:id", "202"))

	assert.Equal(t, 2.0, after-before)
}

func TestRecordOperation(t *testing.T) {
	before := testutil.ToFloat64(OperationsTotal.WithLabelValues("test_op", "ok"))
	RecordOperation("test_op", "ok")
	assert.Equal(t, 1.0, testutil.ToFloat64(OperationsTotal.WithLabelValues("test_op", "ok"))-before)
}

func TestMetricsHandler_Exposes(t *testing.T) {
	RecordOperation("exposed_op", "ok")

	r := gin.New()
	r.GET("/metrics", MetricsHandler())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "notes_operations_total")
}
