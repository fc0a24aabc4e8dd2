package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/callback", func(c *gin.Context) {
		c.Status(http.StatusFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/callback?key=wr_abc&wooreq_txid=0xdead", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	logged := buf.String()
	if !strings.Contains(logged, `"msg":"http request"`) {
		t.Fatalf("expected request log entry, got %q", logged)
	}
	if !strings.Contains(logged, `"path":"/callback"`) {
		t.Fatalf("expected path in log entry, got %q", logged)
	}
	if !strings.Contains(logged, `"query":"key=wr_abc&wooreq_txid=0xdead"`) &&
		!strings.Contains(logged, "wooreq_txid=0xdead") {
		t.Fatalf("expected raw query in log entry, got %q", logged)
	}
	if !strings.Contains(logged, `"status":302`) {
		t.Fatalf("expected status in log entry, got %q", logged)
	}
}
