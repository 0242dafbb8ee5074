package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/logger"
	"ledgerly/internal/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

func serve(r *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return body.Error.Code
}

func TestRequestLogging(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, RequestID(c))
	})

	t.Run("generates a request id", func(t *testing.T) {
		rec := serve(r, "GET", "/ping", nil)

		id := rec.Header().Get("X-Request-ID")
		if !uuid.IsValid(id) {
			t.Fatalf("expected a UUID request id, got %q", id)
		}
		if rec.Body.String() != id {
			t.Errorf("expected handler to see %q, got %q", id, rec.Body.String())
		}
	})

	t.Run("reuses a well-formed caller id", func(t *testing.T) {
		callerID := uuid.New()
		rec := serve(r, "GET", "/ping", map[string]string{"X-Request-ID": callerID})

		if got := rec.Header().Get("X-Request-ID"); got != callerID {
			t.Errorf("expected %q, got %q", callerID, got)
		}
	})

	t.Run("replaces a malformed caller id", func(t *testing.T) {
		rec := serve(r, "GET", "/ping", map[string]string{"X-Request-ID": "<script>"})

		if got := rec.Header().Get("X-Request-ID"); got == "<script>" || !uuid.IsValid(got) {
			t.Errorf("expected a fresh UUID, got %q", got)
		}
	})
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/app", func(c *gin.Context) {
		_ = c.Error(apperrors.ErrBudgetNotFound)
	})
	r.GET("/wrapped", func(c *gin.Context) {
		_ = c.Error(apperrors.Wrap(apperrors.ErrInternalServer, errors.New("save failed")))
	})
	r.GET("/plain", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
	})
	r.GET("/written", func(c *gin.Context) {
		_ = c.Error(errors.New("late"))
		c.JSON(http.StatusTeapot, gin.H{})
	})

	tests := []struct {
		path   string
		status int
		code   string
	}{
		{path: "/app", status: http.StatusNotFound, code: "BUDGET_NOT_FOUND"},
		{path: "/wrapped", status: http.StatusInternalServerError, code: "INTERNAL_ERROR"},
		{path: "/plain", status: http.StatusInternalServerError, code: "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(r, "GET", tt.path, nil)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			if code := errorCode(t, rec); code != tt.code {
				t.Errorf("expected %q, got %q", tt.code, code)
			}
		})
	}

	t.Run("leaves a written response alone", func(t *testing.T) {
		rec := serve(r, "GET", "/written", nil)

		if rec.Code != http.StatusTeapot {
			t.Errorf("expected 418, got %d", rec.Code)
		}
	})
}

func TestNotFound(t *testing.T) {
	r := gin.New()
	r.NoRoute(NotFound())

	rec := serve(r, "GET", "/nowhere", nil)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %q", code)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/things", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("answers preflight with 204", func(t *testing.T) {
		rec := serve(r, "OPTIONS", "/things", nil)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("missing allow-origin header")
		}
	})

	t.Run("decorates normal responses", func(t *testing.T) {
		rec := serve(r, "GET", "/things", nil)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if rec.Header().Get("Access-Control-Expose-Headers") == "" {
			t.Error("missing expose-headers header")
		}
	})
}
