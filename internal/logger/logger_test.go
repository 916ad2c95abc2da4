package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	core, observed := observer.New(zapcore.InfoLevel)
	restore := Replace(zap.New(core))
	t.Cleanup(restore)
	return observed
}

func TestInit(t *testing.T) {
	restore := Replace(nil)
	defer restore()

	t.Run("Production", func(t *testing.T) {
		Init("production")
		assert.NotNil(t, log)
	})

	t.Run("Development", func(t *testing.T) {
		Init("development")
		assert.NotNil(t, log)
	})
}

func TestL_LazyInit(t *testing.T) {
	restore := Replace(nil)
	defer restore()

	t.Setenv("APP_ENV", "test")

	assert.NotNil(t, L())
	assert.NotNil(t, log)
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	assert.Equal(t, "req-1", RequestIDFrom(ctx))
	assert.Equal(t, "", RequestIDFrom(context.Background()))
}

func TestFromCtx(t *testing.T) {
	observed := observe(t)

	t.Run("WithRequestID", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-abc-123")
		FromCtx(ctx).Info("with id")

		logs := observed.TakeAll()
		if assert.Len(t, logs, 1) {
			assert.Equal(t, "req-abc-123", logs[0].ContextMap()["request_id"])
		}
	})

	t.Run("AttachedFields", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-7")
		ctx = With(ctx, zap.String("order_id", "order-1"))
		ctx = With(ctx, zap.Int64("total_cents", 10500))
		FromCtx(ctx).Info("order logged")

		logs := observed.TakeAll()
		if assert.Len(t, logs, 1) {
			fields := logs[0].ContextMap()
			assert.Equal(t, "req-7", fields["request_id"])
			assert.Equal(t, "order-1", fields["order_id"])
			assert.Equal(t, int64(10500), fields["total_cents"])
		}
	})

	t.Run("ParentUnchanged", func(t *testing.T) {
		parent := With(context.Background(), zap.String("order_id", "order-1"))
		_ = With(parent, zap.String("session_id", "cs_1"))
		FromCtx(parent).Info("parent")

		logs := observed.TakeAll()
		if assert.Len(t, logs, 1) {
			_, ok := logs[0].ContextMap()["session_id"]
			assert.False(t, ok)
		}
	})

	t.Run("WithoutRequestID", func(t *testing.T) {
		FromCtx(context.Background()).Info("without id")

		logs := observed.TakeAll()
		if assert.Len(t, logs, 1) {
			_, ok := logs[0].ContextMap()["request_id"]
			assert.False(t, ok)
		}
	})
}

func TestSync(t *testing.T) {
	assert.NotPanics(t, Sync)
}

func TestRequestIDMiddleware(t *testing.T) {
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, RequestIDFrom(r.Context()))
	}))

	t.Run("Generates ID when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))

		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("Preserves existing ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.Header.Set(RequestIDHeader, "test-id-123")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, "test-id-123", w.Header().Get(RequestIDHeader))
	})
}

func TestLoggingMiddleware(t *testing.T) {
	observed := observe(t)

	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/checkout", nil))

	logs := observed.TakeAll()
	if assert.Len(t, logs, 1) {
		assert.Equal(t, "http request", logs[0].Message)
		fields := logs[0].ContextMap()
		assert.Equal(t, "/api/checkout", fields["path"])
		assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	}
}
