package api

import (
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

const (
	HeaderRequestID = "X-Request-ID"

	ctxLoggerKey    = "logger"
	ctxRequestIDKey = "request_id"
)

// ulid.Monotonic не потокобезопасен, генерируем под мьютексом.
type idSource struct {
	mu      sync.Mutex
	entropy io.Reader
}

func newIDSource() *idSource {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &idSource{entropy: ulid.Monotonic(src, 0)}
}

func (s *idSource) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// RequestContext проставляет X-Request-ID (входящий или новый ULID) и кладёт в контекст
// логгер с этим id.
func RequestContext(base *slog.Logger) gin.HandlerFunc {
	ids := newIDSource()
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = ids.newID()
		}
		c.Header(HeaderRequestID, id)
		c.Set(ctxRequestIDKey, id)
		c.Set(ctxLoggerKey, base.With("request_id", id))
		c.Next()
	}
}

// AccessLog: одна строка на запрос.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		loggerFrom(c).Log(c.Request.Context(), level, "http request",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", status,
			"latency", time.Since(start),
		)
	}
}

// Recovery превращает панику в хендлере в 500 и запись в лог.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		loggerFrom(c).ErrorContext(c.Request.Context(), "panic recovered", "panic", rec)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": MsgInternalError})
	})
}

func loggerFrom(c *gin.Context) *slog.Logger {
	if v, ok := c.Get(ctxLoggerKey); ok {
		if l, ok := v.(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}
