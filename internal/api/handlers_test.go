package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"refbooks/internal/memstore"
	"refbooks/internal/refbook"
	"refbooks/internal/refbook/storetest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type HandlersSuite struct {
	suite.Suite
	fx      storetest.Fixture
	router  *gin.Engine
	metrics *Metrics
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersSuite))
}

func (s *HandlersSuite) SetupTest() {
	store := memstore.New()
	s.fx = storetest.SeedFixture(s.T(), store)
	svc, err := refbook.NewService(store, refbook.WithClock(func() time.Time {
		return time.Date(2023, 8, 15, 9, 0, 0, 0, time.Local)
	}))
	s.Require().NoError(err)
	s.metrics = NewMetrics()
	s.router = NewRouter(svc, discardLogger(), s.metrics)
}

func (s *HandlersSuite) get(path string, params url.Values) *httptest.ResponseRecorder {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlersSuite) id(d refbook.Directory) string {
	return strconv.FormatInt(d.ID, 10)
}

func (s *HandlersSuite) TestDirectoryList() {
	w := s.get("/refbooks/", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[
		{"id": `+s.id(s.fx.A)+`, "code": "1", "name": "Специальности медицинских работников"},
		{"id": `+s.id(s.fx.B)+`, "code": "2", "name": "Должности медицинских работников"}
	]`, w.Body.String())

	w = s.get("/refbooks/", url.Values{"date": {"2023-08-10"}})
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[{"id": `+s.id(s.fx.A)+`, "code": "1", "name": "Специальности медицинских работников"}]`, w.Body.String())

	w = s.get("/refbooks/", url.Values{"date": {"2023-01-01"}})
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

func (s *HandlersSuite) TestDirectoryListBadDate() {
	w := s.get("/refbooks/", url.Values{"date": {"10.08.2023"}})
	s.Equal(http.StatusBadRequest, w.Code)
	s.JSONEq(`{"date": ["Введите правильную дату."]}`, w.Body.String())
}

func (s *HandlersSuite) TestDirectoryListEmptyDateIsIgnored() {
	w := s.get("/refbooks/?date=", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"code":"2"`)
}

func (s *HandlersSuite) TestElementList() {
	all := `[
		{"code": "1", "value": "Терапевт"},
		{"code": "2", "value": "Травматолог"},
		{"code": "3", "value": "Хирург"}
	]`
	path := "/refbooks/" + s.id(s.fx.A) + "/elements/"

	w := s.get(path, nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(all, w.Body.String())

	w = s.get(path, url.Values{"version": {"1.1"}})
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(all, w.Body.String())

	w = s.get(path, url.Values{"version": {"2.0"}})
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

func (s *HandlersSuite) TestElementListNotFound() {
	for _, path := range []string{"/refbooks/9999/elements/", "/refbooks/abc/elements/", "/refbooks/-1/elements/"} {
		w := s.get(path, nil)
		s.Equal(http.StatusNotFound, w.Code, path)
		s.JSONEq(`{"detail": "Не найдено."}`, w.Body.String(), path)
	}
}

func (s *HandlersSuite) TestCheckElement() {
	path := "/refbooks/" + s.id(s.fx.A) + "/check_element/"

	w := s.get(path, nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.JSONEq(`["Параметры \"code\" и \"value\" обязательны"]`, w.Body.String())

	w = s.get(path, url.Values{"code": {"1"}})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.get(path, url.Values{"code": {"1"}, "value": {"Терапевт"}})
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[{"code": "1", "value": "Терапевт"}]`, w.Body.String())

	w = s.get(path, url.Values{"code": {"1"}, "value": {"Терапевт"}, "version": {"1.0"}})
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())

	w = s.get(path, url.Values{"code": {"1"}, "value": {"Терапевт"}, "version": {"1.1"}})
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[{"code": "1", "value": "Терапевт"}]`, w.Body.String())
}

func (s *HandlersSuite) TestCheckElementUnknownDirectory() {
	w := s.get("/refbooks/9999/check_element/", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlersSuite) TestRequestID() {
	w := s.get("/refbooks/", nil)
	s.Len(w.Header().Get(HeaderRequestID), 26, "ULID")

	req := httptest.NewRequest(http.MethodGet, "/refbooks/", nil)
	req.Header.Set(HeaderRequestID, "trace-123")
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal("trace-123", w.Header().Get(HeaderRequestID))
}

func (s *HandlersSuite) TestHealthz() {
	w := s.get("/healthz", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status": "ok"}`, w.Body.String())
}

func (s *HandlersSuite) TestUnknownRoute() {
	w := s.get("/nope", nil)
	s.Equal(http.StatusNotFound, w.Code)
	s.JSONEq(`{"detail": "Не найдено."}`, w.Body.String())
}

func (s *HandlersSuite) TestMetrics() {
	s.get("/refbooks/", nil)
	s.get("/refbooks/9999/elements/", nil)

	w := s.get("/metrics", nil)
	s.Equal(http.StatusOK, w.Code)
	body := w.Body.String()
	s.Contains(body, `refbooks_http_requests_total{method="GET",route="/refbooks/",status="200"} 1`)
	s.Contains(body, `refbooks_http_requests_total{method="GET",route="/refbooks/:id/elements/",status="404"} 1`)
	s.True(strings.Contains(body, "refbooks_http_request_duration_seconds_bucket"))
}

// failingReader: хранилище, которое всегда отвечает ошибкой.
type failingReader struct{ err error }

func (f failingReader) ListDirectories(context.Context, *refbook.Date) ([]refbook.Directory, error) {
	return nil, f.err
}
func (f failingReader) GetDirectory(context.Context, int64) (refbook.Directory, error) {
	return refbook.Directory{}, f.err
}
func (f failingReader) ListVersions(context.Context, refbook.VersionFilter) ([]refbook.Version, error) {
	return nil, f.err
}
func (f failingReader) ListElements(context.Context, refbook.ElementFilter) ([]refbook.Element, error) {
	return nil, f.err
}
func (f failingReader) Ping(context.Context) error { return f.err }

func TestStoreFailureIsInternalError(t *testing.T) {
	svc, err := refbook.NewService(failingReader{err: errors.New("db is down")})
	require.NoError(t, err)
	router := NewRouter(svc, discardLogger(), nil)

	for _, path := range []string{"/refbooks/", "/refbooks/1/elements/", "/refbooks/1/check_element/?code=1&value=x"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.JSONEq(t, `{"detail": "Внутренняя ошибка сервера."}`, w.Body.String(), path)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStatusForError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusForError(refbook.ErrNotFound))
	assert.Equal(t, http.StatusBadRequest, statusForError(refbook.NewValidationError("x")))
	assert.Equal(t, http.StatusInternalServerError, statusForError(&refbook.ConflictError{Constraint: "c"}))
	assert.Equal(t, http.StatusInternalServerError, statusForError(errors.New("other")))
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestContext(discardLogger()), Recovery())
	r.GET("/panic", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail": "Внутренняя ошибка сервера."}`, w.Body.String())
}
