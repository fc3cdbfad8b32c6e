package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"finsight/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestPanicRecoveryMiddleware(t *testing.T) {
	suite.Run(t, new(PanicRecoverySuite))
}

type PanicRecoverySuite struct {
	suite.Suite
	echo *echo.Echo
}

func (s *PanicRecoverySuite) SetupTest() {
	s.echo = echo.New()
}

func (s *PanicRecoverySuite) TestRecoversFromPanic() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set(TraceIDContextKey, "test-trace-id")

	handler := PanicRecovery()(func(c echo.Context) error {
		panic("boom")
	})

	s.NotPanics(func() {
		_ = handler(c)
	})
	s.Equal(http.StatusInternalServerError, rec.Code)

	var resp errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(string(errors.SystemInternalError), resp.Error.Code)
	s.Equal("test-trace-id", resp.Error.TraceID)
}

func (s *PanicRecoverySuite) TestUnknownTraceIDWhenMissing() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	handler := PanicRecovery()(func(c echo.Context) error {
		panic("boom")
	})

	s.NotPanics(func() {
		_ = handler(c)
	})

	var resp errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("unknown", resp.Error.TraceID)
}

func (s *PanicRecoverySuite) TestPassesThroughNormally() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	handler := PanicRecovery()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	s.NoError(handler(c))
	s.Equal(http.StatusOK, rec.Code)
}
