package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	apperrors "nyayapath/pkg/errors"
	"nyayapath/pkg/response"
)

func newTestContext(method, path string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHealthCheck(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/health")

	healthHandler := func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}

	if assert.NoError(t, healthHandler(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "ok")
	}
}

func TestSuccessEnvelope(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/v1/progress/me")

	err := response.Success(c, map[string]int{"level": 3})

	if assert.NoError(t, err) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":true`)
		assert.Contains(t, rec.Body.String(), `"level":3`)
	}
}

func TestErrorEnvelopeUsesAppErrorStatus(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/v1/cases/missing")

	err := response.Error(c, apperrors.NotFound("Case", nil))

	if assert.NoError(t, err) {
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":false`)
		assert.Contains(t, rec.Body.String(), "NOT_FOUND")
	}
}

func TestPartialFailureKeepsDataAndError(t *testing.T) {
	c, rec := newTestContext(http.MethodPost, "/v1/battles/abc/continue")

	err := response.PartialFailure(c, map[string]int{"xpEarned": 500},
		apperrors.Unavailable("Progress could not be saved", nil))

	if assert.NoError(t, err) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"success":false`)
		assert.Contains(t, rec.Body.String(), `"xpEarned":500`)
		assert.Contains(t, rec.Body.String(), "STORAGE_UNAVAILABLE")
	}
}
