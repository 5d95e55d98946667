// handlers_csv_test.go - Tests for the CSV escape endpoint
package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/csv-escape/backend/internal/config"
	"github.com/csv-escape/backend/internal/models"
)

func newTestContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/csv/v0/escape", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func testHandler() CSVHandler {
	return NewCSVHandler(config.DefaultConfig().Engine)
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestHandleEscapeHappyPath(t *testing.T) {
	body := `{"mode":"escape","csv_b64":"` + b64("a,b\n1,2\n") + `","target_profile":"excel","response_level":"standard"}`
	c, rec := newTestContext(t, body)

	require.NoError(t, testHandler().HandleEscape(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.EscapeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, strings.HasPrefix(resp.Result.CsvText, "\uFEFF"))
	assert.Contains(t, resp.Result.CsvText, "a,b\r\n")
	assert.Equal(t, models.ModeEscape, resp.Meta.ModeUsed)
	assert.Equal(t, models.ProfileExcel, resp.Meta.Profile)
	assert.Equal(t, models.Version, resp.Meta.Version)
	require.NotNil(t, resp.Result.Stats)
	assert.Equal(t, 2, resp.Result.Stats.Rows)
}

func TestHandleEscapeDefaultsFromConfig(t *testing.T) {
	// mode and profile omitted: service defaults kick in.
	body := `{"csv_b64":"` + b64("a,b\n") + `"}`
	c, rec := newTestContext(t, body)

	h := NewCSVHandler(config.EngineConfig{
		DefaultProfile:       "ai_safety",
		DefaultResponseLevel: "standard",
	})
	require.NoError(t, h.HandleEscape(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp models.EscapeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.ProfileAISafety, resp.Meta.Profile)
	assert.Equal(t, models.LevelStandard, resp.Meta.ResponseLevelUsed)
	assert.Equal(t, "\"a\",\"b\"\n", resp.Result.CsvText)
}

func TestHandleEscapeInvalidBase64(t *testing.T) {
	body := `{"mode":"escape","csv_b64":"!!!not base64!!!"}`
	c, _ := newTestContext(t, body)

	err := testHandler().HandleEscape(c)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "INVALID_BASE64", apiErr.Code)
	assert.Equal(t, "csv_b64 is not valid Base64 UTF-8 text", apiErr.Message)
}

func TestHandleEscapeUnknownModeRejected(t *testing.T) {
	body := `{"mode":"shred","csv_b64":"` + b64("a,b\n") + `"}`
	c, _ := newTestContext(t, body)

	err := testHandler().HandleEscape(c)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	assert.Contains(t, apiErr.Message, "mode")
}

func TestHandleEscapeMissingPayload(t *testing.T) {
	c, _ := newTestContext(t, `{"mode":"escape"}`)

	err := testHandler().HandleEscape(c)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Contains(t, apiErr.Message, "csv_b64")
}

func TestHandleEscapeMaxRowsCap(t *testing.T) {
	body := `{"mode":"escape","csv_b64":"` + b64("a,b\n1,2\n3,4\n") + `","target_profile":"custom","response_level":"standard"}`
	c, rec := newTestContext(t, body)

	h := NewCSVHandler(config.EngineConfig{MaxRowsCap: 2})
	require.NoError(t, h.HandleEscape(c))

	var resp models.EscapeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Result.Stats)
	assert.Equal(t, 2, resp.Result.Stats.Rows)
}

func TestHandleEscapeMsgpack(t *testing.T) {
	body := `{"mode":"escape","csv_b64":"` + b64("a,b\n1,2\n") + `","target_profile":"custom","response_level":"standard"}`
	c, rec := newTestContext(t, body)

	require.NoError(t, testHandler().HandleEscapeMsgpack(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, msgpackContentType, rec.Header().Get(echo.HeaderContentType))

	var resp models.EscapeResponse
	require.NoError(t, msgpack.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "a,b\n1,2\n", resp.Result.CsvText)
	assert.Equal(t, models.ModeEscape, resp.Meta.ModeUsed)
}

func TestErrorHandlerEnvelope(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	req := httptest.NewRequest(http.MethodPost, "/csv/v0/escape", strings.NewReader(`{"mode":"escape","csv_b64":"???"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := testHandler().HandleEscape(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
		Meta struct {
			Version string `json:"version"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "INVALID_BASE64", envelope.Error.Code)
	assert.Equal(t, "csv_b64 is not valid Base64 UTF-8 text", envelope.Error.Message)
	assert.Equal(t, models.Version, envelope.Meta.Version)
}

func TestHandleHealth(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHealthHandler(models.Version)
	require.NoError(t, h.HandleHealth(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.Contains(t, rec.Body.String(), models.Version)
}

func TestRequestIDMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	// A client-supplied id is echoed back untouched.
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(echo.HeaderXRequestID, "client-id-1")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "client-id-1", rec.Header().Get(echo.HeaderXRequestID))
}
