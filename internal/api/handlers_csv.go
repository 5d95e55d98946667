// handlers_csv.go - CSV escape/analyze/sanitize endpoint handlers
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/csv-escape/backend/internal/config"
	"github.com/csv-escape/backend/internal/engine"
	"github.com/csv-escape/backend/internal/models"
)

const msgpackContentType = "application/x-msgpack"

// CSVHandlerImpl implements the CSVHandler interface
type CSVHandlerImpl struct {
	defaultProfile models.TargetProfile
	defaultLevel   models.ResponseLevel
	maxRowsCap     int
}

// NewCSVHandler creates a new CSV handler instance
func NewCSVHandler(cfg config.EngineConfig) CSVHandler {
	return &CSVHandlerImpl{
		defaultProfile: models.TargetProfile(cfg.DefaultProfile),
		defaultLevel:   models.ResponseLevel(cfg.DefaultResponseLevel),
		maxRowsCap:     cfg.MaxRowsCap,
	}
}

// HandleEscape runs the engine on a JSON request and returns JSON
func (h *CSVHandlerImpl) HandleEscape(c echo.Context) error {
	resp, apiErr := h.process(c)
	if apiErr != nil {
		return apiErr
	}
	return c.JSON(http.StatusOK, resp)
}

// HandleEscapeMsgpack runs the engine on a JSON request and returns the
// same response encoded as msgpack
func (h *CSVHandlerImpl) HandleEscapeMsgpack(c echo.Context) error {
	resp, apiErr := h.process(c)
	if apiErr != nil {
		return apiErr
	}
	encoded, err := msgpack.Marshal(resp)
	if err != nil {
		return NewInternalError("failed to encode msgpack response")
	}
	return c.Blob(http.StatusOK, msgpackContentType, encoded)
}

func (h *CSVHandlerImpl) process(c echo.Context) (*models.EscapeResponse, *APIError) {
	var req models.EscapeRequest
	if err := c.Bind(&req); err != nil {
		return nil, NewBadRequestError("invalid request body")
	}

	// Service-level defaults fill in before the request's own defaulting.
	if req.TargetProfile == "" && h.defaultProfile != "" {
		req.TargetProfile = h.defaultProfile
	}
	if req.ResponseLevel == "" && h.defaultLevel != "" {
		req.ResponseLevel = h.defaultLevel
	}
	req.ApplyDefaults()

	if err := req.Validate(); err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			return nil, NewValidationError(ve.Field)
		}
		return nil, NewBadRequestError(err.Error())
	}

	// The hard cap is a transport concern; 0 disables it.
	if h.maxRowsCap > 0 && (req.MaxRows == 0 || req.MaxRows > h.maxRowsCap) {
		req.MaxRows = h.maxRowsCap
	}

	resp, err := engine.Process(req)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidBase64) {
			return nil, NewInvalidBase64Error(err)
		}
		return nil, NewInternalError("csv processing failed")
	}
	return resp, nil
}
