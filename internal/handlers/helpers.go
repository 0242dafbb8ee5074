package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "ledgerly/internal/errors"
	"ledgerly/internal/logger"
	"ledgerly/internal/models"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the machine-readable code and the message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// parsePathID returns a trimmed, non-empty string path parameter.
func parsePathID(c *gin.Context, param string) (string, error) {
	id := strings.TrimSpace(c.Param(param))
	if id == "" || len(id) > 64 {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parseOptionalDate parses a YYYY-MM-DD or RFC3339 value. Empty input yields
// the zero date.
func parseOptionalDate(value string) (models.Date, error) {
	if value == "" {
		return models.Date{}, nil
	}
	d, err := models.ParseDate(value)
	if err != nil {
		return models.Date{}, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return d, nil
}

// bindError turns a binding failure into an INVALID_INPUT error.
func bindError(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: ErrorBody{Code: appErr.Code, Message: appErr.Message}})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{Error: ErrorBody{
		Code:    apperrors.ErrInternalServer.Code,
		Message: apperrors.ErrInternalServer.Message,
	}})
}
