package utils

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "print-shop-system/pkg/errors"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
	Total   *uint64     `json:"total,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, total ...uint64) error {
	resp := &HTTPResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	if len(total) > 0 {
		t := total[0]
		resp.Total = &t
	}
	return ctx.JSON(code, resp)
}

func ErrorResponse(ctx echo.Context, err error, logger *zap.Logger) error {
	status := apperrors.HTTPStatus(err)

	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		return ctx.JSON(status, &HTTPResponse{Status: false, Body: ve, Message: ve.Reason})
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.Error("request failed", zap.Error(err))
		}
		message = "internal server error"
	}
	return ctx.JSON(status, &HTTPResponse{Status: false, Message: message})
}
