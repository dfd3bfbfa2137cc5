package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tomeworks/verba/pkg/verba/internalerr"
)

type response struct {
	Data   any      `json:"data"`
	Errors []string `json:"errors"`
}

func writeResponse(c *gin.Context, data any, statusCode int, errs []string) {
	if statusCode == http.StatusNoContent {
		c.JSON(statusCode, nil)
		return
	}

	c.JSON(statusCode, response{
		Data:   data,
		Errors: errs,
	})
}

// statusForError maps the pipeline's error kinds onto HTTP statuses. A bad
// upstream document source is the gateway's fault, not the client's.
func statusForError(err error) int {
	switch {
	case errors.Is(err, internalerr.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, internalerr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, internalerr.ErrDecode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, internalerr.ErrFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
