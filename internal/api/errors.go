package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orgsite-blog/internal/apperror"
	"github.com/rs/zerolog"
)

// errorResponder writes application errors as {error, code, details}
type errorResponder struct {
	production bool
	log        zerolog.Logger
}

func newErrorResponder(production bool, log zerolog.Logger) *errorResponder {
	return &errorResponder{production: production, log: log}
}

// respond writes err and aborts the handler chain
func (r *errorResponder) respond(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Internal("internal server error", err)
	}

	status := appErr.Status()
	body := gin.H{
		"error": appErr.Message,
		"code":  appErr.Kind,
	}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}

	if status >= http.StatusInternalServerError {
		r.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		body["error"] = "Internal server error"
		if !r.production && appErr.Err != nil {
			body["cause"] = appErr.Err.Error()
		}
	}

	c.AbortWithStatusJSON(status, body)
}

// badRequest reports a body that could not be decoded
func (r *errorResponder) badRequest(c *gin.Context, err error) {
	r.respond(c, apperror.Validation("invalid request body", apperror.FieldError{
		Field:   "body",
		Message: err.Error(),
	}))
}
