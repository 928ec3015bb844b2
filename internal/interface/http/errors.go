package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/heart-api/internal/domain"
	"github.com/oksasatya/heart-api/pkg/response"
	"github.com/oksasatya/heart-api/pkg/validation"
)

// base is embedded by every handler.
type base struct {
	Logger *logrus.Logger
	// Debug exposes internal error text in 500 responses.
	Debug bool
}

// fail writes the envelope for err. fallback is the message used for
// upstream and unexpected failures.
func (b base) fail(c *gin.Context, err error, fallback string) {
	var (
		ve *domain.ValidationError
		de *domain.Error
		ue *domain.UpstreamError
	)
	switch {
	case errors.As(err, &ve):
		response.ValidationFailed(c, ve.Errors)
	case errors.As(err, &de):
		response.Error[any](c, statusFor(de.Kind), de.Message, nil)
	case errors.As(err, &ue):
		var detail interface{}
		if ue.Err != nil {
			detail = ue.Err.Error()
		}
		b.log(c).WithError(err).WithField("service", ue.Service).Warn("upstream call failed")
		msg := ue.Message
		if msg == "" {
			msg = fallback
		}
		response.Error[any](c, http.StatusInternalServerError, msg, detail)
	case domain.KindOf(err) != nil:
		kind := domain.KindOf(err)
		b.log(c).WithError(err).Debug(fallback)
		response.Error[any](c, statusFor(kind), kindMessages[kind], nil)
	default:
		b.log(c).WithError(err).Error(fallback)
		var detail interface{}
		if b.Debug {
			detail = err.Error()
		}
		response.Error[any](c, http.StatusInternalServerError, fallback, detail)
	}
}

// kindMessages covers errors that carry a kind but no message of their own,
// such as constraint violations reported by the store.
var kindMessages = map[error]string{
	domain.ErrValidation:   "Validation failed",
	domain.ErrNotFound:     "Resource not found",
	domain.ErrConflict:     "Resource already exists",
	domain.ErrUnauthorized: "Unauthorized",
	domain.ErrTokenExpired: "Token expired. Please login again.",
	domain.ErrTokenInvalid: "Invalid token.",
	domain.ErrUnavailable:  "Service unavailable",
}

func statusFor(kind error) int {
	switch kind {
	case domain.ErrValidation:
		return http.StatusBadRequest
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrConflict:
		return http.StatusConflict
	case domain.ErrUnauthorized, domain.ErrTokenExpired:
		return http.StatusUnauthorized
	case domain.ErrTokenInvalid:
		return http.StatusForbidden
	case domain.ErrUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (b base) log(c *gin.Context) *logrus.Entry {
	l := b.Logger
	if l == nil {
		l = logrus.StandardLogger()
	}
	return l.WithField("request_id", c.GetString("request_id")).WithField("path", c.FullPath())
}

// bind decodes the JSON body into dst; on failure it writes a 400 and
// returns false.
func bind(c *gin.Context, dst any, msgs validation.Messages) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.ValidationFailed(c, validation.ToDetails(err, msgs))
		return false
	}
	return true
}

func userID(c *gin.Context) string { return c.GetString("userID") }
