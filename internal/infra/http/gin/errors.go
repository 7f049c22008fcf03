package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	domainavailability "staycal/internal/domain/availability"
	"staycal/internal/domain/calendar"
	domainreservation "staycal/internal/domain/reservation"
	domainselection "staycal/internal/domain/selection"
	"staycal/internal/domain/shared/daterange"
)

// statusFor maps application errors onto HTTP status codes.
func statusFor(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs),
		errors.Is(err, daterange.ErrInvalidDate),
		errors.Is(err, daterange.ErrInvalidRange),
		errors.Is(err, calendar.ErrInvalidMonth),
		errors.Is(err, domainavailability.ErrPropertyRequired),
		errors.Is(err, domainreservation.ErrPropertyRequired),
		errors.Is(err, domainreservation.ErrGuestsRequired):
		return http.StatusBadRequest
	case errors.Is(err, domainselection.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainselection.ErrIncomplete):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes {"error": ...}. Internal errors are attached to the context for
// the request logger and replaced by a generic message.
func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal error"
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
