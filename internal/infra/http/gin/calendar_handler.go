package ginserver

import (
	"fmt"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"staycal/internal/app/dto"
	availabilityapp "staycal/internal/app/handlers/availability"
	"staycal/internal/app/queries"
)

type CalendarHandler struct {
	Queries queries.Bus
}

func (h CalendarHandler) Month(c *gin.Context) {
	weekStart, err := parseWeekStart(c.Query("week_start"))
	if err != nil {
		badRequest(c, err)
		return
	}
	query := availabilityapp.GetCalendarQuery{
		PropertyID: c.Param("id"),
		SessionID:  sessionID(c),
		Month:      c.Query("month"),
		WeekStart:  weekStart,
	}
	result, err := queries.Ask[availabilityapp.GetCalendarQuery, dto.CalendarMonth](c.Request.Context(), h.Queries, query)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseWeekStart(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "monday", "mon":
		return availabilityapp.WeekStartMonday, nil
	case "sunday", "sun":
		return availabilityapp.WeekStartSunday, nil
	default:
		return "", fmt.Errorf("week_start must be monday or sunday, got %q", raw)
	}
}

var _ CalendarHTTP = CalendarHandler{}
