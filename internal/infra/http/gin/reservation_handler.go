package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"staycal/internal/app/commands"
	"staycal/internal/app/dto"
	reservationapp "staycal/internal/app/handlers/reservation"
)

type ReservationHandler struct {
	Commands commands.Bus
}

type submitIntentRequest struct {
	Guests int    `json:"guests"`
	Name   string `json:"name"`
	Note   string `json:"note"`
}

func (h ReservationHandler) SubmitIntent(c *gin.Context) {
	var req submitIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cmd := reservationapp.SubmitIntentCommand{
		CommandID:       uuid.NewString(),
		SessionID:       sessionID(c),
		PropertyID:      c.Param("id"),
		Guests:          req.Guests,
		GuestName:       req.Name,
		Note:            req.Note,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[reservationapp.SubmitIntentCommand, *dto.ReservationIntent](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

var _ ReservationHTTP = ReservationHandler{}
