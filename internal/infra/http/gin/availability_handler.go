package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"staycal/internal/app/commands"
	"staycal/internal/app/dto"
	availabilityapp "staycal/internal/app/handlers/availability"
)

type AvailabilityHandler struct {
	Commands commands.Bus
}

type putRecordsRequest struct {
	Replace bool                     `json:"replace"`
	Records []dto.AvailabilityRecord `json:"records"`
}

func (h AvailabilityHandler) PutRecords(c *gin.Context) {
	var req putRecordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cmd := availabilityapp.PutRecordsCommand{
		PropertyID: c.Param("id"),
		Records:    req.Records,
		Replace:    req.Replace,
		Source:     "owner",
	}
	result, err := commands.Dispatch[availabilityapp.PutRecordsCommand, dto.RecordsWritten](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ AvailabilityHTTP = AvailabilityHandler{}
