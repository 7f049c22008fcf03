package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"staycal/internal/app/commands"
	"staycal/internal/app/dto"
	selectionapp "staycal/internal/app/handlers/selection"
	"staycal/internal/app/queries"
)

type SelectionHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type selectDateRequest struct {
	Date string `json:"date" binding:"required"`
}

func (h SelectionHandler) Get(c *gin.Context) {
	query := selectionapp.GetSelectionQuery{SessionID: sessionID(c), PropertyID: c.Param("id")}
	result, err := queries.Ask[selectionapp.GetSelectionQuery, dto.Selection](c.Request.Context(), h.Queries, query)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Select records one click. A rejected click still answers 200 with the unchanged state.
func (h SelectionHandler) Select(c *gin.Context) {
	var req selectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cmd := selectionapp.SelectDateCommand{SessionID: sessionID(c), PropertyID: c.Param("id"), Date: req.Date}
	result, err := commands.Dispatch[selectionapp.SelectDateCommand, dto.Selection](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h SelectionHandler) Clear(c *gin.Context) {
	cmd := selectionapp.ClearCommand{SessionID: sessionID(c), PropertyID: c.Param("id")}
	result, err := commands.Dispatch[selectionapp.ClearCommand, dto.Selection](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ SelectionHTTP = SelectionHandler{}
