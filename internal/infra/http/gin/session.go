package ginserver

import (
	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderSessionID carries the visitor's selection session between requests.
const HeaderSessionID = "X-Session-ID"

// sessionID returns the caller's session id, minting one when absent. The id is always
// echoed back so the front end can persist it.
func sessionID(c *gin.Context) string {
	id := c.GetHeader(HeaderSessionID)
	if id == "" {
		id = uuid.NewString()
	}
	c.Header(HeaderSessionID, id)
	return id
}
