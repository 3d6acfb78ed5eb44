package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/marea-picante/pos-terminal/internal/presentation/http/dto/response"
)

// parseUUIDParam parses a UUID path parameter, sending a 400 on failure.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// parseUintParam parses a positive integer path parameter, sending a 400 on
// failure.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || value == 0 {
		response.BadRequest(c, "Invalid "+name+" format")
		return 0, false
	}
	return uint(value), true
}
