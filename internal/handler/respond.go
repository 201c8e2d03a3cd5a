package handler

import (
	"github.com/gin-gonic/gin"

	"taskboard/internal/model"
)

// respondError maps a service error to its HTTP status and stable code.
// Taxonomy errors keep their own message; anything else is reported as a
// generic internal error so storage details never leak.
func respondError(c *gin.Context, err error) {
	status, code := model.CodeOf(err)
	message := err.Error()
	if code == "INTERNAL" {
		message = "Internal server error"
	}
	c.JSON(status, model.NewCodedErrorResponse(code, message, ""))
}
