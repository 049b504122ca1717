package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON renders payload as the response body with the given status code.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK renders payload with status 200.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Created renders payload with status 201, for handlers that make a new
// resource.
func Created(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusCreated, payload)
}
