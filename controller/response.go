package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	msgForbidden   = "This action is unauthorized."
	msgInvalidData = "The given data was invalid."
)

func respondWithItem[T any](c *gin.Context, status int, item T) {
	c.JSON(status, gin.H{"data": item})
}

func sendNotFoundResponse(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"message": message})
}

func sendForbiddenResponse(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"message": msgForbidden})
}

func sendInvalidFieldResponse(c *gin.Context, errs FieldErrors) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"message": msgInvalidData, "errors": errs})
}

func sendCustomResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
