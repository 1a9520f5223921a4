package controllers

import (
	"net/http"

	"newhire-onboarding-api/models"

	"github.com/gin-gonic/gin"
)

// GetSteps returns the ordered pipeline labels.
func GetSteps(c *gin.Context) {
	c.JSON(http.StatusOK, models.StepLabels())
}
