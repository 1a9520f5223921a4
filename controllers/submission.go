package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"newhire-onboarding-api/config"
	"newhire-onboarding-api/models"
	"newhire-onboarding-api/services"
	"newhire-onboarding-api/utils"

	"github.com/gin-gonic/gin"
)

// SubmitNewHire accepts an intake payload, stores it and dispatches the
// notification email without waiting for it.
func SubmitNewHire(c *gin.Context) {
	var input services.SubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	for _, field := range []*string{
		&input.FullName, &input.PersonalEmail, &input.StartDate, &input.JobTitle,
		&input.Department, &input.Manager, &input.Office,
	} {
		*field = utils.SanitizeInput(*field)
	}

	svc := services.NewSubmissionService(config.DB)
	id, err := svc.Create(&input)
	if err != nil {
		respondError(c, err)
		return
	}

	submission, _, err := svc.GetByID(id)
	if err == nil {
		// Fire and forget: the response never waits on email delivery.
		go services.NotifyNewSubmission(submission)
	} else {
		log.Printf("notification skipped, reload of submission %d failed: %v", id, err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "submissionId": id})
}

// GetSubmission returns one submission with the step catalog and its status
// rows.
func GetSubmission(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	submission, statuses, err := services.NewSubmissionService(config.DB).GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submission": submission,
		"steps":      models.StepLabels(),
		"status":     statuses,
	})
}

// GetStatus returns the touched status rows for a submission, ascending by
// step index.
func GetStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	statuses, err := services.NewSubmissionService(config.DB).GetStatus(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, statuses)
}

// ListSubmissions returns every submission for the admin board, newest first.
func ListSubmissions(c *gin.Context) {
	submissions, err := services.NewSubmissionService(config.DB).ListAll()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}

type updateStatusRequest struct {
	SubmissionID int   `json:"submissionId"`
	StepIndex    int   `json:"stepIndex"`
	IsComplete   *bool `json:"isComplete"`
}

// UpdateStatus flips one step's completion flag. Steps are independent; any
// step may be set or cleared in any order.
func UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	if req.SubmissionID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing submissionId"})
		return
	}
	if req.StepIndex == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing stepIndex"})
		return
	}
	if req.IsComplete == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing isComplete"})
		return
	}

	if err := services.NewSubmissionService(config.DB).UpsertStatus(req.SubmissionID, req.StepIndex, *req.IsComplete); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// respondError maps domain errors onto status codes. Store failures are
// logged server-side and never leak details to the client.
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var authErr *services.AuthError
	var storeErr *services.StoreError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.As(err, &authErr):
		c.JSON(http.StatusUnauthorized, gin.H{"error": authErr.Message})
	case errors.As(err, &storeErr):
		log.Printf("store failure: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	default:
		log.Printf("unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}
