package api

import (
	"net/http"
	"time"

	"gigpay/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CreateJobRequest represents a new job posting
type CreateJobRequest struct {
	Title       string   `json:"title" binding:"required"`       // Job title
	Description string   `json:"description"`                    // Free-text description
	Skills      []string `json:"skills"`                         // Required skills
	Tags        []string `json:"tags"`                           // Search tags
	Budget      float64  `json:"budget" binding:"required,gt=0"` // Initial offer
}

// CreateJobHandler opens a new job (employer only)
func CreateJobHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := callerID(c)
		if !ok {
			return
		}
		var req CreateJobRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		job, err := svc.CreateJob(uid, service.CreateJobInput{
			Title:       req.Title,
			Description: req.Description,
			Skills:      req.Skills,
			Tags:        req.Tags,
			Budget:      req.Budget,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"job": job})
	}
}

// ListJobsHandler returns open jobs with optional tag / min_budget filters
func ListJobsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		minBudget := 0.0
		if v := c.Query("min_budget"); v != "" {
			if f, err := parseAmount(v); err == nil {
				minBudget = f
			}
		}
		jobs, err := svc.ListOpenJobs(c.Query("tag"), minBudget)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"jobs": jobs})
	}
}

// GetJobHandler returns a single job
func GetJobHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID, ok := pathID(c)
		if !ok {
			return
		}
		job, err := svc.GetJob(jobID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"job": job})
	}
}

// ApplyRequest represents a worker's application
type ApplyRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"` // Proposed price
	Note  string  `json:"note"`                          // Proposal text
}

// ApplyHandler files an application for an open job (worker only)
func ApplyHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := callerID(c)
		if !ok {
			return
		}
		jobID, ok := pathID(c)
		if !ok {
			return
		}
		var req ApplyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		app, err := svc.Apply(uid, jobID, req.Price, req.Note)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"application": app})
	}
}

// ListApplicantsHandler returns a job's applications (owning employer only)
func ListApplicantsHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := callerID(c)
		if !ok {
			return
		}
		jobID, ok := pathID(c)
		if !ok {
			return
		}
		apps, err := svc.ListApplicants(uid, jobID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"applications": apps})
	}
}

// AssignRequest picks the winning application
type AssignRequest struct {
	ApplicationID uint `json:"application_id" binding:"required"` // Accepted application
}

// AssignHandler assigns the job to one applicant and rejects the rest
func AssignHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := callerID(c)
		if !ok {
			return
		}
		jobID, ok := pathID(c)
		if !ok {
			return
		}
		var req AssignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		job, err := svc.Assign(uid, jobID, req.ApplicationID)
		if err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"job_id":       job.ID,
			"employer_id":  uid,
			"worker_id":    *job.AssignedTo,
			"agreed_price": *job.AgreedPrice,
			"timestamp":    time.Now().Format(time.RFC3339),
		}).Info("Job assigned")
		c.JSON(http.StatusOK, gin.H{
			"ok":           true,
			"job_id":       job.ID,
			"assigned_to":  *job.AssignedTo,
			"agreed_price": *job.AgreedPrice,
		})
	}
}

// SubmitRequest carries the worker's delivery
type SubmitRequest struct {
	Note string `json:"note"` // Submission note
	URL  string `json:"url"`  // Link to the delivered work
}

// SubmitHandler records the worker's delivery (assignee only, escrow funded)
func SubmitHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := callerID(c)
		if !ok {
			return
		}
		jobID, ok := pathID(c)
		if !ok {
			return
		}
		var req SubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		job, err := svc.Submit(uid, jobID, req.Note, req.URL)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "job": job})
	}
}

// RateRequest carries a post-completion rating
type RateRequest struct {
	Score   int    `json:"score" binding:"required,min=1,max=5"` // 1-5
	Comment string `json:"comment"`                              // Optional comment
}

// RateHandler records a one-time rating by either party on a completed job
func RateHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := callerID(c)
		if !ok {
			return
		}
		jobID, ok := pathID(c)
		if !ok {
			return
		}
		var req RateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Score 1-5 required"})
			return
		}
		if err := svc.Rate(uid, jobID, req.Score, req.Comment); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
