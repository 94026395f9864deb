package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"gigpay/internal/domain"
	"gigpay/internal/service"
	"gigpay/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func escrowCacheKey(jobID uint) string {
	return "escrow:job:" + strconv.Itoa(int(jobID))
}

// invalidateMoneyCaches drops the cached escrow view and the wallet /
// transaction-history caches of everyone a money movement touched.
func invalidateMoneyCaches(c *gin.Context, jobID uint, userIDs ...uint) {
	rdb, ok := c.MustGet("redisClient").(*redis.Client)
	if !ok {
		return
	}
	ctx := context.Background()
	keys := []string{escrowCacheKey(jobID)}
	for _, id := range userIDs {
		keys = append(keys, "wallet:user:"+strconv.Itoa(int(id)))
		// Drop the first few pages of cached history (same simple scheme the
		// history handler caches with)
		txPrefix := "txhistory:user:" + strconv.Itoa(int(id))
		for i := 1; i <= 5; i++ {
			keys = append(keys, txPrefix+":page:"+strconv.Itoa(i)+":size:20")
		}
	}
	_ = utils.DeleteCache(ctx, rdb, keys...)
}

// GetEscrowHandler returns the escrow status/amount for a job. Display-only
// read served through a short Redis cache; slightly stale is acceptable.
func GetEscrowHandler(svc *service.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID, ok := pathID(c)
		if !ok {
			return
		}
		ctx := context.Background()
		var cached domain.Escrow
		found, err := utils.GetCache(ctx, rdb, escrowCacheKey(jobID), &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"escrow": cached, "cached": true})
			return
		}
		es, err := svc.GetEscrow(jobID)
		if err != nil {
			respondError(c, err)
			return
		}
		_ = utils.SetCache(ctx, rdb, escrowCacheKey(jobID), es, 30*time.Second)
		c.JSON(http.StatusOK, gin.H{"escrow": es, "cached": false})
	}
}

// FundEscrowHandler funds the job's escrow (owning employer only, idempotent)
func FundEscrowHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := callerID(c)
		if !ok {
			return
		}
		jobID, ok := pathID(c)
		if !ok {
			return
		}
		es, err := svc.Fund(uid, jobID)
		if err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"job_id":      jobID,
			"employer_id": uid,
			"amount":      es.Amount,
			"type":        domain.TxHold,
			"timestamp":   time.Now().Format(time.RFC3339),
		}).Info("Escrow funded")
		invalidateMoneyCaches(c, jobID)
		c.JSON(http.StatusOK, gin.H{"ok": true, "escrow": es})
	}
}

// ApproveRequest optionally carries the employer's review of the worker
type ApproveRequest struct {
	Score   int    `json:"score"`   // Optional 1-5 review score
	Comment string `json:"comment"` // Optional review comment
}

// ApproveHandler approves submitted work and releases the escrow
func ApproveHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := callerID(c)
		if !ok {
			return
		}
		jobID, ok := pathID(c)
		if !ok {
			return
		}
		var req ApproveRequest
		_ = c.ShouldBindJSON(&req) // body is optional
		job, err := svc.Approve(uid, jobID, req.Score, req.Comment)
		if err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"job_id":      job.ID,
			"employer_id": uid,
			"worker_id":   *job.AssignedTo,
			"type":        domain.TxRelease,
			"timestamp":   time.Now().Format(time.RFC3339),
		}).Info("Escrow released")
		invalidateMoneyCaches(c, jobID, *job.AssignedTo)
		c.JSON(http.StatusOK, gin.H{"ok": true, "job": job})
	}
}

// TipRequest carries a post-completion tip amount
type TipRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"` // Tip amount
}

// TipHandler credits the worker with an escrow-independent tip
func TipHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := callerID(c)
		if !ok {
			return
		}
		jobID, ok := pathID(c)
		if !ok {
			return
		}
		var req TipRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		job, err := svc.GetJob(jobID)
		if err != nil {
			respondError(c, err)
			return
		}
		if err := svc.Tip(uid, jobID, req.Amount); err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"job_id":    jobID,
			"from_user": uid,
			"amount":    req.Amount,
			"type":      domain.TxTip,
			"timestamp": time.Now().Format(time.RFC3339),
		}).Info("Tip sent")
		if job.AssignedTo != nil {
			invalidateMoneyCaches(c, jobID, *job.AssignedTo)
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "tip": req.Amount})
	}
}
