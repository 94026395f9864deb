package lifecycle

import (
	"testing"
	"time"

	"gigpay/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedJob(t *testing.T) *domain.Job {
	t.Helper()
	now := time.Now()
	job := openJob()
	require.NoError(t, Assign(job, pendingApplication(), employerID, now))
	es := NewEscrowShell(job)
	_, err := Fund(job, es, employerID, now)
	require.NoError(t, err)
	require.NoError(t, Submit(job, es, workerID, "done", "", now))
	require.NoError(t, Approve(job, es, employerID, now))
	return job
}

func TestRateBothSides(t *testing.T) {
	job := completedJob(t)
	now := time.Now()

	ratedID, err := Rate(job, employerID, 5, "great work", now)
	require.NoError(t, err)
	assert.Equal(t, workerID, ratedID, "employer rates the worker")
	assert.Equal(t, 5, job.WorkerReview.Score)

	ratedID, err = Rate(job, workerID, 4, "paid on time", now)
	require.NoError(t, err)
	assert.Equal(t, employerID, ratedID, "worker rates the employer")
	assert.Equal(t, 4, job.EmployerReview.Score)
}

func TestRateOncePerSide(t *testing.T) {
	job := completedJob(t)
	now := time.Now()

	_, err := Rate(job, employerID, 5, "", now)
	require.NoError(t, err)
	_, err = Rate(job, employerID, 1, "", now)
	assert.ErrorIs(t, err, domain.ErrAlreadyRated)
	assert.Equal(t, 5, job.WorkerReview.Score, "first review stands")

	// the worker's side is independent
	_, err = Rate(job, workerID, 3, "", now)
	require.NoError(t, err)
	_, err = Rate(job, workerID, 5, "", now)
	assert.ErrorIs(t, err, domain.ErrAlreadyRated)
}

func TestRateGuards(t *testing.T) {
	now := time.Now()

	job := completedJob(t)
	_, err := Rate(job, strangerID, 4, "", now)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = Rate(job, employerID, 0, "", now)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = Rate(job, employerID, 6, "", now)
	assert.ErrorIs(t, err, domain.ErrValidation)

	// not completed yet
	pending, es := fundedJob(t)
	require.NoError(t, Submit(pending, es, workerID, "done", "", now))
	_, err = Rate(pending, employerID, 4, "", now)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestNextAverage(t *testing.T) {
	avg, count := NextAverage(0, 0, 5)
	assert.Equal(t, 5.0, avg)
	assert.Equal(t, 1, count)

	avg, count = NextAverage(avg, count, 4)
	assert.Equal(t, 4.5, avg)
	assert.Equal(t, 2, count)

	// 13/3 rounded to two decimals
	avg, count = NextAverage(avg, count, 4)
	assert.Equal(t, 4.33, avg)
	assert.Equal(t, 3, count)

	avg, count = NextAverage(avg, count, 5)
	assert.Equal(t, 4.5, avg)
	assert.Equal(t, 4, count)
}
