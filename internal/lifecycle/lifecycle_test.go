package lifecycle

import (
	"testing"
	"time"

	"gigpay/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	employerID = uint(10)
	workerID   = uint(20)
	strangerID = uint(99)
)

func openJob() *domain.Job {
	return &domain.Job{
		ID:           1,
		EmployerID:   employerID,
		Title:        "Build a landing page",
		Budget:       1000,
		Status:       domain.JobOpen,
		EscrowStatus: domain.EscrowUnfunded,
	}
}

func pendingApplication() *domain.Application {
	return &domain.Application{
		ID:       5,
		JobID:    1,
		WorkerID: workerID,
		Price:    800,
		Status:   domain.ApplicationPending,
	}
}

// advance drives a job through assign -> fund and returns the escrow.
func fundedJob(t *testing.T) (*domain.Job, *domain.Escrow) {
	t.Helper()
	now := time.Now()
	job := openJob()
	app := pendingApplication()
	require.NoError(t, Assign(job, app, employerID, now))
	es := NewEscrowShell(job)
	already, err := Fund(job, es, employerID, now)
	require.NoError(t, err)
	require.False(t, already)
	return job, es
}

func TestAssign(t *testing.T) {
	now := time.Now()
	job := openJob()
	app := pendingApplication()

	require.NoError(t, Assign(job, app, employerID, now))

	assert.Equal(t, domain.JobAssigned, job.Status)
	require.NotNil(t, job.AssignedTo)
	assert.Equal(t, workerID, *job.AssignedTo)
	require.NotNil(t, job.AgreedPrice)
	assert.Equal(t, 800.0, *job.AgreedPrice, "agreed price copied from the application")
	assert.False(t, job.WorkerConfirm)
	assert.False(t, job.EmployerConfirm)
	assert.Equal(t, domain.ApplicationAccepted, app.Status)
	assert.Equal(t, domain.EscrowUnfunded, job.EscrowStatus)
}

func TestAssignGuards(t *testing.T) {
	now := time.Now()

	job := openJob()
	assert.ErrorIs(t, Assign(job, pendingApplication(), strangerID, now), domain.ErrForbidden)

	job = openJob()
	job.Status = domain.JobAssigned
	assert.ErrorIs(t, Assign(job, pendingApplication(), employerID, now), domain.ErrInvalidState)

	job = openJob()
	app := pendingApplication()
	app.JobID = 2
	assert.ErrorIs(t, Assign(job, app, employerID, now), domain.ErrValidation)
}

func TestNewEscrowShell(t *testing.T) {
	now := time.Now()
	job := openJob()
	require.NoError(t, Assign(job, pendingApplication(), employerID, now))

	es := NewEscrowShell(job)
	assert.Equal(t, job.ID, es.JobID)
	assert.Equal(t, employerID, es.EmployerID)
	assert.Equal(t, workerID, es.WorkerID)
	assert.Equal(t, 800.0, es.Amount, "escrow opens for the agreed price, not the budget")
	assert.Equal(t, domain.EscrowUnfunded, es.Status)
}

func TestFundIdempotent(t *testing.T) {
	job, es := fundedJob(t)
	assert.Equal(t, domain.EscrowFunded, es.Status)
	assert.Equal(t, domain.EscrowFunded, job.EscrowStatus)
	require.NotNil(t, es.FundedAt)

	// funding again is a no-op success, so no second hold is recorded
	already, err := Fund(job, es, employerID, time.Now())
	require.NoError(t, err)
	assert.True(t, already)
}

func TestFundGuards(t *testing.T) {
	now := time.Now()
	job := openJob()
	require.NoError(t, Assign(job, pendingApplication(), employerID, now))
	es := NewEscrowShell(job)

	_, err := Fund(job, es, strangerID, now)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// fund before assignment
	open := openJob()
	_, err = Fund(open, &domain.Escrow{Status: domain.EscrowUnfunded}, employerID, now)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestSubmitRequiresFunding(t *testing.T) {
	now := time.Now()
	job := openJob()
	require.NoError(t, Assign(job, pendingApplication(), employerID, now))
	es := NewEscrowShell(job)

	err := Submit(job, es, workerID, "done", "https://example.com/work", now)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "submit before funding must fail")
	assert.Equal(t, domain.JobAssigned, job.Status)
	assert.False(t, job.WorkerConfirm)
}

func TestSubmit(t *testing.T) {
	job, es := fundedJob(t)
	now := time.Now()

	assert.ErrorIs(t, Submit(job, es, employerID, "n", "u", now), domain.ErrForbidden)

	require.NoError(t, Submit(job, es, workerID, "done", "https://example.com/work", now))
	assert.Equal(t, domain.JobAwaitingApproval, job.Status)
	assert.True(t, job.WorkerConfirm)
	assert.Equal(t, "done", job.SubmissionNote)

	// re-submitting while awaiting approval just replaces the submission
	require.NoError(t, Submit(job, es, workerID, "fixed", "https://example.com/v2", now))
	assert.Equal(t, "fixed", job.SubmissionNote)
}

func TestApproveReleases(t *testing.T) {
	job, es := fundedJob(t)
	now := time.Now()
	require.NoError(t, Submit(job, es, workerID, "done", "", now))

	require.NoError(t, Approve(job, es, employerID, now))

	assert.Equal(t, domain.JobCompleted, job.Status)
	assert.True(t, job.EmployerConfirm)
	assert.Equal(t, domain.EscrowReleased, job.EscrowStatus)
	require.NotNil(t, job.CompletedAt)
	assert.Equal(t, domain.EscrowReleased, es.Status)
	assert.Equal(t, 40.0, es.Fee)
	assert.Equal(t, 760.0, es.Payout)
	assert.Equal(t, es.Amount, domain.RoundCents(es.Fee+es.Payout))
	require.NotNil(t, es.ReleasedAt)
}

func TestApproveGuards(t *testing.T) {
	now := time.Now()

	// approve before the worker submitted
	job, es := fundedJob(t)
	assert.ErrorIs(t, Approve(job, es, employerID, now), domain.ErrInvalidState)

	job, es = fundedJob(t)
	require.NoError(t, Submit(job, es, workerID, "done", "", now))
	assert.ErrorIs(t, Approve(job, es, strangerID, now), domain.ErrForbidden)

	// second approval: escrow is no longer funded, so no second release
	require.NoError(t, Approve(job, es, employerID, now))
	assert.ErrorIs(t, Approve(job, es, employerID, now), domain.ErrInvalidState)
	assert.Equal(t, 40.0, es.Fee, "split unchanged by the failed second approval")
}

func TestReleaseRequiresFunded(t *testing.T) {
	now := time.Now()
	es := &domain.Escrow{Amount: 800, Status: domain.EscrowUnfunded}
	assert.ErrorIs(t, Release(es, now), domain.ErrInvalidState)

	es.Status = domain.EscrowFunded
	es.Amount = 0
	assert.ErrorIs(t, Release(es, now), domain.ErrLedgerInvariant)
}

func TestRecordWorkerReview(t *testing.T) {
	now := time.Now()
	job := openJob()

	assert.True(t, RecordWorkerReview(job, 5, "great", now))
	assert.Equal(t, 5, job.WorkerReview.Score)

	// a second review is silently ignored
	assert.False(t, RecordWorkerReview(job, 1, "changed my mind", now))
	assert.Equal(t, 5, job.WorkerReview.Score)

	fresh := openJob()
	assert.False(t, RecordWorkerReview(fresh, 0, "", now), "no score means no review")
	assert.False(t, RecordWorkerReview(fresh, 9, "", now), "out-of-range score ignored")
	assert.False(t, fresh.WorkerReview.Set())
}

func TestTipGuards(t *testing.T) {
	job, es := fundedJob(t)
	now := time.Now()
	require.NoError(t, Submit(job, es, workerID, "done", "", now))

	assert.ErrorIs(t, Tip(job, employerID, 50), domain.ErrInvalidState, "tip before completion")

	require.NoError(t, Approve(job, es, employerID, now))
	assert.ErrorIs(t, Tip(job, strangerID, 50), domain.ErrForbidden)
	assert.ErrorIs(t, Tip(job, employerID, 0), domain.ErrValidation)
	assert.ErrorIs(t, Tip(job, employerID, -5), domain.ErrValidation)
	assert.NoError(t, Tip(job, employerID, 50))
}
