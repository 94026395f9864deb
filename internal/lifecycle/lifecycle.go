// Package lifecycle holds the job state machine: pure guards and mutations
// over in-memory entities. Persistence and atomicity live in the service
// layer; everything here is deterministic and side-effect free beyond the
// entities passed in.
package lifecycle

import (
	"time"

	"gigpay/internal/domain"
)

// Assign moves an open job to assigned on behalf of its employer, accepting
// the given application. Competing applications are rejected by the caller in
// the same unit of work.
func Assign(job *domain.Job, app *domain.Application, callerID uint, now time.Time) error {
	if job.EmployerID != callerID {
		return domain.ErrForbidden
	}
	if job.Status != domain.JobOpen {
		return domain.ErrInvalidState
	}
	if app.JobID != job.ID {
		return domain.ErrValidation
	}
	if !domain.CanTransitionJob(job.Status, domain.JobAssigned) {
		return domain.ErrInvalidState
	}

	app.Status = domain.ApplicationAccepted

	price := domain.RoundCents(app.Price)
	job.Status = domain.JobAssigned
	job.AssignedTo = &app.WorkerID
	job.AgreedPrice = &price // locked here, immutable afterwards
	job.WorkerConfirm = false
	job.EmployerConfirm = false
	job.EscrowStatus = domain.EscrowUnfunded
	job.UpdatedAt = now
	return nil
}

// NewEscrowShell builds the unfunded escrow record for a freshly assigned job.
func NewEscrowShell(job *domain.Job) *domain.Escrow {
	return &domain.Escrow{
		JobID:      job.ID,
		EmployerID: job.EmployerID,
		WorkerID:   *job.AssignedTo,
		Amount:     domain.RoundCents(job.AgreedAmount()),
		Status:     domain.EscrowUnfunded,
	}
}

// Fund marks the escrow funded. Returns already=true when the escrow is
// funded already, which the caller treats as success without re-applying any
// side effects.
func Fund(job *domain.Job, es *domain.Escrow, callerID uint, now time.Time) (already bool, err error) {
	if job.EmployerID != callerID {
		return false, domain.ErrForbidden
	}
	if es.Status == domain.EscrowFunded {
		return true, nil
	}
	if job.Status != domain.JobAssigned {
		return false, domain.ErrInvalidState
	}
	if !domain.CanTransitionEscrow(es.Status, domain.EscrowFunded) {
		return false, domain.ErrInvalidState
	}
	es.Status = domain.EscrowFunded
	es.FundedAt = &now
	job.EscrowStatus = domain.EscrowFunded
	job.UpdatedAt = now
	return false, nil
}

// Submit records the worker's delivery and moves the job to
// awaiting-approval. Requires a funded escrow; re-submitting while already
// awaiting approval just replaces the submission.
func Submit(job *domain.Job, es *domain.Escrow, callerID uint, note, url string, now time.Time) error {
	if job.AssignedTo == nil || *job.AssignedTo != callerID {
		return domain.ErrForbidden
	}
	if job.Status != domain.JobAssigned && job.Status != domain.JobAwaitingApproval {
		return domain.ErrInvalidState
	}
	if es == nil || es.Status != domain.EscrowFunded {
		return domain.ErrInvalidState
	}
	if !domain.CanTransitionJob(job.Status, domain.JobAwaitingApproval) {
		return domain.ErrInvalidState
	}
	job.SubmissionNote = note
	job.SubmissionURL = url
	job.WorkerConfirm = true
	job.Status = domain.JobAwaitingApproval
	job.UpdatedAt = now
	return nil
}

// Release computes the fee/payout split and marks the escrow released. Fails
// unless the escrow is currently funded, so a second approval can never
// release twice.
func Release(es *domain.Escrow, now time.Time) error {
	if es.Status != domain.EscrowFunded {
		return domain.ErrInvalidState
	}
	if !(es.Amount > 0) {
		return domain.ErrLedgerInvariant
	}
	es.Fee, es.Payout = domain.SplitAmount(es.Amount)
	es.Status = domain.EscrowReleased
	es.ReleasedAt = &now
	return nil
}

// Approve records the employer's approval and completes the job, releasing
// the escrow. A release failure leaves the job untouched; the caller must
// surface it instead of marking the job completed.
func Approve(job *domain.Job, es *domain.Escrow, callerID uint, now time.Time) error {
	if job.EmployerID != callerID {
		return domain.ErrForbidden
	}
	if !job.WorkerConfirm {
		return domain.ErrInvalidState
	}
	if !domain.CanTransitionJob(job.Status, domain.JobCompleted) {
		return domain.ErrInvalidState
	}
	if es == nil {
		return domain.ErrInvalidState
	}
	if err := Release(es, now); err != nil {
		return err
	}
	job.EmployerConfirm = true
	job.Status = domain.JobCompleted
	job.EscrowStatus = domain.EscrowReleased
	job.CompletedAt = &now
	job.UpdatedAt = now
	return nil
}

// RecordWorkerReview stores the employer's optional one-time review of the
// worker during approval. Silently ignored when a review already exists or no
// score was given; approval stays idempotent with respect to the review.
func RecordWorkerReview(job *domain.Job, score int, comment string, now time.Time) bool {
	if score == 0 || job.WorkerReview.Set() {
		return false
	}
	if score < 1 || score > 5 {
		return false
	}
	job.WorkerReview = domain.Review{Score: score, Comment: comment, At: now}
	return true
}

// Tip validates a post-completion tip from the employer to the worker.
func Tip(job *domain.Job, callerID uint, amount float64) error {
	if job.EmployerID != callerID {
		return domain.ErrForbidden
	}
	if job.Status != domain.JobCompleted {
		return domain.ErrInvalidState
	}
	if !(amount > 0) {
		return domain.ErrValidation
	}
	if job.AssignedTo == nil {
		return domain.ErrLedgerInvariant
	}
	return nil
}
