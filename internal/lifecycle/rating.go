package lifecycle

import (
	"time"

	"gigpay/internal/domain"
)

// Rate records the caller's one-time review on a completed job and returns
// the id of the other party, whose rating aggregate the caller must update in
// the same request. Each side may rate at most once.
func Rate(job *domain.Job, callerID uint, score int, comment string, now time.Time) (ratedID uint, err error) {
	if score < 1 || score > 5 {
		return 0, domain.ErrValidation
	}
	if job.Status != domain.JobCompleted {
		return 0, domain.ErrInvalidState
	}
	if job.AssignedTo == nil {
		return 0, domain.ErrInvalidState
	}

	review := domain.Review{Score: score, Comment: comment, At: now}
	switch callerID {
	case job.EmployerID:
		if job.WorkerReview.Set() {
			return 0, domain.ErrAlreadyRated
		}
		job.WorkerReview = review
		ratedID = *job.AssignedTo
	case *job.AssignedTo:
		if job.EmployerReview.Set() {
			return 0, domain.ErrAlreadyRated
		}
		job.EmployerReview = review
		ratedID = job.EmployerID
	default:
		return 0, domain.ErrForbidden
	}
	job.UpdatedAt = now
	return ratedID, nil
}

// NextAverage folds one more score into a running rating average, rounded to
// two decimals. The aggregate only ever grows.
func NextAverage(avg float64, count, score int) (float64, int) {
	next := (avg*float64(count) + float64(score)) / float64(count+1)
	return domain.RoundCents(next), count + 1
}
