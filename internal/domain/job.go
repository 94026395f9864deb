package domain

import "time"

// Review is a one-time rating one party leaves for the other on a job.
// A zero Score means no review has been recorded yet.
type Review struct {
	Score   int       `json:"score"`
	Comment string    `json:"comment"`
	At      time.Time `json:"at"`
}

// Set reports whether the review has been recorded.
func (r Review) Set() bool {
	return r.Score != 0
}

// Job Model. AgreedPrice is copied from the accepted application at
// assignment and never changes afterwards; EscrowStatus mirrors the escrow
// record so listings can show it without a join.
type Job struct {
	ID              uint     `gorm:"primaryKey"`
	EmployerID      uint     `gorm:"index;not null"`
	AssignedTo      *uint    `gorm:"index"` // Assigned worker, nil until assignment
	Title           string   `gorm:"not null"`
	Description     string
	Skills          []string `gorm:"serializer:json"` // Required skills
	Tags            []string `gorm:"serializer:json"` // Search tags
	Budget          float64  `gorm:"not null"` // Employer's initial offer
	AgreedPrice     *float64
	Status          string   `gorm:"index;not null"`            // open, assigned, awaiting-approval, completed, disputed
	EscrowStatus    string   `gorm:"not null;default:unfunded"` // unfunded, funded, released
	WorkerConfirm   bool     `gorm:"not null;default:false"`    // Worker submitted the work
	EmployerConfirm bool     `gorm:"not null;default:false"`    // Employer approved the work
	SubmissionNote  string
	SubmissionURL   string
	WorkerReview    Review   `gorm:"embedded;embeddedPrefix:review_worker_"`   // Employer's review of the worker
	EmployerReview  Review   `gorm:"embedded;embeddedPrefix:review_employer_"` // Worker's review of the employer
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AgreedAmount returns the price the escrow is opened for: the accepted
// application's price once assigned, the budget before that. Derived, never
// stored.
func (j *Job) AgreedAmount() float64 {
	if j.AgreedPrice != nil {
		return *j.AgreedPrice
	}
	return j.Budget
}
