package domain

import "time"

// Application Model. One application per (job, worker) pair, enforced by the
// composite unique index.
type Application struct {
	ID            uint    `gorm:"primaryKey"`
	JobID         uint    `gorm:"uniqueIndex:idx_job_worker;not null"` // Job applied to
	WorkerID      uint    `gorm:"uniqueIndex:idx_job_worker;not null"` // Applying worker
	Price         float64 `gorm:"not null"`                 // Worker's proposed price
	Note          string  // Proposal text
	Status        string  `gorm:"not null;default:pending"` // pending, accepted, rejected
	RejectMessage string  // Set when the application is rejected in a batch
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
