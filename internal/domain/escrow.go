package domain

import "time"

// Escrow Model. Exactly one per job. Amount is fixed at creation; Fee and
// Payout are populated only at release and always sum to Amount.
type Escrow struct {
	ID         uint    `gorm:"primaryKey"`
	JobID      uint    `gorm:"uniqueIndex;not null"` // One escrow per job
	EmployerID uint    `gorm:"index;not null"`
	WorkerID   uint    `gorm:"index;not null"`
	Amount     float64 `gorm:"not null"`                  // Agreed price, immutable after creation
	Status     string  `gorm:"not null;default:unfunded"` // unfunded, funded, released, refunded
	Fee        float64 // Platform cut, set at release
	Payout     float64 // Worker share, set at release
	FundedAt   *time.Time
	ReleasedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
