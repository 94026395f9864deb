package domain

// Transaction kinds
const (
	TxHold    = "hold"    // Funds held by the company wallet on escrow funding
	TxRelease = "release" // Held amount leaving the company wallet at release
	TxFee     = "fee"     // Platform cut returning to the company wallet
	TxPayout  = "payout"  // Worker's share at release
	TxTip     = "tip"     // Post-completion credit to the worker
)

// Transaction Model. Append-only: rows are never updated or deleted, and the
// signed sum per wallet reconciles with that wallet's balance.
type Transaction struct {
	ID        uint    `gorm:"primaryKey"`
	WalletID  uint    `gorm:"index;not null"` // Wallet this entry applies to
	Kind      string  `gorm:"index;not null"` // hold, release, fee, payout, tip
	Amount    float64 `gorm:"not null"`       // Signed amount, negative for debits
	JobID     uint    `gorm:"index"`          // Job the movement relates to
	CreatedAt int64   `gorm:"autoCreateTime:milli"` // Timestamp of creation in milliseconds
}
