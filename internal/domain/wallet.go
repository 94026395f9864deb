package domain

// Wallet kinds
const (
	WalletCompany = "company" // Single platform wallet holding client funds
	WalletUser    = "user"    // One wallet per user
)

// Wallet Model.
// The company wallet is stored with OwnerID 0; the composite unique index
// makes it a singleton the same way it makes user wallets unique per owner.
type Wallet struct {
	ID      uint    `gorm:"primaryKey"`                          // Primary key
	Kind    string  `gorm:"not null;uniqueIndex:idx_owner_kind"` // company or user
	OwnerID uint    `gorm:"uniqueIndex:idx_owner_kind"`          // Owning user, 0 for the company wallet
	Balance float64 `gorm:"not null;default:0"`                  // Wallet balance, never negative once committed
}
