// Package wallet owns wallet rows and the append-only ledger tied to them.
// Balances are only ever mutated through Apply, which writes the matching
// ledger entry in the same transaction; there is no raw set-balance path.
package wallet

import (
	"errors"

	"gigpay/internal/domain"

	"gorm.io/gorm"
)

func getOrCreate(tx *gorm.DB, kind string, ownerID uint) (*domain.Wallet, error) {
	var w domain.Wallet
	err := tx.Where("kind = ? AND owner_id = ?", kind, ownerID).First(&w).Error
	if err == nil {
		return &w, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	w = domain.Wallet{Kind: kind, OwnerID: ownerID, Balance: 0}
	if cerr := tx.Create(&w).Error; cerr != nil {
		// Lost a creation race: the unique (kind, owner_id) index rejected the
		// duplicate, so read the row the winner created.
		if rerr := tx.Where("kind = ? AND owner_id = ?", kind, ownerID).First(&w).Error; rerr == nil {
			return &w, nil
		}
		return nil, cerr
	}
	return &w, nil
}

// Company returns the singleton company wallet, creating it on first use.
func Company(tx *gorm.DB) (*domain.Wallet, error) {
	return getOrCreate(tx, domain.WalletCompany, 0)
}

// ForUser returns the user's wallet, creating it on first use.
func ForUser(tx *gorm.DB, ownerID uint) (*domain.Wallet, error) {
	if ownerID == 0 {
		return nil, domain.ErrLedgerInvariant
	}
	return getOrCreate(tx, domain.WalletUser, ownerID)
}

// Apply moves a signed amount through a wallet and appends the matching
// ledger entry. Debits are guarded so a committed balance can never go
// negative; any guard failure aborts the enclosing transaction.
func Apply(tx *gorm.DB, w *domain.Wallet, kind string, amount float64, jobID uint) error {
	if w == nil || w.ID == 0 || amount == 0 {
		return domain.ErrLedgerInvariant
	}
	amount = domain.RoundCents(amount)
	q := tx.Model(&domain.Wallet{}).Where("id = ?", w.ID)
	if amount < 0 {
		q = q.Where("balance >= ?", -amount)
	}
	res := q.Update("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrLedgerInvariant
	}
	entry := domain.Transaction{
		WalletID: w.ID,
		Kind:     kind,
		Amount:   amount,
		JobID:    jobID,
	}
	return tx.Create(&entry).Error
}

// LedgerSum returns the signed sum of a wallet's transactions. For any wallet
// this must reconcile with its current balance; the admin audit endpoint
// exposes the comparison.
func LedgerSum(tx *gorm.DB, walletID uint) (float64, error) {
	var sum float64
	err := tx.Model(&domain.Transaction{}).
		Where("wallet_id = ?", walletID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return domain.RoundCents(sum), err
}
