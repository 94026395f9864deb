package service

import (
	"time"

	"gigpay/internal/domain"
	"gigpay/internal/lifecycle"
	"gigpay/internal/wallet"

	"gorm.io/gorm"
)

// Fund moves the job's escrow to funded, holding the amount on the company
// wallet with a matching hold ledger entry. Idempotent: funding an already
// funded escrow succeeds without a second hold.
func (s *Service) Fund(callerID, jobID uint) (*domain.Escrow, error) {
	var es domain.Escrow
	err := s.inTx(func(tx *gorm.DB) error {
		var job domain.Job
		if err := tx.First(&job, jobID).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Where("job_id = ?", jobID).First(&es).Error; err != nil {
			return notFound(err)
		}
		now := time.Now()
		already, err := lifecycle.Fund(&job, &es, callerID, now)
		if err != nil {
			return err
		}
		if already {
			return nil
		}
		// Only the request that flips unfunded to funded applies the hold;
		// a concurrent fund finding zero rows is the idempotent duplicate.
		res := tx.Model(&domain.Escrow{}).
			Where("id = ? AND status = ?", es.ID, domain.EscrowUnfunded).
			Updates(map[string]any{
				"status":    domain.EscrowFunded,
				"funded_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := tx.Model(&domain.Job{}).Where("id = ?", job.ID).
			Update("escrow_status", domain.EscrowFunded).Error; err != nil {
			return err
		}
		company, err := wallet.Company(tx)
		if err != nil {
			return err
		}
		return wallet.Apply(tx, company, domain.TxHold, es.Amount, job.ID)
	})
	if err != nil {
		return nil, err
	}
	return &es, nil
}

// Approve records the employer's approval and releases the escrow: the held
// amount leaves the company wallet, the fee comes back to it, the payout goes
// to the worker, and three ledger entries plus the escrow and job rows commit
// as one unit. An optional score records the employer's review of the worker.
func (s *Service) Approve(callerID, jobID uint, score int, comment string) (*domain.Job, error) {
	var job domain.Job
	err := s.inTx(func(tx *gorm.DB) error {
		if err := tx.First(&job, jobID).Error; err != nil {
			return notFound(err)
		}
		var es domain.Escrow
		if err := tx.Where("job_id = ?", jobID).First(&es).Error; err != nil {
			return notFound(err)
		}
		now := time.Now()
		if err := lifecycle.Approve(&job, &es, callerID, now); err != nil {
			return err
		}
		// The release only matches a funded escrow, so a second approval (or
		// a concurrent one) fails here with zero rows instead of paying twice.
		res := tx.Model(&domain.Escrow{}).
			Where("id = ? AND status = ?", es.ID, domain.EscrowFunded).
			Updates(map[string]any{
				"status":      domain.EscrowReleased,
				"fee":         es.Fee,
				"payout":      es.Payout,
				"released_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInvalidState
		}
		company, err := wallet.Company(tx)
		if err != nil {
			return err
		}
		worker, err := wallet.ForUser(tx, es.WorkerID)
		if err != nil {
			return err
		}
		if err := wallet.Apply(tx, company, domain.TxRelease, -es.Amount, job.ID); err != nil {
			return err
		}
		if err := wallet.Apply(tx, company, domain.TxFee, es.Fee, job.ID); err != nil {
			return err
		}
		if err := wallet.Apply(tx, worker, domain.TxPayout, es.Payout, job.ID); err != nil {
			return err
		}
		lifecycle.RecordWorkerReview(&job, score, comment, now)
		return tx.Save(&job).Error
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// Tip credits the worker's wallet after completion, independent of the
// escrow, with a single tip ledger entry.
func (s *Service) Tip(callerID, jobID uint, amount float64) error {
	return s.inTx(func(tx *gorm.DB) error {
		var job domain.Job
		if err := tx.First(&job, jobID).Error; err != nil {
			return notFound(err)
		}
		if err := lifecycle.Tip(&job, callerID, amount); err != nil {
			return err
		}
		worker, err := wallet.ForUser(tx, *job.AssignedTo)
		if err != nil {
			return err
		}
		return wallet.Apply(tx, worker, domain.TxTip, domain.RoundCents(amount), job.ID)
	})
}

// GetEscrow returns the current escrow state for a job. Display-only read:
// no transaction, and callers may cache it briefly.
func (s *Service) GetEscrow(jobID uint) (*domain.Escrow, error) {
	var job domain.Job
	if err := s.DB.First(&job, jobID).Error; err != nil {
		return nil, notFound(err)
	}
	var es domain.Escrow
	if err := s.DB.Where("job_id = ?", jobID).First(&es).Error; err != nil {
		// No shell yet: report the job's mirror so viewers always get a status.
		return &domain.Escrow{
			JobID:  jobID,
			Status: domain.EscrowUnfunded,
			Amount: domain.RoundCents(job.AgreedAmount()),
		}, nil
	}
	return &es, nil
}
