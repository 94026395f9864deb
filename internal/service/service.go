// Package service implements the marketplace core operations over gorm. Every
// money-moving operation and the assignment step run as a single transaction
// spanning all the rows they touch, with a bounded retry on transient
// conflicts. State-machine guards themselves live in internal/lifecycle.
package service

import (
	"errors"

	"gigpay/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// maxTxAttempts bounds the retry loop for deadlocked units of work.
const maxTxAttempts = 3

// Service exposes the job lifecycle and escrow ledger operations.
type Service struct {
	DB *gorm.DB
}

// New constructs a Service over the given database handle.
func New(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// inTx runs fn as one atomic unit of work, retrying a bounded number of times
// when MySQL reports a transient conflict (deadlock or lock wait timeout).
func (s *Service) inTx(fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = s.DB.Transaction(fn)
		if err == nil || !isTransient(err) {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"attempt": attempt,
			"error":   err.Error(),
		}).Warn("Retrying unit of work after transient conflict")
	}
	return err
}

func isTransient(err error) bool {
	var my *mysql.MySQLError
	if errors.As(err, &my) {
		return my.Number == 1213 || my.Number == 1205 // deadlock, lock wait timeout
	}
	return false
}

func isDuplicateKey(err error) bool {
	var my *mysql.MySQLError
	return errors.As(err, &my) && my.Number == 1062
}

// notFound translates gorm's missing-record error into the domain taxonomy.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// requireRole loads the caller and checks their role.
func (s *Service) requireRole(callerID uint, role string) error {
	var user domain.User
	if err := s.DB.First(&user, callerID).Error; err != nil {
		return notFound(err)
	}
	if user.Role != role {
		return domain.ErrForbidden
	}
	return nil
}
