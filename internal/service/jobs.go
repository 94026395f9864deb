package service

import (
	"time"

	"gigpay/internal/domain"
	"gigpay/internal/lifecycle"

	"gorm.io/gorm"
)

// CreateJobInput carries the validated fields for a new job posting.
type CreateJobInput struct {
	Title       string
	Description string
	Skills      []string
	Tags        []string
	Budget      float64
}

// CreateJob opens a new job for the employer.
func (s *Service) CreateJob(callerID uint, in CreateJobInput) (*domain.Job, error) {
	if err := s.requireRole(callerID, domain.RoleEmployer); err != nil {
		return nil, err
	}
	if in.Title == "" || !(in.Budget > 0) {
		return nil, domain.ErrValidation
	}
	job := domain.Job{
		EmployerID:   callerID,
		Title:        in.Title,
		Description:  in.Description,
		Skills:       in.Skills,
		Tags:         in.Tags,
		Budget:       domain.RoundCents(in.Budget),
		Status:       domain.JobOpen,
		EscrowStatus: domain.EscrowUnfunded,
	}
	if err := s.DB.Create(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// ListOpenJobs returns open jobs, newest first, optionally filtered by tag
// and minimum budget.
func (s *Service) ListOpenJobs(tag string, minBudget float64) ([]domain.Job, error) {
	q := s.DB.Where("status = ?", domain.JobOpen)
	if tag != "" {
		q = q.Where("tags LIKE ?", "%\""+tag+"\"%")
	}
	if minBudget > 0 {
		q = q.Where("budget >= ?", minBudget)
	}
	var jobs []domain.Job
	if err := q.Order("created_at desc").Limit(100).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetJob returns a single job by id.
func (s *Service) GetJob(jobID uint) (*domain.Job, error) {
	var job domain.Job
	if err := s.DB.First(&job, jobID).Error; err != nil {
		return nil, notFound(err)
	}
	return &job, nil
}

// Apply files a worker's application for an open job. A duplicate
// (job, worker) application is rejected by the unique index.
func (s *Service) Apply(callerID, jobID uint, price float64, note string) (*domain.Application, error) {
	if err := s.requireRole(callerID, domain.RoleWorker); err != nil {
		return nil, err
	}
	if !(price > 0) {
		return nil, domain.ErrValidation
	}
	var job domain.Job
	if err := s.DB.First(&job, jobID).Error; err != nil {
		return nil, notFound(err)
	}
	if job.Status != domain.JobOpen {
		return nil, domain.ErrInvalidState
	}
	app := domain.Application{
		JobID:    jobID,
		WorkerID: callerID,
		Price:    domain.RoundCents(price),
		Note:     note,
		Status:   domain.ApplicationPending,
	}
	if err := s.DB.Create(&app).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, domain.ErrDuplicateApplication
		}
		return nil, err
	}
	return &app, nil
}

// ListApplicants returns a job's applications to its employer.
func (s *Service) ListApplicants(callerID, jobID uint) ([]domain.Application, error) {
	var job domain.Job
	if err := s.DB.First(&job, jobID).Error; err != nil {
		return nil, notFound(err)
	}
	if job.EmployerID != callerID {
		return nil, domain.ErrForbidden
	}
	var apps []domain.Application
	if err := s.DB.Where("job_id = ?", jobID).Order("created_at desc").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Assign accepts one application and rejects the rest, locking the agreed
// price onto the job and creating the unfunded escrow shell. The whole batch
// is one atomic unit; the status condition on the job update serializes
// concurrent assigns so only one caller can win.
func (s *Service) Assign(callerID, jobID, applicationID uint) (*domain.Job, error) {
	var job domain.Job
	err := s.inTx(func(tx *gorm.DB) error {
		if err := tx.First(&job, jobID).Error; err != nil {
			return notFound(err)
		}
		var app domain.Application
		if err := tx.First(&app, applicationID).Error; err != nil {
			return notFound(err)
		}
		now := time.Now()
		if err := lifecycle.Assign(&job, &app, callerID, now); err != nil {
			return err
		}
		// Optimistic apply: the update only matches while the job is still
		// open, so the loser of a concurrent assign gets zero rows here.
		res := tx.Model(&domain.Job{}).
			Where("id = ? AND status = ?", job.ID, domain.JobOpen).
			Updates(map[string]any{
				"status":           job.Status,
				"assigned_to":      *job.AssignedTo,
				"agreed_price":     *job.AgreedPrice,
				"worker_confirm":   false,
				"employer_confirm": false,
				"escrow_status":    domain.EscrowUnfunded,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrInvalidState
		}
		if err := tx.Model(&domain.Application{}).
			Where("job_id = ? AND id <> ?", job.ID, app.ID).
			Updates(map[string]any{
				"status":         domain.ApplicationRejected,
				"reject_message": "Sorry! The job went to another applicant",
			}).Error; err != nil {
			return err
		}
		if err := tx.Model(&app).Update("status", domain.ApplicationAccepted).Error; err != nil {
			return err
		}
		return tx.Create(lifecycle.NewEscrowShell(&job)).Error
	})
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// Submit records the assigned worker's delivery and moves the job to
// awaiting-approval. Requires the escrow to be funded.
func (s *Service) Submit(callerID, jobID uint, note, url string) (*domain.Job, error) {
	var job domain.Job
	if err := s.DB.First(&job, jobID).Error; err != nil {
		return nil, notFound(err)
	}
	var es domain.Escrow
	esPtr := &es
	if err := s.DB.Where("job_id = ?", jobID).First(&es).Error; err != nil {
		esPtr = nil
	}
	if err := lifecycle.Submit(&job, esPtr, callerID, note, url, time.Now()); err != nil {
		return nil, err
	}
	if err := s.DB.Save(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// Rate records the caller's one-time review on a completed job and folds the
// score into the other party's rating aggregate. Review and aggregate commit
// together; the score condition on the update rejects a concurrent duplicate.
func (s *Service) Rate(callerID, jobID uint, score int, comment string) error {
	return s.inTx(func(tx *gorm.DB) error {
		var job domain.Job
		if err := tx.First(&job, jobID).Error; err != nil {
			return notFound(err)
		}
		now := time.Now()
		ratedID, err := lifecycle.Rate(&job, callerID, score, comment, now)
		if err != nil {
			return err
		}
		prefix := "review_employer_"
		if ratedID == *job.AssignedTo {
			prefix = "review_worker_"
		}
		res := tx.Model(&domain.Job{}).
			Where("id = ? AND "+prefix+"score = 0", job.ID).
			Updates(map[string]any{
				prefix + "score":   score,
				prefix + "comment": comment,
				prefix + "at":      now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrAlreadyRated
		}
		var rated domain.User
		if err := tx.First(&rated, ratedID).Error; err != nil {
			return notFound(err)
		}
		avg, count := lifecycle.NextAverage(rated.RatingAvg, rated.RatingCount, score)
		return tx.Model(&rated).Updates(map[string]any{
			"rating_avg":   avg,
			"rating_count": count,
		}).Error
	})
}
