package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"itapp/internal/domain/application"
	"itapp/internal/domain/job"
	"itapp/internal/domain/notification"
	"itapp/internal/domain/student"
	"itapp/internal/pkg/pagination"
	"itapp/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("student has already applied for this job")
	ErrAlreadyAccepted     = errors.New("student has already been accepted for this job")
	ErrAlreadyShortlisted  = errors.New("student has already been shortlisted for this job")
	ErrDeclineNotAllowed   = errors.New("accepted or shortlisted applications cannot be declined")
	ErrAlreadySaved        = errors.New("job is already saved")
	ErrNotSaved            = errors.New("job is not saved")
	ErrNoPlacement         = errors.New("no current placement")
	ErrInternal            = errors.New("internal error")
)

type StudentReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (student.Student, error)
}

// CacheInvalidator drops cached job listings whose counters just changed.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

type Pusher interface {
	Push(n notification.Notification)
}

type Mailer interface {
	Accepted(ctx context.Context, to, name, jobTitle string, start, end time.Time) error
}

type ListPage struct {
	Entries []application.Entry
	Total   int
}

type Service struct {
	store    application.Store
	students StudentReader
	cache    CacheInvalidator
	pusher   Pusher
	mailer   Mailer
	logger   zerolog.Logger

	now func() time.Time
}

func NewService(
	store application.Store,
	students StudentReader,
	cache CacheInvalidator,
	pusher Pusher,
	mailer Mailer,
	logger zerolog.Logger,
) *Service {
	return &Service{
		store:    store,
		students: students,
		cache:    cache,
		pusher:   pusher,
		mailer:   mailer,
		logger:   logger,
		now:      time.Now,
	}
}

// Apply records the application and bumps the job's applicant counter in the
// same transaction. The (student, job) unique index rejects concurrent
// duplicates that slip past the existence check.
func (s *Service) Apply(ctx context.Context, studentID, jobID uuid.UUID) (application.Application, error) {
	if studentID == uuid.Nil || jobID == uuid.Nil {
		return application.Application{}, ErrInvalidInput
	}

	app := application.Application{
		ID:        uuid.New(),
		StudentID: studentID,
		JobID:     jobID,
		CreatedAt: s.now().UTC(),
	}

	err := s.store.InTx(ctx, func(r application.Repository) error {
		if _, err := r.LockJob(ctx, jobID); err != nil {
			return mapJobErr(err)
		}

		if _, err := r.GetApplication(ctx, studentID, jobID); err == nil {
			return ErrAlreadyApplied
		} else if !errors.Is(err, application.ErrNotFound) {
			return err
		}

		if err := r.InsertApplication(ctx, app); err != nil {
			if errors.Is(err, application.ErrDuplicate) {
				return ErrAlreadyApplied
			}
			return err
		}
		return r.AdjustJobCounters(ctx, jobID, job.Counters{Total: 1})
	})
	if err != nil {
		return application.Application{}, wrap(err)
	}

	s.invalidate(ctx)
	return app, nil
}

// Accept starts the placement now and ends it DurationMonths calendar months
// later.
func (s *Service) Accept(ctx context.Context, companyID, studentID, jobID uuid.UUID) (application.Accepted, error) {
	if companyID == uuid.Nil || studentID == uuid.Nil || jobID == uuid.Nil {
		return application.Accepted{}, ErrInvalidInput
	}

	now := s.now().UTC()
	var (
		acc  application.Accepted
		note notification.Notification
		j    job.Job
	)

	err := s.store.InTx(ctx, func(r application.Repository) error {
		var (
			app application.Application
			err error
		)
		j, app, err = ownedApplication(ctx, r, companyID, studentID, jobID)
		if err != nil {
			return err
		}
		if app.Accepted {
			return ErrAlreadyAccepted
		}

		acc = application.Accepted{
			ID:        uuid.New(),
			StudentID: studentID,
			JobID:     jobID,
			StartDate: now,
			EndDate:   AddMonths(now, j.DurationMonths),
			CreatedAt: now,
		}
		if err := r.InsertAccepted(ctx, acc); err != nil {
			if errors.Is(err, application.ErrDuplicate) {
				return ErrAlreadyAccepted
			}
			return err
		}
		if err := r.MarkAccepted(ctx, studentID, jobID); err != nil {
			return err
		}
		if err := r.AdjustJobCounters(ctx, jobID, job.Counters{Accepted: 1}); err != nil {
			return err
		}

		note = newNotification(studentID, now, "Application accepted", fmt.Sprintf(
			"You have been accepted for %s. Your placement runs from %s to %s.",
			j.Title, acc.StartDate.Format("2006-01-02"), acc.EndDate.Format("2006-01-02"),
		))
		return r.AppendNotification(ctx, note)
	})
	if err != nil {
		return application.Accepted{}, wrap(err)
	}

	s.invalidate(ctx)
	s.push(note)
	s.mailAccepted(ctx, studentID, j.Title, acc)
	return acc, nil
}

func (s *Service) Shortlist(ctx context.Context, companyID, studentID, jobID uuid.UUID) (application.Shortlisted, error) {
	if companyID == uuid.Nil || studentID == uuid.Nil || jobID == uuid.Nil {
		return application.Shortlisted{}, ErrInvalidInput
	}

	now := s.now().UTC()
	var (
		sl   application.Shortlisted
		note notification.Notification
	)

	err := s.store.InTx(ctx, func(r application.Repository) error {
		j, _, err := ownedApplication(ctx, r, companyID, studentID, jobID)
		if err != nil {
			return err
		}

		already, err := r.IsShortlisted(ctx, studentID, jobID)
		if err != nil {
			return err
		}
		if already {
			return ErrAlreadyShortlisted
		}

		sl = application.Shortlisted{ID: uuid.New(), StudentID: studentID, JobID: jobID, CreatedAt: now}
		if err := r.InsertShortlisted(ctx, sl); err != nil {
			if errors.Is(err, application.ErrDuplicate) {
				return ErrAlreadyShortlisted
			}
			return err
		}
		if err := r.AdjustJobCounters(ctx, jobID, job.Counters{Shortlisted: 1}); err != nil {
			return err
		}

		note = newNotification(studentID, now, "Application shortlisted",
			fmt.Sprintf("You have been shortlisted for %s.", j.Title))
		return r.AppendNotification(ctx, note)
	})
	if err != nil {
		return application.Shortlisted{}, wrap(err)
	}

	s.invalidate(ctx)
	s.push(note)
	return sl, nil
}

// Decline removes a plain application. Accepted or shortlisted applications
// are kept and the call is refused.
func (s *Service) Decline(ctx context.Context, companyID, studentID, jobID uuid.UUID) error {
	if companyID == uuid.Nil || studentID == uuid.Nil || jobID == uuid.Nil {
		return ErrInvalidInput
	}

	now := s.now().UTC()
	var note notification.Notification

	err := s.store.InTx(ctx, func(r application.Repository) error {
		j, app, err := ownedApplication(ctx, r, companyID, studentID, jobID)
		if err != nil {
			return err
		}
		if app.Accepted {
			return ErrDeclineNotAllowed
		}
		shortlisted, err := r.IsShortlisted(ctx, studentID, jobID)
		if err != nil {
			return err
		}
		if shortlisted {
			return ErrDeclineNotAllowed
		}

		if err := r.DeleteApplication(ctx, studentID, jobID); err != nil {
			if errors.Is(err, application.ErrNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}
		if err := r.AdjustJobCounters(ctx, jobID, job.Counters{Total: -1}); err != nil {
			return err
		}

		note = newNotification(studentID, now, "Application declined",
			fmt.Sprintf("Your application for %s was not successful.", j.Title))
		return r.AppendNotification(ctx, note)
	})
	if err != nil {
		return wrap(err)
	}

	s.invalidate(ctx)
	s.push(note)
	return nil
}

func (s *Service) Save(ctx context.Context, studentID, jobID uuid.UUID) (application.Saved, error) {
	if studentID == uuid.Nil || jobID == uuid.Nil {
		return application.Saved{}, ErrInvalidInput
	}

	saved := application.Saved{ID: uuid.New(), StudentID: studentID, JobID: jobID, CreatedAt: s.now().UTC()}
	err := s.store.InTx(ctx, func(r application.Repository) error {
		if _, err := r.LockJob(ctx, jobID); err != nil {
			return mapJobErr(err)
		}
		if err := r.InsertSaved(ctx, saved); err != nil {
			if errors.Is(err, application.ErrDuplicate) {
				return ErrAlreadySaved
			}
			return err
		}
		return nil
	})
	if err != nil {
		return application.Saved{}, wrap(err)
	}
	return saved, nil
}

func (s *Service) Unsave(ctx context.Context, studentID, jobID uuid.UUID) error {
	if studentID == uuid.Nil || jobID == uuid.Nil {
		return ErrInvalidInput
	}
	removed, err := s.store.DeleteSaved(ctx, studentID, jobID)
	if err != nil {
		return wrap(err)
	}
	if !removed {
		return ErrNotSaved
	}
	return nil
}

func (s *Service) List(ctx context.Context, studentID uuid.UUID, saved bool, q pagination.Query) (ListPage, error) {
	page, err := pagination.Resolve(q, repository.StudentApplicationOrderColumns())
	if err != nil {
		return ListPage{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	entries, total, err := s.store.ListByStudent(ctx, studentID, saved, page)
	if err != nil {
		return ListPage{}, wrap(err)
	}
	return ListPage{Entries: entries, Total: total}, nil
}

func (s *Service) CurrentPlacement(ctx context.Context, studentID uuid.UUID) (application.Placement, error) {
	p, err := s.store.CurrentPlacement(ctx, studentID, s.now().UTC())
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.Placement{}, ErrNoPlacement
		}
		return application.Placement{}, wrap(err)
	}
	return p, nil
}

// ownedApplication locks the job and loads the application, reporting both a
// foreign job and a missing application as ErrApplicationNotFound.
func ownedApplication(ctx context.Context, r application.Repository, companyID, studentID, jobID uuid.UUID) (job.Job, application.Application, error) {
	j, err := r.LockJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, application.Application{}, ErrApplicationNotFound
		}
		return job.Job{}, application.Application{}, err
	}
	if j.CompanyID != companyID {
		return job.Job{}, application.Application{}, ErrApplicationNotFound
	}

	app, err := r.GetApplication(ctx, studentID, jobID)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return job.Job{}, application.Application{}, ErrApplicationNotFound
		}
		return job.Job{}, application.Application{}, err
	}
	return j, app, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func (s *Service) push(n notification.Notification) {
	if s.pusher != nil && n.ID != uuid.Nil {
		s.pusher.Push(n)
	}
}

func (s *Service) mailAccepted(ctx context.Context, studentID uuid.UUID, jobTitle string, acc application.Accepted) {
	if s.mailer == nil || s.students == nil {
		return
	}
	st, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		s.logger.Warn().Err(err).Str("student_id", studentID.String()).Msg("acceptance email skipped")
		return
	}
	if err := s.mailer.Accepted(ctx, st.Email, st.FullName(), jobTitle, acc.StartDate, acc.EndDate); err != nil {
		s.logger.Warn().Err(err).Str("student_id", studentID.String()).Msg("acceptance email failed")
	}
}

func newNotification(studentID uuid.UUID, now time.Time, title, body string) notification.Notification {
	return notification.Notification{ID: uuid.New(), StudentID: studentID, Title: title, Body: body, CreatedAt: now}
}

func mapJobErr(err error) error {
	if errors.Is(err, job.ErrNotFound) {
		return ErrJobNotFound
	}
	return err
}

var workflowErrors = []error{
	ErrInvalidInput, ErrJobNotFound, ErrApplicationNotFound, ErrAlreadyApplied, ErrAlreadyAccepted,
	ErrAlreadyShortlisted, ErrDeclineNotAllowed, ErrAlreadySaved, ErrNotSaved, ErrNoPlacement,
}

// wrap passes workflow errors through and marks everything else internal.
func wrap(err error) error {
	for _, known := range workflowErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}
