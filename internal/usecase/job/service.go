package job

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"itapp/internal/domain/job"
	"itapp/internal/pkg/pagination"
	"itapp/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("job not found")
	ErrInternal     = errors.New("internal error")
)

const searchKeyPrefix = "jobs:search:"

type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type CreateInput struct {
	Title          string
	Level          string
	DurationMonths int
	Address        string
	City           string
	State          string
	Description    string
	Industry       string
}

// SearchInput carries raw search terms. A zero MinDuration or MaxDuration
// leaves that side of the duration range open.
type SearchInput struct {
	Field       string
	Location    string
	MinDuration int
	MaxDuration int
	OrderBy     string
	PageNumber  int
	Limit       int
	Date        string
}

type Page struct {
	Jobs  []job.Job
	Total int
}

type Service struct {
	jobs   job.Repository
	cache  Cache
	logger zerolog.Logger
}

func NewService(jobs job.Repository, cache Cache, logger zerolog.Logger) *Service {
	return &Service{jobs: jobs, cache: cache, logger: logger}
}

func (s *Service) Create(ctx context.Context, companyID uuid.UUID, in CreateInput) (job.Job, error) {
	j := job.Job{
		ID:             uuid.New(),
		CompanyID:      companyID,
		Title:          strings.TrimSpace(in.Title),
		Level:          strings.TrimSpace(in.Level),
		DurationMonths: in.DurationMonths,
		Address:        strings.TrimSpace(in.Address),
		City:           strings.TrimSpace(in.City),
		State:          strings.TrimSpace(in.State),
		Description:    strings.TrimSpace(in.Description),
		Industry:       strings.TrimSpace(in.Industry),
	}
	if j.Title == "" || j.Level == "" || j.Industry == "" || j.City == "" {
		return job.Job{}, fmt.Errorf("%w: title, level, industry and city are required", ErrInvalidInput)
	}
	if j.DurationMonths < 1 {
		return job.Job{}, fmt.Errorf("%w: durationMonths must be >= 1", ErrInvalidInput)
	}

	if err := s.jobs.Create(ctx, j); err != nil {
		return job.Job{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	created, err := s.jobs.GetByID(ctx, j.ID)
	if err != nil {
		return job.Job{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.Invalidate(ctx)
	return created, nil
}

// Update changes a job owned by companyID; a job of another company is
// reported as not found.
func (s *Service) Update(ctx context.Context, companyID, jobID uuid.UUID, p job.Patch) (job.Job, error) {
	for _, f := range []*string{p.Title, p.Level, p.City, p.Industry} {
		if f != nil && strings.TrimSpace(*f) == "" {
			return job.Job{}, fmt.Errorf("%w: title, level, industry and city cannot be empty", ErrInvalidInput)
		}
	}
	if p.DurationMonths != nil && *p.DurationMonths < 1 {
		return job.Job{}, fmt.Errorf("%w: durationMonths must be >= 1", ErrInvalidInput)
	}

	updated, err := s.jobs.Update(ctx, companyID, jobID, trimPatch(p))
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Job{}, ErrNotFound
		}
		return job.Job{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.Invalidate(ctx)
	return updated, nil
}

func (s *Service) List(ctx context.Context, f job.ListFilter, q pagination.Query) (Page, error) {
	page, err := pagination.Resolve(q, repository.JobOrderColumns())
	if err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	jobs, total, err := s.jobs.List(ctx, f, page)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return Page{Jobs: jobs, Total: total}, nil
}

func (s *Service) ListForCompany(ctx context.Context, companyID uuid.UUID, q pagination.Query) (Page, error) {
	return s.List(ctx, job.ListFilter{CompanyID: &companyID}, q)
}

// Search serves repeated queries from the cache until a job or an
// application changes.
func (s *Service) Search(ctx context.Context, in SearchInput) (Page, error) {
	f, page, err := normalizeSearch(in)
	if err != nil {
		return Page{}, err
	}

	key := searchCacheKey(f, page)
	if s.cache != nil {
		var cached Page
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			s.logger.Debug().Str("key", key).Msg("job search cache hit")
			return cached, nil
		}
	}

	jobs, total, err := s.jobs.Search(ctx, f, page)
	if err != nil {
		return Page{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	out := Page{Jobs: jobs, Total: total}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, out, 0); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("job search cache write failed")
		}
	}
	return out, nil
}

// Invalidate drops every cached search result.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, searchKeyPrefix+"*"); err != nil {
		s.logger.Warn().Err(err).Msg("job search cache invalidation failed")
	}
}

func normalizeSearch(in SearchInput) (job.SearchFilter, pagination.Page, error) {
	page, err := pagination.Resolve(pagination.Query{PageNumber: in.PageNumber, Limit: in.Limit, Date: in.Date}, nil)
	if err != nil {
		return job.SearchFilter{}, pagination.Page{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if in.MinDuration < 0 || in.MaxDuration < 0 {
		return job.SearchFilter{}, pagination.Page{}, fmt.Errorf("%w: duration cannot be negative", ErrInvalidInput)
	}
	if in.MinDuration > 0 && in.MaxDuration > 0 && in.MinDuration > in.MaxDuration {
		return job.SearchFilter{}, pagination.Page{}, fmt.Errorf("%w: duration start is after end", ErrInvalidInput)
	}

	order := strings.ToUpper(strings.TrimSpace(in.OrderBy))
	switch order {
	case "":
		order = pagination.OrderDESC
	case pagination.OrderASC, pagination.OrderDESC:
	default:
		return job.SearchFilter{}, pagination.Page{}, fmt.Errorf("%w: orderBy must be ASC or DESC", ErrInvalidInput)
	}

	return job.SearchFilter{
		Field:       strings.TrimSpace(in.Field),
		Location:    strings.TrimSpace(in.Location),
		MinDuration: in.MinDuration,
		MaxDuration: in.MaxDuration,
		Order:       order,
	}, page, nil
}

type searchCacheKeyInput struct {
	Field    string `json:"field"`
	Location string `json:"location"`
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Order    string `json:"order"`
	Skip     int    `json:"skip"`
	Take     int    `json:"take"`
	Date     string `json:"date,omitempty"`
}

// searchCacheKey keeps the search terms case-sensitive since matching is.
func searchCacheKey(f job.SearchFilter, page pagination.Page) string {
	in := searchCacheKeyInput{
		Field:    f.Field,
		Location: f.Location,
		Min:      f.MinDuration,
		Max:      f.MaxDuration,
		Order:    f.Order,
		Skip:     page.Skip,
		Take:     page.Take,
	}
	if page.Date != nil {
		in.Date = page.Date.Format("2006-01-02")
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return searchKeyPrefix + hex.EncodeToString(sum[:])
}

func trimPatch(p job.Patch) job.Patch {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := strings.TrimSpace(*s)
		return &v
	}
	return job.Patch{
		Title:          trim(p.Title),
		Level:          trim(p.Level),
		DurationMonths: p.DurationMonths,
		Address:        trim(p.Address),
		City:           trim(p.City),
		State:          trim(p.State),
		Description:    trim(p.Description),
		Industry:       trim(p.Industry),
	}
}
