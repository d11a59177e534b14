package job

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"itapp/internal/domain/job"
	"itapp/internal/pkg/logger"
	"itapp/internal/pkg/pagination"

	"github.com/google/uuid"
)

func TestCreate_Validation(t *testing.T) {
	s := NewService(newFakeJobs(), nil, logger.Nop())
	ctx := context.Background()

	cases := []CreateInput{
		{Title: "", Level: "junior", Industry: "tech", City: "Lagos", DurationMonths: 3},
		{Title: "Intern", Level: "junior", Industry: "tech", City: "", DurationMonths: 3},
		{Title: "Intern", Level: "junior", Industry: "tech", City: "Lagos", DurationMonths: 0},
	}
	for i, in := range cases {
		if _, err := s.Create(ctx, uuid.New(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestUpdate_OtherCompanyIsNotFound(t *testing.T) {
	repo := newFakeJobs()
	s := NewService(repo, nil, logger.Nop())
	ctx := context.Background()

	owner := uuid.New()
	j, err := s.Create(ctx, owner, CreateInput{Title: "Intern", Level: "junior", Industry: "tech", City: "Lagos", DurationMonths: 3})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "Senior Intern"
	if _, err := s.Update(ctx, uuid.New(), j.ID, job.Patch{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	got, err := s.Update(ctx, owner, j.ID, job.Patch{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != "Senior Intern" || got.City != "Lagos" {
		t.Fatalf("unexpected job %+v", got)
	}
}

func TestSearch_FieldAndDurationRange(t *testing.T) {
	repo := newFakeJobs()
	s := NewService(repo, nil, logger.Nop())
	ctx := context.Background()
	company := uuid.New()

	for _, in := range []CreateInput{
		{Title: "A", Level: "l", Industry: "fintech", City: "Lagos", DurationMonths: 3},
		{Title: "B", Level: "l", Industry: "tech", City: "Abuja", DurationMonths: 6},
		{Title: "C", Level: "l", Industry: "tech", City: "Lagos", DurationMonths: 12},
		{Title: "D", Level: "l", Industry: "agric", City: "Lagos", DurationMonths: 2},
		{Title: "E", Level: "l", Industry: "Tech", City: "Lagos", DurationMonths: 2},
	} {
		if _, err := s.Create(ctx, company, in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	res, err := s.Search(ctx, SearchInput{Field: "tech", MinDuration: 1, MaxDuration: 6, PageNumber: 1, Limit: 10})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	titles := make([]string, 0, len(res.Jobs))
	for _, j := range res.Jobs {
		titles = append(titles, j.Title)
	}
	sort.Strings(titles)
	if strings.Join(titles, ",") != "A,B" || res.Total != 2 {
		t.Fatalf("expected A,B got %v (total %d)", titles, res.Total)
	}
}

func TestSearch_InvalidInput(t *testing.T) {
	s := NewService(newFakeJobs(), nil, logger.Nop())
	ctx := context.Background()

	for i, in := range []SearchInput{
		{PageNumber: 0, Limit: 10},
		{PageNumber: 1, Limit: 10, MinDuration: 6, MaxDuration: 1},
		{PageNumber: 1, Limit: 10, OrderBy: "sideways"},
		{PageNumber: 1, Limit: 10, Date: "yesterday"},
	} {
		if _, err := s.Search(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestSearch_CachesUntilInvalidated(t *testing.T) {
	repo := newFakeJobs()
	cache := newFakeCache()
	s := NewService(repo, cache, logger.Nop())
	ctx := context.Background()

	if _, err := s.Create(ctx, uuid.New(), CreateInput{Title: "A", Level: "l", Industry: "tech", City: "Lagos", DurationMonths: 3}); err != nil {
		t.Fatalf("create: %v", err)
	}

	in := SearchInput{Field: "tech", PageNumber: 1, Limit: 10}
	if _, err := s.Search(ctx, in); err != nil {
		t.Fatalf("search: %v", err)
	}
	if _, err := s.Search(ctx, in); err != nil {
		t.Fatalf("search: %v", err)
	}
	if repo.searches != 1 {
		t.Fatalf("expected second search from cache, repo hit %d times", repo.searches)
	}

	if _, err := s.Create(ctx, uuid.New(), CreateInput{Title: "B", Level: "l", Industry: "tech", City: "Lagos", DurationMonths: 3}); err != nil {
		t.Fatalf("create: %v", err)
	}
	res, err := s.Search(ctx, in)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if repo.searches != 2 || res.Total != 2 {
		t.Fatalf("expected fresh result after create, searches=%d total=%d", repo.searches, res.Total)
	}
}

func TestSearchCacheKey_DependsOnPage(t *testing.T) {
	f := job.SearchFilter{Field: "tech", Order: "DESC"}
	a := searchCacheKey(f, pagination.Page{Skip: 0, Take: 10})
	b := searchCacheKey(f, pagination.Page{Skip: 10, Take: 10})
	if a == b || !strings.HasPrefix(a, searchKeyPrefix) {
		t.Fatalf("unexpected keys %q %q", a, b)
	}
}

// --- fakes ---

type fakeJobs struct {
	byID     map[uuid.UUID]job.Job
	searches int
}

func newFakeJobs() *fakeJobs {
	return &fakeJobs{byID: map[uuid.UUID]job.Job{}}
}

func (f *fakeJobs) Create(_ context.Context, j job.Job) error {
	j.CreatedAt = time.Now()
	f.byID[j.ID] = j
	return nil
}

func (f *fakeJobs) GetByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	j, ok := f.byID[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (f *fakeJobs) Update(_ context.Context, companyID, id uuid.UUID, p job.Patch) (job.Job, error) {
	j, ok := f.byID[id]
	if !ok || j.CompanyID != companyID {
		return job.Job{}, job.ErrNotFound
	}
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.City != nil {
		j.City = *p.City
	}
	if p.DurationMonths != nil {
		j.DurationMonths = *p.DurationMonths
	}
	f.byID[id] = j
	return j, nil
}

func (f *fakeJobs) List(_ context.Context, lf job.ListFilter, page pagination.Page) ([]job.Job, int, error) {
	var out []job.Job
	for _, j := range f.byID {
		if lf.CompanyID != nil && j.CompanyID != *lf.CompanyID {
			continue
		}
		out = append(out, j)
	}
	return window(out, page), len(out), nil
}

func (f *fakeJobs) Search(_ context.Context, sf job.SearchFilter, page pagination.Page) ([]job.Job, int, error) {
	f.searches++
	var out []job.Job
	for _, j := range f.byID {
		if sf.Field != "" && !strings.Contains(j.Industry, sf.Field) {
			continue
		}
		if sf.Location != "" && !strings.Contains(j.City, sf.Location) {
			continue
		}
		if sf.MinDuration > 0 && j.DurationMonths < sf.MinDuration {
			continue
		}
		if sf.MaxDuration > 0 && j.DurationMonths > sf.MaxDuration {
			continue
		}
		out = append(out, j)
	}
	return window(out, page), len(out), nil
}

func window(in []job.Job, page pagination.Page) []job.Job {
	if page.Skip >= len(in) {
		return []job.Job{}
	}
	end := page.Skip + page.Take
	if end > len(in) {
		end = len(in)
	}
	return in[page.Skip:end]
}

type fakeCache struct {
	m map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{m: map[string][]byte{}}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := c.m[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.m[key] = b
	return nil
}

func (c *fakeCache) DeleteByPattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.m {
		if strings.HasPrefix(k, prefix) {
			delete(c.m, k)
		}
	}
	return nil
}
